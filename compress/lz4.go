package compress

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// LZ4Compressor streams LZ4 frames.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 codec.
//
// Returns:
//   - LZ4Compressor: New LZ4 codec instance
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// NewWriter returns an LZ4 frame writer.
//
// Parameters:
//   - w: Destination for the compressed frame
//
// Returns:
//   - io.WriteCloser: Writer whose Close writes the frame end mark
//   - error: Option error if the writer cannot be configured
func (c LZ4Compressor) NewWriter(w io.Writer) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.ConcurrencyOption(1)); err != nil {
		return nil, err
	}

	return zw, nil
}

// NewReader returns an LZ4 frame reader.
func (c LZ4Compressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
