package compress

import (
	"io"

	"github.com/klauspost/compress/s2"
)

// S2Compressor streams S2, a faster Snappy-compatible format.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// NewWriter returns a streaming S2 writer. Concurrency is limited to one block
// encoder so memory stays proportional to a single block.
func (c S2Compressor) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return s2.NewWriter(w, s2.WriterConcurrency(1)), nil
}

// NewReader returns a streaming S2 reader. Snappy framed streams are accepted too.
func (c S2Compressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}
