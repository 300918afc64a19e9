package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/pxshift/format"
)

// Compressor wraps an output stream with a compressing writer.
//
// Closing the returned writer flushes all pending compressed data and the
// stream trailer. It never closes the underlying writer, which stays owned
// by the caller.
type Compressor interface {
	NewWriter(w io.Writer) (io.WriteCloser, error)
}

// Decompressor wraps a compressed input stream with a decompressing reader.
//
// Closing the returned reader releases decoder resources only; the underlying
// reader stays owned by the caller.
//
// Example:
//
//	r, err := compress.NewZstdCompressor().NewReader(f)
//	if err != nil {
//	    return fmt.Errorf("open zstd stream: %w", err)
//	}
//	defer r.Close()
type Decompressor interface {
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionGzip: NewGzipCompressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// NewReader wraps r with the decompressor for compressionType.
func NewReader(r io.Reader, compressionType format.CompressionType) (io.ReadCloser, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	return codec.NewReader(r)
}

// NewWriter wraps w with the compressor for compressionType.
func NewWriter(w io.Writer, compressionType format.CompressionType) (io.WriteCloser, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	return codec.NewWriter(w)
}
