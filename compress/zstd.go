package compress

// ZstdCompressor provides Zstandard stream compression for event logs.
//
// Zstd gives the best ratio of the built-in codecs and is the usual choice for
// archived JSONL captures. Two implementations exist:
//   - default: pure Go, github.com/klauspost/compress/zstd
//   - with the "gozstd" build tag: cgo bindings to libzstd via github.com/valyala/gozstd
//
// Both produce standard zstd frames and can read each other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
//
// Example:
//
//	w, err := NewZstdCompressor().NewWriter(f)
//	if err != nil {
//		return err
//	}
//	defer w.Close()
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
