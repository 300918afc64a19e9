// Package compress provides streaming compression codecs for JSONL event logs.
//
// Event captures are large and usually archived compressed. The rescaler reads
// and writes them one line at a time, so every codec here is a stream wrapper
// rather than a whole-buffer transform: memory stays bounded by the codec's
// window, never by the size of the log.
//
// # Supported Algorithms
//
//   - None: plain JSONL
//   - Zstd: best ratio; pure Go by default, libzstd with the "gozstd" build tag
//   - S2: fast, Snappy-compatible framing
//   - LZ4: fastest decompression, LZ4 frame format
//   - Gzip: widest tool support
//
// # Usage
//
//	w, err := compress.NewWriter(f, format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	// ... write records ...
//	if err := w.Close(); err != nil { // flushes the zstd trailer, f stays open
//	    return err
//	}
//
// The codec is normally picked from the file extension with
// format.DetectCompression.
//
// # Ownership
//
// Readers and writers returned by this package never close the stream they
// wrap. Closing a writer is mandatory: without it the trailing frame is lost
// and the output cannot be decoded.
package compress
