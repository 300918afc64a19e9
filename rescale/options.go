package rescale

import (
	"fmt"

	"github.com/arloliu/pxshift/value"
)

const (
	defaultReadBufferSize = 64 * 1024
	minReadBufferSize     = 64
)

// Option configures a Rescaler.
type Option func(*Rescaler) error

// WithMaxDepth limits the nesting depth accepted per record.
// Deeper records fail with a ParseError. Default: value.DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(r *Rescaler) error {
		if depth <= 0 {
			return fmt.Errorf("max depth must be positive, got %d", depth)
		}
		r.maxDepth = depth

		return nil
	}
}

// WithReadBufferSize sets the size of the input and output buffers.
//
// Lines longer than the buffer are still handled; the buffer size only
// decides how many reads a long line takes.
func WithReadBufferSize(size int) Option {
	return func(r *Rescaler) error {
		if size < minReadBufferSize {
			return fmt.Errorf("read buffer size must be at least %d, got %d", minReadBufferSize, size)
		}
		r.bufferSize = size

		return nil
	}
}

// WithFlushEvery flushes the output after every n records. Zero, the
// default, flushes only when the buffer fills and at the end of the stream.
func WithFlushEvery(n int) Option {
	return func(r *Rescaler) error {
		if n < 0 {
			return fmt.Errorf("flush interval must not be negative, got %d", n)
		}
		r.flushEvery = int64(n)

		return nil
	}
}

var defaultOptions = []Option{
	WithMaxDepth(value.DefaultMaxDepth),
	WithReadBufferSize(defaultReadBufferSize),
	WithFlushEvery(0),
}
