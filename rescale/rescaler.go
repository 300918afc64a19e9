package rescale

import (
	"bytes"
	"math"

	"github.com/arloliu/pxshift/value"
)

// Rescaler applies one fixed factor to price fields.
type Rescaler struct {
	bps        float64
	k          float64
	maxDepth   int
	bufferSize int
	flushEvery int64
}

// LineResult describes the outcome of Process for one line.
type LineResult struct {
	Blank    bool // line was empty after trimming and produced no output
	Rescaled int  // number of price fields replaced
}

// New creates a Rescaler for the given basis points.
//
// Parameters:
//   - bps: Signed shift in basis points; k = 1 + bps/10000
//   - opts: Optional configuration (WithMaxDepth, WithReadBufferSize, WithFlushEvery)
//
// Returns:
//   - *Rescaler: The configured rescaler
//   - error: ErrInvalidFactor if k is not finite, or an option error
func New(bps float64, opts ...Option) (*Rescaler, error) {
	k, err := Factor(bps)
	if err != nil {
		return nil, err
	}

	r := &Rescaler{bps: bps, k: k}
	for _, opt := range append(defaultOptions, opts...) {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// BasisPoints returns the bps the rescaler was created with.
func (r *Rescaler) BasisPoints() float64 { return r.bps }

// Factor returns k.
func (r *Rescaler) Factor() float64 { return r.k }

// Walk rescales price fields of v in place and returns how many were replaced.
//
// Only objects and arrays can hold price fields; for any other kind Walk is a
// no-op. On error, fields visited before the failure stay rescaled.
func (r *Rescaler) Walk(v value.Value) (int, error) {
	switch v.Kind() {
	case value.KindObject:
		return r.walkObject(v.Members())
	case value.KindArray:
		n := 0
		elems := v.Elems()
		for i := range elems {
			c, err := r.Walk(elems[i])
			n += c
			if err != nil {
				return n, err
			}
		}

		return n, nil
	default:
		return 0, nil
	}
}

func (r *Rescaler) walkObject(members []value.Member) (int, error) {
	n := 0
	for i := range members {
		m := &members[i]
		if IsPriceKey(m.Key) {
			if f, ok := numericLike(m.Value); ok {
				scaled := f * r.k
				if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
					return n, &RescaleError{Key: m.Key, Err: ErrNonFinite}
				}
				m.Value = value.Float(scaled)
				n++

				continue
			}
		}

		c, err := r.Walk(m.Value)
		n += c
		if err != nil {
			return n, err
		}
	}

	return n, nil
}

// Process transforms one input line and appends the result, newline
// terminated, to dst.
//
// A line that is empty after trimming whitespace leaves dst unchanged and
// reports Blank. Errors are *ParseError or *RescaleError without a line number;
// Stream fills it in.
func (r *Rescaler) Process(dst, line []byte) ([]byte, LineResult, error) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return dst, LineResult{Blank: true}, nil
	}

	v, err := value.ParseDepth(trimmed, r.maxDepth)
	if err != nil {
		return dst, LineResult{}, &ParseError{Err: err}
	}

	n, err := r.Walk(v)
	if err != nil {
		return dst, LineResult{}, err
	}

	dst = value.AppendCompact(dst, v)
	dst = append(dst, '\n')

	return dst, LineResult{Rescaled: n}, nil
}
