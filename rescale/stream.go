package rescale

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/arloliu/pxshift/internal/digest"
	"github.com/arloliu/pxshift/internal/pool"
)

// Stats summarizes one Stream run. On error it covers the lines handled
// before the failure.
type Stats struct {
	Lines    int64  // physical input lines, blank ones included
	Records  int64  // records written
	Blank    int64  // lines skipped as blank
	Rescaled int64  // price fields replaced
	BytesIn  int64  // input bytes consumed, line terminators included
	BytesOut int64  // output bytes written
	Digest   uint64 // xxHash64 over all written bytes
}

// DigestHex returns Digest as 16 hex digits.
func (s Stats) DigestHex() string {
	return digest.Format(s.Digest)
}

// Stream reads newline-delimited JSON from in and writes rescaled records to out.
//
// Memory use is bounded by the longest line, not by the input size. The
// first malformed line aborts the run; whatever was written to out by then
// is not a valid result. Stream does not close in or out.
func (r *Rescaler) Stream(in io.Reader, out io.Writer) (Stats, error) {
	return r.StreamContext(context.Background(), in, out)
}

// StreamContext is Stream with cancellation. ctx is checked before every
// line; once it is done the run stops with ctx.Err() and nothing more is
// written or flushed.
func (r *Rescaler) StreamContext(ctx context.Context, in io.Reader, out io.Writer) (Stats, error) {
	var stats Stats

	br := bufio.NewReaderSize(in, r.bufferSize)
	bw := bufio.NewWriterSize(out, r.bufferSize)
	sum := digest.New()

	lineBuf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(lineBuf)
	recBuf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(recBuf)

	for {
		if err := ctx.Err(); err != nil {
			stats.Digest = sum.Sum64()
			return stats, err
		}

		line, readErr := readLine(br, lineBuf)
		if len(line) > 0 {
			stats.Lines++
			stats.BytesIn += int64(len(line))

			recBuf.Reset()
			rec, res, err := r.Process(recBuf.B, line)
			recBuf.B = rec
			if err != nil {
				stats.Digest = sum.Sum64()
				return stats, withLine(err, stats.Lines)
			}

			if res.Blank {
				stats.Blank++
			} else {
				if _, err := recBuf.WriteTo(bw); err != nil {
					stats.Digest = sum.Sum64()
					return stats, &IOError{Op: "write", Err: err}
				}
				sum.AddRecord(rec)
				stats.Records = int64(sum.Records())
				stats.Rescaled += int64(res.Rescaled)
				stats.BytesOut += int64(len(rec))

				if r.flushEvery > 0 && stats.Records%r.flushEvery == 0 {
					if err := bw.Flush(); err != nil {
						stats.Digest = sum.Sum64()
						return stats, &IOError{Op: "write", Err: err}
					}
				}
			}
		}

		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			stats.Digest = sum.Sum64()
			return stats, &IOError{Op: "read", Err: readErr}
		}
	}

	stats.Digest = sum.Sum64()
	if err := bw.Flush(); err != nil {
		return stats, &IOError{Op: "write", Err: err}
	}

	return stats, nil
}

// readLine returns the next line including its '\n' terminator, if any.
//
// Lines that fit in the reader's buffer are returned without copying; longer
// lines are assembled in bb. Either way the slice is valid only until the
// next call. At end of input the final unterminated line, possibly empty, is
// returned together with io.EOF.
func readLine(br *bufio.Reader, bb *pool.ByteBuffer) ([]byte, error) {
	bb.Reset()
	for {
		frag, err := br.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			_, _ = bb.Write(frag)
			continue
		}

		if bb.Len() == 0 {
			return frag, err
		}
		_, _ = bb.Write(frag)

		return bb.Bytes(), err
	}
}
