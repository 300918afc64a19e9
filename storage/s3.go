package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/arloliu/pxshift/compress"
	"github.com/arloliu/pxshift/format"
)

const ndjsonContentType = "application/x-ndjson"

// contentType returns the MIME type stored with an object. Compressed outputs
// carry their compressed format's type and no Content-Encoding.
func contentType(c format.CompressionType) string {
	switch c {
	case format.CompressionNone:
		return ndjsonContentType
	case format.CompressionGzip:
		return "application/gzip"
	case format.CompressionZstd:
		return "application/zstd"
	default:
		return "application/octet-stream"
	}
}

func (s *Store) openObject(ctx context.Context, loc Location) (io.ReadCloser, error) {
	if err := s.s3Clients(ctx); err != nil {
		return nil, err
	}

	out, err := s.getter.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get: %w", err)
	}

	return out.Body, nil
}

// objectSink pumps written bytes through an io.Pipe into an S3 upload running
// on its own goroutine. The upload only completes when the pipe is closed
// cleanly on Commit.
type objectSink struct {
	pw     *io.PipeWriter
	zw     io.WriteCloser
	cancel context.CancelFunc
	result chan error
	closed bool
}

func newObjectSink(ctx context.Context, uploader ObjectUploader, loc Location) (*objectSink, error) {
	ctx, cancel := context.WithCancel(ctx)
	pr, pw := io.Pipe()

	input := &s3.PutObjectInput{
		Bucket:      aws.String(loc.Bucket),
		Key:         aws.String(loc.Key),
		Body:        pr,
		ContentType: aws.String(contentType(loc.Compression())),
	}

	result := make(chan error, 1)
	go func() {
		_, err := uploader.Upload(ctx, input)
		// unblock the writer side if the upload gave up early
		_ = pr.CloseWithError(err)
		result <- err
	}()

	zw, err := compress.NewWriter(pw, loc.Compression())
	if err != nil {
		_ = pw.CloseWithError(err)
		<-result
		cancel()

		return nil, err
	}

	return &objectSink{pw: pw, zw: zw, cancel: cancel, result: result}, nil
}

func (s *objectSink) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrSinkClosed
	}

	return s.zw.Write(p)
}

func (s *objectSink) Commit() error {
	if s.closed {
		return ErrSinkClosed
	}
	s.closed = true
	defer s.cancel()

	if err := s.zw.Close(); err != nil {
		_ = s.pw.CloseWithError(err)
		<-s.result

		return fmt.Errorf("finish compressed stream: %w", err)
	}
	_ = s.pw.Close()

	if err := <-s.result; err != nil {
		return fmt.Errorf("s3 upload: %w", err)
	}

	return nil
}

func (s *objectSink) Abort(cause error) error {
	if s.closed {
		return nil
	}
	s.closed = true

	if cause == nil {
		cause = context.Canceled
	}
	_ = s.pw.CloseWithError(cause)
	s.cancel()
	<-s.result

	return nil
}
