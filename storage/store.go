package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/arloliu/pxshift/compress"
)

// ErrSinkClosed is returned when a Sink is used after Commit or Abort.
var ErrSinkClosed = errors.New("sink already closed")

// ObjectGetter is the part of *s3.Client used to read inputs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// ObjectUploader is the part of *manager.Uploader used to write outputs.
type ObjectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// Sink is a compressed, all-or-nothing output stream.
//
// Exactly one of Commit or Abort must be called. After Commit returns nil the
// output is complete at its location; after Abort nothing is left behind.
type Sink interface {
	io.Writer
	Commit() error
	Abort(cause error) error
}

// Store opens locations. S3 clients are created on first use from the AWS
// default configuration chain unless supplied with WithS3Client.
type Store struct {
	getter   ObjectGetter
	uploader ObjectUploader
	loadS3   func(ctx context.Context) (ObjectGetter, ObjectUploader, error)
}

// Option configures a Store.
type Option func(*Store)

// WithS3Client sets the S3 clients used for s3:// locations.
func WithS3Client(getter ObjectGetter, uploader ObjectUploader) Option {
	return func(s *Store) {
		s.getter = getter
		s.uploader = uploader
	}
}

// New creates a Store.
func New(opts ...Option) *Store {
	s := &Store{loadS3: loadDefaultS3}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func loadDefaultS3(ctx context.Context) (ObjectGetter, ObjectUploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)

	return client, manager.NewUploader(client), nil
}

func (s *Store) s3Clients(ctx context.Context) error {
	if s.getter != nil && s.uploader != nil {
		return nil
	}

	getter, uploader, err := s.loadS3(ctx)
	if err != nil {
		return err
	}
	if s.getter == nil {
		s.getter = getter
	}
	if s.uploader == nil {
		s.uploader = uploader
	}

	return nil
}

// Open returns a reader yielding the decompressed contents of loc.
// Closing it releases the decompressor and the underlying file or object body.
func (s *Store) Open(ctx context.Context, loc Location) (io.ReadCloser, error) {
	var raw io.ReadCloser
	switch loc.Scheme {
	case SchemeFile:
		f, err := openFile(loc.Path)
		if err != nil {
			return nil, err
		}
		raw = f
	case SchemeS3:
		body, err := s.openObject(ctx, loc)
		if err != nil {
			return nil, err
		}
		raw = body
	default:
		return nil, fmt.Errorf("%w: unknown scheme %q", ErrInvalidLocation, loc.Scheme)
	}

	zr, err := compress.NewReader(raw, loc.Compression())
	if err != nil {
		_ = raw.Close()
		return nil, err
	}

	return &layeredReader{ReadCloser: zr, base: raw}, nil
}

// Create returns a Sink writing compressed output to loc.
func (s *Store) Create(ctx context.Context, loc Location) (Sink, error) {
	switch loc.Scheme {
	case SchemeFile:
		return newFileSink(loc)
	case SchemeS3:
		if err := s.s3Clients(ctx); err != nil {
			return nil, err
		}

		return newObjectSink(ctx, s.uploader, loc)
	default:
		return nil, fmt.Errorf("%w: unknown scheme %q", ErrInvalidLocation, loc.Scheme)
	}
}

// layeredReader closes the decompressor first, then the stream below it.
type layeredReader struct {
	io.ReadCloser
	base io.Closer
}

func (r *layeredReader) Close() error {
	return errors.Join(r.ReadCloser.Close(), r.base.Close())
}
