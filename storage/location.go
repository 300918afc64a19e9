package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arloliu/pxshift/format"
)

// Scheme identifies the backend of a Location.
type Scheme string

const (
	SchemeFile Scheme = "file"
	SchemeS3   Scheme = "s3"
)

const (
	s3Prefix   = "s3://"
	filePrefix = "file://"
)

// ErrInvalidLocation is returned by ParseLocation for malformed locations.
var ErrInvalidLocation = errors.New("invalid location")

// Location points at one input or output stream.
type Location struct {
	Scheme Scheme
	Path   string // SchemeFile only
	Bucket string // SchemeS3 only
	Key    string // SchemeS3 only
}

// ParseLocation parses a filesystem path, a file:// URL or an s3://bucket/key URL.
func ParseLocation(raw string) (Location, error) {
	switch {
	case raw == "":
		return Location{}, fmt.Errorf("%w: empty", ErrInvalidLocation)
	case strings.HasPrefix(raw, s3Prefix):
		rest := strings.TrimPrefix(raw, s3Prefix)
		bucket, key, found := strings.Cut(rest, "/")
		if !found || bucket == "" || key == "" {
			return Location{}, fmt.Errorf("%w: %q must be s3://bucket/key", ErrInvalidLocation, raw)
		}
		if strings.HasSuffix(key, "/") {
			return Location{}, fmt.Errorf("%w: %q names a prefix, not an object", ErrInvalidLocation, raw)
		}

		return Location{Scheme: SchemeS3, Bucket: bucket, Key: key}, nil
	case strings.HasPrefix(raw, filePrefix):
		path := strings.TrimPrefix(raw, filePrefix)
		if path == "" {
			return Location{}, fmt.Errorf("%w: %q has no path", ErrInvalidLocation, raw)
		}

		return Location{Scheme: SchemeFile, Path: filepath.Clean(path)}, nil
	default:
		return Location{Scheme: SchemeFile, Path: filepath.Clean(raw)}, nil
	}
}

// Name returns the path or object key, used for extension detection.
func (l Location) Name() string {
	if l.Scheme == SchemeS3 {
		return l.Key
	}

	return l.Path
}

// Compression returns the compression implied by the location's extension.
func (l Location) Compression() format.CompressionType {
	return format.DetectCompression(l.Name())
}

func (l Location) String() string {
	if l.Scheme == SchemeS3 {
		return s3Prefix + l.Bucket + "/" + l.Key
	}

	return l.Path
}
