package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arloliu/pxshift/compress"
)

const outputFileMode = 0o644

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%s is a directory", path)
	}

	return f, nil
}

// fileSink writes to a hidden temporary file in the target's directory and
// renames it over the target on Commit.
type fileSink struct {
	target string
	tmp    *os.File
	zw     io.WriteCloser
	closed bool
}

func newFileSink(loc Location) (*fileSink, error) {
	dir, base := filepath.Split(loc.Path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return nil, err
	}

	zw, err := compress.NewWriter(tmp, loc.Compression())
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return nil, err
	}

	return &fileSink{target: loc.Path, tmp: tmp, zw: zw}, nil
}

func (s *fileSink) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrSinkClosed
	}

	return s.zw.Write(p)
}

func (s *fileSink) Commit() error {
	if s.closed {
		return ErrSinkClosed
	}
	s.closed = true

	if err := s.finish(); err != nil {
		_ = os.Remove(s.tmp.Name())
		return err
	}

	return nil
}

func (s *fileSink) finish() error {
	if err := s.zw.Close(); err != nil {
		_ = s.tmp.Close()
		return fmt.Errorf("finish compressed stream: %w", err)
	}
	if err := s.tmp.Sync(); err != nil {
		_ = s.tmp.Close()
		return err
	}
	if err := s.tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(s.tmp.Name(), outputFileMode); err != nil {
		return err
	}

	return os.Rename(s.tmp.Name(), s.target)
}

func (s *fileSink) Abort(error) error {
	if s.closed {
		return nil
	}
	s.closed = true

	return errors.Join(s.tmp.Close(), os.Remove(s.tmp.Name()))
}
