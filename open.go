package pedmodels

import (
	"io"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// Open opens a local or gs:// file and decompresses it if needed. Closing
// the returned reader closes the underlying file.
func Open(path string, client *storage.Client) (io.ReadCloser, error) {
	raw, _, err := OpenSeeker(ExpandHome(path), client)
	if err != nil {
		return nil, pfx.Err(err)
	}

	rc, err := MaybeDecompressReadCloser(raw)
	if err != nil {
		raw.Close()
		return nil, pfx.Err(err)
	}

	return &stackedCloser{ReadCloser: rc, under: raw}, nil
}

type stackedCloser struct {
	io.ReadCloser
	under io.Closer
}

func (s *stackedCloser) Close() error {
	err := s.ReadCloser.Close()
	if s.ReadCloser == s.under {
		return err
	}
	if uerr := s.under.Close(); err == nil {
		err = uerr
	}

	return err
}
