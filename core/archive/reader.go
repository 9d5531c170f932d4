package archive

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
)

// Reader iterates over the entries of one archive stream.
type Reader struct {
	tr          *tar.Reader
	compression Compression
	release     func()
}

// NewReader detects the compression of r and prepares a forward-only reader.
// Close releases decoder resources; it does not close r.
func NewReader(r io.Reader) (*Reader, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: missing archive stream", ErrInvalidInput)
	}
	dr, c, release, err := decompress(r)
	if err != nil {
		release()
		return nil, err
	}
	return &Reader{tr: tar.NewReader(dr), compression: c, release: release}, nil
}

// Compression returns the detected compression layer.
func (r *Reader) Compression() Compression {
	return r.compression
}

// Next advances to the next entry. It returns io.EOF at the end of the archive.
// Unread content of the previous entry is skipped.
func (r *Reader) Next() (*Entry, error) {
	hdr, err := r.tr.Next()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}

	e := &Entry{
		Path:     Normalize(hdr.Name),
		Name:     hdr.Name,
		Kind:     kindOf(hdr.Typeflag),
		Size:     hdr.Size,
		Linkname: hdr.Linkname,
	}
	if e.Kind == KindRegular {
		e.content = r.tr
	}
	return e, nil
}

// Close releases decoder resources.
func (r *Reader) Close() error {
	if r.release != nil {
		r.release()
		r.release = nil
	}
	return nil
}

// Walk calls fn for every entry of the archive in storage order. Returning an
// error from fn stops the walk and returns that error.
func Walk(ctx context.Context, src io.Reader, fn func(*Entry) error) error {
	r, err := NewReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
}
