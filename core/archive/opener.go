package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"tarcheck/core/storage"

	"github.com/minio/minio-go/v7"
)

// Stdin is the location that reads the archive from standard input.
const Stdin = "-"

// IsStdin reports whether location names standard input.
func IsStdin(location string) bool {
	return strings.TrimSpace(location) == Stdin
}

// Opener turns an archive location into a readable stream. Standard input is
// served at most once per Opener.
type Opener struct {
	client storage.Client
	stdin  io.Reader

	mu        sync.Mutex
	stdinUsed bool
}

// NewOpener creates an opener. client may be nil, in which case storage
// locations are rejected with ErrUnsupportedLocation.
func NewOpener(client storage.Client) *Opener {
	return &Opener{client: client, stdin: os.Stdin}
}

// WithStdin replaces the stream served for the "-" location.
func (o *Opener) WithStdin(r io.Reader) *Opener {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stdin = r
	o.stdinUsed = false
	return o
}

// Open returns a stream for location. The caller must close it.
func (o *Opener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: missing archive location", ErrInvalidInput)
	}

	if location == Stdin {
		return o.openStdin()
	}

	if strings.HasPrefix(location, storage.Scheme) {
		return o.openObject(ctx, location)
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidInput, location)
	}
	return f, nil
}

func (o *Opener) openStdin() (io.ReadCloser, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stdinUsed {
		return nil, fmt.Errorf("%w: standard input has already been read", ErrInvalidInput)
	}
	o.stdinUsed = true
	return io.NopCloser(o.stdin), nil
}

func (o *Opener) openObject(ctx context.Context, location string) (io.ReadCloser, error) {
	bucket, object, ok := storage.ParseURI(location)
	if !ok {
		return nil, fmt.Errorf("%w: malformed storage location %q", ErrUnsupportedLocation, location)
	}
	if o.client == nil {
		return nil, fmt.Errorf("%w: no storage client configured for %q", ErrUnsupportedLocation, location)
	}

	// GetObject is lazy; stat first so a missing object fails here rather
	// than on the first read.
	if _, err := o.client.StatObject(ctx, bucket, object, minio.StatObjectOptions{}); err != nil {
		if exists, bErr := o.client.BucketExists(ctx, bucket); bErr == nil && !exists {
			return nil, fmt.Errorf("%w: bucket %q does not exist", ErrInvalidInput, bucket)
		}
		return nil, fmt.Errorf("stat %s: %w", location, err)
	}

	rc, err := o.client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", location, err)
	}
	return rc, nil
}
