package archive_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"tarcheck/core/archive"
	"tarcheck/core/archive/archivetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMembers() []archivetest.Member {
	return []archivetest.Member{
		archivetest.Dir("data/"),
		archivetest.File("data/a.txt", "alpha"),
		archivetest.Dir("data/sub/"),
		archivetest.File("data/sub/b.txt", "bravo"),
		archivetest.Symlink("data/link", "a.txt"),
	}
}

func TestReader_Compressions(t *testing.T) {
	tests := []struct {
		name        string
		compression archivetest.Compression
		want        archive.Compression
	}{
		{"Plain", archivetest.None, archive.CompressionNone},
		{"Gzip", archivetest.Gzip, archive.CompressionGzip},
		{"Zstd", archivetest.Zstd, archive.CompressionZstd},
		{"Xz", archivetest.Xz, archive.CompressionXz},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := archivetest.Build(t, sampleMembers(), tt.compression)

			r, err := archive.NewReader(bytes.NewReader(data))
			require.NoError(t, err)
			defer r.Close()
			assert.Equal(t, tt.want, r.Compression())

			var kinds []archive.Kind
			var paths []string
			bodies := map[string]string{}
			for {
				e, err := r.Next()
				if errors.Is(err, io.EOF) {
					break
				}
				require.NoError(t, err)
				kinds = append(kinds, e.Kind)
				paths = append(paths, e.Path)
				if e.Kind == archive.KindRegular {
					content, err := e.Open()
					require.NoError(t, err)
					b, err := io.ReadAll(content)
					require.NoError(t, err)
					bodies[e.Path] = string(b)
				}
			}

			assert.Equal(t, []string{"data", "data/a.txt", "data/sub", "data/sub/b.txt", "data/link"}, paths)
			assert.Equal(t, []archive.Kind{
				archive.KindDirectory, archive.KindRegular, archive.KindDirectory,
				archive.KindRegular, archive.KindSymlink,
			}, kinds)
			assert.Equal(t, map[string]string{"data/a.txt": "alpha", "data/sub/b.txt": "bravo"}, bodies)
		})
	}
}

func TestReader_Bzip2Fixture(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "sample.tar.bz2"))
	require.NoError(t, err)
	defer f.Close()

	var paths []string
	var body string
	err = archive.Walk(context.Background(), f, func(e *archive.Entry) error {
		paths = append(paths, e.Path)
		if e.Path == "test-data/sub/b.txt" {
			r, err := e.Open()
			if err != nil {
				return err
			}
			b, err := io.ReadAll(r)
			body = string(b)
			return err
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"test-data", "test-data/a.txt", "test-data/sub", "test-data/sub/b.txt"}, paths)
	assert.Equal(t, "bravo\n", body)
}

func TestEntry_OpenNonRegular(t *testing.T) {
	data := archivetest.Build(t, []archivetest.Member{archivetest.Dir("d/")}, archivetest.None)
	r, err := archive.NewReader(bytes.NewReader(data))
	require.NoError(t, err)

	e, err := r.Next()
	require.NoError(t, err)
	_, err = e.Open()
	assert.ErrorIs(t, err, archive.ErrNotRegular)
}

func TestReader_SkipsUnreadContent(t *testing.T) {
	data := archivetest.Build(t, []archivetest.Member{
		archivetest.File("one", "first body"),
		archivetest.File("two", "second body"),
	}, archivetest.Gzip)

	r, err := archive.NewReader(bytes.NewReader(data))
	require.NoError(t, err)

	_, err = r.Next()
	require.NoError(t, err)
	e, err := r.Next()
	require.NoError(t, err)
	content, err := e.Open()
	require.NoError(t, err)
	b, err := io.ReadAll(content)
	require.NoError(t, err)
	assert.Equal(t, "second body", string(b))
}

func TestReader_Corrupt(t *testing.T) {
	err := archive.Walk(context.Background(), bytes.NewReader([]byte("definitely not a tar archive, but long enough to hold a header block? no")), func(*archive.Entry) error {
		return nil
	})
	assert.Error(t, err)
}

func TestWalk_StopsOnCallbackError(t *testing.T) {
	data := archivetest.Build(t, sampleMembers(), archivetest.None)
	stop := errors.New("stop")
	calls := 0
	err := archive.Walk(context.Background(), bytes.NewReader(data), func(*archive.Entry) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestWalk_ContextCancelled(t *testing.T) {
	data := archivetest.Build(t, sampleMembers(), archivetest.None)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := archive.Walk(ctx, bytes.NewReader(data), func(*archive.Entry) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewReader_Nil(t *testing.T) {
	_, err := archive.NewReader(nil)
	assert.ErrorIs(t, err, archive.ErrInvalidInput)
}
