package archive_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"tarcheck/core/archive"
	"tarcheck/core/archive/archivetest"
	"tarcheck/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOpener_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.tar.gz")
	archivetest.WriteFile(t, path, sampleMembers(), archivetest.Gzip)

	paths, err := archive.List(context.Background(), archive.NewOpener(nil), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"data", "data/a.txt", "data/sub", "data/sub/b.txt", "data/link"}, paths)
}

func TestOpener_Errors(t *testing.T) {
	opener := archive.NewOpener(nil)
	ctx := context.Background()

	_, err := opener.Open(ctx, "")
	assert.ErrorIs(t, err, archive.ErrInvalidInput)

	_, err = opener.Open(ctx, t.TempDir())
	assert.ErrorIs(t, err, archive.ErrInvalidInput)

	_, err = opener.Open(ctx, filepath.Join(t.TempDir(), "missing.tar"))
	assert.Error(t, err)

	_, err = opener.Open(ctx, "s3://bucket/key.tar")
	assert.ErrorIs(t, err, archive.ErrUnsupportedLocation)
}

func TestOpener_Stdin(t *testing.T) {
	data := archivetest.Build(t, sampleMembers(), archivetest.Zstd)
	opener := archive.NewOpener(nil).WithStdin(strings.NewReader(string(data)))

	paths, err := archive.List(context.Background(), opener, "-")
	require.NoError(t, err)
	assert.Len(t, paths, 5)

	_, err = opener.Open(context.Background(), "-")
	assert.ErrorIs(t, err, archive.ErrInvalidInput)

	opener.WithStdin(strings.NewReader(string(data)))
	paths, err = archive.List(context.Background(), opener, " - ")
	require.NoError(t, err)
	assert.Len(t, paths, 5)
}

func TestIsStdin(t *testing.T) {
	assert.True(t, archive.IsStdin("-"))
	assert.True(t, archive.IsStdin(" - "))
	assert.False(t, archive.IsStdin("a.tar"))
	assert.False(t, archive.IsStdin(""))
}

func TestOpener_Storage(t *testing.T) {
	data := archivetest.Build(t, sampleMembers(), archivetest.Gzip)

	t.Run("Streams object", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", mock.Anything, "backups", "run/a.tar.gz", mock.Anything).Return(minio.ObjectInfo{Size: int64(len(data))}, nil)
		client.On("GetObject", mock.Anything, "backups", "run/a.tar.gz", mock.Anything).Return(io.NopCloser(strings.NewReader(string(data))), nil)

		paths, err := archive.List(context.Background(), archive.NewOpener(client), "s3://backups/run/a.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, "data/sub/b.txt", paths[3])
		client.AssertExpectations(t)
	})

	t.Run("Missing object", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", mock.Anything, "backups", "nope.tar", mock.Anything).Return(minio.ObjectInfo{}, errors.New("The specified key does not exist."))
		client.On("BucketExists", mock.Anything, "backups").Return(true, nil)

		_, err := archive.NewOpener(client).Open(context.Background(), "s3://backups/nope.tar")
		assert.ErrorContains(t, err, "does not exist")
		assert.NotErrorIs(t, err, archive.ErrInvalidInput)
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", mock.Anything, "gone", "a.tar", mock.Anything).Return(minio.ObjectInfo{}, errors.New("The specified bucket does not exist"))
		client.On("BucketExists", mock.Anything, "gone").Return(false, nil)

		_, err := archive.NewOpener(client).Open(context.Background(), "s3://gone/a.tar")
		assert.ErrorIs(t, err, archive.ErrInvalidInput)
	})

	t.Run("Malformed location", func(t *testing.T) {
		client := new(mocks.Client)
		_, err := archive.NewOpener(client).Open(context.Background(), "s3://backups")
		assert.ErrorIs(t, err, archive.ErrUnsupportedLocation)
	})
}
