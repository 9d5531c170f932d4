// Package storage provides read access to archives kept in object storage.
//
// It wraps the MinIO Go client, which serves both AWS S3 and self-hosted MinIO
// instances. Archives addressed as "s3://bucket/key" are streamed straight from
// the object store into the verifier; they are never copied to local disk.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Tells a missing bucket apart from a missing object.
//   - StatObject: Confirms an archive exists before streaming starts.
//   - GetObject: Retrieves content as a stream.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	bucket, key, ok := storage.ParseURI("s3://backups/run-42.tar.gz")
//	rc, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
package storage
