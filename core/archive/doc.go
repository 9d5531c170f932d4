// Package archive streams tar archives entry by entry.
//
// An archive is read strictly forward. The compression layer (gzip, bzip2, xz,
// zstd or none) is detected from the leading magic bytes, so callers never
// name it. Entry content is exposed as a reader that is valid only until the
// next call to Next; nothing about earlier entries is retained.
//
// # Locations
//
// Opener resolves an archive location to a byte stream:
//   - "-" reads standard input
//   - "s3://bucket/key" streams the object from the configured storage client
//   - anything else is a local file path
//
// # Usage
//
//	rc, err := opener.Open(ctx, "s3://backups/run-42.tar.gz")
//	if err != nil {
//	    return err
//	}
//	defer rc.Close()
//	err = archive.Walk(ctx, rc, func(e *archive.Entry) error {
//	    fmt.Println(e.Kind, e.Path)
//	    return nil
//	})
package archive
