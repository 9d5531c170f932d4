// Package checksum computes streaming content digests.
//
// Content is folded into the running digest one fixed-size block at a time, so
// the memory needed to checksum a source never depends on the size of the source.
// Two block sizes are provided: FileBlockSize for files opened from disk and
// ArchiveBlockSize for content streamed out of an archive.
//
// # Algorithms
//
//   - md5 (default, 128-bit)
//   - sha256, sha384, sha512 (registered through opencontainers/go-digest)
//
// # Usage
//
//	sum, err := checksum.Sum(r, checksum.MD5, checksum.ArchiveBlockSize)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(sum)
package checksum
