// Package reconcile verifies that an archive faithfully represents a directory.
//
// The Engine makes exactly one forward pass over the archive. For every
// regular-file member it resolves the on-disk counterpart, checksums the
// member content and the disk file one after the other, and records a
// Mismatch when the digests differ. At most one member stream and one file are
// open at any time and no member list is accumulated, so memory stays bounded
// by the two block sizes no matter how large the archive is.
//
// # Entry lifecycle
//
//	listed -> classified -> skipped-non-file | skipped-symlink | skipped-excluded | resolved
//	resolved -> checksummed -> matched | mismatched
//
// Directories and other non-file members are skipped quietly. Symlink members
// are skipped with a warning: archives are expected to store links
// dereferenced, so a link member means the archive was built without -h.
//
// # Failure policy
//
// Mismatches are collected and the pass runs to completion. A member with no
// on-disk counterpart (resolve.ErrMissingFile) or an unreadable counterpart
// (resolve.ErrPermissionDenied) aborts the whole run: the directory must be a
// verified superset of the archive, so a partial result would be misleading.
//
// # Usage
//
//	engine := reconcile.NewEngine(archive.NewOpener(nil), matcher, log, reconcile.DefaultOptions())
//	result, err := engine.Run(ctx, "/backups/data.tar.bz2", "/srv/data")
//	if err != nil {
//	    return err
//	}
//	for _, m := range result.Errors {
//	    fmt.Println(m)
//	}
package reconcile
