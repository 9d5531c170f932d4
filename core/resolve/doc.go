// Package resolve maps archive member paths to files on disk.
//
// An archive of a directory may have been created from inside the directory,
// so its members are directory-relative ("a.txt"), or from the parent, so every
// member carries the directory's own name ("data/a.txt"). A Resolver tries an
// ordered chain of strategies for each member independently and returns the
// first candidate that exists:
//
//   - DirectoryRelative: root/member
//   - ParentRelative:    parent(root)/member
//   - StripLevel(n):     root/member-without-its-first-n-components
//
// The default chain is DirectoryRelative followed by ParentRelative. When the
// strip level is known up front, a chain of just StripLevel(n) replaces it.
package resolve
