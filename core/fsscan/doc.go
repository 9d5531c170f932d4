// Package fsscan enumerates the contents of a reference directory.
//
// Scan walks the tree in lexical order and reports every directory below the
// root and every regular file, each with a slash-separated path relative to the
// root. Symlinks that resolve to a regular file are reported as files, matching
// archives created with dereferenced links.
package fsscan
