// Package coverage reports files that exist on disk but are absent from an
// archive.
//
// The archive member list is stripped of N leading path components, for N from
// 0 up to a configured bound, and compared against the regular files found
// below the directory root. The first level at which every file is covered,
// or at which only some files are missing, decides the report. When no level
// overlaps at all the report falls back to level 0 and lists every file.
//
// Coverage is advisory. It never changes the outcome of a verification run.
package coverage
