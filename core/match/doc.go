// Package match decides whether a relative path is excluded from verification.
//
// A Rule carries at most one of a shell wildcard or a regular expression.
//
// Wildcards match against the whole path, not only its base name. With the
// default shell syntax "*" also crosses "/" boundaries, so "*.jpg" excludes
// "photos/a.jpg". The path syntax uses doublestar semantics instead, where "*"
// stays inside one segment and "**" spans segments.
//
// Regular expressions are anchored at the start of the path only: "sepi.[cr|b]am"
// excludes "sepi.bam.bai" as well as "sepi.bam".
package match
