package archive

import (
	"path"
	"strings"
)

// Normalize cleans a member path: backslashes become slashes, "." and ".."
// segments are resolved, and leading "./" or "/" is removed. A path that
// names the archive root normalizes to "".
func Normalize(name string) string {
	p := strings.ReplaceAll(name, `\`, "/")
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}

// StripComponents removes the first n slash-separated components of p, the
// way tar --strip-components does. ok is false when nothing remains.
func StripComponents(p string, n int) (stripped string, ok bool) {
	p = Normalize(p)
	if n <= 0 {
		return p, p != ""
	}
	parts := strings.Split(p, "/")
	if len(parts) <= n {
		return "", false
	}
	return strings.Join(parts[n:], "/"), true
}

// StripAll applies StripComponents to every path and drops the ones that
// vanish. Order is preserved.
func StripAll(paths []string, n int) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if s, ok := StripComponents(p, n); ok {
			out = append(out, s)
		}
	}
	return out
}
