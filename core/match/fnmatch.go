package match

import (
	"regexp"
	"strings"
)

// translate turns a shell wildcard into an equivalent full-match regular
// expression. "*" and "?" match any character including "/". A "[" without a
// closing "]" is taken literally.
func translate(pattern string) string {
	var b strings.Builder
	b.WriteString("^(?s:")

	n := len(pattern)
	for i := 0; i < n; {
		c := pattern[i]
		i++
		switch c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			j := i
			if j < n && pattern[j] == '!' {
				j++
			}
			if j < n && pattern[j] == ']' {
				j++
			}
			for j < n && pattern[j] != ']' {
				j++
			}
			if j >= n {
				b.WriteString(`\[`)
				continue
			}
			class := strings.ReplaceAll(pattern[i:j], `\`, `\\`)
			i = j + 1
			switch {
			case strings.HasPrefix(class, "!"):
				class = "^" + class[1:]
			case strings.HasPrefix(class, "^"):
				class = `\` + class
			}
			b.WriteString("[" + class + "]")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	b.WriteString(")$")
	return b.String()
}
