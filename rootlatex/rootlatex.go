// Package rootlatex converts latex-flavored strings into the latex dialect
// understood by ROOT's text rendering. Inputs without recognized markup pass
// through unchanged.
package rootlatex

import "strings"

var replacer = strings.NewReplacer(
	"$", "",
	`\,`, "",
	`\;`, "",
	"~", " ",
	`\`, "#",
)

// Convert rewrites latex markup in s to ROOT latex: math-mode delimiters and
// thin spaces are stripped, non-breaking spaces become plain spaces, and
// backslash commands become hash commands.
func Convert(s string) string {
	return replacer.Replace(s)
}
