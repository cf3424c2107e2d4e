package index

import (
	"regexp"
	"strconv"
	"strings"
)

// identifierPattern matches keys that can be rendered in dotted form.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// FormatPath renders path segments into the canonical display form.
// Examples: [] -> "$", [a, 0, "odd key"] -> `$.a[0]["odd key"]`.
// Numeric segments render as [N]; identifier-like keys as .key; anything
// else as a bracket-quoted key with backslash and double quote escaped.
func FormatPath(segments []Segment) string {
	var b strings.Builder
	b.WriteByte('$')
	for _, seg := range segments {
		switch {
		case seg.IsIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.Index))
			b.WriteByte(']')
		case identifierPattern.MatchString(seg.Key):
			b.WriteByte('.')
			b.WriteString(seg.Key)
		default:
			b.WriteString(`["`)
			b.WriteString(escapeKey(seg.Key))
			b.WriteString(`"]`)
		}
	}
	return b.String()
}

func escapeKey(key string) string {
	key = strings.ReplaceAll(key, `\`, `\\`)
	return strings.ReplaceAll(key, `"`, `\"`)
}
