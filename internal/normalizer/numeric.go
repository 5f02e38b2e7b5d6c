// Package normalizer rewrites Chilean-formatted numbers ("1.234,56") into dot-decimal form.
package normalizer

import (
	"regexp"
	"strings"
)

// numberPattern matches grouped thousands with an optional decimal part, a bare
// decimal, or a bare integer. Word boundaries keep it off tokens like "A1".
var numberPattern = regexp.MustCompile(`\b\d{1,3}(?:\.\d{3})*(?:,\d+)?\b|\b\d+(?:,\d+)\b|\b\d+\b`)

// RewriteToken converts one matched numeric token: thousands separators are
// removed, then the decimal comma becomes a dot.
func RewriteToken(tok string) string {
	tok = strings.ReplaceAll(tok, ".", "")
	return strings.Replace(tok, ",", ".", 1)
}

// RewriteText rewrites every numeric token inside s and leaves the rest untouched.
func RewriteText(s string) string {
	if !containsDigit(s) {
		return s
	}

	return numberPattern.ReplaceAllStringFunc(s, RewriteToken)
}

func containsDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}

	return false
}
