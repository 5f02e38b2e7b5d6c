package fetcher

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"
)

// Encoding names reported in RawArtifact.Encoding.
const (
	EncodingUTF8     = "utf-8"
	EncodingFallback = "iso-8859-1"
)

var cleanup = strings.NewReplacer("\u00a0", " ", "Â", "")

// Decode turns a response body into text. It tries UTF-8, then the charset
// declared by contentType or sniffed from the document, then ISO-8859-1, which
// accepts any byte sequence. It never fails.
func Decode(body []byte, contentType string) (string, string) {
	if utf8.Valid(body) {
		return string(body), EncodingUTF8
	}

	enc, name, _ := charset.DetermineEncoding(body, contentType)
	if enc != nil && name != EncodingUTF8 {
		if out, err := enc.NewDecoder().Bytes(body); err == nil {
			return string(out), name
		}
	}

	out, err := charmap.ISO8859_1.NewDecoder().Bytes(body)
	if err != nil {
		// unreachable for a single-byte table; keep the bytes as they are
		return string(body), EncodingFallback
	}

	return string(out), EncodingFallback
}

// Clean replaces non-breaking spaces with plain spaces and drops stray "Â"
// left behind by double-decoded Latin-1 text.
func Clean(text string) string {
	return cleanup.Replace(text)
}
