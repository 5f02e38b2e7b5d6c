package persist

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"spcuadros/internal/models"
)

var nonWord = regexp.MustCompile(`[^a-z0-9_]+`)

var underscores = regexp.MustCompile(`_+`)

// Title returns the whitespace-collapsed text of the first element matching
// selector, or "" when there is none.
func Title(text, selector string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return ""
	}

	return strings.Join(strings.Fields(doc.Find(selector).First().Text()), " ")
}

// Slugify strips accents and other non-ASCII runes, lowercases, turns every
// run of non-word characters into one underscore and caps the length.
func Slugify(s string, maxLen int) string {
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)

	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}

	slug := nonWord.ReplaceAllString(strings.ToLower(ascii), "_")
	slug = underscores.ReplaceAllString(slug, "_")
	slug = strings.Trim(slug, "_")

	if maxLen > 0 && len(slug) > maxLen {
		slug = strings.Trim(slug[:maxLen], "_")
	}

	return slug
}

// DeriveName builds the file stem of a resource from its title, falling back
// to the positional name when the title is missing or slugifies to nothing.
func DeriveName(text, selector string, ref models.ResourceRef, maxLen int) string {
	if name := Slugify(Title(text, selector), maxLen); name != "" {
		return name
	}

	return ref.FallbackName()
}
