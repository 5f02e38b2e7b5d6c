// Package validator decides whether a decoded payload is a usable tabular document.
package validator

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"spcuadros/internal/config"
)

// Rejection reasons.
var (
	ErrEmpty         = errors.New("payload is empty")
	ErrTooShort      = errors.New("payload is shorter than the minimum length")
	ErrNoTableMarker = errors.New("payload has no table marker")
	ErrNoRowMarker   = errors.New("payload has no row marker")
)

// Validator is a cheap syntactic sanity check. It never parses the document.
type Validator struct {
	minLength    int
	tableMarkers []string
	rowMarkers   []string
}

// New creates a validator from the validation section of the configuration.
// Markers are matched case-insensitively.
func New(cfg config.ValidationConfig) *Validator {
	return &Validator{
		minLength:    cfg.MinLength,
		tableMarkers: lowerAll(cfg.TableMarkers),
		rowMarkers:   lowerAll(cfg.RowMarkers),
	}
}

// Validate returns nil when text passes every rule, or the first reason it fails.
func (v *Validator) Validate(text string) error {
	if text == "" {
		return ErrEmpty
	}

	// Length is counted in characters, not bytes.
	if n := utf8.RuneCountInString(text); n < v.minLength {
		return fmt.Errorf("%w: %d < %d", ErrTooShort, n, v.minLength)
	}

	lower := strings.ToLower(text)

	if !containsAny(lower, v.tableMarkers) {
		return ErrNoTableMarker
	}

	if !containsAny(lower, v.rowMarkers) {
		return ErrNoRowMarker
	}

	return nil
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}

	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(s); s != "" {
			out = append(out, s)
		}
	}

	return out
}
