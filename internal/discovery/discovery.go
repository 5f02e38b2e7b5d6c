// Package discovery supplies the resource references of a batch.
//
// Link navigation for each dataset lives outside this module; Source is the
// seam it plugs into.
package discovery

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"spcuadros/internal/models"
)

// ErrInvalidURL is returned for a list entry that is not an absolute http(s) URL.
var ErrInvalidURL = errors.New("invalid resource url")

// Source produces the references of one batch, in publication order.
type Source interface {
	Refs(ctx context.Context) ([]models.ResourceRef, error)
}

// ListSource reads one URL per line. Blank lines and lines starting with "#"
// are skipped; indexes are 1-based in file order.
type ListSource struct {
	r io.Reader
}

// NewListSource reads the list from r.
func NewListSource(r io.Reader) *ListSource {
	return &ListSource{r: r}
}

// Refs implements Source.
func (s *ListSource) Refs(ctx context.Context) ([]models.ResourceRef, error) {
	var refs []models.ResourceRef

	sc := bufio.NewScanner(s.r)
	line := 0

	for sc.Scan() {
		line++

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		if !validURL(text) {
			return nil, fmt.Errorf("%w at line %d: %q", ErrInvalidURL, line, text)
		}

		refs = append(refs, models.ResourceRef{URL: text, Index: len(refs) + 1})
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read url list: %w", err)
	}

	return refs, nil
}

// FromFile returns the references listed in path, or on stdin when path is "-".
func FromFile(ctx context.Context, path string) ([]models.ResourceRef, error) {
	if path == "-" {
		return NewListSource(os.Stdin).Refs(ctx)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open url list: %w", err)
	}
	defer f.Close()

	return NewListSource(f).Refs(ctx)
}

// StaticSource returns refs for a fixed set of URLs.
type StaticSource []string

// Refs implements Source.
func (s StaticSource) Refs(ctx context.Context) ([]models.ResourceRef, error) {
	return NewListSource(strings.NewReader(strings.Join(s, "\n"))).Refs(ctx)
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
