// Package models defines data structures shared by the fetch, extraction and persistence stages.
package models

import "fmt"

// ResourceRef is a fetchable cuadro location produced by link discovery.
type ResourceRef struct {
	URL string `json:"url"`
	// Index is 1-based and only used as a naming fallback.
	Index int `json:"index"`
}

// FallbackName returns the positional name used when no title is found.
func (r ResourceRef) FallbackName() string {
	return fmt.Sprintf("cuadro_%02d", r.Index)
}

// RawArtifact is the decoded, structurally valid page of one resource.
type RawArtifact struct {
	Ref      ResourceRef `json:"ref"`
	Text     string      `json:"-"`
	Encoding string      `json:"encoding"`
	Attempts int         `json:"attempts"`
}
