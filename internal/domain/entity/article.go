// Package entity defines the core domain entities and validation logic for the
// harvesting pipeline: articles, feed sources, labels, and their invariants.
package entity

import (
	"crypto/sha1"
	"encoding/hex"
	"time"
)

// Article is a single harvested news article. Once persisted to the raw store
// an Article is immutable; the canonical URL (equivalently ID) is globally
// unique across the dataset.
type Article struct {
	ID          string    `json:"id"`
	Label       Label     `json:"label"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt string    `json:"published_at"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Text        string    `json:"text"`
	ScrapedAt   time.Time `json:"scraped_at"`
}

// StableID derives the article identity from its canonical URL.
// sha1 is an identity key here, not a security boundary.
func StableID(url string) string {
	sum := sha1.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Validate checks the invariants an Article must satisfy before it may be
// persisted. Malformed articles (missing title or body) are rejected so they
// never reach the dataset.
func (a *Article) Validate() error {
	if err := ValidateURL(a.URL); err != nil {
		return err
	}
	if a.ID == "" {
		return &ValidationError{Field: "id", Message: "id is required"}
	}
	if a.ID != StableID(a.URL) {
		return &ValidationError{Field: "id", Message: "id does not match url digest"}
	}
	if a.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if a.Text == "" {
		return &ValidationError{Field: "text", Message: "text is required"}
	}
	if !a.Label.Valid() {
		return &ValidationError{Field: "label", Message: "label must be one of the five categories"}
	}
	return nil
}
