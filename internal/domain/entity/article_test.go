package entity

import (
	"strings"
	"testing"
	"time"
)

func validArticle() *Article {
	url := "https://example.com/news/article-1"
	return &Article{
		ID:          StableID(url),
		Label:       LabelTech,
		Source:      "example.com",
		URL:         url,
		PublishedAt: "Mon, 01 Jan 2024 00:00:00 +0000",
		Title:       "Example headline",
		Summary:     "Short summary",
		Text:        "Full body text of the article.",
		ScrapedAt:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStableID_Deterministic(t *testing.T) {
	a := StableID("https://example.com/a")
	b := StableID("https://example.com/a")
	if a != b {
		t.Fatalf("StableID not deterministic: %q != %q", a, b)
	}
	if len(a) != 40 {
		t.Errorf("StableID length = %d, want 40 hex chars", len(a))
	}
	if a == StableID("https://example.com/b") {
		t.Error("different URLs must produce different ids")
	}
}

func TestArticle_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Article)
		wantErr bool
	}{
		{"valid", func(a *Article) {}, false},
		{"missing title", func(a *Article) { a.Title = "" }, true},
		{"missing text", func(a *Article) { a.Text = "" }, true},
		{"missing url", func(a *Article) { a.URL = "" }, true},
		{"invalid label", func(a *Article) { a.Label = "sports" }, true},
		{"missing id", func(a *Article) { a.ID = "" }, true},
		{"id mismatch", func(a *Article) { a.ID = StableID("https://other.example.com") }, true},
		{"non-http scheme", func(a *Article) {
			a.URL = "ftp://example.com/x"
			a.ID = StableID(a.URL)
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validArticle()
			tt.mutate(a)
			err := a.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL_Length(t *testing.T) {
	long := "https://example.com/" + strings.Repeat("a", maxURLLength)
	if err := ValidateURL(long); err == nil {
		t.Error("expected error for oversized URL")
	}
}

func TestParseLabel(t *testing.T) {
	for _, l := range AllLabels() {
		got, err := ParseLabel(string(l))
		if err != nil {
			t.Fatalf("ParseLabel(%q) error = %v", l, err)
		}
		if got != l {
			t.Errorf("ParseLabel(%q) = %q", l, got)
		}
	}

	if _, err := ParseLabel("finance"); err == nil {
		t.Error("expected error for unknown label")
	}
}

func TestLabel_DisplayName(t *testing.T) {
	if got := LabelTech.DisplayName(); got != "Technology" {
		t.Errorf("DisplayName() = %q, want Technology", got)
	}
	if got := LabelWorld.DisplayName(); got != "World" {
		t.Errorf("DisplayName() = %q, want World", got)
	}
}

func TestSource_Validate(t *testing.T) {
	src := &Source{Name: "google-news-tech", FeedURL: "https://news.google.com/rss/search?q=ai", Label: LabelTech, Active: true}
	if err := src.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	bad := &Source{Name: "", FeedURL: "https://example.com", Label: LabelTech}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for missing name")
	}

	badLabel := &Source{Name: "x", FeedURL: "https://example.com", Label: "memes"}
	if err := badLabel.Validate(); err == nil {
		t.Error("expected error for invalid label")
	}
}
