package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"newslab/internal/domain/entity"
)

func writeFeedsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFeeds(t *testing.T) {
	path := writeFeedsFile(t, `
sources:
  - name: reuters-business
    url: https://example.com/rss/business
    label: business
  - name: bbc-health
    url: https://example.com/rss/health
    label: health
    enabled: false
`)

	sources, err := LoadFeeds(path)
	require.NoError(t, err)
	require.Len(t, sources, 2)

	require.Equal(t, "reuters-business", sources[0].Name)
	require.Equal(t, entity.LabelBusiness, sources[0].Label)
	require.True(t, sources[0].Active, "enabled defaults to true")

	require.Equal(t, entity.LabelHealth, sources[1].Label)
	require.False(t, sources[1].Active)
}

func TestLoadFeeds_UnknownLabel(t *testing.T) {
	path := writeFeedsFile(t, `
sources:
  - name: sports-feed
    url: https://example.com/rss/sports
    label: sports
`)

	_, err := LoadFeeds(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "sports-feed")
}

func TestLoadFeeds_MissingFields(t *testing.T) {
	path := writeFeedsFile(t, `
sources:
  - name: no-url
    label: business
`)

	_, err := LoadFeeds(path)
	require.Error(t, err)
}

func TestLoadFeeds_EmptyFile(t *testing.T) {
	path := writeFeedsFile(t, "sources: []\n")

	_, err := LoadFeeds(path)
	require.Error(t, err)
}

func TestLoadFeeds_MissingFile(t *testing.T) {
	_, err := LoadFeeds(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestGoogleNewsSearchURL(t *testing.T) {
	got := GoogleNewsSearchURL("vaccine trial OR clinical trial when:30d")
	want := "https://news.google.com/rss/search?q=vaccine+trial+OR+clinical+trial+when:30d&hl=en-US&gl=US&ceid=US:en"
	require.Equal(t, want, got)
}

func TestDefaultSources(t *testing.T) {
	sources := DefaultSources()
	require.Len(t, sources, 25, "five queries per label")

	perLabel := map[entity.Label]int{}
	for _, src := range sources {
		perLabel[src.Label]++
		require.True(t, src.Active)
		require.True(t, strings.HasPrefix(src.FeedURL, "https://news.google.com/rss/search?q="))
		require.NoError(t, src.Validate())
	}
	for _, label := range entity.AllLabels() {
		require.Equal(t, 5, perLabel[label], "label %s", label)
	}

	// Deterministic ordering.
	again := DefaultSources()
	for i := range sources {
		require.Equal(t, sources[i].Name, again[i].Name)
	}
}
