// Feed catalog diagnostic: polls every configured feed once and reports
// reachability, item counts, and freshness without touching the dataset.
//
// Usage:
//
//	go run scripts/diagnose_feeds.go [feeds.yaml]
//
// Without an argument the built-in Google News catalog is checked.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"

	appconfig "newslab/internal/config"
	"newslab/internal/domain/entity"
)

// FeedDiagnostic is the per-feed check result.
type FeedDiagnostic struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	Label        string `json:"label"`
	Status       string `json:"status"` // "OK", "ERROR", "EMPTY", "DISABLED"
	ItemCount    int    `json:"item_count"`
	LatestDate   string `json:"latest_date,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

func main() {
	sources, err := loadSources()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load sources: %v\n", err)
		os.Exit(1)
	}

	parser := gofeed.NewParser()
	parser.UserAgent = "newslab-diagnose/1.0"
	parser.Client = &http.Client{Timeout: 15 * time.Second}

	healthy := 0
	results := make([]FeedDiagnostic, 0, len(sources))
	for _, src := range sources {
		diag := checkFeed(parser, src)
		if diag.Status == "OK" {
			healthy++
		}
		results = append(results, diag)

		fmt.Printf("%-28s %-8s items=%-4d %dms", diag.Name, diag.Status, diag.ItemCount, diag.ResponseTime)
		if diag.ErrorMessage != "" {
			fmt.Printf("  %s", diag.ErrorMessage)
		}
		fmt.Println()
	}

	fmt.Printf("\n%d/%d feeds healthy\n\n", healthy, len(sources))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		fmt.Fprintf(os.Stderr, "encode results: %v\n", err)
		os.Exit(1)
	}

	if healthy < len(sources) {
		os.Exit(1)
	}
}

func loadSources() ([]*entity.Source, error) {
	if len(os.Args) > 1 {
		return appconfig.LoadFeeds(os.Args[1])
	}
	return appconfig.DefaultSources(), nil
}

func checkFeed(parser *gofeed.Parser, src *entity.Source) FeedDiagnostic {
	diag := FeedDiagnostic{
		Name:  src.Name,
		URL:   src.FeedURL,
		Label: string(src.Label),
	}
	if !src.Active {
		diag.Status = "DISABLED"
		return diag
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	start := time.Now()
	feed, err := parser.ParseURLWithContext(src.FeedURL, ctx)
	diag.ResponseTime = time.Since(start).Milliseconds()

	if err != nil {
		diag.Status = "ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}

	diag.ItemCount = len(feed.Items)
	if diag.ItemCount == 0 {
		diag.Status = "EMPTY"
		return diag
	}

	diag.Status = "OK"
	var latest time.Time
	for _, item := range feed.Items {
		if item.PublishedParsed != nil && item.PublishedParsed.After(latest) {
			latest = *item.PublishedParsed
		}
	}
	if !latest.IsZero() {
		diag.LatestDate = latest.UTC().Format(time.RFC3339)
	}
	return diag
}
