package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"newslab/internal/domain/entity"
)

// processedHeader is the fixed column order of processed.csv.
var processedHeader = []string{
	"id", "label", "source", "url", "published_at", "title", "summary", "text", "scraped_at",
}

// Row is one flattened, cleaned dataset row as read back from processed.csv,
// carrying just what the trainer needs.
type Row struct {
	ID    string
	Label entity.Label
	URL   string
	Title string
	Text  string
}

// RebuildCSV derives processed.csv from the raw store. The rebuild is a pure
// function of raw.jsonl content: rows keep first-seen order, and any id that
// somehow appears twice in the raw file is written only once.
func RebuildCSV(ctx context.Context, raw *JSONLStore, csvPath string) (int, error) {
	articles, err := raw.ReadAll(ctx)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(csvPath), 0o755); err != nil {
		return 0, fmt.Errorf("create data dir: %w", err)
	}

	f, err := os.Create(csvPath)
	if err != nil {
		return 0, fmt.Errorf("create processed csv: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := csv.NewWriter(f)
	if err := w.Write(processedHeader); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}

	written := 0
	seen := make(map[string]struct{}, len(articles))
	for _, a := range articles {
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}

		record := []string{
			a.ID,
			string(a.Label),
			a.Source,
			a.URL,
			a.PublishedAt,
			a.Title,
			a.Summary,
			a.Text,
			a.ScrapedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := w.Write(record); err != nil {
			return written, fmt.Errorf("write csv row: %w", err)
		}
		written++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return written, fmt.Errorf("flush processed csv: %w", err)
	}
	return written, nil
}

// LoadCSV reads processed.csv back into trainer rows. Rows with an unknown
// label are rejected: the five-category invariant holds for the whole file or
// the load fails.
func LoadCSV(csvPath string) ([]Row, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("open processed csv: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"id", "label", "url", "title", "text"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("processed csv missing column %q", required)
		}
	}

	var rows []Row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		label, err := entity.ParseLabel(record[col["label"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, Row{
			ID:    record[col["id"]],
			Label: label,
			URL:   record[col["url"]],
			Title: record[col["title"]],
			Text:  record[col["text"]],
		})
	}
	return rows, nil
}
