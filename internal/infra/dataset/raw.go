// Package dataset implements the on-disk stores for harvested articles:
// an append-only JSONL raw store and the flattened processed CSV table.
package dataset

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"newslab/internal/common/dedup"
	"newslab/internal/domain/entity"
)

// JSONLStore persists articles as one JSON object per line. The file is the
// single source of truth for the pipeline: the seen-URL set is rebuilt from it
// and the processed CSV is derived from it.
type JSONLStore struct {
	path string
}

// NewJSONLStore creates a store backed by the given file path. The parent
// directory is created on first append.
func NewJSONLStore(path string) *JSONLStore {
	return &JSONLStore{path: path}
}

// Path returns the backing file path.
func (s *JSONLStore) Path() string {
	return s.path
}

// Append writes one article as a JSON line. The store never rewrites existing
// lines; persisted articles are immutable.
func (s *JSONLStore) Append(ctx context.Context, a *entity.Article) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open raw store: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	line, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode article: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append to raw store: %w", err)
	}
	return nil
}

// ReadAll loads every article from the store in file order. Malformed lines
// are logged and skipped rather than failing the whole read, mirroring the
// tolerance the collector needs when resuming over a partially written file.
func (s *JSONLStore) ReadAll(ctx context.Context) ([]*entity.Article, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open raw store: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var articles []*entity.Article
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var a entity.Article
		if err := json.Unmarshal(raw, &a); err != nil {
			slog.Warn("skipping malformed raw line",
				slog.String("path", s.path),
				slog.Int("line", lineNo),
				slog.Any("error", err))
			continue
		}
		articles = append(articles, &a)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan raw store: %w", err)
	}
	return articles, nil
}

// LoadSeen rebuilds the known-URL set from the store. A missing file yields
// an empty set, so a fresh data directory starts collection from zero.
func (s *JSONLStore) LoadSeen(ctx context.Context) (*dedup.Set, error) {
	articles, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(articles))
	for _, a := range articles {
		if a.ID != "" {
			ids = append(ids, a.ID)
		}
	}
	return dedup.FromIDs(ids), nil
}
