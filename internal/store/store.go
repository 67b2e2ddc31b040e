package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/finradar/newsengine/internal/analysis"
	"github.com/finradar/newsengine/internal/news"
	"github.com/finradar/newsengine/internal/sentiment"
)

// Store persists pipeline outputs as plain JSON files under a root
// directory, the format the dashboard reads. Each run replaces the
// files wholesale; there is exactly one writer per path.
type Store struct {
	root string
}

// New constructs a Store rooted at dir.
func New(dir string) *Store {
	return &Store{root: dir}
}

// SaveNewsBundle writes news/latest.json and the dated snapshot.
func (s *Store) SaveNewsBundle(bundle news.Bundle) error {
	date := bundle.GeneratedAt.Format("2006-01-02")
	if err := s.writeJSON(filepath.Join("news", "latest.json"), bundle); err != nil {
		return err
	}
	return s.writeJSON(filepath.Join("news", "news-"+date+".json"), bundle)
}

// SaveAIOutput writes ai/latest.json and the dated snapshot.
func (s *Store) SaveAIOutput(out analysis.Output) error {
	date := out.GeneratedAt.Format("2006-01-02")
	if err := s.writeJSON(filepath.Join("ai", "latest.json"), out); err != nil {
		return err
	}
	return s.writeJSON(filepath.Join("ai", "ai-"+date+".json"), out)
}

// SaveSentimentSnapshot writes sentiment/latest.json.
func (s *Store) SaveSentimentSnapshot(snap sentiment.Snapshot) error {
	return s.writeJSON(filepath.Join("sentiment", "latest.json"), snap)
}

// SaveSentimentHistory writes sentiment/history.json.
func (s *Store) SaveSentimentHistory(history []sentiment.HistoryPoint) error {
	return s.writeJSON(filepath.Join("sentiment", "history.json"), history)
}

// LoadSentimentHistory reads sentiment/history.json. A missing file is
// an empty history, not an error.
func (s *Store) LoadSentimentHistory() ([]sentiment.HistoryPoint, error) {
	data, err := os.ReadFile(filepath.Join(s.root, "sentiment", "history.json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: read history: %w", err)
	}

	var history []sentiment.HistoryPoint
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("store: decode history: %w", err)
	}
	return history, nil
}

func (s *Store) writeJSON(rel string, v any) error {
	path := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("store: mkdir for %s: %w", rel, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", rel, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", rel, err)
	}
	return nil
}
