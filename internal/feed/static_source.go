package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/finradar/newsengine/internal/news"
)

// StaticFileSource serves articles from a JSON file, for offline runs
// and tests.
type StaticFileSource struct {
	name string
	path string
}

// NewStaticFileSource returns a new StaticFileSource referencing the
// given file.
func NewStaticFileSource(name, path string) (*StaticFileSource, error) {
	if name == "" {
		return nil, fmt.Errorf("feed: static source requires a name")
	}
	if path == "" {
		return nil, fmt.Errorf("feed: static source requires a path")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("feed: static source: %w", err)
	}
	return &StaticFileSource{name: name, path: path}, nil
}

// Name returns the source name.
func (s *StaticFileSource) Name() string { return s.name }

// Fetch reads and decodes the JSON file. The file holds either a bare
// article array or an {"articles": [...]} object.
func (s *StaticFileSource) Fetch(ctx context.Context) ([]news.Article, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("feed: read static file %s: %w", s.path, err)
	}

	var raws []rawArticle
	if err := json.Unmarshal(data, &raws); err != nil {
		var wrapped struct {
			Articles []rawArticle `json:"articles"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("feed: decode static file %s: %w", s.path, err)
		}
		raws = wrapped.Articles
	}

	return mapRawArticles(raws, s.name), nil
}
