package feed

import (
	"context"
	"errors"
	"sync"

	"github.com/phuslu/log"

	"github.com/finradar/newsengine/internal/news"
)

// Source is a pluggable upstream provider of raw articles.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]news.Article, error)
}

// Registry keeps track of available news sources.
type Registry struct {
	sources []Source
}

// NewRegistry builds a registry with the provided sources.
func NewRegistry(sources ...Source) (*Registry, error) {
	if len(sources) == 0 {
		return nil, errors.New("feed: at least one source is required")
	}
	return &Registry{sources: sources}, nil
}

// Add registers a new source instance.
func (r *Registry) Add(source Source) {
	r.sources = append(r.sources, source)
}

// FetchAll fetches from every source in parallel. A failing source
// contributes zero articles for this run and is logged as a warning;
// there are no retries.
func (r *Registry) FetchAll(ctx context.Context) []news.Article {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []news.Article
	)

	for _, src := range r.sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			items, err := src.Fetch(ctx)
			if err != nil {
				log.Warn().Err(err).Str("source", src.Name()).Msg("news source failed, skipping for this run")
				return
			}
			mu.Lock()
			results = append(results, items...)
			mu.Unlock()
		}(src)
	}
	wg.Wait()

	return results
}
