package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finradar/newsengine/internal/news"
)

type stubSource struct {
	name     string
	articles []news.Article
	err      error
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) Fetch(context.Context) ([]news.Article, error) {
	return s.articles, s.err
}

func TestRegistryRequiresSource(t *testing.T) {
	_, err := NewRegistry()
	assert.Error(t, err)
}

func TestFetchAllMergesSources(t *testing.T) {
	now := time.Now().UTC()
	registry, err := NewRegistry(
		stubSource{name: "a", articles: []news.Article{{URL: "https://x/1", Title: "one", PublishedAt: now}}},
		stubSource{name: "b", articles: []news.Article{{URL: "https://x/2", Title: "two", PublishedAt: now}}},
	)
	require.NoError(t, err)

	articles := registry.FetchAll(context.Background())
	assert.Len(t, articles, 2)
}

func TestFetchAllToleratesFailingSource(t *testing.T) {
	now := time.Now().UTC()
	registry, err := NewRegistry(
		stubSource{name: "ok", articles: []news.Article{{URL: "https://x/1", Title: "one", PublishedAt: now}}},
		stubSource{name: "broken", err: errors.New("connection refused")},
	)
	require.NoError(t, err)

	articles := registry.FetchAll(context.Background())
	require.Len(t, articles, 1)
	assert.Equal(t, "one", articles[0].Title)
}

func TestRegistryAdd(t *testing.T) {
	registry, err := NewRegistry(stubSource{name: "a"})
	require.NoError(t, err)

	registry.Add(stubSource{name: "b", articles: []news.Article{{URL: "https://x/2", Title: "two", PublishedAt: time.Now()}}})
	assert.Len(t, registry.FetchAll(context.Background()), 1)
}
