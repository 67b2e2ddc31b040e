package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finradar/newsengine/internal/analysis"
	"github.com/finradar/newsengine/internal/news"
	"github.com/finradar/newsengine/internal/sentiment"
)

var storeNow = time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

func TestSaveNewsBundleWritesLatestAndDated(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	bundle := news.NewBundle([]news.Article{
		{ID: "a1", URL: "https://www.reuters.com/a", Title: "one", PublishedAt: storeNow},
	}, storeNow)
	require.NoError(t, s.SaveNewsBundle(bundle))

	for _, name := range []string{"latest.json", "news-2026-08-27.json"} {
		data, err := os.ReadFile(filepath.Join(dir, "news", name))
		require.NoError(t, err, name)

		var got news.Bundle
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, 1, got.Total)
		assert.Equal(t, "one", got.Articles[0].Title)
	}
}

func TestSaveAIOutput(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	out := analysis.Output{
		GeneratedAt: storeNow,
		MainThemes:  []analysis.Theme{{Label: "Banques centrales: cap sur l'assouplissement", Weight: 3.5}},
		Actions:     []analysis.Action{},
	}
	require.NoError(t, s.SaveAIOutput(out))

	data, err := os.ReadFile(filepath.Join(dir, "ai", "ai-2026-08-27.json"))
	require.NoError(t, err)

	var got analysis.Output
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got.MainThemes, 1)
	assert.Equal(t, 3.5, got.MainThemes[0].Weight)
}

func TestSentimentHistoryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	history := []sentiment.HistoryPoint{
		{GeneratedAt: storeNow, GlobalScore: 55, Forex: 50, Stocks: 60, Commodities: 55},
	}
	require.NoError(t, s.SaveSentimentHistory(history))

	got, err := s.LoadSentimentHistory()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 55, got[0].GlobalScore)
	assert.True(t, got[0].GeneratedAt.Equal(storeNow))
}

func TestLoadSentimentHistoryMissingFile(t *testing.T) {
	s := New(t.TempDir())

	history, err := s.LoadSentimentHistory()
	assert.NoError(t, err)
	assert.Nil(t, history)
}

func TestLoadSentimentHistoryCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sentiment"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sentiment", "history.json"), []byte("{"), 0o644))

	_, err := New(dir).LoadSentimentHistory()
	assert.Error(t, err)
}

func TestSaveSentimentSnapshot(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	snap := sentiment.BuildSnapshot([]sentiment.Point{
		{Source: "fx", AssetClass: sentiment.Forex, Score: 70},
	}, nil, storeNow)
	require.NoError(t, s.SaveSentimentSnapshot(snap))

	data, err := os.ReadFile(filepath.Join(dir, "sentiment", "latest.json"))
	require.NoError(t, err)

	var got sentiment.Snapshot
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, snap.GlobalScore, got.GlobalScore)
	assert.Equal(t, snap.MarketRegime.Label, got.MarketRegime.Label)
}
