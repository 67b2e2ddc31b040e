package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finradar/newsengine/internal/sentiment"
)

func TestFetchSentimentPoints(t *testing.T) {
	forex := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"score": 0.5, "totalArticles": 12, "bullishArticles": 8, "bearishArticles": 4}`))
	}))
	defer forex.Close()
	stocks := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value": 62}`))
	}))
	defer stocks.Close()
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	points := FetchSentimentPoints(context.Background(), testClient(), []SentimentProvider{
		{Name: "fx", URL: forex.URL, AssetClass: sentiment.Forex},
		{Name: "eq", URL: stocks.URL, AssetClass: sentiment.Stocks},
		{Name: "co", URL: broken.URL, AssetClass: sentiment.Commodities},
		{Name: "unset", AssetClass: sentiment.Commodities},
	})

	require.Len(t, points, 2)
	byName := map[string]sentiment.Point{}
	for _, p := range points {
		byName[p.Source] = p
	}

	fx := byName["fx"]
	assert.Equal(t, sentiment.Forex, fx.AssetClass)
	assert.InDelta(t, 75.0, fx.Score, 1e-9)
	assert.Equal(t, 12, fx.TotalArticles)
	assert.Equal(t, 8, fx.BullishArticles)
	assert.Equal(t, 4, fx.BearishArticles)

	eq := byName["eq"]
	assert.InDelta(t, 62.0, eq.Score, 1e-9)
	assert.Zero(t, eq.TotalArticles)
}

func TestFetchSentimentPointsUnusablePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	points := FetchSentimentPoints(context.Background(), testClient(), []SentimentProvider{
		{Name: "fx", URL: server.URL, AssetClass: sentiment.Forex},
	})
	assert.Empty(t, points)
}

func TestFetchSentimentPointsSendsKey(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Key")
		w.Write([]byte(`{"score": 55}`))
	}))
	defer server.Close()

	points := FetchSentimentPoints(context.Background(), testClient(), []SentimentProvider{
		{Name: "fx", URL: server.URL, AssetClass: sentiment.Forex, APIKey: "secret", Header: "X-Key"},
	})
	require.Len(t, points, 1)
	assert.Equal(t, "secret", gotKey)
}
