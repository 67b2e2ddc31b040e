package feed

import (
	"context"
	"sync"

	"github.com/phuslu/log"

	"github.com/finradar/newsengine/internal/sentiment"
)

// SentimentProvider describes one external sentiment feed. A provider
// with an empty URL is simply not configured: its point is omitted, not
// zeroed.
type SentimentProvider struct {
	Name       string
	URL        string
	AssetClass sentiment.AssetClass
	APIKey     string
	Header     string
}

// FetchSentimentPoints queries every configured provider in parallel and
// returns the points that yielded a usable score. Failures and
// unextractable payloads drop the point with a warning.
func FetchSentimentPoints(ctx context.Context, client *Client, providers []SentimentProvider) []sentiment.Point {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		points []sentiment.Point
	)

	for _, provider := range providers {
		if provider.URL == "" {
			continue
		}
		wg.Add(1)
		go func(p SentimentProvider) {
			defer wg.Done()
			point, ok := fetchOnePoint(ctx, client, p)
			if !ok {
				return
			}
			mu.Lock()
			points = append(points, point)
			mu.Unlock()
		}(provider)
	}
	wg.Wait()

	return points
}

func fetchOnePoint(ctx context.Context, client *Client, p SentimentProvider) (sentiment.Point, bool) {
	headers := map[string]string{}
	if p.APIKey != "" {
		if p.Header != "" {
			headers[p.Header] = p.APIKey
		} else {
			headers["Authorization"] = "Bearer " + p.APIKey
		}
	}

	var payload map[string]any
	if err := client.GetJSON(ctx, p.URL, headers, &payload); err != nil {
		log.Warn().Err(err).Str("provider", p.Name).Msg("sentiment provider failed, skipping for this run")
		return sentiment.Point{}, false
	}

	score, ok := sentiment.ExtractScore(payload)
	if !ok {
		log.Warn().Str("provider", p.Name).Msg("sentiment provider payload has no usable score")
		return sentiment.Point{}, false
	}

	// article counters are best-effort; most feeds do not expose them
	return sentiment.Point{
		Source:          p.Name,
		AssetClass:      p.AssetClass,
		Score:           score,
		TotalArticles:   intField(payload, "totalArticles"),
		BullishArticles: intField(payload, "bullishArticles"),
		BearishArticles: intField(payload, "bearishArticles"),
		Meta:            payload,
	}, true
}

func intField(payload map[string]any, key string) int {
	if v, ok := payload[key].(float64); ok && v > 0 {
		return int(v)
	}
	return 0
}
