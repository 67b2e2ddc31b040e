package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/finradar/newsengine/internal/news"
)

// rawArticle is the collaborator contract every news provider maps to.
type rawArticle struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
	Description string `json:"description"`
}

var articleTimeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
}

// HTTPSource fetches articles from a JSON news endpoint. A source
// without an API key is disabled: it returns no articles and no error.
type HTTPSource struct {
	name     string
	endpoint string
	apiKey   string
	header   string
	client   *Client
}

// NewHTTPSource constructs an HTTPSource. header names the request
// header carrying the API key and defaults to "Authorization" with a
// Bearer prefix.
func NewHTTPSource(name, endpoint, apiKey, header string, client *Client) (*HTTPSource, error) {
	if name == "" {
		return nil, fmt.Errorf("feed: http source requires a name")
	}
	if endpoint == "" {
		return nil, fmt.Errorf("feed: http source %s requires an endpoint", name)
	}
	if client == nil {
		return nil, fmt.Errorf("feed: http source %s requires a client", name)
	}
	return &HTTPSource{name: name, endpoint: endpoint, apiKey: apiKey, header: header, client: client}, nil
}

// Name returns the source name.
func (s *HTTPSource) Name() string { return s.name }

// Fetch retrieves and decodes the provider payload. Items with missing
// fields or unparseable dates are dropped silently as input defects.
func (s *HTTPSource) Fetch(ctx context.Context) ([]news.Article, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	headers := map[string]string{}
	if s.header != "" {
		headers[s.header] = s.apiKey
	} else {
		headers["Authorization"] = "Bearer " + s.apiKey
	}

	var payload struct {
		Articles []rawArticle `json:"articles"`
	}
	if err := s.client.GetJSON(ctx, s.endpoint, headers, &payload); err != nil {
		return nil, fmt.Errorf("feed: fetch %s: %w", s.name, err)
	}

	return mapRawArticles(payload.Articles, s.name), nil
}

func mapRawArticles(raws []rawArticle, fallbackSource string) []news.Article {
	out := make([]news.Article, 0, len(raws))
	for _, r := range raws {
		if r.URL == "" || r.Title == "" {
			continue
		}
		published, ok := parseArticleTime(r.PublishedAt)
		if !ok {
			continue
		}
		source := strings.TrimSpace(r.Source)
		if source == "" {
			source = fallbackSource
		}
		out = append(out, news.Article{
			URL:         r.URL,
			Title:       r.Title,
			Source:      source,
			PublishedAt: published,
			Description: r.Description,
		})
	}
	return out
}

func parseArticleTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range articleTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
