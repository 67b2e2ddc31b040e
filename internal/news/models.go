package news

import "time"

// Article is a single news document after ingestion. ID is assigned at
// dedup time as a content hash of host and title; articles inside a
// persisted bundle are never mutated, each refresh produces a new bundle.
type Article struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
	Description string    `json:"description,omitempty"`
	Tickers     []string  `json:"tickers,omitempty"`
	Lang        string    `json:"lang,omitempty"`
	Score       int       `json:"score,omitempty"`
	Hits        []string  `json:"hits,omitempty"`
}

// Bundle is one refresh cycle's article snapshot, replaced wholesale on
// each run. Articles are sorted by PublishedAt descending.
type Bundle struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Total       int       `json:"total"`
	Articles    []Article `json:"articles"`
}

// NewBundle wraps a deduplicated article list into a Bundle snapshot.
func NewBundle(articles []Article, generatedAt time.Time) Bundle {
	return Bundle{
		GeneratedAt: generatedAt.UTC(),
		Total:       len(articles),
		Articles:    articles,
	}
}
