package news

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// DefaultMaxArticles caps a bundle when no explicit limit is given.
const DefaultMaxArticles = 400

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// NormalizeDedup cleans, deduplicates, caps, and sorts a raw article
// collection into a canonical bundle slice. Articles missing a URL or
// title are dropped, duplicates share an ID (host + lowercased title)
// and first occurrence wins, the cap applies after dedup in arrival
// order, and the final output is sorted by PublishedAt descending.
func NormalizeDedup(articles []Article, max int) []Article {
	if max <= 0 {
		max = DefaultMaxArticles
	}

	seen := make(map[string]struct{}, len(articles))
	out := make([]Article, 0, len(articles))

	for _, a := range articles {
		a.URL = strings.TrimSpace(a.URL)
		a.Title = strings.TrimSpace(a.Title)
		a.Source = strings.TrimSpace(a.Source)
		if a.URL == "" || a.Title == "" {
			continue
		}
		if a.Lang == "" {
			a.Lang = "en"
		}
		a.Description = cleanDescription(a.Description)
		a.ID = ArticleID(a.URL, a.Title)

		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}

		out = append(out, a)
		if len(out) == max {
			break
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})

	return out
}

// ArticleID derives the stable dedup identifier: hex digest of the
// lowercased host (without "www.") and lowercased title. Two distinct
// URLs sharing host and title intentionally collapse to one article.
func ArticleID(rawURL, title string) string {
	host := "unknown"
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		host = strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	}
	sum := sha256.Sum256([]byte(host + ":" + strings.ToLower(title)))
	return hex.EncodeToString(sum[:])
}

func cleanDescription(desc string) string {
	desc = htmlTagPattern.ReplaceAllString(desc, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(desc, " "))
}
