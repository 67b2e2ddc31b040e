package signals

import (
	"math"
	"strings"
	"time"

	"github.com/finradar/newsengine/internal/news"
)

// Signal is the derived strength of a named macro/market narrative,
// recomputed from scratch on every run and consumed immediately.
type Signal struct {
	Key      string         `json:"key"`
	Label    string         `json:"label"`
	Region   string         `json:"region"`
	Strength float64        `json:"strength"`
	Evidence []news.Article `json:"evidences"`
}

// GateFunc decides whether a normalized article text is on-topic for a
// detector before its keywords are even considered.
type GateFunc func(normalized string) bool

// Options tunes ComputeStrength. Zero values fall back to the fixed
// defaults (96h lookback, no gate, wall-clock now).
type Options struct {
	Lookback time.Duration
	Gate     GateFunc
	Now      time.Time
}

// Result is the output of one strength computation.
type Result struct {
	Strength float64
	Evidence []news.Article
}

const (
	// DefaultLookback is the recency window for detector inputs.
	DefaultLookback = 96 * time.Hour

	// maxEvidence caps the articles attached to a signal.
	maxEvidence = 6

	// hitRatioFloor keeps the hit ratio meaningful on thin article sets.
	hitRatioFloor = 10
)

// sourceWeights maps known wire/finance outlets to credibility weights.
// Unknown sources default to 0.6.
var sourceWeights = map[string]float64{
	"reuters":             1.0,
	"bloomberg":           1.0,
	"financial times":     0.95,
	"ft":                  0.95,
	"wall street journal": 0.9,
	"wsj":                 0.9,
	"cnbc":                0.8,
	"marketwatch":         0.8,
	"les echos":           0.8,
	"ap":                  0.85,
	"associated press":    0.85,
	"investing.com":       0.7,
	"yahoo finance":       0.7,
	"zonebourse":          0.65,
	"boursorama":          0.65,
	"seeking alpha":       0.6,
}

// SourceWeight returns the credibility weight for a source name.
func SourceWeight(source string) float64 {
	if w, ok := sourceWeights[strings.ToLower(strings.TrimSpace(source))]; ok {
		return w
	}
	return 0.6
}

// ComputeStrength blends keyword-hit ratio, source credibility, and
// recency into a [0,1] strength for one narrative:
//
//	s = 0.5·hitRatio + 0.3·(srcAvg−0.5) + 0.2·freshAvg
//
// hitRatio = matched / max(10, recents); freshness is 1.0 within 24h,
// 0.6 within 48h, 0.3 beyond. The coefficients are fixed design
// constants; changing them changes every downstream output.
func ComputeStrength(articles []news.Article, keywords []string, opts Options) Result {
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	lookback := opts.Lookback
	if lookback <= 0 {
		lookback = DefaultLookback
	}

	var recents int
	var matched []news.Article
	for _, a := range articles {
		if now.Sub(a.PublishedAt) > lookback {
			continue
		}
		recents++

		text := news.Normalize(a.Title + " " + a.Description)
		if opts.Gate != nil && !opts.Gate(text) {
			continue
		}
		if !news.ContainsAny(text, keywords) {
			continue
		}
		matched = append(matched, a)
	}

	if len(matched) == 0 {
		return Result{}
	}

	hitRatio := float64(len(matched)) / math.Max(hitRatioFloor, float64(recents))

	var srcSum, freshSum float64
	for _, a := range matched {
		srcSum += SourceWeight(a.Source)
		freshSum += freshnessWeight(now.Sub(a.PublishedAt))
	}
	srcAvg := srcSum / float64(len(matched))
	freshAvg := freshSum / float64(len(matched))

	s := clamp01(0.5*hitRatio + 0.3*(srcAvg-0.5) + 0.2*freshAvg)

	evidence := matched
	if len(evidence) > maxEvidence {
		evidence = evidence[:maxEvidence]
	}

	return Result{Strength: s, Evidence: evidence}
}

func freshnessWeight(age time.Duration) float64 {
	switch {
	case age <= 24*time.Hour:
		return 1.0
	case age <= 48*time.Hour:
		return 0.6
	default:
		return 0.3
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
