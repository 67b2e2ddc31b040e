package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/finradar/newsengine/internal/news"
	"github.com/finradar/newsengine/internal/signals"
)

// Theme is a ranked, weighted narrative label.
type Theme struct {
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// Action is a deterministic, rule-generated trade idea. Explanation is
// left empty for the optional enrichment step to fill.
type Action struct {
	Symbol      string   `json:"symbol"`
	Direction   string   `json:"direction"`
	Conviction  int      `json:"conviction"`
	Confidence  int      `json:"confidence"`
	Reason      string   `json:"reason"`
	EvidenceIDs []string `json:"evidenceIds,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
	ThemeLabel  string   `json:"themeLabel,omitempty"`
	Horizon     string   `json:"horizon,omitempty"`
}

// Output is the persisted result of one analysis cycle, replaced
// wholesale on each run.
type Output struct {
	GeneratedAt time.Time           `json:"generatedAt"`
	MainThemes  []Theme             `json:"mainThemes"`
	Actions     []Action            `json:"actions"`
	Clusters    map[string][]string `json:"clusters,omitempty"`
}

// Options tunes Analyze. Zero values fall back to the defaults below.
type Options struct {
	TopThemes         int
	MaxActions        int
	MinActionStrength float64
	Symbols           []string
	Now               time.Time
}

const (
	defaultTopThemes         = 3
	defaultMaxActions        = 4
	defaultMinActionStrength = 0.30
)

// Analyze runs the fixed rule table over the article set and produces
// ranked themes plus deterministic trade actions. Same articles, same
// options, same output.
func Analyze(articles []news.Article, opts Options) Output {
	if opts.TopThemes <= 0 {
		opts.TopThemes = defaultTopThemes
	}
	if opts.MaxActions <= 0 {
		opts.MaxActions = defaultMaxActions
	}
	if opts.MinActionStrength <= 0 {
		opts.MinActionStrength = defaultMinActionStrength
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	pool := opts.Symbols
	if len(pool) == 0 {
		pool = DefaultSymbolPool
	}

	out := Output{
		GeneratedAt: now,
		MainThemes:  []Theme{},
		Actions:     []Action{},
	}

	rules := BuiltinRules()

	// themes: rank by weighted strength, truncate, then drop data
	// release labels. The filter runs after truncation, so a top-N slot
	// can be lost without backfill.
	themes := make([]Theme, 0, len(rules))
	for _, rule := range rules {
		s, _ := themeStrength(articles, rule.Includes, rule.Excludes, now)
		if s <= 0 {
			continue
		}
		themes = append(themes, Theme{Label: rule.Label, Weight: round3(s * rule.Weight)})
	}
	sort.SliceStable(themes, func(i, j int) bool {
		return themes[i].Weight > themes[j].Weight
	})
	if len(themes) > opts.TopThemes {
		themes = themes[:opts.TopThemes]
	}
	for _, theme := range themes {
		if news.ContainsAny(news.Normalize(theme.Label), dataReleaseTerms) {
			continue
		}
		out.MainThemes = append(out.MainThemes, theme)
	}

	// actions: each rule with ideas is re-scored on its own (possibly
	// narrower) keyword set; the threshold boundary is inclusive.
	for _, rule := range rules {
		if len(rule.Ideas) == 0 {
			continue
		}
		keywords := rule.ActionKeywords
		if len(keywords) == 0 {
			keywords = rule.Includes
		}
		s, evidence := themeStrength(articles, keywords, rule.Excludes, now)
		if s < opts.MinActionStrength {
			continue
		}

		confidence := int(math.Round(clampF(25+s*70, 25, 95)))
		conviction := clampI(5+int(math.Round((s-0.5)*6)), 1, 10)
		evidenceIDs := make([]string, 0, len(evidence))
		for _, a := range evidence {
			evidenceIDs = append(evidenceIDs, a.ID)
		}

		for _, idea := range rule.Ideas {
			out.Actions = append(out.Actions, Action{
				Symbol:      pickSymbol(idea.Candidates, pool),
				Direction:   idea.Direction,
				Conviction:  conviction,
				Confidence:  confidence,
				Reason:      fmt.Sprintf("%s (s=%.2f)", idea.Reason, s),
				EvidenceIDs: evidenceIDs,
				ThemeLabel:  rule.Label,
				Horizon:     idea.Horizon,
			})
		}
	}

	sort.SliceStable(out.Actions, func(i, j int) bool {
		return out.Actions[i].Confidence > out.Actions[j].Confidence
	})
	if len(out.Actions) > opts.MaxActions {
		out.Actions = out.Actions[:opts.MaxActions]
	}

	return out
}

// themeStrength is the simplified strength variant used by the rule
// table: no lookback or gate, hit ratio floored at 8, freshness buckets
// 1.0/0.5/0.25 at 24h/48h. The blend coefficients match the detectors.
func themeStrength(articles []news.Article, includes, excludes []string, now time.Time) (float64, []news.Article) {
	if len(articles) == 0 {
		return 0, nil
	}

	var matched []news.Article
	for _, a := range articles {
		text := news.Normalize(a.Title + " " + a.Description)
		if len(excludes) > 0 && news.ContainsAny(text, excludes) {
			continue
		}
		if !news.ContainsAny(text, includes) {
			continue
		}
		matched = append(matched, a)
	}
	if len(matched) == 0 {
		return 0, nil
	}

	hitRatio := float64(len(matched)) / math.Max(8, float64(len(articles)))

	var srcSum, freshSum float64
	for _, a := range matched {
		srcSum += signals.SourceWeight(a.Source)
		age := now.Sub(a.PublishedAt)
		switch {
		case age <= 24*time.Hour:
			freshSum += 1.0
		case age <= 48*time.Hour:
			freshSum += 0.5
		default:
			freshSum += 0.25
		}
	}
	srcAvg := srcSum / float64(len(matched))
	freshAvg := freshSum / float64(len(matched))

	s := clampF(0.5*hitRatio+0.3*(srcAvg-0.5)+0.2*freshAvg, 0, 1)

	evidence := matched
	if len(evidence) > 6 {
		evidence = evidence[:6]
	}
	return s, evidence
}

func pickSymbol(candidates, pool []string) string {
	for _, c := range candidates {
		for _, p := range pool {
			if c == p {
				return c
			}
		}
	}
	return pool[0]
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
