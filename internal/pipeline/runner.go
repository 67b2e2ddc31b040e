package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/finradar/newsengine/internal/analysis"
	"github.com/finradar/newsengine/internal/config"
	"github.com/finradar/newsengine/internal/feed"
	"github.com/finradar/newsengine/internal/news"
	"github.com/finradar/newsengine/internal/sentiment"
	"github.com/finradar/newsengine/internal/signals"
	"github.com/finradar/newsengine/internal/store"
)

// Runner drives one refresh cycle: fetch, score, detect, analyze, and
// persist. Runs are independent; state lives only in the output files.
type Runner struct {
	Config             config.Config
	Sources            *feed.Registry
	Client             *feed.Client
	Store              *store.Store
	SentimentProviders []feed.SentimentProvider

	// optional enrichment capabilities; nil keeps the deterministic
	// baseline
	Rewriter analysis.ReasonRewriter
	Refiner  sentiment.Refiner

	// Now overrides the clock in tests.
	Now func() time.Time
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

// Run executes the news and sentiment jobs. Both always run; their
// failures are joined so one broken half never hides the other.
func (r *Runner) Run(ctx context.Context) error {
	return errors.Join(r.RunNews(ctx), r.RunSentiment(ctx))
}

// RunNews refreshes the news bundle and the AI analysis output.
func (r *Runner) RunNews(ctx context.Context) error {
	runID := uuid.NewString()
	logger := log.DefaultLogger
	started := r.now()

	raw := r.Sources.FetchAll(ctx)
	articles := news.NormalizeDedup(raw, r.Config.MaxArticles)
	for i := range articles {
		res := news.ScoreTextWithHits(articles[i].Title+" "+articles[i].Description, r.Config.Symbols)
		articles[i].Score = res.Score
		articles[i].Hits = res.Hits
	}

	hot := r.selectHot(articles)

	clusters := make(map[string][]string)
	for _, detector := range signals.Builtin() {
		sig := detector.DetectAt(hot, signals.Options{Lookback: r.Config.Lookback(), Now: started})
		if sig.Strength <= 0 {
			continue
		}
		ids := make([]string, 0, len(sig.Evidence))
		for _, a := range sig.Evidence {
			ids = append(ids, a.ID)
		}
		clusters[sig.Key] = ids
		logger.Debug().Str("run", runID).Str("signal", sig.Key).
			Float64("strength", sig.Strength).Msg("signal detected")
	}

	out := analysis.Analyze(hot, analysis.Options{
		TopThemes:         r.Config.TopThemes,
		MaxActions:        r.Config.MaxActions,
		MinActionStrength: r.Config.MinActionStrength,
		Symbols:           r.Config.Symbols,
		Now:               started,
	})
	if len(clusters) > 0 {
		out.Clusters = clusters
	}

	if enriched, err := analysis.EnrichActions(ctx, r.Rewriter, out.Actions); err != nil {
		logger.Warn().Err(err).Str("run", runID).Msg("action enrichment failed, keeping deterministic reasons")
	} else {
		out.Actions = enriched
	}

	bundle := news.NewBundle(articles, started)
	if err := r.Store.SaveNewsBundle(bundle); err != nil {
		return fmt.Errorf("pipeline: save news bundle: %w", err)
	}
	if err := r.Store.SaveAIOutput(out); err != nil {
		return fmt.Errorf("pipeline: save ai output: %w", err)
	}

	logger.Info().Str("run", runID).
		Int("articles", bundle.Total).
		Int("hot", len(hot)).
		Int("themes", len(out.MainThemes)).
		Int("actions", len(out.Actions)).
		Dur("elapsed", time.Since(started)).
		Msg("news refresh complete")
	return nil
}

// RunSentiment refreshes the sentiment snapshot and its rolling history.
func (r *Runner) RunSentiment(ctx context.Context) error {
	runID := uuid.NewString()
	logger := log.DefaultLogger
	started := r.now()

	points := feed.FetchSentimentPoints(ctx, r.Client, r.SentimentProviders)

	history, err := r.Store.LoadSentimentHistory()
	if err != nil {
		return fmt.Errorf("pipeline: load sentiment history: %w", err)
	}

	snap := sentiment.BuildSnapshot(points, history, started)
	snap.History = history

	if r.Refiner != nil {
		if refined, err := r.Refiner.Refine(ctx, snap); err != nil {
			logger.Warn().Err(err).Str("run", runID).Msg("sentiment refinement failed, keeping deterministic snapshot")
		} else {
			snap = refined
		}
	}

	history = sentiment.AppendHistory(history, sentiment.HistoryPointFrom(snap))
	snap.History = history

	if err := r.Store.SaveSentimentHistory(history); err != nil {
		return fmt.Errorf("pipeline: save sentiment history: %w", err)
	}
	if err := r.Store.SaveSentimentSnapshot(snap); err != nil {
		return fmt.Errorf("pipeline: save sentiment snapshot: %w", err)
	}

	logger.Info().Str("run", runID).
		Int("points", len(points)).
		Int("globalScore", snap.GlobalScore).
		Str("regime", snap.MarketRegime.Label).
		Dur("elapsed", time.Since(started)).
		Msg("sentiment refresh complete")
	return nil
}

// selectHot keeps articles that pass the site filter and clear the
// minimum keyword score.
func (r *Runner) selectHot(articles []news.Article) []news.Article {
	hot := make([]news.Article, 0, len(articles))
	for _, a := range articles {
		if !news.IsFinanceURL(a.URL) {
			continue
		}
		if a.Score < r.Config.MinHotScore {
			continue
		}
		hot = append(hot, a)
	}
	return hot
}
