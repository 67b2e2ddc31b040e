package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"

	"github.com/finradar/newsengine/internal/analysis"
	"github.com/finradar/newsengine/internal/config"
	"github.com/finradar/newsengine/internal/feed"
	"github.com/finradar/newsengine/internal/llm"
	"github.com/finradar/newsengine/internal/pipeline"
	"github.com/finradar/newsengine/internal/sentiment"
	"github.com/finradar/newsengine/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	log.DefaultLogger = log.Logger{
		Level:  log.ParseLevel(cfg.LogLevel),
		Writer: &log.ConsoleWriter{ColorOutput: false},
	}

	runner, err := buildRunner(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init pipeline")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Schedule == "" {
		if err := runner.Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("refresh failed")
		}
		return
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Schedule, func() {
		if err := runner.Run(ctx); err != nil {
			log.Error().Err(err).Msg("scheduled refresh failed")
		}
	}); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.Schedule).Msg("invalid schedule")
	}

	// run once at startup so the dashboard is never empty until the
	// first tick
	if err := runner.Run(ctx); err != nil {
		log.Error().Err(err).Msg("initial refresh failed")
	}

	scheduler.Start()
	log.Info().Str("schedule", cfg.Schedule).Msg("scheduler started")

	<-ctx.Done()
	log.Info().Msg("signal received, stopping")
	<-scheduler.Stop().Done()
}

func buildRunner(cfg config.Config) (*pipeline.Runner, error) {
	client := feed.NewClient(cfg.HTTPTimeout, cfg.RequestsPerSecond)

	var sources []feed.Source
	for _, p := range cfg.NewsProviders {
		if p.KeyEnv != "" && p.APIKey == "" {
			log.Warn().Str("source", p.Name).Str("env", p.KeyEnv).Msg("news provider disabled, key not set")
			continue
		}
		src, err := feed.NewHTTPSource(p.Name, p.Endpoint, p.APIKey, p.Header, client)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if cfg.StaticNewsPath != "" {
		static, err := feed.NewStaticFileSource("static", cfg.StaticNewsPath)
		if err != nil {
			return nil, err
		}
		sources = append(sources, static)
	}

	registry, err := feed.NewRegistry(sources...)
	if err != nil {
		return nil, err
	}

	runner := &pipeline.Runner{
		Config:  cfg,
		Sources: registry,
		Client:  client,
		Store:   store.New(cfg.DataDir),
	}

	for _, p := range cfg.SentimentProviders {
		runner.SentimentProviders = append(runner.SentimentProviders, feed.SentimentProvider{
			Name:       p.Name,
			URL:        p.URL,
			AssetClass: sentiment.AssetClass(p.AssetClass),
			APIKey:     p.APIKey,
			Header:     p.Header,
		})
	}

	if cfg.LLMAPIKey != "" {
		var opts []func(*llm.Client)
		if cfg.LLMBaseURL != "" {
			opts = append(opts, llm.WithBaseURL(cfg.LLMBaseURL))
		}
		chat := llm.NewClient(cfg.LLMAPIKey, opts...)
		runner.Rewriter = &analysis.LLMRewriter{Client: chat, Model: cfg.LLMModel, MaxTokens: cfg.LLMMaxTokens}
		runner.Refiner = &sentiment.LLMRefiner{Client: chat, Model: cfg.LLMModel, MaxTokens: cfg.LLMMaxTokens}
		log.Info().Str("model", cfg.LLMModel).Msg("LLM enrichment enabled")
	}

	return runner, nil
}
