package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// NewsProvider configures one upstream news endpoint. The API key comes
// from the environment variable named by KeyEnv; without it the source
// is disabled and contributes nothing.
type NewsProvider struct {
	Name     string `toml:"name"`
	Endpoint string `toml:"endpoint"`
	KeyEnv   string `toml:"key_env"`
	Header   string `toml:"header"`
	APIKey   string `toml:"-"`
}

// SentimentProvider configures one external sentiment feed.
type SentimentProvider struct {
	Name       string `toml:"name"`
	URL        string `toml:"url"`
	AssetClass string `toml:"asset_class"`
	KeyEnv     string `toml:"key_env"`
	Header     string `toml:"header"`
	APIKey     string `toml:"-"`
}

// Config captures runtime configuration for the pipeline. Defaults are
// overridden by the optional TOML file, which is overridden by RADAR_*
// environment variables.
type Config struct {
	DataDir           string
	StaticNewsPath    string
	Schedule          string
	LogLevel          string
	LookbackHours     int
	MinActionStrength float64
	MaxActions        int
	TopThemes         int
	MinHotScore       int
	MaxArticles       int
	Symbols           []string
	HTTPTimeout       time.Duration
	RequestsPerSecond float64

	NewsProviders      []NewsProvider
	SentimentProviders []SentimentProvider

	LLMAPIKey    string
	LLMModel     string
	LLMBaseURL   string
	LLMMaxTokens int
}

// fileConfig mirrors the TOML layout.
type fileConfig struct {
	Pipeline struct {
		DataDir           string   `toml:"data_dir"`
		Schedule          string   `toml:"schedule"`
		LogLevel          string   `toml:"log_level"`
		LookbackHours     int      `toml:"lookback_hours"`
		MinActionStrength float64  `toml:"min_action_strength"`
		MaxActions        int      `toml:"max_actions"`
		TopThemes         int      `toml:"top_themes"`
		MinHotScore       int      `toml:"min_hot_score"`
		MaxArticles       int      `toml:"max_articles"`
		Symbols           []string `toml:"symbols"`
	} `toml:"pipeline"`
	News struct {
		StaticPath string         `toml:"static_path"`
		Providers  []NewsProvider `toml:"providers"`
	} `toml:"news"`
	Sentiment struct {
		Providers []SentimentProvider `toml:"providers"`
	} `toml:"sentiment"`
	LLM struct {
		Model     string `toml:"model"`
		BaseURL   string `toml:"base_url"`
		MaxTokens int    `toml:"max_tokens"`
	} `toml:"llm"`
}

// Load assembles the configuration: defaults, then the TOML file named
// by RADAR_CONFIG (default radar.toml, skipped when absent), then
// environment variables.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DataDir:           "data",
		LogLevel:          "info",
		LookbackHours:     96,
		MinActionStrength: 0.30,
		MaxActions:        4,
		TopThemes:         3,
		MinHotScore:       6,
		MaxArticles:       400,
		HTTPTimeout:       15 * time.Second,
		RequestsPerSecond: 4,
		LLMModel:          "gpt-4o-mini",
		LLMMaxTokens:      1024,
	}

	path := getEnv("RADAR_CONFIG", "radar.toml")
	if err := applyFile(&cfg, path); err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	// keys are resolved here so the rest of the code never reads the env
	for i := range cfg.NewsProviders {
		if cfg.NewsProviders[i].KeyEnv != "" {
			cfg.NewsProviders[i].APIKey = os.Getenv(cfg.NewsProviders[i].KeyEnv)
		}
	}
	for i := range cfg.SentimentProviders {
		if cfg.SentimentProviders[i].KeyEnv != "" {
			cfg.SentimentProviders[i].APIKey = os.Getenv(cfg.SentimentProviders[i].KeyEnv)
		}
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	p := fc.Pipeline
	if p.DataDir != "" {
		cfg.DataDir = p.DataDir
	}
	if p.Schedule != "" {
		cfg.Schedule = p.Schedule
	}
	if p.LogLevel != "" {
		cfg.LogLevel = p.LogLevel
	}
	if p.LookbackHours > 0 {
		cfg.LookbackHours = p.LookbackHours
	}
	if p.MinActionStrength > 0 {
		cfg.MinActionStrength = p.MinActionStrength
	}
	if p.MaxActions > 0 {
		cfg.MaxActions = p.MaxActions
	}
	if p.TopThemes > 0 {
		cfg.TopThemes = p.TopThemes
	}
	if p.MinHotScore > 0 {
		cfg.MinHotScore = p.MinHotScore
	}
	if p.MaxArticles > 0 {
		cfg.MaxArticles = p.MaxArticles
	}
	if len(p.Symbols) > 0 {
		cfg.Symbols = p.Symbols
	}
	if fc.News.StaticPath != "" {
		cfg.StaticNewsPath = fc.News.StaticPath
	}
	cfg.NewsProviders = fc.News.Providers
	cfg.SentimentProviders = fc.Sentiment.Providers
	if fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if fc.LLM.MaxTokens > 0 {
		cfg.LLMMaxTokens = fc.LLM.MaxTokens
	}

	return nil
}

func applyEnv(cfg *Config) error {
	cfg.DataDir = getEnv("RADAR_DATA_DIR", cfg.DataDir)
	cfg.StaticNewsPath = getEnv("RADAR_STATIC_NEWS", cfg.StaticNewsPath)
	cfg.Schedule = getEnv("RADAR_SCHEDULE", cfg.Schedule)
	cfg.LogLevel = getEnv("RADAR_LOG_LEVEL", cfg.LogLevel)
	cfg.LLMAPIKey = getEnv("RADAR_LLM_API_KEY", cfg.LLMAPIKey)
	cfg.LLMModel = getEnv("RADAR_LLM_MODEL", cfg.LLMModel)
	cfg.LLMBaseURL = getEnv("RADAR_LLM_BASE_URL", cfg.LLMBaseURL)

	if symbols := os.Getenv("RADAR_SYMBOLS"); symbols != "" {
		cfg.Symbols = splitList(symbols)
	}

	if err := scanInt("RADAR_LOOKBACK_H", &cfg.LookbackHours); err != nil {
		return err
	}
	if err := scanInt("RADAR_MAX_ACTIONS", &cfg.MaxActions); err != nil {
		return err
	}
	if err := scanInt("RADAR_TOP_THEMES", &cfg.TopThemes); err != nil {
		return err
	}
	if err := scanInt("RADAR_MIN_HOT_SCORE", &cfg.MinHotScore); err != nil {
		return err
	}
	if err := scanInt("RADAR_MAX_ARTICLES", &cfg.MaxArticles); err != nil {
		return err
	}
	if err := scanInt("RADAR_LLM_MAX_TOKENS", &cfg.LLMMaxTokens); err != nil {
		return err
	}
	if err := scanFloat("RADAR_MIN_ACTION_STRENGTH", &cfg.MinActionStrength); err != nil {
		return err
	}
	return nil
}

// Lookback exposes the lookback window as a duration.
func (c Config) Lookback() time.Duration {
	return time.Duration(c.LookbackHours) * time.Hour
}

func scanInt(key string, dst *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	if _, err := fmt.Sscanf(value, "%d", dst); err != nil {
		return fmt.Errorf("config: parse %s: %w", key, err)
	}
	return nil
}

func scanFloat(key string, dst *float64) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	if _, err := fmt.Sscanf(value, "%f", dst); err != nil {
		return fmt.Errorf("config: parse %s: %w", key, err)
	}
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
