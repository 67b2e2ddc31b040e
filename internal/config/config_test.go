package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RADAR_CONFIG", filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 96, cfg.LookbackHours)
	assert.Equal(t, 96*time.Hour, cfg.Lookback())
	assert.Equal(t, 0.30, cfg.MinActionStrength)
	assert.Equal(t, 4, cfg.MaxActions)
	assert.Equal(t, 3, cfg.TopThemes)
	assert.Equal(t, 6, cfg.MinHotScore)
	assert.Equal(t, 400, cfg.MaxArticles)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	assert.Empty(t, cfg.Schedule)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "radar.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[pipeline]
data_dir = "/var/radar"
schedule = "*/30 * * * *"
min_hot_score = 8
symbols = ["US500", "XAUUSD"]

[news]
static_path = "fixtures/news.json"

[[news.providers]]
name = "wire"
endpoint = "https://example.com/feed"
key_env = "WIRE_KEY"

[[sentiment.providers]]
name = "fx"
url = "https://example.com/fx"
asset_class = "forex"

[llm]
model = "gpt-4o"
max_tokens = 512
`), 0o644))

	t.Setenv("RADAR_CONFIG", path)
	t.Setenv("WIRE_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/radar", cfg.DataDir)
	assert.Equal(t, "*/30 * * * *", cfg.Schedule)
	assert.Equal(t, 8, cfg.MinHotScore)
	assert.Equal(t, []string{"US500", "XAUUSD"}, cfg.Symbols)
	assert.Equal(t, "fixtures/news.json", cfg.StaticNewsPath)
	assert.Equal(t, "gpt-4o", cfg.LLMModel)
	assert.Equal(t, 512, cfg.LLMMaxTokens)

	require.Len(t, cfg.NewsProviders, 1)
	assert.Equal(t, "secret", cfg.NewsProviders[0].APIKey)

	require.Len(t, cfg.SentimentProviders, 1)
	assert.Equal(t, "forex", cfg.SentimentProviders[0].AssetClass)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "radar.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[pipeline]
data_dir = "/var/radar"
max_actions = 2
`), 0o644))

	t.Setenv("RADAR_CONFIG", path)
	t.Setenv("RADAR_DATA_DIR", "/tmp/out")
	t.Setenv("RADAR_MAX_ACTIONS", "6")
	t.Setenv("RADAR_MIN_ACTION_STRENGTH", "0.45")
	t.Setenv("RADAR_SYMBOLS", "US500, NAS100 ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/out", cfg.DataDir)
	assert.Equal(t, 6, cfg.MaxActions)
	assert.Equal(t, 0.45, cfg.MinActionStrength)
	assert.Equal(t, []string{"US500", "NAS100"}, cfg.Symbols)
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	t.Setenv("RADAR_CONFIG", filepath.Join(t.TempDir(), "absent.toml"))
	t.Setenv("RADAR_MAX_ACTIONS", "many")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "radar.toml")
	require.NoError(t, os.WriteFile(path, []byte(`[pipeline`), 0o644))
	t.Setenv("RADAR_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}
