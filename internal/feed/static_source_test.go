package feed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "news.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStaticFileSourceBareArray(t *testing.T) {
	path := writeFixture(t, `[
		{"url": "https://www.reuters.com/a", "title": "one", "publishedAt": "2026-08-27T10:00:00Z"},
		{"url": "https://www.reuters.com/b", "title": "two", "publishedAt": "2026-08-27T11:00:00Z"}
	]`)

	src, err := NewStaticFileSource("static", path)
	require.NoError(t, err)

	articles, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, articles, 2)
	assert.Equal(t, "static", articles[0].Source)
}

func TestStaticFileSourceWrappedObject(t *testing.T) {
	path := writeFixture(t, `{"articles": [{"url": "https://www.ft.com/a", "title": "one", "publishedAt": "2026-08-27T10:00:00Z"}]}`)

	src, err := NewStaticFileSource("static", path)
	require.NoError(t, err)

	articles, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, articles, 1)
}

func TestStaticFileSourceInvalidJSON(t *testing.T) {
	path := writeFixture(t, `not json`)

	src, err := NewStaticFileSource("static", path)
	require.NoError(t, err)

	_, err = src.Fetch(context.Background())
	assert.Error(t, err)
}

func TestStaticFileSourceMissingFile(t *testing.T) {
	_, err := NewStaticFileSource("static", filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestStaticFileSourceCancelledContext(t *testing.T) {
	path := writeFixture(t, `[]`)
	src, err := NewStaticFileSource("static", path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = src.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
