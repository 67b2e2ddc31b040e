package signals

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finradar/newsengine/internal/news"
)

var testNow = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func article(title, source string, age time.Duration) news.Article {
	return news.Article{
		URL:         "https://reuters.com/" + title,
		Title:       title,
		Source:      source,
		PublishedAt: testNow.Add(-age),
	}
}

func TestComputeStrengthEmptyInput(t *testing.T) {
	res := ComputeStrength(nil, []string{"tariff"}, Options{Now: testNow})
	assert.Zero(t, res.Strength)
	assert.Empty(t, res.Evidence)
}

func TestComputeStrengthNoMatches(t *testing.T) {
	articles := []news.Article{article("quiet day on markets", "Reuters", time.Hour)}
	res := ComputeStrength(articles, []string{"tariff"}, Options{Now: testNow})
	assert.Zero(t, res.Strength)
	assert.Empty(t, res.Evidence)
}

func TestComputeStrengthRange(t *testing.T) {
	var articles []news.Article
	for i := 0; i < 30; i++ {
		articles = append(articles, article(fmt.Sprintf("tariff news %d", i), "Reuters", time.Hour))
	}
	res := ComputeStrength(articles, []string{"tariff"}, Options{Now: testNow})

	assert.Greater(t, res.Strength, 0.0)
	assert.LessOrEqual(t, res.Strength, 1.0)
	assert.Len(t, res.Evidence, 6, "evidence capped at 6")
}

func TestComputeStrengthMonotonicInHitRatio(t *testing.T) {
	// same freshness and source for all, so only the hit ratio moves
	build := func(matching int) []news.Article {
		var out []news.Article
		for i := 0; i < matching; i++ {
			out = append(out, article(fmt.Sprintf("tariff story %d", i), "Reuters", time.Hour))
		}
		for i := matching; i < 20; i++ {
			out = append(out, article(fmt.Sprintf("unrelated story %d", i), "Reuters", time.Hour))
		}
		return out
	}

	prev := 0.0
	for matching := 1; matching <= 20; matching++ {
		res := ComputeStrength(build(matching), []string{"tariff"}, Options{Now: testNow})
		assert.GreaterOrEqual(t, res.Strength, prev, "matching=%d", matching)
		prev = res.Strength
	}
}

func TestComputeStrengthLookbackExcludesStale(t *testing.T) {
	articles := []news.Article{article("tariff shock", "Reuters", 97*time.Hour)}
	res := ComputeStrength(articles, []string{"tariff"}, Options{Now: testNow})
	assert.Zero(t, res.Strength)
}

func TestComputeStrengthGate(t *testing.T) {
	articles := []news.Article{article("rate cut expected", "Reuters", time.Hour)}

	gated := ComputeStrength(articles, []string{"rate cut"}, Options{
		Now:  testNow,
		Gate: func(string) bool { return false },
	})
	assert.Zero(t, gated.Strength)

	open := ComputeStrength(articles, []string{"rate cut"}, Options{Now: testNow})
	assert.Greater(t, open.Strength, 0.0)
}

func TestSourceWeightDefaults(t *testing.T) {
	assert.Equal(t, 1.0, SourceWeight("Reuters"))
	assert.Equal(t, 0.6, SourceWeight("random blog"))
}

func TestDetectTariffsUS(t *testing.T) {
	articles := []news.Article{
		article("US imposes sweeping tariffs on imports", "Reuters", time.Hour),
		article("New export controls target chipmakers", "Bloomberg", 2*time.Hour),
	}

	sig := DetectTariffsUS(articles)
	require.Equal(t, "tariffs-us", sig.Key)
	assert.Greater(t, sig.Strength, 0.0)
	assert.Len(t, sig.Evidence, 2)
}

func TestDetectDovishUSGateRequiresUSContext(t *testing.T) {
	// dovish keywords without any US anchor should be gated out
	articles := []news.Article{
		{URL: "https://reuters.com/x", Title: "ECB considers rate cut as eurozone slows",
			Source: "Reuters", PublishedAt: time.Now().UTC().Add(-time.Hour)},
	}
	sig := DetectDovishUS(articles)
	assert.Zero(t, sig.Strength)

	articles[0].Title = "Fed signals rate cut ahead"
	sig = DetectDovishUS(articles)
	assert.Greater(t, sig.Strength, 0.0)
}
