package sentiment

import "time"

// AssetClass is one of the three aggregated market segments.
type AssetClass string

// Known asset classes.
const (
	Forex       AssetClass = "forex"
	Stocks      AssetClass = "stocks"
	Commodities AssetClass = "commodities"
)

// Point is one external feed's sentiment reading for the current cycle.
// Absent providers simply contribute no point. Article counts are
// optional; feeds that expose them drive the bull/bear balance and the
// news-flow tension metric.
type Point struct {
	Source          string         `json:"source"`
	AssetClass      AssetClass     `json:"assetClass"`
	Score           float64        `json:"score"`
	TotalArticles   int            `json:"totalArticles,omitempty"`
	BullishArticles int            `json:"bullishArticles,omitempty"`
	BearishArticles int            `json:"bearishArticles,omitempty"`
	Meta            map[string]any `json:"meta,omitempty"`
}

// Theme is the aggregated per-asset-class sentiment reading.
type Theme struct {
	Key       AssetClass `json:"key"`
	Label     string     `json:"label"`
	Score     int        `json:"score"`
	Direction string     `json:"direction"`
	Comment   string     `json:"comment,omitempty"`
}

// Regime labels the overall market state.
type Regime struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Confidence  int    `json:"confidence"`
}

// RiskIndicator is one scored risk gauge with a display value and a
// banded comment.
type RiskIndicator struct {
	Label     string `json:"label"`
	Score     int    `json:"score"`
	Value     string `json:"value"`
	Direction string `json:"direction"`
	Comment   string `json:"comment"`
}

// FocusDriver is a short labeled explanation of what currently dominates
// the aggregate read.
type FocusDriver struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Suggestion is an optional enrichment-produced positioning hint.
type Suggestion struct {
	Stance  string `json:"stance"`
	Market  string `json:"market"`
	Comment string `json:"comment"`
}

// Snapshot is the aggregate sentiment state for one refresh cycle,
// replaced wholesale each run.
type Snapshot struct {
	GeneratedAt     time.Time       `json:"generatedAt"`
	GlobalScore     int             `json:"globalScore"`
	MarketRegime    Regime          `json:"marketRegime"`
	Themes          []Theme         `json:"themes"`
	RiskIndicators  []RiskIndicator `json:"riskIndicators"`
	FocusDrivers    []FocusDriver   `json:"focusDrivers"`
	Sources         []string        `json:"sources"`
	SourceConsensus int             `json:"sourceConsensus,omitempty"`
	TensionScore    *int            `json:"tensionScore,omitempty"`
	TensionRatio    *float64        `json:"tensionRatio,omitempty"`
	TotalArticles   int             `json:"totalArticles,omitempty"`
	BullishArticles int             `json:"bullishArticles,omitempty"`
	BearishArticles int             `json:"bearishArticles,omitempty"`
	Suggestions     []Suggestion    `json:"suggestions,omitempty"`
	History         []HistoryPoint  `json:"history,omitempty"`
}

// HistoryPoint is one run's footprint in the rolling history log.
type HistoryPoint struct {
	GeneratedAt     time.Time `json:"generatedAt"`
	GlobalScore     int       `json:"globalScore"`
	Forex           int       `json:"forex"`
	Stocks          int       `json:"stocks"`
	Commodities     int       `json:"commodities"`
	TotalArticles   int       `json:"totalArticles"`
	BullishArticles int       `json:"bullishArticles"`
	BearishArticles int       `json:"bearishArticles"`
}
