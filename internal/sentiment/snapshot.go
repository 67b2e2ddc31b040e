package sentiment

import (
	"fmt"
	"math"
	"time"
)

var themeLabels = map[AssetClass]string{
	Forex:       "Devises",
	Stocks:      "Actions",
	Commodities: "Matières premières",
}

// BuildSnapshot aggregates the current sentiment points into a global
// snapshot, comparing news-flow volume against the rolling history.
// Deterministic; the optional LLM refinement happens afterwards.
func BuildSnapshot(points []Point, history []HistoryPoint, now time.Time) Snapshot {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	snap := Snapshot{
		GeneratedAt:    now,
		Themes:         make([]Theme, 0, 3),
		RiskIndicators: make([]RiskIndicator, 0, 3),
		FocusDrivers:   make([]FocusDriver, 0, 3),
		Sources:        make([]string, 0, len(points)),
	}

	for _, p := range points {
		snap.Sources = append(snap.Sources, p.Source)
		snap.TotalArticles += p.TotalArticles
		snap.BullishArticles += p.BullishArticles
		snap.BearishArticles += p.BearishArticles
	}

	var themeSum int
	for _, class := range []AssetClass{Forex, Stocks, Commodities} {
		score := classScore(points, class)
		themeSum += score
		snap.Themes = append(snap.Themes, Theme{
			Key:       class,
			Label:     themeLabels[class],
			Score:     score,
			Direction: themeDirection(score),
		})
	}
	snap.GlobalScore = int(math.Round(float64(themeSum) / 3))
	snap.MarketRegime = regimeFor(snap.GlobalScore)
	snap.SourceConsensus = consensusScore(points)

	// news-flow tension only means something when articles were counted
	if snap.TotalArticles > 0 {
		tension, ratio := tensionScore(snap.TotalArticles, history)
		snap.TensionScore = &tension
		snap.TensionRatio = &ratio
		snap.RiskIndicators = append(snap.RiskIndicators, RiskIndicator{
			Label:     "Tension du flux d'actualités",
			Score:     tension,
			Value:     fmt.Sprintf("%d articles (ratio %.2f)", snap.TotalArticles, ratio),
			Direction: indicatorDirection(tension),
			Comment:   tensionComment(tension),
		})
	}

	balance := balanceScore(snap.BullishArticles, snap.BearishArticles)
	snap.RiskIndicators = append(snap.RiskIndicators, RiskIndicator{
		Label:     "Équilibre haussier / baissier",
		Score:     balance,
		Value:     fmt.Sprintf("%d haussiers vs %d baissiers", snap.BullishArticles, snap.BearishArticles),
		Direction: indicatorDirection(balance),
		Comment:   balanceComment(balance),
	})

	snap.RiskIndicators = append(snap.RiskIndicators, RiskIndicator{
		Label:     "Consensus des sources",
		Score:     snap.SourceConsensus,
		Value:     fmt.Sprintf("%d sources agrégées", len(points)),
		Direction: indicatorDirection(snap.SourceConsensus),
		Comment:   consensusComment(snap.SourceConsensus),
	})

	for _, theme := range snap.Themes {
		snap.FocusDrivers = append(snap.FocusDrivers, FocusDriver{Label: theme.Label})
	}

	return snap
}

// HistoryPointFrom derives the history footprint of a snapshot.
func HistoryPointFrom(snap Snapshot) HistoryPoint {
	point := HistoryPoint{
		GeneratedAt:     snap.GeneratedAt,
		GlobalScore:     snap.GlobalScore,
		TotalArticles:   snap.TotalArticles,
		BullishArticles: snap.BullishArticles,
		BearishArticles: snap.BearishArticles,
	}
	for _, theme := range snap.Themes {
		switch theme.Key {
		case Forex:
			point.Forex = theme.Score
		case Stocks:
			point.Stocks = theme.Score
		case Commodities:
			point.Commodities = theme.Score
		}
	}
	return point
}

func classScore(points []Point, class AssetClass) int {
	var sum float64
	var n int
	for _, p := range points {
		if p.AssetClass != class {
			continue
		}
		sum += p.Score
		n++
	}
	if n == 0 {
		return 50
	}
	return int(math.Round(sum / float64(n)))
}

func themeDirection(score int) string {
	switch {
	case score >= 55:
		return "bullish"
	case score <= 45:
		return "bearish"
	default:
		return "neutral"
	}
}

func regimeFor(globalScore int) Regime {
	switch {
	case globalScore >= 65:
		return Regime{
			Label:       "Régime risk-on",
			Description: "Appétit pour le risque dominant, les actifs risqués sont recherchés.",
			Confidence:  70,
		}
	case globalScore <= 35:
		return Regime{
			Label:       "Régime risk-off",
			Description: "Aversion au risque dominante, rotation vers les valeurs refuges.",
			Confidence:  70,
		}
	default:
		return Regime{
			Label:       "Régime neutre",
			Description: "Pas de direction franche, les flux restent équilibrés.",
			Confidence:  60,
		}
	}
}

// consensusScore maps the dispersion of point scores onto [10,100]:
// tighter agreement between feeds reads higher. Fewer than two points is
// full consensus by definition.
func consensusScore(points []Point) int {
	if len(points) < 2 {
		return 100
	}
	var sum float64
	for _, p := range points {
		sum += p.Score
	}
	mean := sum / float64(len(points))

	var variance float64
	for _, p := range points {
		d := p.Score - mean
		variance += d * d
	}
	stddev := math.Sqrt(variance / float64(len(points)))

	return clampInt(int(math.Round(100-stddev*2.5)), 10, 100)
}

// tensionScore compares current news volume against the historical mean.
// Without history the tension is neutral at ratio 1.
func tensionScore(totalArticles int, history []HistoryPoint) (int, float64) {
	var histSum, histN float64
	for _, h := range history {
		if h.TotalArticles > 0 {
			histSum += float64(h.TotalArticles)
			histN++
		}
	}
	if histN == 0 {
		return 50, 1
	}

	ratio := float64(totalArticles) / (histSum / histN)
	raw := 50 + 25*(ratio-1)
	return clampInt(int(math.Round(raw)), 0, 100), ratio
}

func balanceScore(bullish, bearish int) int {
	total := bullish + bearish
	if total == 0 {
		return 50
	}
	bullShare := float64(bullish) / float64(total)
	bearShare := float64(bearish) / float64(total)
	return clampInt(int(math.Round(50+(bullShare-bearShare)*50)), 0, 100)
}

func indicatorDirection(score int) string {
	switch {
	case score >= 60:
		return "up"
	case score <= 40:
		return "down"
	default:
		return "neutral"
	}
}

func tensionComment(score int) string {
	switch {
	case score >= 70:
		return "Flux d'actualités nettement au-dessus de la normale, volatilité probable."
	case score <= 30:
		return "Flux d'actualités calme par rapport à l'historique."
	default:
		return "Volume d'actualités dans la normale."
	}
}

func balanceComment(score int) string {
	switch {
	case score >= 60:
		return "Le ton des articles penche nettement côté haussier."
	case score <= 40:
		return "Le ton des articles penche nettement côté baissier."
	default:
		return "Ton équilibré entre articles haussiers et baissiers."
	}
}

func consensusComment(score int) string {
	switch {
	case score >= 80:
		return "Les sources convergent fortement sur la lecture du marché."
	case score <= 50:
		return "Lectures divergentes entre les sources, prudence sur le signal."
	default:
		return "Accord modéré entre les sources."
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
