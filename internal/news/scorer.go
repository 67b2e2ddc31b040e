package news

import (
	"regexp"
	"strings"
)

// KeywordGroup is a weighted family of terms. A group contributes its
// weight at most once per text no matter how many of its terms match.
type KeywordGroup struct {
	Name   string
	Weight int
	Terms  []string
}

// keywordGroups holds the eight built-in relevance groups. Terms are in
// normalized form (lowercase, no accents).
var keywordGroups = []KeywordGroup{
	{Name: "macro-data", Weight: 7, Terms: []string{
		"inflation", "cpi", "ppi", "pce", "gdp", "unemployment",
		"payrolls", "nonfarm", "jobless claims", "pmi", "ism",
		"retail sales", "consumer confidence", "recession",
	}},
	{Name: "policy", Weight: 6, Terms: []string{
		"fed", "fomc", "federal reserve", "rate cut", "rate hike",
		"interest rate", "central bank", "ecb", "boe", "boj",
		"monetary policy", "powell", "lagarde", "quantitative",
	}},
	{Name: "french", Weight: 6, Terms: []string{
		"taux directeur", "banque centrale", "bce", "croissance",
		"droits de douane", "resultats trimestriels", "petrole",
		"marches financiers", "politique monetaire", "chomage",
	}},
	{Name: "trade", Weight: 5, Terms: []string{
		"tariff", "tariffs", "trade war", "trade deal", "export controls",
		"export ban", "sanctions", "customs duties", "protectionism",
		"trade deficit",
	}},
	{Name: "energy", Weight: 5, Terms: []string{
		"opec", "crude", "oil prices", "oil supply", "natural gas",
		"barrel", "pipeline", "refinery", "energy prices", "lng",
	}},
	{Name: "corporate", Weight: 4, Terms: []string{
		"earnings", "guidance", "profit warning", "merger", "acquisition",
		"ipo", "dividend", "buyback", "layoffs", "bankruptcy",
	}},
	{Name: "tech", Weight: 4, Terms: []string{
		"semiconductor", "chips", "artificial intelligence", "nvidia",
		"data center", "cloud computing", "chipmaker",
	}},
	{Name: "markets", Weight: 4, Terms: []string{
		"stocks", "equities", "wall street", "bond yields", "treasury yields",
		"dollar", "usd", "euro", "gold", "futures", "selloff", "rally",
		"volatility", "s p 500", "nasdaq",
	}},
}

// negativeTerms gate out opinion/lifestyle content. Any match forces a
// score of exactly 0, regardless of other matches.
var negativeTerms = []string{
	"opinion", "editorial", "op ed", "podcast", "horoscope", "lifestyle",
	"celebrity", "recipe", "crossword", "quiz of the week", "obituary",
	"newsletter signup", "sponsored content", "advertorial",
}

var percentPattern = regexp.MustCompile(`\d+(\.\d+)?\s?%`)

// ScoreResult carries the numeric relevance score and the tokens that
// produced it, for dashboard badges.
type ScoreResult struct {
	Score int
	Hits  []string
}

// ScoreTextWithHits scores a text blob against the weighted keyword
// groups plus ticker and percentage bonuses. The score is unbounded
// above and never negative.
func ScoreTextWithHits(text string, tickers []string) ScoreResult {
	normalized := Normalize(text)

	if ContainsAny(normalized, negativeTerms) {
		return ScoreResult{}
	}

	var result ScoreResult
	for _, group := range keywordGroups {
		matched := false
		for _, term := range group.Terms {
			if strings.Contains(normalized, term) {
				matched = true
				result.Hits = append(result.Hits, term)
			}
		}
		if matched {
			result.Score += group.Weight
		}
	}

	for _, ticker := range tickers {
		t := Normalize(ticker)
		if t != "" && strings.Contains(normalized, t) {
			result.Score += 2
			result.Hits = append(result.Hits, strings.ToUpper(ticker))
		}
	}

	// percentage figures signal hard market data; checked on the raw
	// text because normalization keeps '%' intact anyway
	if percentPattern.MatchString(text) {
		result.Score++
	}

	return result
}
