package news

import (
	"net/url"
	"regexp"
	"strings"
)

// allowedHosts is the fixed allow-list of finance and general news
// outlets. Hosts are matched without their "www." prefix.
var allowedHosts = map[string]struct{}{
	"reuters.com":           {},
	"bloomberg.com":         {},
	"ft.com":                {},
	"wsj.com":               {},
	"cnbc.com":              {},
	"marketwatch.com":       {},
	"nasdaq.com":            {},
	"investing.com":         {},
	"finance.yahoo.com":     {},
	"barrons.com":           {},
	"forbes.com":            {},
	"businessinsider.com":   {},
	"economist.com":         {},
	"apnews.com":            {},
	"bbc.com":               {},
	"bbc.co.uk":             {},
	"cnn.com":               {},
	"theguardian.com":       {},
	"nytimes.com":           {},
	"washingtonpost.com":    {},
	"politico.com":          {},
	"politico.eu":           {},
	"fortune.com":           {},
	"fxstreet.com":          {},
	"dailyfx.com":           {},
	"kitco.com":             {},
	"oilprice.com":          {},
	"coindesk.com":          {},
	"cointelegraph.com":     {},
	"lesechos.fr":           {},
	"latribune.fr":          {},
	"lemonde.fr":            {},
	"lefigaro.fr":           {},
	"zonebourse.com":        {},
	"boursorama.com":        {},
	"bfmtv.com":             {},
	"capital.fr":            {},
	"challenges.fr":         {},
	"tradingeconomics.com":  {},
	"seekingalpha.com":      {},
	"morningstar.com":       {},
	"spglobal.com":          {},
}

// excludedPathTerms reject off-topic sections; exclusion wins over
// inclusion.
var excludedPathTerms = []string{
	"sport", "sports", "opinion", "editorial", "lifestyle", "culture",
	"travel", "voyage", "food", "recipes", "cuisine", "horoscope",
	"people", "celebrity", "entertainment", "arts", "style", "fashion",
	"weather", "meteo", "games", "puzzles", "obituaries", "sante",
	"wellness", "video-games", "royals",
}

// includedPathTerms accept clearly business/markets-related sections.
var includedPathTerms = []string{
	"business", "markets", "market", "finance", "financial", "economy",
	"economie", "economics", "bourse", "forex", "fx", "currencies",
	"crypto", "commodities", "energy", "investing", "invest", "trading",
	"stocks", "equities", "bonds", "banque", "entreprises", "actions",
}

// businessFirstHosts are outlets whose whole output is business-first:
// an article there is accepted even without a recognizable section path.
var businessFirstHosts = regexp.MustCompile(
	`(^|\.)(reuters\.com|ft\.com|marketwatch\.com|nasdaq\.com|investing\.com|lesechos\.fr|zonebourse\.com)$`)

// IsFinanceURL reports whether a raw article URL points at allow-listed,
// business-relevant content. Malformed URLs fail closed.
func IsFinanceURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Hostname() == "" {
		return false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if _, ok := allowedHosts[host]; !ok {
		return false
	}

	path := strings.ToLower(u.Path)
	for _, term := range excludedPathTerms {
		if strings.Contains(path, term) {
			return false
		}
	}
	for _, term := range includedPathTerms {
		if strings.Contains(path, term) {
			return true
		}
	}

	return businessFirstHosts.MatchString(host)
}
