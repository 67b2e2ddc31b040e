package signals

import "github.com/finradar/newsengine/internal/news"

// Detector binds a named narrative to its keyword list and optional
// topical gate.
type Detector struct {
	Key      string
	Label    string
	Region   string
	Keywords []string
	Gate     GateFunc
}

// Detect computes the detector's signal over the article set with
// default options.
func (d Detector) Detect(articles []news.Article) Signal {
	return d.DetectAt(articles, Options{})
}

// DetectAt computes the detector's signal with explicit options, used
// by the pipeline to pin the clock and lookback.
func (d Detector) DetectAt(articles []news.Article, opts Options) Signal {
	if opts.Gate == nil {
		opts.Gate = d.Gate
	}
	res := ComputeStrength(articles, d.Keywords, opts)
	return Signal{
		Key:      d.Key,
		Label:    d.Label,
		Region:   d.Region,
		Strength: res.Strength,
		Evidence: res.Evidence,
	}
}

// usGate keeps only articles anchored to US policy/markets context.
func usGate(normalized string) bool {
	return news.ContainsAny(normalized, []string{
		"fed", "fomc", "federal reserve", "powell", "united states",
		"u s", "treasury", "washington", "white house", "etats unis",
	})
}

var (
	dovishUS = Detector{
		Key:    "dovish-us",
		Label:  "Fed dovish",
		Region: "US",
		Keywords: []string{
			"rate cut", "rate cuts", "dovish", "easing", "pause hikes",
			"lower rates", "baisse des taux", "pivot",
		},
		Gate: usGate,
	}

	hawkishUS = Detector{
		Key:    "hawkish-us",
		Label:  "Fed hawkish",
		Region: "US",
		Keywords: []string{
			"rate hike", "rate hikes", "hawkish", "tightening",
			"higher for longer", "raise rates", "hausse des taux",
		},
		Gate: usGate,
	}

	tariffsUS = Detector{
		Key:    "tariffs-us",
		Label:  "Tarifs & contrôles export",
		Region: "US",
		Keywords: []string{
			"tariff", "tariffs", "export controls", "export ban",
			"trade war", "droits de douane", "protectionism",
		},
	}

	energySupply = Detector{
		Key:    "energy-supply",
		Label:  "Choc d'offre énergie",
		Region: "GLOBAL",
		Keywords: []string{
			"opec", "production cut", "supply disruption", "oil supply",
			"pipeline", "embargo", "petrole", "crude output",
		},
	}

	usdWeak = Detector{
		Key:    "usd-weak",
		Label:  "Dollar faible",
		Region: "GLOBAL",
		Keywords: []string{
			"dollar weakens", "dollar slumps", "dollar falls", "usd weak",
			"greenback slides", "dollar sous pression", "usd slumps",
		},
	}

	usdStrong = Detector{
		Key:    "usd-strong",
		Label:  "Dollar fort",
		Region: "GLOBAL",
		Keywords: []string{
			"dollar strengthens", "dollar rallies", "dollar surges",
			"usd strong", "greenback gains", "dollar au plus haut",
		},
	}
)

// Builtin returns the six named detectors in their fixed order.
func Builtin() []Detector {
	return []Detector{dovishUS, hawkishUS, tariffsUS, energySupply, usdWeak, usdStrong}
}

// DetectDovishUS scores the dovish-US narrative.
func DetectDovishUS(articles []news.Article) Signal { return dovishUS.Detect(articles) }

// DetectHawkishUS scores the hawkish-US narrative.
func DetectHawkishUS(articles []news.Article) Signal { return hawkishUS.Detect(articles) }

// DetectTariffsUS scores the tariffs/export-controls narrative.
func DetectTariffsUS(articles []news.Article) Signal { return tariffsUS.Detect(articles) }

// DetectEnergySupply scores the energy supply-shock narrative.
func DetectEnergySupply(articles []news.Article) Signal { return energySupply.Detect(articles) }

// DetectUSDWeak scores the weak-dollar narrative.
func DetectUSDWeak(articles []news.Article) Signal { return usdWeak.Detect(articles) }

// DetectUSDStrong scores the strong-dollar narrative.
func DetectUSDStrong(articles []news.Article) Signal { return usdStrong.Detect(articles) }
