package analysis

// IdeaTemplate describes one trade idea a rule emits when its strength
// clears the minimum threshold. Candidates are tried in order against
// the caller's symbol pool; the first pool member wins, falling back to
// the pool's first symbol.
type IdeaTemplate struct {
	Direction  string
	Candidates []string
	Reason     string
	Horizon    string
}

// Rule is one entry of the built-in theme rule table. Includes/Excludes
// are normalized terms. ActionKeywords, when set, narrow the keyword set
// used for action strength; otherwise Includes applies. Rules without
// Ideas only contribute themes.
type Rule struct {
	Label          string
	Weight         float64
	Includes       []string
	Excludes       []string
	ActionKeywords []string
	Ideas          []IdeaTemplate
}

// BuiltinRules returns the fixed seven-rule table. The table is
// configuration-as-code: it never changes at runtime.
func BuiltinRules() []Rule {
	return []Rule{
		{
			Label:  "Fed dovish & détente des taux",
			Weight: 1.0,
			Includes: []string{
				"rate cut", "rate cuts", "dovish", "easing", "pivot",
				"lower rates", "baisse des taux",
			},
			Excludes: []string{"rate hike", "hawkish"},
			Ideas: []IdeaTemplate{
				{
					Direction:  "BUY",
					Candidates: []string{"US500", "NAS100"},
					Reason:     "Assouplissement Fed attendu, soutien aux indices US",
					Horizon:    "1-2 semaines",
				},
				{
					Direction:  "SELL",
					Candidates: []string{"USDJPY"},
					Reason:     "Détente des taux US, pression baissière sur le dollar",
					Horizon:    "1-2 semaines",
				},
			},
		},
		{
			Label:  "Fed hawkish & resserrement",
			Weight: 1.0,
			Includes: []string{
				"rate hike", "rate hikes", "hawkish", "tightening",
				"higher for longer", "hausse des taux",
			},
			Excludes: []string{"rate cut", "dovish"},
			Ideas: []IdeaTemplate{
				{
					Direction:  "SELL",
					Candidates: []string{"US500", "NAS100"},
					Reason:     "Resserrement Fed, vent contraire pour les indices US",
					Horizon:    "1-2 semaines",
				},
				{
					Direction:  "BUY",
					Candidates: []string{"USDJPY"},
					Reason:     "Taux US plus hauts plus longtemps, dollar soutenu",
					Horizon:    "1-2 semaines",
				},
			},
		},
		{
			Label:  "Tarifs & contrôles export",
			Weight: 1.0,
			Includes: []string{
				"tariff", "tariffs", "export controls", "export ban",
				"trade war", "droits de douane", "protectionism",
			},
			Ideas: []IdeaTemplate{
				{
					Direction:  "SELL",
					Candidates: []string{"US500", "NAS100"},
					Reason:     "Risque tarifaire, pression sur les actions US",
					Horizon:    "1-3 semaines",
				},
				{
					Direction:  "BUY",
					Candidates: []string{"XAUUSD"},
					Reason:     "Tensions commerciales, demande de valeurs refuges",
					Horizon:    "1-3 semaines",
				},
			},
		},
		{
			Label:  "Choc énergétique & offre",
			Weight: 1.0,
			Includes: []string{
				"opec", "production cut", "supply disruption", "oil supply",
				"embargo", "pipeline", "petrole", "crude output",
			},
			Ideas: []IdeaTemplate{
				{
					Direction:  "BUY",
					Candidates: []string{"USOIL", "UKOIL"},
					Reason:     "Offre pétrolière sous tension, prix soutenus",
					Horizon:    "1-2 semaines",
				},
			},
		},
		{
			Label:  "Dollar faible & flux de change",
			Weight: 1.0,
			Includes: []string{
				"dollar weakens", "dollar slumps", "dollar falls",
				"usd weak", "usd slumps", "greenback slides",
				"dollar sous pression",
			},
			Ideas: []IdeaTemplate{
				{
					Direction:  "BUY",
					Candidates: []string{"EURUSD"},
					Reason:     "Dollar sous pression, euro favorisé",
					Horizon:    "1-2 semaines",
				},
				{
					Direction:  "BUY",
					Candidates: []string{"XAUUSD"},
					Reason:     "Dollar faible, soutien mécanique à l'or",
					Horizon:    "1-2 semaines",
				},
			},
		},
		{
			Label:  "Résultats & guidances d'entreprises",
			Weight: 1.0,
			Includes: []string{
				"earnings", "guidance", "profit warning", "resultats trimestriels",
				"forecast raised", "forecast cut",
			},
		},
		{
			Label:  "Calendrier macro: CPI, PMI & emploi",
			Weight: 1.0,
			Includes: []string{
				"cpi", "ppi", "pce", "nonfarm", "payrolls", "pmi", "ism",
				"gdp", "inflation data", "jobs report",
			},
		},
	}
}

// DefaultSymbolPool is the fallback tradable universe when the caller
// supplies no symbols.
var DefaultSymbolPool = []string{
	"US500", "NAS100", "US30", "XAUUSD", "EURUSD", "USDJPY",
	"USOIL", "GER40", "UK100",
}

// dataReleaseTerms filter out pure data-calendar themes after ranking.
var dataReleaseTerms = []string{
	"cpi", "ppi", "pce", "nfp", "gdp", "pmi", "ism",
	"survey", "enquete", "calendar", "calendrier",
}
