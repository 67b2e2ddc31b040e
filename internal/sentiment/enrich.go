package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finradar/newsengine/internal/llm"
)

// Refiner optionally rewrites snapshot labels and adds suggestions.
// Callers always hold the deterministic snapshot and drop the refined
// one on any error.
type Refiner interface {
	Refine(ctx context.Context, snap Snapshot) (Snapshot, error)
}

// LLMRefiner asks a chat model for a constrained JSON refinement of the
// snapshot. Each returned field independently overrides its local
// counterpart only when present and well-typed.
type LLMRefiner struct {
	Client    llm.ChatClient
	Model     string
	MaxTokens int
}

// refinement is the JSON schema requested from the model. Pointer and
// slice fields distinguish "absent" from "present but empty".
type refinement struct {
	Regime *struct {
		Label       string `json:"label"`
		Description string `json:"description"`
		Confidence  int    `json:"confidence"`
	} `json:"regime"`
	FocusDrivers []struct {
		Label       string `json:"label"`
		Description string `json:"description"`
	} `json:"focusDrivers"`
	Themes []struct {
		Key       string `json:"key"`
		Direction string `json:"direction"`
		Comment   string `json:"comment"`
	} `json:"themes"`
	Suggestions []struct {
		Stance  string `json:"stance"`
		Market  string `json:"market"`
		Comment string `json:"comment"`
	} `json:"suggestions"`
}

// Refine implements Refiner.
func (r LLMRefiner) Refine(ctx context.Context, snap Snapshot) (Snapshot, error) {
	if r.Client == nil || r.Model == "" {
		return snap, fmt.Errorf("sentiment: refiner not configured")
	}

	payload, err := buildRefinePayload(snap)
	if err != nil {
		return snap, err
	}

	req := llm.ChatCompletionRequest{
		Model:       r.Model,
		Temperature: 0,
		MaxTokens:   r.MaxTokens,
		Messages: []llm.Message{
			{
				Role: "system",
				Content: "Tu es un analyste marché. À partir d'un instantané de sentiment agrégé, " +
					"tu affines les libellés et proposes au plus 3 suggestions de positionnement. " +
					"Réponds STRICTEMENT en JSON valide.",
			},
			{Role: "user", Content: payload},
		},
	}

	resp, err := r.Client.ChatCompletion(ctx, req)
	if err != nil {
		return snap, err
	}
	if len(resp.Choices) == 0 {
		return snap, fmt.Errorf("sentiment: empty completion")
	}

	block := llm.ExtractJSONBlock(resp.Choices[0].Message.Content)
	if block == "" {
		return snap, fmt.Errorf("sentiment: completion has no json payload")
	}

	var ref refinement
	if err := json.Unmarshal([]byte(block), &ref); err != nil {
		return snap, fmt.Errorf("sentiment: decode refinement: %w", err)
	}

	return applyRefinement(snap, ref), nil
}

func buildRefinePayload(snap Snapshot) (string, error) {
	history := snap.History
	if len(history) > 24 {
		history = history[len(history)-24:]
	}

	input := struct {
		GlobalScore     int             `json:"globalScore"`
		Regime          Regime          `json:"regime"`
		Themes          []Theme         `json:"themes"`
		RiskIndicators  []RiskIndicator `json:"riskIndicators"`
		TotalArticles   int             `json:"totalArticles"`
		BullishArticles int             `json:"bullishArticles"`
		BearishArticles int             `json:"bearishArticles"`
		History         []HistoryPoint  `json:"history"`
	}{
		GlobalScore:     snap.GlobalScore,
		Regime:          snap.MarketRegime,
		Themes:          snap.Themes,
		RiskIndicators:  snap.RiskIndicators,
		TotalArticles:   snap.TotalArticles,
		BullishArticles: snap.BullishArticles,
		BearishArticles: snap.BearishArticles,
		History:         history,
	}

	data, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return "", fmt.Errorf("sentiment: marshal refine payload: %w", err)
	}

	return fmt.Sprintf(`Instantané de sentiment:
%s

Réponds avec ce schéma JSON (tous les champs sont optionnels):
{
  "regime": {"label": "...", "description": "...", "confidence": 0},
  "focusDrivers": [{"label": "...", "description": "..."}],
  "themes": [{"key": "forex|stocks|commodities", "direction": "bullish|bearish|neutral", "comment": "..."}],
  "suggestions": [{"stance": "long|short|neutral", "market": "...", "comment": "..."}]
}`, string(data)), nil
}

func applyRefinement(snap Snapshot, ref refinement) Snapshot {
	if ref.Regime != nil {
		if label := strings.TrimSpace(ref.Regime.Label); label != "" {
			snap.MarketRegime.Label = label
		}
		if desc := strings.TrimSpace(ref.Regime.Description); desc != "" {
			snap.MarketRegime.Description = desc
		}
		if ref.Regime.Confidence > 0 && ref.Regime.Confidence <= 100 {
			snap.MarketRegime.Confidence = ref.Regime.Confidence
		}
	}

	if len(ref.FocusDrivers) > 0 {
		drivers := make([]FocusDriver, 0, len(ref.FocusDrivers))
		for _, d := range ref.FocusDrivers {
			if strings.TrimSpace(d.Label) == "" {
				continue
			}
			drivers = append(drivers, FocusDriver{
				Label:       strings.TrimSpace(d.Label),
				Description: strings.TrimSpace(d.Description),
			})
		}
		if len(drivers) > 0 {
			snap.FocusDrivers = drivers
		}
	}

	for _, t := range ref.Themes {
		for i := range snap.Themes {
			if string(snap.Themes[i].Key) != t.Key {
				continue
			}
			switch t.Direction {
			case "bullish", "bearish", "neutral":
				snap.Themes[i].Direction = t.Direction
			}
			if comment := strings.TrimSpace(t.Comment); comment != "" {
				snap.Themes[i].Comment = comment
			}
		}
	}

	if len(ref.Suggestions) > 0 {
		suggestions := make([]Suggestion, 0, 3)
		for _, s := range ref.Suggestions {
			stance := strings.ToLower(strings.TrimSpace(s.Stance))
			if stance != "long" && stance != "short" && stance != "neutral" {
				continue
			}
			suggestions = append(suggestions, Suggestion{
				Stance:  stance,
				Market:  strings.TrimSpace(s.Market),
				Comment: strings.TrimSpace(s.Comment),
			})
			if len(suggestions) == 3 {
				break
			}
		}
		if len(suggestions) > 0 {
			snap.Suggestions = suggestions
		}
	}

	return snap
}
