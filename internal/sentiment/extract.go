package sentiment

import "strings"

// scoreFields are the candidate locations probed, in order, when
// extracting a numeric score from an arbitrary provider payload.
var scoreFields = []string{
	"score", "value", "index", "sentiment", "data.score", "data.value",
}

// ExtractScore probes a decoded provider payload for a usable sentiment
// score. A value in [-1,1] is remapped to [0,100]; a value already in
// [0,100] passes through; anything else is rejected.
func ExtractScore(payload map[string]any) (float64, bool) {
	for _, field := range scoreFields {
		raw, ok := lookupPath(payload, field)
		if !ok {
			continue
		}
		num, ok := raw.(float64)
		if !ok {
			continue
		}
		if score, ok := normalizeScore(num); ok {
			return score, true
		}
	}
	return 0, false
}

func lookupPath(payload map[string]any, path string) (any, bool) {
	current := any(payload)
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func normalizeScore(v float64) (float64, bool) {
	switch {
	case v >= -1 && v <= 1:
		return (v + 1) / 2 * 100, true
	case v >= 0 && v <= 100:
		return v, true
	default:
		return 0, false
	}
}
