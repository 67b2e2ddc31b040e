package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/finradar/newsengine/internal/llm"
)

// ReasonRewriter turns deterministic action reasons into natural
// language. Implementations must be treated as unreliable: callers keep
// the baseline actions and ignore every failure.
type ReasonRewriter interface {
	RewriteReasons(ctx context.Context, reasons []string) ([]string, error)
}

// LLMRewriter batches all reasons into a single chat completion at
// temperature 0 and splices the returned lines back 1:1 by index.
type LLMRewriter struct {
	Client    llm.ChatClient
	Model     string
	MaxTokens int
}

// RewriteReasons implements ReasonRewriter.
func (r LLMRewriter) RewriteReasons(ctx context.Context, reasons []string) ([]string, error) {
	if r.Client == nil || r.Model == "" {
		return nil, fmt.Errorf("analysis: rewriter not configured")
	}
	if len(reasons) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	for i, reason := range reasons {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, reason)
	}

	req := llm.ChatCompletionRequest{
		Model:       r.Model,
		Temperature: 0,
		MaxTokens:   r.MaxTokens,
		Messages: []llm.Message{
			{
				Role: "system",
				Content: "Tu reformules des justifications d'idées de trading en une phrase naturelle et concise, " +
					"en conservant le sens exact. Réponds avec une ligne par entrée, numérotée comme l'entrée, rien d'autre.",
			},
			{Role: "user", Content: sb.String()},
		},
	}

	resp, err := r.Client.ChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("analysis: empty completion")
	}

	lines := parseNumberedLines(resp.Choices[0].Message.Content, len(reasons))
	if lines == nil {
		return nil, fmt.Errorf("analysis: completion line count mismatch")
	}
	return lines, nil
}

// parseNumberedLines extracts exactly want non-empty lines, stripping
// leading "N." numbering. Returns nil when the count does not match.
func parseNumberedLines(content string, want int) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if idx := strings.Index(line, "."); idx > 0 && idx < 4 {
			if _, err := fmt.Sscanf(line[:idx], "%d", new(int)); err == nil {
				line = strings.TrimSpace(line[idx+1:])
			}
		}
		out = append(out, line)
	}
	if len(out) != want {
		return nil
	}
	return out
}

// EnrichActions fills each action's Explanation from the rewriter,
// skipping actions that already carry one. On any failure the input
// slice is returned unchanged: enrichment never blocks or corrupts the
// deterministic baseline.
func EnrichActions(ctx context.Context, rewriter ReasonRewriter, actions []Action) ([]Action, error) {
	if rewriter == nil || len(actions) == 0 {
		return actions, nil
	}

	var pending []int
	var reasons []string
	for i, a := range actions {
		if a.Explanation != "" {
			continue
		}
		pending = append(pending, i)
		reasons = append(reasons, a.Reason)
	}
	if len(pending) == 0 {
		return actions, nil
	}

	rewritten, err := rewriter.RewriteReasons(ctx, reasons)
	if err != nil {
		return actions, err
	}
	if len(rewritten) != len(pending) {
		return actions, fmt.Errorf("analysis: expected %d rewrites, got %d", len(pending), len(rewritten))
	}

	out := make([]Action, len(actions))
	copy(out, actions)
	for n, idx := range pending {
		if line := strings.TrimSpace(rewritten[n]); line != "" {
			out[idx].Explanation = line
		}
	}
	return out, nil
}
