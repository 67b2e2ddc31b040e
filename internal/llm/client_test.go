package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCompletion(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &gotBody))
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "bonjour"}}]}`))
	}))
	defer server.Close()

	client := NewClient("secret", WithBaseURL(server.URL))
	resp, err := client.ChatCompletion(context.Background(), ChatCompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: "user", Content: "salut"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "bonjour", resp.Choices[0].Message.Content)
	assert.Equal(t, "Bearer secret", gotAuth)

	// temperature must appear even at its zero value
	_, ok := gotBody["temperature"]
	assert.True(t, ok)
}

func TestChatCompletionMissingKey(t *testing.T) {
	client := NewClient("")
	_, err := client.ChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})
	assert.Error(t, err)
}

func TestChatCompletionAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("secret", WithBaseURL(server.URL))
	_, err := client.ChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestExtractJSONBlock(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, ExtractJSONBlock(`{"a": 1}`))
	assert.Equal(t, `{"a": 1}`, ExtractJSONBlock("Voici le JSON:\n```json\n{\"a\": 1}\n```"))
	assert.Empty(t, ExtractJSONBlock("pas de json"))
	assert.Empty(t, ExtractJSONBlock("}{"))
}
