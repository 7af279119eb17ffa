package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"legalbot/legalbot/config"
	"legalbot/legalbot/utils/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logging.InitTestLogger()
	os.Exit(m.Run())
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := NewGeminiClient(config.Config{
		GeminiAPIKey:  "test-key",
		GeminiBaseURL: ts.URL,
		GeminiModel:   "test-model",
	})
	require.NoError(t, err)
	return client
}

func TestGenerateParsesFirstCandidate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "Incorporate in Delaware."}}}},
				{"content": map[string]any{"parts": []map[string]any{{"text": "ignored second candidate"}}}},
			},
		})
	})

	contents := []Content{TextContent("user", "Where should I incorporate?")}
	reply, err := client.Generate(context.Background(), contents)
	require.NoError(t, err)

	assert.Equal(t, "Incorporate in Delaware.", reply)
	assert.Equal(t, "/models/test-model:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "user", gotBody.Contents[0].Role)
}

func TestGenerateFallbackOnEmptyCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	reply, err := client.Generate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
}

func TestGenerateErrorOnBadStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := client.Generate(context.Background(), nil)
	assert.Error(t, err)
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(config.Config{})
	assert.Error(t, err)
}
