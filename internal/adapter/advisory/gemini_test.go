package advisory

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"passwordAuditBackend/internal/config"
	"passwordAuditBackend/internal/core/analysis"
	"passwordAuditBackend/internal/core/domain"
)

const secretPassword = "Hunter2!secret"

func testRequest() domain.AdvisoryRequest {
	return domain.AdvisoryRequest{
		Analysis: analysis.Analyze(secretPassword),
		Mask:     analysis.StructuralMask(secretPassword),
	}
}

func geminiBody(t *testing.T, text string) string {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	})
	require.NoError(t, err)
	return string(body)
}

func newTestClient(url string) *GeminiClient {
	cfg := config.DefaultConfig().Advisory
	cfg.APIKey = "test-key"
	return NewGeminiClient(cfg, WithBaseURL(url))
}

func TestGeminiClient_Advise(t *testing.T) {
	var captured []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		captured, _ = io.ReadAll(r.Body)

		report := `{"hackerPersona":"Script Kiddie","critique":"Cute.","tips":["Go longer"," ","Add symbols"]}`
		_, _ = io.WriteString(w, geminiBody(t, report))
	}))
	defer server.Close()

	got, err := newTestClient(server.URL).Advise(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "Script Kiddie", got.HackerPersona)
	assert.Equal(t, "Cute.", got.Critique)
	assert.Equal(t, []string{"Go longer", "Add symbols"}, got.Tips)

	assert.NotContains(t, string(captured), secretPassword)
	assert.NotContains(t, string(captured), "Hunter")
	prompt := gjson.GetBytes(captured, "contents.0.parts.0.text").String()
	assert.Contains(t, prompt, analysis.StructuralMask(secretPassword))
	assert.Equal(t, "application/json", gjson.GetBytes(captured, "generationConfig.responseMimeType").String())
}

func TestGeminiClient_AdviseFencedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, geminiBody(t, "```json\n{\"critique\":\"ok\",\"tips\":[]}\n```"))
	}))
	defer server.Close()

	got, err := newTestClient(server.URL).Advise(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Critique)
}

func TestGeminiClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = io.WriteString(w, `{"error":{"message":"boom"}}`)
			},
		},
		{
			name: "unauthorised",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		},
		{
			name: "empty candidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"candidates":[]}`)
			},
		},
		{
			name: "text is not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, geminiBody(t, "I refuse"))
			},
		},
		{
			name: "json without report fields",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, geminiBody(t, `{"unexpected":true}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			got, err := newTestClient(server.URL).Advise(context.Background(), testRequest())
			assert.Nil(t, got)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrAdvisoryFailed), "got %v", err)
		})
	}
}

func TestGeminiClient_MissingKey(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewGeminiClient(config.AdvisoryConfig{BaseURL: server.URL, Model: "m"})
	_, err := client.Advise(context.Background(), testRequest())

	assert.True(t, errors.Is(err, domain.ErrAdvisoryUnavailable))
	assert.False(t, called, "no request without a key")
}

func TestGeminiClient_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestClient(server.URL).Advise(ctx, testRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAdvisoryFailed))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(testRequest())

	assert.Contains(t, prompt, "- Length: 14\n")
	assert.Contains(t, prompt, "- Has Special Chars: true\n")
	assert.Contains(t, prompt, `"ULLLLLNSLLLLLL"`)
	assert.Contains(t, prompt, "- Entropy Bits: 91.98\n")
	assert.NotContains(t, prompt, secretPassword)
}
