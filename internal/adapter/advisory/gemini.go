// Package advisory talks to a Gemini-style generateContent endpoint to get
// free-text commentary on a password's structure. Only the analysis and the
// structural mask are ever sent.
package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"passwordAuditBackend/internal/config"
	"passwordAuditBackend/internal/core/domain"
)

const (
	responseTextPath = "candidates.0.content.parts.0.text"
	maxResponseBytes = 1 << 20
)

type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

type Option func(*GeminiClient)

func WithHTTPClient(c *http.Client) Option {
	return func(g *GeminiClient) { g.httpClient = c }
}

func WithBaseURL(u string) Option {
	return func(g *GeminiClient) { g.baseURL = strings.TrimRight(u, "/") }
}

func NewGeminiClient(cfg config.AdvisoryConfig, opts ...Option) *GeminiClient {
	g := &GeminiClient{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema"`
}

var reportSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"hackerPersona": map[string]any{
			"type":        "STRING",
			"description": "The type of attacker simulating the attack",
		},
		"critique": map[string]any{
			"type":        "STRING",
			"description": "A witty critique of the password",
		},
		"tips": map[string]any{
			"type":        "ARRAY",
			"items":       map[string]any{"type": "STRING"},
			"description": "List of actionable security tips",
		},
	},
}

// Advise makes a single attempt. Every failure after the key check is
// reported as ErrAdvisoryFailed.
func (g *GeminiClient) Advise(ctx context.Context, req domain.AdvisoryRequest) (*domain.AdvisoryReport, error) {
	if g.apiKey == "" {
		return nil, domain.ErrAdvisoryUnavailable
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: BuildPrompt(req)}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   reportSchema,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", domain.ErrAdvisoryFailed, err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		g.baseURL, url.PathEscape(g.model), url.QueryEscape(g.apiKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrAdvisoryFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrAdvisoryFailed, ctx.Err())
		}
		// The url.Error would echo the key-bearing URL.
		return nil, fmt.Errorf("%w: transport error", domain.ErrAdvisoryFailed)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrAdvisoryFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().
			Int("status", resp.StatusCode).
			Str("detail", gjson.GetBytes(raw, "error.message").String()).
			Msg("Advisory service rejected request")
		return nil, fmt.Errorf("%w: status %d", domain.ErrAdvisoryFailed, resp.StatusCode)
	}

	return parseReport(raw)
}

func parseReport(raw []byte) (*domain.AdvisoryReport, error) {
	text := gjson.GetBytes(raw, responseTextPath)
	if !text.Exists() || strings.TrimSpace(text.String()) == "" {
		return nil, fmt.Errorf("%w: empty response", domain.ErrAdvisoryFailed)
	}

	payload := stripCodeFence(text.String())
	if !gjson.Valid(payload) {
		return nil, fmt.Errorf("%w: response is not JSON", domain.ErrAdvisoryFailed)
	}

	parsed := gjson.Parse(payload)
	report := &domain.AdvisoryReport{
		HackerPersona: parsed.Get("hackerPersona").String(),
		Critique:      parsed.Get("critique").String(),
	}
	for _, tip := range parsed.Get("tips").Array() {
		if s := strings.TrimSpace(tip.String()); s != "" {
			report.Tips = append(report.Tips, s)
		}
	}

	if report.Critique == "" && report.HackerPersona == "" && len(report.Tips) == 0 {
		return nil, fmt.Errorf("%w: response has no report fields", domain.ErrAdvisoryFailed)
	}
	return report, nil
}

// Models sometimes wrap JSON in a markdown fence despite the mime type.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
