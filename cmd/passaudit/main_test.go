package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"passwordAuditBackend/internal/core/domain"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	names := make(map[string]bool)
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"analyze", "audit", "scenarios", "serve", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))
}

func TestVersionCmd(t *testing.T) {
	oldV := version
	version = "v9.9.9"
	defer func() { version = oldV }()

	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "passaudit version v9.9.9")
}

func TestAnalyzeCmd_JSON(t *testing.T) {
	out, err := run(t, "", "analyze", "--format", "json", "P@ssw0rd123!")
	require.NoError(t, err)

	assert.Equal(t, int64(100), gjson.Get(out, "score").Int())
	assert.Equal(t, "VERY_STRONG", gjson.Get(out, "strength").String())
	assert.Equal(t, "Very Strong", gjson.Get(out, "strengthLabel").String())
	assert.Equal(t, "USLLLNLLNNNS", gjson.Get(out, "mask").String())
	assert.Equal(t, "~2^78", gjson.Get(out, "combinations").String())
	assert.False(t, gjson.Get(out, "advisory").Exists())
}

func TestAnalyzeCmd_StdinYAML(t *testing.T) {
	out, err := run(t, "password\r\nignored\n", "analyze", "-f", "yaml")
	require.NoError(t, err)

	var got struct {
		Length        int    `yaml:"length"`
		Score         int    `yaml:"score"`
		Strength      string `yaml:"strength"`
		StrengthLabel string `yaml:"strengthLabel"`
		Mask          string `yaml:"mask"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 8, got.Length)
	assert.Equal(t, 32, got.Score)
	assert.Equal(t, "WEAK", got.Strength)
	assert.Equal(t, "Weak", got.StrengthLabel)
	assert.Equal(t, "LLLLLLLL", got.Mask)
}

func TestAnalyzeCmd_Text(t *testing.T) {
	out, err := run(t, "", "analyze", "abcdefgh1!")
	require.NoError(t, err)

	assert.Contains(t, out, "Very Strong")
	assert.Contains(t, out, "(95/100)")
	assert.Contains(t, out, "Time to crack")
	for _, s := range domain.AttackScenarios {
		assert.Contains(t, out, s.Label)
	}
}

func TestAnalyzeCmd_Errors(t *testing.T) {
	_, err := run(t, "", "analyze", "--format", "xml", "abc")
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, "", "analyze")
	assert.True(t, errors.Is(err, errNoInput))

	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	_, err = run(t, "", "analyze", "--advise", "abc")
	assert.True(t, errors.Is(err, domain.ErrAdvisoryUnavailable), "got %v", err)
}

func geminiServer(t *testing.T, report string) (*httptest.Server, <-chan string) {
	t.Helper()
	prompts := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		prompts <- gjson.GetBytes(body, "contents.0.parts.0.text").String()

		payload, err := json.Marshal(map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"parts": []any{map[string]any{"text": report}},
					},
				},
			},
		})
		require.NoError(t, err)
		_, _ = w.Write(payload)
	}))
	t.Cleanup(server.Close)
	return server, prompts
}

func TestAnalyzeCmd_Advise(t *testing.T) {
	server, prompts := geminiServer(t, `{"hackerPersona":"Script Kiddie","critique":"Short.","tips":["Go longer"]}`)
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("ADVISORY_BASE_URL", server.URL)
	t.Setenv("ADVISORY_TIMEOUT", "5s")

	out, err := run(t, "", "analyze", "--advise", "-f", "json", "Hunter2")
	require.NoError(t, err)

	assert.Equal(t, "Script Kiddie", gjson.Get(out, "advisory.hackerPersona").String())
	assert.Equal(t, "Short.", gjson.Get(out, "advisory.critique").String())
	assert.Equal(t, "Go longer", gjson.Get(out, "advisory.tips.0").String())
	assert.Equal(t, "ULLLLLN", gjson.Get(out, "mask").String())

	prompt := <-prompts
	assert.Contains(t, prompt, "ULLLLLN")
	assert.NotContains(t, prompt, "Hunter2")
}

func TestAnalyzeCmd_ZeroAdvisoryTimeoutRejected(t *testing.T) {
	server, prompts := geminiServer(t, `{"critique":"unused"}`)
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("ADVISORY_BASE_URL", server.URL)
	t.Setenv("ADVISORY_TIMEOUT", "0s")

	_, err := run(t, "", "analyze", "--advise", "-f", "json", "Hunter2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfig), "got %v", err)
	assert.Empty(t, prompts, "no advisory request is sent")
}

func TestAuditCmd(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "passwords.txt")
	require.NoError(t, os.WriteFile(list, []byte("password\n\nP@ssw0rd123!\r\nabc\n"), 0o600))
	reportPath := filepath.Join(dir, "report.json")

	out, err := run(t, "", "audit", "--file", list, "--workers", "2", "--report", reportPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Audit summary")
	assert.Contains(t, out, "Weakest entry")

	raw, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Equal(t, int64(3), gjson.GetBytes(raw, "summary.total").Int())
	assert.Equal(t, int64(2), gjson.GetBytes(raw, "summary.weakestIndex").Int())
	assert.Equal(t, "USLLLNLLNNNS", gjson.GetBytes(raw, "entries.1.mask").String())
	assert.NotContains(t, string(raw), "P@ssw0rd123!")
}

func TestAuditCmd_Stdin(t *testing.T) {
	out, err := run(t, "one\ntwo\n", "audit", "--file", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Passwords")

	_, err = run(t, "", "audit")
	assert.Error(t, err, "--file is required")

	_, err = run(t, "", "audit", "--file", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "failed to open password list")
}

func TestScenariosCmd(t *testing.T) {
	out, err := run(t, "", "scenarios", "--format", "json")
	require.NoError(t, err)
	scenarios := gjson.Parse(out).Array()
	require.Len(t, scenarios, 4)
	assert.Equal(t, "Supercomputer Cluster", scenarios[3].Get("label").String())

	out, err = run(t, "", "scenarios")
	require.NoError(t, err)
	assert.Contains(t, out, "Offline (High-End GPU)")
	assert.Contains(t, out, "1e+10")
}

func TestReadLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  error
	}{
		{in: "abc\n", want: "abc"},
		{in: "abc\r\nrest", want: "abc"},
		{in: " spaced out ", want: " spaced out "},
		{in: "\n", want: ""},
		{in: "", err: errNoInput},
	}
	for _, tt := range tests {
		got, err := readLine(strings.NewReader(tt.in))
		if tt.err != nil {
			assert.True(t, errors.Is(err, tt.err))
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestStrengthBar(t *testing.T) {
	tests := []struct {
		score  int
		filled int
	}{
		{0, 0},
		{32, 6},
		{100, barWidth},
	}
	for _, tt := range tests {
		bar := strengthBar(tt.score, domain.StrengthWeak)
		assert.Equal(t, tt.filled, strings.Count(bar, "█"))
		assert.Equal(t, barWidth-tt.filled, strings.Count(bar, "░"))
	}
}
