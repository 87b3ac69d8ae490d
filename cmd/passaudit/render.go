package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"passwordAuditBackend/internal/core/domain"
)

const barWidth = 20

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Width(16)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	emptyBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#333333"))
)

type analyzeOutput struct {
	domain.PasswordAnalysis `yaml:",inline"`
	StrengthLabel           string                 `json:"strengthLabel" yaml:"strengthLabel"`
	Mask                    string                 `json:"mask" yaml:"mask"`
	Combinations            string                 `json:"combinations" yaml:"combinations"`
	Advisory                *domain.AdvisoryReport `json:"advisory,omitempty" yaml:"advisory,omitempty"`
}

func validateFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

func writeFormatted(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(w)
		return nil
	}
}

// strengthBar fills one cell per five points of score.
func strengthBar(score int, level domain.StrengthLevel) string {
	filled := min(max(score*barWidth/100, 0), barWidth)
	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(level.Color()))
	return fill.Render(strings.Repeat("█", filled)) + emptyBarStyle.Render(strings.Repeat("░", barWidth-filled))
}

func row(w io.Writer, label, value string) {
	fmt.Fprintln(w, labelStyle.Render(label)+valueStyle.Render(value))
}

func renderAnalysis(w io.Writer, out analyzeOutput) {
	a := out.PasswordAnalysis
	level := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(a.Strength.Color()))

	fmt.Fprintf(w, "%s %s %s\n",
		strengthBar(a.Score, a.Strength),
		level.Render(a.Strength.Label()),
		fmt.Sprintf("(%d/100)", a.Score))
	fmt.Fprintln(w)

	row(w, "Length", fmt.Sprintf("%d", a.Length))
	row(w, "Pool size", fmt.Sprintf("%d", a.PoolSize))
	row(w, "Entropy", fmt.Sprintf("%.2f bits", a.EntropyBits))
	row(w, "Combinations", out.Combinations)
	row(w, "Mask", out.Mask)
	fmt.Fprintln(w)

	fmt.Fprintln(w, headerStyle.Render("Time to crack"))
	for _, ct := range a.CrackTimes {
		fmt.Fprintf(w, "  %-24s %-32s %s\n", ct.ScenarioLabel, ct.Description, valueStyle.Render(ct.Display))
	}

	if r := out.Advisory; r != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("Advisory"))
		if r.HackerPersona != "" {
			row(w, "Persona", r.HackerPersona)
		}
		if r.Critique != "" {
			fmt.Fprintf(w, "  %s\n", r.Critique)
		}
		for _, tip := range r.Tips {
			fmt.Fprintf(w, "  - %s\n", tip)
		}
	}
}

func renderSummary(w io.Writer, s domain.AuditSummary) {
	fmt.Fprintln(w, headerStyle.Render("Audit summary"))
	row(w, "Passwords", fmt.Sprintf("%d", s.Total))
	for _, level := range domain.StrengthLevels {
		label := lipgloss.NewStyle().Foreground(lipgloss.Color(level.Color())).Width(16).Render(level.Label())
		fmt.Fprintln(w, label+valueStyle.Render(fmt.Sprintf("%d", s.ByStrength[level])))
	}
	row(w, "Mean score", fmt.Sprintf("%.1f", s.MeanScore))
	row(w, "Mean entropy", fmt.Sprintf("%.2f bits", s.MeanEntropy))
	if s.WeakestIndex >= 0 {
		row(w, "Weakest entry", fmt.Sprintf("#%d", s.WeakestIndex+1))
	}
	row(w, "Duration", s.Duration.String())
}

func renderScenarios(w io.Writer, scenarios []domain.AttackScenario) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-24s %-34s %s", "Scenario", "Description", "Guesses/s")))
	for _, s := range scenarios {
		fmt.Fprintf(w, "%-24s %-34s %.0e\n", s.Label, s.Description, s.GuessRate)
	}
}
