package domain

import (
	"encoding/json"
	"math"
	"time"
)

// AttackScenario is a fixed attacker model with a constant guess rate.
type AttackScenario struct {
	Label       string  `json:"label" yaml:"label"`
	Description string  `json:"description" yaml:"description"`
	GuessRate   float64 `json:"guessesPerSecond" yaml:"guessesPerSecond"`
}

// AttackScenarios is ordered from the weakest to the strongest attacker.
var AttackScenarios = []AttackScenario{
	{
		Label:       "Online Attack",
		Description: "Remote web login brute-force",
		GuessRate:   1e3,
	},
	{
		Label:       "Offline (Fast PC)",
		Description: "Standard CPU running hashcat",
		GuessRate:   1e8,
	},
	{
		Label:       "Offline (High-End GPU)",
		Description: "RTX 4090 cracking MD5/SHA1",
		GuessRate:   1e10,
	},
	{
		Label:       "Supercomputer Cluster",
		Description: "State-actor level massive array",
		GuessRate:   1e12,
	},
}

type CharacterClassFlags struct {
	HasLower   bool
	HasUpper   bool
	HasDigit   bool
	HasSpecial bool
}

// PasswordAnalysis is recomputed from scratch for every password and never
// mutated afterwards.
type PasswordAnalysis struct {
	Length      int               `json:"length" yaml:"length"`
	HasLower    bool              `json:"hasLower" yaml:"hasLower"`
	HasUpper    bool              `json:"hasUpper" yaml:"hasUpper"`
	HasDigit    bool              `json:"hasDigit" yaml:"hasDigit"`
	HasSpecial  bool              `json:"hasSpecial" yaml:"hasSpecial"`
	PoolSize    int               `json:"poolSize" yaml:"poolSize"`
	EntropyBits float64           `json:"entropyBits" yaml:"entropyBits"`
	Score       int               `json:"score" yaml:"score"`
	Strength    StrengthLevel     `json:"strength" yaml:"strength"`
	CrackTimes  []CrackTimeResult `json:"crackTimes" yaml:"crackTimes"`
}

func (a PasswordAnalysis) Flags() CharacterClassFlags {
	return CharacterClassFlags{
		HasLower:   a.HasLower,
		HasUpper:   a.HasUpper,
		HasDigit:   a.HasDigit,
		HasSpecial: a.HasSpecial,
	}
}

type CrackTimeResult struct {
	ScenarioLabel    string  `json:"scenario" yaml:"scenario"`
	Description      string  `json:"description" yaml:"description"`
	GuessRate        float64 `json:"guessesPerSecond" yaml:"guessesPerSecond"`
	EstimatedSeconds float64 `json:"seconds" yaml:"seconds"`
	Display          string  `json:"display" yaml:"display"`
}

// MarshalJSON writes an infinite estimate as null; encoding/json rejects +Inf.
func (r CrackTimeResult) MarshalJSON() ([]byte, error) {
	type wire struct {
		ScenarioLabel    string   `json:"scenario"`
		Description      string   `json:"description"`
		GuessRate        float64  `json:"guessesPerSecond"`
		EstimatedSeconds *float64 `json:"seconds"`
		Display          string   `json:"display"`
	}
	w := wire{
		ScenarioLabel: r.ScenarioLabel,
		Description:   r.Description,
		GuessRate:     r.GuessRate,
		Display:       r.Display,
	}
	if !math.IsInf(r.EstimatedSeconds, 0) && !math.IsNaN(r.EstimatedSeconds) {
		seconds := r.EstimatedSeconds
		w.EstimatedSeconds = &seconds
	}
	return json.Marshal(w)
}

// AdvisoryRequest is everything the advisory service may see. It carries the
// structural mask, never the password itself.
type AdvisoryRequest struct {
	Analysis PasswordAnalysis
	Mask     string
}

type AdvisoryReport struct {
	HackerPersona string   `json:"hackerPersona" yaml:"hackerPersona"`
	Critique      string   `json:"critique" yaml:"critique"`
	Tips          []string `json:"tips" yaml:"tips"`
}

type AuditEntry struct {
	Index    int              `json:"index" yaml:"index"`
	Mask     string           `json:"mask" yaml:"mask"`
	Analysis PasswordAnalysis `json:"analysis" yaml:"analysis"`
}

type AuditSummary struct {
	Total        int                   `json:"total" yaml:"total"`
	ByStrength   map[StrengthLevel]int `json:"byStrength" yaml:"byStrength"`
	MeanScore    float64               `json:"meanScore" yaml:"meanScore"`
	MeanEntropy  float64               `json:"meanEntropy" yaml:"meanEntropy"`
	WeakestIndex int                   `json:"weakestIndex" yaml:"weakestIndex"`
	Duration     time.Duration         `json:"duration" yaml:"duration"`
	AllocBytes   uint64                `json:"allocBytes" yaml:"allocBytes"`
}

type AuditReport struct {
	GeneratedAt time.Time    `json:"generatedAt" yaml:"generatedAt"`
	Entries     []AuditEntry `json:"entries" yaml:"entries"`
	Summary     AuditSummary `json:"summary" yaml:"summary"`
}

type ResourceMetrics struct {
	CPUUsage      float64   `json:"cpuUsage"`
	MemoryUsageMB int64     `json:"memoryUsageMb"`
	SystemMemPct  float64   `json:"systemMemoryPercent"`
	Goroutines    int       `json:"goroutines"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

type ServiceStats struct {
	Analyses         int64                   `json:"analyses"`
	ByStrength       map[StrengthLevel]int64 `json:"byStrength"`
	AdvisoryCalls    int64                   `json:"advisoryCalls"`
	AdvisoryFailures int64                   `json:"advisoryFailures"`
	Resources        ResourceMetrics         `json:"resources"`
}
