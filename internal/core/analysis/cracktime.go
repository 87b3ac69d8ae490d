package analysis

import (
	"math"
	"strconv"

	"github.com/samber/lo"

	"passwordAuditBackend/internal/core/domain"
)

const (
	secondsPerMinute = 60
	minutesPerHour   = 60
	hoursPerDay      = 24
	daysPerMonth     = 30
	monthsPerYear    = 12
	daysPerYear      = 365
)

// CrackTimes projects the expected brute-force time against every attack
// scenario, in scenario order. On average half the keyspace is searched.
// The keyspace is a float64 so very long passwords saturate to +Inf.
func CrackTimes(pool, length int) []domain.CrackTimeResult {
	combinations := math.Pow(float64(pool), float64(length))
	if length == 0 {
		combinations = 0
	}

	return lo.Map(domain.AttackScenarios, func(s domain.AttackScenario, _ int) domain.CrackTimeResult {
		seconds := (combinations / 2) / s.GuessRate
		return domain.CrackTimeResult{
			ScenarioLabel:    s.Label,
			Description:      s.Description,
			GuessRate:        s.GuessRate,
			EstimatedSeconds: seconds,
			Display:          FormatDuration(seconds),
		}
	})
}

// FormatDuration walks the unit ladder, comparing each derived unit against
// its own limit. Units are not pluralised: "1 minutes" is intended output.
func FormatDuration(seconds float64) string {
	if seconds < 1 {
		return "Instantly"
	}
	if seconds < secondsPerMinute {
		return rounded(seconds) + " seconds"
	}

	minutes := seconds / secondsPerMinute
	if minutes < minutesPerHour {
		return rounded(minutes) + " minutes"
	}

	hours := minutes / minutesPerHour
	if hours < hoursPerDay {
		return rounded(hours) + " hours"
	}

	days := hours / hoursPerDay
	if days < daysPerMonth {
		return rounded(days) + " days"
	}

	months := days / daysPerMonth
	if months < monthsPerYear {
		return rounded(months) + " months"
	}

	years := days / daysPerYear
	switch {
	case years < 1e3:
		return rounded(years) + " years"
	case years < 1e6:
		return rounded(years/1e3) + "k years"
	case years < 1e9:
		return rounded(years/1e6) + "m years"
	default:
		return "Centuries"
	}
}

func rounded(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}
