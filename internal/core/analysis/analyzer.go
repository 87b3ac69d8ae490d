// Package analysis estimates password strength from character-class pooling.
//
// The model is the textbook upper bound: entropy = length * log2(pool), where
// pool is the sum of the sizes of the character classes present. It assumes
// every character was picked uniformly at random from that pool, so
// "aaaaaaaa" scores the same as a random eight-letter lowercase string. There
// is no dictionary, pattern or Markov adjustment.
//
// Length is counted in Unicode code points. Invalid UTF-8 bytes count as one
// code point each and are classified as special.
package analysis

import (
	"math"
	"strconv"

	"passwordAuditBackend/internal/core/domain"
)

const (
	maxLengthPoints = 40
	lengthPointsPer = 4
	shortLength     = 8
	shortScoreCap   = 40
	singleClassPool = 30
	singleClassCost = 10
)

var classPoints = struct {
	lower, upper, digit, special int
}{10, 15, 15, 20}

var entropyBonusThresholds = []float64{50, 75, 100}

const entropyBonus = 10

var strengthThresholds = []struct {
	min   int
	level domain.StrengthLevel
}{
	{20, domain.StrengthWeak},
	{50, domain.StrengthMedium},
	{80, domain.StrengthStrong},
	{95, domain.StrengthVeryStrong},
}

// Analyze is total: every string, including the empty one, yields a value.
// It holds no state and is safe for concurrent use.
func Analyze(password string) domain.PasswordAnalysis {
	flags, length := Classify(password)
	pool := PoolSize(flags)
	entropy := Entropy(length, pool)
	score := Score(length, flags, pool, entropy)

	return domain.PasswordAnalysis{
		Length:      length,
		HasLower:    flags.HasLower,
		HasUpper:    flags.HasUpper,
		HasDigit:    flags.HasDigit,
		HasSpecial:  flags.HasSpecial,
		PoolSize:    pool,
		EntropyBits: entropy,
		Score:       score,
		Strength:    StrengthFor(score),
		CrackTimes:  CrackTimes(pool, length),
	}
}

// Classify scans the password once and returns its class flags and its
// length in code points.
func Classify(password string) (domain.CharacterClassFlags, int) {
	var flags domain.CharacterClassFlags
	length := 0
	for _, r := range password {
		length++
		switch classOf(r) {
		case domain.ClassLower:
			flags.HasLower = true
		case domain.ClassUpper:
			flags.HasUpper = true
		case domain.ClassDigit:
			flags.HasDigit = true
		default:
			flags.HasSpecial = true
		}
	}
	return flags, length
}

func classOf(r rune) domain.CharacterClass {
	switch {
	case r >= 'a' && r <= 'z':
		return domain.ClassLower
	case r >= 'A' && r <= 'Z':
		return domain.ClassUpper
	case r >= '0' && r <= '9':
		return domain.ClassDigit
	default:
		return domain.ClassSpecial
	}
}

// PoolSize never returns less than 1 so log2 and pow stay defined.
func PoolSize(flags domain.CharacterClassFlags) int {
	pool := 0
	if flags.HasLower {
		pool += domain.PoolLower
	}
	if flags.HasUpper {
		pool += domain.PoolUpper
	}
	if flags.HasDigit {
		pool += domain.PoolDigit
	}
	if flags.HasSpecial {
		pool += domain.PoolSpecial
	}
	if pool == 0 {
		pool = 1
	}
	return pool
}

func Entropy(length, pool int) float64 {
	if length == 0 || pool <= 1 {
		return 0
	}
	return float64(length) * math.Log2(float64(pool))
}

// Score applies the additive heuristic and its penalties. The short-length
// cap runs before the single-class deduction, so a short single-class
// password can end up below 40.
func Score(length int, flags domain.CharacterClassFlags, pool int, entropy float64) int {
	score := 0
	if length > 0 {
		score += min(length*lengthPointsPer, maxLengthPoints)
	}
	if flags.HasLower {
		score += classPoints.lower
	}
	if flags.HasUpper {
		score += classPoints.upper
	}
	if flags.HasDigit {
		score += classPoints.digit
	}
	if flags.HasSpecial {
		score += classPoints.special
	}

	for _, threshold := range entropyBonusThresholds {
		if entropy > threshold {
			score += entropyBonus
		}
	}

	if length < shortLength {
		score = min(score, shortScoreCap)
	}
	if pool < singleClassPool && length > 0 {
		score -= singleClassCost
	}

	return max(0, min(100, score))
}

func StrengthFor(score int) domain.StrengthLevel {
	level := domain.StrengthVeryWeak
	for _, t := range strengthThresholds {
		if score >= t.min {
			level = t.level
		}
	}
	return level
}

// CombinationsHint renders the keyspace as a power of two, or "∞" past 128 bits.
func CombinationsHint(a domain.PasswordAnalysis) string {
	if a.EntropyBits > 128 {
		return "∞"
	}
	return "~2^" + strconv.FormatInt(int64(math.Floor(a.EntropyBits)), 10)
}
