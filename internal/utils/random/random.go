package random

import (
	"math/rand/v2"

	"passwordAuditBackend/internal/core/domain"
)

var (
	CharsetLower   = "abcdefghijklmnopqrstuvwxyz"
	CharsetUpper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	CharsetDigits  = "0123456789"
	CharsetSpecial = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	CharsetAll     = CharsetLower + CharsetUpper + CharsetDigits + CharsetSpecial
)

// Generator produces reproducible passwords for a given seed.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *Generator) String(charset string, length int) string {
	if length <= 0 || len(charset) == 0 {
		return ""
	}

	chars := []rune(charset)
	result := make([]rune, length)
	for i := range result {
		result[i] = chars[g.rng.IntN(len(chars))]
	}
	return string(result)
}

// Password draws from the charsets selected by flags. With no flag set it
// falls back to CharsetAll.
func (g *Generator) Password(flags domain.CharacterClassFlags, length int) string {
	return g.String(CharsetFor(flags), length)
}

func (g *Generator) Intn(n int) int {
	return g.rng.IntN(n)
}

func CharsetFor(flags domain.CharacterClassFlags) string {
	charset := ""
	if flags.HasLower {
		charset += CharsetLower
	}
	if flags.HasUpper {
		charset += CharsetUpper
	}
	if flags.HasDigit {
		charset += CharsetDigits
	}
	if flags.HasSpecial {
		charset += CharsetSpecial
	}
	if charset == "" {
		charset = CharsetAll
	}
	return charset
}
