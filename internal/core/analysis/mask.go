package analysis

import (
	"strings"

	"passwordAuditBackend/internal/core/domain"
)

var maskSymbols = map[domain.CharacterClass]rune{
	domain.ClassLower:   domain.MaskLower,
	domain.ClassUpper:   domain.MaskUpper,
	domain.ClassDigit:   domain.MaskDigit,
	domain.ClassSpecial: domain.MaskSpecial,
}

// StructuralMask replaces every code point with its class symbol, so
// "P@ss1" becomes "USLLN". It has the same length unit as Analyze and is the
// only form of the password that may leave the process.
func StructuralMask(password string) string {
	var b strings.Builder
	b.Grow(len(password))
	for _, r := range password {
		b.WriteRune(maskSymbols[classOf(r)])
	}
	return b.String()
}
