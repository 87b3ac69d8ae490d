package domain

type StrengthLevel string
type CharacterClass string

const (
	// Password Strength Levels
	StrengthVeryWeak   StrengthLevel = "VERY_WEAK"
	StrengthWeak       StrengthLevel = "WEAK"
	StrengthMedium     StrengthLevel = "MEDIUM"
	StrengthStrong     StrengthLevel = "STRONG"
	StrengthVeryStrong StrengthLevel = "VERY_STRONG"

	// Character classes
	ClassLower   CharacterClass = "LOWER"
	ClassUpper   CharacterClass = "UPPER"
	ClassDigit   CharacterClass = "DIGIT"
	ClassSpecial CharacterClass = "SPECIAL"
)

// Pool contribution of each character class. Special covers the common
// printable punctuation set; anything outside [A-Za-z0-9] is counted as special.
const (
	PoolLower   = 26
	PoolUpper   = 26
	PoolDigit   = 10
	PoolSpecial = 33
)

// Structural mask symbols sent to the advisory service instead of the password.
const (
	MaskLower   = 'L'
	MaskUpper   = 'U'
	MaskDigit   = 'N'
	MaskSpecial = 'S'
)

// StrengthLevels lists every level from weakest to strongest.
var StrengthLevels = []StrengthLevel{
	StrengthVeryWeak,
	StrengthWeak,
	StrengthMedium,
	StrengthStrong,
	StrengthVeryStrong,
}

var strengthLabels = map[StrengthLevel]string{
	StrengthVeryWeak:   "Very Weak",
	StrengthWeak:       "Weak",
	StrengthMedium:     "Medium",
	StrengthStrong:     "Strong",
	StrengthVeryStrong: "Very Strong",
}

var strengthColors = map[StrengthLevel]string{
	StrengthVeryWeak:   "#EF4444",
	StrengthWeak:       "#F97316",
	StrengthMedium:     "#F59E0B",
	StrengthStrong:     "#10B981",
	StrengthVeryStrong: "#3B82F6",
}

// Label returns the human readable name, e.g. "Very Weak".
func (s StrengthLevel) Label() string {
	if label, ok := strengthLabels[s]; ok {
		return label
	}
	return "Unknown"
}

// Color returns the hex display colour used by the UI surfaces.
func (s StrengthLevel) Color() string {
	if color, ok := strengthColors[s]; ok {
		return color
	}
	return "#6B7280"
}

type AuditError string

const (
	ErrEmptyPassword       AuditError = "EMPTY_PASSWORD"
	ErrAdvisoryUnavailable AuditError = "ADVISORY_UNAVAILABLE"
	ErrAdvisoryFailed      AuditError = "ADVISORY_FAILED"
	ErrAdvisoryCancelled   AuditError = "ADVISORY_CANCELLED"
	ErrBatchTooLarge       AuditError = "BATCH_TOO_LARGE"
	ErrInvalidConfig       AuditError = "INVALID_CONFIG"
)

func (e AuditError) Error() string {
	return string(e)
}
