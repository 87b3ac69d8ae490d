package advisory

import (
	"fmt"
	"strings"

	"passwordAuditBackend/internal/core/domain"
)

// BuildPrompt renders password metadata for the model. It is built from the
// analysis and the mask only.
func BuildPrompt(req domain.AdvisoryRequest) string {
	a := req.Analysis

	var b strings.Builder
	b.WriteString("You are an elite Cybersecurity Consultant and Ethical Hacker.\n")
	b.WriteString("I will provide metadata about a password. DO NOT ASK FOR THE REAL PASSWORD.\n\n")
	b.WriteString("Password Metadata:\n")
	fmt.Fprintf(&b, "- Length: %d\n", a.Length)
	fmt.Fprintf(&b, "- Has Lowercase: %t\n", a.HasLower)
	fmt.Fprintf(&b, "- Has Uppercase: %t\n", a.HasUpper)
	fmt.Fprintf(&b, "- Has Numbers: %t\n", a.HasDigit)
	fmt.Fprintf(&b, "- Has Special Chars: %t\n", a.HasSpecial)
	fmt.Fprintf(&b, "- Entropy Bits: %.2f\n", a.EntropyBits)
	fmt.Fprintf(&b, "- Structure hint: %q (L=lowercase, U=uppercase, N=digit, S=other)\n\n", req.Mask)
	b.WriteString("Task:\n")
	b.WriteString("1. Act as a specific \"Hacker Persona\" (e.g. Script Kiddie, State Actor, Social Engineer) ")
	b.WriteString("and explain how you would try to crack this specific pattern.\n")
	b.WriteString("2. Provide a short, witty critique of the password strength.\n")
	b.WriteString("3. Give 2-3 concrete, actionable tips to improve this specific password type.\n\n")
	b.WriteString("Response Format: JSON with keys hackerPersona, critique, tips.\n")
	return b.String()
}
