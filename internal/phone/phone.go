// Package phone formats Brazilian phone numbers for display.
package phone

import "strings"

// Digits strips every non-digit rune from s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatBR applies the national mobile mask to arbitrary input, revealing
// groupings progressively as digits accumulate: "(93", "(93) 9",
// "(93) 9 9227", "(93) 9 9227-3046". Input beyond 11 digits is truncated.
func FormatBR(input string) string {
	digits := Digits(input)
	if len(digits) > 11 {
		digits = digits[:11]
	}
	if digits == "" {
		return ""
	}

	ddd := digits[:min(2, len(digits))]
	if len(digits) <= 2 {
		return "(" + ddd
	}

	n1 := digits[2:3]
	if len(digits) <= 3 {
		return "(" + ddd + ") " + n1
	}

	n2 := digits[3:min(7, len(digits))]
	if len(digits) <= 7 {
		return "(" + ddd + ") " + n1 + " " + n2
	}

	n3 := digits[7:]
	return "(" + ddd + ") " + n1 + " " + n2 + "-" + n3
}
