package utils

import (
	"regexp"
	"strings"
)

// Minimal local@domain.tld shape. Deliverability is the mail provider's
// problem, not ours.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// DigitCount counts digit characters after stripping formatting, so
// "(555) 555-5555" counts as 10.
func DigitCount(phone string) int {
	n := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
