package utils

import "strings"

// NormalizeEmail is the canonical form of a user identity. Token subjects,
// history keys and progress keys all go through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
