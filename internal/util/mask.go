package util

import "strings"

// MaskNumber hides the middle of a phone number for display: the leading
// + and first two digits stay, the last two digits stay, everything in
// between becomes stars. A whatsapp: scheme prefix is dropped first.
// Numbers of four digits or fewer are starred entirely.
func MaskNumber(number string) string {
	n := strings.TrimSpace(strings.TrimPrefix(number, "whatsapp:"))
	if n == "" {
		return ""
	}

	plus := ""
	if strings.HasPrefix(n, "+") {
		plus = "+"
		n = n[1:]
	}

	if len(n) <= 4 {
		return plus + strings.Repeat("*", len(n))
	}

	return plus + n[:2] + strings.Repeat("*", len(n)-4) + n[len(n)-2:]
}
