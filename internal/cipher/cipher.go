package cipher

import "strings"

// Encrypt shifts every Cyrillic letter of text forward by shift positions,
// keeping its case. All other runes are copied as-is, so the output has the
// same number of runes as the input.
func Encrypt(text string, shift int) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case Lower.Contains(r):
			sb.WriteRune(Lower.Shift(r, shift))
		case Upper.Contains(r):
			sb.WriteRune(Upper.Shift(r, shift))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Decrypt reverses Encrypt with the same key.
func Decrypt(text string, shift int) string {
	return Encrypt(text, -shift)
}
