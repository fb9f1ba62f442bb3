// Package cipher implements a shift (Caesar) cipher over the 32-letter
// Cyrillic alphabet. Letters outside the alphabet pass through unchanged.
package cipher

// Size is the number of letters in each case of the alphabet.
const Size = 32

// User-facing shift bounds. Any integer is accepted by Encrypt and Decrypt,
// but keys are presented and validated within this range.
const (
	MinShift = -(Size - 1)
	MaxShift = Size - 1
)

// Alphabet is one case of the Cyrillic alphabet: Size contiguous code points
// starting at Base. Ё and ё sit outside both ranges.
type Alphabet struct {
	Base rune
}

var (
	// Lower is а..я (U+0430..U+044F).
	Lower = Alphabet{Base: 'а'}
	// Upper is А..Я (U+0410..U+042F).
	Upper = Alphabet{Base: 'А'}
)

// Contains reports whether r belongs to the alphabet.
func (a Alphabet) Contains(r rune) bool {
	return r >= a.Base && r < a.Base+Size
}

// Shift rotates r by shift positions within the alphabet.
// r must satisfy a.Contains(r); the result is always in the same alphabet.
func (a Alphabet) Shift(r rune, shift int) rune {
	return a.Base + rune(Canonical(int(r-a.Base)+shift))
}

// Canonical reduces a shift to its residue in [0, Size).
func Canonical(shift int) int {
	m := shift % Size
	if m < 0 {
		m += Size
	}
	return m
}

// ValidShift reports whether shift lies in [MinShift, MaxShift].
func ValidShift(shift int) bool {
	return shift >= MinShift && shift <= MaxShift
}

// IsLetter reports whether r is in either case of the alphabet.
func IsLetter(r rune) bool {
	return Lower.Contains(r) || Upper.Contains(r)
}

// ToLower maps an uppercase alphabet letter to its lowercase counterpart.
// Any other rune is returned unchanged.
func ToLower(r rune) rune {
	if Upper.Contains(r) {
		return Lower.Base + (r - Upper.Base)
	}
	return r
}
