package cipher

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

var samples = []string{
	"",
	"привет",
	"Привет, мир!",
	"Съешь же ещё этих мягких французских булок, да выпей чаю.",
	"ЁЖИК ёжик 123 hello WORLD\t\n",
	"no cyrillic at all: 42!",
}

func TestEncrypt(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		shift int
		want  string
	}{
		{"lowercase forward", "привет", 3, "тулеих"},
		{"keeps punctuation and case", "Привет, мир!", 5, "Фхнзкч, снх!"},
		{"wraps past end", "я", 1, "а"},
		{"wraps before start", "а", -1, "я"},
		{"uppercase wraps", "Я", 1, "А"},
		{"zero shift", "Привет", 0, "Привет"},
		{"full cycle", "Привет", 32, "Привет"},
		{"large negative", "б", -65, "а"},
		{"yo passes through", "ёЁ", 7, "ёЁ"},
		{"latin passes through", "abc XYZ", 10, "abc XYZ"},
		{"empty", "", 12, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encrypt(tt.text, tt.shift))
		})
	}
}

func TestDecrypt_IsNegatedEncrypt(t *testing.T) {
	assert.Equal(t, "привет", Decrypt("тулеих", 3))
	assert.Equal(t, Encrypt("Привет", -9), Decrypt("Привет", 9))
}

func TestRoundTrip(t *testing.T) {
	for _, text := range samples {
		for shift := -70; shift <= 70; shift++ {
			assert.Equal(t, text, Decrypt(Encrypt(text, shift), shift), "decrypt(encrypt) shift=%d", shift)
			assert.Equal(t, text, Encrypt(Decrypt(text, shift), shift), "encrypt(decrypt) shift=%d", shift)
		}
	}
}

func TestShiftPeriodicity(t *testing.T) {
	for _, text := range samples {
		for shift := MinShift; shift <= MaxShift; shift++ {
			want := Encrypt(text, shift)
			assert.Equal(t, want, Encrypt(text, shift+Size))
			assert.Equal(t, want, Encrypt(text, shift-Size))
		}
	}
}

func TestEncrypt_PreservesShape(t *testing.T) {
	for _, text := range samples {
		for shift := MinShift; shift <= MaxShift; shift++ {
			got := []rune(Encrypt(text, shift))
			src := []rune(text)
			if !assert.Len(t, got, len(src)) {
				continue
			}
			assert.Equal(t, utf8.RuneCountInString(text), len(got))

			for i, r := range src {
				switch {
				case Lower.Contains(r):
					assert.True(t, Lower.Contains(got[i]), "%q stays lowercase", r)
				case Upper.Contains(r):
					assert.True(t, Upper.Contains(got[i]), "%q stays uppercase", r)
				default:
					assert.Equal(t, r, got[i], "non-letter at %d must not move", i)
				}
			}
		}
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{7, 7},
		{-25, 7},
		{-1, 31},
		{32, 0},
		{-32, 0},
		{-33, 31},
		{100, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Canonical(tt.in), "Canonical(%d)", tt.in)
	}
}

func TestValidShift(t *testing.T) {
	assert.True(t, ValidShift(-31))
	assert.True(t, ValidShift(0))
	assert.True(t, ValidShift(31))
	assert.False(t, ValidShift(-32))
	assert.False(t, ValidShift(32))
}

func TestToLower(t *testing.T) {
	assert.Equal(t, 'а', ToLower('А'))
	assert.Equal(t, 'я', ToLower('Я'))
	assert.Equal(t, 'п', ToLower('п'))
	assert.Equal(t, 'Ё', ToLower('Ё'))
	assert.Equal(t, 'Q', ToLower('Q'))
}
