// Package frequency builds letter-frequency fingerprints of Cyrillic text
// and compares them.
package frequency

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"unicode"

	"github.com/raphaelgruber/shiftcrack/internal/cipher"
	"github.com/vmihailenco/msgpack/v4"
)

// Distribution maps a lowercase alphabet letter to its relative frequency.
// Only observed letters are stored; a letter missing from the map has
// frequency 0.0 (see Of).
type Distribution map[rune]float64

// Entry is one letter of a distribution, used for ordered display.
type Entry struct {
	Letter    rune
	Count     int
	Frequency float64
}

// entryWire is the encoded form of Entry in JSON and msgpack.
type entryWire struct {
	Letter    string  `json:"letter" msgpack:"letter"`
	Count     int     `json:"count,omitempty" msgpack:"count,omitempty"`
	Frequency float64 `json:"frequency" msgpack:"frequency"`
}

func (e Entry) wire() entryWire {
	return entryWire{Letter: string(e.Letter), Count: e.Count, Frequency: e.Frequency}
}

func (v entryWire) entry() (Entry, error) {
	letters := []rune(v.Letter)
	if len(letters) != 1 {
		return Entry{}, fmt.Errorf("letter must be a single character, got %q", v.Letter)
	}
	return Entry{Letter: letters[0], Count: v.Count, Frequency: v.Frequency}, nil
}

// MarshalJSON encodes Letter as a one-character string.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.wire())
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var v entryWire
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	entry, err := v.entry()
	if err != nil {
		return err
	}
	*e = entry
	return nil
}

// EncodeMsgpack writes the same shape as MarshalJSON.
func (e Entry) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(e.wire())
}

// DecodeMsgpack decodes the form written by EncodeMsgpack.
func (e *Entry) DecodeMsgpack(dec *msgpack.Decoder) error {
	var v entryWire
	if err := dec.Decode(&v); err != nil {
		return err
	}
	entry, err := v.entry()
	if err != nil {
		return err
	}
	*e = entry
	return nil
}

// Calculate returns the case-folded letter distribution of text.
// Runes outside the Cyrillic alphabet are ignored. Text without any
// alphabet letters yields an empty distribution.
func Calculate(text string) Distribution {
	counts, total := count(text)
	dist := make(Distribution, len(counts))
	if total == 0 {
		return dist
	}
	for letter, n := range counts {
		dist[letter] = float64(n) / float64(total)
	}
	return dist
}

// Profile returns the distribution as entries with raw counts, most frequent
// first and ties broken by alphabet order.
func Profile(text string) []Entry {
	counts, total := count(text)
	entries := make([]Entry, 0, len(counts))
	for letter, n := range counts {
		entries = append(entries, Entry{
			Letter:    letter,
			Count:     n,
			Frequency: float64(n) / float64(total),
		})
	}
	sortEntries(entries)
	return entries
}

func count(text string) (map[rune]int, int) {
	counts := make(map[rune]int)
	total := 0
	for _, r := range text {
		if !unicode.IsLetter(r) || !cipher.IsLetter(r) {
			continue
		}
		counts[cipher.ToLower(r)]++
		total++
	}
	return counts, total
}

// Of returns the frequency of letter, or 0.0 when it was never observed.
func (d Distribution) Of(letter rune) float64 {
	return d[letter]
}

// Sum returns the total of all frequencies: 1.0 for a non-empty
// distribution (within rounding), 0.0 for an empty one.
func (d Distribution) Sum() float64 {
	var s float64
	for _, f := range d.ordered() {
		s += f
	}
	return s
}

// ordered returns the frequencies of observed letters in alphabet order.
// Equal distributions must sum to bit-identical floats.
func (d Distribution) ordered() []float64 {
	out := make([]float64, 0, len(d))
	for i := range cipher.Size {
		if f, ok := d[cipher.Lower.Base+rune(i)]; ok {
			out = append(out, f)
		}
	}
	return out
}

func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Frequency != b.Frequency {
			if a.Frequency > b.Frequency {
				return -1
			}
			return 1
		}
		return int(a.Letter - b.Letter)
	})
}

// Score measures how far candidate is from reference: the sum, over letters
// present in candidate, of the absolute frequency difference. Letters found
// only in reference do not contribute. Lower is closer; 0 for an empty
// candidate. Terms are added in alphabet order.
func Score(candidate, reference Distribution) float64 {
	var s float64
	for i := range cipher.Size {
		letter := cipher.Lower.Base + rune(i)
		if f, ok := candidate[letter]; ok {
			s += math.Abs(f - reference.Of(letter))
		}
	}
	return s
}
