// Package recovery recovers a shift key from ciphertext alone by trying
// every key in [cipher.MinShift, cipher.MaxShift].
//
// Two modes are supported. Reference-guided search scores each decryption
// against the letter distribution of a reference text and keeps the closest.
// Interactive recovery is a two-phase protocol: Candidates lists every
// decryption, and Select validates the key picked by an outside party.
package recovery

import (
	"math"
	"slices"

	"github.com/raphaelgruber/shiftcrack/internal/cipher"
	"github.com/raphaelgruber/shiftcrack/internal/frequency"
)

// CandidateCount is the number of keys tried by a full search.
const CandidateCount = cipher.MaxShift - cipher.MinShift + 1

// Candidate is the ciphertext decrypted under one key.
type Candidate struct {
	Shift int    `json:"shift"`
	Text  string `json:"text"`
}

// Result is a recovered key with its plaintext. Score is the distance to
// the reference distribution; it is zero for interactively selected keys.
type Result struct {
	Shift int     `json:"shift"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Shifts returns every key tried by a search in ascending order.
func Shifts() []int {
	shifts := make([]int, 0, CandidateCount)
	for s := cipher.MinShift; s <= cipher.MaxShift; s++ {
		shifts = append(shifts, s)
	}
	return shifts
}

// Candidates decrypts ciphertext under every key, ascending by shift.
func Candidates(ciphertext string) []Candidate {
	out := make([]Candidate, 0, CandidateCount)
	for _, s := range Shifts() {
		out = append(out, Candidate{Shift: s, Text: cipher.Decrypt(ciphertext, s)})
	}
	return out
}

// Select completes interactive recovery. A nil choice or one outside
// [cipher.MinShift, cipher.MaxShift] yields ok=false: recovery failed.
func Select(ciphertext string, choice *int) (Result, bool) {
	if choice == nil || !cipher.ValidShift(*choice) {
		return Result{}, false
	}
	return Result{Shift: *choice, Text: cipher.Decrypt(ciphertext, *choice)}, true
}

// BestMatch returns the key whose decryption has the lowest Score against
// reference. Keys are tried in ascending order and only a strictly lower
// score replaces the current best, so the first key wins ties. Ciphertext
// without Cyrillic letters scores 0 everywhere and resolves to
// cipher.MinShift.
func BestMatch(ciphertext string, reference frequency.Distribution) Result {
	best := Result{Score: math.Inf(1)}
	for _, s := range Shifts() {
		if score := scoreShift(ciphertext, s, reference); score < best.Score {
			best.Shift, best.Score = s, score
		}
	}
	best.Text = cipher.Decrypt(ciphertext, best.Shift)
	return best
}

// Rank scores every key and returns the results closest first. Equal
// scores keep ascending shift order, so Rank(...)[0] matches BestMatch.
func Rank(ciphertext string, reference frequency.Distribution) []Result {
	results := make([]Result, 0, CandidateCount)
	for _, s := range Shifts() {
		text := cipher.Decrypt(ciphertext, s)
		results = append(results, Result{
			Shift: s,
			Text:  text,
			Score: frequency.Score(frequency.Calculate(text), reference),
		})
	}
	slices.SortStableFunc(results, compareResults)
	return results
}

func scoreShift(ciphertext string, shift int, reference frequency.Distribution) float64 {
	return frequency.Score(frequency.Calculate(cipher.Decrypt(ciphertext, shift)), reference)
}

// compareResults orders by score, then by shift.
func compareResults(a, b Result) int {
	switch {
	case a.Score < b.Score:
		return -1
	case a.Score > b.Score:
		return 1
	}
	return a.Shift - b.Shift
}
