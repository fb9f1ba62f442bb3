package recovery

import (
	"context"
	"testing"

	"github.com/raphaelgruber/shiftcrack/internal/cipher"
	"github.com/raphaelgruber/shiftcrack/internal/frequency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	plaintext = "Мороз и солнце; день чудесный! Ещё ты дремлешь, друг прелестный. " +
		"Пора, красавица, проснись: открой сомкнуты негой взоры навстречу " +
		"северной Авроры, звездою севера явись!"

	reference = "Вечор, ты помнишь, вьюга злилась, на мутном небе мгла носилась; " +
		"луна, как бледное пятно, сквозь тучи мрачные желтела, и ты печальная " +
		"сидела, а нынче погляди в окно: под голубыми небесами великолепными " +
		"коврами, блестя на солнце, снег лежит."
)

func TestShifts(t *testing.T) {
	shifts := Shifts()
	require.Len(t, shifts, 63)
	assert.Equal(t, -31, shifts[0])
	assert.Equal(t, 31, shifts[len(shifts)-1])
}

func TestCandidates(t *testing.T) {
	ciphertext := cipher.Encrypt("Привет, мир!", 5)
	candidates := Candidates(ciphertext)

	require.Len(t, candidates, CandidateCount)
	for i, c := range candidates {
		assert.Equal(t, cipher.MinShift+i, c.Shift)
		assert.Equal(t, cipher.Decrypt(ciphertext, c.Shift), c.Text)
	}
	assert.Equal(t, "Привет, мир!", candidates[5-cipher.MinShift].Text)
}

func TestCandidates_Empty(t *testing.T) {
	candidates := Candidates("")
	require.Len(t, candidates, CandidateCount)
	for _, c := range candidates {
		assert.Empty(t, c.Text)
	}
}

func TestSelect(t *testing.T) {
	ciphertext := cipher.Encrypt("привет", 3)
	ptr := func(v int) *int { return &v }

	tests := []struct {
		name   string
		choice *int
		wantOK bool
	}{
		{"valid key", ptr(3), true},
		{"lower bound", ptr(-31), true},
		{"upper bound", ptr(31), true},
		{"absent", nil, false},
		{"below range", ptr(-32), false},
		{"above range", ptr(32), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Select(ciphertext, tt.choice)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, Result{}, got)
				return
			}
			assert.Equal(t, *tt.choice, got.Shift)
			assert.Equal(t, cipher.Decrypt(ciphertext, *tt.choice), got.Text)
		})
	}

	got, ok := Select(ciphertext, ptr(3))
	require.True(t, ok)
	assert.Equal(t, "привет", got.Text)
}

func TestBestMatch_RecoversKey(t *testing.T) {
	ciphertext := cipher.Encrypt(plaintext, 7)
	got := BestMatch(ciphertext, frequency.Calculate(reference))

	// -25 and 7 decrypt identically; the lower shift is tried first.
	assert.Equal(t, -25, got.Shift)
	assert.Equal(t, 7, cipher.Canonical(got.Shift))
	assert.Equal(t, plaintext, got.Text)
}

func TestBestMatch_NoCyrillicPicksFirstShift(t *testing.T) {
	got := BestMatch("hello, world 123", frequency.Calculate(reference))
	assert.Equal(t, -31, got.Shift)
	assert.Equal(t, "hello, world 123", got.Text)
	assert.Zero(t, got.Score)
}

func TestBestMatch_EmptyReference(t *testing.T) {
	// Every candidate scores its own total mass against an empty reference.
	got := BestMatch(cipher.Encrypt(plaintext, 4), frequency.Distribution{})
	assert.True(t, cipher.ValidShift(got.Shift))
	assert.InDelta(t, 1.0, got.Score, 1e-9)
	assert.Equal(t, cipher.Decrypt(cipher.Encrypt(plaintext, 4), got.Shift), got.Text)
}

func TestBestMatchParallel_MatchesSequential(t *testing.T) {
	ref := frequency.Calculate(reference)
	inputs := []string{
		cipher.Encrypt(plaintext, 7),
		cipher.Encrypt(plaintext, -12),
		"no letters here",
		"",
	}

	for _, in := range inputs {
		for _, workers := range []int{0, 1, 3, 64} {
			got, err := BestMatchParallel(context.Background(), in, ref, workers)
			require.NoError(t, err)
			assert.Equal(t, BestMatch(in, ref), got, "workers=%d", workers)
		}
	}
}

func TestBestMatchParallel_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BestMatchParallel(ctx, cipher.Encrypt(plaintext, 2), frequency.Calculate(reference), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRank(t *testing.T) {
	ref := frequency.Calculate(reference)
	ciphertext := cipher.Encrypt(plaintext, 7)

	ranked := Rank(ciphertext, ref)
	require.Len(t, ranked, CandidateCount)
	assert.Equal(t, BestMatch(ciphertext, ref), ranked[0])
	assert.Equal(t, 7, ranked[1].Shift)

	for i := 1; i < len(ranked); i++ {
		prev, cur := ranked[i-1], ranked[i]
		assert.True(t, prev.Score < cur.Score || (prev.Score == cur.Score && prev.Shift < cur.Shift),
			"ranked[%d] out of order", i)
	}
}
