package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/raphaelgruber/shiftcrack/internal/cipher"
	"github.com/raphaelgruber/shiftcrack/internal/metrics"
	"github.com/raphaelgruber/shiftcrack/internal/recovery"
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

func newTestService(t *testing.T) (*CipherService, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewCipherService(logger, metrics.NewCollector(), 2), &logs
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func choose(shift int) Selector {
	return SelectorFunc(func(ctx context.Context, candidates []recovery.Candidate) (*int, error) {
		return &shift, nil
	})
}

func TestEncryptDecryptFile(t *testing.T) {
	svc, _ := newTestService(t)
	dir := t.TempDir()
	in := writeFile(t, dir, "plain.txt", "Привет, мир!")
	enc := filepath.Join(dir, "enc.txt")
	dec := filepath.Join(dir, "dec.txt")
	ctx := context.Background()

	res, err := svc.EncryptFile(ctx, FileOptions{Input: in, Output: enc, Shift: 5})
	require.NoError(t, err)
	assert.Len(t, res.ID, 8)
	assert.Equal(t, 12, res.Runes)
	assert.Equal(t, "Фхнзкч, снх!", res.Text)

	data, err := os.ReadFile(enc)
	require.NoError(t, err)
	assert.Equal(t, "Фхнзкч, снх!", string(data))

	_, err = svc.DecryptFile(ctx, FileOptions{Input: enc, Output: dec, Shift: 5})
	require.NoError(t, err)
	data, err = os.ReadFile(dec)
	require.NoError(t, err)
	assert.Equal(t, "Привет, мир!", string(data))

	snap := svc.Metrics().Snapshot()
	require.NotNil(t, snap.Encrypt)
	require.NotNil(t, snap.Decrypt)
	assert.Equal(t, int64(1), snap.Encrypt.Count)
	assert.Equal(t, int64(12), snap.Decrypt.TotalRunes)
}

func TestEncryptFile_Errors(t *testing.T) {
	svc, _ := newTestService(t)
	dir := t.TempDir()
	in := writeFile(t, dir, "plain.txt", "текст")

	_, err := svc.EncryptFile(context.Background(), FileOptions{Input: filepath.Join(dir, "missing.txt"), Shift: 1})
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = svc.EncryptFile(context.Background(), FileOptions{Input: in, Shift: 32})
	assert.ErrorIs(t, err, ErrInvalidShift)

	_, err = svc.EncryptFile(context.Background(), FileOptions{Input: in, Output: filepath.Join(dir, "no", "such", "dir.txt"), Shift: 1})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrFileNotFound))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.DecryptFile(ctx, FileOptions{Input: in, Shift: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTextOperations(t *testing.T) {
	svc, _ := newTestService(t)

	out, err := svc.EncryptText("привет", 3)
	require.NoError(t, err)
	assert.Equal(t, "тулеих", out)

	out, err = svc.DecryptText(out, 3)
	require.NoError(t, err)
	assert.Equal(t, "привет", out)

	_, err = svc.DecryptText("привет", -32)
	assert.ErrorIs(t, err, ErrInvalidShift)

	entries := svc.Frequency("аааб")
	require.Len(t, entries, 2)
	assert.Equal(t, 'а', entries[0].Letter)
	assert.InDelta(t, 0.75, entries[0].Frequency, 1e-9)
}

func TestAnalyzeFile(t *testing.T) {
	svc, _ := newTestService(t)
	path := writeFile(t, t.TempDir(), "text.txt", "ББа")

	entries, err := svc.AnalyzeFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 'б', entries[0].Letter)
	assert.Equal(t, 2, entries[0].Count)

	_, err = svc.AnalyzeFile(context.Background(), path+".missing")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestCrackFile_WithReference(t *testing.T) {
	svc, _ := newTestService(t)
	dir := t.TempDir()
	in := writeFile(t, dir, "cipher.txt", cipher.Encrypt(plaintext, 7))
	ref := writeFile(t, dir, "ref.txt", reference)
	out := filepath.Join(dir, "out.txt")

	for _, parallel := range []bool{false, true} {
		res, err := svc.CrackFile(context.Background(), CrackOptions{
			Input:      in,
			Output:     out,
			References: []string{ref},
			Parallel:   parallel,
			Top:        3,
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, ModeReference, res.Mode)
		assert.Equal(t, -25, res.Shift)
		assert.Equal(t, plaintext, res.Text)
		require.Len(t, res.Ranked, 3)
		assert.Equal(t, res.Result, res.Ranked[0])

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, plaintext, string(data))
	}

	snap := svc.Metrics().Snapshot()
	require.NotNil(t, snap.Crack)
	assert.Equal(t, int64(2), snap.Crack.Count)
}

func TestCrack_ReferenceText(t *testing.T) {
	svc, _ := newTestService(t)
	res, err := svc.Crack(context.Background(), "hello 123", CrackOptions{ReferenceText: reference}, nil)
	require.NoError(t, err)
	assert.Equal(t, -31, res.Shift)
	assert.Equal(t, "hello 123", res.Text)

	res, err = svc.Crack(context.Background(), cipher.Encrypt(plaintext, 7), CrackOptions{ReferenceText: reference}, nil)
	require.NoError(t, err)
	assert.Equal(t, ModeReference, res.Mode)
	assert.Equal(t, -25, res.Shift)
	assert.Equal(t, plaintext, res.Text)
}

func TestCrack_MissingReferenceFallsBackToSelector(t *testing.T) {
	svc, logs := newTestService(t)
	ciphertext := cipher.Encrypt("привет", 3)

	var seen []recovery.Candidate
	sel := SelectorFunc(func(ctx context.Context, candidates []recovery.Candidate) (*int, error) {
		seen = candidates
		shift := 3
		return &shift, nil
	})

	res, err := svc.Crack(context.Background(), ciphertext, CrackOptions{
		References: []string{filepath.Join(t.TempDir(), "gone.txt")},
	}, sel)
	require.NoError(t, err)

	assert.Equal(t, ModeInteractive, res.Mode)
	assert.Equal(t, 3, res.Shift)
	assert.Equal(t, "привет", res.Text)
	assert.Len(t, seen, recovery.CandidateCount)
	assert.Contains(t, logs.String(), "falling back to interactive selection")
}

func TestCrack_InteractiveFailures(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		sel  Selector
	}{
		{"no selector", nil},
		{"nothing chosen", SelectorFunc(func(context.Context, []recovery.Candidate) (*int, error) { return nil, nil })},
		{"out of range", choose(40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Crack(ctx, "шифр", CrackOptions{}, tt.sel)
			assert.ErrorIs(t, err, ErrNoSelection)
		})
	}

	boom := errors.New("tty closed")
	_, err := svc.Crack(ctx, "шифр", CrackOptions{}, SelectorFunc(func(context.Context, []recovery.Candidate) (*int, error) {
		return nil, boom
	}))
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, ErrNoSelection))
}

func TestCrackFile_MissingInput(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CrackFile(context.Background(), CrackOptions{Input: filepath.Join(t.TempDir(), "x")}, choose(1))
	assert.ErrorIs(t, err, ErrFileNotFound)
}
