// Package service provides the file and text workflows behind the CLI,
// the MCP tools and the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/raphaelgruber/shiftcrack/internal/cipher"
	"github.com/raphaelgruber/shiftcrack/internal/frequency"
	"github.com/raphaelgruber/shiftcrack/internal/metrics"
)

// CipherService runs encrypt, decrypt, frequency and crack operations and
// records their timings.
type CipherService struct {
	logger  *slog.Logger
	metrics *metrics.Collector
	workers int
}

// NewCipherService creates a new cipher service. A nil logger logs to
// slog.Default(); a nil collector disables metrics.
func NewCipherService(logger *slog.Logger, collector *metrics.Collector, workers int) *CipherService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CipherService{
		logger:  logger,
		metrics: collector,
		workers: workers,
	}
}

// Metrics returns the collector, which may be nil.
func (s *CipherService) Metrics() *metrics.Collector {
	return s.metrics
}

// FileOptions configures a file encrypt or decrypt run.
type FileOptions struct {
	Input  string
	Output string // empty = do not write
	Shift  int
}

// FileResult summarizes a file transform.
type FileResult struct {
	ID       string
	Shift    int
	Runes    int
	Output   string
	Text     string
	Duration time.Duration
}

// EncryptText encrypts text in memory.
func (s *CipherService) EncryptText(text string, shift int) (string, error) {
	return s.transform(metrics.OpEncrypt, text, shift, cipher.Encrypt)
}

// DecryptText decrypts text in memory.
func (s *CipherService) DecryptText(text string, shift int) (string, error) {
	return s.transform(metrics.OpDecrypt, text, shift, cipher.Decrypt)
}

func (s *CipherService) transform(op, text string, shift int, fn func(string, int) string) (string, error) {
	if !cipher.ValidShift(shift) {
		return "", fmt.Errorf("%w: got %d", ErrInvalidShift, shift)
	}
	start := time.Now()
	out := fn(text, shift)
	s.record(op, start, text)
	return out, nil
}

// EncryptFile encrypts the input file and writes the result to Output.
func (s *CipherService) EncryptFile(ctx context.Context, opts FileOptions) (*FileResult, error) {
	return s.transformFile(ctx, metrics.OpEncrypt, opts, s.EncryptText)
}

// DecryptFile decrypts the input file and writes the result to Output.
func (s *CipherService) DecryptFile(ctx context.Context, opts FileOptions) (*FileResult, error) {
	return s.transformFile(ctx, metrics.OpDecrypt, opts, s.DecryptText)
}

func (s *CipherService) transformFile(ctx context.Context, op string, opts FileOptions, fn func(string, int) (string, error)) (*FileResult, error) {
	if !cipher.ValidShift(opts.Shift) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShift, opts.Shift)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	text, err := ReadText(opts.Input)
	if err != nil {
		return nil, err
	}

	out, err := fn(text, opts.Shift)
	if err != nil {
		return nil, err
	}

	if err := WriteText(opts.Output, out); err != nil {
		return nil, err
	}

	result := &FileResult{
		ID:       newRunID(),
		Shift:    opts.Shift,
		Runes:    utf8.RuneCountInString(out),
		Output:   opts.Output,
		Text:     out,
		Duration: time.Since(start),
	}
	s.logger.Info(op+" completed",
		"run_id", result.ID,
		"input", opts.Input,
		"output", opts.Output,
		"shift", opts.Shift,
		"runes", result.Runes,
	)
	return result, nil
}

// Frequency returns the letter profile of text, most frequent first.
func (s *CipherService) Frequency(text string) []frequency.Entry {
	start := time.Now()
	entries := frequency.Profile(text)
	s.record(metrics.OpFrequency, start, text)
	return entries
}

// AnalyzeFile returns the letter profile of a file.
func (s *CipherService) AnalyzeFile(ctx context.Context, path string) ([]frequency.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := ReadText(path)
	if err != nil {
		return nil, err
	}
	return s.Frequency(text), nil
}

func (s *CipherService) record(op string, start time.Time, text string) {
	if s.metrics == nil {
		return
	}
	s.metrics.Record(op, time.Since(start), int64(utf8.RuneCountInString(text)))
}

// ReadText reads a whole file as text.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteText writes text to path. An empty path is a no-op.
func WriteText(path, text string) error {
	if path == "" {
		return nil
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// newRunID returns a short ID for correlating log lines of one run.
func newRunID() string {
	return uuid.New().String()[:8]
}
