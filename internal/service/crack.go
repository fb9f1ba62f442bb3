package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/raphaelgruber/shiftcrack/internal/corpus"
	"github.com/raphaelgruber/shiftcrack/internal/frequency"
	"github.com/raphaelgruber/shiftcrack/internal/metrics"
	"github.com/raphaelgruber/shiftcrack/internal/recovery"
)

// Crack modes.
const (
	ModeReference   = "reference"
	ModeInteractive = "interactive"
)

// Selector is the outside party of interactive recovery. It is shown every
// candidate and returns the chosen shift, or nil when nothing was chosen.
type Selector interface {
	Select(ctx context.Context, candidates []recovery.Candidate) (*int, error)
}

// SelectorFunc adapts a function to Selector.
type SelectorFunc func(ctx context.Context, candidates []recovery.Candidate) (*int, error)

// Select calls f.
func (f SelectorFunc) Select(ctx context.Context, candidates []recovery.Candidate) (*int, error) {
	return f(ctx, candidates)
}

// CrackOptions configures key recovery.
type CrackOptions struct {
	Input  string
	Output string // empty = do not write

	// Reference corpus paths. Missing paths fall back to interactive mode.
	References []string
	// ReferenceText is used when non-empty and takes precedence over References.
	ReferenceText string

	// Parallel scores keys on a worker pool.
	Parallel bool
	// Top keeps the N closest candidates in the result (reference mode).
	Top int
}

// CrackResult summarizes a key recovery run.
type CrackResult struct {
	ID   string
	Mode string
	recovery.Result
	// Closest candidates, best first (reference mode with Top > 0)
	Ranked   []recovery.Result
	Output   string
	Duration time.Duration
}

// CrackFile reads ciphertext from opts.Input and recovers the key. With a
// usable reference the best match is chosen automatically; otherwise sel is
// asked to pick among all candidates, and ErrNoSelection is returned when it
// does not pick a valid key.
func (s *CipherService) CrackFile(ctx context.Context, opts CrackOptions, sel Selector) (*CrackResult, error) {
	ciphertext, err := ReadText(opts.Input)
	if err != nil {
		return nil, err
	}

	result, err := s.Crack(ctx, ciphertext, opts, sel)
	if err != nil {
		return nil, err
	}

	if err := WriteText(opts.Output, result.Text); err != nil {
		return nil, err
	}
	result.Output = opts.Output

	s.logger.Info("crack completed",
		"run_id", result.ID,
		"mode", result.Mode,
		"input", opts.Input,
		"output", opts.Output,
		"shift", result.Shift,
	)
	return result, nil
}

// Crack recovers the key of in-memory ciphertext. Input and Output in opts
// are ignored.
func (s *CipherService) Crack(ctx context.Context, ciphertext string, opts CrackOptions, sel Selector) (*CrackResult, error) {
	start := time.Now()
	runID := newRunID()

	reference, ok := s.loadReference(opts, runID)

	var (
		result *CrackResult
		err    error
	)
	if ok {
		result, err = s.crackWithReference(ctx, ciphertext, reference, opts)
	} else {
		result, err = s.crackInteractive(ctx, ciphertext, sel)
	}
	if err != nil {
		return nil, err
	}

	result.ID = runID
	result.Duration = time.Since(start)
	if s.metrics != nil {
		s.metrics.Record(metrics.OpCrack, result.Duration, int64(utf8.RuneCountInString(ciphertext)))
	}
	return result, nil
}

// loadReference returns the reference distribution, or ok=false when the
// run must fall back to interactive selection.
func (s *CipherService) loadReference(opts CrackOptions, runID string) (frequency.Distribution, bool) {
	if opts.ReferenceText != "" {
		return corpus.FromText(opts.ReferenceText).Distribution(), true
	}
	if len(opts.References) == 0 {
		return nil, false
	}

	ref, err := corpus.Load(opts.References...)
	if err != nil {
		if errors.Is(err, corpus.ErrNotFound) || errors.Is(err, corpus.ErrEmpty) {
			s.logger.Warn("reference unavailable, falling back to interactive selection",
				"run_id", runID, "error", err)
		} else {
			s.logger.Error("failed to load reference, falling back to interactive selection",
				"run_id", runID, "error", err)
		}
		return nil, false
	}
	s.logger.Debug("reference loaded", "run_id", runID, "documents", len(ref.Documents))
	return ref.Distribution(), true
}

func (s *CipherService) crackWithReference(ctx context.Context, ciphertext string, reference frequency.Distribution, opts CrackOptions) (*CrackResult, error) {
	var (
		best recovery.Result
		err  error
	)
	if opts.Parallel {
		best, err = recovery.BestMatchParallel(ctx, ciphertext, reference, s.workers)
		if err != nil {
			return nil, fmt.Errorf("parallel search: %w", err)
		}
	} else {
		best = recovery.BestMatch(ciphertext, reference)
	}

	result := &CrackResult{Mode: ModeReference, Result: best}
	if opts.Top > 0 {
		ranked := recovery.Rank(ciphertext, reference)
		result.Ranked = ranked[:min(opts.Top, len(ranked))]
	}
	return result, nil
}

func (s *CipherService) crackInteractive(ctx context.Context, ciphertext string, sel Selector) (*CrackResult, error) {
	if sel == nil {
		return nil, fmt.Errorf("%w: no reference and no selector", ErrNoSelection)
	}

	choice, err := sel.Select(ctx, recovery.Candidates(ciphertext))
	if err != nil {
		return nil, fmt.Errorf("select shift: %w", err)
	}

	chosen, ok := recovery.Select(ciphertext, choice)
	if !ok {
		return nil, ErrNoSelection
	}
	return &CrackResult{Mode: ModeInteractive, Result: chosen}, nil
}
