package recovery

import (
	"context"
	"runtime"

	"github.com/raphaelgruber/shiftcrack/internal/cipher"
	"github.com/raphaelgruber/shiftcrack/internal/frequency"
	"golang.org/x/sync/errgroup"
)

// BestMatchParallel is BestMatch with the per-key scoring fanned out over
// workers goroutines (GOMAXPROCS when workers <= 0). Scores are collected by
// shift index and reduced in ascending order, so the result is identical
// to BestMatch. The only error is ctx's.
func BestMatchParallel(ctx context.Context, ciphertext string, reference frequency.Distribution, workers int) (Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	shifts := Shifts()
	scores := make([]float64, len(shifts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, s := range shifts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scores[i] = scoreShift(ciphertext, s, reference)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] < scores[best] {
			best = i
		}
	}
	return Result{
		Shift: shifts[best],
		Text:  cipher.Decrypt(ciphertext, shifts[best]),
		Score: scores[best],
	}, nil
}
