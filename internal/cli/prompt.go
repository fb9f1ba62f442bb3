package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/raphaelgruber/shiftcrack/internal/recovery"
	"golang.org/x/term"
)

// lineSelector prints every candidate and reads the chosen shift from one
// line of input. Anything that is not an integer counts as no choice.
type lineSelector struct {
	in  io.Reader
	out io.Writer
}

// Select prints the candidates and reads one answer.
func (s lineSelector) Select(ctx context.Context, candidates []recovery.Candidate) (*int, error) {
	for _, c := range candidates {
		fmt.Fprintf(s.out, "Shift %d: %s\n", c.Shift, preview(c.Text, previewWidth))
	}
	fmt.Fprint(s.out, "\nEnter the shift that gives readable text: ")

	line, err := readLine(ctx, s.in)
	if err != nil {
		return nil, err
	}

	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, nil
	}
	return &n, nil
}

// readLine reads one line, or returns "" at EOF. On cancellation the reading
// goroutine stays blocked until r yields; commands exit right after.
func readLine(ctx context.Context, r io.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := bufio.NewReader(r).ReadString('\n')
		if err == io.EOF {
			err = nil
		}
		ch <- result{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.err != nil {
			return "", fmt.Errorf("read choice: %w", res.err)
		}
		return res.line, nil
	}
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
