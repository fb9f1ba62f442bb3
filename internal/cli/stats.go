package cli

import (
	"fmt"
	"io"

	"github.com/raphaelgruber/shiftcrack/internal/metrics"
)

// printTimings displays the operations run by this invocation.
func printTimings(w io.Writer, snap metrics.Snapshot) {
	ops := []struct {
		name string
		op   *metrics.OperationSnapshot
	}{
		{"Encrypt", snap.Encrypt},
		{"Decrypt", snap.Decrypt},
		{"Frequency", snap.Frequency},
		{"Crack", snap.Crack},
	}

	printed := false
	for _, o := range ops {
		if o.op == nil {
			continue
		}
		if !printed {
			fmt.Fprintf(w, "\nTimings\n")
			fmt.Fprintf(w, "═══════════════════════════════════════\n")
			printed = true
		}
		fmt.Fprintf(w, "%s:\n", o.name)
		printOpStats(w, o.op)
	}
}

func printOpStats(w io.Writer, op *metrics.OperationSnapshot) {
	fmt.Fprintf(w, "  Calls: %d, Total: %dms\n", op.Count, op.TotalTimeMs)
	fmt.Fprintf(w, "  Time: avg %.1fms, min %dms, max %dms\n",
		op.AvgTimeMs, op.MinTimeMs, op.MaxTimeMs)
	if op.TotalRunes > 0 {
		fmt.Fprintf(w, "  Runes: %d total, %d max\n", op.TotalRunes, op.MaxRunes)
	}
}
