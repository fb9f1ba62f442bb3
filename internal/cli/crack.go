package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/raphaelgruber/shiftcrack/internal/cipher"
	"github.com/raphaelgruber/shiftcrack/internal/recovery"
	"github.com/raphaelgruber/shiftcrack/internal/service"
	"github.com/spf13/cobra"
)

var (
	crackRefs     []string
	crackTop      int
	crackParallel bool
	crackNoTUI    bool
)

var crackCmd = &cobra.Command{
	Use:   "crack <input> [output]",
	Short: "Recover an unknown shift key by brute force",
	Long: `Try every shift from -31 to 31 on the ciphertext.

With a reference text, the key whose decryption has the letter frequencies
closest to the reference is chosen automatically. Reference paths may be
files or directories of .txt and .md files; they default to the references
in the config file or SHIFTCRACK_REFERENCE.

Without a usable reference, all 63 candidate decryptions are shown and you
choose the one that reads correctly. In a terminal this is a scrollable
list; otherwise the shift is read from one line of standard input.

Examples:
  shiftcrack crack secret.txt plain.txt --reference war-and-peace.txt
  shiftcrack crack secret.txt -r corpus/ --top 5
  shiftcrack crack secret.txt plain.txt
  echo 7 | shiftcrack crack secret.txt --no-tui`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCrack,
}

func init() {
	crackCmd.Flags().StringSliceVarP(&crackRefs, "reference", "r", nil, "reference text files or directories (repeatable)")
	crackCmd.Flags().IntVar(&crackTop, "top", 0, "also list the N closest keys")
	crackCmd.Flags().BoolVar(&crackParallel, "parallel", false, "score keys on a worker pool")
	crackCmd.Flags().BoolVar(&crackNoTUI, "no-tui", false, "read the chosen shift from a line of stdin")
}

func runCrack(cmd *cobra.Command, args []string) error {
	if crackTop < 0 || crackTop > recovery.CandidateCount {
		return fmt.Errorf("--top must be between 0 and %d", recovery.CandidateCount)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	input, output := args[0], argAt(args, 1)

	refs := crackRefs
	if len(refs) == 0 {
		refs = cfg.ReferencePaths
	}
	opts := service.CrackOptions{
		References: refs,
		Parallel:   crackParallel,
		Top:        crackTop,
	}

	var (
		result *service.CrackResult
		err    error
	)
	if isStdio(input) {
		// Stdin carries the ciphertext, so it cannot also carry a choice.
		text, rerr := readInput(cmd, input, "")
		if rerr != nil {
			return rerr
		}
		result, err = cipherService.Crack(ctx, text, opts, nil)
	} else {
		opts.Input = input
		if !isStdio(output) {
			opts.Output = output
		}
		result, err = cipherService.CrackFile(ctx, opts, selectorFor(cmd))
	}
	if errors.Is(err, service.ErrNoSelection) {
		return fmt.Errorf("key recovery failed: %w", err)
	}
	if err != nil {
		return err
	}

	return printCrackResult(cmd, result, output)
}

// selectorFor picks the interactive front end for the command's stdin.
func selectorFor(cmd *cobra.Command) service.Selector {
	in := cmd.InOrStdin()
	if !crackNoTUI && in == os.Stdin && isTerminal(in) {
		return tuiSelector{}
	}
	return lineSelector{in: in, out: cmd.ErrOrStderr()}
}

func printCrackResult(cmd *cobra.Command, result *service.CrackResult, output string) error {
	status := cmd.ErrOrStderr()
	if !isStdio(output) {
		status = cmd.OutOrStdout()
	}

	fmt.Fprintf(status, "Recovered shift: %d", result.Shift)
	if c := cipher.Canonical(result.Shift); c != result.Shift {
		fmt.Fprintf(status, " (same as %d)", c)
	}
	fmt.Fprintln(status)
	if result.Mode == service.ModeReference {
		fmt.Fprintf(status, "Score: %.4f\n", result.Score)
	}

	if len(result.Ranked) > 0 {
		fmt.Fprintf(status, "\nClosest keys (%d):\n\n", len(result.Ranked))
		for i, r := range result.Ranked {
			fmt.Fprintf(status, "  %2d. shift %+3d  score %.4f  %s\n", i+1, r.Shift, r.Score, preview(r.Text, 48))
		}
		fmt.Fprintln(status)
	}

	if isStdio(output) {
		_, err := io.WriteString(cmd.OutOrStdout(), result.Text)
		return err
	}
	if result.Output == "" {
		// Stdin input bypasses CrackFile, so write here.
		if err := writeFile(output, result.Text); err != nil {
			return err
		}
	}
	fmt.Fprintf(status, "Decrypted text saved to %s\n", output)
	fmt.Fprintf(status, "\nDecrypted text:\n%s\n", result.Text)
	return nil
}
