package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/raphaelgruber/shiftcrack/internal/frequency"
	"github.com/spf13/cobra"
)

const barWidth = 30

var (
	freqText string
	freqJSON bool
)

var freqCmd = &cobra.Command{
	Use:   "freq [input]",
	Short: "Show the Cyrillic letter frequencies of a text",
	Long: `Count the Cyrillic letters of a text, folding upper case into lower case,
and print each letter with its share of all counted letters.

Examples:
  shiftcrack freq book.txt
  shiftcrack freq --text "Привет, мир!"
  shiftcrack freq secret.txt --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFreq,
}

func init() {
	freqCmd.Flags().StringVarP(&freqText, "text", "t", "", "text to analyze instead of reading input")
	freqCmd.Flags().BoolVar(&freqJSON, "json", false, "print entries as JSON")
}

func runFreq(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, argAt(args, 0), freqText)
	if err != nil {
		return err
	}

	entries := cipherService.Frequency(text)
	out := cmd.OutOrStdout()

	if freqJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No Cyrillic letters found.")
		return nil
	}

	total := 0
	for _, e := range entries {
		total += e.Count
	}
	fmt.Fprintf(out, "Letters (%d counted, %d distinct):\n\n", total, len(entries))
	printFrequencyTable(out, entries)
	return nil
}

func printFrequencyTable(w io.Writer, entries []frequency.Entry) {
	top := entries[0].Frequency
	for _, e := range entries {
		n := 0
		if top > 0 {
			n = int(e.Frequency / top * barWidth)
		}
		fmt.Fprintf(w, "  %c %6d  %6.2f%%  %s\n", e.Letter, e.Count, e.Frequency*100, strings.Repeat("█", max(n, 1)))
	}
}
