package cli

import (
	"fmt"
	"io"

	"github.com/raphaelgruber/shiftcrack/internal/service"
	"github.com/spf13/cobra"
)

// argAt returns args[i], or "" when absent.
func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// isStdio reports whether path names stdin/stdout.
func isStdio(path string) bool {
	return path == "" || path == "-"
}

func fileOptions(input, output string, shift int) service.FileOptions {
	return service.FileOptions{Input: input, Output: output, Shift: shift}
}

// readInput returns inline text when set, else stdin for "-"/"" or the file.
func readInput(cmd *cobra.Command, input, inline string) (string, error) {
	if inline != "" {
		return inline, nil
	}
	if isStdio(input) {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return service.ReadText(input)
}

func writeFile(path, text string) error {
	return service.WriteText(path, text)
}
