// Package cli provides the command-line interface for shiftcrack.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/raphaelgruber/shiftcrack/internal/config"
	"github.com/raphaelgruber/shiftcrack/internal/metrics"
	"github.com/raphaelgruber/shiftcrack/internal/service"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and services
	cfg           config.Config
	logger        *slog.Logger
	cipherService *service.CipherService
	closeLog      func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "shiftcrack",
	Short: "Cyrillic shift cipher with frequency-based key recovery",
	Long: `Shiftcrack encrypts and decrypts Russian text with a Caesar-style shift
over the 32-letter Cyrillic alphabet (а..я, А..Я; ё is left as is), and
recovers unknown keys by brute force.

Key recovery compares the letter frequencies of every candidate decryption
with a reference text. Without a reference, all 63 candidates are shown and
you pick the one that reads correctly.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, closeLog = config.SetupLogger(cfg.LogFile, level)

		cipherService = service.NewCipherService(logger, metrics.NewCollector(), cfg.Workers)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if verbose && cipherService != nil {
			printTimings(cmd.ErrOrStderr(), cipherService.Metrics().Snapshot())
		}
		if closeLog != nil {
			if err := closeLog(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
			closeLog = nil
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(crackCmd)
	rootCmd.AddCommand(freqCmd)
}
