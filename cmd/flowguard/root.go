package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errInvalid signals that at least one flow has blocking errors (exit status 1, no extra message).
var errInvalid = errors.New("validation failed")

var rootCmd = &cobra.Command{
	Use:   "flowguard",
	Short: "flowguard validates chat automation flows",
	Long: `flowguard checks chat automation flows (start, message, question, delay, webhook...)
for structural and semantic problems before they are activated.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to flowguard.yaml (default: ./flowguard.yaml when present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().Int("max-blocks", 0, "Maximum number of blocks per flow (overrides config)")
	rootCmd.PersistentFlags().String("source", "file", "How directories are read: 'file' (one document per flow) or 'loam' (one document per block)")
}
