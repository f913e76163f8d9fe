package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/flowguard"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of flowguard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "flowguard version %s\n", strings.TrimSpace(flowguard.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
