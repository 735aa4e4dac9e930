package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/beamcheck/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of beamcheck",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		fmt.Fprintf(cmd.OutOrStdout(), "beamcheck v%s\n", info.Version)
		fmt.Fprintf(cmd.OutOrStdout(), "Commit %s, built %s\n", info.GitCommit, info.BuildTime)
		fmt.Fprintf(cmd.OutOrStdout(), "Checks against %s\n", info.Code)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
