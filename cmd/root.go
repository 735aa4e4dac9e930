package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/beamcheck/internal/config"
	"github.com/alexiusacademia/beamcheck/internal/logging"
	"github.com/alexiusacademia/beamcheck/internal/version"
)

var (
	configFile string
	logLevel   string
	logFormat  string

	// Set by the persistent pre-run
	conf   *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "beamcheck",
	Short: "NSCP 2015 Reinforced Concrete Beam Checker",
	Long: `beamcheck - Reinforced Concrete Beam Checker

A CLI tool and HTTP service that checks rectangular reinforced concrete
beams against the National Structural Code of the Philippines (NSCP 2015).

For a given section, bars and factored actions it:
  - Lays out the bars inside the stirrup (clear spacing, layering)
  - Solves flexural equilibrium with a derivation trail
  - Designs two-legged stirrups (strength, code table, minimum Av)
  - Checks reinforcement ratios

All calculations follow NSCP 2015 (Volume 1) provisions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if logFormat != "" {
			c.Logging.Format = logFormat
		}
		l, err := logging.New(c.Logging, logLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		conf, logger = c, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   beamcheck v%-45s║\n", version.Version)
		fmt.Println("  ║   NSCP 2015 Reinforced Concrete Beam Checker              ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Commands:")
		fmt.Println("    • check     Check one beam from flags or a JSON/YAML file")
		fmt.Println("    • batch     Check every beam of a spreadsheet")
		fmt.Println("    • serve     Run the HTTP API")
		fmt.Println("    • token     Issue an API bearer token")
		fmt.Println("    • catalog   List the calculators")
		fmt.Println()
		fmt.Println("  Use 'beamcheck --help' to see all options.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./beamcheck.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format override (json, console)")
}
