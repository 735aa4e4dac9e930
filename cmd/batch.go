package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/beamcheck/internal/batch"
)

var (
	batchOutput   string
	batchWorkers  int
	batchTemplate bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <input.xlsx>",
	Short: "Check every beam listed in a spreadsheet",
	Long: `Check many beams at once. Each data row of the first sheet is one beam;
the header row names the columns:

  width height cover fc agg_size stirrup_dia tension_bar_dia
  compression_bar_dia n_tension n_compression fy_main fy_stirrup Mu Vu lightweight

agg_size, compression_bar_dia, n_compression, Vu and lightweight may be left
blank. Results are written to a new workbook in the same row order.

Examples:
  # Write an input template
  beamcheck batch --template -o beams.xlsx

  # Check all rows with 8 workers
  beamcheck batch beams.xlsx -o results.xlsx --workers 8`,
	Args: func(cmd *cobra.Command, args []string) error {
		if batchTemplate {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "results.xlsx", "Output workbook")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Parallel checks (default: batch.workers)")
	batchCmd.Flags().BoolVar(&batchTemplate, "template", false, "Write an input template instead of checking")
}

func runBatch(cmd *cobra.Command, args []string) error {
	out, err := os.Create(batchOutput)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", batchOutput, err)
	}
	defer out.Close()

	if batchTemplate {
		if err := batch.WriteTemplate(out); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  Template written to: %s\n", batchOutput)
		return out.Close()
	}

	in, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	rows, err := batch.ReadInputs(in)
	if err != nil {
		return err
	}

	workers := conf.Batch.Workers
	if batchWorkers > 0 {
		workers = batchWorkers
	}
	logger.Info("batch started",
		zap.String("op", "batch"),
		zap.String("input", args[0]),
		zap.Int("rows", len(rows)),
		zap.Int("workers", workers),
	)

	outcomes, err := batch.Run(cmd.Context(), logger, rows, workers)
	if err != nil {
		return err
	}
	if err := batch.WriteResults(out, outcomes); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	counts := map[string]int{}
	for _, o := range outcomes {
		counts[o.Status()]++
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Rows checked:\t%d\n", len(outcomes))
	fmt.Fprintf(w, "  Adequate (OK):\t%d\n", counts[batch.StatusOK])
	fmt.Fprintf(w, "  Not adequate (NG):\t%d\n", counts[batch.StatusNG])
	fmt.Fprintf(w, "  Rejected (ERROR):\t%d\n", counts[batch.StatusError])
	fmt.Fprintf(w, "  Results:\t%s\n", batchOutput)
	w.Flush()

	return out.Close()
}
