package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/beamcheck/internal/api"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the available calculators",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  SLUG\tNAME\tSTATUS")
		for _, c := range api.Catalog {
			status := "planned"
			if c.Available {
				status = "available"
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\n", c.Slug, c.Name, status)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
