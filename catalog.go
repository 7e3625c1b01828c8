package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the built-in portfolio project templates",
	RunE:  runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(_ *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDIFFICULTY\tSTEPS")
	for _, t := range catalog.Default().All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", t.ID, t.Title, t.Difficulty, t.StepCount())
	}
	return w.Flush()
}
