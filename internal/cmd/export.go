package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/winbio/vendorscore/internal/output"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the dataset with derived columns",
	Long: `Recompute every derived column and write the augmented CSV: the raw
columns as loaded plus terms_days, vendor_score, total_cost, rank and
rank_badge. With -o - the CSV is written to stdout.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output path (default: overwrite the dataset, - for stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if noColor {
		output.DisableColor()
	}

	cfg, cwd, err := loadConfig()
	if err != nil {
		return err
	}

	t, err := loadTable(cfg, cwd)
	if err != nil {
		return err
	}

	today, qty, err := recompute(cfg, t)
	if err != nil {
		return err
	}
	recordRun(cmd, cfg, cwd, t, today, qty)

	if exportOut == "-" {
		return t.WriteCSV(os.Stdout)
	}

	if err := t.Save(exportOut); err != nil {
		return err
	}
	cmd.Printf("Wrote %d rows (%d scored) to %s\n", t.Len(), t.ScoredCount(), t.Path())
	return nil
}
