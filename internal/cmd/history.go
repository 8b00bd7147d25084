package cmd

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/winbio/vendorscore/internal/history"
	"github.com/winbio/vendorscore/internal/output"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded scoring runs",
	Long: `List or show scoring runs recorded by 'score' and 'export' when history
is enabled in the configuration.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the vendor results of one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to list (0 = all)")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
}

func openHistory() (*history.Store, error) {
	cfg, cwd, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return history.Open(cfg.HistoryPath(cwd))
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	if noColor {
		output.DisableColor()
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded. Enable history in the config and run 'vendorscore score'.")
		return nil
	}

	tbl := output.NewTable("ID", "Recorded", "As Of", "Qty", "Rows", "Scored", "Source")
	tbl.AlignRight(0, 3, 4, 5)
	for _, r := range runs {
		tbl.AddRow(
			strconv.FormatInt(r.ID, 10),
			r.RunAt.Local().Format("2006-01-02 15:04"),
			r.AsOf,
			strconv.Itoa(r.Quantity),
			strconv.Itoa(r.Rows),
			strconv.Itoa(r.Scored),
			output.TruncateCell(r.Source, 35),
		)
	}
	cmd.Print(tbl.RenderCompact())
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if noColor {
		output.DisableColor()
	}

	runID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := store.RunRows(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("run %d not found", runID)
	}

	tbl := output.NewTable("Product", "Vendor", "Price", "Days", "Score", "Total Cost", "Rank")
	tbl.AlignRight(2, 3, 4, 5, 6)
	for _, r := range rows {
		tbl.AddRow(
			r.Product,
			r.VendorCode,
			nullMoney(r.Price),
			nullInt(r.TermsDays),
			nullFloat(r.VendorScore),
			nullMoney(r.TotalCost),
			rankCell(r),
		)
	}
	cmd.Print(tbl.RenderCompact())
	return nil
}

func nullMoney(v sql.NullFloat64) string {
	if !v.Valid {
		return "—"
	}
	return fmt.Sprintf("$%.2f", v.Float64)
}

func nullFloat(v sql.NullFloat64) string {
	if !v.Valid {
		return "—"
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}

func nullInt(v sql.NullInt64) string {
	if !v.Valid {
		return "—"
	}
	return strconv.FormatInt(v.Int64, 10)
}

func rankCell(r history.RunRow) string {
	if !r.Rank.Valid {
		return "—"
	}
	if r.RankBadge == "" {
		return strconv.FormatInt(r.Rank.Int64, 10)
	}
	return fmt.Sprintf("%d %s", r.Rank.Int64, r.RankBadge)
}
