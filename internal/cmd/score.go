package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/winbio/vendorscore/internal/config"
	"github.com/winbio/vendorscore/internal/history"
	"github.com/winbio/vendorscore/internal/output"
	"github.com/winbio/vendorscore/internal/score"
	"github.com/winbio/vendorscore/internal/table"
)

var scoreProduct string

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score and rank vendors",
	Long: `Load the pricing dataset, recompute every derived column (payment-term
days, vendor score, total cost, rank, badge) and print the ranked vendor
table. Vendors compete within their product group; lower score is better.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreProduct, "product", "", "show a single product group")
}

func runScore(cmd *cobra.Command, args []string) error {
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

	products := t.Products()
	if scoreProduct != "" {
		if rows := t.ByProduct(scoreProduct); len(rows) == 0 {
			return fmt.Errorf("no rows for product %q", scoreProduct)
		}
		products = []string{scoreProduct}
	}

	width := 80
	cmd.Println(output.Header("Vendor Pricing, Terms & Score", width))
	cmd.Printf("As of %s, order quantity %d (lower score = better)\n\n",
		today.Format("2006-01-02"), qty)

	for _, product := range products {
		rows := t.ByProduct(product)
		cmd.Println(output.SubHeader(product, width))
		cmd.Print(scoreTable(rows, cfg).RenderCompact())

		if best := t.Best(product); best != nil {
			cmd.Printf("Best: %s (score %s)\n",
				output.Color(best.VendorCode, output.BoldGreen),
				output.FormatAmount(best.VendorScore, cfg.Vendorscore.ScoreDecimals))
		} else {
			cmd.Println("Best: none (no vendor in this group has a defined score)")
		}
		cmd.Println()
	}

	cmd.Println(output.Header(fmt.Sprintf("%d vendors, %d scored, %d products",
		t.Len(), t.ScoredCount(), len(t.Products())), width))
	return nil
}

// scoreTable builds the ranked vendor table for one product group, ordered
// by rank with unscored rows at the bottom.
func scoreTable(rows []*score.VendorRow, cfg *config.Config) *output.Table {
	tbl := output.NewTable("Rank", "Vendor", "Price", "Terms", "Days", "Score", "Total Cost")
	tbl.AlignRight(2, 4, 5, 6)

	decimals := cfg.Vendorscore.ScoreDecimals
	for _, r := range rankedOrder(rows) {
		rankStr := output.Color(output.FormatRank(r.Rank, r.RankBadge), output.RankColor(r.Rank))
		tbl.AddRow(
			rankStr,
			r.VendorCode,
			output.FormatMoney(r.Price),
			output.TruncateCell(r.TermsRaw, 30),
			output.FormatTermDays(r.TermsDays),
			output.FormatAmount(r.VendorScore, decimals),
			output.FormatMoney(r.TotalCost),
		)
	}
	return tbl
}

// rankedOrder sorts for display: ranked rows first by rank, unscored rows
// after in input order. The underlying slice is untouched.
func rankedOrder(rows []*score.VendorRow) []*score.VendorRow {
	ordered := make([]*score.VendorRow, 0, len(rows))
	for rank := 1; rank <= len(rows); rank++ {
		for _, r := range rows {
			if r.Rank == rank {
				ordered = append(ordered, r)
			}
		}
	}
	for _, r := range rows {
		if r.Rank == 0 {
			ordered = append(ordered, r)
		}
	}
	return ordered
}

// recompute runs one full engine pass over the table using the effective
// as-of date and order quantity.
func recompute(cfg *config.Config, t *table.Table) (time.Time, int, error) {
	today, err := asOfDate()
	if err != nil {
		return time.Time{}, 0, err
	}
	qty, err := orderQuantity(cfg)
	if err != nil {
		return time.Time{}, 0, err
	}

	engine := score.Engine{
		Quantity: qty,
		Decimals: cfg.Vendorscore.ScoreDecimals,
		Badges:   cfg.BadgeLabels(),
	}
	engine.Recompute(t.Rows(), today)
	return today, qty, nil
}

// recordRun archives the pass in the history store when enabled. Failures
// are reported but never abort the scoring output.
func recordRun(cmd *cobra.Command, cfg *config.Config, baseDir string, t *table.Table, today time.Time, qty int) {
	if !cfg.Vendorscore.History.Enabled {
		return
	}

	store, err := history.Open(cfg.HistoryPath(baseDir))
	if err != nil {
		cmd.PrintErrf("warning: history disabled for this run: %v\n", err)
		return
	}
	defer store.Close()

	runID, err := store.Record(today, qty, t.Path(), t.Rows())
	if err != nil {
		cmd.PrintErrf("warning: failed to record run: %v\n", err)
		return
	}
	cmd.PrintErrln("recorded run " + strconv.FormatInt(runID, 10))
}
