package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/winbio/vendorscore/internal/output"
	"github.com/winbio/vendorscore/internal/score"
)

var (
	chartMetric  string
	chartProduct string
	chartWidth   int
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Chart vendor prices, scores or costs",
	Long: `Render a horizontal bar chart comparing vendors on one metric.

Metrics:
  price  unit price per vendor
  score  vendor score (lower = better; the best bar is highlighted)
  cost   projected total cost at the order quantity`,
	RunE: runChart,
}

func init() {
	chartCmd.Flags().StringVar(&chartMetric, "metric", "score", "metric to chart: price, score, cost")
	chartCmd.Flags().StringVar(&chartProduct, "product", "", "chart a single product group")
	chartCmd.Flags().IntVar(&chartWidth, "width", 40, "width of the longest bar")
}

func runChart(cmd *cobra.Command, args []string) error {
	if noColor {
		output.DisableColor()
	}

	metric, err := metricFunc(chartMetric)
	if err != nil {
		return err
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

	products := t.Products()
	if chartProduct != "" {
		if rows := t.ByProduct(chartProduct); len(rows) == 0 {
			return fmt.Errorf("no rows for product %q", chartProduct)
		}
		products = []string{chartProduct}
	}

	width := 80
	cmd.Println(output.Header(fmt.Sprintf("Vendor %s comparison", chartMetric), width))
	cmd.Printf("As of %s, order quantity %d\n\n", today.Format("2006-01-02"), qty)

	for _, product := range products {
		cmd.Println(output.SubHeader(product, width))
		chart := output.NewBarChart()
		for _, r := range t.ByProduct(product) {
			chart.Add(r.VendorCode, metric(r), barColor(r))
		}
		cmd.Print(chart.Render(chartWidth))
		cmd.Println()
	}

	return nil
}

// metricFunc maps the --metric flag to a row accessor.
func metricFunc(name string) (func(*score.VendorRow) score.Amount, error) {
	switch name {
	case "price":
		return func(r *score.VendorRow) score.Amount { return r.Price }, nil
	case "score":
		return func(r *score.VendorRow) score.Amount { return r.VendorScore }, nil
	case "cost":
		return func(r *score.VendorRow) score.Amount { return r.TotalCost }, nil
	default:
		return nil, fmt.Errorf("unknown metric %q (want price, score or cost)", name)
	}
}

// barColor highlights the best-ranked vendor of each group.
func barColor(r *score.VendorRow) string {
	switch {
	case r.Rank == 1:
		return output.Green
	case r.Rank == 0:
		return output.Dim
	default:
		return output.Blue
	}
}
