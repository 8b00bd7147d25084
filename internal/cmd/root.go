// Package cmd provides the CLI commands for vendorscore.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/winbio/vendorscore/internal/config"
	"github.com/winbio/vendorscore/internal/table"
)

var (
	// Version is set at build time via ldflags.
	Version = "dev"
	// Commit is set at build time via ldflags.
	Commit = "none"
	// Date is set at build time via ldflags.
	Date = "unknown"
)

var (
	cfgFile  string
	noColor  bool
	dataPath string
	asOfFlag string
	qtyFlag  int
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "vendorscore",
	Short: "Vendor pricing, terms and score dashboard",
	Long: `vendorscore ranks vendors by combining unit price with payment-term
favorability (lower score = better). It loads a pricing spreadsheet, derives
payment-term day counts from free-text descriptions, computes per-vendor
scores and total costs, and assigns per-product ranks and badges.

The dataset is a CSV with at least the columns:
  vendor_code, product, price, terms_raw`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .vendorscore/config.yaml or vendorscore.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "dataset CSV path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&asOfFlag, "as-of", "", "compute payment terms as of this date (YYYY-MM-DD, default today)")
	rootCmd.PersistentFlags().IntVar(&qtyFlag, "qty", 0, "order quantity for total-cost projection (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(dashCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
}

// ExitError carries a specific process exit code up to main.
type ExitError struct {
	Code    int
	Message string
}

// NewExitError creates an ExitError.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func (e *ExitError) Error() string {
	return e.Message
}

// loadConfig resolves the effective configuration from --config or the
// standard search locations.
func loadConfig() (*config.Config, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get working directory: %w", err)
	}

	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return nil, "", err
		}
		return cfg, cwd, nil
	}

	cfg, err := config.LoadFromDir(cwd)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, cwd, nil
}

// loadTable loads the dataset named by --data or the config.
func loadTable(cfg *config.Config, baseDir string) (*table.Table, error) {
	path := dataPath
	if path == "" {
		path = cfg.DatasetPath(baseDir)
	}
	return table.Load(path)
}

// asOfDate resolves the --as-of flag, defaulting to the current date. The
// engine itself never reads the clock; this is the single place "today"
// enters the program.
func asOfDate() (time.Time, error) {
	if asOfFlag == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", asOfFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of date %q (want YYYY-MM-DD)", asOfFlag)
	}
	return t, nil
}

// orderQuantity resolves the effective order quantity from --qty or the
// config.
func orderQuantity(cfg *config.Config) (int, error) {
	qty := qtyFlag
	if qty == 0 {
		qty = cfg.Vendorscore.OrderQuantity
	}
	if qty < 1 {
		return 0, fmt.Errorf("order quantity must be a positive integer, got %d", qty)
	}
	return qty, nil
}
