package cmd

import (
	"crypto/subtle"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/winbio/vendorscore/internal/dash"
	"github.com/winbio/vendorscore/internal/score"
)

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Open the interactive dashboard",
	Long: `Open the interactive terminal dashboard: pick a product, edit prices
and payment terms in the grid, watch scores and ranks update live, compare
vendors in bar charts, and save the dataset.

When the configured password environment variable is set, a login prompt
gates access; an empty secret means open access.`,
	RunE: runDash,
}

func runDash(cmd *cobra.Command, args []string) error {
	cfg, cwd, err := loadConfig()
	if err != nil {
		return err
	}

	authorized, err := login(cfg.Password())
	if err != nil {
		return err
	}
	if !authorized {
		return NewExitError(1, "incorrect password")
	}

	t, err := loadTable(cfg, cwd)
	if err != nil {
		return err
	}

	today, err := asOfDate()
	if err != nil {
		return err
	}
	qty, err := orderQuantity(cfg)
	if err != nil {
		return err
	}

	engine := score.Engine{
		Quantity: qty,
		Decimals: cfg.Vendorscore.ScoreDecimals,
		Badges:   cfg.BadgeLabels(),
	}

	model, err := dash.New(t, engine, today, authorized)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}

	if t.IsDirty() {
		cmd.PrintErrln("note: unsaved edits were discarded (press s in the dashboard to save)")
	}
	return nil
}

// login checks the shared secret against a hidden terminal prompt. An empty
// secret means the gate is open. The comparison is constant-time.
func login(secret string) (bool, error) {
	if secret == "" {
		return true, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return false, fmt.Errorf("a password is configured but stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	entered, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return false, fmt.Errorf("failed to read password: %w", err)
	}

	ok := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(string(entered))), []byte(secret)) == 1
	return ok, nil
}
