package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/winbio/vendorscore/internal/config"
	"github.com/winbio/vendorscore/internal/output"
	"github.com/winbio/vendorscore/internal/table"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-score whenever the dataset changes",
	Long: `Watch the dataset file and print the ranked vendor table again after
every write. Useful while the spreadsheet is being edited elsewhere. A load
or parse failure keeps the previous result on screen and is logged.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	if noColor {
		output.DisableColor()
	}

	cfg, cwd, err := loadConfig()
	if err != nil {
		return err
	}

	path := dataPath
	if path == "" {
		path = cfg.DatasetPath(cwd)
	}

	// Initial pass before the first change.
	if err := rescore(cmd, cfg, path); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchDataset(ctx, path, func() {
		if err := rescore(cmd, cfg, path); err != nil {
			slog.Error("rescore failed, keeping previous result", "path", path, "err", err)
		}
	})
}

// watchDataset monitors path and calls onChange after each write. It runs
// until ctx is cancelled. Editors often save via rename (atomic save), so
// create events count as writes and the file is re-added afterwards.
func watchDataset(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	slog.Info("watching dataset for changes", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			slog.Info("dataset changed", "path", path)
			onChange()

			// Re-add the file in case an atomic save replaced the inode.
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "err", err)
		}
	}
}

// rescore loads, recomputes and prints the ranked table once.
func rescore(cmd *cobra.Command, cfg *config.Config, path string) error {
	t, err := table.Load(path)
	if err != nil {
		return err
	}

	today, qty, err := recompute(cfg, t)
	if err != nil {
		return err
	}

	width := 80
	cmd.Println(output.Header("Vendor Pricing, Terms & Score", width))
	cmd.Printf("As of %s, order quantity %d\n\n", today.Format("2006-01-02"), qty)
	for _, product := range t.Products() {
		cmd.Println(output.SubHeader(product, width))
		cmd.Print(scoreTable(t.ByProduct(product), cfg).RenderCompact())
		cmd.Println()
	}
	return nil
}
