package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentic-research/settingsgen/codegen"
	"github.com/agentic-research/settingsgen/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		debounce time.Duration
		settle   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <directory> <baseNamespace>",
		Short: "Regenerate settings code whenever an appsettings file changes",
		Long: `Watch monitors directory and its subdirectories for appsettings*.json
changes and regenerates the artifacts next to each changed file. Files in
subdirectories get the directory names appended to baseNamespace.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("debounce") {
				a.cfg.Debounce = debounce
			}
			if cmd.Flags().Changed("settle") {
				a.cfg.SettleDelay = settle
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			gen := codegen.New(
				codegen.WithFileNames(a.cfg.CatalogFile, a.cfg.AccessorFile),
				codegen.WithHeaderNote(a.cfg.HeaderNote),
			)
			w := watch.New(args[0], args[1], gen,
				watch.WithLogger(a.logger),
				watch.WithDebounce(a.cfg.Debounce),
				watch.WithSettleDelay(a.cfg.SettleDelay),
				watch.WithPattern(a.cfg.Pattern),
			)

			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for %s (Ctrl+C to stop)\n", args[0], a.cfg.Pattern)
			if err := w.Run(ctx); err != nil {
				return err
			}

			s := w.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "Stopped: %d generated, %d failed, %d suppressed\n",
				s.Generated, s.Failed, s.Suppressed)
			return nil
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Minimum time between runs for one file")
	cmd.Flags().DurationVar(&settle, "settle", watch.DefaultSettleDelay, "Delay before reading a changed file")
	return cmd
}
