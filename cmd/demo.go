package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/modalhost/internal/config"
	"github.com/marcus/modalhost/internal/demo"
	"github.com/marcus/modalhost/pkg/modal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const configPollInterval = time.Second

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Open the interactive dialog demo",
	Long: `Open a page with buttons that each open a dialog: an email form with
validation, a fuzzy color picker and a scrollable terms document.

Changes to reduced_motion in the settings file apply while the demo runs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTTY(os.Stdout); err != nil {
			return err
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		page := demo.NewPage(ctx, "modalhost demo", demo.DefaultTriggers(), hostOptions(cmd.Flags(), cfg)...)
		p := tea.NewProgram(page, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
		page.Host().Mount(modal.ProgramSender(p))
		defer page.Host().Unmount()

		pinned := cmd.Flags().Changed("reduced-motion")
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			defer cancel()
			_, err := p.Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		})
		g.Go(func() error {
			err := config.Watch(gctx, configPath, configPollInterval, func(c *config.Config) {
				if pinned {
					return
				}
				slog.Debug("cli: config changed", "reduced_motion", c.ReducedMotion)
				p.Send(modal.ReducedMotionMsg{Enabled: c.ReducedMotion})
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
