package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/modalhost/internal/config"
	"github.com/marcus/modalhost/internal/demo"
	"github.com/marcus/modalhost/pkg/modal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Ask a question in a dialog and print the answer as JSON",
	Long: `Open a single dialog, wait for the answer and print it to stdout as JSON.
A cancelled dialog (Esc, Cancel or a click outside) prints null. The dialog is
drawn on stderr so the output can be piped.`,
}

var promptEmailCmd = &cobra.Command{
	Use:   "email",
	Short: "Ask for an email address",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrompt(cmd, demo.EmailForm)
	},
}

var promptPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick one item from a list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, _ := cmd.Flags().GetStringSlice("items")
		title, _ := cmd.Flags().GetString("title")
		if len(items) == 0 {
			return fmt.Errorf("--items is required")
		}
		return runPrompt(cmd, demo.Picker(title, items))
	},
}

var promptTermsCmd = &cobra.Command{
	Use:   "terms [file]",
	Short: "Show a markdown document and ask for acceptance",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		md := demo.DefaultTerms
		if len(args) == 1 {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			md = string(data)
		}
		height, _ := cmd.Flags().GetInt("height")
		return runPrompt(cmd, demo.Terms(md, height))
	},
}

// runPrompt runs a blank page with render opened over it and writes the
// answer to the command's output.
func runPrompt[T any](cmd *cobra.Command, render modal.RenderFunc[T]) error {
	if err := requireTTY(os.Stderr); err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	page := demo.NewPage(ctx, cmd.CommandPath(), nil, hostOptions(cmd.Flags(), cfg)...)
	p := tea.NewProgram(page,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithOutput(os.Stderr),
		tea.WithContext(ctx),
	)
	page.Host().Mount(modal.ProgramSender(p))
	defer page.Host().Unmount()

	var (
		value T
		ok    bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Quitting the program without answering counts as a cancel.
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		defer p.Quit()
		var err error
		value, ok, err = modal.OpenWithRender(render).Await(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), value, ok)
}

// writeResult prints value as JSON, or null when the dialog was cancelled.
func writeResult[T any](w io.Writer, value T, ok bool) error {
	if !ok {
		_, err := fmt.Fprintln(w, "null")
		return err
	}
	return json.NewEncoder(w).Encode(value)
}

func init() {
	promptPickCmd.Flags().StringSlice("items", nil, "comma-separated items to choose from")
	promptPickCmd.Flags().String("title", "Pick one", "dialog title")
	promptTermsCmd.Flags().Int("height", 10, "lines of the document shown at once")

	promptCmd.AddCommand(promptEmailCmd, promptPickCmd, promptTermsCmd)
	rootCmd.AddCommand(promptCmd)
}
