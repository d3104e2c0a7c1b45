package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/marcus/modalhost/internal/config"
	"github.com/marcus/modalhost/internal/logging"
	"github.com/marcus/modalhost/pkg/modal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	version    string
	configPath string

	flagConfig        string
	flagReducedMotion bool
	flagLogFile       string
	flagDebug         bool

	closeLog = func() error { return nil }
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:   "modalhost",
	Short: "Promise-based modal dialogs for terminal UIs",
	Long: `modalhost - modal dialogs for bubbletea programs that return their answer
like a function call.

Run without a subcommand to open the demo. Use "prompt" to ask a question from
a script and read the answer as JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("cannot determine working directory: %w", err)
		}
		configPath, err = config.Locate(flagConfig, wd)
		if err != nil {
			return err
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		path := cfg.LogFile
		if cmd.Flags().Changed("log-file") {
			path = flagLogFile
		}
		closeLog, err = logging.Setup(path, flagDebug)
		if err != nil {
			return err
		}
		slog.Debug("cli: start", "command", cmd.CommandPath(), "version", version)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

// Execute runs the root command
func Execute() {
	args := os.Args[1:]
	if firstNonFlagArg(args) == "" && !helpRequested(args) {
		rootCmd.SetArgs(append([]string{demoCmd.Name()}, args...))
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "settings file (default: nearest .modalhost/config.json, then the user config dir)")
	pf.BoolVar(&flagReducedMotion, "reduced-motion", false, "skip enter and exit animations")
	pf.StringVar(&flagLogFile, "log-file", "", "write JSON logs to this file")
	pf.BoolVar(&flagDebug, "debug", false, "log at debug level")
}

// valueFlags take the following argument as their value.
var valueFlags = map[string]bool{
	"--log-file": true,
	"--config":   true,
}

// firstNonFlagArg returns the first argument that is neither a flag nor a
// flag's value, or "" if there is none.
func firstNonFlagArg(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") {
			return a
		}
		if valueFlags[a] {
			i++
		}
	}
	return ""
}

func helpRequested(args []string) bool {
	for _, a := range args {
		switch a {
		case "-h", "--help", "-v", "--version":
			return true
		}
	}
	return false
}

// hostOptions builds the modal host options from the config, with flags set
// on the command line taking precedence.
func hostOptions(fs *pflag.FlagSet, cfg *config.Config) []modal.HostOption {
	return []modal.HostOption{
		modal.WithReducedMotion(reducedMotion(fs, cfg)),
		modal.WithAnimation(cfg.AnimationFrames, cfg.FrameInterval()),
		modal.WithLogger(slog.Default()),
	}
}

func reducedMotion(fs *pflag.FlagSet, cfg *config.Config) bool {
	if fs.Changed("reduced-motion") {
		return flagReducedMotion
	}
	return cfg.ReducedMotion
}
