package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/marcus/modalhost/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg.ReducedMotion = reducedMotion(cmd.Flags(), cfg)
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configPath)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set reduced-motion <true|false>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] != "reduced-motion" {
			return fmt.Errorf("unknown setting %q", args[0])
		}
		enabled, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("reduced-motion: %w", err)
		}
		if err := config.SetReducedMotion(configPath, enabled); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		state := "OFF"
		if enabled {
			state = "ON"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "REDUCED MOTION %s\n", state)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configPathCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
