package cmd

import (
	"fmt"
	"os"

	"github.com/rskv-p/trie/cmd/cmd_bench"
	"github.com/rskv-p/trie/cmd/cmd_scenario"
	"github.com/rskv-p/trie/cmd/cmd_shell"
	"github.com/rskv-p/trie/config"
	"github.com/rskv-p/trie/constant"
	"github.com/rskv-p/trie/pkg/x_log"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:          "trie",
	Short:        "Byte-keyed trie with transactional insert",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		hc, err := config.LoadHarness(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			hc.LogLevel = logLevel
		}
		if _, err := x_log.ParseLevel(hc.LogLevel); err != nil {
			return fmt.Errorf("%w: log_level(%q)", constant.ErrInvalidConfig, hc.LogLevel)
		}

		lc, err := x_log.LoadConfig("")
		if err != nil {
			lc = x_log.DefaultConfig()
		}
		lc.Level = hc.LogLevel
		x_log.InitWithConfig(lc, "trie")

		cmd.SetContext(config.WithHarness(cmd.Context(), hc))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = x_log.Close()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "harness config file (.json or .toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "trace|debug|info|warn|error")

	rootCmd.AddCommand(cmd_scenario.Cmd)
	rootCmd.AddCommand(cmd_bench.Cmd)
	rootCmd.AddCommand(cmd_shell.Cmd)
}
