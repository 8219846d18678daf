package cmd_bench

import (
	"fmt"
	"time"

	"github.com/rskv-p/trie/config"
	"github.com/rskv-p/trie/internal/harness"

	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:   "bench",
	Short: "Insert, look up and remove keys on independent tries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		hc := config.HarnessFrom(cmd.Context())
		flags := cmd.Flags()
		if flags.Changed("keys") {
			hc.Keys, _ = flags.GetInt("keys")
		}
		if flags.Changed("workers") {
			hc.Workers, _ = flags.GetInt("workers")
		}
		if flags.Changed("mode") {
			hc.KeyMode, _ = flags.GetString("mode")
		}
		if err := hc.Validate(); err != nil {
			return err
		}

		results, err := harness.Bench(cmd.Context(), hc)
		if err != nil {
			return fmt.Errorf("bench: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "keys=%d workers=%d mode=%s\n", hc.Keys, hc.Workers, hc.KeyMode)
		var total float64
		for _, r := range results {
			fmt.Fprintf(out, "[%d] nodes=%d insert=%s lookup=%s remove=%s %.0f ops/s\n",
				r.Worker, r.Nodes, round(r.Insert), round(r.Lookup), round(r.Remove), r.OpsPerSec())
			total += r.OpsPerSec()
		}
		fmt.Fprintf(out, "total %.0f ops/s\n", total)
		return nil
	},
}

func round(d time.Duration) time.Duration { return d.Round(time.Microsecond) }

func init() {
	Cmd.Flags().Int("keys", 0, "keys per worker (default from config)")
	Cmd.Flags().Int("workers", 0, "worker goroutines (default from config)")
	Cmd.Flags().String("mode", "", "key generator: seq|random (default from config)")
}
