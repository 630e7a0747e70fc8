package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"rqharness/pkg/bench"
	"rqharness/pkg/report"
)

// benchCmd runs the encode/decode throughput benchmark.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark codec encode/decode throughput",
	Long: `Runs the fixed benchmark case table (256 B .. 10 MB) sequentially,
timing encode and decode with a warmup-then-median protocol, and prints a
throughput table to stdout. A YAML file given with --cases replaces the
reference table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cases := bench.Cases
		if path, _ := cmd.Flags().GetString("cases"); path != "" {
			loaded, err := bench.LoadCases(path)
			if err != nil {
				return err
			}
			cases = loaded
		}

		runID := uuid.NewString()
		log := logger.With().Str("run_id", runID).Logger()
		log.Info().Int("cases", len(cases)).Msg("benchmark starting")

		results, err := bench.RunAll(cases, log)
		if err != nil {
			return fmt.Errorf("benchmark: %w", err)
		}
		return report.WriteTable(os.Stdout, results)
	},
}

func init() {
	benchCmd.Flags().String("cases", "", "YAML case table overriding the reference cases")
	rootCmd.AddCommand(benchCmd)
}
