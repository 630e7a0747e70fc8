package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"rqharness/pkg/vectors"
)

// vectorsCmd generates the RQ01 interop fixture suite.
var vectorsCmd = &cobra.Command{
	Use:   "vectors",
	Short: "Generate the RQ01 interop test vector suite",
	Long: `Generates the fixed suite of RQ01 binary fixtures (v01..v08) into the
output directory, plus a YAML manifest with each fixture's size and BLAKE3
digest. Regenerating from the same specs yields byte-identical files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("out")
		runID := uuid.NewString()
		log := logger.With().Str("run_id", runID).Logger()

		manifest, err := vectors.GenerateAll(dir, runID, log)
		if err != nil {
			return fmt.Errorf("generate vectors: %w", err)
		}

		manifestPath := filepath.Join(dir, "manifest.yaml")
		if err := manifest.Save(manifestPath); err != nil {
			return err
		}
		log.Info().
			Int("fixtures", len(manifest.Fixtures)).
			Str("manifest", manifestPath).
			Msg("vector suite complete")
		return nil
	},
}

func init() {
	vectorsCmd.Flags().StringP("out", "o", "fixtures", "output directory for fixtures")
	rootCmd.AddCommand(vectorsCmd)
}
