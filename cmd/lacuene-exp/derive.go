package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mtthdn/lacuene-exp/internal/aggregate"
	"github.com/mtthdn/lacuene-exp/internal/candidate"
	"github.com/mtthdn/lacuene-exp/internal/source"
)

// deriveCmd represents the derive command
var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive scored gap candidates from the expanded universe",
	Long: `Joins the expanded gene universe against every bulk evidence source,
scores the non-curated genes, and writes the gap candidate snapshot the
query API serves on its derived tier.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := slog.Default()
		runID := uuid.NewString()

		universe := source.LoadUniverse(cfg.Paths.ExpandedGenes(), logger)
		if len(universe) == 0 {
			fatal("No expanded universe cached", fmt.Errorf("run: lacuene-exp expand"))
		}

		sources := aggregate.Sources{
			Curated:      source.LoadCurated(cfg.Paths.CuratedSources(), logger),
			Phenotypes:   source.LoadPhenotypes(cfg.Paths.HPOAssociations(), logger),
			RareDiseases: source.LoadRareDiseases(cfg.Paths.OrphanetCache(), logger),
			DiseaseEntry: source.LoadDiseaseEntries(cfg.Paths.OMIMSubset(), logger),
		}

		records := aggregate.Join(universe, sources, logger)
		snap := candidate.Select(records, runID, time.Now())

		path := cfg.Paths.GapCandidates()
		if err := candidate.Write(path, snap); err != nil {
			fatal("Failed to write candidate snapshot", err)
		}

		fmt.Printf("Derived %d candidates from %d genes (%d curated skipped)\n",
			snap.CandidateCount, len(records), snap.CuratedCount)
		fmt.Printf("Wrote snapshot to %s (run %s)\n", path, runID)
	},
}

func init() {
	rootCmd.AddCommand(deriveCmd)
}
