package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mtthdn/lacuene-exp/internal/aggregate"
	"github.com/mtthdn/lacuene-exp/internal/bulk"
	"github.com/mtthdn/lacuene-exp/internal/source"
)

var bulkCraniofacial bool

// bulkCmd represents the bulk command
var bulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Build the genome-wide coverage summary",
	Long: `Cross-references the full protein-coding universe against every bulk
evidence source and writes one merged CSV row per gene plus an aggregate
coverage summary. Sources needing per-gene API calls are not included;
use the enrich command for those.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := slog.Default()
		runID := uuid.NewString()

		universePath := cfg.Paths.ProteinCoding()
		if bulkCraniofacial {
			universePath = cfg.Paths.ExpandedGenes()
		}
		universe := source.LoadUniverse(universePath, logger)
		if len(universe) == 0 {
			fatal("No gene universe cached", fmt.Errorf("run: lacuene-exp hgnc"))
		}

		sources := aggregate.Sources{
			Curated:      source.LoadCurated(cfg.Paths.CuratedSources(), logger),
			Phenotypes:   source.LoadPhenotypes(cfg.Paths.HPOAssociations(), logger),
			RareDiseases: source.LoadRareDiseases(cfg.Paths.OrphanetCache(), logger),
			DiseaseEntry: source.LoadDiseaseEntries(cfg.Paths.OMIMSubset(), logger),
		}

		records := aggregate.Join(universe, sources, logger)
		rows, summary := bulk.Build(records, runID, time.Now())

		if err := bulk.WriteCSV(cfg.Paths.BulkCSV(), rows); err != nil {
			fatal("Failed to write genome-wide CSV", err)
		}
		if err := bulk.WriteSummary(cfg.Paths.BulkSummary(), summary); err != nil {
			fatal("Failed to write genome-wide summary", err)
		}

		fmt.Printf("Wrote %d genes to %s\n", len(rows), cfg.Paths.BulkCSV())
		fmt.Printf("Coverage: hpo=%d orphanet=%d omim=%d curated=%d\n",
			summary.InHPO, summary.InOrphanet, summary.InOMIM, summary.InCurated)
	},
}

func init() {
	rootCmd.AddCommand(bulkCmd)
	bulkCmd.Flags().BoolVar(&bulkCraniofacial, "craniofacial", false,
		"Restrict to the craniofacial-adjacent universe")
}
