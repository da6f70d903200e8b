package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mtthdn/lacuene-exp/internal/candidate"
	"github.com/mtthdn/lacuene-exp/internal/enrich"
)

var enrichTop int

// enrichCmd represents the enrich command
var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich top gap candidates from public APIs",
	Long: `Fetches NCBI gene summaries, PubMed craniofacial publication counts,
and UniProt function annotations for the top gap candidates. Quick
lookups for reviewers, not the full curated pipeline. Run derive first.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := slog.Default()
		runID := uuid.NewString()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		snap, err := candidate.Load(cfg.Paths.GapCandidates())
		if err != nil {
			fatal("No candidate snapshot", fmt.Errorf("run: lacuene-exp derive (%w)", err))
		}

		svc := enrich.NewService(enrich.NewClients(logger), logger)
		result, err := svc.Enrich(ctx, snap, enrichTop, runID, time.Now())
		if err != nil {
			fatal("Enrichment aborted", err)
		}

		path := cfg.Paths.Enrichment()
		if err := enrich.Write(path, result); err != nil {
			fatal("Failed to write enrichment artifact", err)
		}

		withPubs := 0
		for _, c := range result.Candidates {
			if c.PubMedCraniofacialCount > 0 {
				withPubs++
			}
		}
		fmt.Printf("Wrote %d enriched candidates to %s\n", result.EnrichedCount, path)
		fmt.Printf("%d/%d have craniofacial publications\n", withPubs, result.EnrichedCount)
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)
	enrichCmd.Flags().IntVar(&enrichTop, "top", enrich.DefaultTop, "Number of top candidates to enrich")
}
