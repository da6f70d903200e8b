package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mtthdn/lacuene-exp/internal/source"
	"github.com/mtthdn/lacuene-exp/pkg/platform/atomicfile"
)

// expandCmd represents the expand command
var expandCmd = &cobra.Command{
	Use:   "expand",
	Short: "Select the craniofacial-adjacent gene universe",
	Long: `Filters the cached protein-coding universe down to curated genes,
craniofacial gene groups, and craniofacial name terms, producing the
expanded tier the query API serves. Run the hgnc command first.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := slog.Default()

		universe := source.LoadUniverse(cfg.Paths.ProteinCoding(), logger)
		if len(universe) == 0 {
			fatal("No protein-coding universe cached", fmt.Errorf("run: lacuene-exp hgnc"))
		}
		curated := source.LoadCurated(cfg.Paths.CuratedSources(), logger)

		selected := source.SelectCraniofacial(universe, curated)
		source.SortBySymbol(selected)

		path := cfg.Paths.ExpandedGenes()
		data, err := json.MarshalIndent(selected, "", "  ")
		if err != nil {
			fatal("Failed to encode expanded universe", err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fatal("Failed to create expanded dir", err)
		}
		if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
			fatal("Failed to write expanded universe", err)
		}

		fmt.Printf("Wrote %d craniofacial-adjacent genes to %s\n", len(selected), path)
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)
}
