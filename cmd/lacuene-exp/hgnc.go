package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mtthdn/lacuene-exp/internal/source"
	"github.com/mtthdn/lacuene-exp/pkg/platform/atomicfile"
)

// hgncCmd represents the hgnc command
var hgncCmd = &cobra.Command{
	Use:   "hgnc",
	Short: "Download the protein-coding gene universe from HGNC",
	Long: `Downloads the complete HGNC dataset, filters it to approved
protein-coding genes, and caches the result for the expand and bulk
commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		client := source.NewHGNCClient(slog.Default())
		genes, err := client.DownloadProteinCoding(ctx)
		if err != nil {
			fatal("Failed to download HGNC dataset", err)
		}

		path := cfg.Paths.ProteinCoding()
		data, err := json.MarshalIndent(genes, "", "  ")
		if err != nil {
			fatal("Failed to encode gene universe", err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fatal("Failed to create expanded dir", err)
		}
		if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
			fatal("Failed to write gene universe", err)
		}

		fmt.Printf("Wrote %d protein-coding genes to %s\n", len(genes), path)
	},
}

func init() {
	rootCmd.AddCommand(hgncCmd)
}
