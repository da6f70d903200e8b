package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mtthdn/lacuene-exp/internal/platform/config"
)

var (
	verbose bool
	cfg     config.Server
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lacuene-exp",
	Short: "Batch pipeline for craniofacial gene evidence",
	Long: `lacuene-exp aggregates gene evidence from bulk downloads (HGNC, HPO,
Orphanet, OMIM) and derives scored gap candidates for the query API.
Artifacts are written atomically so a running server never sees a partial
snapshot.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)

		cfg = config.FromEnv()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
