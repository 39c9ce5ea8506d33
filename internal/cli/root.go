// Package cli wires the pipeline stages into a cobra command tree. Each
// stage is its own subcommand reading and writing flat files in the work
// directory, so a dataset build is a sequence of invocations:
//
//	aerofix discover && aerofix verify && aerofix flatten &&
//	aerofix categorize && aerofix enrich && aerofix crosscheck &&
//	aerofix validate
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aerofix/aerofix"
	"github.com/aerofix/aerofix/internal/config"
	"github.com/aerofix/aerofix/internal/llm"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "aerofix",
	Short: "Build and reconcile a world airport dataset",
	Long: `aerofix builds a dataset of world airports in offline batch stages:
discover cities, verify airports with a local language model, enrich ICAO
codes from static tables, the OurAirports dataset, Wikipedia and the model,
then cross-check every record against the reference dataset and validate
the result.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the CLI; it is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config.yaml (defaults apply when omitted)")
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

func newGenerator(cfg *config.Config) llm.Generator {
	return llm.New(cfg.LLM.Endpoint, cfg.LLM.Model, cfg.LLM.RequestDelay.Std(), cfg.LLM.Timeout.Std())
}

func workPath(cfg *config.Config, name string) string {
	return filepath.Join(cfg.WorkDir, name)
}

func loadReferenceSet(cfg *config.Config) ([]aerofix.ReferenceRecord, error) {
	return aerofix.LoadReferenceSet(
		aerofix.WithDataDir(cfg.DataDir),
		aerofix.WithCacheDir(cfg.CacheDir),
	)
}
