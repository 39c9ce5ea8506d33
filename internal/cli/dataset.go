package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aerofix/aerofix"
)

var datasetRefresh bool

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Download, cache or inspect the reference dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if datasetRefresh {
			if err := aerofix.RegenerateReferenceCache(
				aerofix.WithDataDir(cfg.DataDir),
				aerofix.WithCacheDir(cfg.CacheDir),
			); err != nil {
				return err
			}
			fmt.Println("dataset: cache regenerated from raw files")
		}

		refs, err := loadReferenceSet(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("dataset: %d reference airports loaded\n", len(refs))
		return nil
	},
}

func init() {
	datasetCmd.Flags().BoolVar(&datasetRefresh, "refresh", false, "re-parse the raw CSV files and rewrite the cache")
	rootCmd.AddCommand(datasetCmd)
}
