package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aerofix/aerofix"
	"github.com/aerofix/aerofix/internal/pipeline"
	"github.com/aerofix/aerofix/internal/wiki"
)

var enrichOffline bool

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fill missing ICAO codes from static tables, the reference dataset, Wikipedia and the model",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var records []pipeline.Record
		if err := pipeline.ReadJSONFile(workPath(cfg, pipeline.RecordsFile), &records); err != nil {
			return err
		}

		refs, err := loadReferenceSet(cfg)
		if err != nil {
			return err
		}
		names, iatas := aerofix.BuildIndexes(refs)

		var searcher pipeline.IcaoSearcher
		var generator = newGenerator(cfg)
		if enrichOffline {
			// Offline mode stops the cascade after the reference dataset.
			searcher = nil
			generator = nil
		} else {
			searcher = wiki.New("", cfg.LLM.Timeout.Std())
		}

		records = pipeline.Enrich(cmd.Context(), records, names, iatas, searcher, generator, cfg.Matcher)
		if err := pipeline.WriteJSONFile(workPath(cfg, pipeline.RecordsFile), records); err != nil {
			return err
		}

		missing := 0
		for _, rec := range records {
			if rec.ICAO == "" {
				missing++
			}
		}
		fmt.Printf("enrich: %d records, %d still missing an ICAO code\n", len(records), missing)
		return nil
	},
}

func init() {
	enrichCmd.Flags().BoolVar(&enrichOffline, "offline", false, "skip the Wikipedia and language-model sources")
	rootCmd.AddCommand(enrichCmd)
}
