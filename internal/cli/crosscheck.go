package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aerofix/aerofix/internal/pipeline"
)

var crosscheckCmd = &cobra.Command{
	Use:   "crosscheck",
	Short: "Reconcile every record against the reference dataset and apply corrections",
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

		records, report := pipeline.Crosscheck(records, refs, cfg.Matcher)
		if err := pipeline.WriteJSONFile(workPath(cfg, pipeline.RecordsFile), records); err != nil {
			return err
		}
		if err := pipeline.WriteJSONFile(workPath(cfg, pipeline.CrosscheckFile), report); err != nil {
			return err
		}

		fmt.Printf("crosscheck: run %s: %d corrected, %d unchanged, %d unverified\n",
			report.RunID, report.Corrected, report.Unchanged, report.Unverified)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(crosscheckCmd)
}
