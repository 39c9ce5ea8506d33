package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aerofix/aerofix/internal/pipeline"
)

var validateXLSX string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the final validation pass over the corrected dataset",
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

		report := pipeline.Validate(records, refs, cfg.DuplicateRadiusKm)
		if err := pipeline.WriteJSONFile(workPath(cfg, pipeline.ValidationFile), report); err != nil {
			return err
		}
		if validateXLSX != "" {
			if err := pipeline.WriteValidationXLSX(validateXLSX, report); err != nil {
				return err
			}
		}

		fmt.Printf("validate: run %s: %d records, %d clean, %d issues\n",
			report.RunID, report.Total, report.Clean, len(report.Issues))
		if len(report.Issues) > 0 {
			return fmt.Errorf("%d validation issues found", len(report.Issues))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateXLSX, "xlsx", "", "also export the report as a spreadsheet at this path")
	rootCmd.AddCommand(validateCmd)
}
