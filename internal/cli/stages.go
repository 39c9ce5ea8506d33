package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aerofix/aerofix/internal/pipeline"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Ask the language model for the largest cities of each configured country",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if len(cfg.Countries) == 0 {
			return fmt.Errorf("no countries configured; set `countries` in the config file")
		}

		cities := pipeline.Discover(cmd.Context(), newGenerator(cfg), cfg.Countries, cfg.DiscoverCitiesPerCountry)
		if err := pipeline.WriteJSONFile(workPath(cfg, pipeline.CitiesFile), cities); err != nil {
			return err
		}
		fmt.Printf("discover: %d cities written to %s\n", len(cities), workPath(cfg, pipeline.CitiesFile))
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Ask the language model whether each discovered city has a commercial airport",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var cities []pipeline.City
		if err := pipeline.ReadJSONFile(workPath(cfg, pipeline.CitiesFile), &cities); err != nil {
			return err
		}

		verified := pipeline.Verify(cmd.Context(), newGenerator(cfg), cities)
		if err := pipeline.WriteJSONFile(workPath(cfg, pipeline.VerifiedFile), verified); err != nil {
			return err
		}
		fmt.Printf("verify: %d of %d cities answered\n", len(verified), len(cities))
		return nil
	},
}

var flattenCmd = &cobra.Command{
	Use:   "flatten",
	Short: "Reshape verified cities into flat airport records",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var verified []pipeline.VerifiedCity
		if err := pipeline.ReadJSONFile(workPath(cfg, pipeline.VerifiedFile), &verified); err != nil {
			return err
		}

		records := pipeline.Flatten(verified)
		if err := pipeline.WriteJSONFile(workPath(cfg, pipeline.RecordsFile), records); err != nil {
			return err
		}
		fmt.Printf("flatten: %d airport records from %d cities\n", len(records), len(verified))
		return nil
	},
}

var categorizeCmd = &cobra.Command{
	Use:   "categorize",
	Short: "Annotate records with runway-length categories via the language model",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var records []pipeline.Record
		if err := pipeline.ReadJSONFile(workPath(cfg, pipeline.RecordsFile), &records); err != nil {
			return err
		}

		records = pipeline.Categorize(cmd.Context(), newGenerator(cfg), records)
		if err := pipeline.WriteJSONFile(workPath(cfg, pipeline.RecordsFile), records); err != nil {
			return err
		}
		fmt.Printf("categorize: %d records annotated\n", len(records))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd, verifyCmd, flattenCmd, categorizeCmd)
}
