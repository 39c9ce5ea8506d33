package pipeline

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteValidationXLSX exports a validation report as a spreadsheet for the
// people who review the dataset by hand: a summary sheet plus one row per
// issue.
func WriteValidationXLSX(path string, report ValidationReport) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}

	rows := [][]any{
		{"Run ID", report.RunID},
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
		{"Total records", report.Total},
		{"Clean records", report.Clean},
		{"Issues", len(report.Issues)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
	}

	const issues = "Issues"
	if _, err := f.NewSheet(issues); err != nil {
		return fmt.Errorf("creating issues sheet: %w", err)
	}
	header := []any{"Record", "Code", "Message"}
	if err := f.SetSheetRow(issues, "A1", &header); err != nil {
		return fmt.Errorf("writing issues header: %w", err)
	}
	for i, issue := range report.Issues {
		row := []any{issue.Record, issue.Code, issue.Message}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(issues, cell, &row); err != nil {
			return fmt.Errorf("writing issue row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
