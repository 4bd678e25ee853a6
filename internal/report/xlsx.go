// Package report exports recommendations to spreadsheet workbooks.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/lvonguyen/cspm-advisor/internal/recommendation"
)

// Sheet names.
const (
	SheetPending     = "Pending"
	SheetImplemented = "Implemented"
)

var pendingHeader = []interface{}{
	"ID", "Title", "Risk", "Effort", "Status", "Priority", "Timeline", "Product", "Description", "Rationale", "Implementation",
}

var implementedHeader = []interface{}{
	"ID", "Title", "Risk", "Effort", "Implemented On", "Deployment +%", "Scale/Optimize +%", "Product", "Description",
}

// WriteXLSX writes a workbook with one sheet per partition, sorted by key.
func WriteXLSX(w io.Writer, recs []recommendation.Recommendation, key recommendation.SortKey) error {
	f := excelize.NewFile()
	defer f.Close()

	pending, implemented := recommendation.Partition(recs)

	if err := f.SetSheetName("Sheet1", SheetPending); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetImplemented); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	rows := make([][]interface{}, 0, len(pending))
	for _, r := range recommendation.Sort(pending, key) {
		p := recommendation.Prioritize(r)
		rows = append(rows, []interface{}{
			r.ID, r.Title, string(r.RiskLevel), string(r.Effort), string(r.Status),
			string(p.Priority), p.RecommendedTimeline, r.ApplicableProduct,
			r.Description, r.Rationale, r.ImplementationInstructions,
		})
	}
	if err := writeSheet(f, SheetPending, pendingHeader, rows, headerStyle); err != nil {
		return err
	}

	rows = make([][]interface{}, 0, len(implemented))
	for _, r := range recommendation.Sort(implemented, key) {
		rows = append(rows, []interface{}{
			r.ID, r.Title, string(r.RiskLevel), string(r.Effort), r.ImplementedOn,
			optional(r.DeploymentIncrease), optional(r.ScaleOptimizeIncrease),
			r.ApplicableProduct, r.Description,
		})
	}
	if err := writeSheet(f, SheetImplemented, implementedHeader, rows, headerStyle); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}

	if err := f.SetColWidth(sheet, "B", "B", 48); err != nil {
		return err
	}
	return nil
}

// optional renders an absent gauge value as an empty cell.
func optional(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
