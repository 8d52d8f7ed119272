package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tcpl/ticket-dashboard-backend/internal/core/domain"
)

// ExportSheetName is the single sheet the export workbook carries.
const ExportSheetName = "Filtered"

// Writer encodes filtered views back into xlsx workbooks.
type Writer struct{}

// NewWriter creates a new workbook writer
func NewWriter() *Writer {
	return &Writer{}
}

// Write encodes the view: header row from the original columns, then one
// row per ticket with raw cell values (missing fields stay blank).
func (wr *Writer) Write(w io.Writer, view *domain.FilteredView) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := file.SetSheetName(file.GetSheetName(0), ExportSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(view.Columns))
	for i, column := range view.Columns {
		header[i] = column
	}
	if err := file.SetSheetRow(ExportSheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for rowIdx, ticket := range view.Tickets {
		cells := make([]interface{}, len(view.Columns))
		for colIdx, column := range view.Columns {
			if value, ok := ticket.Field(column); ok {
				cells[colIdx] = value
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", rowIdx+2, err)
		}
		if err := file.SetSheetRow(ExportSheetName, cell, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", rowIdx+2, err)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
