package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tcpl/ticket-dashboard-backend/internal/core/domain"
	apperrors "github.com/tcpl/ticket-dashboard-backend/internal/core/errors"
)

// Reader decodes xlsx workbooks into datasets: first sheet only, first row
// as column headers.
type Reader struct{}

// NewReader creates a new workbook reader
func NewReader() *Reader {
	return &Reader{}
}

// Read decodes the workbook stream. It either yields a complete dataset or
// fails outright; there is no partial decode.
func (rd *Reader) Read(r io.Reader) (*domain.Dataset, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrWorkbookUnreadable, err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: no worksheet found", apperrors.ErrWorkbookEmpty)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrWorkbookUnreadable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: worksheet %q is empty", apperrors.ErrWorkbookEmpty, sheetName)
	}

	columns := headerColumns(rows[0])
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: header row has no column names", apperrors.ErrWorkbookEmpty)
	}

	dataset := &domain.Dataset{
		Columns: columns,
		Tickets: make([]*domain.Ticket, 0, len(rows)-1),
	}
	for _, cells := range rows[1:] {
		dataset.Tickets = append(dataset.Tickets, domain.NewTicket(columns, cells))
	}
	return dataset, nil
}

// headerColumns trims the header cells and drops trailing blanks. Blank
// headers in the middle of the row keep a placeholder so cell positions
// still line up.
func headerColumns(header []string) []string {
	end := len(header)
	for end > 0 && strings.TrimSpace(header[end-1]) == "" {
		end--
	}
	columns := make([]string, 0, end)
	for i := 0; i < end; i++ {
		name := strings.TrimSpace(header[i])
		if name == "" {
			name = fmt.Sprintf("Column%d", i+1)
		}
		columns = append(columns, name)
	}
	return columns
}
