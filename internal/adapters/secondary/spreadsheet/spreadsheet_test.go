package spreadsheet_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tcpl/ticket-dashboard-backend/internal/adapters/secondary/spreadsheet"
	"github.com/tcpl/ticket-dashboard-backend/internal/core/domain"
	apperrors "github.com/tcpl/ticket-dashboard-backend/internal/core/errors"
)

// workbookBytes builds an in-memory xlsx with the given rows on the first sheet.
func workbookBytes(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	sheet := file.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, file.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	return &buf
}

func TestReader_Read(t *testing.T) {
	t.Run("decodes header and rows", func(t *testing.T) {
		buf := workbookBytes(t, [][]interface{}{
			{"Priority", "TicketType", "CreatedTime"},
			{"P1", "Bug", "2024-03-01 09:00:00"},
			{"P4", "Request", "2024-03-02 10:00:00"},
		})

		dataset, err := spreadsheet.NewReader().Read(buf)
		require.NoError(t, err)

		assert.Equal(t, []string{"Priority", "TicketType", "CreatedTime"}, dataset.Columns)
		require.Equal(t, 2, dataset.Len())

		priority, ok := dataset.Tickets[0].Field("Priority")
		require.True(t, ok)
		assert.Equal(t, "P1", priority)
		assert.NotNil(t, dataset.Tickets[0].Created)
	})

	t.Run("header-only workbook yields an empty dataset", func(t *testing.T) {
		buf := workbookBytes(t, [][]interface{}{{"Priority"}})

		dataset, err := spreadsheet.NewReader().Read(buf)
		require.NoError(t, err)
		assert.Equal(t, 0, dataset.Len())
	})

	t.Run("blank interior header gets a placeholder", func(t *testing.T) {
		buf := workbookBytes(t, [][]interface{}{
			{"Priority", "", "TicketType"},
			{"P1", "x", "Bug"},
		})

		dataset, err := spreadsheet.NewReader().Read(buf)
		require.NoError(t, err)
		assert.Equal(t, []string{"Priority", "Column2", "TicketType"}, dataset.Columns)
	})

	t.Run("garbage stream is unreadable", func(t *testing.T) {
		_, err := spreadsheet.NewReader().Read(strings.NewReader("not a zip archive"))
		assert.ErrorIs(t, err, apperrors.ErrWorkbookUnreadable)
	})

	t.Run("workbook with no rows is empty", func(t *testing.T) {
		buf := workbookBytes(t, nil)

		_, err := spreadsheet.NewReader().Read(buf)
		assert.ErrorIs(t, err, apperrors.ErrWorkbookEmpty)
	})
}

func TestWriter_Write(t *testing.T) {
	columns := []string{"Priority", "TicketType", "CreatedTime"}
	view := &domain.FilteredView{
		Columns: columns,
		Tickets: []*domain.Ticket{
			domain.NewTicket(columns, []string{"P1", "Bug", "2024-03-01 09:00:00"}),
			domain.NewTicket(columns, []string{"P4", "", "2024-03-02 10:00:00"}),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, spreadsheet.NewWriter().Write(&buf, view))

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	assert.Equal(t, spreadsheet.ExportSheetName, file.GetSheetName(0))

	rows, err := file.GetRows(spreadsheet.ExportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, columns, rows[0])
	assert.Equal(t, []string{"P1", "Bug", "2024-03-01 09:00:00"}, rows[1])
	// Missing TicketType stays blank in the exported row.
	assert.Equal(t, "P4", rows[2][0])
	assert.Equal(t, "2024-03-02 10:00:00", rows[2][len(rows[2])-1])
}

func TestRoundTrip(t *testing.T) {
	columns := []string{"Priority", "ResolutionStatus"}
	view := &domain.FilteredView{
		Columns: columns,
		Tickets: []*domain.Ticket{
			domain.NewTicket(columns, []string{"P1", "Within SLA"}),
			domain.NewTicket(columns, []string{"P2", "Breached"}),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, spreadsheet.NewWriter().Write(&buf, view))

	dataset, err := spreadsheet.NewReader().Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, columns, dataset.Columns)
	require.Equal(t, 2, dataset.Len())
	status, ok := dataset.Tickets[1].Field("ResolutionStatus")
	require.True(t, ok)
	assert.Equal(t, "Breached", status)
}
