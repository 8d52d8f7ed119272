package services_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tcpl/ticket-dashboard-backend/internal/core/domain"
	apperrors "github.com/tcpl/ticket-dashboard-backend/internal/core/errors"
	"github.com/tcpl/ticket-dashboard-backend/internal/core/mocks"
	"github.com/tcpl/ticket-dashboard-backend/internal/core/ports"
	"github.com/tcpl/ticket-dashboard-backend/internal/core/services"
)

func sessionWith(columns []string, rows ...[]string) *domain.Session {
	dataset := &domain.Dataset{Columns: columns}
	for _, row := range rows {
		dataset.Tickets = append(dataset.Tickets, domain.NewTicket(columns, row))
	}
	return domain.NewSession("s-1", "tickets.xlsx", dataset)
}

func TestDashboardService_Dashboard(t *testing.T) {
	ctx := context.Background()
	columns := []string{"Priority", "TicketType", "ResolutionStatus", "CreatedTime"}
	session := sessionWith(columns,
		[]string{"P1", "Bug", "Within SLA", "2024-03-01 09:00:00"},
		[]string{"P1", "Request", "Breached", "2024-03-02 10:00:00"},
		[]string{"P4", "Bug", "Within SLA", "2024-03-03 11:00:00"},
	)

	t.Run("filters then summarizes", func(t *testing.T) {
		mockRepo := mocks.NewMockSessionRepository()
		mockWriter := mocks.NewMockDatasetWriter()
		svc := services.NewDashboardService(mockRepo, mockWriter, testLogger())

		mockRepo.On("Get", ctx, "s-1").Return(session, nil)

		result, err := svc.Dashboard(ctx, "s-1", ports.FilterQuery{Priorities: []string{"P1"}})
		require.NoError(t, err)

		assert.Equal(t, 2, result.Summary.Total)
		assert.InDelta(t, 50.0, result.Summary.WithinSLAPercent, 0.001)
		assert.Equal(t, []string{"P1", "P4"}, result.Options.Priorities)

		// No date selection: no date predicate, only the options carry the span.
		assert.Nil(t, result.Criteria.Created)
		require.NotNil(t, result.Options.MinCreated)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *result.Options.MinCreated)
		require.NotNil(t, result.Options.MaxCreated)
		assert.Equal(t, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), *result.Options.MaxCreated)
	})

	t.Run("rows without a created time count when no dates are selected", func(t *testing.T) {
		mockRepo := mocks.NewMockSessionRepository()
		mockWriter := mocks.NewMockDatasetWriter()
		svc := services.NewDashboardService(mockRepo, mockWriter, testLogger())

		withGap := sessionWith([]string{"Priority", "CreatedTime"},
			[]string{"P1", "2024-03-01 09:00:00"},
			[]string{"P2", ""},
		)
		mockRepo.On("Get", ctx, "s-1").Return(withGap, nil)

		result, err := svc.Dashboard(ctx, "s-1", ports.FilterQuery{})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Summary.Total)
		assert.Nil(t, result.Criteria.Created)
	})

	t.Run("unknown session", func(t *testing.T) {
		mockRepo := mocks.NewMockSessionRepository()
		mockWriter := mocks.NewMockDatasetWriter()
		svc := services.NewDashboardService(mockRepo, mockWriter, testLogger())

		mockRepo.On("Get", ctx, "missing").Return(nil, apperrors.ErrSessionNotFound)

		result, err := svc.Dashboard(ctx, "missing", ports.FilterQuery{})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})
}

func TestDashboardService_Tickets(t *testing.T) {
	ctx := context.Background()
	columns := []string{"Priority", "CreatedTime"}
	session := sessionWith(columns,
		[]string{"P1", "2024-03-01 09:00:00"},
		[]string{"P2", "2024-03-03 09:00:00"},
		[]string{"P3", ""},
		[]string{"P4", "2024-03-02 09:00:00"},
	)

	t.Run("sorted by created time descending, missing last", func(t *testing.T) {
		mockRepo := mocks.NewMockSessionRepository()
		mockWriter := mocks.NewMockDatasetWriter()
		svc := services.NewDashboardService(mockRepo, mockWriter, testLogger())

		mockRepo.On("Get", ctx, "s-1").Return(session, nil)

		page, err := svc.Tickets(ctx, "s-1", ports.FilterQuery{}, ports.TicketPageParams{Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Rows, 4)

		order := make([]string, 0, len(page.Rows))
		for _, row := range page.Rows {
			order = append(order, row["Priority"])
		}
		assert.Equal(t, []string{"P2", "P4", "P1", "P3"}, order)
	})

	t.Run("pagination windows the sorted view", func(t *testing.T) {
		mockRepo := mocks.NewMockSessionRepository()
		mockWriter := mocks.NewMockDatasetWriter()
		svc := services.NewDashboardService(mockRepo, mockWriter, testLogger())

		mockRepo.On("Get", ctx, "s-1").Return(session, nil)

		page, err := svc.Tickets(ctx, "s-1", ports.FilterQuery{}, ports.TicketPageParams{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, 4, page.Total)
		require.Len(t, page.Rows, 2)
		assert.Equal(t, "P4", page.Rows[0]["Priority"])

		// Offset past the end yields an empty page, not an error.
		page, err = svc.Tickets(ctx, "s-1", ports.FilterQuery{}, ports.TicketPageParams{Limit: 2, Offset: 10})
		require.NoError(t, err)
		assert.Empty(t, page.Rows)
	})
}

func TestDashboardService_Export(t *testing.T) {
	ctx := context.Background()
	columns := []string{"Priority"}
	session := sessionWith(columns, []string{"P1"}, []string{"P4"})

	t.Run("writes the filtered view", func(t *testing.T) {
		mockRepo := mocks.NewMockSessionRepository()
		mockWriter := mocks.NewMockDatasetWriter()
		svc := services.NewDashboardService(mockRepo, mockWriter, testLogger())

		mockRepo.On("Get", ctx, "s-1").Return(session, nil)
		mockWriter.On("Write", mock.Anything, mock.AnythingOfType("*domain.FilteredView")).
			Run(func(args mock.Arguments) {
				view := args.Get(1).(*domain.FilteredView)
				assert.Equal(t, 1, view.Len())
			}).
			Return(nil)

		var buf bytes.Buffer
		err := svc.Export(ctx, "s-1", ports.FilterQuery{Priorities: []string{"P1"}}, &buf)
		require.NoError(t, err)
		mockWriter.AssertExpectations(t)
	})

	t.Run("empty view is skipped", func(t *testing.T) {
		mockRepo := mocks.NewMockSessionRepository()
		mockWriter := mocks.NewMockDatasetWriter()
		svc := services.NewDashboardService(mockRepo, mockWriter, testLogger())

		mockRepo.On("Get", ctx, "s-1").Return(session, nil)

		var buf bytes.Buffer
		err := svc.Export(ctx, "s-1", ports.FilterQuery{Priorities: []string{"P9"}}, &buf)
		assert.ErrorIs(t, err, apperrors.ErrNothingToExport)
		assert.Zero(t, buf.Len())
		mockWriter.AssertNotCalled(t, "Write")
	})
}
