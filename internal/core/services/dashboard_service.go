package services

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"github.com/tcpl/ticket-dashboard-backend/internal/core/domain"
	apperrors "github.com/tcpl/ticket-dashboard-backend/internal/core/errors"
	"github.com/tcpl/ticket-dashboard-backend/internal/core/ports"
)

// DashboardService implements the filter/aggregate pipeline over a stored
// session. Every call rebuilds the criteria from the request and recomputes
// the view from the immutable dataset; nothing is cached between calls.
type DashboardService struct {
	sessions ports.SessionRepository
	writer   ports.DatasetWriter
	logger   *slog.Logger
}

var _ ports.DashboardService = (*DashboardService)(nil)

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	sessions ports.SessionRepository,
	writer ports.DatasetWriter,
	logger *slog.Logger,
) *DashboardService {
	return &DashboardService{
		sessions: sessions,
		writer:   writer,
		logger:   logger.With("service", "dashboard"),
	}
}

// buildCriteria normalizes a raw filter query against the dataset. The date
// range collapses to nil when no bound was selected or the dataset has no
// usable CreatedTime column, which skips the date predicate entirely.
func buildCriteria(query ports.FilterQuery, dataset *domain.Dataset) domain.FilterCriteria {
	return domain.FilterCriteria{
		Priorities:         query.Priorities,
		TicketTypes:        query.TicketTypes,
		ResolutionStatuses: query.ResolutionStatuses,
		Created:            domain.NormalizeDateRange(query.From, query.To, dataset),
	}
}

// Dashboard runs the full pipeline for one interaction: normalize, filter,
// summarize.
func (s *DashboardService) Dashboard(ctx context.Context, sessionID string, query ports.FilterQuery) (*ports.DashboardResult, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	criteria := buildCriteria(query, session.Dataset)
	view := criteria.Apply(session.Dataset)
	summary := domain.Summarize(view)

	s.logger.DebugContext(ctx, "dashboard computed",
		"session_id", sessionID,
		"rows_in", session.Dataset.Len(),
		"rows_out", view.Len(),
	)

	return &ports.DashboardResult{
		Criteria: criteria,
		Summary:  summary,
		Options:  filterOptions(session.Dataset),
	}, nil
}

// Tickets returns one page of the filtered view, sorted by CreatedTime
// (descending by default, rows without a timestamp last).
func (s *DashboardService) Tickets(ctx context.Context, sessionID string, query ports.FilterQuery, page ports.TicketPageParams) (*ports.TicketPage, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view := buildCriteria(query, session.Dataset).Apply(session.Dataset)
	sortByCreated(view, page.Ascending)

	total := view.Len()
	start := page.Offset
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	rows := make([]map[string]string, 0, end-start)
	for _, ticket := range view.Tickets[start:end] {
		rows = append(rows, ticket.Fields)
	}

	return &ports.TicketPage{
		Columns: view.Columns,
		Rows:    rows,
		Total:   total,
		Limit:   page.Limit,
		Offset:  page.Offset,
	}, nil
}

// Export encodes the filtered view to a workbook. An empty view is skipped
// rather than producing an empty file.
func (s *DashboardService) Export(ctx context.Context, sessionID string, query ports.FilterQuery, w io.Writer) error {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	view := buildCriteria(query, session.Dataset).Apply(session.Dataset)
	if view.Len() == 0 {
		return apperrors.ErrNothingToExport
	}

	if err := s.writer.Write(w, view); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "filtered view exported",
		"session_id", sessionID,
		"rows", view.Len(),
	)
	return nil
}

// sortByCreated orders the view in place. The view is owned by the current
// interaction, so reordering it does not touch the dataset.
func sortByCreated(view *domain.FilteredView, ascending bool) {
	sort.SliceStable(view.Tickets, func(i, j int) bool {
		a, b := view.Tickets[i].Created, view.Tickets[j].Created
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		case ascending:
			return a.Before(*b)
		default:
			return b.Before(*a)
		}
	})
}

func filterOptions(dataset *domain.Dataset) ports.FilterOptions {
	options := ports.FilterOptions{
		Priorities:         dataset.DistinctValues(domain.FieldPriority),
		TicketTypes:        dataset.DistinctValues(domain.FieldTicketType),
		ResolutionStatuses: dataset.DistinctValues(domain.FieldResolutionStatus),
	}
	if min, max, ok := dataset.CreatedBounds(); ok {
		options.MinCreated = &min
		options.MaxCreated = &max
	}
	return options
}
