package ports

import (
	"context"
	"io"
	"time"

	"github.com/tcpl/ticket-dashboard-backend/internal/core/domain"
)

// CreateSessionParams defines the input for creating a session from an
// uploaded workbook. SessionID is normally empty (a fresh id is generated);
// the startup loader passes domain.DefaultSessionID.
type CreateSessionParams struct {
	Filename  string
	Content   io.Reader
	SessionID string
}

// SessionService defines the port for session lifecycle management.
type SessionService interface {
	Create(ctx context.Context, params CreateSessionParams) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// FilterQuery is the raw filter selection carried by a request, before
// date-range normalization against the session's dataset.
type FilterQuery struct {
	Priorities         []string
	TicketTypes        []string
	ResolutionStatuses []string
	From               *time.Time
	To                 *time.Time
}

// TicketPageParams defines pagination and ordering for the ticket table.
type TicketPageParams struct {
	Limit     int
	Offset    int
	Ascending bool
}

// FilterOptions lists the selectable filter values a UI can offer: the
// distinct non-missing values per categorical column and the dataset's
// full created-time span.
type FilterOptions struct {
	Priorities         []string
	TicketTypes        []string
	ResolutionStatuses []string
	MinCreated         *time.Time
	MaxCreated         *time.Time
}

// DashboardResult bundles everything one dashboard interaction produces.
type DashboardResult struct {
	Criteria domain.FilterCriteria
	Summary  *domain.Summary
	Options  FilterOptions
}

// TicketPage is one page of the filtered ticket table. Rows hold the raw
// field values; Columns conveys the workbook's column order.
type TicketPage struct {
	Columns []string
	Rows    []map[string]string
	Total   int
	Limit   int
	Offset  int
}

// DashboardService defines the port for the filter/aggregate pipeline.
type DashboardService interface {
	Dashboard(ctx context.Context, sessionID string, query FilterQuery) (*DashboardResult, error)
	Tickets(ctx context.Context, sessionID string, query FilterQuery, page TicketPageParams) (*TicketPage, error)
	Export(ctx context.Context, sessionID string, query FilterQuery, w io.Writer) error
}
