package http

import (
	"math"
	"time"

	"github.com/tcpl/ticket-dashboard-backend/internal/core/domain"
	"github.com/tcpl/ticket-dashboard-backend/internal/core/ports"
)

// DateRangeDTO is an inclusive calendar-day interval on the wire.
type DateRangeDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FilterOptionsDTO lists the selectable filter values for a UI sidebar.
type FilterOptionsDTO struct {
	Priorities         []string      `json:"priorities"`
	TicketTypes        []string      `json:"ticketTypes"`
	ResolutionStatuses []string      `json:"resolutionStatuses"`
	CreatedRange       *DateRangeDTO `json:"createdRange,omitempty"`
}

// SessionDTO defines the JSON response for sessions.
type SessionDTO struct {
	ID        string           `json:"id"`
	Filename  string           `json:"filename,omitempty"`
	RowCount  int              `json:"rowCount"`
	Columns   []string         `json:"columns"`
	CreatedAt string           `json:"createdAt"`
	Options   FilterOptionsDTO `json:"options"`
}

// FiltersDTO echoes the normalized criteria a dashboard response was
// computed with. CreatedRange is null when the date predicate was skipped.
type FiltersDTO struct {
	Priorities         []string      `json:"priorities"`
	TicketTypes        []string      `json:"ticketTypes"`
	ResolutionStatuses []string      `json:"resolutionStatuses"`
	CreatedRange       *DateRangeDTO `json:"createdRange"`
}

// KPIsDTO is the labeled-metric block of a dashboard response.
// AvgResolutionHours is null when unavailable, never zero.
type KPIsDTO struct {
	Total               int      `json:"total"`
	WithinSlaPercentage float64  `json:"withinSlaPercentage"`
	AvgResolutionHours  *float64 `json:"avgResolutionHours"`
	BugTickets          int      `json:"bugTickets"`
	P4Tickets           int      `json:"p4Tickets"`
}

// ChartPointDTO is one bucket of a chart series.
type ChartPointDTO struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// ChartsDTO carries the three chart series of the dashboard.
type ChartsDTO struct {
	ByPriority    []ChartPointDTO `json:"byPriority"`
	ByTicketType  []ChartPointDTO `json:"byTicketType"`
	ByCreatedDate []ChartPointDTO `json:"byCreatedDate"`
}

// DashboardDTO is the full dashboard response.
type DashboardDTO struct {
	Filters FiltersDTO       `json:"filters"`
	Kpis    KPIsDTO          `json:"kpis"`
	Charts  ChartsDTO        `json:"charts"`
	Options FilterOptionsDTO `json:"options"`
}

func toSessionDTO(session *domain.Session) SessionDTO {
	dataset := session.Dataset
	dto := SessionDTO{
		ID:        session.ID,
		Filename:  session.Filename,
		RowCount:  dataset.Len(),
		Columns:   dataset.Columns,
		CreatedAt: session.CreatedAt.Format(time.RFC3339),
		Options: FilterOptionsDTO{
			Priorities:         dataset.DistinctValues(domain.FieldPriority),
			TicketTypes:        dataset.DistinctValues(domain.FieldTicketType),
			ResolutionStatuses: dataset.DistinctValues(domain.FieldResolutionStatus),
		},
	}
	if min, max, ok := dataset.CreatedBounds(); ok {
		dto.Options.CreatedRange = &DateRangeDTO{
			Start: min.Format(domain.DateOnly),
			End:   max.Format(domain.DateOnly),
		}
	}
	return dto
}

func toDashboardDTO(result *ports.DashboardResult) DashboardDTO {
	summary := result.Summary
	return DashboardDTO{
		Filters: FiltersDTO{
			Priorities:         emptyIfNil(result.Criteria.Priorities),
			TicketTypes:        emptyIfNil(result.Criteria.TicketTypes),
			ResolutionStatuses: emptyIfNil(result.Criteria.ResolutionStatuses),
			CreatedRange:       toDateRangeDTO(result.Criteria.Created),
		},
		Kpis: KPIsDTO{
			Total:               summary.Total,
			WithinSlaPercentage: round(summary.WithinSLAPercent, 1),
			AvgResolutionHours:  roundPtr(summary.AvgResolutionHours, 2),
			BugTickets:          summary.BugTickets,
			P4Tickets:           summary.P4Tickets,
		},
		Charts: ChartsDTO{
			ByPriority:    toChartPoints(summary.ByPriority),
			ByTicketType:  toChartPoints(summary.ByTicketType),
			ByCreatedDate: toChartPoints(summary.ByCreatedDate),
		},
		Options: toFilterOptionsDTO(result.Options),
	}
}

func toFilterOptionsDTO(options ports.FilterOptions) FilterOptionsDTO {
	dto := FilterOptionsDTO{
		Priorities:         options.Priorities,
		TicketTypes:        options.TicketTypes,
		ResolutionStatuses: options.ResolutionStatuses,
	}
	if options.MinCreated != nil && options.MaxCreated != nil {
		dto.CreatedRange = &DateRangeDTO{
			Start: options.MinCreated.Format(domain.DateOnly),
			End:   options.MaxCreated.Format(domain.DateOnly),
		}
	}
	return dto
}

func toDateRangeDTO(r *domain.DateRange) *DateRangeDTO {
	if r == nil {
		return nil
	}
	return &DateRangeDTO{
		Start: r.Start.Format(domain.DateOnly),
		End:   r.End.Format(domain.DateOnly),
	}
}

func toChartPoints(buckets []domain.GroupCount) []ChartPointDTO {
	points := make([]ChartPointDTO, 0, len(buckets))
	for _, bucket := range buckets {
		points = append(points, ChartPointDTO{Key: bucket.Key, Count: bucket.Count})
	}
	return points
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func round(value float64, decimals int) float64 {
	factor := math.Pow10(decimals)
	return math.Round(value*factor) / factor
}

func roundPtr(value *float64, decimals int) *float64 {
	if value == nil {
		return nil
	}
	rounded := round(*value, decimals)
	return &rounded
}
