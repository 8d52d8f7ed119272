package domain

import (
	"sort"
	"strings"
)

// GroupCount is one bucket of a grouped count.
type GroupCount struct {
	Key   string
	Count int
}

// Summary is the KPI bundle computed from a filtered view.
//
// AvgResolutionHours is nil ("unavailable") when no row carries both
// timestamps; WithinSLAPercent and the grouped counts are well-defined as
// zero/empty on an empty view.
type Summary struct {
	Total              int
	WithinSLAPercent   float64
	AvgResolutionHours *float64
	BugTickets         int
	P4Tickets          int
	ByPriority         []GroupCount
	ByTicketType       []GroupCount
	ByCreatedDate      []GroupCount
}

// withinSLA marks a ticket SLA-compliant when its resolution status
// contains "within", case-insensitively.
func withinSLA(ticket *Ticket) bool {
	status, ok := ticket.Field(FieldResolutionStatus)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(status), "within")
}

// Summarize computes the KPI bundle and grouped counts for a view. Pure and
// total: a missing column degrades the KPIs that need it, it never errors.
func Summarize(view *FilteredView) *Summary {
	summary := &Summary{
		Total:         view.Len(),
		ByPriority:    groupByField(view, FieldPriority),
		ByTicketType:  groupByField(view, FieldTicketType),
		ByCreatedDate: groupByCreatedDate(view),
	}

	if summary.Total > 0 && view.HasColumn(FieldResolutionStatus) {
		within := 0
		for _, ticket := range view.Tickets {
			if withinSLA(ticket) {
				within++
			}
		}
		summary.WithinSLAPercent = float64(within) / float64(summary.Total) * 100
	}

	if view.HasColumn(FieldCreatedTime) && view.HasColumn(FieldClosedTime) {
		var hours float64
		resolved := 0
		for _, ticket := range view.Tickets {
			if h, ok := ticket.ResolutionHours(); ok {
				hours += h
				resolved++
			}
		}
		if resolved > 0 {
			avg := hours / float64(resolved)
			summary.AvgResolutionHours = &avg
		}
	}

	for _, ticket := range view.Tickets {
		if value, ok := ticket.Field(FieldTicketType); ok && value == "Bug" {
			summary.BugTickets++
		}
		if value, ok := ticket.Field(FieldPriority); ok && value == "P4" {
			summary.P4Tickets++
		}
	}

	return summary
}

func groupByField(view *FilteredView, field string) []GroupCount {
	if !view.HasColumn(field) {
		return []GroupCount{}
	}
	counts := make(map[string]int)
	for _, ticket := range view.Tickets {
		if value, ok := ticket.Field(field); ok {
			counts[value]++
		}
	}
	return sortedCounts(counts)
}

func groupByCreatedDate(view *FilteredView) []GroupCount {
	if !view.HasColumn(FieldCreatedTime) {
		return []GroupCount{}
	}
	counts := make(map[string]int)
	for _, ticket := range view.Tickets {
		if date, ok := ticket.CreatedDate(); ok {
			counts[date.Format(DateOnly)]++
		}
	}
	return sortedCounts(counts)
}

// sortedCounts flattens a count map into buckets sorted by key, so chart
// series come out in a deterministic order.
func sortedCounts(counts map[string]int) []GroupCount {
	buckets := make([]GroupCount, 0, len(counts))
	for key, count := range counts {
		buckets = append(buckets, GroupCount{Key: key, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key < buckets[j].Key
	})
	return buckets
}
