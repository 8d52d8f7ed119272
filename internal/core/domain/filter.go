package domain

import "time"

// DateRange is an inclusive calendar-day interval over CreatedTime. Both
// bounds are dates (UTC midnight); any time-of-day on the end date still
// falls inside the range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether a timestamp's calendar date falls inside the range.
func (r DateRange) Contains(ts time.Time) bool {
	date := DateOf(ts)
	return !date.Before(r.Start) && !date.After(r.End)
}

// NormalizeDateRange turns a raw date selection into a concrete inclusive
// interval:
//
//   - both bounds given: used directly, swapped if inverted
//   - one bound given: a single-day interval
//   - neither given: nil — no date predicate. The dataset's full span would
//     match every dated row anyway, and rows without a parsable CreatedTime
//     must stay in the unfiltered view.
//   - CreatedTime absent (or never parsable): nil, and the date predicate
//     is skipped entirely
func NormalizeDateRange(from, to *time.Time, dataset *Dataset) *DateRange {
	if from == nil && to == nil {
		return nil
	}
	if _, _, ok := dataset.CreatedBounds(); !ok {
		return nil
	}
	switch {
	case from != nil && to != nil:
		start, end := DateOf(*from), DateOf(*to)
		if start.After(end) {
			start, end = end, start
		}
		return &DateRange{Start: start, End: end}
	case from != nil:
		day := DateOf(*from)
		return &DateRange{Start: day, End: day}
	default:
		day := DateOf(*to)
		return &DateRange{Start: day, End: day}
	}
}

// FilterCriteria is the per-interaction predicate set. An empty selection
// means no filter on that field. All predicates compose by logical AND.
type FilterCriteria struct {
	Priorities         []string
	TicketTypes        []string
	ResolutionStatuses []string
	Created            *DateRange
}

// FilteredView is the subsequence of a Dataset satisfying some criteria.
// It is derived on demand, owned by the current interaction, and never
// mutated back into the dataset.
type FilteredView struct {
	Columns []string
	Tickets []*Ticket
}

// Len returns the number of rows in the view.
func (v *FilteredView) Len() int {
	return len(v.Tickets)
}

// HasColumn reports whether the underlying workbook carried the column.
func (v *FilteredView) HasColumn(name string) bool {
	for _, column := range v.Columns {
		if column == name {
			return true
		}
	}
	return false
}

// Apply evaluates the criteria against every row and returns the matching
// view. Pure: neither input is modified, and the same inputs always produce
// the same view.
//
// A selection on a column the dataset does not have is a no-op. A row with
// a missing value for a column that has an active selection is excluded.
func (c FilterCriteria) Apply(dataset *Dataset) *FilteredView {
	view := &FilteredView{
		Columns: dataset.Columns,
		Tickets: make([]*Ticket, 0, dataset.Len()),
	}
	for _, ticket := range dataset.Tickets {
		if !c.matches(ticket, dataset) {
			continue
		}
		view.Tickets = append(view.Tickets, ticket)
	}
	return view
}

func (c FilterCriteria) matches(ticket *Ticket, dataset *Dataset) bool {
	if !matchSelection(ticket, dataset, FieldPriority, c.Priorities) {
		return false
	}
	if !matchSelection(ticket, dataset, FieldTicketType, c.TicketTypes) {
		return false
	}
	if !matchSelection(ticket, dataset, FieldResolutionStatus, c.ResolutionStatuses) {
		return false
	}
	if c.Created != nil && dataset.HasColumn(FieldCreatedTime) {
		if ticket.Created == nil {
			return false
		}
		if !c.Created.Contains(*ticket.Created) {
			return false
		}
	}
	return true
}

func matchSelection(ticket *Ticket, dataset *Dataset, field string, selection []string) bool {
	if len(selection) == 0 || !dataset.HasColumn(field) {
		return true
	}
	value, ok := ticket.Field(field)
	if !ok {
		return false
	}
	for _, candidate := range selection {
		if candidate == value {
			return true
		}
	}
	return false
}
