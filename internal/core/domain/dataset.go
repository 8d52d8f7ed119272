package domain

import (
	"sort"
	"strings"
	"time"
)

// Recognized column names. Matching is case-sensitive and exact; any other
// column is carried through the pipeline untouched.
const (
	FieldPriority         = "Priority"
	FieldTicketType       = "TicketType"
	FieldResolutionStatus = "ResolutionStatus"
	FieldCreatedTime      = "CreatedTime"
	FieldClosedTime       = "ClosedTime"
)

// DateOnly is the wire format for calendar dates.
const DateOnly = "2006-01-02"

// timeLayouts are tried in order when parsing a timestamp cell. Workbook
// cells arrive as formatted text, so the list covers ISO forms plus the
// short numeric forms spreadsheet tools emit.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	DateOnly,
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"01-02-06 15:04",
}

// ParseTime parses a timestamp cell. An empty or unparsable value yields
// nil: timestamps degrade to missing, they never fail the pipeline.
func ParseTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			ts = ts.UTC()
			return &ts
		}
	}
	return nil
}

// Ticket is one row of an uploaded workbook: raw cell text keyed by column
// name, plus the parsed recognized timestamps. A cell that was blank in the
// sheet has no entry in Fields.
type Ticket struct {
	Fields  map[string]string
	Created *time.Time
	Closed  *time.Time
}

// NewTicket builds a ticket from a header row and the matching cell row.
// Rows shorter than the header simply leave the trailing fields missing.
func NewTicket(columns, cells []string) *Ticket {
	t := &Ticket{Fields: make(map[string]string, len(columns))}
	for i, column := range columns {
		if i >= len(cells) {
			break
		}
		value := strings.TrimSpace(cells[i])
		if value == "" {
			continue
		}
		t.Fields[column] = value
	}
	t.Created = ParseTime(t.Fields[FieldCreatedTime])
	t.Closed = ParseTime(t.Fields[FieldClosedTime])
	return t
}

// Field returns the raw cell value for a column, reporting absence
// explicitly instead of returning a zero value.
func (t *Ticket) Field(name string) (string, bool) {
	value, ok := t.Fields[name]
	return value, ok
}

// CreatedDate returns the calendar date of CreatedTime, if present.
func (t *Ticket) CreatedDate() (time.Time, bool) {
	if t.Created == nil {
		return time.Time{}, false
	}
	return DateOf(*t.Created), true
}

// ResolutionHours returns the open-to-close duration in hours. Only defined
// when both timestamps parsed.
func (t *Ticket) ResolutionHours() (float64, bool) {
	if t.Created == nil || t.Closed == nil {
		return 0, false
	}
	return t.Closed.Sub(*t.Created).Hours(), true
}

// DateOf truncates a timestamp to its calendar date in UTC.
func DateOf(ts time.Time) time.Time {
	ts = ts.UTC()
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}

// Dataset is the immutable result of decoding one workbook: an ordered row
// sequence with the column set discovered from the header row. It is created
// once per upload and never mutated afterwards.
type Dataset struct {
	Columns []string
	Tickets []*Ticket
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Tickets)
}

// HasColumn reports whether the workbook carried the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, column := range d.Columns {
		if column == name {
			return true
		}
	}
	return false
}

// DistinctValues returns the sorted distinct non-missing values of a column.
// An absent column yields an empty slice.
func (d *Dataset) DistinctValues(column string) []string {
	seen := make(map[string]struct{})
	for _, ticket := range d.Tickets {
		if value, ok := ticket.Field(column); ok {
			seen[value] = struct{}{}
		}
	}
	values := make([]string, 0, len(seen))
	for value := range seen {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

// CreatedBounds returns the earliest and latest calendar dates of
// CreatedTime over the whole dataset. ok is false when the column is absent
// or no row carries a parsable value.
func (d *Dataset) CreatedBounds() (min, max time.Time, ok bool) {
	for _, ticket := range d.Tickets {
		date, valid := ticket.CreatedDate()
		if !valid {
			continue
		}
		if !ok {
			min, max, ok = date, date, true
			continue
		}
		if date.Before(min) {
			min = date
		}
		if date.After(max) {
			max = date
		}
	}
	return min, max, ok
}
