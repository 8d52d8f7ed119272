package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcpl/ticket-dashboard-backend/internal/core/domain"
)

func TestSummarize_SLA(t *testing.T) {
	columns := []string{"Priority", "ResolutionStatus"}
	dataset := buildDataset(columns,
		[]string{"P1", "Within SLA"},
		[]string{"P1", "Breached"},
		[]string{"P4", "Within SLA"},
	)

	t.Run("percentage over a filtered view", func(t *testing.T) {
		view := domain.FilterCriteria{Priorities: []string{"P1"}}.Apply(dataset)
		require.Equal(t, 2, view.Len())

		summary := domain.Summarize(view)
		assert.Equal(t, 2, summary.Total)
		assert.InDelta(t, 50.0, summary.WithinSLAPercent, 0.001)
	})

	t.Run("substring match is case-insensitive", func(t *testing.T) {
		mixed := buildDataset([]string{"ResolutionStatus"},
			[]string{"resolved WITHIN sla"},
			[]string{"Out of SLA"},
		)
		summary := domain.Summarize(domain.FilterCriteria{}.Apply(mixed))
		assert.InDelta(t, 50.0, summary.WithinSLAPercent, 0.001)
	})

	t.Run("empty view yields zero, not a division error", func(t *testing.T) {
		view := domain.FilterCriteria{Priorities: []string{"P9"}}.Apply(dataset)
		require.Equal(t, 0, view.Len())

		summary := domain.Summarize(view)
		assert.Equal(t, 0, summary.Total)
		assert.Zero(t, summary.WithinSLAPercent)
	})
}

func TestSummarize_AvgResolutionHours(t *testing.T) {
	columns := []string{"CreatedTime", "ClosedTime"}

	t.Run("mean over rows with both timestamps", func(t *testing.T) {
		dataset := buildDataset(columns,
			[]string{"2024-03-01 08:00:00", "2024-03-01 12:00:00"}, // 4h
			[]string{"2024-03-02 08:00:00", "2024-03-02 16:00:00"}, // 8h
		)
		summary := domain.Summarize(domain.FilterCriteria{}.Apply(dataset))
		require.NotNil(t, summary.AvgResolutionHours)
		assert.InDelta(t, 6.0, *summary.AvgResolutionHours, 0.001)
	})

	t.Run("row missing ClosedTime is excluded from the mean but counted in total", func(t *testing.T) {
		dataset := buildDataset(columns,
			[]string{"2024-03-01 08:00:00", "2024-03-01 12:00:00"},
			[]string{"2024-03-02 08:00:00", ""},
		)
		summary := domain.Summarize(domain.FilterCriteria{}.Apply(dataset))
		assert.Equal(t, 2, summary.Total)
		require.NotNil(t, summary.AvgResolutionHours)
		assert.InDelta(t, 4.0, *summary.AvgResolutionHours, 0.001)
	})

	t.Run("unavailable when the column is absent", func(t *testing.T) {
		dataset := buildDataset([]string{"CreatedTime"}, []string{"2024-03-01 08:00:00"})
		summary := domain.Summarize(domain.FilterCriteria{}.Apply(dataset))
		assert.Nil(t, summary.AvgResolutionHours)
	})

	t.Run("unavailable when no row has both timestamps", func(t *testing.T) {
		dataset := buildDataset(columns, []string{"2024-03-01 08:00:00", ""})
		summary := domain.Summarize(domain.FilterCriteria{}.Apply(dataset))
		assert.Nil(t, summary.AvgResolutionHours)
	})
}

func TestSummarize_GroupedCounts(t *testing.T) {
	t.Run("priority buckets sum to the view total", func(t *testing.T) {
		dataset := buildDataset([]string{"Priority"},
			[]string{"P1"}, []string{"P1"}, []string{"P2"}, []string{"P4"},
		)
		view := domain.FilterCriteria{}.Apply(dataset)
		summary := domain.Summarize(view)

		sum := 0
		for _, bucket := range summary.ByPriority {
			sum += bucket.Count
		}
		assert.Equal(t, summary.Total, sum)
		assert.Equal(t, []domain.GroupCount{
			{Key: "P1", Count: 2},
			{Key: "P2", Count: 1},
			{Key: "P4", Count: 1},
		}, summary.ByPriority)
	})

	t.Run("created-date buckets ignore time of day and sort ascending", func(t *testing.T) {
		dataset := buildDataset([]string{"CreatedTime"},
			[]string{"2024-03-02 23:00:00"},
			[]string{"2024-03-01 08:00:00"},
			[]string{"2024-03-02 01:00:00"},
			[]string{"not a date"},
		)
		summary := domain.Summarize(domain.FilterCriteria{}.Apply(dataset))
		assert.Equal(t, []domain.GroupCount{
			{Key: "2024-03-01", Count: 1},
			{Key: "2024-03-02", Count: 2},
		}, summary.ByCreatedDate)
	})

	t.Run("absent TicketType column degrades, never errors", func(t *testing.T) {
		dataset := buildDataset([]string{"Priority"}, []string{"P1"})
		summary := domain.Summarize(domain.FilterCriteria{}.Apply(dataset))
		assert.Empty(t, summary.ByTicketType)
		assert.Zero(t, summary.BugTickets)
	})
}

func TestSummarize_VariantKPIs(t *testing.T) {
	dataset := buildDataset([]string{"Priority", "TicketType"},
		[]string{"P4", "Bug"},
		[]string{"P1", "Bug"},
		[]string{"P4", "Request"},
	)
	summary := domain.Summarize(domain.FilterCriteria{}.Apply(dataset))
	assert.Equal(t, 2, summary.BugTickets)
	assert.Equal(t, 2, summary.P4Tickets)
}
