package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSummaryQueryDefaults(t *testing.T) {
	query, args := buildSummaryQuery("alice", SummaryFilter{})

	assert.Contains(t, query, "WHERE creator=$1")
	assert.Contains(t, query, "ORDER BY updated_at DESC")
	assert.NotContains(t, query, "LIKE")
	assert.NotContains(t, query, "status IN")
	assert.Equal(t, []any{"alice"}, args)
}

func TestBuildSummaryQuerySearch(t *testing.T) {
	query, args := buildSummaryQuery("alice", SummaryFilter{Search: "  RepOrt "})

	assert.Contains(t, query, "(LOWER(title) LIKE $2 OR LOWER(from_value) LIKE $2)")
	require.Len(t, args, 2)
	assert.Equal(t, "%report%", args[1], "search terms are trimmed and lowercased")
}

func TestBuildSummaryQueryCategories(t *testing.T) {
	query, args := buildSummaryQuery("alice", SummaryFilter{Categories: []string{"work", "urgent"}})

	assert.Contains(t, query, "categories && $2")
	require.Len(t, args, 2)
	assert.Equal(t, []string{"work", "urgent"}, args[1])
}

func TestBuildSummaryQueryStatuses(t *testing.T) {
	query, args := buildSummaryQuery("alice", SummaryFilter{Statuses: []string{"open", "done"}})

	assert.Contains(t, query, "status IN ($2,$3)")
	assert.Equal(t, []any{"alice", "open", "done"}, args)
}

func TestBuildSummaryQueryRanges(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	query, args := buildSummaryQuery("alice", SummaryFilter{
		CreatedFrom:  &from,
		CreatedTo:    &to,
		DeadlineFrom: &from,
	})

	assert.Contains(t, query, "created_at >= $2")
	assert.Contains(t, query, "created_at <= $3")
	assert.Contains(t, query, "deadline >= $4")
	assert.Equal(t, []any{"alice", from, to, from}, args)
}

func TestBuildSummaryQuerySortOrders(t *testing.T) {
	cases := map[string]string{
		SortByDeadline:  "ORDER BY deadline ASC NULLS LAST",
		SortByPriority:  "ORDER BY priority ASC",
		SortByFrom:      "ORDER BY from_value ASC",
		SortByUpdatedAt: "ORDER BY updated_at DESC",
		"bogus":         "ORDER BY updated_at DESC",
	}
	for sortBy, want := range cases {
		query, _ := buildSummaryQuery("alice", SummaryFilter{SortBy: sortBy})
		assert.Contains(t, query, want, "sortBy=%s", sortBy)
	}
}

func TestBuildSummaryQueryCombined(t *testing.T) {
	updatedFrom := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	query, args := buildSummaryQuery("alice", SummaryFilter{
		Search:      "plan",
		Categories:  []string{"work"},
		Statuses:    []string{"open"},
		UpdatedFrom: &updatedFrom,
		SortBy:      SortByPriority,
	})

	// Placeholder numbering must follow the args slice exactly.
	assert.Contains(t, query, "LIKE $2")
	assert.Contains(t, query, "categories && $3")
	assert.Contains(t, query, "status IN ($4)")
	assert.Contains(t, query, "updated_at >= $5")
	assert.Equal(t, []any{"alice", "%plan%", []string{"work"}, "open", updatedFrom}, args)
}
