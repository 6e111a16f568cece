package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) *time.Time {
	t := time.Date(2024, time.March, d, 9, 0, 0, 0, time.UTC)
	return &t
}

func TestItem_CreatedDate(t *testing.T) {
	it := Item{Created: time.Date(2024, time.February, 3, 23, 59, 0, 0, time.UTC)}
	assert.Equal(t, "02/03/2024", it.CreatedDate())
}

func TestFilter_Match(t *testing.T) {
	active := Item{Text: "a"}
	done := Item{Text: "b", Completed: true}
	due := Item{Text: "c", DueDate: day(1)}

	tests := []struct {
		filter Filter
		item   Item
		want   bool
	}{
		{FilterAll, active, true},
		{FilterAll, done, true},
		{FilterCompleted, done, true},
		{FilterCompleted, active, false},
		{FilterActive, active, true},
		{FilterActive, done, false},
		{FilterHasDueDate, due, true},
		{FilterHasDueDate, active, false},
	}
	for _, tt := range tests {
		if got := tt.filter.Match(tt.item); got != tt.want {
			t.Errorf("%s.Match(%q) = %v, want %v", tt.filter, tt.item.Text, got, tt.want)
		}
	}
}

func TestFilter_NextCyclesThroughAll(t *testing.T) {
	f := FilterAll
	seen := map[Filter]bool{}
	for range Filters {
		seen[f] = true
		f = f.Next()
	}
	assert.Equal(t, FilterAll, f)
	assert.Len(t, seen, len(Filters))
}

func TestParseFilter(t *testing.T) {
	tests := map[string]Filter{
		"All":          FilterAll,
		"completed":    FilterCompleted,
		"done":         FilterCompleted,
		" Active ":     FilterActive,
		"Has due date": FilterHasDueDate,
		"due":          FilterHasDueDate,
	}
	for in, want := range tests {
		got, err := ParseFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFilter("overdue")
	assert.Error(t, err)
}

func TestParseSort(t *testing.T) {
	got, err := ParseSort("Due date")
	require.NoError(t, err)
	assert.Equal(t, SortDueDate, got)

	got, err = ParseSort("created")
	require.NoError(t, err)
	assert.Equal(t, SortAddedDate, got)

	_, err = ParseSort("priority")
	assert.Error(t, err)
}

func TestSort_CompareAddedDate(t *testing.T) {
	t1 := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	older := Item{Created: t1, Seq: 1}
	newer := Item{Created: t1.Add(time.Minute), Seq: 2}

	assert.Negative(t, SortAddedDate.Compare(newer, older))
	assert.Positive(t, SortAddedDate.Compare(older, newer))

	// Same instant: later insertion wins.
	a := Item{Created: t1, Seq: 3}
	b := Item{Created: t1, Seq: 4}
	assert.Negative(t, SortAddedDate.Compare(b, a))
	assert.Zero(t, SortAddedDate.Compare(a, a))
}

func TestSort_CompareDueDate(t *testing.T) {
	early := Item{DueDate: day(1)}
	late := Item{DueDate: day(5)}
	none := Item{}

	assert.Negative(t, SortDueDate.Compare(early, late))
	assert.Positive(t, SortDueDate.Compare(late, early))
	// Missing due dates express no preference either way.
	assert.Zero(t, SortDueDate.Compare(none, early))
	assert.Zero(t, SortDueDate.Compare(late, none))
	assert.Zero(t, SortDueDate.Compare(none, none))
}
