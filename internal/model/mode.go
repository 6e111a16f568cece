package model

import (
	"fmt"
	"strings"
)

// Filter selects which items appear in a view.
type Filter int

const (
	FilterAll Filter = iota
	FilterCompleted
	FilterActive
	FilterHasDueDate
)

// Filters lists every filter mode in menu order.
var Filters = []Filter{FilterAll, FilterCompleted, FilterActive, FilterHasDueDate}

func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterCompleted:
		return "Completed"
	case FilterActive:
		return "Active"
	case FilterHasDueDate:
		return "Has due date"
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// Match reports whether it passes the filter.
func (f Filter) Match(it Item) bool {
	switch f {
	case FilterCompleted:
		return it.Completed
	case FilterActive:
		return !it.Completed
	case FilterHasDueDate:
		return it.HasDueDate()
	}
	return true
}

// Next returns the following mode, wrapping around.
func (f Filter) Next() Filter {
	return Filters[(int(f)+1)%len(Filters)]
}

// ParseFilter accepts a mode label ("Has due date") or a short name ("due").
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return FilterAll, nil
	case "completed", "done":
		return FilterCompleted, nil
	case "active", "pending":
		return FilterActive, nil
	case "has due date", "due", "has-due-date":
		return FilterHasDueDate, nil
	}
	return FilterAll, fmt.Errorf("unknown filter %q", s)
}

// Sort selects the ordering of a view.
type Sort int

const (
	SortAddedDate Sort = iota
	SortDueDate
)

// Sorts lists every sort mode in menu order.
var Sorts = []Sort{SortAddedDate, SortDueDate}

func (s Sort) String() string {
	switch s {
	case SortAddedDate:
		return "Added date"
	case SortDueDate:
		return "Due date"
	}
	return fmt.Sprintf("Sort(%d)", int(s))
}

// Next returns the following mode, wrapping around.
func (s Sort) Next() Sort {
	return Sorts[(int(s)+1)%len(Sorts)]
}

// Compare orders a before b when the result is negative.
//
// SortAddedDate puts the most recently created item first; equal instants
// fall back to insertion order, later first. SortDueDate is ascending by due
// date and returns 0 whenever either side has none, so such pairs keep
// whatever relative order the stable sort leaves them in.
func (s Sort) Compare(a, b Item) int {
	switch s {
	case SortDueDate:
		if a.DueDate == nil || b.DueDate == nil {
			return 0
		}
		return a.DueDate.Compare(*b.DueDate)
	default:
		if c := b.Created.Compare(a.Created); c != 0 {
			return c
		}
		switch {
		case a.Seq > b.Seq:
			return -1
		case a.Seq < b.Seq:
			return 1
		}
		return 0
	}
}

// ParseSort accepts a mode label ("Added date") or a short name ("due").
func ParseSort(s string) (Sort, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "added date", "added", "created", "":
		return SortAddedDate, nil
	case "due date", "due":
		return SortDueDate, nil
	}
	return SortAddedDate, fmt.Errorf("unknown sort %q", s)
}
