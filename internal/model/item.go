package model

import "time"

// DateLayout renders creation dates as MM/DD/YYYY.
const DateLayout = "01/02/2006"

// Item is the domain model for a todo entry.
// Text and Created never change after creation; Completed flips on toggle.
type Item struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Created   time.Time  `json:"created"`

	// Seq is the insertion sequence assigned by the store.
	Seq uint64 `json:"-"`
}

// CreatedDate returns the creation date in DateLayout.
func (it Item) CreatedDate() string {
	return it.Created.Format(DateLayout)
}

// HasDueDate reports whether a due date is set.
func (it Item) HasDueDate() bool { return it.DueDate != nil }
