// Package store owns the in-memory todo collection and derives the
// filtered, sorted views shown to the user.
//
// The underlying sequence stays in insertion order; only views are
// reordered. Positional operations address the current view and are
// resolved to a stable item ID before anything is mutated.
package store

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/idilsaglam/todolist/internal/model"
)

var (
	// ErrInvalidPosition is returned for a view position outside [0, len(view)).
	ErrInvalidPosition = errors.New("invalid position")
	// ErrNotFound is returned when no item carries the given ID.
	ErrNotFound = errors.New("item not found")
)

// PositionError describes a rejected view position.
type PositionError struct {
	Index int // requested position
	Len   int // view length at the time of the request
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("%s %d: view has %d item(s)", ErrInvalidPosition, e.Index, e.Len)
}

// Unwrap lets errors.Is match ErrInvalidPosition.
func (e *PositionError) Unwrap() error { return ErrInvalidPosition }

// Store holds the collection, the active filter and sort, and the pending
// input buffer. It is not safe for concurrent use; see Shared.
type Store struct {
	items  []model.Item
	filter model.Filter
	sort   model.Sort
	input  string
	seq    uint64

	now   func() time.Time
	newID func() string
	log   *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the source of creation times.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs sets the ID generator.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithLogger sets the logger used to report rejected operations.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithModes sets the initial filter and sort.
func WithModes(f model.Filter, srt model.Sort) Option {
	return func(s *Store) {
		s.filter = f
		s.sort = srt
	}
}

// New returns an empty store showing all items, newest first.
func New(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: uuid.NewString,
		log:   log.New(io.Discard),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Add appends a new active item. Blank text is ignored and reported with
// ok=false; otherwise the input buffer is cleared.
func (s *Store) Add(text string) (it model.Item, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Item{}, false
	}
	s.seq++
	it = model.Item{
		ID:      s.newID(),
		Text:    text,
		Created: s.now(),
		Seq:     s.seq,
	}
	s.items = append(s.items, it)
	s.input = ""
	s.log.Debug("added", "id", it.ID, "text", it.Text)
	return it, true
}

// SetInput replaces the pending input buffer.
func (s *Store) SetInput(text string) { s.input = text }

// Input returns the pending input buffer.
func (s *Store) Input() string { return s.input }

// Submit adds the pending input buffer as a new item.
func (s *Store) Submit() (model.Item, bool) { return s.Add(s.input) }

// ToggleCompletion flips the completion flag of the item at view position pos.
func (s *Store) ToggleCompletion(pos int) (model.Item, error) {
	id, err := s.resolve(pos)
	if err != nil {
		return model.Item{}, err
	}
	return s.ToggleByID(id)
}

// Delete removes the item at view position pos.
func (s *Store) Delete(pos int) (model.Item, error) {
	id, err := s.resolve(pos)
	if err != nil {
		return model.Item{}, err
	}
	return s.DeleteByID(id)
}

// ToggleByID flips the completion flag of the item with the given ID.
func (s *Store) ToggleByID(id string) (model.Item, error) {
	i := s.index(id)
	if i < 0 {
		s.log.Warn("toggle rejected", "id", id, "err", ErrNotFound)
		return model.Item{}, fmt.Errorf("toggle %s: %w", id, ErrNotFound)
	}
	s.items[i].Completed = !s.items[i].Completed
	s.log.Debug("toggled", "id", id, "completed", s.items[i].Completed)
	return s.items[i], nil
}

// DeleteByID removes the item with the given ID.
func (s *Store) DeleteByID(id string) (model.Item, error) {
	i := s.index(id)
	if i < 0 {
		s.log.Warn("delete rejected", "id", id, "err", ErrNotFound)
		return model.Item{}, fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	it := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)
	s.log.Debug("deleted", "id", id)
	return it, nil
}

// SetFilter replaces the active filter.
func (s *Store) SetFilter(f model.Filter) { s.filter = f }

// Filter returns the active filter.
func (s *Store) Filter() model.Filter { return s.filter }

// SetSort replaces the active sort.
func (s *Store) SetSort(srt model.Sort) { s.sort = srt }

// Sort returns the active sort.
func (s *Store) Sort() model.Sort { return s.sort }

// View yields the collection sorted by the active sort and then filtered by
// the active filter. Each iteration recomputes from the current state.
func (s *Store) View() iter.Seq[model.Item] {
	return func(yield func(model.Item) bool) {
		sorted := slices.Clone(s.items)
		slices.SortStableFunc(sorted, s.sort.Compare)
		for _, it := range sorted {
			if !s.filter.Match(it) {
				continue
			}
			if !yield(it) {
				return
			}
		}
	}
}

// Items collects View into a slice.
func (s *Store) Items() []model.Item {
	return slices.Collect(s.View())
}

// Len returns the size of the whole collection, ignoring the filter.
func (s *Store) Len() int { return len(s.items) }

// Counts tallies completed and pending items over the whole collection.
func (s *Store) Counts() (done, pending int) {
	for _, it := range s.items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// resolve maps a view position to an item ID.
func (s *Store) resolve(pos int) (string, error) {
	n := 0
	for it := range s.View() {
		if n == pos {
			return it.ID, nil
		}
		n++
	}
	err := &PositionError{Index: pos, Len: n}
	s.log.Warn("position rejected", "pos", pos, "view_len", n,
		"filter", s.filter.String(), "sort", s.sort.String())
	return "", err
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.items, func(it model.Item) bool { return it.ID == id })
}
