package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
)

func newTestModel(t *testing.T) (Model, *store.Store) {
	t.Helper()
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	n := 0
	s := store.New(
		store.WithClock(func() time.Time {
			now = now.Add(time.Minute)
			return now
		}),
		store.WithIDs(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	m := New(s, config.DefaultKeyMappings(), nil)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, s
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok, "Update returned %T", next)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func addItem(t *testing.T, m Model, text string) Model {
	t.Helper()
	return send(t, m, runes("a"), runes(text), enter)
}

func TestAddThroughInput(t *testing.T) {
	m, s := newTestModel(t)

	m = send(t, m, runes("a"))
	require.True(t, m.adding)

	m = send(t, m, runes("Buy milk"))
	assert.Equal(t, "Buy milk", s.Input(), "store tracks the pending input")

	m = send(t, m, enter)
	assert.False(t, m.adding)
	assert.Empty(t, s.Input())
	require.Len(t, m.list.Items(), 1)
	assert.Equal(t, "Buy milk", m.list.Items()[0].(listItem).item.Text)
}

func TestAddBlankKeepsEditing(t *testing.T) {
	m, s := newTestModel(t)

	m = send(t, m, runes("a"), runes("   "), enter)
	assert.True(t, m.adding)
	assert.Equal(t, "Title cannot be empty", m.notice)
	assert.Equal(t, 0, s.Len())
	assert.Contains(t, m.View(), "Title cannot be empty")

	m = send(t, m, esc)
	assert.False(t, m.adding)
	assert.Empty(t, s.Input())
}

func TestNewItemIsSelected(t *testing.T) {
	m, _ := newTestModel(t)
	m = addItem(t, m, "one")
	m = addItem(t, m, "two")

	// Newest first, and the cursor lands on the item just added.
	assert.Equal(t, 0, m.list.Index())
	id, ok := m.selectedID()
	require.True(t, ok)
	assert.Equal(t, "id-2", id)
}

func TestToggleAndDeleteBySelection(t *testing.T) {
	m, s := newTestModel(t)
	m = addItem(t, m, "one")
	m = addItem(t, m, "two")

	// View is [two, one]; move to "one" and toggle it.
	m = send(t, m, down, space)
	s.SetFilter(model.FilterCompleted)
	done := s.Items()
	require.Len(t, done, 1)
	assert.Equal(t, "one", done[0].Text)
	s.SetFilter(model.FilterAll)

	m = send(t, m, runes("d"))
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "two", s.Items()[0].Text)
	assert.Len(t, m.list.Items(), 1)
	assert.Equal(t, 0, m.list.Index(), "cursor clamped after delete")
}

func TestFilterKeyHidesCompleted(t *testing.T) {
	m, s := newTestModel(t)
	m = addItem(t, m, "one")
	m = addItem(t, m, "two")
	m = send(t, m, space) // completes "two"

	m = send(t, m, runes("f")) // Completed
	assert.Equal(t, model.FilterCompleted, s.Filter())
	assert.Len(t, m.list.Items(), 1)

	m = send(t, m, runes("f")) // Active
	assert.Equal(t, model.FilterActive, s.Filter())
	require.Len(t, m.list.Items(), 1)
	assert.Equal(t, "one", m.list.Items()[0].(listItem).item.Text)

	// Toggling under Active removes the item from the view.
	m = send(t, m, space)
	assert.Empty(t, m.list.Items())
	assert.Contains(t, m.list.Title, "Active")
}

func TestSortKeyCycles(t *testing.T) {
	m, s := newTestModel(t)
	m = send(t, m, runes("s"))
	assert.Equal(t, model.SortDueDate, s.Sort())
	assert.Contains(t, m.list.Title, "Due date")

	send(t, m, runes("s"))
	assert.Equal(t, model.SortAddedDate, s.Sort())
}

func TestKeysOnEmptyListAreNoops(t *testing.T) {
	m, s := newTestModel(t)
	m = send(t, m, space, runes("d"))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, m.notice)
}

func TestTypingDoesNotTriggerBindings(t *testing.T) {
	m, s := newTestModel(t)
	m = addItem(t, m, "dfsq")
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, model.FilterAll, s.Filter())
	assert.Equal(t, "dfsq", m.list.Items()[0].(listItem).item.Text)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok, "%s should quit", msg)
	}
}

func TestCustomKeys(t *testing.T) {
	s := store.New()
	keys := config.DefaultKeyMappings()
	keys.Quit = "x"
	m := New(s, keys, nil)

	_, cmd := m.Update(runes("x"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)

	_, cmd = m.Update(runes("q"))
	if cmd != nil {
		_, quit := cmd().(tea.QuitMsg)
		assert.False(t, quit, "default quit key is unbound")
	}
}

func TestViewHeader(t *testing.T) {
	m, _ := newTestModel(t)
	m = addItem(t, m, "one")
	m = addItem(t, m, "two")
	m = send(t, m, space)

	v := m.View()
	assert.Contains(t, v, "Total 2")
	assert.Contains(t, v, "All · Added date")
	assert.Contains(t, v, "03/01/2024")
	assert.True(t, strings.Contains(v, "one") && strings.Contains(v, "two"))
}
