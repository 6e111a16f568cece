// Package tui is the interactive Bubble Tea front end over a store.Store.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/ui"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// rows taken by the outer panel and the inline add box
	panelChrome = 2
	addChrome   = 5
)

// Model is the Bubble Tea model. Mutations go to the store by item ID and
// the list is rebuilt from the store view afterwards.
type Model struct {
	store *store.Store
	log   *log.Logger
	keys  keyMap

	list  list.Model
	input textinput.Model
	help  help.Model

	adding bool   // inline add is active
	notice string // last validation or store error, shown until the next action

	width, height int
}

// New builds a model over s. A nil logger discards output.
func New(s *store.Store, keys config.KeyMappings, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	km := newKeyMap(keys)
	t := ui.Current()

	l := list.New(nil, itemDelegate{}, defaultWidth, defaultHeight)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = t.Title
	l.Styles.HelpStyle = t.Muted
	l.Styles.PaginationStyle = t.Muted
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = km.listKeys
	l.AdditionalFullHelpKeys = km.listKeys

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Add new..."
	ti.CharLimit = 200

	m := Model{
		store:  s,
		log:    logger,
		keys:   km,
		list:   l,
		input:  ti,
		help:   help.New(),
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.resize()
	m.refresh("")
	return m
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.adding {
			return m.updateAdding(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Add):
			m.adding = true
			m.notice = ""
			m.input.SetValue(m.store.Input())
			m.input.CursorEnd()
			m.resize()
			cmd := m.input.Focus()
			return m, cmd
		case key.Matches(msg, m.keys.Toggle):
			m.toggleSelected()
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil
		case key.Matches(msg, m.keys.Filter):
			m.store.SetFilter(m.store.Filter().Next())
			m.log.Debug("filter changed", "filter", m.store.Filter().String())
			m.notice = ""
			m.refresh("")
			return m, nil
		case key.Matches(msg, m.keys.Sort):
			m.store.SetSort(m.store.Sort().Next())
			m.log.Debug("sort changed", "sort", m.store.Sort().String())
			m.notice = ""
			m.refresh("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.adding {
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		it, ok := m.store.Submit()
		if !ok {
			m.notice = "Title cannot be empty"
			return m, nil
		}
		m.log.Debug("added", "id", it.ID)
		m.stopAdding()
		m.refresh(it.ID)
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.store.SetInput("")
		m.stopAdding()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.store.SetInput(m.input.Value())
	return m, cmd
}

func (m *Model) stopAdding() {
	m.adding = false
	m.notice = ""
	m.input.SetValue("")
	m.input.Blur()
	m.resize()
}

func (m *Model) selectedID() (string, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return "", false
	}
	return li.item.ID, true
}

func (m *Model) toggleSelected() {
	id, ok := m.selectedID()
	if !ok {
		return
	}
	it, err := m.store.ToggleByID(id)
	if err != nil {
		m.log.Warn("toggle failed", "id", id, "err", err)
		m.notice = err.Error()
		return
	}
	m.notice = ""
	m.refresh(it.ID)
}

func (m *Model) deleteSelected() {
	id, ok := m.selectedID()
	if !ok {
		return
	}
	if _, err := m.store.DeleteByID(id); err != nil {
		m.log.Warn("delete failed", "id", id, "err", err)
		m.notice = err.Error()
		return
	}
	m.notice = ""
	m.refresh("")
}

// refresh rebuilds the list from the store view, selecting selectID when it
// is visible and otherwise keeping the cursor in range.
func (m *Model) refresh(selectID string) {
	items := m.store.Items()
	li := make([]list.Item, len(items))
	sel := -1
	for i, it := range items {
		li[i] = listItem{item: it}
		if it.ID == selectID {
			sel = i
		}
	}

	idx := m.list.Index()
	m.list.SetItems(li)
	switch {
	case sel >= 0:
		m.list.Select(sel)
	case idx >= len(li) && len(li) > 0:
		m.list.Select(len(li) - 1)
	}
	m.list.Title = m.header()
}

func (m *Model) header() string {
	t := ui.Current()
	d, p := m.store.Counts()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d   %s",
		"Todos",
		t.SymDone, d,
		t.SymPending, p,
		"Total", m.store.Len(),
		fmt.Sprintf("[%s · %s]", m.store.Filter(), m.store.Sort()),
	)
}

func (m *Model) resize() {
	h := m.height - panelChrome
	if m.adding {
		h -= addChrome
	}
	if h < 1 {
		h = 1
	}
	w := m.width - 4
	if w < 10 {
		w = 10
	}
	m.list.SetSize(w, h)
	m.input.Width = w - 6
}

// View implements tea.Model.
func (m Model) View() string {
	t := ui.Current()
	content := m.list.View()

	switch {
	case m.adding:
		title := "Add new item"
		if m.notice != "" {
			title += ": " + t.Error.Render(m.notice)
		}
		bar := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderColor).
			Padding(0, 1)
		hints := m.help.ShortHelpView([]key.Binding{m.keys.Submit, m.keys.Cancel})
		content += "\n" + bar.Render(title+"\n"+m.input.View()+"\n"+hints)
	case m.notice != "":
		content += "\n" + t.Error.Render(m.notice)
	}
	return ui.PanelString([]string{content})
}
