// Package tui is the terminal front end. It drives the same
// SearchController as the web pages and renders its state with lipgloss.
package tui

import (
	"context"
	"strings"
	"time"

	"cinematch/models"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rohanthewiz/logger"
)

type focusArea int

const (
	focusSearch focusArea = iota
	focusCards
)

// entry is one selectable dropdown row.
type entry struct {
	itemType string
	value    string
}

// lookupDoneMsg carries the outcome of a backend lookup run as a tea.Cmd.
type lookupDoneMsg struct {
	out models.Outcome
}

// Model is the bubbletea model of the terminal client.
type Model struct {
	ctx     context.Context
	sc      *models.SearchController
	timeout time.Duration

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	focus      focusArea
	cursor     int // highlighted dropdown entry, -1 for none
	cardCursor int
	pending    int
	width      int
}

// New returns a model over sc. Each lookup is bounded by timeout.
func New(ctx context.Context, sc *models.SearchController, timeout time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = models.DefaultPlaceholder
	ti.CharLimit = 200
	ti.Width = 48
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	sc.Focus()

	return Model{
		ctx:     ctx,
		sc:      sc,
		timeout: timeout,
		input:   ti,
		spinner: sp,
		help:    help.New(),
		keys:    defaultKeyMap(),
		cursor:  -1,
		width:   80,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		if w := msg.Width - 8; w > 10 {
			m.input.Width = w
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case lookupDoneMsg:
		m.pending--
		if msg.out.Stale {
			return m, nil
		}
		st := m.sc.State()
		m.input.SetValue(st.Input)
		m.input.CursorEnd()
		m.input.Placeholder = st.Placeholder
		if msg.out.Scroll {
			m.cardCursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Dismiss):
		st := m.sc.State()
		if st.Alert != "" {
			m.sc.DismissAlert()
		} else {
			m.sc.Dismiss()
			m.cursor = -1
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if m.focus == focusSearch && len(m.sc.State().Results.Cards) > 0 {
			m.focus = focusCards
			m.input.Blur()
			m.sc.Dismiss()
			m.cursor = -1
			return m, nil
		}
		m.focus = focusSearch
		m.sc.Focus()
		return m, m.input.Focus()
	}

	if m.focus == focusCards {
		return m.handleCardKey(msg)
	}
	return m.handleSearchKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.sc.State()

	switch {
	case key.Matches(msg, m.keys.Down):
		if !st.Dropdown.Visible {
			m.sc.Focus()
			m.cursor = -1
			return m, nil
		}
		if m.cursor < len(m.entries(st))-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor >= 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		entries := m.entries(st)
		if st.Dropdown.Visible && m.cursor >= 0 && m.cursor < len(entries) {
			e := entries[m.cursor]
			m.cursor = -1
			if e.itemType == models.ItemTypeMovie {
				m.input.SetValue(e.value)
				m.input.CursorEnd()
			}
			return m.lookup(func(ctx context.Context) models.Outcome {
				return m.sc.ClickDropdownItem(ctx, e.itemType, e.value)
			})
		}
		if strings.TrimSpace(m.input.Value()) == "" {
			return m, nil
		}
		return m.lookup(m.sc.KeyEnter)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.sc.Input(m.input.Value())
		m.cursor = -1
	}
	return m, cmd
}

func (m Model) handleCardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cards := m.sc.State().Results.Cards

	switch {
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		if m.cardCursor > 0 {
			m.cardCursor--
		}
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		if m.cardCursor < len(cards)-1 {
			m.cardCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if m.cardCursor < 0 || m.cardCursor >= len(cards) || !cards[m.cardCursor].Clickable {
			return m, nil
		}
		title := cards[m.cardCursor].Title
		m.input.SetValue(title)
		m.focus = focusSearch
		focusCmd := m.input.Focus()
		next, lookupCmd := m.lookup(func(ctx context.Context) models.Outcome {
			return m.sc.ClickCard(ctx, title)
		})
		return next, tea.Batch(focusCmd, lookupCmd)
	}
	return m, nil
}

// lookup runs fn off the update loop. The controller discards outcomes
// superseded by a later lookup.
func (m Model) lookup(fn func(context.Context) models.Outcome) (tea.Model, tea.Cmd) {
	m.pending++
	parent, timeout := m.ctx, m.timeout
	run := func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		out := fn(ctx)
		if out.Alert != "" {
			logger.Info("Lookup finished with alert", "alert", out.Alert)
		}
		return lookupDoneMsg{out: out}
	}
	return m, tea.Batch(run, m.spinner.Tick)
}

// entries lists the selectable dropdown rows: matches, then genres.
func (m Model) entries(st models.ViewState) []entry {
	genres := m.sc.Catalog().Genres()
	out := make([]entry, 0, len(st.Dropdown.Matches)+len(genres))
	for _, title := range st.Dropdown.Matches {
		out = append(out, entry{itemType: models.ItemTypeMovie, value: title})
	}
	for _, g := range genres {
		out = append(out, entry{itemType: models.ItemTypeGenre, value: g})
	}
	return out
}
