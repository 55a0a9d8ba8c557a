package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/atelier/internal/cli/formatter"
	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type mapKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Reset  key.Binding
	Quit   key.Binding
}

func (k mapKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Reset, k.Quit}
}

func (k mapKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultMapKeys = mapKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys("f", " "), key.WithHelp("f", "toggle focal")),
	Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset to suggestion")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// mapLoadedMsg carries a fresh quadrant grouping.
type mapLoadedMsg struct {
	groups []service.QuadrantGroup
	err    error
}

// focalChangedMsg reports the outcome of a focal override.
type focalChangedMsg struct {
	problem *domain.Problem
	err     error
}

// problemMapModel browses a workshop's problems quadrant by quadrant and
// toggles focal areas in place.
type problemMapModel struct {
	problems service.ProblemService
	workshop *domain.Workshop
	keys     mapKeyMap
	help     help.Model

	groups  []service.QuadrantGroup
	rows    []*domain.Problem
	cursor  int
	loading bool
	status  string
	err     error
}

func newProblemMapModel(problems service.ProblemService, w *domain.Workshop) *problemMapModel {
	return &problemMapModel{
		problems: problems,
		workshop: w,
		keys:     defaultMapKeys,
		help:     help.New(),
		loading:  true,
	}
}

func (m *problemMapModel) Init() tea.Cmd {
	return m.load()
}

func (m *problemMapModel) load() tea.Cmd {
	problems, workshopID := m.problems, m.workshop.ID
	return func() tea.Msg {
		groups, err := problems.Map(context.Background(), workshopID)
		return mapLoadedMsg{groups: groups, err: err}
	}
}

func (m *problemMapModel) setFocal(p *domain.Problem, reset bool) tea.Cmd {
	problems := m.problems
	return func() tea.Msg {
		ctx := context.Background()
		var updated *domain.Problem
		var err error
		switch {
		case reset:
			updated, err = problems.ResetFocalArea(ctx, p.ID)
		case p.IsFocalArea:
			updated, err = problems.UnmarkFocalArea(ctx, p.ID)
		default:
			updated, err = problems.MarkFocalArea(ctx, p.ID)
		}
		return focalChangedMsg{problem: updated, err: err}
	}
}

func (m *problemMapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case mapLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.groups = msg.groups
		m.rows = m.rows[:0]
		for _, g := range msg.groups {
			m.rows = append(m.rows, g.Problems...)
		}
		if m.cursor >= len(m.rows) {
			m.cursor = max(len(m.rows)-1, 0)
		}
		return m, nil

	case focalChangedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("%s %s", formatter.Truncate(msg.problem.Description, 40), formatter.FocalMark(msg.problem))
		return m, m.load()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			if p := m.selected(); p != nil {
				return m, m.setFocal(p, false)
			}
		case key.Matches(msg, m.keys.Reset):
			if p := m.selected(); p != nil {
				return m, m.setFocal(p, true)
			}
		}
	}
	return m, nil
}

func (m *problemMapModel) selected() *domain.Problem {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor]
}

func (m *problemMapModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header(m.workshop.Title))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(formatter.Dim("Loading problems..."))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(formatter.ColorRed).Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case len(m.rows) == 0:
		b.WriteString(formatter.Dim("No problems recorded for this workshop."))
		b.WriteString("\n")
	default:
		idx := 0
		for _, g := range m.groups {
			b.WriteString(formatter.QuadrantStyle(g.Quadrant).Render(fmt.Sprintf("%s (%d)", g.Quadrant.Label(), len(g.Problems))))
			b.WriteString("\n")
			for _, p := range g.Problems {
				cursor := "  "
				if idx == m.cursor {
					cursor = "> "
				}
				fmt.Fprintf(&b, "%s%-2s %s %s\n", cursor, formatter.FocalMark(p),
					formatter.Truncate(p.Description, 60),
					formatter.Dim(fmt.Sprintf("A%d S%d", p.Acuity, p.StrategicImportance)))
				idx++
			}
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
