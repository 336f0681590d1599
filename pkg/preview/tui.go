// Package preview provides the interactive recipe-of-the-day viewer using Bubble Tea TUI.
package preview

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/recipe-forge/internal/recipe"
	"github.com/lepinkainen/recipe-forge/pkg/render"
)

// ViewMode represents the current view mode
type ViewMode int

// View modes for the viewer
const (
	CardViewMode ViewMode = iota
	JSONViewMode
)

// Refresher is the daily recipe source. *daily.Refresher satisfies it.
type Refresher interface {
	Open() recipe.Display
	Refresh(ctx context.Context) (recipe.Display, bool)
	SetForce(force bool)
}

// refreshedMsg carries the outcome of a background refresh
type refreshedMsg struct {
	display recipe.Display
	changed bool
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Model represents the Bubble Tea model for the viewer
type Model struct {
	ctx        context.Context
	refresher  Refresher
	renderer   *render.Renderer
	display    recipe.Display
	viewMode   ViewMode
	refreshing bool
	offset     int
	width      int
	height     int
}

// NewModel creates a viewer showing whatever is cached right now
func NewModel(ctx context.Context, refresher Refresher, renderer *render.Renderer) Model {
	return Model{
		ctx:        ctx,
		refresher:  refresher,
		renderer:   renderer,
		display:    refresher.Open(),
		viewMode:   CardViewMode,
		refreshing: true,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m Model) refreshCmd() tea.Cmd {
	ctx, refresher := m.ctx, m.refresher
	return func() tea.Msg {
		display, changed := refresher.Refresh(ctx)
		return refreshedMsg{display: display, changed: changed}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.offset = m.clampOffset(m.offset)
		return m, nil

	case refreshedMsg:
		m.refreshing = false
		if msg.changed {
			m.display = msg.display
			m.offset = 0
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

// updateKeys handles key presses
func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		m.offset = m.clampOffset(m.offset - 1)

	case "down", "j":
		m.offset = m.clampOffset(m.offset + 1)

	case "r":
		if m.refreshing {
			return m, nil
		}
		m.refreshing = true
		m.refresher.SetForce(true)
		return m, m.refreshCmd()

	case "x":
		if m.viewMode == CardViewMode {
			m.viewMode = JSONViewMode
		} else {
			m.viewMode = CardViewMode
		}
		m.offset = 0
	}

	return m, nil
}

func (m Model) lines() []string {
	return formatLines(m.renderer, m.display, m.viewMode, m.width)
}

// visibleLines is how many content lines fit between header and footer
func (m Model) visibleLines() int {
	if m.height <= 0 {
		return 0
	}
	return max(m.height-4, 1) // header, blank, blank, footer
}

func (m Model) clampOffset(offset int) int {
	maxOffset := len(m.lines()) - m.visibleLines()
	if m.visibleLines() == 0 || maxOffset < 0 {
		maxOffset = 0
	}
	return min(max(offset, 0), maxOffset)
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	header := "Recipe of the day"
	if m.refreshing {
		header += " (refreshing...)"
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	lines := m.lines()
	start, end := m.offset, len(lines)
	if n := m.visibleLines(); n > 0 && start+n < end {
		end = start + n
	}
	if start > end {
		start = end
	}
	b.WriteString(strings.Join(lines[start:end], "\n"))
	b.WriteString("\n\n")

	footer := "↑/↓ or j/k: scroll • r: refresh • x: toggle JSON view • q: quit"
	b.WriteString(footerStyle.Render(footer))

	return b.String()
}

// Display returns the recipe currently shown
func (m Model) Display() recipe.Display {
	return m.display
}

// Run starts the Bubble Tea program
func Run(ctx context.Context, refresher Refresher, renderer *render.Renderer) error {
	p := tea.NewProgram(NewModel(ctx, refresher, renderer), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
