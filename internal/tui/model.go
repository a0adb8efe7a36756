// Package tui is a terminal host for the project carousels. It drives the
// same carousel engine as the web server: key presses call the engine and
// tea.Tick plays the role of the auto-advance timer.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/folio/internal/carousel"
	"github.com/Zachkp/folio/internal/content"
)

var (
	colorBlue = lipgloss.Color("39")
	colorDim  = lipgloss.Color("240")
	colorErr  = lipgloss.Color("203")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	errStyle     = lipgloss.NewStyle().Foreground(colorErr)
	imageStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBlue).Padding(1, 2)
	overlayStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(colorBlue).Padding(2, 4).Bold(true)
	activeDot    = lipgloss.NewStyle().Foreground(colorBlue).Render("●")
	idleDot      = dimStyle.Render("○")
)

// tickMsg is one auto-advance period elapsing for mount generation gen.
type tickMsg struct{ gen int }

// Model browses projects one carousel at a time.
type Model struct {
	projects []content.Project
	opts     carousel.Options

	cursor int
	gen    int // bumped on every remount
	engine *carousel.Engine
	err    error
	width  int
}

// New builds a model over projects. opts applies to every carousel it mounts.
func New(projects []content.Project, opts carousel.Options) (Model, error) {
	if len(projects) == 0 {
		return Model{}, fmt.Errorf("no projects to browse")
	}
	m := Model{projects: projects, opts: opts}
	if err := m.remount(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// remount disposes the current carousel and mounts a fresh one at index 0
// for the project under the cursor.
func (m *Model) remount() error {
	if m.engine != nil {
		m.engine.Dispose()
	}
	engine, err := carousel.New(m.projects[m.cursor].Images, m.opts)
	if err != nil {
		return fmt.Errorf("project %q: %w", m.projects[m.cursor].UID, err)
	}
	m.engine = engine
	m.gen++
	return nil
}

func (m Model) tick() tea.Cmd {
	if m.opts.AutoAdvance <= 0 {
		return nil
	}
	gen := m.gen
	return tea.Tick(m.opts.AutoAdvance, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// Ticks scheduled for an earlier mount die here.
		if msg.gen != m.gen || !m.engine.Tick() {
			return m, nil
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		m.err = nil
		key := msg.String()
		switch key {
		case "q", "ctrl+c":
			m.engine.Dispose()
			return m, tea.Quit
		case "esc":
			m.engine.CloseOverlay()
		case "enter", " ":
			if _, err := m.engine.OpenOverlay(); err != nil {
				m.err = err
			}
		case "right", "l":
			m.engine.Next()
		case "left", "h":
			m.engine.Previous()
		case "down", "j":
			return m.switchProject(1)
		case "up", "k":
			return m.switchProject(-1)
		default:
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				if _, err := m.engine.Goto(int(key[0] - '1')); err != nil {
					m.err = err
				}
			}
		}
	}
	return m, nil
}

func (m Model) switchProject(delta int) (tea.Model, tea.Cmd) {
	n := len(m.projects)
	m.cursor = (m.cursor + delta + n) % n
	if err := m.remount(); err != nil {
		m.err = err
		return m, nil
	}
	return m, m.tick()
}

func (m Model) View() string {
	p := m.projects[m.cursor]
	st := m.engine.State()

	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Title))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s · %d/%d", p.Year, m.cursor+1, len(m.projects))))
	b.WriteString("\n\n")

	if st.OverlayVisible {
		b.WriteString(overlayStyle.Render(st.Image))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("esc close preview"))
		return b.String()
	}

	b.WriteString(imageStyle.Render(st.Image))
	b.WriteString("\n")
	b.WriteString(dots(st))
	b.WriteString("\n\n")

	if p.Description != "" {
		desc := p.Description
		if m.width > 0 {
			desc = lipgloss.NewStyle().Width(m.width - 2).Render(desc)
		}
		b.WriteString(desc)
		b.WriteString("\n\n")
	}
	if len(p.TechStack) > 0 {
		names := make([]string, len(p.TechStack))
		for i, t := range p.TechStack {
			names[i] = t.Name
		}
		b.WriteString(dimStyle.Render("Built with: " + strings.Join(names, ", ")))
		b.WriteString("\n\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	help := "←/→ image  ↑/↓ project  1-9 jump  q quit"
	if st.Preview {
		help = "←/→ image  ↑/↓ project  1-9 jump  ⏎ preview  q quit"
	}
	b.WriteString(dimStyle.Render(help))
	return b.String()
}

func dots(st carousel.State) string {
	parts := make([]string, st.Len)
	for i := range parts {
		parts[i] = idleDot
		if i == st.Index {
			parts[i] = activeDot
		}
	}
	return strings.Join(parts, " ")
}

// State exposes the current carousel snapshot.
func (m Model) State() carousel.State { return m.engine.State() }

// Project returns the project under the cursor.
func (m Model) Project() content.Project { return m.projects[m.cursor] }
