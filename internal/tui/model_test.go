package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/carousel"
	"github.com/Zachkp/folio/internal/content"
)

func projects() []content.Project {
	return []content.Project{
		{UID: "one", Title: "One", Kind: content.KindPersonal, Images: []string{"a", "b", "c"}},
		{UID: "two", Title: "Two", Kind: content.KindPersonal, Images: []string{"x", "y"}},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestNewRejectsNoProjects(t *testing.T) {
	_, err := New(nil, carousel.Options{})
	require.Error(t, err)
}

func TestNewRejectsImagelessProject(t *testing.T) {
	_, err := New([]content.Project{{UID: "empty"}}, carousel.Options{})
	require.True(t, carousel.IsCode(err, carousel.ErrCodeEmptySequence))
}

func TestKeyNavigation(t *testing.T) {
	m, err := New(projects(), carousel.Options{})
	require.NoError(t, err)

	m = send(t, m, key("right"), key("right"))
	require.Equal(t, 2, m.State().Index)

	m = send(t, m, key("l"))
	require.Equal(t, 0, m.State().Index)

	m = send(t, m, key("left"))
	require.Equal(t, "c", m.State().Image)

	m = send(t, m, key("2"))
	require.Equal(t, 1, m.State().Index)

	m = send(t, m, key("9"))
	require.Equal(t, 1, m.State().Index)
	require.Contains(t, m.View(), "INVALID_INDEX")
}

func TestSwitchProjectRemountsAtZero(t *testing.T) {
	m, err := New(projects(), carousel.Options{})
	require.NoError(t, err)

	m = send(t, m, key("right"))
	require.Equal(t, 1, m.State().Index)

	m = send(t, m, key("down"))
	require.Equal(t, "two", m.Project().UID)
	require.Equal(t, 0, m.State().Index)
	require.Equal(t, "x", m.State().Image)

	m = send(t, m, key("k"))
	require.Equal(t, "one", m.Project().UID)
	require.Equal(t, 0, m.State().Index)
}

func TestOverlay(t *testing.T) {
	m, err := New(projects(), carousel.Options{Preview: true})
	require.NoError(t, err)

	m = send(t, m, key("right"), key("enter"))
	require.True(t, m.State().OverlayVisible)
	require.Contains(t, m.View(), "esc close preview")

	m = send(t, m, key("esc"))
	require.False(t, m.State().OverlayVisible)
	require.Equal(t, 1, m.State().Index)
}

func TestOverlayDisabled(t *testing.T) {
	m, err := New(projects(), carousel.Options{})
	require.NoError(t, err)

	m = send(t, m, key("enter"))
	require.False(t, m.State().OverlayVisible)
	require.Contains(t, m.View(), "PREVIEW_DISABLED")
}

func TestTicks(t *testing.T) {
	m, err := New(projects(), carousel.Options{AutoAdvance: 3 * time.Second})
	require.NoError(t, err)
	require.NotNil(t, m.Init())

	gen := m.gen
	next, cmd := m.Update(tickMsg{gen: gen})
	m = next.(Model)
	require.NotNil(t, cmd)
	require.Equal(t, 1, m.State().Index)

	// A tick from before the remount is ignored.
	m = send(t, m, key("down"))
	next, cmd = m.Update(tickMsg{gen: gen})
	m = next.(Model)
	require.Nil(t, cmd)
	require.Equal(t, 0, m.State().Index)
}

func TestNoTicksWhenDisabled(t *testing.T) {
	m, err := New(projects(), carousel.Options{})
	require.NoError(t, err)
	require.Nil(t, m.Init())
}

func TestQuitDisposes(t *testing.T) {
	m, err := New(projects(), carousel.Options{AutoAdvance: time.Second})
	require.NoError(t, err)
	engine := m.engine

	next, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	require.True(t, engine.Disposed())

	// A tick that was already in flight does nothing.
	m = next.(Model)
	next, cmd = m.Update(tickMsg{gen: m.gen})
	require.Nil(t, cmd)
	require.Equal(t, 0, next.(Model).State().Index)
}
