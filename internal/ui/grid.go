package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/thwip/internal/binding"
	"github.com/five82/thwip/internal/cards"
)

// screen returns what the active page wants drawn.
func (m Model) screen() binding.Screen {
	if m.page == nil {
		return binding.Screen{Kind: binding.ScreenPlaceholder, Message: binding.LoadingMessage}
	}
	return m.page.Screen()
}

func (m Model) selectedCard() (cards.Card, bool) {
	s := m.screen()
	if s.Kind != binding.ScreenGrid || m.selected < 0 || m.selected >= len(s.Cards) {
		return cards.Card{}, false
	}
	return s.Cards[m.selected], true
}

// syncSelection moves the cursor to the card it was on before a reload,
// matched by key, or clamps it when that card is gone.
func (m *Model) syncSelection() {
	s := m.screen()
	if s.Kind != binding.ScreenGrid {
		return
	}
	if m.selectedKey != "" {
		for i, c := range s.Cards {
			if c.Key == m.selectedKey {
				m.selected = i
				return
			}
		}
	}
	m.selected = min(max(m.selected, 0), len(s.Cards)-1)
	m.selectedKey = s.Cards[m.selected].Key
}

func (m *Model) handleGridKey(msg tea.KeyMsg) {
	s := m.screen()
	if s.Kind != binding.ScreenGrid || len(s.Cards) == 0 {
		return
	}
	cols := gridColumns(m.width)
	last := len(s.Cards) - 1
	pageCards := max(1, m.grid.Height/cardHeight) * cols

	next := m.selected
	switch {
	case key.Matches(msg, m.keys.Left):
		next--
	case key.Matches(msg, m.keys.Right):
		next++
	case key.Matches(msg, m.keys.Up):
		next -= cols
	case key.Matches(msg, m.keys.Down):
		next += cols
	case key.Matches(msg, m.keys.Top):
		next = 0
	case key.Matches(msg, m.keys.Bottom):
		next = last
	case key.Matches(msg, m.keys.PageUp):
		next -= pageCards
	case key.Matches(msg, m.keys.PageDown):
		next += pageCards
	default:
		return
	}
	m.selected = min(max(next, 0), last)
	m.selectedKey = s.Cards[m.selected].Key
	m.refreshGrid()
}

// refreshGrid re-renders the grid into the viewport and keeps the selected
// card's row visible.
func (m *Model) refreshGrid() {
	if !m.ready {
		return
	}
	m.grid.SetContent(m.renderScreen())

	s := m.screen()
	if s.Kind != binding.ScreenGrid {
		m.grid.GotoTop()
		return
	}
	row := m.selected / gridColumns(m.width)
	top := row * cardHeight
	bottom := top + cardHeight
	switch {
	case top < m.grid.YOffset:
		m.grid.SetYOffset(top)
	case bottom > m.grid.YOffset+m.grid.Height:
		m.grid.SetYOffset(bottom - m.grid.Height)
	}
}

func (m Model) renderScreen() string {
	styles := m.theme.Styles()
	s := m.screen()

	switch s.Kind {
	case binding.ScreenGrid:
		return m.renderGrid(s.Cards, styles)
	case binding.ScreenEmpty:
		return m.centered(styles.MutedText.Render(s.Message))
	case binding.ScreenError:
		lines := styles.DangerText.Render(s.Message) + "\n" +
			styles.FaintText.Render("Press r to try again.")
		return m.centered(lines)
	default:
		return m.centered(m.spinner.View() + " " + styles.MutedText.Render(s.Message))
	}
}

func (m Model) centered(content string) string {
	return lipgloss.Place(m.width, max(1, m.grid.Height), lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderGrid(items []cards.Card, styles Styles) string {
	cols := gridColumns(m.width)
	gap := strings.Repeat(" ", CardGap)

	rows := make([]string, 0, len(items)/cols+1)
	for start := 0; start < len(items); start += cols {
		end := min(start+cols, len(items))
		boxes := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				boxes = append(boxes, gap)
			}
			boxes = append(boxes, renderCard(items[i], i == m.selected, styles))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard draws one card box: title, cover, metric and action.
func renderCard(c cards.Card, focused bool, styles Styles) string {
	inner := CardWidth - 4 // border and padding

	title := styles.Text.Bold(true).Render(truncate(c.Title, inner))
	cover := styles.FaintText.Render(truncate(coverLabel(c.ImageURL), inner))
	metric := styles.MutedText.Render(truncate(c.Metric, inner))

	actionStyle := styles.FaintText
	if c.Action.Resolved {
		actionStyle = styles.AccentText
	}
	action := actionStyle.Render(truncate("["+c.Action.Label+"]", inner))

	box := styles.Card
	if focused {
		box = styles.CardFocus
		title = styles.Selected.Bold(true).Render(truncate(c.Title, inner))
	}
	return box.
		Width(CardWidth - 2).
		Height(CardBodyLines).
		Render(strings.Join([]string{title, cover, metric, action}, "\n"))
}
