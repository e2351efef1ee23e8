package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/thwip/internal/binding"
	"github.com/five82/thwip/internal/router"
)

// navigate activates path. A path on the current route only changes the
// page's parameter; any other route unmounts the page and mounts a new one.
// Navigating to the current path of a failed page mounts it again.
// record pushes the current path onto the back stack.
func (m *Model) navigate(path string, record bool) tea.Cmd {
	if m.router == nil {
		return nil
	}
	match, err := m.router.Resolve(path)
	if err != nil {
		if errors.Is(err, router.ErrNoRoute) {
			m.notice = fmt.Sprintf("No page at %s", path)
		} else {
			m.notice = err.Error()
		}
		m.logger.Debug("navigate rejected", "path", path, "error", err)
		return nil
	}

	m.notice = ""
	samePath := m.page != nil && match.Path == m.match.Path
	if samePath {
		if m.page.Phase() == binding.PhaseFailed {
			return m.remount()
		}
		return nil
	}
	if record && m.page != nil {
		m.pushHistory(m.match.Path)
	}

	var cmd tea.Cmd
	if m.page != nil && m.match.SameRoute(match) {
		cmd = m.page.SetParam(match.Param)
	} else {
		if m.page != nil {
			m.page.Unmount()
		}
		m.page, cmd = match.Mount()
	}
	m.match = match
	m.selected = 0
	m.selectedKey = ""
	m.grid.GotoTop()

	m.logger.Info("navigate", "path", match.Path, "route", match.Route.Pattern, "endpoint", m.page.Endpoint())
	m.prefs.LastPath = match.Path
	m.savePrefs()
	m.refreshGrid()
	return cmd
}

// remount discards the current page and mounts the route again. This is the
// only retry path after a failure.
func (m *Model) remount() tea.Cmd {
	if m.page == nil {
		return nil
	}
	m.page.Unmount()
	var cmd tea.Cmd
	m.page, cmd = m.match.Mount()
	m.notice = ""
	m.logger.Info("reload", "path", m.match.Path)
	m.refreshGrid()
	return cmd
}

func (m *Model) back() tea.Cmd {
	if len(m.history) == 0 {
		m.notice = "Nothing to go back to"
		return nil
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return m.navigate(prev, false)
}

func (m *Model) pushHistory(path string) {
	m.history = append(m.history, path)
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
}

// openSelected follows the selected card's action when it has a target.
func (m *Model) openSelected() tea.Cmd {
	card, ok := m.selectedCard()
	if !ok {
		return nil
	}
	if !card.Action.Resolved {
		m.notice = fmt.Sprintf("%s is not available yet", card.Action.Label)
		return nil
	}
	return m.navigate(card.Action.Target, true)
}
