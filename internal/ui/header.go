package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/five82/thwip/internal/binding"
	"github.com/five82/thwip/internal/router"
)

const footerCredit = "Metadata provided by Comic Vine"

type navTab struct {
	label   string
	section router.Section
}

var navTabs = []navTab{
	{"Series", router.SectionSeries},
	{"Publishers", router.SectionPublishers},
}

// renderHeader renders the logo, section tabs, route title and load status.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("thwip", styles.Logo)}

	tabs := make([]string, 0, len(navTabs))
	for _, tab := range navTabs {
		if tab.section == m.match.Route.Section {
			tabs = append(tabs, styles.Selected.Bold(true).Render(" "+tab.label+" "))
			continue
		}
		tabs = append(tabs, bg.Render(" "+tab.label+" ", styles.MutedText))
	}
	parts = append(parts, strings.Join(tabs, bg.Space()))

	if m.match.Route.Title != "" {
		title := m.match.Route.Title
		if m.match.Param != "" && m.width >= LayoutCompactWidth {
			title += " " + truncate(m.match.Param, 24)
		}
		parts = append(parts, bg.Render(title, styles.Text.Bold(true)))
	}

	if status := m.statusLabel(styles, bg); status != "" {
		parts = append(parts, status)
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

func (m Model) statusLabel(styles Styles, bg BgStyle) string {
	s := m.screen()
	switch s.Kind {
	case binding.ScreenGrid:
		return bg.Render(fmt.Sprintf("%d cards", len(s.Cards)), styles.SuccessText)
	case binding.ScreenEmpty:
		return bg.Render("empty", styles.MutedText)
	case binding.ScreenError:
		label := "error"
		if s.Err != nil {
			label = s.Err.Kind.String() + " error"
		}
		return bg.Render(label, styles.DangerText)
	default:
		return bg.Render("loading", styles.WarningText)
	}
}

// renderCommandBar renders either the goto prompt or the key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.prompting {
		return styles.Header.Width(m.width).Render(m.prompt.View())
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, 8)
	for _, b := range m.keys.ShortHelp() {
		segments = append(segments, commandSegment(b, colon, styles, bg))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

func commandSegment(b key.Binding, colon string, styles Styles, bg BgStyle) string {
	h := b.Help()
	return bg.Render(h.Key, styles.AccentText) + colon + bg.Render(h.Desc, styles.MutedText)
}

// renderFooter shows a transient notice or the active endpoint, and the
// metadata credit.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var left string
	switch {
	case m.notice != "":
		left = bg.Render(truncate(m.notice, 60), styles.WarningText)
	case m.page != nil && m.page.Endpoint() != "":
		left = bg.Render("GET", styles.FaintText) + bg.Space() +
			bg.Render(truncate(m.page.Endpoint(), 60), styles.MutedText)
	}

	return styles.Footer.Width(m.width).Render(left + bg.Spaces(3) + bg.Render(footerCredit, styles.FaintText))
}
