package web

import (
	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"github.com/five82/thwip/internal/binding"
	"github.com/five82/thwip/internal/cards"
	"github.com/five82/thwip/internal/router"
)

const (
	bulmaCSS    = "https://cdn.jsdelivr.net/npm/bulma@0.9.4/css/bulma.min.css"
	htmxScript  = "https://unpkg.com/htmx.org@1.9.12"
	footerNote  = "Metadata provided by Comic Vine"
	siteTitle   = "thwip"
	placeholder = "https://bulma.io/images/placeholders/256x256.png"
)

type navItem struct {
	Label   string
	Href    string
	Section router.Section
}

var navItems = []navItem{
	{Label: "Series", Href: "/series", Section: router.SectionSeries},
	{Label: "Publishers", Href: "/publisher", Section: router.SectionPublishers},
}

// layout wraps body in the shared shell. hx-boost turns every link into an
// in-place swap, so navigating never reloads the page.
func layout(title string, active router.Section, body ...gomponents.Node) gomponents.Node {
	nav := make([]gomponents.Node, 0, len(navItems))
	for _, item := range navItems {
		className := "navbar-item"
		if item.Section == active {
			className += " is-active"
		}
		nav = append(nav, html.A(html.Href(item.Href), html.Class(className), gomponents.Text(item.Label)))
	}

	return html.Doctype(html.HTML(
		html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.TitleEl(gomponents.Text(title+" | "+siteTitle)),
			html.Link(html.Rel("stylesheet"), html.Href(bulmaCSS)),
			html.Script(html.Src(htmxScript)),
		),
		html.Body(
			gomponents.Attr("hx-boost", "true"),
			html.Nav(
				html.Class("navbar is-dark"),
				html.Div(
					html.Class("navbar-brand"),
					html.A(html.Class("navbar-item has-text-weight-bold"), html.Href("/"), gomponents.Text(siteTitle)),
				),
				html.Div(html.Class("navbar-menu is-active"), html.Div(html.Class("navbar-start"), gomponents.Group(nav))),
			),
			html.Section(
				html.Class("section"),
				html.H1(html.Class("title"), gomponents.Text(title)),
				gomponents.Group(body),
			),
			html.Footer(
				html.Class("footer"),
				html.Div(html.Class("content has-text-centered"), html.P(gomponents.Text(footerNote))),
			),
		),
	))
}

// catalogPage renders one settled screen of a route.
func catalogPage(match router.Match, screen binding.Screen) gomponents.Node {
	title := match.Route.Title
	if match.Param != "" {
		title += ": " + match.Param
	}
	return layout(title, match.Route.Section, screenNode(screen))
}

func screenNode(screen binding.Screen) gomponents.Node {
	switch screen.Kind {
	case binding.ScreenGrid:
		return cardGrid(screen.Cards)
	case binding.ScreenEmpty:
		return html.P(html.Class("has-text-grey"), gomponents.Text(screen.Message))
	case binding.ScreenError:
		return html.Div(html.Class("notification is-danger"), gomponents.Text(screen.Message))
	default:
		return html.Progress(html.Class("progress is-small is-primary"), gomponents.Text(screen.Message))
	}
}

func cardGrid(items []cards.Card) gomponents.Node {
	columns := make([]gomponents.Node, 0, len(items))
	for _, c := range items {
		columns = append(columns, html.Div(html.Class("column is-one-fifth"), cardNode(c)))
	}
	return html.Div(html.Class("columns is-multiline"), gomponents.Group(columns))
}

func cardNode(c cards.Card) gomponents.Node {
	src := c.ImageURL
	if src == "" {
		src = placeholder
	}
	return html.Div(
		html.Class("card"),
		gomponents.Attr("data-key", c.Key),
		html.Div(
			html.Class("card-header"),
			html.P(html.Class("card-header-title is-centered"), gomponents.Text(c.Title)),
		),
		html.Div(
			html.Class("card-image"),
			html.Figure(html.Class("image is-2by3"), html.Img(html.Src(src), html.Alt(c.Title))),
		),
		html.Footer(
			html.Class("card-footer"),
			html.P(html.Class("card-footer-item"), html.Span(gomponents.Text(c.Metric))),
			actionNode(c.Action),
		),
	)
}

func actionNode(a cards.Action) gomponents.Node {
	if a.Resolved {
		return html.A(html.Href(a.Target), html.Class("card-footer-item"), gomponents.Text(a.Label))
	}
	return html.Span(
		html.Class("card-footer-item has-text-grey-light"),
		gomponents.Attr("aria-disabled", "true"),
		gomponents.Text(a.Label),
	)
}

func notFoundPage(path string) gomponents.Node {
	return layout("Not found", "",
		html.P(gomponents.Text("There is no page at "+path+".")),
		html.P(html.A(html.Href("/"), gomponents.Text("Back to series"))),
	)
}
