package router

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-chi/chi/v5"

	"github.com/five82/thwip/internal/binding"
	"github.com/five82/thwip/internal/cards"
	"github.com/five82/thwip/internal/catalog"
)

// ErrNoRoute is returned by Resolve for paths outside the route table.
var ErrNoRoute = errors.New("no route")

// LandingPath is where "/" leads.
const LandingPath = "/series"

// Section groups routes under one header tab.
type Section string

const (
	SectionPublishers Section = "publishers"
	SectionSeries     Section = "series"
)

// Route is one entry of the route table.
type Route struct {
	Pattern  string
	Title    string
	Section  Section
	Endpoint binding.Template
	newPage  func(catalog.CollectionFetcher, []binding.Option) binding.Page
}

func bind[R catalog.Record](pattern, title string, section Section, endpoint binding.Template, render cards.Strategy[R]) Route {
	return Route{
		Pattern:  pattern,
		Title:    title,
		Section:  section,
		Endpoint: endpoint,
		newPage: func(f catalog.CollectionFetcher, opts []binding.Option) binding.Page {
			return binding.New(binding.Route[R]{Endpoint: endpoint, Render: render}, f, opts...)
		},
	}
}

// DefaultRoutes is the catalogue's route table.
func DefaultRoutes() []Route {
	return []Route{
		bind("/publisher", "Publishers", SectionPublishers, "/api/publisher/", cards.PublisherCards),
		bind("/publisher/{id}", "Publisher Series", SectionPublishers, "/api/publisher/{id}/series_list/", cards.SeriesCards),
		bind("/series", "Series", SectionSeries, "/api/series/", cards.SeriesCards),
		bind("/series/{id}", "Issues", SectionSeries, "/api/series/{id}/issue_list/", cards.IssueCards),
	}
}

// Router maps in-app paths to routes and mounts fresh pages for them.
type Router struct {
	mux     *chi.Mux
	routes  []Route
	byPat   map[string]Route
	fetcher catalog.CollectionFetcher
	opts    []binding.Option
}

// New builds a Router over DefaultRoutes. opts are applied to every page
// the router mounts.
func New(fetcher catalog.CollectionFetcher, opts ...binding.Option) *Router {
	r := &Router{
		mux:     chi.NewRouter(),
		routes:  DefaultRoutes(),
		byPat:   make(map[string]Route),
		fetcher: fetcher,
		opts:    opts,
	}
	for _, route := range r.routes {
		r.byPat[route.Pattern] = route
		r.mux.Get(route.Pattern, func(http.ResponseWriter, *http.Request) {})
	}
	return r
}

// Routes returns the route table in declaration order.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// Match is a resolved path.
type Match struct {
	Route Route
	// Path is the canonical in-app path, without trailing slash.
	Path  string
	Param string

	router *Router
}

// Resolve matches path against the route table. Trailing slashes, query
// strings and fragments are ignored; "/" resolves to LandingPath.
func (r *Router) Resolve(path string) (Match, error) {
	canonical, err := canonicalPath(path)
	if err != nil {
		return Match{}, fmt.Errorf("%w: %q", ErrNoRoute, path)
	}

	rctx := chi.NewRouteContext()
	if !r.mux.Match(rctx, http.MethodGet, canonical) {
		return Match{}, fmt.Errorf("%w: %q", ErrNoRoute, path)
	}
	route, ok := r.byPat[rctx.RoutePattern()]
	if !ok {
		return Match{}, fmt.Errorf("%w: %q", ErrNoRoute, path)
	}

	m := Match{Route: route, Path: canonical, router: r}
	if route.Endpoint.HasParam() {
		param, err := url.PathUnescape(rctx.URLParam("id"))
		if err != nil || param == "" {
			return Match{}, fmt.Errorf("%w: %q", ErrNoRoute, path)
		}
		m.Param = param
	}
	return m, nil
}

// Mount creates a fresh page for the match and starts its first fetch.
// opts are applied after the router's own.
func (m Match) Mount(opts ...binding.Option) (binding.Page, tea.Cmd) {
	if m.router == nil || m.Route.newPage == nil {
		return nil, nil
	}
	all := append(append([]binding.Option(nil), m.router.opts...), opts...)
	page := m.Route.newPage(m.router.fetcher, all)
	return page, page.Mount(m.Param)
}

// SameRoute reports whether other differs from m only by its parameter.
func (m Match) SameRoute(other Match) bool {
	return m.Route.Pattern != "" && m.Route.Pattern == other.Route.Pattern
}

func canonicalPath(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "" || u.Host != "" {
		return "", errors.New("absolute url")
	}
	p := u.EscapedPath()
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return LandingPath, nil
	}
	return p, nil
}
