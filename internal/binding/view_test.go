package binding

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/five82/thwip/internal/cards"
	"github.com/five82/thwip/internal/catalog"
)

type stubFetcher struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	calls     []string
}

func (f *stubFetcher) FetchCollection(_ context.Context, endpoint string) ([]json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, endpoint)
	if err, ok := f.errs[endpoint]; ok {
		return nil, err
	}
	body, ok := f.responses[endpoint]
	if !ok {
		return nil, &catalog.FetchError{Kind: catalog.HTTPError, Status: 404, Endpoint: endpoint}
	}
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, &catalog.FetchError{Kind: catalog.ParseError, Endpoint: endpoint, Err: err}
	}
	return raw, nil
}

var seriesListRoute = Route[catalog.SeriesRecord]{
	Endpoint: "/api/publisher/{id}/series_list/",
	Render:   cards.SeriesCards,
}

func run(t *testing.T, v Page, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	require.Nil(t, v.Update(cmd()))
}

func TestView_NonEmptyCollectionRendersGrid(t *testing.T) {
	f := &stubFetcher{responses: map[string]string{
		"/api/publisher/acme/series_list/": `[{"id":1,"name":"Alpha","issue_count":3},{"id":2,"name":"Beta","issue_count":1}]`,
	}}
	v := New(seriesListRoute, f)
	require.Equal(t, PhaseIdle, v.Phase())

	cmd := v.Mount("acme")
	require.Equal(t, PhaseLoading, v.Phase())
	require.Equal(t, ScreenPlaceholder, v.Screen().Kind)
	require.Equal(t, "/api/publisher/acme/series_list/", v.Endpoint())

	run(t, v, cmd)
	screen := v.Screen()
	require.Equal(t, ScreenGrid, screen.Kind)
	require.Len(t, screen.Cards, 2)
	require.Equal(t, "Alpha", screen.Cards[0].Title)
	require.Equal(t, "3 Books", screen.Cards[0].Metric)
	require.Equal(t, "Beta", screen.Cards[1].Title)
	require.Empty(t, screen.Message)
	require.Len(t, v.State().Records(), 2)
}

func TestView_EmptyCollectionShowsMessageOnly(t *testing.T) {
	f := &stubFetcher{responses: map[string]string{"/api/publisher/none/series_list/": `[]`}}
	v := New(seriesListRoute, f)
	run(t, v, v.Mount("none"))

	screen := v.Screen()
	require.Equal(t, ScreenEmpty, screen.Kind)
	require.Equal(t, EmptyMessage, screen.Message)
	require.Empty(t, screen.Cards)
	require.Nil(t, screen.Err)
}

func TestView_FailuresShowErrorOnly(t *testing.T) {
	f := &stubFetcher{
		responses: map[string]string{},
		errs: map[string]error{
			"/api/publisher/bad/series_list/":  &catalog.FetchError{Kind: catalog.ParseError, Err: errors.New("bad json")},
			"/api/publisher/down/series_list/": errors.New("dial tcp: refused"),
		},
	}

	cases := []struct {
		param string
		kind  catalog.ErrorKind
	}{
		{"gone", catalog.HTTPError},
		{"bad", catalog.ParseError},
		{"down", catalog.NetworkError},
	}
	for _, tc := range cases {
		t.Run(tc.param, func(t *testing.T) {
			v := New(seriesListRoute, f)
			run(t, v, v.Mount(tc.param))

			screen := v.Screen()
			require.Equal(t, ScreenError, screen.Kind)
			require.Empty(t, screen.Cards)
			require.NotEqual(t, EmptyMessage, screen.Message)
			require.NotNil(t, screen.Err)
			require.Equal(t, tc.kind, screen.Err.Kind)
			require.Equal(t, "/api/publisher/"+tc.param+"/series_list/", screen.Err.Endpoint)
		})
	}
}

func TestView_ElementMismatchIsParseError(t *testing.T) {
	f := &stubFetcher{responses: map[string]string{"/api/publisher/x/series_list/": `[{"id":1,"name":"ok"},{"name":7}]`}}
	v := New(seriesListRoute, f)
	run(t, v, v.Mount("x"))
	require.Equal(t, PhaseFailed, v.Phase())
	require.Equal(t, catalog.ParseError, v.State().Err().Kind)
}

func TestView_StaleResponseDiscarded(t *testing.T) {
	f := &stubFetcher{responses: map[string]string{
		"/api/publisher/slow/series_list/": `[{"id":1,"name":"Slow"}]`,
		"/api/publisher/fast/series_list/": `[{"id":2,"name":"Fast"}]`,
	}}

	t.Run("late first response", func(t *testing.T) {
		v := New(seriesListRoute, f)
		slow := v.Mount("slow")
		fast := v.SetParam("fast")
		require.NotNil(t, fast)

		require.Nil(t, v.Update(fast()))
		require.Nil(t, v.Update(slow()))

		screen := v.Screen()
		require.Equal(t, ScreenGrid, screen.Kind)
		require.Len(t, screen.Cards, 1)
		require.Equal(t, "Fast", screen.Cards[0].Title)
	})

	t.Run("early first response", func(t *testing.T) {
		v := New(seriesListRoute, f)
		slow := v.Mount("slow")
		fast := v.SetParam("fast")

		require.Nil(t, v.Update(slow()))
		require.Equal(t, PhaseLoading, v.Phase())
		require.Nil(t, v.Update(fast()))
		require.Equal(t, "Fast", v.Screen().Cards[0].Title)
	})
}

func TestView_SameParamIsNoOp(t *testing.T) {
	f := &stubFetcher{responses: map[string]string{"/api/publisher/acme/series_list/": `[{"id":1,"name":"A"}]`}}
	v := New(seriesListRoute, f)
	run(t, v, v.Mount("acme"))
	gen := v.State().Generation()

	require.Nil(t, v.SetParam("acme"))
	require.Equal(t, PhaseLoaded, v.Phase())
	require.Equal(t, gen, v.State().Generation())
	require.Len(t, f.calls, 1)
}

func TestView_ParamChangeNeverShowsStaleData(t *testing.T) {
	f := &stubFetcher{responses: map[string]string{
		"/api/publisher/a/series_list/": `[{"id":1,"name":"A"}]`,
		"/api/publisher/b/series_list/": `[{"id":2,"name":"B"}]`,
	}}
	v := New(seriesListRoute, f)
	run(t, v, v.Mount("a"))
	require.Equal(t, ScreenGrid, v.Screen().Kind)

	cmd := v.SetParam("b")
	require.Equal(t, ScreenPlaceholder, v.Screen().Kind)
	run(t, v, cmd)
	require.Equal(t, "B", v.Screen().Cards[0].Title)
}

func TestView_IgnoresOtherViewsAndUnmount(t *testing.T) {
	f := &stubFetcher{responses: map[string]string{"/api/publisher/a/series_list/": `[{"id":1,"name":"A"}]`}}
	first := New(seriesListRoute, f)
	second := New(seriesListRoute, f)

	firstCmd := first.Mount("a")
	secondCmd := second.Mount("a")

	// A result addressed to first must not settle second.
	require.Nil(t, second.Update(firstCmd()))
	require.Equal(t, PhaseLoading, second.Phase())
	run(t, second, secondCmd)
	require.Equal(t, PhaseLoaded, second.Phase())

	third := New(seriesListRoute, f)
	late := third.Mount("a")
	third.Unmount()
	require.Nil(t, third.Update(late()))
	require.Equal(t, PhaseIdle, third.Phase())
	require.Equal(t, ScreenPlaceholder, third.Screen().Kind)

	require.Nil(t, third.Update(tea.KeyMsg{}))
}

func TestTemplate_Resolve(t *testing.T) {
	require.Equal(t, "/api/series/", Template("/api/series/").Resolve("ignored"))
	require.False(t, Template("/api/series/").HasParam())

	tpl := Template("/api/series/{id}/issue_list/")
	require.True(t, tpl.HasParam())
	require.Equal(t, "/api/series/42/issue_list/", tpl.Resolve("42"))
	require.Equal(t, "/api/series/a%2Fb/issue_list/", tpl.Resolve("a/b"))
}

func TestFetchState_Constructors(t *testing.T) {
	require.Equal(t, PhaseIdle, Idle[catalog.IssueRecord]().Phase())

	loaded := Loaded[catalog.IssueRecord]("/x", 3, nil)
	require.Equal(t, PhaseLoaded, loaded.Phase())
	require.NotNil(t, loaded.Records())
	require.Empty(t, loaded.Records())
	require.Equal(t, uint64(3), loaded.Generation())

	require.Nil(t, Loading[catalog.IssueRecord]("/x", 1).Records())

	fe := &catalog.FetchError{Kind: catalog.HTTPError, Status: 500}
	failed := Failed[catalog.IssueRecord]("/x", 2, fe)
	require.Same(t, fe, failed.Err())
	require.Equal(t, "The catalogue returned an error (HTTP 500).", ErrorMessage(fe))
}
