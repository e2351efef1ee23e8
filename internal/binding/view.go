package binding

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/five82/thwip/internal/cards"
	"github.com/five82/thwip/internal/catalog"
)

// Route pairs an endpoint template with the strategy that renders it.
type Route[R catalog.Record] struct {
	Endpoint Template
	Render   cards.Strategy[R]
}

// Page is the type-erased view a surface holds for the active route.
type Page interface {
	Mount(param string) tea.Cmd
	SetParam(param string) tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	Unmount()
	Screen() Screen
	Phase() Phase
	Endpoint() string
}

var _ Page = (*View[catalog.SeriesRecord])(nil)

// Option customises a View.
type Option func(*options)

type options struct {
	ctx    context.Context
	logger *slog.Logger
}

// WithContext sets the context fetches run under.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithLogger routes transition logging to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// View binds one remote collection to one render strategy. It is driven
// from a single event loop: Mount, SetParam and Update must not be called
// concurrently. Fetches run inside the returned tea.Cmd and report back
// through Update.
type View[R catalog.Record] struct {
	id         string
	route      Route[R]
	fetcher    catalog.CollectionFetcher
	ctx        context.Context
	logger     *slog.Logger
	mounted    bool
	param      string
	generation uint64
	state      FetchState[R]
}

// New builds an unmounted View in the Idle state.
func New[R catalog.Record](route Route[R], fetcher catalog.CollectionFetcher, opts ...Option) *View[R] {
	o := options{ctx: context.Background(), logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	id := uuid.NewString()
	return &View[R]{
		id:      id,
		route:   route,
		fetcher: fetcher,
		ctx:     o.ctx,
		logger:  o.logger.With("view", id, "template", string(route.Endpoint)),
		state:   Idle[R](),
	}
}

// resultMsg carries one fetch outcome back to the view that issued it.
type resultMsg[R catalog.Record] struct {
	viewID     string
	generation uint64
	endpoint   string
	records    []R
	err        *catalog.FetchError
}

// Mount activates the view for param and starts the first fetch.
func (v *View[R]) Mount(param string) tea.Cmd {
	v.mounted = true
	v.param = param
	return v.load()
}

// SetParam refetches when param resolves to a different endpoint. The same
// endpoint on a mounted view is a no-op.
func (v *View[R]) SetParam(param string) tea.Cmd {
	if !v.mounted {
		return v.Mount(param)
	}
	if v.route.Endpoint.Resolve(param) == v.state.Endpoint() {
		v.param = param
		return nil
	}
	v.param = param
	return v.load()
}

// Unmount drops the view's state. Results still in flight are ignored.
func (v *View[R]) Unmount() {
	v.mounted = false
	v.state = Idle[R]()
}

func (v *View[R]) load() tea.Cmd {
	endpoint := v.route.Endpoint.Resolve(v.param)
	v.generation++
	gen := v.generation
	v.state = Loading[R](endpoint, gen)
	v.logger.Debug("view loading", "endpoint", endpoint, "generation", gen)

	id := v.id
	ctx := v.ctx
	fetcher := v.fetcher
	return func() tea.Msg {
		msg := resultMsg[R]{viewID: id, generation: gen, endpoint: endpoint}
		raw, err := fetcher.FetchCollection(ctx, endpoint)
		if err != nil {
			msg.err = classify(endpoint, err)
			return msg
		}
		records, err := catalog.Decode[R](endpoint, raw)
		if err != nil {
			msg.err = classify(endpoint, err)
			return msg
		}
		msg.records = records
		return msg
	}
}

func classify(endpoint string, err error) *catalog.FetchError {
	fe := catalog.AsFetchError(err)
	if fe.Endpoint == "" {
		fe.Endpoint = endpoint
	}
	return fe
}

// Update applies fetch results addressed to this view. Results from other
// views, superseded generations, or after unmount are dropped.
func (v *View[R]) Update(msg tea.Msg) tea.Cmd {
	res, ok := msg.(resultMsg[R])
	if !ok || res.viewID != v.id {
		return nil
	}
	if !v.mounted || v.state.Phase() != PhaseLoading || res.generation != v.state.Generation() {
		v.logger.Debug("dropping stale result",
			"endpoint", res.endpoint,
			"generation", res.generation,
			"current", v.state.Generation())
		return nil
	}
	if res.err != nil {
		v.state = Failed[R](res.endpoint, res.generation, res.err)
		v.logger.Debug("view failed", "endpoint", res.endpoint, "kind", res.err.Kind.String(), "error", res.err)
		return nil
	}
	v.state = Loaded(res.endpoint, res.generation, res.records)
	v.logger.Debug("view loaded", "endpoint", res.endpoint, "count", len(res.records))
	return nil
}

// Screen derives the current output from the state alone.
func (v *View[R]) Screen() Screen {
	switch v.state.Phase() {
	case PhaseLoaded:
		records := v.state.Records()
		if len(records) == 0 {
			return Screen{Kind: ScreenEmpty, Message: EmptyMessage}
		}
		return Screen{Kind: ScreenGrid, Cards: v.route.Render(records)}
	case PhaseFailed:
		return errorScreen(v.state.Err())
	default:
		return placeholderScreen()
	}
}

// State returns the current immutable snapshot.
func (v *View[R]) State() FetchState[R] { return v.state }

// Phase reports the current lifecycle phase.
func (v *View[R]) Phase() Phase { return v.state.Phase() }

// Endpoint is the endpoint of the most recent request, empty before mount.
func (v *View[R]) Endpoint() string { return v.state.Endpoint() }

// Param is the route parameter the view is bound to.
func (v *View[R]) Param() string { return v.param }
