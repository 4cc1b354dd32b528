// Package dashboard owns the filter state and dispatches chart recomputation
// when controls change.
package dashboard

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/verte-zerg/launchdash/internal/charts"
	"github.com/verte-zerg/launchdash/internal/dataset"
	"github.com/verte-zerg/launchdash/internal/model"
)

// Chart names published by the engine.
const (
	ChartProportion  = "proportion"
	ChartCorrelation = "correlation"
)

// Field is a bit set of FilterState fields.
type Field uint8

const (
	FieldSite Field = 1 << iota
	FieldRange
)

func (f Field) String() string {
	switch f {
	case FieldSite:
		return "site"
	case FieldRange:
		return "range"
	case FieldSite | FieldRange:
		return "site|range"
	default:
		return "none"
	}
}

// Event describes a FilterState change.
type Event struct {
	Changed Field
	State   model.FilterState
}

// Listener receives every republished chart.
type Listener func(name string, spec model.ChartSpec)

type resolver struct {
	name    string
	inputs  Field
	resolve func(model.FilterState) model.ChartSpec
}

// Engine holds the filter state and the latest chart for each resolver. It is
// not safe for concurrent use; callers drive it from one event loop.
type Engine struct {
	ds        *dataset.Dataset
	logger    *zap.Logger
	colors    charts.Colors
	state     model.FilterState
	resolvers []resolver
	specs     map[string]model.ChartSpec
	counts    map[string]int
	listeners []Listener
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithColors overrides the outcome colours of the site proportion chart.
func WithColors(colors charts.Colors) Option {
	return func(e *Engine) {
		if colors.Success != "" {
			e.colors.Success = colors.Success
		}
		if colors.Failure != "" {
			e.colors.Failure = colors.Failure
		}
	}
}

// New builds an engine with the site unset and the payload range spanning
// the whole dataset, and computes the initial charts.
func New(ds *dataset.Dataset, opts ...Option) *Engine {
	e := &Engine{
		ds:     ds,
		logger: zap.NewNop(),
		colors: charts.DefaultColors(),
		state: model.FilterState{
			Site:    model.Unset(),
			Payload: ds.GlobalPayloadRange(),
		},
		specs:  map[string]model.ChartSpec{},
		counts: map[string]int{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.Named("dashboard")
	e.resolvers = []resolver{
		{
			name:   ChartProportion,
			inputs: FieldSite,
			resolve: func(st model.FilterState) model.ChartSpec {
				return charts.ResolveProportion(st.Site, e.ds, e.colors)
			},
		},
		{
			name:   ChartCorrelation,
			inputs: FieldSite | FieldRange,
			resolve: func(st model.FilterState) model.ChartSpec {
				return charts.ResolveCorrelation(st.Site, st.Payload, e.ds)
			},
		},
	}
	for _, r := range e.resolvers {
		e.specs[r.name] = r.resolve(e.state)
	}
	return e
}

// Subscribe registers a listener. Listeners run synchronously, in
// registration order, after every recompute.
func (e *Engine) Subscribe(fn Listener) {
	e.listeners = append(e.listeners, fn)
}

// State returns the current filter state.
func (e *Engine) State() model.FilterState {
	return e.state
}

// Bounds returns the payload bounds of the dataset.
func (e *Engine) Bounds() model.PayloadRange {
	return e.ds.GlobalPayloadRange()
}

// Sites returns the selectable launch sites.
func (e *Engine) Sites() []string {
	return e.ds.Sites()
}

// Chart returns the latest chart published under name.
func (e *Engine) Chart(name string) (model.ChartSpec, bool) {
	spec, ok := e.specs[name]
	return spec, ok
}

// Recomputations returns how many times the named resolver ran after the
// initial computation.
func (e *Engine) Recomputations(name string) int {
	return e.counts[name]
}

// SetSite changes the site selection.
func (e *Engine) SetSite(sel model.Selection) {
	if sel == e.state.Site {
		return
	}
	e.state.Site = sel
	e.publish(Event{Changed: FieldSite, State: e.state})
}

// SetRange changes the payload range. Inverted or non-finite ranges are
// rejected; ranges outside the dataset bounds are clamped.
func (e *Engine) SetRange(r model.PayloadRange) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid payload range: %w", err)
	}
	r = r.Clamp(e.ds.GlobalPayloadRange())
	if r == e.state.Payload {
		return nil
	}
	e.state.Payload = r
	e.publish(Event{Changed: FieldRange, State: e.state})
	return nil
}

// Reset restores the initial filter state.
func (e *Engine) Reset() {
	var changed Field
	if e.state.Site != model.Unset() {
		changed |= FieldSite
	}
	if e.state.Payload != e.ds.GlobalPayloadRange() {
		changed |= FieldRange
	}
	if changed == 0 {
		return
	}
	e.state = model.FilterState{Site: model.Unset(), Payload: e.ds.GlobalPayloadRange()}
	e.publish(Event{Changed: changed, State: e.state})
}

func (e *Engine) publish(ev Event) {
	e.logger.Debug("filter changed",
		zap.Stringer("fields", ev.Changed),
		zap.String("site", ev.State.Site.String()),
		zap.Float64("payload_min", ev.State.Payload.Min),
		zap.Float64("payload_max", ev.State.Payload.Max))
	for _, r := range e.resolvers {
		if r.inputs&ev.Changed == 0 {
			continue
		}
		spec := r.resolve(ev.State)
		e.specs[r.name] = spec
		e.counts[r.name]++
		e.logger.Debug("chart recomputed",
			zap.String("chart", r.name),
			zap.Bool("placeholder", spec.IsPlaceholder()),
			zap.Int("slices", len(spec.Slices)),
			zap.Int("points", spec.PointCount()))
		for _, fn := range e.listeners {
			fn(r.name, spec)
		}
	}
}
