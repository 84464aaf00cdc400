package donut

import (
	"log/slog"

	"github.com/google/uuid"
)

const (
	trackFill = "rgba(0,0,0,.1)"
	holeFill  = "#fff"
)

// Policy decides whether a data notification triggers a new render pass.
type Policy int

const (
	// RebuildOnChange renders each time the content of the dataset changes.
	RebuildOnChange Policy = iota
	// RebuildOnce renders on the first non empty dataset and ignores every
	// later notification.
	RebuildOnce
)

func (p Policy) String() string {
	switch p {
	case RebuildOnChange:
		return "rebuild-on-change"
	case RebuildOnce:
		return "rebuild-once"
	default:
		return "unknown"
	}
}

type State int

const (
	Uninitialized State = iota
	Rendered
)

func (s State) String() string {
	if s == Rendered {
		return "rendered"
	}
	return "uninitialized"
}

type Option func(*Chart)

func WithPolicy(p Policy) Option {
	return func(c *Chart) {
		c.policy = p
	}
}

func WithID(id string) Option {
	return func(c *Chart) {
		c.ID = id
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Chart) {
		if l != nil {
			c.logger = l
		}
	}
}

// Chart draws a donut chart on a surface and keeps it in sync with its
// dataset and with the pointer.
//
// A Chart is not safe for concurrent use: every method is expected to be
// called from the goroutine owning the surface.
type Chart struct {
	ID string

	surface Surface
	options Options
	policy  Policy
	logger  *slog.Logger

	state       State
	fingerprint uint64
	cfg         Config

	root   Node
	view   Node
	slices []Node
	labels *LabelRenderer
	focus  int
	ctx    *listenerContext
}

func New(surface Surface, opts Options, options ...Option) *Chart {
	c := Chart{
		ID:      uuid.NewString(),
		surface: surface,
		options: opts,
		logger:  Logger(),
		focus:   -1,
	}
	for _, o := range options {
		o(&c)
	}
	c.logger = c.logger.With("chart", c.ID)
	return &c
}

func (c *Chart) State() State {
	return c.state
}

// Config returns the configuration of the last render pass.
func (c *Chart) Config() Config {
	return c.cfg
}

func (c *Chart) Options() Options {
	return c.options
}

// SetOptions replaces the options of the chart. They are taken into account
// by the next render pass.
func (c *Chart) SetOptions(o Options) {
	c.options = o
}

// Watch subscribes the chart to the notifications of feed.
func (c *Chart) Watch(feed *Feed) func() {
	return feed.Subscribe(c.DataChanged)
}

// DataChanged is the reaction to a new dataset. Empty datasets are never
// drawn.
func (c *Chart) DataChanged(data []Segment) {
	c.options.Data = data
	if len(data) == 0 {
		c.logger.Debug("empty dataset ignored")
		return
	}
	if c.state == Uninitialized {
		c.Render()
		return
	}
	switch c.policy {
	case RebuildOnce:
		c.logger.Debug("dataset ignored", "policy", c.policy)
	default:
		if Fingerprint(data) == c.fingerprint {
			c.logger.Debug("dataset unchanged")
			return
		}
		c.Render()
	}
}

// Render builds the chart from scratch: caption, background track, one group
// per segment and the center label. Listeners are attached last.
func (c *Chart) Render() {
	c.cfg = Resolve(c.options)
	c.fingerprint = Fingerprint(c.options.Data)
	c.focus = -1
	c.slices = c.slices[:0]

	c.root = c.surface.Canvas(c.cfg.Width, c.cfg.SurfaceHeight())
	c.root.SetID(c.ID)
	c.view = c.root.Group("donut-chart")
	c.view.Translate(c.cfg.Width/2, c.cfg.Height/2)

	c.drawCaption()
	c.drawTrack()

	var (
		geom   = c.cfg.Geometry()
		shapes = geom.Build(c.options.Data)
	)
	c.ctx = &listenerContext{
		cfg:     c.cfg,
		geom:    geom,
		labels:  NewLabelRenderer(c.view),
		current: make(map[int]Sector),
		focus:   &c.focus,
		logger:  c.logger,
	}
	c.labels = c.ctx.labels
	for _, s := range shapes {
		c.slices = append(c.slices, c.drawSlice(s))
	}
	c.ctx.reset()
	c.attachListeners(shapes)

	c.state = Rendered
	c.logger.Debug("chart rendered",
		"segments", len(shapes),
		"inner", c.cfg.InnerRadius,
		"outer", c.cfg.OuterRadius,
	)
}

// RedrawLabel draws the center label with the given caption and value, using
// the units of the current configuration.
func (c *Chart) RedrawLabel(caption string, value Value) {
	if c.labels == nil {
		return
	}
	c.labels.Redraw(caption, value, c.cfg.PreUnit, c.cfg.PostUnit)
}

// Focus runs the pointer-enter handler of the segment at index i.
func (c *Chart) Focus(i int) bool {
	return c.dispatch(i, true)
}

// Blur runs the pointer-leave handler of the segment at index i.
func (c *Chart) Blur(i int) bool {
	return c.dispatch(i, false)
}

// Focused returns the index of the segment reflected by the center label. It
// returns false when the label shows the default value.
func (c *Chart) Focused() (int, bool) {
	return c.focus, c.focus >= 0
}

// Current returns the sector last drawn for the segment at index i.
func (c *Chart) Current(i int) (Sector, bool) {
	if c.ctx == nil {
		return Sector{}, false
	}
	s, ok := c.ctx.current[i]
	return s, ok
}

func (c *Chart) dispatch(i int, enter bool) bool {
	if c.ctx == nil || i < 0 || i >= len(c.ctx.handlers) {
		return false
	}
	h := c.ctx.handlers[i]
	if enter {
		h.enter()
	} else {
		h.leave()
	}
	return true
}

func (c *Chart) drawCaption() {
	g := c.view.Group("chart-title")
	g.Translate(0, c.cfg.Height/2)
	g.Text(c.cfg.Caption, "chart-label", 5)
}

func (c *Chart) drawTrack() {
	g := c.view.Group("center-group")
	g.Circle(c.cfg.OuterRadius, trackFill)
	g.Circle(c.cfg.InnerRadius, holeFill)
}

func (c *Chart) drawSlice(s Shape) Node {
	var (
		grp = c.view.Group("slice")
		pat = grp.Path(s.Rest, c.fill(s.Slice))
	)
	c.ctx.paths = append(c.ctx.paths, pat)
	c.ctx.current[s.Index] = s.Rest
	return grp
}

func (c *Chart) fill(s Slice) string {
	if s.Color == "" {
		return c.cfg.Palette.Color(s.Index)
	}
	return s.Color
}

func (c *Chart) attachListeners(shapes []Shape) {
	for i, s := range shapes {
		h := c.ctx.handler(s, c.fill(s.Slice), c.ctx.paths[i])
		c.ctx.handlers = append(c.ctx.handlers, h)
		c.slices[i].On(PointerEnter, h.enter)
		c.slices[i].On(PointerLeave, h.leave)
	}
}

// listenerContext is shared by the listeners of one render pass.
type listenerContext struct {
	cfg    Config
	geom   Geometry
	labels *LabelRenderer
	logger *slog.Logger

	current  map[int]Sector
	paths    []Node
	handlers []handler
	focus    *int
}

type handler struct {
	enter Listener
	leave Listener
}

// reset shows the default label.
func (x *listenerContext) reset() {
	*x.focus = -1
	x.labels.Redraw(DefaultTotal, x.cfg.Value, x.cfg.PreUnit, x.cfg.PostUnit)
}

func (x *listenerContext) handler(s Shape, fill string, path Node) handler {
	enter := func() {
		*x.focus = s.Index
		x.labels.Redraw(s.Label, Number(s.Value), x.cfg.PreUnit, x.cfg.PostUnit)
		sec := x.geom.Hover.Sector(s.Slice)
		path.Reshape(sec, Brighter(fill))
		x.current[s.Index] = sec
		x.logger.Debug("segment focused", "index", s.Index, "label", s.Label)
	}
	leave := func() {
		x.reset()
		sec := x.geom.Rest.Sector(s.Slice)
		path.Reshape(sec, fill)
		x.current[s.Index] = sec
	}
	return handler{
		enter: enter,
		leave: leave,
	}
}
