// Package spiro drives the animation: one run at a time, one tick per frame.
package spiro

import (
	"image/color"
	"math/rand"
	"time"

	"github.com/iburimskiy/spiro/internal/config"
	"github.com/iburimskiy/spiro/internal/frame"
	"github.com/iburimskiy/spiro/internal/palette"
	"github.com/iburimskiy/spiro/internal/pattern"
	"github.com/iburimskiy/spiro/internal/render"
)

// State is the lifecycle state of the driver.
type State int

const (
	Idle State = iota
	Running
	Completed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Scheduler queues a callback for the next frame. *frame.Clock implements it.
type Scheduler interface {
	Request(cb frame.Callback) frame.Handle
	Cancel(h frame.Handle) bool
}

// Run is the mutable state of one run. It is owned by the driver and
// mutated only by that run's ticks.
type Run struct {
	Generation uint64
	Preset     pattern.Preset
	Config     pattern.Config
	Palette    palette.Palette
	// Fits reports whether every sample lands on the surface.
	Fits       bool

	Theta   float64
	Start   time.Duration
	Started bool
	Elapsed time.Duration
	Pen     render.Pen
	Ticks   int
}

// Driver owns the surface while a run is active.
type Driver struct {
	sched   Scheduler
	surface render.Surface
	rng     *rand.Rand
	preset  pattern.Preset
	bounds  config.Bounds
	outer   float64
	budget  time.Duration
	pinned  *palette.Palette
	bg      color.NRGBA

	gen      uint64
	run      *Run
	renderer render.Renderer
	handle   frame.Handle
	tickFn   frame.Callback
	state    State

	onTransition func(from, to State)
}

// Option configures a Driver.
type Option func(*Driver)

// WithRand sets the random source that seeds every run.
func WithRand(r *rand.Rand) Option {
	return func(d *Driver) { d.rng = r }
}

func WithPreset(p pattern.Preset) Option {
	return func(d *Driver) { d.preset = p }
}

func WithBounds(b config.Bounds) Option {
	return func(d *Driver) { d.bounds = b }
}

// WithOuterRadius fixes R; zero derives it from the surface width.
func WithOuterRadius(r float64) Option {
	return func(d *Driver) { d.outer = r }
}

// WithBudget overrides the preset's elapsed-time ceiling.
func WithBudget(b time.Duration) Option {
	return func(d *Driver) { d.budget = b }
}

// WithPalette pins the colours used by every run.
func WithPalette(p palette.Palette) Option {
	return func(d *Driver) { d.pinned = &p }
}

// WithClearColor sets the colour the surface is cleared to at run start.
func WithClearColor(c color.NRGBA) Option {
	return func(d *Driver) { d.bg = c }
}

// OnTransition registers a hook called on every state change.
func OnTransition(fn func(from, to State)) Option {
	return func(d *Driver) { d.onTransition = fn }
}

func New(sched Scheduler, surface render.Surface, opts ...Option) *Driver {
	d := &Driver{
		sched:   sched,
		surface: surface,
		preset:  pattern.Chroma,
		bounds:  config.DefaultBounds(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	d.tickFn = d.tick
	return d
}

// Start begins a fresh run unless one is already running. It reports whether a run is active.
func (d *Driver) Start() bool {
	if d.state == Running {
		return true
	}
	d.gen++
	return d.begin()
}

// Reset supersedes the current run. A running run is cancelled by its own
// next tick, which then starts the replacement; otherwise the replacement starts now.
func (d *Driver) Reset() {
	d.gen++
	if d.state == Running && d.handle != 0 {
		Logger().Debug("reset requested", "generation", d.gen)
		return
	}
	d.begin()
}

// SetSurface swaps the drawing surface, e.g. after a resize, and resets.
func (d *Driver) SetSurface(s render.Surface) {
	d.surface = s
	Logger().Debug("surface changed")
	d.Reset()
}

// SetOuterRadius changes R for subsequent runs.
func (d *Driver) SetOuterRadius(r float64) { d.outer = r }

// SetPreset changes the preset for subsequent runs.
func (d *Driver) SetPreset(p pattern.Preset) { d.preset = p }

// SetPalette pins the colours and resets.
func (d *Driver) SetPalette(p palette.Palette) {
	d.pinned = &p
	d.Reset()
}

// ReleasePalette returns to random colours from the next run.
func (d *Driver) ReleasePalette() { d.pinned = nil }

// Stop revokes the pending tick and returns to Idle. The surface keeps its pixels.
func (d *Driver) Stop() {
	if d.handle != 0 {
		d.sched.Cancel(d.handle)
		d.handle = 0
	}
	d.gen++
	d.run = nil
	d.setState(Idle)
}

// State returns the current lifecycle state.
func (d *Driver) State() State { return d.state }

// Run returns a copy of the current run state.
func (d *Driver) Run() (Run, bool) {
	if d.run == nil {
		return Run{}, false
	}
	return *d.run, true
}

func (d *Driver) begin() bool {
	if d.surface == nil {
		Logger().Debug("surface unavailable, start deferred")
		d.run = nil
		d.setState(Idle)
		return false
	}
	w, h := d.surface.Size()
	if w <= 0 || h <= 0 {
		Logger().Debug("surface not ready, start deferred", "width", w, "height", h)
		d.run = nil
		d.setState(Idle)
		return false
	}

	outer := d.outer
	if outer <= 0 {
		outer = config.OuterRadius(w)
	}

	cfg := pattern.Generate(d.rng, d.preset, outer, d.bounds)
	if d.budget > 0 {
		cfg.Budget = d.budget
	}
	var pal palette.Palette
	if d.pinned != nil {
		pal = *d.pinned
	} else {
		pal = palette.Random(d.rng, cfg.Space)
	}
	pal.Space = cfg.Space

	d.run = &Run{
		Generation: d.gen,
		Preset:     d.preset,
		Config:     cfg,
		Palette:    pal,
		Fits:       cfg.Curve.Extent() <= float64(min(w, h))/2,
	}
	d.renderer = render.Renderer{Config: cfg, Palette: pal}

	d.surface.Clear(d.bg)
	d.handle = d.sched.Request(d.tickFn)
	d.setState(Running)

	c := cfg.Curve
	Logger().Info("run started",
		"generation", d.gen,
		"preset", d.preset,
		"seed", cfg.Seeds[0], "seedB", cfg.Seeds[1],
		"R", c.R, "r", c.Rolling, "d", c.D, "diff", c.Diff, "ratio", c.Ratio,
		"thetaIncr", cfg.ThetaIncr,
		"mode", cfg.Mode, "space", cfg.Space, "composite", cfg.Composite,
		"fits", d.run.Fits,
	)
	return true
}

func (d *Driver) tick(now time.Duration) {
	d.handle = 0
	run := d.run
	if run == nil {
		return
	}
	if run.Generation != d.gen {
		Logger().Debug("run cancelled", "generation", run.Generation, "ticks", run.Ticks)
		d.setState(Cancelled)
		d.begin()
		return
	}

	if !run.Started {
		run.Start = now
		run.Started = true
	}
	run.Elapsed = now - run.Start

	x, y := run.Config.Curve.Sample(run.Theta)
	d.renderer.Paint(d.surface, &run.Pen, run.Theta, x, y)
	run.Ticks++

	if run.Elapsed < run.Config.Budget {
		run.Theta += run.Config.ThetaIncr
		d.handle = d.sched.Request(d.tickFn)
		return
	}
	Logger().Info("run completed", "generation", run.Generation, "ticks", run.Ticks, "elapsed", run.Elapsed)
	d.setState(Completed)
}

func (d *Driver) setState(s State) {
	if s == d.state {
		return
	}
	from := d.state
	d.state = s
	if d.onTransition != nil {
		d.onTransition(from, s)
	}
}
