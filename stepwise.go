package stepwise

import (
	"io"
	"log/slog"
	"time"

	"github.com/edulab/stepwise/internal/tracer"
	"github.com/edulab/stepwise/pkg/domain"
	"github.com/edulab/stepwise/pkg/patterns"
	"github.com/edulab/stepwise/pkg/timeline"
)

// Version is the library version reported by the CLI.
const Version = "0.2.0"

// Engine is the high-level entry point for the stepwise library.
// It wraps the internal tracer and provides a simplified API for consumers.
type Engine struct {
	registry *patterns.Registry
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	forCap   int
	whileCap int
	interval time.Duration
	builder  *tracer.Builder
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithRegistry injects a custom pattern registry, bypassing the default
// language table.
func WithRegistry(r *patterns.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithIterationCaps overrides how many loop iterations are simulated
// before a trace is cut short.
func WithIterationCaps(forCap, whileCap int) Option {
	return func(e *Engine) {
		e.forCap = forCap
		e.whileCap = whileCap
	}
}

// WithAutoPlayInterval sets the initial auto-play tick period for
// timelines created by this engine.
func WithAutoPlayInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.interval = d
	}
}

// New initializes a stepwise Engine. With no options it traces every
// registered language with the default iteration caps.
func New(opts ...Option) *Engine {
	eng := &Engine{
		forCap:   domain.DefaultForLoopCap,
		whileCap: domain.DefaultWhileLoopCap,
		interval: domain.DefaultAutoPlayInterval,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.registry == nil {
		eng.registry = patterns.NewRegistry()
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	eng.builder = tracer.New(
		tracer.WithRegistry(eng.registry),
		tracer.WithLogger(eng.logger),
		tracer.WithLifecycleHooks(eng.hooks),
		tracer.WithIterationCaps(eng.forCap, eng.whileCap),
	)

	return eng
}

// Trace builds the full execution trace for a source snippet.
func (e *Engine) Trace(code, language string) []domain.Step {
	return e.builder.Build(code, language)
}

// NewTimeline builds a trace and wraps it in a playback controller.
func (e *Engine) NewTimeline(code, language string) *timeline.Controller {
	ctrl := timeline.NewController(e.builder,
		timeline.WithLogger(e.logger),
		timeline.WithLifecycleHooks(e.hooks),
		timeline.WithInterval(e.interval),
	)
	ctrl.Load(code, language)
	return ctrl
}

// Builder exposes the underlying trace builder for session managers and
// other components that accept the TraceBuilder port.
func (e *Engine) Builder() *tracer.Builder {
	return e.builder
}

// Registry returns the pattern registry used by the engine.
func (e *Engine) Registry() *patterns.Registry {
	return e.registry
}

// Languages returns the sorted language tags the engine recognizes.
func (e *Engine) Languages() []string {
	return e.registry.Tags()
}
