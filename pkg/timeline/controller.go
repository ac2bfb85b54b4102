package timeline

import (
	"log/slog"
	"sync"
	"time"

	"github.com/edulab/stepwise/internal/logging"
	"github.com/edulab/stepwise/pkg/domain"
	"github.com/edulab/stepwise/pkg/ports"
)

// Controller drives playback over one trace. The zero cursor position is
// -1: before the first step, with an empty environment.
type Controller struct {
	builder ports.TraceBuilder
	logger  *slog.Logger
	hooks   domain.LifecycleHooks

	mu       sync.Mutex
	language string
	loaded   bool
	steps    []domain.Step
	cursor   int
	vars     map[string]*domain.Variable
	output   []string
	status   domain.PlaybackStatus
	interval time.Duration

	// Auto-play run state. playStop/playDone belong to the active run;
	// autoPlaying gates the play-state hook so it fires once per toggle.
	playStop    chan struct{}
	playDone    chan struct{}
	autoPlaying bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger configures a logger for playback events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) { c.hooks = hooks }
}

// WithInterval sets the initial auto-play interval. Values outside the
// allowed range are clamped.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = clampInterval(d) }
}

// NewController creates a Controller in the idle state.
func NewController(builder ports.TraceBuilder, opts ...Option) *Controller {
	c := &Controller{
		builder:  builder,
		logger:   logging.NewNop(),
		cursor:   -1,
		vars:     make(map[string]*domain.Variable),
		status:   domain.StatusIdle,
		interval: domain.DefaultAutoPlayInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load builds a trace for the source text and resets playback to the
// start. Any running auto-play is stopped first.
func (c *Controller) Load(code, language string) {
	steps := c.builder.Build(code, language)

	c.Pause()
	c.mu.Lock()
	c.language = language
	c.loaded = true
	c.steps = steps
	c.resetLocked()
	c.mu.Unlock()

	c.logger.Debug("trace loaded", "language", language, "steps", len(steps))
}

// StepForward advances the cursor by one step and folds it into the
// derived state. It reports false at the end of the trace (or with no
// trace loaded), flipping the status to done.
func (c *Controller) StepForward() bool {
	c.mu.Lock()
	if len(c.steps) == 0 || c.cursor >= len(c.steps)-1 {
		if len(c.steps) > 0 {
			c.status = domain.StatusDone
		}
		c.mu.Unlock()
		return false
	}

	c.cursor++
	step := c.steps[c.cursor]
	c.output = applyStep(c.vars, c.output, step, c.cursor)
	if c.cursor == len(c.steps)-1 {
		c.status = domain.StatusDone
	}
	clone := step.Clone()
	event := domain.StepEvent{Index: c.cursor, Step: &clone}
	c.mu.Unlock()

	if c.hooks.OnStep != nil {
		c.hooks.OnStep(event)
	}
	return true
}

// StepBackward moves the cursor back by one step, replaying the fold from
// the start. At the first step (or earlier) it is a no-op and reports
// false. Auto-play is stopped.
func (c *Controller) StepBackward() bool {
	c.Pause()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor <= 0 {
		return false
	}
	c.cursor--
	c.vars, c.output = replay(c.steps, c.cursor)
	c.status = domain.StatusPaused
	return true
}

// JumpTo moves the cursor to the given step index, replaying the fold
// from the start. Indices outside the trace leave the cursor where it
// is. Auto-play is stopped.
func (c *Controller) JumpTo(index int) {
	c.Pause()

	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.steps) {
		return
	}
	c.cursor = index
	c.vars, c.output = replay(c.steps, c.cursor)
	if len(c.steps) > 0 && c.cursor == len(c.steps)-1 {
		c.status = domain.StatusDone
	} else if len(c.steps) > 0 {
		c.status = domain.StatusPaused
	}
}

// Reset moves the cursor back to the start, clearing the derived state.
// The trace itself is kept. Resetting twice is the same as resetting
// once. Auto-play is stopped.
func (c *Controller) Reset() {
	c.Pause()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.cursor = -1
	c.vars = make(map[string]*domain.Variable)
	c.output = nil
	switch {
	case len(c.steps) > 0:
		c.status = domain.StatusPaused
	case c.loaded:
		// A trace was built but produced no steps. There is nothing
		// left to play, so the session is done, not idle.
		c.status = domain.StatusDone
	default:
		c.status = domain.StatusIdle
	}
}

// Play starts the auto-play loop, advancing one step per interval until
// the trace ends or Pause is called. Calling Play while already playing,
// at the end of the trace, or with no trace loaded is a no-op.
func (c *Controller) Play() {
	c.mu.Lock()
	if c.playStop != nil || len(c.steps) == 0 || c.cursor >= len(c.steps)-1 {
		c.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	c.playStop, c.playDone = stop, done
	c.status = domain.StatusPlaying
	c.mu.Unlock()

	c.setAutoPlaying(true)
	go c.playLoop(stop, done)
}

// Pause stops the auto-play loop and waits for it to exit. Pausing a
// controller that is not playing is a no-op.
func (c *Controller) Pause() {
	c.mu.Lock()
	stop, done := c.playStop, c.playDone
	c.playStop, c.playDone = nil, nil
	if c.status == domain.StatusPlaying {
		c.status = domain.StatusPaused
	}
	c.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
	c.setAutoPlaying(false)
}

// playLoop is the owned auto-play goroutine. The interval is re-read on
// every tick so SetSpeed takes effect mid-run.
func (c *Controller) playLoop(stop, done chan struct{}) {
	defer close(done)
	for {
		c.mu.Lock()
		d := c.interval
		c.mu.Unlock()

		select {
		case <-stop:
			return
		case <-time.After(d):
		}

		if !c.StepForward() {
			c.mu.Lock()
			if c.playStop != nil {
				c.playStop, c.playDone = nil, nil
			}
			c.mu.Unlock()
			c.setAutoPlaying(false)
			return
		}
	}
}

// setAutoPlaying flips the auto-play flag and fires the play-state hook
// exactly once per transition.
func (c *Controller) setAutoPlaying(on bool) {
	c.mu.Lock()
	changed := c.autoPlaying != on
	c.autoPlaying = on
	c.mu.Unlock()

	if changed && c.hooks.OnPlayStateChange != nil {
		c.hooks.OnPlayStateChange(on)
	}
}

// SetSpeed changes the auto-play interval, clamped to the allowed range.
// A running loop picks the new interval up on its next tick.
func (c *Controller) SetSpeed(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = clampInterval(d)
}

func clampInterval(d time.Duration) time.Duration {
	if d < domain.MinAutoPlayInterval {
		return domain.MinAutoPlayInterval
	}
	if d > domain.MaxAutoPlayInterval {
		return domain.MaxAutoPlayInterval
	}
	return d
}

// Snapshot returns a deep copy of the current playback state.
func (c *Controller) Snapshot() *domain.TimelineSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	steps := make([]domain.Step, len(c.steps))
	for i, s := range c.steps {
		steps[i] = s.Clone()
	}
	vars := make(map[string]*domain.Variable, len(c.vars))
	for name, v := range c.vars {
		vars[name] = v.Clone()
	}
	output := make([]string, len(c.output))
	copy(output, c.output)

	line := 0
	if c.cursor >= 0 && c.cursor < len(c.steps) {
		line = c.steps[c.cursor].LineNumber
	}

	complete := c.loaded && c.cursor == len(c.steps)-1
	hasError := false
	for i := 0; i <= c.cursor && i < len(c.steps); i++ {
		if c.steps[i].Type == domain.StepError {
			hasError = true
			break
		}
	}

	return &domain.TimelineSnapshot{
		Language:         c.language,
		Steps:            steps,
		CurrentStepIndex: c.cursor,
		CurrentLine:      line,
		Variables:        vars,
		Output:           output,
		Status:           c.status,
		IsExecuting:      len(c.steps) > 0 && !complete,
		IsComplete:       complete,
		HasError:         hasError,
		IsAutoPlaying:    c.autoPlaying,
		AutoPlayInterval: c.interval,
	}
}

// Restore replaces the playback position from a stored snapshot, assuming
// the snapshot's steps are the trace. Used to resume persisted sessions.
func (c *Controller) Restore(snap *domain.TimelineSnapshot) {
	c.Pause()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.language = snap.Language
	c.loaded = true
	c.steps = make([]domain.Step, len(snap.Steps))
	for i, s := range snap.Steps {
		c.steps[i] = s.Clone()
	}
	c.cursor = snap.CurrentStepIndex
	if c.cursor > len(c.steps)-1 {
		c.cursor = len(c.steps) - 1
	}
	c.vars, c.output = replay(c.steps, c.cursor)
	c.interval = clampInterval(snap.AutoPlayInterval)
	if len(c.steps) == 0 {
		c.status = domain.StatusDone
	} else if c.cursor == len(c.steps)-1 {
		c.status = domain.StatusDone
	} else {
		c.status = domain.StatusPaused
	}
}
