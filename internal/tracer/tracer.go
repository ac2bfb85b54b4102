// Package tracer builds execution traces: given raw source text and a
// language tag it walks the code line by line, classifies each line with
// the language's pattern provider, evaluates displayed values, simulates
// bounded loop iterations and branch selection, and emits an ordered list
// of immutable steps.
//
// Build is pure and synchronous. It performs no I/O and never fails: any
// construct the provider cannot classify degrades to a generic-expression
// step rather than aborting the trace.
package tracer

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/edulab/stepwise/internal/logging"
	"github.com/edulab/stepwise/pkg/domain"
	"github.com/edulab/stepwise/pkg/eval"
	"github.com/edulab/stepwise/pkg/patterns"
)

// Builder constructs traces. Safe for concurrent use; each Build call
// works on its own state.
type Builder struct {
	registry *patterns.Registry
	forCap   int
	whileCap int
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	now      func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithRegistry replaces the default provider registry.
func WithRegistry(r *patterns.Registry) Option {
	return func(b *Builder) { b.registry = r }
}

// WithIterationCaps overrides the loop unrolling bounds. Non-positive
// values keep the defaults.
func WithIterationCaps(forCap, whileCap int) Option {
	return func(b *Builder) {
		if forCap > 0 {
			b.forCap = forCap
		}
		if whileCap > 0 {
			b.whileCap = whileCap
		}
	}
}

// WithLogger sets a structured logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(b *Builder) { b.hooks = hooks }
}

// WithClock overrides the timestamp source. Timestamps are display-only;
// tests pin them for reproducible fixtures.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// New creates a Builder with default caps and the built-in registry.
func New(opts ...Option) *Builder {
	b := &Builder{
		registry: patterns.NewRegistry(),
		forCap:   domain.DefaultForLoopCap,
		whileCap: domain.DefaultWhileLoopCap,
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build produces the ordered step list for the given source text.
// Identical inputs yield identical step lists (ids, types, order);
// only the display timestamps differ between calls.
func (b *Builder) Build(code, language string) []domain.Step {
	started := time.Now()
	provider := b.registry.Provider(language)

	t := &trace{
		provider: provider,
		env:      eval.Snapshot{},
		forCap:   b.forCap,
		whileCap: b.whileCap,
		now:      b.now,
		lines:    strings.Split(code, "\n"),
	}

	for i := 0; i < len(t.lines); {
		i = t.processLine(i)
	}

	b.logger.Debug("trace built",
		"language", language,
		"provider", provider.Language(),
		"lines", len(t.lines),
		"steps", len(t.steps),
	)
	if b.hooks.OnTraceBuilt != nil {
		b.hooks.OnTraceBuilt(domain.TraceEvent{
			Language: language,
			Steps:    len(t.steps),
			Elapsed:  time.Since(started),
		})
	}
	return t.steps
}

// trace is the per-build state of one walk over the source.
type trace struct {
	provider patterns.Provider
	lines    []string
	steps    []domain.Step
	env      eval.Snapshot
	forCap   int
	whileCap int
	now      func() time.Time

	// Name hints for explanations only; no real scoping is modeled.
	currentFunc  string
	currentClass string
}

// emit appends one step and returns its index.
func (t *trace) emit(stepType domain.StepType, lineIdx int, source, explanation string, details *domain.StepDetails) int {
	t.steps = append(t.steps, domain.Step{
		ID:          len(t.steps),
		Type:        stepType,
		LineNumber:  lineIdx + 1,
		SourceText:  strings.TrimSpace(source),
		Explanation: explanation,
		Details:     details,
		Timestamp:   t.now(),
	})
	return len(t.steps) - 1
}

// scope returns the informational scope label for new variables.
func (t *trace) scope() string {
	if t.currentFunc != "" {
		return t.currentFunc
	}
	return domain.GlobalScope
}

// processLine classifies the line at index i, emits its steps, and
// returns the index scanning should resume at. Categories are tried in a
// fixed priority order; unrecognized non-trivial lines fall through to a
// generic-expression step so every line yields at most one classification.
func (t *trace) processLine(i int) int {
	line := strings.TrimSpace(t.lines[i])
	p := t.provider

	switch {
	case line == "", p.IsBlockDelimiter(line):
		return i + 1

	case p.IsComment(line):
		t.emit(domain.StepComment, i, line, "Comment: explains the code, nothing is executed", nil)

	case p.IsImport(line):
		name := p.ExtractImport(line)
		t.emit(domain.StepImport, i, line,
			fmt.Sprintf("Import module '%s' to make its functionality available", name), nil)

	case p.IsClass(line):
		t.currentClass = p.ExtractClassName(line)
		t.emit(domain.StepClass, i, line,
			fmt.Sprintf("Define class '%s', a blueprint for objects", t.currentClass), nil)

	case p.IsConstructor(line):
		explanation := "Constructor: initializes a new object"
		if t.currentClass != "" {
			explanation = fmt.Sprintf("Constructor of class '%s': initializes a new object", t.currentClass)
		}
		t.emit(domain.StepConstructor, i, line, explanation, nil)

	case p.IsFunction(line):
		t.currentFunc = p.ExtractFunctionName(line)
		t.emit(domain.StepFunctionCall, i, line,
			fmt.Sprintf("Define function '%s'; its body runs when the function is called", t.currentFunc), nil)

	case p.IsVariableDeclaration(line):
		t.traceDeclaration(i, line)

	case p.IsForLoop(line):
		return t.traceForLoop(i, line)

	case p.IsWhileLoop(line):
		return t.traceWhileLoop(i, line)

	case p.IsElseIf(line), p.IsIf(line), p.IsElse(line):
		return t.traceBranchChain(i)

	case p.IsPrint(line):
		t.tracePrint(i, line)

	case p.IsInput(line):
		t.emit(domain.StepInput, i, line,
			"Read input from the user; the program waits for a value", nil)

	case p.IsReturn(line):
		t.traceReturn(i, line)

	case p.IsAssignment(line):
		t.traceAssignment(i, line)

	case p.IsMethodCall(line):
		t.traceCall(i, line)

	case p.IsTry(line):
		t.emit(domain.StepTry, i, line,
			"Start a try block: errors inside it can be caught below", nil)

	case p.IsCatch(line):
		caught := p.ExtractCatch(line)
		explanation := "Catch block: runs only if an error was raised in the try block"
		if caught != "" {
			explanation = fmt.Sprintf("Catch block: a raised error would be available as '%s'", caught)
		}
		t.emit(domain.StepCatch, i, line, explanation, nil)

	case p.IsThrow(line):
		operand := p.ExtractThrow(line)
		t.emit(domain.StepThrow, i, line,
			fmt.Sprintf("Raise an error (%s); normal flow stops until it is caught", operand),
			&domain.StepDetails{Error: &domain.ErrorDetail{Message: operand}})

	case p.IsSwitch(line):
		t.emit(domain.StepSwitchCase, i, line,
			"Switch: compares one value against several cases", nil)

	case p.IsCase(line):
		t.emit(domain.StepSwitchCase, i, line,
			"Case label: runs when the switch value matches", nil)

	case p.IsBreak(line):
		t.emit(domain.StepBreak, i, line,
			"Break: exit the enclosing loop or switch immediately", nil)

	case p.IsContinue(line):
		t.emit(domain.StepContinue, i, line,
			"Continue: skip to the next loop iteration", nil)

	case p.IsArrayAccess(line):
		if a, ok := p.ExtractArrayAccess(line); ok {
			idx := eval.FormatValue(eval.Evaluate(a.Index, t.env))
			t.emit(domain.StepArrayAccess, i, line,
				fmt.Sprintf("Access element %s of array '%s'", idx, a.Name), nil)
		} else {
			t.emit(domain.StepArrayAccess, i, line, "Access an array element", nil)
		}

	default:
		t.emit(domain.StepExpression, i, line,
			fmt.Sprintf("Execute expression: %s", line), nil)
	}

	return i + 1
}
