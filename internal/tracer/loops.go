package tracer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/edulab/stepwise/pkg/domain"
	"github.com/edulab/stepwise/pkg/eval"
	"github.com/edulab/stepwise/pkg/patterns"
)

// traceForLoop unrolls a for-loop into steps, bounded by the for cap.
func (t *trace) traceForLoop(i int, line string) int {
	loop, ok := t.provider.ExtractForLoop(line)
	if !ok {
		t.emit(domain.StepExpression, i, line, fmt.Sprintf("Execute expression: %s", line), nil)
		return i + 1
	}

	body, closer := t.blockBody(i)

	if loop.Style == patterns.ForCStyle {
		t.runCStyleLoop(i, line, loop, body, t.forCap)
	} else {
		t.runIteratorLoop(i, line, loop, body, t.forCap)
	}

	return t.afterBlock(i, closer)
}

// traceWhileLoop unrolls a while-loop, bounded by the (tighter) while cap.
func (t *trace) traceWhileLoop(i int, line string) int {
	cond := t.provider.ExtractWhileCondition(line)
	body, closer := t.blockBody(i)

	iter := 0
	for {
		result := eval.EvaluateCondition(cond, t.env)
		if iter >= t.whileCap && result {
			t.emitCapReached(i, line, iter)
			break
		}
		t.emitConditionCheck(i, line, cond, result)
		if !result {
			t.emitLoopExit(i, line, cond)
			break
		}
		iter++
		t.emit(domain.StepIteration, i, line,
			fmt.Sprintf("While-loop iteration %d", iter), nil)
		t.runLoopBody(body)
	}

	return t.afterBlock(i, closer)
}

// runCStyleLoop simulates `for (init; condition; update)`.
func (t *trace) runCStyleLoop(i int, line string, loop patterns.ForLoop, body []bodyLine, limit int) {
	t.applyLoopInit(i, line, loop.Init)

	iter := 0
	for {
		result := eval.EvaluateCondition(loop.Condition, t.env)
		if iter >= limit && result {
			t.emitCapReached(i, line, iter)
			break
		}
		t.emitConditionCheck(i, line, loop.Condition, result)
		if !result {
			t.emitLoopExit(i, line, loop.Condition)
			break
		}
		iter++
		t.emit(domain.StepIteration, i, line,
			fmt.Sprintf("Loop iteration %d", iter), nil)
		t.runLoopBody(body)
		t.applyLoopUpdate(i, line, loop.Update)
	}
}

// runIteratorLoop simulates `for x in xs`. When the iterable's elements
// are recognizable (an array literal or a range call) the loop runs once
// per element; otherwise it runs up to the cap with synthesized items,
// biasing the simulation toward showing steps.
func (t *trace) runIteratorLoop(i int, line string, loop patterns.ForLoop, body []bodyLine, limit int) {
	items, known := t.iterableItems(loop.Iterable)

	iter := 0
	for {
		hasNext := true
		if known {
			hasNext = iter < len(items)
		}
		if iter >= limit && hasNext {
			t.emitCapReached(i, line, iter)
			break
		}
		t.emitConditionCheck(i, line, loop.Condition, hasNext)
		if !hasNext {
			t.emit(domain.StepExpression, i, line,
				fmt.Sprintf("No more items in %s, exiting loop", loop.Iterable), nil)
			break
		}

		var item any
		if known {
			item = items[iter]
		} else {
			item = fmt.Sprintf("item %d", iter+1)
		}
		iter++
		t.env[loop.Var] = item
		t.emit(domain.StepIteration, i, line,
			fmt.Sprintf("Iteration %d: '%s' = %s", iter, loop.Var, eval.FormatValue(item)),
			&domain.StepDetails{After: map[string]any{loop.Var: item}})

		t.runLoopBody(body)

		t.emit(domain.StepLoopUpdate, i, line,
			fmt.Sprintf("Advance '%s' to the next item", loop.Var), nil)
	}
}

// runLoopBody emits steps for a loop body iteration. Only print-style
// lines are unrolled into output steps; other body statements are not
// re-evaluated per iteration.
func (t *trace) runLoopBody(body []bodyLine) {
	for _, bl := range body {
		if t.provider.IsPrint(bl.text) {
			t.tracePrint(bl.idx, bl.text)
		}
	}
}

// applyLoopInit executes the loop initializer, if it parses as an
// assignment or declaration, and emits the loop-init step.
func (t *trace) applyLoopInit(i int, line, init string) {
	if init == "" {
		return
	}

	name, value, ok := t.parseInit(init)
	if !ok {
		t.emit(domain.StepLoopInit, i, line,
			fmt.Sprintf("Initialize loop: %s", init), nil)
		return
	}

	before := snapshotOf(t.env, name)
	t.env[name] = value
	t.emit(domain.StepLoopInit, i, line,
		fmt.Sprintf("Initialize loop counter '%s' to %s", name, eval.FormatValue(value)),
		&domain.StepDetails{
			Before: before,
			After:  map[string]any{name: value},
		})
}

// parseInit understands `i = 0` and `let i = 0` style initializers.
func (t *trace) parseInit(init string) (string, any, bool) {
	if d, ok := t.provider.ExtractVariable(init); ok && d.HasValue {
		return d.Name, eval.Evaluate(d.Value, t.env), true
	}
	if a, ok := t.provider.ExtractAssignment(init); ok && a.Operator == "=" {
		return a.Name, eval.Evaluate(a.Expr, t.env), true
	}
	return "", nil, false
}

// applyLoopUpdate executes the loop update clause and emits its step.
func (t *trace) applyLoopUpdate(i int, line, update string) {
	if update == "" {
		return
	}

	a, ok := t.provider.ExtractAssignment(update)
	if !ok {
		t.emit(domain.StepLoopUpdate, i, line,
			fmt.Sprintf("Update loop: %s", update), nil)
		return
	}

	before := snapshotOf(t.env, a.Name)
	value, _ := t.applyAssignment(a)
	t.env[a.Name] = value
	t.emit(domain.StepLoopUpdate, i, line,
		fmt.Sprintf("Update loop counter: '%s' is now %s", a.Name, eval.FormatValue(value)),
		&domain.StepDetails{
			Before: before,
			After:  map[string]any{a.Name: value},
		})
}

func (t *trace) emitConditionCheck(i int, line, cond string, result bool) {
	t.emit(domain.StepConditionCheck, i, line,
		fmt.Sprintf("Check condition (%s): %t", cond, result),
		&domain.StepDetails{Condition: cond, Result: result})
}

func (t *trace) emitLoopExit(i int, line, cond string) {
	t.emit(domain.StepExpression, i, line,
		fmt.Sprintf("Condition (%s) is false, exiting loop", cond), nil)
}

// emitCapReached marks a loop stopped by the simulation bound, so the
// learner is not misled into thinking it terminated naturally.
func (t *trace) emitCapReached(i int, line string, iterations int) {
	t.emit(domain.StepExpression, i, line,
		fmt.Sprintf("Loop paused after %d iterations (simulation limit); it would keep running", iterations), nil)
}

// afterBlock decides where scanning resumes once a block has been
// simulated. The closer line itself is consumed when it is pure
// punctuation; anything else is a real statement to process.
func (t *trace) afterBlock(h, closer int) int {
	if closer >= len(t.lines) {
		return len(t.lines)
	}
	if closer == h {
		return h + 1
	}
	trimmed := strings.TrimSpace(t.lines[closer])
	if trimmed == "" || t.provider.IsBlockDelimiter(trimmed) {
		return closer + 1
	}
	return closer
}

var rangeCallRe = regexp.MustCompile(`^range\s*\(\s*(-?\d+)\s*(?:,\s*(-?\d+)\s*)?\)$`)

// iterableItems recovers the concrete elements of an iterable expression
// when possible: array literals and python range() calls. Everything else
// is unknown.
func (t *trace) iterableItems(iterable string) ([]any, bool) {
	expr := strings.TrimSpace(iterable)

	if m := rangeCallRe.FindStringSubmatch(expr); m != nil {
		start := 0
		end, _ := strconv.Atoi(m[1])
		if m[2] != "" {
			start, _ = strconv.Atoi(m[1])
			end, _ = strconv.Atoi(m[2])
		}
		var items []any
		for v := start; v < end; v++ {
			items = append(items, v)
		}
		return items, true
	}

	// A variable may hold an array literal's display text.
	value := eval.Evaluate(expr, t.env)
	if s, ok := value.(string); ok && strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		inner := strings.TrimSpace(s[1 : len(s)-1])
		if inner == "" {
			return nil, true
		}
		var items []any
		for _, part := range splitTopLevel(inner, ',') {
			items = append(items, eval.Evaluate(part, t.env))
		}
		return items, true
	}

	return nil, false
}

// splitTopLevel splits on sep outside quotes, brackets and parentheses.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		case c == sep && depth == 0:
			out = append(out, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	out = append(out, strings.TrimSpace(s[start:]))
	return out
}
