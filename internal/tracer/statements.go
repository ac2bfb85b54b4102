package tracer

import (
	"fmt"

	"github.com/edulab/stepwise/pkg/domain"
	"github.com/edulab/stepwise/pkg/eval"
	"github.com/edulab/stepwise/pkg/patterns"
)

// traceDeclaration emits a declaration step, and an assignment step when
// an initializer is present.
func (t *trace) traceDeclaration(i int, line string) {
	d, ok := t.provider.ExtractVariable(line)
	if !ok {
		t.emit(domain.StepExpression, i, line, fmt.Sprintf("Execute expression: %s", line), nil)
		return
	}

	if !d.HasValue {
		// Declared without a value: the name exists but holds nothing yet.
		t.env[d.Name] = nil
		t.emit(domain.StepDeclaration, i, line,
			fmt.Sprintf("Declare variable '%s' (no value yet)", d.Name),
			&domain.StepDetails{After: map[string]any{d.Name: nil}})
		return
	}

	t.emit(domain.StepDeclaration, i, line,
		fmt.Sprintf("Declare variable '%s'", d.Name), nil)

	before := snapshotOf(t.env, d.Name)
	value := eval.Evaluate(d.Value, t.env)
	t.env[d.Name] = value
	t.emit(domain.StepAssignment, i, line,
		fmt.Sprintf("Assign %s to '%s' (%s)", eval.FormatValue(value), d.Name, eval.InferType(value)),
		&domain.StepDetails{
			Before: before,
			After:  map[string]any{d.Name: value},
			Result: value,
		})
}

// traceAssignment applies a plain assignment, increment/decrement or
// compound operator and emits one assignment step with before/after.
func (t *trace) traceAssignment(i int, line string) {
	a, ok := t.provider.ExtractAssignment(line)
	if !ok {
		t.emit(domain.StepExpression, i, line, fmt.Sprintf("Execute expression: %s", line), nil)
		return
	}

	before := snapshotOf(t.env, a.Name)
	value, explanation := t.applyAssignment(a)
	t.env[a.Name] = value

	t.emit(domain.StepAssignment, i, line, explanation,
		&domain.StepDetails{
			Before: before,
			After:  map[string]any{a.Name: value},
			Result: value,
		})
}

// applyAssignment computes the new value for an assignment statement and
// the learner-facing description of what happened.
func (t *trace) applyAssignment(a patterns.Assignment) (any, string) {
	old := t.env[a.Name]

	switch a.Operator {
	case "=":
		value := eval.Evaluate(a.Expr, t.env)
		return value, fmt.Sprintf("Assign %s to '%s' (%s)",
			eval.FormatValue(value), a.Name, eval.InferType(value))

	case "++", "--":
		base, _ := eval.Numeric(old)
		delta := 1.0
		verb := "Increment"
		if a.Operator == "--" {
			delta = -1.0
			verb = "Decrement"
		}
		var value any
		if n, isInt := old.(int); isInt || old == nil {
			if old == nil {
				n = 0
			}
			value = n + int(delta)
		} else {
			value = base + delta
		}
		return value, fmt.Sprintf("%s '%s' to %s", verb, a.Name, eval.FormatValue(value))

	default:
		// Compound operators: apply the arithmetic part to the old value.
		rhs := eval.Evaluate(a.Expr, t.env)
		op := a.Operator[:1]
		if value, ok := eval.Apply(op, old, rhs); ok {
			return value, fmt.Sprintf("Update '%s' with %s %s: now %s",
				a.Name, a.Operator, eval.FormatValue(rhs), eval.FormatValue(value))
		}
		// Operands did not combine; keep the right-hand side visible.
		return rhs, fmt.Sprintf("Update '%s' with %s %s",
			a.Name, a.Operator, eval.FormatValue(rhs))
	}
}

// tracePrint evaluates the printed argument and emits one output step.
func (t *trace) tracePrint(i int, line string) {
	arg := t.provider.ExtractPrint(line)
	value := eval.FormatValue(eval.Evaluate(arg, t.env))
	t.emit(domain.StepOutput, i, line,
		fmt.Sprintf("Print %q to the output", value),
		&domain.StepDetails{Value: value})
}

// traceReturn evaluates the operand (if any) and emits a return step.
func (t *trace) traceReturn(i int, line string) {
	operand := t.provider.ExtractReturn(line)

	where := ""
	if t.currentFunc != "" {
		where = fmt.Sprintf(" from '%s'", t.currentFunc)
	}

	if operand == "" {
		t.emit(domain.StepReturn, i, line,
			fmt.Sprintf("Return%s without a value", where), nil)
		return
	}

	value := eval.Evaluate(operand, t.env)
	t.emit(domain.StepReturn, i, line,
		fmt.Sprintf("Return %s%s", eval.FormatValue(value), where),
		&domain.StepDetails{Result: value})
}

// traceCall emits one descriptive step for a method or function call.
// Calls have no simulated side effects: no real call stack is modeled.
func (t *trace) traceCall(i int, line string) {
	m, ok := t.provider.ExtractMethodCall(line)
	if !ok {
		t.emit(domain.StepExpression, i, line, fmt.Sprintf("Execute expression: %s", line), nil)
		return
	}

	if m.Target != "" {
		t.emit(domain.StepMethodCall, i, line,
			fmt.Sprintf("Call method '%s' on '%s'", m.Method, m.Target), nil)
		return
	}
	t.emit(domain.StepFunctionCall, i, line,
		fmt.Sprintf("Call function '%s'", m.Method), nil)
}

// snapshotOf captures the prior value of one name for a before map.
// A name that never existed yields an empty map, not a nil entry.
func snapshotOf(env eval.Snapshot, name string) map[string]any {
	if v, ok := env[name]; ok {
		return map[string]any{name: v}
	}
	return map[string]any{}
}
