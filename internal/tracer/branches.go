package tracer

import (
	"fmt"
	"strings"

	"github.com/edulab/stepwise/pkg/domain"
	"github.com/edulab/stepwise/pkg/eval"
)

// traceBranchChain walks an if / else-if / else chain. Every branch with
// a condition gets exactly one condition-check step; every branch gets a
// branch-taken or branch-skipped step. Only the first satisfied branch's
// body is traced.
func (t *trace) traceBranchChain(i int) int {
	taken := false
	idx := i

	for {
		line := strings.TrimSpace(t.lines[idx])

		if rest := strings.TrimSpace(strings.TrimPrefix(line, "}")); isInlineBlock(rest) {
			t.traceInlineArms(idx, rest, taken)
			return idx + 1
		}

		isElse := t.provider.IsElse(line) && !t.provider.IsElseIf(line)

		result := true
		if !isElse {
			cond := t.provider.ExtractIfCondition(line)
			result = eval.EvaluateCondition(cond, t.env)
			t.emitConditionCheck(idx, line, cond, result)
		}

		branchTaken := !taken && result
		t.emitBranchOutcome(idx, line, isElse, branchTaken, taken)

		body, closer := t.blockBody(idx)
		if branchTaken {
			t.runBranchBody(body)
			taken = true
		}

		next, ok := t.chainContinuation(closer)
		if !ok {
			return next
		}
		idx = next

		if isElse {
			// Nothing can follow an else in the same chain.
			return t.afterBlock(i, closer)
		}
	}
}

// traceInlineArms walks a branch chain written on one line, such as
// `if (x > 0) { print("hi") } else { print("bye") }`. Each arm gets the
// same condition-check and outcome steps as a multi-line chain; a taken
// arm's body is unrolled like a loop body, with print statements traced.
func (t *trace) traceInlineArms(idx int, rest string, taken bool) {
	for rest != "" {
		arm, header, body, tail, ok := splitInlineArm(rest)
		if !ok {
			return
		}

		isElse := t.provider.IsElse(arm) && !t.provider.IsElseIf(arm)

		result := true
		if !isElse {
			cond := t.provider.ExtractIfCondition(header)
			result = eval.EvaluateCondition(cond, t.env)
			t.emitConditionCheck(idx, arm, cond, result)
		}

		branchTaken := !taken && result
		t.emitBranchOutcome(idx, arm, isElse, branchTaken, taken)

		if branchTaken {
			for _, stmt := range splitStatements(body) {
				if t.provider.IsPrint(stmt) {
					t.tracePrint(idx, stmt)
				}
			}
			taken = true
		}

		if isElse {
			return
		}
		rest = tail
	}
}

// runBranchBody traces a taken branch's statements with the full line
// classifier, so nested blocks inside the branch behave like top-level
// code.
func (t *trace) runBranchBody(body []bodyLine) {
	if len(body) == 0 {
		return
	}
	last := body[len(body)-1].idx
	for j := body[0].idx; j <= last; {
		j = t.processLine(j)
	}
}

// chainContinuation looks past a block's closer for an else-if or else
// that extends the chain. The second return reports whether the chain
// continues at the returned index.
func (t *trace) chainContinuation(closer int) (int, bool) {
	if closer >= len(t.lines) {
		return len(t.lines), false
	}

	line := strings.TrimSpace(t.lines[closer])

	// "} else {" and "elif x:" both sit on the closer line itself.
	if t.provider.IsElseIf(line) || t.provider.IsElse(line) {
		return closer, true
	}

	if line == "" || t.provider.IsBlockDelimiter(line) {
		// A bare "}"; the chain may continue on the next real line.
		if next, ok := t.nextNonBlank(closer + 1); ok {
			nl := strings.TrimSpace(t.lines[next])
			if t.provider.IsElseIf(nl) || t.provider.IsElse(nl) {
				return next, true
			}
		}
		return closer + 1, false
	}

	return closer, false
}

func (t *trace) emitBranchOutcome(i int, line string, isElse, branchTaken, alreadyTaken bool) {
	switch {
	case branchTaken && isElse:
		t.emit(domain.StepBranchTaken, i, line,
			"No earlier branch matched, taking the else branch", nil)
	case branchTaken:
		t.emit(domain.StepBranchTaken, i, line,
			"Condition is true, entering this branch", nil)
	case alreadyTaken:
		t.emit(domain.StepBranchSkipped, i, line,
			"An earlier branch already ran, skipping this one", nil)
	default:
		t.emit(domain.StepBranchSkipped, i, line,
			fmt.Sprintf("Condition is false, skipping: %s", line), nil)
	}
}
