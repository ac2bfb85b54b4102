package timeline

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/edulab/stepwise/pkg/domain"
)

func genSteps(t *rapid.T) []domain.Step {
	n := rapid.IntRange(0, 40).Draw(t, "n")
	steps := make([]domain.Step, n)
	for i := range steps {
		switch rapid.IntRange(0, 2).Draw(t, "kind") {
		case 0:
			name := rapid.SampledFrom([]string{"x", "y", "z"}).Draw(t, "name")
			value := rapid.IntRange(-5, 5).Draw(t, "value")
			steps[i] = domain.Step{
				ID:   i,
				Type: domain.StepAssignment,
				Details: &domain.StepDetails{
					After: map[string]any{name: value},
				},
			}
		case 1:
			steps[i] = domain.Step{
				ID:   i,
				Type: domain.StepOutput,
				Details: &domain.StepDetails{
					Value: rapid.StringMatching(`[a-z]{0,4}`).Draw(t, "out"),
				},
			}
		default:
			steps[i] = domain.Step{ID: i, Type: domain.StepComment}
		}
	}
	return steps
}

// The incremental fold used by StepForward must agree with the
// from-scratch replay used by StepBackward and JumpTo at every prefix,
// or the derived state would depend on how the cursor got there.
func TestReplayMatchesIncrementalFold(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		steps := genSteps(rt)

		vars := make(map[string]*domain.Variable)
		var output []string
		for i, s := range steps {
			output = applyStep(vars, output, s, i)

			replayVars, replayOutput := replay(steps, i)
			if !reflect.DeepEqual(vars, replayVars) {
				rt.Fatalf("variables diverge at step %d:\nincremental %#v\nreplay      %#v", i, vars, replayVars)
			}
			if !reflect.DeepEqual(output, replayOutput) {
				rt.Fatalf("output diverges at step %d: %v vs %v", i, output, replayOutput)
			}
		}
	})
}

func TestReplayIsPure(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		steps := genSteps(rt)
		cursor := rapid.IntRange(-1, len(steps)).Draw(rt, "cursor")

		v1, o1 := replay(steps, cursor)
		v2, o2 := replay(steps, cursor)
		if !reflect.DeepEqual(v1, v2) || !reflect.DeepEqual(o1, o2) {
			rt.Fatal("two replays of the same prefix differ")
		}
	})
}
