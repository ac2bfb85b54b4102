package timeline

import (
	"sort"

	"github.com/edulab/stepwise/pkg/domain"
	"github.com/edulab/stepwise/pkg/eval"
)

// applyStep folds one step into the variable environment and output log,
// returning the updated log. The environment is mutated in place.
func applyStep(vars map[string]*domain.Variable, output []string, step domain.Step, index int) []string {
	if step.Details == nil {
		return output
	}

	// Sorted so multi-variable steps fold identically on every replay.
	names := make([]string, 0, len(step.Details.After))
	for name := range step.Details.After {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := step.Details.After[name]
		v, ok := vars[name]
		if !ok {
			v = &domain.Variable{Name: name, Scope: domain.GlobalScope}
			vars[name] = v
		}
		v.Value = value
		v.Type = eval.InferType(value)
		v.History = append(v.History, domain.VariableChange{Value: value, StepIndex: index})
	}

	if step.Type == domain.StepOutput {
		output = append(output, step.Details.Value)
	}

	return output
}

// replay folds the steps up to and including cursor, from scratch.
func replay(steps []domain.Step, cursor int) (map[string]*domain.Variable, []string) {
	vars := make(map[string]*domain.Variable)
	var output []string
	for i := 0; i <= cursor && i < len(steps); i++ {
		output = applyStep(vars, output, steps[i], i)
	}
	return vars, output
}
