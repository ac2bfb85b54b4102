package domain

import "testing"

func TestStepCloneDeepCopiesDetails(t *testing.T) {
	step := Step{
		ID:          3,
		Type:        StepError,
		LineNumber:  7,
		SourceText:  "raise ValueError(\"boom\")",
		Explanation: "Raise an error",
		Details: &StepDetails{
			Before: map[string]any{"x": 1},
			After:  map[string]any{"x": 2},
			Error:  &ErrorDetail{Message: "boom", Code: "ValueError"},
		},
	}

	clone := step.Clone()
	clone.Details.After["x"] = 99
	clone.Details.Error.Message = "changed"

	if step.Details.After["x"] != 2 {
		t.Errorf("after-state leaked through the clone: %v", step.Details.After)
	}
	if step.Details.Error.Message != "boom" {
		t.Errorf("error detail leaked through the clone: %+v", step.Details.Error)
	}
	if clone.Type != StepError {
		t.Errorf("clone type = %s, want %s", clone.Type, StepError)
	}
}

func TestHasVariableDelta(t *testing.T) {
	var s Step
	if s.HasVariableDelta() {
		t.Error("step without details should report no delta")
	}
	s.Details = &StepDetails{After: map[string]any{"x": 1}}
	if !s.HasVariableDelta() {
		t.Error("step with an after-state should report a delta")
	}
}
