package domain

import "time"

// StepType classifies what a simulated statement did.
type StepType string

const (
	StepDeclaration    StepType = "declaration"
	StepAssignment     StepType = "assignment"
	StepConditionCheck StepType = "condition-check"
	StepLoopInit       StepType = "loop-init"
	StepIteration      StepType = "iteration"
	StepLoopUpdate     StepType = "loop-update"
	StepFunctionCall   StepType = "function-call"
	StepMethodCall     StepType = "method-call"
	StepReturn         StepType = "return"
	StepOutput         StepType = "output"
	StepInput          StepType = "input"
	StepComment        StepType = "comment"
	StepImport         StepType = "import"
	StepClass          StepType = "class"
	StepConstructor    StepType = "constructor"
	StepTry            StepType = "try"
	StepCatch          StepType = "catch"
	StepThrow          StepType = "throw"
	StepBranchTaken    StepType = "branch-taken"
	StepBranchSkipped  StepType = "branch-skipped"
	StepSwitchCase     StepType = "switch-case"
	StepBreak          StepType = "break"
	StepContinue       StepType = "continue"
	StepArrayAccess    StepType = "array-access"
	StepExpression     StepType = "generic-expression"
	StepError          StepType = "error"
)

// Step is an immutable record of one simulated statement.
// Insertion order (ID) is the only meaningful order; Timestamp is display-only.
type Step struct {
	// ID is a monotonically increasing sequence number within one trace.
	ID int `json:"id"`

	// Type is the statement category this line was classified as.
	Type StepType `json:"type"`

	// LineNumber is the 1-based source line the step was produced from.
	LineNumber int `json:"line_number"`

	// SourceText is the trimmed source snippet that produced the step.
	SourceText string `json:"source_text"`

	// Explanation is the learner-facing description of what happened.
	Explanation string `json:"explanation"`

	// Details carries the optional variable/condition/output payload.
	Details *StepDetails `json:"details,omitempty"`

	// Timestamp records creation time. Never used for ordering.
	Timestamp time.Time `json:"timestamp"`
}

// StepDetails is the optional payload attached to a Step.
type StepDetails struct {
	// Before holds variable values prior to the step, for mutating steps.
	Before map[string]any `json:"before,omitempty"`

	// After holds variable values the step wrote. The timeline folds
	// After maps (in step order) to derive the variable environment.
	After map[string]any `json:"after,omitempty"`

	// Condition is the raw condition text for condition-check steps.
	Condition string `json:"condition,omitempty"`

	// Result is the evaluated value (condition boolean, return value...).
	Result any `json:"result,omitempty"`

	// Value is the printed text for output steps.
	Value string `json:"value,omitempty"`

	// Error describes a simulated failure, present on error steps.
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a simulated error condition.
type ErrorDetail struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// HasVariableDelta reports whether the step mutates any variable.
func (s *Step) HasVariableDelta() bool {
	return s.Details != nil && len(s.Details.After) > 0
}

// Clone returns a deep copy of the step, so snapshots handed to the UI
// can never alias the trace owned by the controller.
func (s Step) Clone() Step {
	out := s
	if s.Details != nil {
		d := *s.Details
		d.Before = cloneValueMap(s.Details.Before)
		d.After = cloneValueMap(s.Details.After)
		if s.Details.Error != nil {
			e := *s.Details.Error
			d.Error = &e
		}
		out.Details = &d
	}
	return out
}

func cloneValueMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
