package domain

// VariableChange is one entry in a variable's mutation history.
type VariableChange struct {
	Value     any `json:"value"`
	StepIndex int `json:"step_index"`
}

// Variable tracks the simulated state of one name across the trace.
// Scope is informational only; no real scoping is modeled.
type Variable struct {
	Name    string           `json:"name"`
	Value   any              `json:"value"`
	Type    string           `json:"type"`
	Scope   string           `json:"scope"`
	History []VariableChange `json:"history"`
}

// Clone returns a deep copy of the variable.
func (v *Variable) Clone() *Variable {
	out := *v
	out.History = make([]VariableChange, len(v.History))
	copy(out.History, v.History)
	return &out
}
