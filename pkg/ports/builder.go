package ports

import "github.com/edulab/stepwise/pkg/domain"

// TraceBuilder defines how source text becomes an ordered step list.
// Implementations must be deterministic: identical inputs yield identical
// step sequences. Build never fails; unclassifiable lines degrade to
// generic steps.
type TraceBuilder interface {
	Build(code, language string) []domain.Step
}
