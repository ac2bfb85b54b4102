// Package domain contains the core value types of the stepwise engine:
// the Step record, the Variable state model, the TimelineSnapshot read
// model, and the sentinel errors shared across adapters.
//
// Everything here is plain data. The package has no dependencies and no
// behavior beyond deep copying, so every layer (tracer, timeline, stores,
// HTTP) can share these types without import cycles.
package domain
