package middleware

import "github.com/edulab/stepwise/pkg/ports"

// Middleware allows wrapping a TimelineStore to add behavior.
type Middleware func(ports.TimelineStore) ports.TimelineStore
