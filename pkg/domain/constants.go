package domain

import "time"

const (
	// DefaultForLoopCap bounds how many iterations of a for-loop are
	// unrolled into steps.
	DefaultForLoopCap = 10

	// DefaultWhileLoopCap bounds how many iterations of a while-loop are
	// unrolled into steps.
	DefaultWhileLoopCap = 5

	// DefaultAutoPlayInterval is the tick period for auto-play.
	DefaultAutoPlayInterval = time.Second

	// MinAutoPlayInterval and MaxAutoPlayInterval clamp SetSpeed input.
	MinAutoPlayInterval = 100 * time.Millisecond
	MaxAutoPlayInterval = 10 * time.Second

	// GlobalScope is the informational scope label for top-level variables.
	GlobalScope = "global"
)
