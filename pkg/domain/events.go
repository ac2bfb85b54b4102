package domain

import "time"

// TraceEvent describes a completed trace build.
type TraceEvent struct {
	Language string        `json:"language"`
	Steps    int           `json:"steps"`
	Elapsed  time.Duration `json:"elapsed"`
}

// StepEvent describes a cursor landing on a step during playback.
type StepEvent struct {
	Index int   `json:"index"`
	Step  *Step `json:"step"`
}

// LifecycleHooks defines optional callbacks for engine observability.
// Nil hooks are skipped; hooks run synchronously on the caller's goroutine
// and must not call back into the controller.
type LifecycleHooks struct {
	OnTraceBuilt      func(TraceEvent)
	OnStep            func(StepEvent)
	OnPlayStateChange func(playing bool)
}
