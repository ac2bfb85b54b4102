package domain

import "time"

// PlaybackStatus describes the current mode of the timeline controller.
type PlaybackStatus string

const (
	StatusIdle    PlaybackStatus = "idle"    // No trace loaded
	StatusPaused  PlaybackStatus = "paused"  // Trace loaded, not auto-playing
	StatusPlaying PlaybackStatus = "playing" // Auto-play ticker active
	StatusDone    PlaybackStatus = "done"    // Cursor at the last step
)

// TimelineSnapshot is the UI-facing read model of a timeline.
// Every field is a deep copy; mutating a snapshot never affects the
// controller that produced it.
type TimelineSnapshot struct {
	Language         string               `json:"language"`
	Steps            []Step               `json:"steps"`
	CurrentStepIndex int                  `json:"current_step_index"`
	CurrentLine      int                  `json:"current_line"`
	Variables        map[string]*Variable `json:"variables"`
	Output           []string             `json:"output"`
	Status           PlaybackStatus       `json:"status"`
	IsExecuting      bool                 `json:"is_executing"`
	IsComplete       bool                 `json:"is_complete"`
	HasError         bool                 `json:"has_error"`
	IsAutoPlaying    bool                 `json:"is_auto_playing"`
	AutoPlayInterval time.Duration        `json:"auto_play_interval"`
}

// Clone returns a deep copy of the snapshot.
func (s *TimelineSnapshot) Clone() *TimelineSnapshot {
	out := *s
	out.Steps = make([]Step, len(s.Steps))
	for i, step := range s.Steps {
		out.Steps[i] = step.Clone()
	}
	out.Variables = make(map[string]*Variable, len(s.Variables))
	for name, v := range s.Variables {
		out.Variables[name] = v.Clone()
	}
	out.Output = make([]string, len(s.Output))
	copy(out.Output, s.Output)
	return &out
}

// CurrentStep returns the step under the cursor, or nil before the first
// forward step.
func (s *TimelineSnapshot) CurrentStep() *Step {
	if s.CurrentStepIndex < 0 || s.CurrentStepIndex >= len(s.Steps) {
		return nil
	}
	return &s.Steps[s.CurrentStepIndex]
}
