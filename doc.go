/*
Package stepwise is a deterministic execution-trace engine for teaching how
code runs. It simulates a source snippet line by line, producing an ordered
list of explained steps, and replays that trace on an interactive timeline.

# Concept

Stepwise never executes the code it is given. A pattern provider classifies
each line (assignment, condition, loop, output...), a lightweight evaluator
computes arithmetic and comparisons over the simulated variables, and the
tracer unrolls loops and branches into a flat step list. The timeline
controller then turns that list into a scrubber: step forward, step back,
jump, and auto-play, with the variable state and program output derived
from the steps at every position.

# Key Features

  - Deterministic traces: the same snippet always yields the same steps.
  - Language tables for Python-style and C-style syntax, with a generic
    fallback so any input produces a usable trace.
  - Bounded simulation: loops are capped so hostile input cannot hang it.
  - Timeline playback with sessions that survive process restarts.

# Usage

	package main

	import (
		"fmt"

		"github.com/edulab/stepwise"
	)

	func main() {
		eng := stepwise.New()

		code := "x = 5\nprint(x)"
		for _, step := range eng.Trace(code, "python") {
			fmt.Printf("%2d %-12s %s\n", step.ID, step.Type, step.Explanation)
		}

		// Or drive it interactively:
		ctrl := eng.NewTimeline(code, "python")
		ctrl.StepForward()
		fmt.Println(ctrl.Snapshot().CurrentLine)
	}
*/
package stepwise
