/*
Package timeline owns playback over a built trace: a cursor into the step
list, the variable environment and output log derived from it, and the
auto-play loop.

The derived state is a pure fold over the steps before the cursor. Moving
forward applies one step incrementally; moving backward or jumping replays
the fold from the start, so the derived state can never drift from the
trace.

A Controller is safe for concurrent use. Snapshots are deep copies and
never alias controller state.
*/
package timeline
