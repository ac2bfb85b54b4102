/*
Package ports defines the driven ports (interfaces) for the stepwise engine.

These interfaces decouple the core logic from external implementations,
allowing the engine to work with various trace builders and storage backends.

# Key Interfaces

  - TraceBuilder: Turns raw source text into an ordered step list.
  - TimelineStore: Persists timeline snapshots so sessions survive restarts.
*/
package ports
