/*
Package observability provides Prometheus metrics for the stepwise engine.

Metrics attach to the engine through domain.LifecycleHooks, so the core
packages stay free of instrumentation concerns.
*/
package observability
