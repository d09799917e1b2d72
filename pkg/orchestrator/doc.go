// Package orchestrator wires the catalog → answer record → substitution engine
// pipeline, providing dependency injection friendly helpers for consumers that
// prefer a single entry point.
package orchestrator
