// Package monitoring provides Prometheus metrics for the backend.
//
// Metrics cover the HTTP surface, the PTY session registry, and the
// WebSocket stream. The collector is created once at server startup and
// injected into the components that record against it; components accept a
// nil collector so tests don't need a registry.
package monitoring
