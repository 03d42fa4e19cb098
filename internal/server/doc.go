// Package server wires the backend together: configuration, logging,
// metrics, the PTY session manager, the preference and recovery stores, and
// the gin router with its REST and WebSocket routes. Shutdown tears down
// every remaining PTY session.
package server
