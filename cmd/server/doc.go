// Package main is the entry point for the quickpane backend server.
//
// The server is the engine behind the quickpane terminal UI: it owns PTY
// shell sessions, streams their output over a WebSocket, and persists
// preferences and recovery data for the UI process.
//
// Configuration:
//   - Environment variables (12-factor), see internal/config
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Default (127.0.0.1:8700, JSON logs)
//	./server
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: graceful shutdown, killing all remaining sessions
package main
