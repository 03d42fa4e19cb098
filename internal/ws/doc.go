// Package ws exposes the PTY session manager to the UI over a WebSocket.
//
// The UI opens one connection to /stream and sends JSON command frames
// (spawn, write, resize, kill, list, ping). Spawn binds the connection as
// the event sink for the new session; output, exit and error events are
// pushed as JSON frames tagged with the session ID. The layer is a thin
// translation: all logic lives in the pty package.
//
// Closing the connection does not kill sessions; they stay registered until
// an explicit kill or server shutdown.
package ws
