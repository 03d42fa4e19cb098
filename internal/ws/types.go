package ws

import (
	"encoding/base64"

	"github.com/quickpane/quickpane/backend/internal/pty"
)

// Message is one inbound command frame from the UI.
type Message struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	// Data carries base64-encoded input bytes for write commands.
	Data string `json:"data,omitempty"`
	// Spawn carries the session request for spawn commands.
	Spawn *pty.SpawnOptions `json:"spawn,omitempty"`
	Cols  uint16            `json:"cols,omitempty"`
	Rows  uint16            `json:"rows,omitempty"`
}

// Inbound message types.
const (
	MsgSpawn  = "spawn"
	MsgWrite  = "write"
	MsgResize = "resize"
	MsgKill   = "kill"
	MsgList   = "list"
	MsgPing   = "ping"
)

// eventFrame converts a session event into an outbound frame. Output bytes
// are base64-encoded so binary-safe data survives JSON transport.
func eventFrame(sessionID string, ev pty.Event) map[string]interface{} {
	frame := map[string]interface{}{
		"type":       string(ev.Type),
		"session_id": sessionID,
	}
	switch ev.Type {
	case pty.EventOutput:
		frame["data"] = base64.StdEncoding.EncodeToString(ev.Data)
	case pty.EventExit:
		frame["code"] = ev.Code
	case pty.EventError:
		frame["message"] = ev.Message
	}
	return frame
}
