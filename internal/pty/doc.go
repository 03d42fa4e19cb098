// Package pty manages interactive pseudo-terminal sessions.
//
// Each session runs one shell process attached to a PTY. The manager owns the
// mapping from session identifiers to live sessions, streams output to a
// caller-supplied sink from a per-session reader goroutine, and enforces the
// security policy (shell allow-list, working directory canonicalization,
// environment deny-list) before any OS resource is allocated.
//
// Key Components:
//   - Manager: session registry plus the spawn/write/resize/kill/list API
//   - Session: per-session resource bundle (writer, process, PTY master)
//   - Reader loop: drains PTY output into ordered events until exit or error
//   - Policy: pure validation functions applied before spawn
//
// Example Usage:
//
//	manager := pty.NewManager(logger, nil)
//	defer manager.Close()
//
//	id, err := manager.Spawn(pty.SpawnOptions{Cols: 80, Rows: 24}, func(ev pty.Event) {
//	    // deliver to the UI
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	manager.Write(id, []byte("ls -la\r"))
//	manager.Resize(id, 120, 40)
//	manager.Kill(id)
package pty
