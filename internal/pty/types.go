package pty

// Policy constants. These are fixed policy, not runtime configuration.
const (
	// MaxSessions caps the number of concurrently live sessions.
	MaxSessions = 32

	// ReadBufferSize bounds a single read from the PTY master, which in turn
	// bounds per-event payload size and latency.
	ReadBufferSize = 4096

	// TermType is set in every child's environment.
	TermType = "xterm-256color"

	// DefaultShell is the fallback when neither the request nor $SHELL names one.
	DefaultShell = "/bin/zsh"
)

// SpawnOptions describes a requested session.
type SpawnOptions struct {
	// Command is the shell to run. Nil resolves to $SHELL, then DefaultShell.
	Command *string `json:"command,omitempty"`
	// Args are passed verbatim. Empty means login shell (-l).
	Args []string `json:"args,omitempty"`
	// Cwd is the working directory. Nil resolves to the user's home.
	Cwd *string `json:"cwd,omitempty"`
	// Env holds additional environment variables, filtered by the deny-list.
	Env map[string]string `json:"env,omitempty"`
	// Cols and Rows size the terminal at creation.
	Cols uint16 `json:"cols"`
	Rows uint16 `json:"rows"`
}

// EventType discriminates session events.
type EventType string

const (
	EventOutput EventType = "output"
	EventExit   EventType = "exit"
	EventError  EventType = "error"
)

// Event is one item in a session's ordered output stream. After an Exit or
// Error event no further events are emitted for that session.
type Event struct {
	Type EventType `json:"type"`
	// Data carries raw PTY output for EventOutput.
	Data []byte `json:"data,omitempty"`
	// Code is the exit status for EventExit. The reader cannot observe the
	// real status, so it is always nil today.
	Code *int `json:"code,omitempty"`
	// Message describes the failure for EventError.
	Message string `json:"message,omitempty"`
}

// Sink receives a session's events. It may be invoked from the session's
// reader goroutine and must not assume any particular delivery thread. A
// panicking sink is tolerated; the event is dropped.
type Sink func(Event)

// SessionInfo is the public snapshot of a registered session.
type SessionInfo struct {
	ID      string  `json:"id"`
	PID     *uint32 `json:"pid,omitempty"`
	IsAlive bool    `json:"is_alive"`
}
