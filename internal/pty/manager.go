package pty

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"go.uber.org/zap"

	"github.com/quickpane/quickpane/backend/internal/monitoring"
	"github.com/quickpane/quickpane/backend/internal/shared/id"
)

// Manager owns all live sessions. Structural mutation of the registry is
// serialized; per-session I/O handles are independent of the registry lock.
// Construct one per application instance and pass it explicitly to call
// sites; there is no singleton.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	limit    int
	logger   *zap.Logger
	metrics  *monitoring.Metrics
}

// NewManager creates a session manager. metrics may be nil.
func NewManager(logger *zap.Logger, metrics *monitoring.Metrics) *Manager {
	return newManagerWithLimit(logger, metrics, MaxSessions)
}

func newManagerWithLimit(logger *zap.Logger, metrics *monitoring.Metrics, limit int) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		limit:    limit,
		logger:   logger,
		metrics:  metrics,
	}
}

// Spawn validates the request, allocates a PTY pair, starts the shell on the
// slave side and a reader goroutine on the master side, and registers the
// session under a fresh identifier. Any failure aborts before registration;
// no partial session is ever visible.
func (m *Manager) Spawn(opts SpawnOptions, sink Sink) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.limit {
		return "", newError(KindResourceLimit, "session limit reached (%d)", m.limit)
	}

	shell := resolveShell(opts.Command)
	if err := ValidateShell(shell); err != nil {
		return "", err
	}

	args := opts.Args
	if len(args) == 0 {
		// Login shell, so interactive startup files load.
		args = []string{"-l"}
	}

	cwd, err := resolveCwd(opts.Cwd)
	if err != nil {
		return "", err
	}

	cmd := exec.Command(shell, args...)
	cmd.Dir = cwd
	cmd.Env = append(os.Environ(), "TERM="+TermType)
	for key, value := range FilterEnv(opts.Env, m.logger) {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	master, slave, err := pty.Open()
	if err != nil {
		return "", wrapError(KindSystem, err, "failed to allocate pty")
	}
	if err := pty.Setsize(master, &pty.Winsize{Rows: opts.Rows, Cols: opts.Cols}); err != nil {
		master.Close()
		slave.Close()
		return "", wrapError(KindSystem, err, "failed to size pty")
	}

	cmd.Stdin = slave
	cmd.Stdout = slave
	cmd.Stderr = slave
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true, Setctty: true}

	if err := cmd.Start(); err != nil {
		master.Close()
		slave.Close()
		return "", wrapError(KindSpawn, err, "failed to spawn %s", shell)
	}

	// Release our slave reference now that the child holds it, so the master
	// observes end-of-stream exactly when the last slave holder exits.
	if err := slave.Close(); err != nil {
		m.logger.Warn("closing pty slave failed", zap.Error(err))
	}

	session := &Session{
		id:         string(id.NewSessionID()),
		shell:      shell,
		cmd:        cmd,
		master:     master,
		sink:       sink,
		logger:     m.logger,
		done:       make(chan struct{}),
		readerDone: make(chan struct{}),
	}
	go session.monitor()
	go session.readLoop()

	m.sessions[session.id] = session
	if m.metrics != nil {
		m.metrics.SessionSpawned(len(m.sessions))
	}
	m.logger.Info("pty session spawned",
		zap.String("session_id", session.id),
		zap.String("shell", shell),
		zap.Int("pid", cmd.Process.Pid))
	return session.id, nil
}

// Write sends data to a session's stdin. Callers serialize their own writes;
// two interleaved Write calls on one session may interleave bytes.
func (m *Manager) Write(sessionID string, data []byte) error {
	session, err := m.lookup(sessionID)
	if err != nil {
		return err
	}
	return session.write(data)
}

// Resize changes a session's terminal dimensions.
func (m *Manager) Resize(sessionID string, cols, rows uint16) error {
	session, err := m.lookup(sessionID)
	if err != nil {
		return err
	}
	return session.resize(cols, rows)
}

// Kill removes the session from the registry, then signals and reaps the
// process. Removal happens first, so a concurrent lookup can never observe a
// session mid-teardown. Signaling an already-dead process is tolerated.
func (m *Manager) Kill(sessionID string) error {
	m.mu.Lock()
	session, ok := m.sessions[sessionID]
	if !ok {
		m.mu.Unlock()
		return newError(KindSessionNotFound, "session not found: %s", sessionID)
	}
	delete(m.sessions, sessionID)
	remaining := len(m.sessions)
	m.mu.Unlock()

	session.terminate()
	if m.metrics != nil {
		m.metrics.SessionKilled(remaining)
	}
	m.logger.Info("pty session killed", zap.String("session_id", sessionID))
	return nil
}

// List snapshots every registered session with a non-blocking liveness poll.
// Exited-but-unkilled sessions stay listed until an explicit Kill.
func (m *Manager) List() []SessionInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]SessionInfo, 0, len(m.sessions))
	for _, session := range m.sessions {
		infos = append(infos, SessionInfo{
			ID:      session.id,
			PID:     session.PID(),
			IsAlive: session.IsAlive(),
		})
	}
	return infos
}

// Count returns the number of registered sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close tears down every remaining session with the same logic as Kill.
// Failures are logged, never propagated; there is no caller left to receive
// them.
func (m *Manager) Close() error {
	m.mu.Lock()
	remaining := make([]*Session, 0, len(m.sessions))
	for sessionID, session := range m.sessions {
		remaining = append(remaining, session)
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	for _, session := range remaining {
		session.terminate()
		m.logger.Info("pty session killed on shutdown", zap.String("session_id", session.id))
	}
	if m.metrics != nil && len(remaining) > 0 {
		m.metrics.SessionsActive(0)
	}
	return nil
}

func (m *Manager) lookup(sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, newError(KindSessionNotFound, "session not found: %s", sessionID)
	}
	return session, nil
}

func resolveShell(command *string) string {
	if command != nil && *command != "" {
		return *command
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return DefaultShell
}

func resolveCwd(cwd *string) (string, error) {
	if cwd != nil && *cwd != "" {
		return ValidateCwd(*cwd)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", wrapError(KindValidation, err, "cannot resolve home directory")
	}
	return ValidateCwd(home)
}
