package pty

import (
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"go.uber.org/zap"
)

// readerDrainTimeout bounds how long teardown waits for the reader to
// observe end-of-stream. An orphaned grandchild can hold the slave open
// indefinitely; teardown must not hang on it.
const readerDrainTimeout = time.Second

// Session bundles the resources of one running shell. The PTY master file is
// the single owner of the underlying descriptor; reads (reader goroutine),
// writes (input) and resizes are three views of it. The master stays open for
// the whole session lifetime, since closing it would fabricate end-of-stream
// for the reader.
type Session struct {
	id     string
	shell  string
	cmd    *exec.Cmd
	master *os.File
	sink   Sink
	logger *zap.Logger

	// done is closed by the monitor goroutine once the process is reaped.
	done chan struct{}
	// readerDone is closed when the reader loop returns.
	readerDone chan struct{}
}

// PID returns the shell's process id, if known.
func (s *Session) PID() *uint32 {
	if s.cmd.Process == nil {
		return nil
	}
	pid := uint32(s.cmd.Process.Pid)
	return &pid
}

// IsAlive reports whether the process has been reaped, without blocking.
func (s *Session) IsAlive() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// write sends input to the shell's stdin. The master is an unbuffered file,
// so a completed write is already flushed.
func (s *Session) write(data []byte) error {
	n, err := s.master.Write(data)
	if err != nil {
		return wrapError(KindIO, err, "write to session %s failed", s.id)
	}
	if n < len(data) {
		return newError(KindIO, "short write to session %s: %d of %d bytes", s.id, n, len(data))
	}
	return nil
}

// resize changes the terminal dimensions. Independent of the reader and
// writer; no additional locking needed.
func (s *Session) resize(cols, rows uint16) error {
	if err := pty.Setsize(s.master, &pty.Winsize{Rows: rows, Cols: cols}); err != nil {
		return wrapError(KindResize, err, "resize of session %s failed", s.id)
	}
	return nil
}

// terminate signals the process and waits for the monitor goroutine to reap
// it, then releases the master. Signaling an already-dead process is
// tolerated and only logged. Returns once no zombie remains.
func (s *Session) terminate() {
	if s.cmd.Process != nil {
		if err := s.cmd.Process.Kill(); err != nil {
			s.logger.Debug("kill signal failed, process likely exited",
				zap.String("session_id", s.id), zap.Error(err))
		}
	}
	<-s.done
	// Let the reader observe EIO and emit its exit event before the master
	// goes away, so teardown never turns a clean exit into a read error.
	select {
	case <-s.readerDone:
	case <-time.After(readerDrainTimeout):
		s.logger.Debug("reader still draining at teardown",
			zap.String("session_id", s.id))
	}
	if err := s.master.Close(); err != nil {
		s.logger.Debug("closing pty master failed",
			zap.String("session_id", s.id), zap.Error(err))
	}
}

// monitor reaps the process as soon as it exits so no zombie lingers. Exit
// does not remove the session from the registry; the record stays queryable
// until an explicit kill.
func (s *Session) monitor() {
	err := s.cmd.Wait()
	close(s.done)
	if err != nil {
		s.logger.Debug("session process exited",
			zap.String("session_id", s.id), zap.Error(err))
		return
	}
	s.logger.Debug("session process exited", zap.String("session_id", s.id))
}
