package pty

import (
	"errors"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// readLoop continuously drains PTY output into events. It terminates on
// end-of-stream, on EIO (the documented signal that the last slave holder
// exited), or on any other read error, emitting exactly one terminal event.
// There is no cancellation token; kill makes the read observe EIO.
func (s *Session) readLoop() {
	defer close(s.readerDone)
	defer func() {
		if r := recover(); r != nil {
			// No event here: emitting might panic again. The loop just ends.
			s.logger.Error("pty reader panicked",
				zap.String("session_id", s.id), zap.Any("panic", r))
		}
	}()

	buf := make([]byte, ReadBufferSize)
	for {
		n, err := s.master.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			s.emit(Event{Type: EventOutput, Data: data})
		}
		if err == nil {
			if n == 0 {
				// Zero-length read: true end-of-stream.
				s.emit(Event{Type: EventExit})
				return
			}
			continue
		}
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, unix.EIO), errors.Is(err, os.ErrClosed):
			// EIO is how Linux and macOS report a fully closed slave side;
			// ErrClosed means teardown released the master under the reader.
			// Anything else is a genuine error, not an exit.
			s.emit(Event{Type: EventExit})
		default:
			s.emit(Event{Type: EventError, Message: err.Error()})
		}
		return
	}
}

// emit delivers one event to the sink. Delivery failures are dropped; the
// reader is never blocked or crashed by a failing sink.
func (s *Session) emit(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Debug("event sink panicked, dropping event",
				zap.String("session_id", s.id), zap.Any("panic", r))
		}
	}()
	if s.sink != nil {
		s.sink(ev)
	}
}
