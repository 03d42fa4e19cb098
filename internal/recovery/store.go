// Package recovery persists UI recovery data between app restarts.
//
// The UI periodically snapshots unsaved state (draft pane contents, layout)
// into named JSON files so a crash loses nothing. Filenames are validated
// against a strict pattern before touching the filesystem, and payloads are
// capped so a runaway frontend cannot fill the disk.
package recovery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// MaxDataBytes caps a single recovery payload (10MB).
const MaxDataBytes = 10_485_760

// filenamePattern allows alphanumerics, dashes, underscores, and at most one
// extension. It rejects path separators and dot-dot outright.
var filenamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+(\.[a-zA-Z0-9]+)?$`)

// Error kinds for recovery operations, stable for programmatic handling.
type ErrorKind string

const (
	// KindFileNotFound is the expected case on first load, not a failure.
	KindFileNotFound ErrorKind = "file_not_found"
	KindValidation   ErrorKind = "validation_error"
	KindDataTooLarge ErrorKind = "data_too_large"
	KindIO           ErrorKind = "io_error"
	KindParse        ErrorKind = "parse_error"
)

// Error tags recovery failures with a kind.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches recovery errors by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// ValidateFilename checks a recovery filename for safe filesystem use.
func ValidateFilename(name string) error {
	if name == "" {
		return &Error{Kind: KindValidation, Message: "filename cannot be empty"}
	}
	if len([]rune(name)) > 100 {
		return &Error{Kind: KindValidation, Message: "filename too long (max 100 characters)"}
	}
	if !filenamePattern.MatchString(name) {
		return &Error{Kind: KindValidation,
			Message: "invalid filename: only alphanumeric characters, dashes, underscores, and dots allowed"}
	}
	return nil
}

// Store reads and writes recovery files under a base directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

// NewStore creates a recovery store rooted at dir.
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &Error{Kind: KindIO, Message: "failed to create recovery directory", Err: err}
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Save validates the name and size, then writes the payload. The payload
// must be valid JSON; the store never persists data it could not load back.
func (s *Store) Save(name string, data []byte) error {
	if err := ValidateFilename(name); err != nil {
		return err
	}
	if len(data) > MaxDataBytes {
		return &Error{Kind: KindDataTooLarge,
			Message: fmt.Sprintf("data too large (max %d bytes)", MaxDataBytes)}
	}
	if !json.Valid(data) {
		return &Error{Kind: KindParse, Message: "recovery data is not valid JSON"}
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return &Error{Kind: KindIO, Message: "failed to write recovery file", Err: err}
	}
	s.logger.Debug("recovery data saved", zap.String("file", name), zap.Int("bytes", len(data)))
	return nil
}

// Load returns a previously saved payload. A missing file reports
// KindFileNotFound, which callers treat as "nothing to recover".
func (s *Store) Load(name string) ([]byte, error) {
	if err := ValidateFilename(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Kind: KindFileNotFound, Message: "file not found"}
		}
		return nil, &Error{Kind: KindIO, Message: "failed to read recovery file", Err: err}
	}
	if !json.Valid(data) {
		return nil, &Error{Kind: KindParse, Message: "recovery file is corrupted"}
	}
	return data, nil
}

// Delete removes a recovery file. Deleting a missing file is not an error.
func (s *Store) Delete(name string) error {
	if err := ValidateFilename(name); err != nil {
		return err
	}
	if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return &Error{Kind: KindIO, Message: "failed to delete recovery file", Err: err}
	}
	return nil
}

// ListFiles returns the names of all recovery files present.
func (s *Store) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &Error{Kind: KindIO, Message: "failed to list recovery files", Err: err}
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}
