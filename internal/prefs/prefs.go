// Package prefs manages persisted application preferences.
//
// Preferences are the small set of values that survive app restarts (theme,
// quick-pane shortcut, language). They persist as a single JSON file under
// the app data directory; a missing file yields defaults.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// DefaultQuickPaneShortcut is used when no shortcut preference is set.
const DefaultQuickPaneShortcut = "CommandOrControl+Shift+."

const prefsFile = "preferences.json"

// Preferences holds settings that persist between sessions.
type Preferences struct {
	Theme string `json:"theme"`
	// QuickPaneShortcut overrides DefaultQuickPaneShortcut when set.
	QuickPaneShortcut *string `json:"quick_pane_shortcut,omitempty"`
	// Language overrides system locale detection when set.
	Language *string `json:"language,omitempty"`
}

// Defaults returns the preference values used before any are saved.
func Defaults() Preferences {
	return Preferences{Theme: "system"}
}

// ValidateTheme accepts only the supported theme values.
func ValidateTheme(theme string) error {
	switch theme {
	case "light", "dark", "system":
		return nil
	default:
		return fmt.Errorf("invalid theme: must be 'light', 'dark', or 'system'")
	}
}

// Store persists preferences as JSON under a base directory.
type Store struct {
	dir    string
	logger *zap.Logger

	mu    sync.RWMutex
	prefs Preferences
}

// NewStore creates a preference store rooted at dir, loading any previously
// saved preferences. A missing or unreadable file falls back to defaults.
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create preferences directory: %w", err)
	}

	s := &Store{dir: dir, logger: logger, prefs: Defaults()}

	data, err := os.ReadFile(s.path())
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read preferences, using defaults", zap.Error(err))
		}
		return s, nil
	}

	var loaded Preferences
	if err := json.Unmarshal(data, &loaded); err != nil {
		logger.Warn("failed to parse preferences, using defaults", zap.Error(err))
		return s, nil
	}
	if err := ValidateTheme(loaded.Theme); err != nil {
		logger.Warn("stored theme invalid, using default", zap.String("theme", loaded.Theme))
		loaded.Theme = Defaults().Theme
	}
	s.prefs = loaded
	return s, nil
}

// Get returns the current preferences.
func (s *Store) Get() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// Set validates, stores and persists new preferences.
func (s *Store) Set(p Preferences) error {
	if err := ValidateTheme(p.Theme); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize preferences: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	s.prefs = p
	s.logger.Debug("preferences saved", zap.String("theme", p.Theme))
	return nil
}

// QuickPaneShortcut returns the configured shortcut or the default.
func (s *Store) QuickPaneShortcut() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.prefs.QuickPaneShortcut != nil {
		return *s.prefs.QuickPaneShortcut
	}
	return DefaultQuickPaneShortcut
}

func (s *Store) path() string {
	return filepath.Join(s.dir, prefsFile)
}
