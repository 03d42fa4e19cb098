package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	p := Defaults()

	assert.Equal(t, "system", p.Theme)
	assert.Nil(t, p.QuickPaneShortcut)
	assert.Nil(t, p.Language)
}

func TestValidateTheme(t *testing.T) {
	tests := []struct {
		theme   string
		wantErr bool
	}{
		{"light", false},
		{"dark", false},
		{"system", false},
		{"", true},
		{"solarized", true},
		{"DARK", true},
	}

	for _, tt := range tests {
		err := ValidateTheme(tt.theme)
		if tt.wantErr {
			assert.Error(t, err, "theme %q should be rejected", tt.theme)
		} else {
			assert.NoError(t, err, "theme %q should be accepted", tt.theme)
		}
	}
}

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "system", store.Get().Theme)

	shortcut := "CommandOrControl+Shift+T"
	lang := "de"
	require.NoError(t, store.Set(Preferences{
		Theme:             "dark",
		QuickPaneShortcut: &shortcut,
		Language:          &lang,
	}))

	// A fresh store over the same directory sees the persisted values.
	reloaded, err := NewStore(dir, nil)
	require.NoError(t, err)

	got := reloaded.Get()
	assert.Equal(t, "dark", got.Theme)
	require.NotNil(t, got.QuickPaneShortcut)
	assert.Equal(t, shortcut, *got.QuickPaneShortcut)
	require.NotNil(t, got.Language)
	assert.Equal(t, "de", *got.Language)
}

func TestSetRejectsInvalidTheme(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir, nil)
	require.NoError(t, err)

	err = store.Set(Preferences{Theme: "neon"})
	assert.Error(t, err)
	assert.Equal(t, "system", store.Get().Theme)
}

func TestCorruptFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preferences.json"), []byte("{not json"), 0o644))

	store, err := NewStore(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), store.Get())
}

func TestQuickPaneShortcutDefault(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultQuickPaneShortcut, store.QuickPaneShortcut())

	custom := "CommandOrControl+Shift+K"
	require.NoError(t, store.Set(Preferences{Theme: "light", QuickPaneShortcut: &custom}))
	assert.Equal(t, custom, store.QuickPaneShortcut())
}
