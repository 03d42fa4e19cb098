package pty

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateShell(t *testing.T) {
	allowed := []string{
		"/bin/bash",
		"/bin/zsh",
		"/bin/sh",
		"/usr/bin/fish",
	}
	for _, shell := range allowed {
		if err := ValidateShell(shell); err != nil {
			t.Errorf("shell %s should be allowed: %v", shell, err)
		}
	}

	rejected := []string{
		"",
		"/bin/echo",
		"/usr/bin/python3",
		"bash",               // relative
		"/bin/bash/",         // trailing slash, not an exact match
		"/tmp/../bin/bash",   // unnormalized
		"/bin/bash -c evil",  // injection attempt
	}
	for _, shell := range rejected {
		err := ValidateShell(shell)
		if err == nil {
			t.Errorf("shell %q should be rejected", shell)
			continue
		}
		if KindOf(err) != KindValidation {
			t.Errorf("shell %q should fail with validation error, got %s", shell, KindOf(err))
		}
	}
}

func TestValidateCwdAcceptsDirectory(t *testing.T) {
	dir := t.TempDir()

	resolved, err := ValidateCwd(dir)
	if err != nil {
		t.Fatalf("ValidateCwd(%s) failed: %v", dir, err)
	}
	if resolved == "" {
		t.Fatal("resolved path should not be empty")
	}
}

func TestValidateCwdFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	link := filepath.Join(dir, "link")

	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	resolved, err := ValidateCwd(link)
	if err != nil {
		t.Fatalf("ValidateCwd through symlink failed: %v", err)
	}
	info, err := os.Lstat(resolved)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		t.Errorf("resolved path should be canonical, got symlink: %s", resolved)
	}
}

func TestValidateCwdRejectsNonexistent(t *testing.T) {
	_, err := ValidateCwd(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("nonexistent cwd should be rejected")
	}
	if KindOf(err) != KindValidation {
		t.Errorf("expected validation error, got %s", KindOf(err))
	}
}

func TestValidateCwdRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ValidateCwd(file)
	if err == nil {
		t.Fatal("regular file should be rejected as cwd")
	}
	if KindOf(err) != KindValidation {
		t.Errorf("expected validation error, got %s", KindOf(err))
	}
}

func TestFilterEnv(t *testing.T) {
	env := map[string]string{
		"PATH":                  "/usr/bin",
		"LD_PRELOAD":            "/tmp/evil.so",
		"DYLD_INSERT_LIBRARIES": "/tmp/evil.dylib",
		"EDITOR":                "vim",
		"LD_LIBRARY_PATH":       "/tmp",
	}

	filtered := FilterEnv(env, nil)

	if len(filtered) != 2 {
		t.Errorf("expected 2 surviving entries, got %d: %v", len(filtered), filtered)
	}
	if filtered["PATH"] != "/usr/bin" || filtered["EDITOR"] != "vim" {
		t.Errorf("benign entries should pass through unchanged: %v", filtered)
	}
	for _, denied := range []string{"LD_PRELOAD", "DYLD_INSERT_LIBRARIES", "LD_LIBRARY_PATH"} {
		if _, ok := filtered[denied]; ok {
			t.Errorf("denied variable %s should be dropped", denied)
		}
	}
}

func TestFilterEnvEmpty(t *testing.T) {
	if got := FilterEnv(nil, nil); len(got) != 0 {
		t.Errorf("nil env should filter to empty, got %v", got)
	}
}
