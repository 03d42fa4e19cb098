package pty

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// allowedShells is the fixed allow-list of shell executables. Spawn requests
// naming anything else are rejected before any OS resource is allocated.
var allowedShells = map[string]struct{}{
	"/bin/bash":     {},
	"/bin/zsh":      {},
	"/bin/sh":       {},
	"/bin/fish":     {},
	"/usr/bin/bash": {},
	"/usr/bin/zsh":  {},
	"/usr/bin/sh":   {},
	"/usr/bin/fish": {},
}

// deniedEnvVars are dynamic linker/loader injection variables. Entries with
// these keys are silently dropped from spawn requests.
var deniedEnvVars = map[string]struct{}{
	"LD_PRELOAD":                 {},
	"LD_LIBRARY_PATH":            {},
	"LD_AUDIT":                   {},
	"DYLD_INSERT_LIBRARIES":      {},
	"DYLD_LIBRARY_PATH":          {},
	"DYLD_FRAMEWORK_PATH":        {},
	"DYLD_FALLBACK_LIBRARY_PATH": {},
}

// ValidateShell accepts only exact matches against the shell allow-list.
func ValidateShell(path string) error {
	if _, ok := allowedShells[path]; !ok {
		return newError(KindValidation, "shell not allowed: %s", path)
	}
	return nil
}

// ValidateCwd resolves path to its canonical form, following symlinks, and
// requires it to be an existing directory.
func ValidateCwd(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", wrapError(KindValidation, err, "invalid working directory: %s", path)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", wrapError(KindValidation, err, "invalid working directory: %s", path)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", wrapError(KindValidation, err, "invalid working directory: %s", path)
	}
	if !info.IsDir() {
		return "", newError(KindValidation, "working directory is not a directory: %s", path)
	}
	return resolved, nil
}

// FilterEnv drops deny-listed keys and passes everything else through. A
// dropped entry is a warning, never an error.
func FilterEnv(env map[string]string, logger *zap.Logger) map[string]string {
	filtered := make(map[string]string, len(env))
	for key, value := range env {
		if _, denied := deniedEnvVars[key]; denied {
			if logger != nil {
				logger.Warn("dropping denied environment variable", zap.String("key", key))
			}
			continue
		}
		filtered[key] = value
	}
	return filtered
}
