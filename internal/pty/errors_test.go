package pty

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := newError(KindSessionNotFound, "session not found: %s", "pty_123")

	if !strings.Contains(err.Error(), "pty_123") {
		t.Errorf("message should name the session: %s", err.Error())
	}
	if err.Kind != KindSessionNotFound {
		t.Errorf("expected session_not_found kind, got %s", err.Kind)
	}
}

func TestWrapErrorUnwraps(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := wrapError(KindSpawn, cause, "failed to spawn %s", "/bin/zsh")

	if !errors.Is(err, cause) {
		t.Error("wrapped error should match its cause with errors.Is")
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("message should include the cause: %s", err.Error())
	}
}

func TestErrorIsMatchesByKind(t *testing.T) {
	err := newError(KindResourceLimit, "session limit reached (32)")

	if !errors.Is(err, &Error{Kind: KindResourceLimit}) {
		t.Error("errors.Is should match by kind")
	}
	if errors.Is(err, &Error{Kind: KindValidation}) {
		t.Error("errors.Is should not match a different kind")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{newError(KindValidation, "bad shell"), KindValidation},
		{fmt.Errorf("outer: %w", newError(KindIO, "short write")), KindIO},
		{errors.New("opaque"), KindSystem},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}
