package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickpane/quickpane/backend/internal/prefs"
	"github.com/quickpane/quickpane/backend/internal/pty"
	"github.com/quickpane/quickpane/backend/internal/recovery"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	manager  *pty.Manager
	prefs    *prefs.Store
	recovery *recovery.Store
}

// NewHandlers creates a new handler set.
func NewHandlers(manager *pty.Manager, prefStore *prefs.Store, recoveryStore *recovery.Store) *Handlers {
	return &Handlers{
		manager:  manager,
		prefs:    prefStore,
		recovery: recoveryStore,
	}
}

// Root handles the service banner.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "quickpane-backend",
		"version": "0.3.0",
	})
}

// Health handles health checks.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"sessions": h.manager.Count(),
	})
}

// ListSessions returns every registered PTY session.
func (h *Handlers) ListSessions(c *gin.Context) {
	sessions := h.manager.List()
	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// KillSession terminates a PTY session.
func (h *Handlers) KillSession(c *gin.Context) {
	if err := h.manager.Kill(c.Param("id")); err != nil {
		status := http.StatusInternalServerError
		if pty.KindOf(err) == pty.KindSessionNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error(), "kind": string(pty.KindOf(err))})
		return
	}
	c.JSON(http.StatusOK, gin.H{"killed": true})
}

// GetPreferences returns the persisted preferences.
func (h *Handlers) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.prefs.Get())
}

// SetPreferences validates and persists preferences.
func (h *Handlers) SetPreferences(c *gin.Context) {
	var p prefs.Preferences
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preferences payload"})
		return
	}
	if err := h.prefs.Set(p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// SaveRecovery stores a recovery payload under a validated name.
func (h *Handlers) SaveRecovery(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, recovery.MaxDataBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}
	if err := h.recovery.Save(c.Param("name"), data); err != nil {
		c.JSON(recoveryStatus(err), recoveryBody(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// LoadRecovery returns a stored recovery payload.
func (h *Handlers) LoadRecovery(c *gin.Context) {
	data, err := h.recovery.Load(c.Param("name"))
	if err != nil {
		c.JSON(recoveryStatus(err), recoveryBody(err))
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// DeleteRecovery removes a stored recovery payload.
func (h *Handlers) DeleteRecovery(c *gin.Context) {
	if err := h.recovery.Delete(c.Param("name")); err != nil {
		c.JSON(recoveryStatus(err), recoveryBody(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListRecovery lists stored recovery files.
func (h *Handlers) ListRecovery(c *gin.Context) {
	names, err := h.recovery.ListFiles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": names})
}

func recoveryStatus(err error) int {
	var re *recovery.Error
	if !errors.As(err, &re) {
		return http.StatusInternalServerError
	}
	switch re.Kind {
	case recovery.KindFileNotFound:
		return http.StatusNotFound
	case recovery.KindValidation, recovery.KindParse:
		return http.StatusBadRequest
	case recovery.KindDataTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func recoveryBody(err error) gin.H {
	var re *recovery.Error
	if errors.As(err, &re) {
		return gin.H{"error": err.Error(), "kind": string(re.Kind)}
	}
	return gin.H{"error": err.Error()}
}
