package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quickpane/quickpane/backend/internal/prefs"
	"github.com/quickpane/quickpane/backend/internal/pty"
	"github.com/quickpane/quickpane/backend/internal/recovery"
)

func testRouter(t *testing.T) (*gin.Engine, *pty.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := pty.NewManager(zap.NewNop(), nil)
	t.Cleanup(func() { manager.Close() })

	prefStore, err := prefs.NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	recoveryStore, err := recovery.NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	h := NewHandlers(manager, prefStore, recoveryStore)

	r := gin.New()
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/sessions", h.ListSessions)
	r.DELETE("/sessions/:id", h.KillSession)
	r.GET("/preferences", h.GetPreferences)
	r.PUT("/preferences", h.SetPreferences)
	r.GET("/recovery", h.ListRecovery)
	r.GET("/recovery/:name", h.LoadRecovery)
	r.POST("/recovery/:name", h.SaveRecovery)
	r.DELETE("/recovery/:name", h.DeleteRecovery)
	return r, manager
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRootAndHealth(t *testing.T) {
	r, _ := testRouter(t)

	w := do(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "quickpane-backend")

	w = do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestListSessionsEmpty(t *testing.T) {
	r, _ := testRouter(t)

	w := do(r, http.MethodGet, "/sessions", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)
}

func TestKillUnknownSessionReturns404(t *testing.T) {
	r, _ := testRouter(t)

	w := do(r, http.MethodDelete, "/sessions/pty_missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), string(pty.KindSessionNotFound))
}

func TestPreferencesRoundTrip(t *testing.T) {
	r, _ := testRouter(t)

	w := do(r, http.MethodGet, "/preferences", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"theme":"system"`)

	w = do(r, http.MethodPut, "/preferences", `{"theme":"dark"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/preferences", "")
	assert.Contains(t, w.Body.String(), `"theme":"dark"`)
}

func TestPreferencesRejectsInvalidTheme(t *testing.T) {
	r, _ := testRouter(t)

	w := do(r, http.MethodPut, "/preferences", `{"theme":"neon"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecoveryLifecycle(t *testing.T) {
	r, _ := testRouter(t)

	w := do(r, http.MethodPost, "/recovery/state.json", `{"tabs":[1,2]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/recovery/state.json", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tabs":[1,2]}`, w.Body.String())

	w = do(r, http.MethodGet, "/recovery", "")
	assert.Contains(t, w.Body.String(), "state.json")

	w = do(r, http.MethodDelete, "/recovery/state.json", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/recovery/state.json", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecoveryRejectsBadFilename(t *testing.T) {
	r, _ := testRouter(t)

	w := do(r, http.MethodPost, "/recovery/state.json.bak", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecoveryRejectsInvalidJSON(t *testing.T) {
	r, _ := testRouter(t)

	w := do(r, http.MethodPost, "/recovery/state.json", `not json at all`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
