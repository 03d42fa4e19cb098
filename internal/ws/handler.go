package ws

import (
	"encoding/base64"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/quickpane/quickpane/backend/internal/monitoring"
	"github.com/quickpane/quickpane/backend/internal/pty"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // single local user; the UI is the only client
	},
}

// Handler manages WebSocket connections.
type Handler struct {
	manager *pty.Manager
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler. metrics may be nil.
func NewHandler(manager *pty.Manager, logger *zap.Logger, metrics *monitoring.Metrics) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{manager: manager, logger: logger, metrics: metrics}
}

// client wraps one connection. Gorilla permits a single concurrent writer,
// and event sinks push from reader goroutines, so every write goes through
// the mutex.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(data)
}

// HandleConnection handles WebSocket upgrade and command messages.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.WSConnected()
		defer h.metrics.WSDisconnected()
	}

	cl := &client{conn: conn}
	cl.send(map[string]interface{}{
		"type":    "system",
		"message": "connected",
	})

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}
		if h.metrics != nil {
			h.metrics.WSMessage(msg.Type)
		}

		switch msg.Type {
		case MsgSpawn:
			h.handleSpawn(cl, msg)
		case MsgWrite:
			h.handleWrite(cl, msg)
		case MsgResize:
			h.handleResize(cl, msg)
		case MsgKill:
			h.handleKill(cl, msg)
		case MsgList:
			h.handleList(cl, msg)
		case MsgPing:
			cl.send(map[string]interface{}{"type": "pong", "request_id": msg.RequestID})
		default:
			h.sendError(cl, msg.RequestID, "validation_error", "unknown message type: "+msg.Type)
		}
	}
}

func (h *Handler) handleSpawn(cl *client, msg Message) {
	opts := pty.SpawnOptions{Cols: 80, Rows: 24}
	if msg.Spawn != nil {
		opts = *msg.Spawn
	}

	// The sink outlives this handler call; it delivers from the session's
	// reader goroutine. The session id is only known once Spawn returns, so
	// delivery blocks until then. Send failures (closed socket) are dropped.
	ready := make(chan struct{})
	var sessionID string
	sink := func(ev pty.Event) {
		<-ready
		if err := cl.send(eventFrame(sessionID, ev)); err != nil {
			h.logger.Debug("dropping event, websocket send failed", zap.Error(err))
		}
	}

	id, err := h.manager.Spawn(opts, sink)
	if err != nil {
		h.sendError(cl, msg.RequestID, string(pty.KindOf(err)), err.Error())
		return
	}
	sessionID = id
	close(ready)

	cl.send(map[string]interface{}{
		"type":       "spawned",
		"request_id": msg.RequestID,
		"session_id": id,
	})
}

func (h *Handler) handleWrite(cl *client, msg Message) {
	data, err := base64.StdEncoding.DecodeString(msg.Data)
	if err != nil {
		h.sendError(cl, msg.RequestID, "validation_error", "data must be base64")
		return
	}
	if err := h.manager.Write(msg.SessionID, data); err != nil {
		h.sendError(cl, msg.RequestID, string(pty.KindOf(err)), err.Error())
		return
	}
	h.sendOK(cl, msg.RequestID)
}

func (h *Handler) handleResize(cl *client, msg Message) {
	if err := h.manager.Resize(msg.SessionID, msg.Cols, msg.Rows); err != nil {
		h.sendError(cl, msg.RequestID, string(pty.KindOf(err)), err.Error())
		return
	}
	h.sendOK(cl, msg.RequestID)
}

func (h *Handler) handleKill(cl *client, msg Message) {
	if err := h.manager.Kill(msg.SessionID); err != nil {
		h.sendError(cl, msg.RequestID, string(pty.KindOf(err)), err.Error())
		return
	}
	h.sendOK(cl, msg.RequestID)
}

func (h *Handler) handleList(cl *client, msg Message) {
	cl.send(map[string]interface{}{
		"type":       "sessions",
		"request_id": msg.RequestID,
		"sessions":   h.manager.List(),
	})
}

func (h *Handler) sendOK(cl *client, requestID string) {
	cl.send(map[string]interface{}{"type": "ok", "request_id": requestID})
}

func (h *Handler) sendError(cl *client, requestID, kind, message string) {
	cl.send(map[string]interface{}{
		"type":       "error",
		"request_id": requestID,
		"kind":       kind,
		"message":    message,
	})
}
