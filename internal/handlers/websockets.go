package handlers

import (
	"net/http"
	"time"

	"device_inventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB

	wsTypeSnapshot = "snapshot"
	wsTypeClosed   = "closed"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins once the web client has a fixed host
}

// @Summary      Session snapshot stream
// @Description  Upgrades to WebSocket and pushes {"type":"snapshot","data":View} whenever the session changes.
// @Description  The bearer token goes in the Authorization header or, for browsers, in ?token=.
// @Tags         sessions
// @Security     BearerAuth
// @Param        session  query  string  true   "Session id"
// @Param        token    query  string  false  "Bearer token when no Authorization header is sent"
// @Success      101
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	operatorID, ok := h.authenticate(c, true)
	if !ok {
		return
	}
	sessionID := c.Query("session")
	views, cancel, err := h.services.Lists.Subscribe(operatorID, sessionID)
	if err != nil {
		if h.log != nil {
			h.log.Infow("ws_subscribe_rejected", "session", sessionID, "operator", operatorID, "err", err)
		}
		c.JSON(http.StatusNotFound, gin.H{"error": errSessionNotFound})
		return
	}
	defer cancel()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "session", sessionID, "operator", operatorID, "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case view, ok := <-views:
			if !ok {
				_ = h.write(conn, wsEnvelope{Type: wsTypeClosed})
				return
			}
			if err := h.sendView(conn, view); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// Helper: startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

func (h *Handler) sendView(conn *websocket.Conn, v service.View) error {
	return h.write(conn, wsEnvelope{Type: wsTypeSnapshot, Data: v})
}

// Helper: write sends one envelope with a write deadline.
func (h *Handler) write(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}
