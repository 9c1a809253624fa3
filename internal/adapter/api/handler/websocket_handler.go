package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/middleware"
	ws "dukkan/internal/infrastructure/websocket"
	"dukkan/pkg/errors"
	"dukkan/pkg/logger"
	"dukkan/pkg/response"
)

type WebSocketHandler struct {
	wsManager *ws.Manager
	upgrader  gorillaws.Upgrader
}

// NewWebSocketHandler accepts upgrades from allowedOrigins, or from anywhere when the list
// is empty.
func NewWebSocketHandler(wsManager *ws.Manager, allowedOrigins []string) *WebSocketHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &WebSocketHandler{
		wsManager: wsManager,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin] || allowed["*"]
			},
		},
	}
}

// HandleWebSocket streams the caller's notifications. Authentication comes from the
// token query parameter.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader already wrote the HTTP error
		logger.Warn("Websocket upgrade failed for %s: %v", user.ID, err)
		return nil
	}

	client := ws.NewClient(user.ID, conn)
	if !h.wsManager.Add(client) {
		logger.Warn("Websocket manager stopped, dropping connection for %s", user.ID)
		return nil
	}

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
