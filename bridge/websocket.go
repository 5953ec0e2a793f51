package bridge

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// WebSocketHandler serves the bridge protocol to the page, one JSON message per frame.
type WebSocketHandler struct {
	router   HostRouter
	log      logrus.FieldLogger
	upgrader websocket.Upgrader
}

// NewWebSocketHandler returns an http.Handler answering bridge requests over WebSocket.
// Only same-origin pages may connect (gorilla's default origin check).
func NewWebSocketHandler(router HostRouter, log logrus.FieldLogger) *WebSocketHandler {
	return &WebSocketHandler{
		router: router,
		log:    log.WithField("component", "bridge-ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).Debug("websocket closed")
			}
			return
		}

		resp := handleRequest(h.router, data, h.log)
		if err := conn.WriteJSON(resp); err != nil {
			return
		}
	}
}
