package sse

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// overlays are browser sources on the local machine
	CheckOrigin: func(*http.Request) bool { return true },
}

// WebsocketHandler returns an HTTP handler streaming hub events as JSON websocket messages
func WebsocketHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn(LogMsgUpgradeFailed, "error", err)
			return
		}
		defer conn.Close()

		eventTypes := eventFilter(r)
		client := hub.Subscribe(eventTypes)
		slog.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"transport", "websocket",
			"filters", eventTypes)
		defer func() {
			hub.Unsubscribe(client)
			slog.Info(LogMsgClientDisconnected, "client_id", client.ID, "transport", "websocket")
		}()

		// reads only notice the peer leaving and process pongs
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			_ = conn.SetReadDeadline(time.Now().Add(PongWait))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(PongWait))
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		write := func(event Event) error {
			_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
			return conn.WriteJSON(event)
		}

		if err := write(connectedEvent(client, eventTypes)); err != nil {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gone:
				return

			case event, ok := <-client.Events():
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
						time.Now().Add(WriteTimeout))
					return
				}
				if err := write(event); err != nil {
					slog.Warn(LogMsgWriteError, "error", err)
					return
				}

			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(WriteTimeout)); err != nil {
					return
				}
			}
		}
	}
}
