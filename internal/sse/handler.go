package sse

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

func eventFilter(r *http.Request) []string {
	if filterParam := r.URL.Query().Get("types"); filterParam != "" {
		return strings.Split(filterParam, ",")
	}
	return nil
}

func connectedEvent(client *Client, eventTypes []string) Event {
	return Event{
		ID:        client.ID,
		Type:      EventTypeConnected,
		Timestamp: time.Now().Unix(),
		ClientID:  client.ID,
		Filters:   eventTypes,
	}
}

// Handler returns an HTTP handler streaming hub events as server-sent events
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		eventTypes := eventFilter(r)
		client := hub.Subscribe(eventTypes)
		slog.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"transport", "sse",
			"filters", eventTypes)
		defer func() {
			hub.Unsubscribe(client)
			slog.Info(LogMsgClientDisconnected, "client_id", client.ID, "transport", "sse")
		}()

		var buf bytes.Buffer
		send := func(event Event) bool {
			buf.Reset()
			if err := event.WriteSSE(&buf); err != nil {
				slog.Error(LogMsgWriteError, "error", err)
				return true
			}
			if _, err := buf.WriteTo(w); err != nil {
				slog.Warn(LogMsgWriteError, "error", err)
				return false
			}
			flusher.Flush()
			return true
		}

		if !send(connectedEvent(client, eventTypes)) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.Events():
				if !ok || !send(event) {
					return
				}

			case <-ticker.C:
				if _, err := io.WriteString(w, keepaliveFrame); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}
