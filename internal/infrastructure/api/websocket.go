package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	statusCheckInterval = time.Second
	wsWriteTimeout      = 10 * time.Second
	wsPongTimeout       = 60 * time.Second
	wsPingInterval      = 54 * time.Second
)

// StatusStream pushes session snapshots over a WebSocket whenever the visible
// state changes. While a video is loading the rotating status message changes
// every few seconds, so the client gets a push on each rotation.
type StatusStream struct {
	handler       *AdHandler
	upgrader      websocket.Upgrader
	checkInterval time.Duration
}

func NewStatusStream(handler *AdHandler, allowedOrigins []string) *StatusStream {
	return &StatusStream{
		handler: handler,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		checkInterval: statusCheckInterval,
	}
}

func (s *StatusStream) HandleStatusStream(w http.ResponseWriter, r *http.Request) {
	session, ok := s.handler.session(w, r)
	if !ok {
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, w.Header())
	if err != nil {
		slog.Warn("WebSocket upgrade failed", "session", session.ID(), "error", err)
		return
	}
	defer conn.Close()

	slog.Debug("Status stream opened", "session", session.ID())

	// 読み込みループ：切断とpongの検知のみ
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Debug("Status stream read error", "session", session.ID(), "error", err)
				}
				return
			}
		}
	}()

	check := time.NewTicker(s.checkInterval)
	defer check.Stop()
	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	var last []byte
	for {
		session.Touch()
		payload, err := json.Marshal(newSnapshotResponse(session.Snapshot(), s.handler.statusMessages))
		if err != nil {
			slog.Error("Failed to encode snapshot", "error", err)
			return
		}
		if string(payload) != string(last) {
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				slog.Debug("Status stream write failed", "session", session.ID(), "error", err)
				return
			}
			last = payload
		}

		select {
		case <-closed:
			slog.Debug("Status stream closed", "session", session.ID())
			return
		case <-r.Context().Done():
			return
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-check.C:
		}
	}
}

// originChecker allows same-origin requests and the configured origins.
func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	allowAll := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowAll || allowed[origin] {
			return true
		}
		return origin == "http://"+r.Host || origin == "https://"+r.Host
	}
}
