package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

const (
	readTimeout  = 10 * time.Minute
	writeTimeout = 5 * time.Second
	maxMessage   = 4 * 1024
)

// Server accepts websocket connections and runs one game per connection.
type Server struct {
	addr   string
	store  *storage.Store
	logger *log.Logger

	upgrader websocket.Upgrader
	http     *http.Server
}

// NewServer creates a server listening on addr. store may be nil, which
// disables scores and saves.
func NewServer(addr string, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		addr:   addr,
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.Handler())
	s.http = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Handler upgrades the request and serves one game session. The player
// name is taken from the "player" query parameter.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		defer conn.Close()
		conn.SetReadLimit(maxMessage)

		player := r.URL.Query().Get("player")
		s.logger.Info("session started", "player", player, "remote", r.RemoteAddr)
		defer s.logger.Info("session ended", "player", player, "remote", r.RemoteAddr)

		sess := newSession(s.store, player)
		for {
			_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
			_, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.logger.Debug("read failed", "player", player, "error", err)
				}
				return
			}

			var msg ClientMsg
			if err := json.Unmarshal(data, &msg); err != nil {
				if writeJSON(conn, ErrorMsg{Type: TypeError, Message: "malformed message"}) != nil {
					return
				}
				continue
			}

			reply, err := sess.handle(msg)
			if err != nil {
				s.logger.Debug("request rejected", "player", player, "type", msg.Type, "error", err)
				// A failed score write still has a state to report
				if st, ok := reply.(StateMsg); ok && st.Type == TypeState {
					if writeJSON(conn, st) != nil {
						return
					}
				}
				if writeJSON(conn, ErrorMsg{Type: TypeError, Message: err.Error()}) != nil {
					return
				}
				continue
			}
			if err := writeJSON(conn, reply); err != nil {
				return
			}
		}
	}
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting websocket server", "address", s.addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	return s.Shutdown()
}

// Shutdown stops accepting connections. Hijacked websocket connections
// end when their clients disconnect or time out.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, b)
}
