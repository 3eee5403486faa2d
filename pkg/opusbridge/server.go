package opusbridge

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ServerConfig configures a Server.
type ServerConfig struct {
	// Logger receives connection and call logs. Defaults to slog.Default().
	Logger *slog.Logger

	// CheckOrigin overrides the WebSocket origin check. All origins are
	// accepted when nil.
	CheckOrigin func(r *http.Request) bool

	// ReadLimit caps the size of a single request message. Defaults to 64 KiB.
	ReadLimit int64
}

// Server is an http.Handler that serves the bridge protocol over WebSocket.
type Server struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader
	limit    int64

	mu       sync.Mutex
	sessions map[string]*session
	closed   bool
}

type session struct {
	id   string
	conn *websocket.Conn
	reg  *Registry
}

// NewServer creates a bridge server. cfg may be nil.
func NewServer(cfg *ServerConfig) *Server {
	if cfg == nil {
		cfg = &ServerConfig{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	checkOrigin := cfg.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	limit := cfg.ReadLimit
	if limit <= 0 {
		limit = 64 << 10
	}
	return &Server{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
		limit:    limit,
		sessions: make(map[string]*session),
	}
}

// ServeHTTP upgrades the connection and serves requests until the peer
// disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	conn.SetReadLimit(s.limit)

	sess := &session{
		id:   uuid.New().String(),
		conn: conn,
		reg:  NewRegistry(),
	}
	if !s.add(sess) {
		closeConn(conn)
		return
	}
	defer s.remove(sess)

	logger := s.logger.With("session", sess.id, "remote", r.RemoteAddr)
	logger.Info("bridge session opened")
	s.serve(r.Context(), sess, logger)
	logger.Info("bridge session closed", "instances", sess.reg.Len())
}

func (s *Server) serve(ctx context.Context, sess *session, logger *slog.Logger) {
	dispatcher := NewDispatcher(sess.reg, logger)
	for {
		mt, data, err := sess.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
				!errors.Is(err, websocket.ErrCloseSent) {
				logger.Debug("read failed", "error", err)
			}
			return
		}

		var req Request
		var resp Response
		if err := Unmarshal(mt, data, &req); err != nil {
			if errors.Is(err, errUnsupportedMessage) {
				continue
			}
			resp = Response{Error: "malformed request: " + err.Error()}
		} else {
			resp = dispatcher.Handle(ctx, req)
		}

		out, err := Marshal(mt, resp)
		if err != nil {
			logger.Error("encode response", "op", req.Op, "error", err)
			return
		}
		if err := sess.conn.WriteMessage(mt, out); err != nil {
			logger.Debug("write failed", "error", err)
			return
		}
	}
}

func (s *Server) add(sess *session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.sessions[sess.id] = sess
	return true
}

func (s *Server) remove(sess *session) {
	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
	sess.conn.Close()
	sess.reg.Close()
}

// Sessions returns the ids of the open sessions.
func (s *Server) Sessions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Close disconnects every session and rejects new ones. Instances owned by
// the sessions are destroyed as their connections unwind.
func (s *Server) Close() error {
	s.mu.Lock()
	s.closed = true
	sessions := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		closeConn(sess.conn)
	}
	return nil
}

// closeConn sends a going-away close frame. WriteControl may run
// concurrently with the session's writer.
func closeConn(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closed")
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	conn.Close()
}
