//go:build !wasm
// +build !wasm

package live

import (
	"bytes"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/recera/panzoom/pkg/viewport"
)

// PathPrefix is the route the live handler expects.
const PathPrefix = "/panzoom/live/"

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 54 * time.Second
)

// Server handles WebSocket connections for remote viewports
type Server struct {
	upgrader websocket.Upgrader
	opts     viewport.Options
	origins  map[string]bool
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewServer creates a new live protocol server. Every session gets its own
// controller built from opts.
func NewServer(opts viewport.Options) *Server {
	s := &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		opts:     opts,
		sessions: make(map[string]*Session),
	}
	s.upgrader.CheckOrigin = s.checkOrigin
	return s
}

// SetAllowedOrigins restricts browser connections to the given origins,
// e.g. "http://localhost:7420". An empty list accepts any origin.
func (s *Server) SetAllowedOrigins(origins []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.origins = nil
	if len(origins) > 0 {
		s.origins = make(map[string]bool, len(origins))
		for _, o := range origins {
			s.origins[strings.TrimSuffix(o, "/")] = true
		}
	}
}

// checkOrigin allows requests without an Origin header, which only
// non-browser clients send.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.origins == nil {
		return true
	}
	return s.origins[origin]
}

// HandleWebSocket handles WebSocket upgrade and session management
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, PathPrefix) {
		http.NotFound(w, r)
		return
	}
	sessionID := strings.TrimPrefix(r.URL.Path, PathPrefix)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	// Upgrade connection
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Live Server] Failed to upgrade connection: %v", err)
		return
	}

	session := s.createSession(sessionID, conn)

	// Handle the session
	go s.handleConnection(session)
}

// createSession registers a fresh session, replacing any previous session
// with the same ID.
func (s *Server) createSession(sessionID string, conn *websocket.Conn) *Session {
	s.mu.RLock()
	opts := s.opts
	s.mu.RUnlock()
	session := newSession(sessionID, conn, opts)

	s.mu.Lock()
	old := s.sessions[sessionID]
	s.sessions[sessionID] = session
	s.mu.Unlock()

	if old != nil {
		log.Printf("[Live Server] Replacing session %s", sessionID)
		old.conn.Close()
	}
	return session
}

// SetOptions changes the options used for sessions created from now on.
// Running sessions keep the controller they were created with.
func (s *Server) SetOptions(opts viewport.Options) {
	s.mu.Lock()
	s.opts = opts
	s.mu.Unlock()
}

// Options returns the options new sessions are created with.
func (s *Server) Options() viewport.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// GetSession retrieves a session by ID
func (s *Server) GetSession(sessionID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

// SessionCount returns the number of connected sessions
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// removeSession drops session if it is still the registered one for its ID.
func (s *Server) removeSession(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[session.ID] == session {
		delete(s.sessions, session.ID)
	}
}

// Close disconnects every session.
func (s *Server) Close() {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.Unlock()

	for _, session := range sessions {
		session.conn.Close()
	}
}

// handleConnection manages the WebSocket connection for a session
func (s *Server) handleConnection(session *Session) {
	// Ensure cleanup happens only once
	var closeOnce sync.Once
	cleanup := func() {
		closeOnce.Do(func() {
			session.conn.Close()
			close(session.closeChan)
			session.shutdown()
			s.removeSession(session)
			session.logger.Info("closed")
		})
	}
	defer cleanup()

	// Start writer goroutine
	go session.writer()

	session.sendHello()

	session.conn.SetReadDeadline(time.Now().Add(readTimeout))
	session.conn.SetPongHandler(func(string) error {
		session.conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	// Read messages
	for {
		messageType, data, err := session.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				session.logger.Warn("unexpected close", "err", err)
			}
			return
		}
		session.conn.SetReadDeadline(time.Now().Add(readTimeout))

		switch messageType {
		case websocket.BinaryMessage:
			session.handleBinaryMessage(data)
		case websocket.TextMessage:
			session.logger.Debug("ignoring text message", "bytes", len(data))
		}
	}
}

// writer handles writing messages to the WebSocket
func (s *Session) writer() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case message := <-s.sendChan:
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				s.logger.Error("failed to write message", "err", err)
				return
			}

		case message := <-s.sendTextChan:
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.Error("failed to write text message", "err", err)
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.closeChan:
			return
		}
	}
}

// sendHello sends the initial hello message
func (s *Session) sendHello() {
	var buf bytes.Buffer
	encoder := NewEncoder(&buf)

	encoder.WriteBytes([]byte{byte(FrameControl)})
	encoder.WriteString("HELLO")
	encoder.WriteString(s.ID)
	encoder.WriteUvarint(s.lastSeq)

	s.sendChan <- buf.Bytes()
}

// sendControl sends a control message
func (s *Session) sendControl(msgType string) {
	var buf bytes.Buffer
	encoder := NewEncoder(&buf)

	encoder.WriteBytes([]byte{byte(FrameControl)})
	encoder.WriteString(msgType)

	select {
	case s.sendChan <- buf.Bytes():
	default:
		s.logger.Warn("send buffer full, dropping control message", "type", msgType)
	}
}

// handleBinaryMessage processes binary protocol messages
func (s *Session) handleBinaryMessage(data []byte) {
	if len(data) == 0 {
		return
	}

	switch MessageType(data[0]) {
	case FrameEvent:
		event, err := DecodeEvent(data)
		if err != nil {
			s.logger.Warn("failed to decode event", "err", err)
			return
		}
		s.handleEvent(event)

	case FrameControl:
		decoder := NewDecoder(bytes.NewReader(data[1:]))
		msgType, err := decoder.ReadString()
		if err != nil {
			s.logger.Warn("failed to decode control message type", "err", err)
			return
		}

		switch msgType {
		case "HELLO":
			lastSeq, err := decoder.ReadUvarint()
			if err != nil {
				s.logger.Warn("failed to decode HELLO params", "err", err)
				return
			}
			s.logger.Debug("client hello", "lastSeq", lastSeq)

		case "PING":
			s.sendControl("PONG")
		}
	}
}
