package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/auth"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/repo"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 64 * 1024
	sendBuffer     = 32
)

// session is one websocket connection. All writes go through the send
// channel so the write pump is the only goroutine touching the connection
// for output.
type session struct {
	hub    *Hub
	conn   *websocket.Conn
	userID int64

	send     chan Envelope
	sendOnce chan struct{}

	// rooms is guarded by hub.mu.
	rooms map[int64]struct{}
}

func newSession(hub *Hub, conn *websocket.Conn, userID int64) *session {
	return &session{
		hub:      hub,
		conn:     conn,
		userID:   userID,
		send:     make(chan Envelope, sendBuffer),
		sendOnce: make(chan struct{}),
		rooms:    make(map[int64]struct{}),
	}
}

// closeSend signals the write pump to finish; safe to call more than once.
func (s *session) closeSend() {
	select {
	case <-s.sendOnce:
	default:
		close(s.sendOnce)
	}
}

func (s *session) readPump() {
	defer func() {
		s.hub.remove(s)
		s.closeSend()
		_ = s.conn.Close()
	}()
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		var env Envelope
		if err := json.Unmarshal(msg, &env); err != nil {
			s.hub.log.Warn("unparseable realtime frame", "user", s.userID, "err", err)
			continue
		}
		s.hub.dispatch(context.Background(), s, env)
	}
}

func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()
	for {
		select {
		case env := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(env); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.sendOnce:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage, nil)
			return
		}
	}
}

// Handler upgrades GET /ws. The connection must present a valid bearer
// token (header or ?token=) and the origin must match the configured
// frontend.
func Handler(hub *Hub, tokens *auth.TokenManager, users repo.UserRepo, allowedOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == allowedOrigin
		},
	}
	return func(c *gin.Context) {
		raw := auth.BearerToken(c)
		if raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "authorization required"})
			return
		}
		userID, err := tokens.Verify(raw)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid token"})
			return
		}
		if _, err := users.GetByID(c.Request.Context(), userID); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid token"})
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		s := newSession(hub, conn, userID)
		go s.writePump()
		go s.readPump()
	}
}
