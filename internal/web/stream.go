package web

import (
	"net/http"
	"time"

	"hangman-duel-bot/internal/game"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10
	streamBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleStream pushes a Report to the client after every state change of
// the match, starting with the current snapshot.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	m, ok := s.lookupMatch(w, r)
	s.mu.Unlock()
	if !ok {
		return
	}
	session := m.session

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	send := make(chan game.Report, streamBuffer)

	s.mu.Lock()
	send <- session.Report()
	unsubscribe := session.Subscribe(func(report game.Report) {
		select {
		case send <- report:
		default:
			s.logger.Warn("stream client too slow, dropping update", zap.String("match_id", report.MatchID))
		}
	})
	s.mu.Unlock()

	s.logger.Debug("stream opened", zap.String("match_id", session.ID()))

	done := make(chan struct{})
	go s.writePump(conn, send, done)
	go hangUpWhenEnded(conn, m.ended, done)
	s.readPump(conn)

	// Listeners run under mu, so unsubscribing under mu guarantees no
	// further sends once send is closed.
	s.mu.Lock()
	unsubscribe()
	s.mu.Unlock()
	close(send)
	<-done

	s.logger.Debug("stream closed", zap.String("match_id", session.ID()))
}

// hangUpWhenEnded closes conn once the match is deleted, which makes
// readPump return.
func hangUpWhenEnded(conn *websocket.Conn, ended <-chan struct{}, done <-chan struct{}) {
	select {
	case <-ended:
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "match ended")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		conn.Close()
	case <-done:
	}
}

// readPump discards client messages and returns once the connection fails.
func (s *Server) readPump(conn *websocket.Conn) {
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("stream read error", zap.Error(err))
			}
			return
		}
	}
}

func (s *Server) writePump(conn *websocket.Conn, send <-chan game.Report, done chan<- struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
		close(done)
	}()

	for {
		select {
		case report, ok := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(report); err != nil {
				s.logger.Debug("stream write failed", zap.Error(err))
				drain(conn, send)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				drain(conn, send)
				return
			}
		}
	}
}

// drain closes conn so readPump returns, then consumes send until the
// handler closes it.
func drain(conn *websocket.Conn, send <-chan game.Report) {
	conn.Close()
	for range send {
	}
}
