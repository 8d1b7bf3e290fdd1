package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"taxi-dispatch/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// session одно websocket-соединение. Писать в conn может только writePump.
type session struct {
	conn *websocket.Conn
	send chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

func newSession(conn *websocket.Conn, buffer int) *session {
	return &session{
		conn: conn,
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

// enqueue не блокируется: переполненный буфер значит, что клиент не читает.
func (s *session) enqueue(payload []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.send <- payload:
		return true
	default:
		return false
	}
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

func (s *session) writePump(log handlerLogger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case payload := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Info("websocket write failed", logger.NewField("error", err))
				s.close()
				return
			}

		case <-ticker.C:
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			if err != nil {
				log.Info("websocket ping failed", logger.NewField("error", err))
				s.close()
				return
			}

		case <-s.done:
			_ = s.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait),
			)
			return
		}
	}
}

// readPump держит read deadline по pong-ам. Входящие сообщения не
// обрабатываются: команды приходят через REST.
func (s *session) readPump(log handlerLogger) {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("websocket closed unexpectedly", logger.NewField("error", err))
			}
			return
		}
	}
}
