package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"taxi-dispatch/internal/entities"
	"taxi-dispatch/internal/gateway/notify"
	"taxi-dispatch/pkg/logger"
)

var ErrSessionOverflow = errors.New("websocket send buffer is full")

// Room адрес получателя: все сессии одного водителя или пассажира.
type Room struct {
	Recipient notify.Recipient
	ID        int64
}

func DriverRoom(driverID int64) Room {
	return Room{Recipient: notify.RecipientDriver, ID: driverID}
}

func PassengerRoom(passengerID int64) Room {
	return Room{Recipient: notify.RecipientPassenger, ID: passengerID}
}

func (r Room) String() string {
	return fmt.Sprintf("%s:%d", r.Recipient, r.ID)
}

// Hub раздает события открытым websocket-сессиям. У одного получателя
// может быть несколько сессий, например два открытых окна.
type Hub struct {
	log        handlerLogger
	sendBuffer int

	mu    sync.RWMutex
	rooms map[Room]map[*session]struct{}
}

func NewHub(log handlerLogger, sendBuffer int) *Hub {
	return &Hub{
		log:        log.With(logger.NewField("component", "websocket_hub")),
		sendBuffer: sendBuffer,
		rooms:      make(map[Room]map[*session]struct{}),
	}
}

// Serve обслуживает соединение до его закрытия.
func (h *Hub) Serve(conn *websocket.Conn, room Room) {
	s := newSession(conn, h.sendBuffer)
	sessionLog := h.log.With(logger.NewField("room", room.String()))

	h.register(room, s)
	defer h.unregister(room, s)

	go s.writePump(sessionLog)
	s.readPump(sessionLog)
	s.close()
}

func (h *Hub) NotifyDriver(_ context.Context, driverID int64, event entities.Event) error {
	return h.broadcast(DriverRoom(driverID), notify.NewEventMessage(notify.RecipientDriver, driverID, event))
}

func (h *Hub) NotifyPassenger(_ context.Context, passengerID int64, event entities.Event) error {
	return h.broadcast(PassengerRoom(passengerID), notify.NewEventMessage(notify.RecipientPassenger, passengerID, event))
}

// Sessions число открытых сессий получателя.
func (h *Hub) Sessions(room Room) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[room])
}

// Close закрывает все сессии, Serve каждой из них вернется сам.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sessions := range h.rooms {
		for s := range sessions {
			s.close()
		}
	}
}

func (h *Hub) broadcast(room Room, msg notify.EventMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	h.mu.RLock()
	sessions := make([]*session, 0, len(h.rooms[room]))
	for s := range h.rooms[room] {
		sessions = append(sessions, s)
	}
	h.mu.RUnlock()

	if len(sessions) == 0 {
		return fmt.Errorf("%w: %s", notify.ErrNoSession, room)
	}

	delivered := 0
	for _, s := range sessions {
		if s.enqueue(payload) {
			delivered++
			continue
		}
		// клиент не успевает читать, соединение закрываем
		MessagesDroppedTotal.WithLabelValues(string(room.Recipient)).Inc()
		s.close()
	}

	if delivered == 0 {
		return fmt.Errorf("%w: %s", ErrSessionOverflow, room)
	}
	return nil
}

func (h *Hub) register(room Room, s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions, ok := h.rooms[room]
	if !ok {
		sessions = make(map[*session]struct{})
		h.rooms[room] = sessions
	}
	sessions[s] = struct{}{}

	SessionsActive.WithLabelValues(string(room.Recipient)).Inc()
	h.log.Info("websocket session opened", logger.NewField("room", room.String()))
}

func (h *Hub) unregister(room Room, s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions := h.rooms[room]
	if _, ok := sessions[s]; !ok {
		return
	}
	delete(sessions, s)
	if len(sessions) == 0 {
		delete(h.rooms, room)
	}

	SessionsActive.WithLabelValues(string(room.Recipient)).Dec()
	h.log.Info("websocket session closed", logger.NewField("room", room.String()))
}
