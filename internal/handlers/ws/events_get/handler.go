package events_get

import (
	"net/http"
	"strconv"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/gorilla/mux"
	"taxi-dispatch/internal/gateway/notify"
	"taxi-dispatch/internal/gateway/websocket"
	"taxi-dispatch/pkg/logger"
)

const handshakeTimeout = 5 * time.Second

// Handler поднимает websocket-сессию водителя или пассажира и держит ее,
// пока клиент не отключится. События приходят из Hub.
type Handler struct {
	log       handlerLogger
	hub       Hub
	recipient notify.Recipient
	upgrader  gorillaws.Upgrader
}

func New(log handlerLogger, hub Hub, recipient notify.Recipient) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "events"),
		logger.NewField("recipient", string(recipient)),
	)

	return &Handler{
		log:       handlerLog,
		hub:       hub,
		recipient: recipient,
		upgrader: gorillaws.Upgrader{
			HandshakeTimeout: handshakeTimeout,
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
			// фронтенд раздается с другого origin
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам ответил клиенту
		h.log.Warn("websocket upgrade failed",
			logger.NewField("id", id),
			logger.NewField("error", err),
		)
		return
	}

	room := websocket.DriverRoom(id)
	if h.recipient == notify.RecipientPassenger {
		room = websocket.PassengerRoom(id)
	}

	h.log.Info("websocket session opened", logger.NewField("room", room.String()))
	h.hub.Serve(conn, room)
	h.log.Info("websocket session closed", logger.NewField("room", room.String()))
}
