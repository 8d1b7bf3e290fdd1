package ping_get

import (
	"net/http"

	"taxi-dispatch/internal/handlers/rest/dto"
	"taxi-dispatch/pkg/logger"
)

type Handler struct {
	log handlerLogger
}

func New(log handlerLogger) *Handler {
	return &Handler{
		log: log.With(logger.NewField("handler", "ping")),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	message := "pong"
	err := dto.WriteJSON(w, http.StatusOK, dto.PingResponse{Message: &message})
	if err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}
