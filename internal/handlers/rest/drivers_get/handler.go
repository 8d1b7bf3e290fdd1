package drivers_get

import (
	"net/http"

	"taxi-dispatch/internal/handlers/rest/dto"
	"taxi-dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	driverEntities, err := h.service.GetDrivers(r.Context())
	if err != nil {
		h.log.Error("get drivers", logger.NewField("error", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	err = dto.WriteJSON(w, http.StatusOK, dto.FromDrivers(driverEntities))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
