package driver_get

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"taxi-dispatch/internal/handlers/rest/dto"
	"taxi-dispatch/internal/service/driver"
	"taxi-dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	driverEntity, err := h.service.GetDriver(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, driver.ErrDriverNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, driver.ErrInvalidDriverID):
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	err = dto.WriteJSON(w, http.StatusOK, dto.FromDriver(driverEntity))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
