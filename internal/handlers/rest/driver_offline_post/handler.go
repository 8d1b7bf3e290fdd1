package driver_offline_post

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"taxi-dispatch/internal/handlers/rest/dto"
	"taxi-dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "driver_offline"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP снимает водителя с линии. Неподтвержденное предложение при
// этом возвращается в pending и уходит следующему водителю.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	driverID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	driverEntity, err := h.service.RegisterDriverOffline(r.Context(), driverID)
	if err != nil {
		status := dto.DispatchStatus(err)
		if status == http.StatusInternalServerError {
			h.log.Error("register driver offline",
				logger.NewField("driver", driverID),
				logger.NewField("error", err),
			)
		}
		if err := dto.WriteError(w, status, err); err != nil {
			h.log.Error("encode JSON response", logger.NewField("error", err))
		}
		return
	}

	if err := dto.WriteJSON(w, http.StatusOK, dto.FromDriver(driverEntity)); err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}
