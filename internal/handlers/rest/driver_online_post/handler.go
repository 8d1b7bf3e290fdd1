package driver_online_post

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
	handlerLog := log.With(logger.NewField("handler", "driver_online"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP ставит водителя в конец очереди; повторный вызов позицию
// не меняет.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	driverID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	driverEntity, err := h.service.RegisterDriverOnline(r.Context(), driverID)
	if err != nil {
		status := dto.DispatchStatus(err)
		if status == http.StatusInternalServerError {
			h.log.Error("register driver online",
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
