package driver_activity_put

import (
	"encoding/json"
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
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	driverID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var activityDTO dto.DriverActivityRequest
	err = json.NewDecoder(r.Body).Decode(&activityDTO)
	if err != nil || activityDTO.IsActive == nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	driverEntity, err := h.service.SetDriverActive(r.Context(), driverID, *activityDTO.IsActive)
	if err != nil {
		status := dto.DispatchStatus(err)
		if status == http.StatusInternalServerError {
			h.log.Error("set driver activity",
				logger.NewField("driver", driverID),
				logger.NewField("error", err),
			)
		}
		w.WriteHeader(status)
		return
	}

	err = dto.WriteJSON(w, http.StatusOK, dto.FromDriver(driverEntity))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
