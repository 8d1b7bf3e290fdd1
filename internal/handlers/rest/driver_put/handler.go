package driver_put

import (
	"encoding/json"
	"errors"
	"net/http"

	"taxi-dispatch/internal/entities"
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
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var driverUpdateDTO dto.DriverUpdate
	err := json.NewDecoder(r.Body).Decode(&driverUpdateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// Опциональные параметры
	driverModifyEntity := entities.DriverModify{
		ID:    &driverUpdateDTO.ID,
		Name:  driverUpdateDTO.Name,
		Phone: driverUpdateDTO.Phone,
	}

	res, err := h.service.UpdateDriver(r.Context(), driverModifyEntity)
	if err != nil {
		switch {
		case errors.Is(err, driver.ErrMissingRequiredFields),
			errors.Is(err, driver.ErrInvalidDriverID),
			errors.Is(err, driver.ErrInvalidName),
			errors.Is(err, driver.ErrInvalidPhone):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, driver.ErrDriverNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, driver.ErrConflict):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	err = dto.WriteJSON(w, http.StatusOK, dto.FromDriver(res))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
