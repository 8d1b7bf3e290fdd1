package driver_post

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
	var driverCreateDTO dto.DriverCreate
	err := json.NewDecoder(r.Body).Decode(&driverCreateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	driverModifyEntity := entities.DriverModify{
		Name:  &driverCreateDTO.Name,
		Phone: &driverCreateDTO.Phone,
	}

	id, err := h.service.CreateDriver(r.Context(), driverModifyEntity)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, driver.ErrMissingRequiredFields),
			errors.Is(err, driver.ErrInvalidName),
			errors.Is(err, driver.ErrInvalidPhone):
			status = http.StatusBadRequest
		case errors.Is(err, driver.ErrConflict):
			status = http.StatusConflict
		default:
			h.log.Error("create driver", logger.NewField("error", err))
		}
		h.writeError(w, status, err)
		return
	}

	err = dto.WriteJSON(w, http.StatusCreated, dto.DriverCreateResponse{ID: id})
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	if err := dto.WriteError(w, status, err); err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}
