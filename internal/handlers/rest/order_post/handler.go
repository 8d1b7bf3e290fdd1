package order_post

import (
	"encoding/json"
	"net/http"

	"taxi-dispatch/internal/entities"
	"taxi-dispatch/internal/handlers/rest/dto"
	"taxi-dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "order_submit"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP создает заказ и сразу пытается назначить водителя. Если
// свободных нет, заказ возвращается в статусе pending, это не ошибка.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var orderCreateDTO dto.OrderCreate
	err := json.NewDecoder(r.Body).Decode(&orderCreateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	orderModifyEntity := entities.OrderModify{
		PassengerID: &orderCreateDTO.PassengerID,
		Pickup:      dto.ToPlace(orderCreateDTO.Pickup),
		Destination: dto.ToPlace(orderCreateDTO.Destination),
	}

	order, err := h.service.SubmitOrder(r.Context(), orderModifyEntity)
	if err != nil {
		status := dto.DispatchStatus(err)
		if status == http.StatusInternalServerError {
			h.log.Error("submit order",
				logger.NewField("passenger", orderCreateDTO.PassengerID),
				logger.NewField("error", err),
			)
		}
		if err := dto.WriteError(w, status, err); err != nil {
			h.log.Error("encode JSON response", logger.NewField("error", err))
		}
		return
	}

	if err := dto.WriteJSON(w, http.StatusCreated, dto.FromOrder(order)); err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}
