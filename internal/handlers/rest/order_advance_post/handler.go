package order_advance_post

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"taxi-dispatch/internal/entities"
	"taxi-dispatch/internal/handlers/rest/dto"
	"taxi-dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "order_advance"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var advanceDTO dto.OrderAdvanceRequest
	err = json.NewDecoder(r.Body).Decode(&advanceDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// неизвестный статус отсекаем здесь, до диспетчера
	toStatus, err := entities.ParseOrderStatus(advanceDTO.Status)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	order, err := h.service.AdvanceOrder(r.Context(), orderID, advanceDTO.DriverID, toStatus)
	if err != nil {
		status := dto.DispatchStatus(err)
		if status == http.StatusInternalServerError {
			h.log.Error("advance order",
				logger.NewField("order", orderID),
				logger.NewField("driver", advanceDTO.DriverID),
				logger.NewField("status", toStatus.String()),
				logger.NewField("error", err),
			)
		}
		h.writeError(w, status, err)
		return
	}

	if err := dto.WriteJSON(w, http.StatusOK, dto.FromOrder(order)); err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	if err := dto.WriteError(w, status, err); err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}
