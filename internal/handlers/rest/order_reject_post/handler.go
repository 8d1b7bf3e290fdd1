package order_reject_post

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
	handlerLog := log.With(logger.NewField("handler", "order_reject"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP отказ водителя от предложения. В ответе заказ уже после
// повторного назначения: он может быть предложен другому водителю.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var actionDTO dto.DriverActionRequest
	err = json.NewDecoder(r.Body).Decode(&actionDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	order, err := h.service.RejectOrder(r.Context(), orderID, actionDTO.DriverID)
	if err != nil {
		status := dto.DispatchStatus(err)
		if status == http.StatusInternalServerError {
			h.log.Error("reject order",
				logger.NewField("order", orderID),
				logger.NewField("driver", actionDTO.DriverID),
				logger.NewField("error", err),
			)
		}
		if err := dto.WriteError(w, status, err); err != nil {
			h.log.Error("encode JSON response", logger.NewField("error", err))
		}
		return
	}

	if err := dto.WriteJSON(w, http.StatusOK, dto.FromOrder(order)); err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}
