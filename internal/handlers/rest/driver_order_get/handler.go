package driver_order_get

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
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP текущий заказ водителя: предложение или поездка.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	driverID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	orderEntity, err := h.service.GetDriverOrder(r.Context(), driverID)
	if err != nil {
		w.WriteHeader(dto.DispatchStatus(err))
		return
	}

	err = dto.WriteJSON(w, http.StatusOK, dto.FromOrder(orderEntity))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
