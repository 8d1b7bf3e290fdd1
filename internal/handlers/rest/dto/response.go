package dto

import (
	"encoding/json"
	"errors"
	"net/http"

	"taxi-dispatch/internal/service/dispatch"
)

// DispatchStatus HTTP-статус для отказа диспетчера.
func DispatchStatus(err error) int {
	switch {
	case dispatch.IsValidation(err):
		return http.StatusBadRequest
	case dispatch.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, dispatch.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON пишет тело ответа; ошибку кодирования возвращает вызывающему
// для логирования, заголовки к этому моменту уже отправлены.
func WriteJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// WriteError отдает причину отказа. Текст внутренних ошибок наружу не уходит.
func WriteError(w http.ResponseWriter, status int, err error) error {
	msg := http.StatusText(status)
	if status < http.StatusInternalServerError && err != nil {
		msg = err.Error()
	}
	return WriteJSON(w, status, ErrorResponse{Error: msg})
}
