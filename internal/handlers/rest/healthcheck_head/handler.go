package healthcheck_head

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"
)

const pingTimeout = time.Second

// Handler готовность принимать трафик: процесс не останавливается
// и хранилище, без которого диспетчер не работает, отвечает.
type Handler struct {
	isShuttingDown *atomic.Bool
	storage        storagePinger
}

func New(isShuttingDown *atomic.Bool, storage storagePinger) *Handler {
	return &Handler{
		isShuttingDown: isShuttingDown,
		storage:        storage,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.isShuttingDown.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
