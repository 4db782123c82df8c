// Package http реализует служебный HTTP-сервер: проверка состояния и метрики.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadyFunc сообщает, готов ли сервис обрабатывать взаимодействия.
type ReadyFunc func() error

type Handler struct {
	Ready ReadyFunc
	Log   *slog.Logger
}

func NewHandler(ready ReadyFunc, log *slog.Logger) *Handler {
	return &Handler{
		Ready: ready,
		Log:   log,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) writeError(w http.ResponseWriter, handlerName, code string, status int, err error) {
	h.Log.Error("handler error",
		slog.String("handler", handlerName),
		slog.String("code", code),
		slog.Any("err", err),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := errorResponse{}
	resp.Error.Code = code
	resp.Error.Message = err.Error()
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	const handlerName = "health"

	if h.Ready != nil {
		if err := h.Ready(); err != nil {
			h.writeError(w, handlerName, "NOT_READY", http.StatusServiceUnavailable, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
