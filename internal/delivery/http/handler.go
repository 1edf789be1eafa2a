package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/imasse-dev/browser-ios/internal/logger"
)

// Deliverer consumes one raw payload per injected push.
type Deliverer interface {
	Handle(ctx context.Context, payload map[string]string)
}

// PushHandler exposes a debug surface for feeding payloads into the pipeline
// without a live push relay.
type PushHandler struct {
	Deliverer Deliverer
	Log       *logger.Logger
}

func NewPushHandler(deliverer Deliverer, log *logger.Logger) *PushHandler {
	return &PushHandler{
		Deliverer: deliverer,
		Log:       log.WithComponent("http"),
	}
}

func (h *PushHandler) HandlePush(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var payload map[string]string
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if len(payload) == 0 {
		http.Error(w, "empty payload", http.StatusBadRequest)
		return
	}

	h.Deliverer.Handle(r.Context(), payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
}

func (h *PushHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func StartWebServer(handler *PushHandler, port int) {
	http.HandleFunc("/api/push", handler.HandlePush)
	http.HandleFunc("/healthz", handler.HandleHealth)

	addr := fmt.Sprintf(":%d", port)
	handler.Log.Info("debug API listening", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, nil); err != nil {
		handler.Log.Error("web server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
