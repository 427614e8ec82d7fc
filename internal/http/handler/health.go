package handler

import (
	"context"
	"net/http"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether the persistence store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db  Pinger
	env string
}

func NewHealthHandler(db Pinger, env string) *HealthHandler {
	return &HealthHandler{db: db, env: env}
}

type healthResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
	Database    string `json:"database"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "only GET is allowed")
		return
	}

	database := "Connected"
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		database = "Disconnected"
	}

	WriteJSON(w, http.StatusOK, healthResponse{
		Success:     true,
		Message:     "server is running",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Environment: h.env,
		Database:    database,
	})
}
