package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vineetGray/crudtodo/internal/service"
)

// Envelope is the shared response shape: either success with data, or
// failure with an error string. Never both.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func WriteData(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// WriteList is WriteData plus the count field for list responses.
func WriteList(w http.ResponseWriter, status int, message string, data any, count int) {
	WriteJSON(w, status, Envelope{Success: true, Message: message, Data: data, Count: &count})
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Success: false, Error: message})
}

// writeServiceError maps service sentinels onto the HTTP taxonomy.
// Anything unexpected becomes a generic 500; the detail is logged
// server-side only.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, service.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "something went wrong on the server")
	}
}

// decodeJSON rejects bodies that do not match the request struct shape
// instead of silently dropping unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
