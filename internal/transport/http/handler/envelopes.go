package handler

import (
	"encoding/json"
	"net/http"

	"github.com/caioolkk/semcensura-loja/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// LoginEnvelope wraps the login response with the public account projection.
type LoginEnvelope struct {
	Message string                `json:"message"`
	User    *domain.PublicAccount `json:"user"`
}

// PreferenceEnvelope wraps the checkout response.
type PreferenceEnvelope struct {
	ID string `json:"id"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
