package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/caioolkk/semcensura-loja/internal/application/checkout"
	"github.com/caioolkk/semcensura-loja/internal/domain"
)

const (
	msgIncompleteData = "Dados incompletos."
	msgPreferenceFail = "Erro ao criar preferência de pagamento."
)

// CheckoutHandler handles the create_preference endpoint.
type CheckoutHandler struct {
	svc checkout.Service
}

func NewCheckoutHandler(svc checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

func (h *CheckoutHandler) CreatePreference(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgIncompleteData)
		return
	}
	prefID, err := h.svc.Checkout(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrBadRequest) {
			writeError(w, http.StatusBadRequest, msgIncompleteData)
			return
		}
		// Storage and gateway failures both surface as 500; the order is
		// already durable in the gateway case.
		writeError(w, http.StatusInternalServerError, msgPreferenceFail)
		return
	}
	writeJSON(w, http.StatusOK, PreferenceEnvelope{ID: prefID})
}
