package handler

import (
	"net/http"

	"github.com/caioolkk/semcensura-loja/internal/application/account"
	"github.com/caioolkk/semcensura-loja/internal/application/checkout"
)

// AdminHandler serves the read-only dashboard endpoints. Password hashes and
// verification tokens never serialize (json:"-" on the domain structs).
type AdminHandler struct {
	accounts account.Service
	orders   checkout.Service
}

func NewAdminHandler(accounts account.Service, orders checkout.Service) *AdminHandler {
	return &AdminHandler{accounts: accounts, orders: orders}
}

func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}
