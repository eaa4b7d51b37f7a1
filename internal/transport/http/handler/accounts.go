package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/caioolkk/semcensura-loja/internal/application/account"
	"github.com/caioolkk/semcensura-loja/internal/domain"
)

// User-facing messages stay in Portuguese: they are part of the storefront
// frontend's contract. Unknown email and wrong password share one message so
// callers cannot probe which emails are registered.
const (
	msgRegistered       = "Cadastro realizado! Verifique seu email."
	msgMissingFields    = "Preencha nome, email e senha."
	msgEmailTaken       = "Email já cadastrado"
	msgBadCredentials   = "Email ou senha inválidos"
	msgNotVerified      = "Email não verificado. Confirme seu email."
	msgLoginOK          = "Login bem-sucedido"
	msgInternal         = "Erro interno. Tente novamente."
	htmlTokenMissing    = "<h3>Token não fornecido.</h3>"
	htmlTokenInvalid    = "<h3>Link inválido ou expirado.</h3>"
	htmlInternal        = "<h3>Erro interno. Tente novamente.</h3>"
	htmlConfirmTemplate = `<h3>Email confirmado com sucesso! 🎉</h3>
<p>Você já pode fazer login.</p>
<a href="%s" style="color: #e91e63;">Voltar ao site</a>`
)

// AccountHandler handles registration, confirmation and login endpoints.
type AccountHandler struct {
	svc             account.Service
	frontendBaseURL string
}

func NewAccountHandler(svc account.Service, frontendBaseURL string) *AccountHandler {
	return &AccountHandler{svc: svc, frontendBaseURL: frontendBaseURL}
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}
	if err := h.svc.Register(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			writeError(w, http.StatusBadRequest, msgEmailTaken)
		case errors.Is(err, domain.ErrBadRequest):
			writeError(w, http.StatusBadRequest, msgMissingFields)
		default:
			writeError(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: msgRegistered})
}

// Confirm serves the verification link from the email, so it answers with
// HTML rather than JSON.
func (h *AccountHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeHTML(w, http.StatusBadRequest, htmlTokenMissing)
		return
	}
	if err := h.svc.Confirm(r.Context(), token); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeHTML(w, http.StatusOK, htmlTokenInvalid)
			return
		}
		writeHTML(w, http.StatusInternalServerError, htmlInternal)
		return
	}
	writeHTML(w, http.StatusOK, fmt.Sprintf(htmlConfirmTemplate, h.frontendBaseURL))
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadCredentials)
		return
	}
	pub, err := h.svc.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, msgNotVerified)
		case errors.Is(err, domain.ErrBadRequest), errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, msgBadCredentials)
		default:
			writeError(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}
	writeJSON(w, http.StatusOK, LoginEnvelope{Message: msgLoginOK, User: pub})
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
