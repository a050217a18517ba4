package handler

import (
	"net/http"

	"github.com/cp-portal/internal/application/session"
	"github.com/cp-portal/internal/domain"
)

// SessionHandler handles sign-in.
type SessionHandler struct {
	svc session.Service
}

func NewSessionHandler(svc session.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeValid(w, r, &req) {
		return
	}
	result, err := h.svc.Login(r.Context(), req)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{
		Bearer:  result.Bearer,
		Account: toSafeAccount(result.Account),
	})
}
