package handler

import (
	"errors"
	"net/http"

	"github.com/cp-portal/internal/application/account"
	"github.com/cp-portal/internal/domain"
)

// AccountHandler handles registration and email verification endpoints.
type AccountHandler struct {
	svc account.Service
}

func NewAccountHandler(svc account.Service) *AccountHandler { return &AccountHandler{svc: svc} }

type registeredResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decodeValid(w, r, &req) {
		return
	}
	a, err := h.svc.Register(r.Context(), req)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, registeredResponse{
		Message: "account created, email verification required",
		Email:   a.Email,
	})
}

func (h *AccountHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req domain.ConfirmRequest
	if !decodeValid(w, r, &req) {
		return
	}
	if _, err := h.svc.Confirm(r.Context(), req.Email, req.Code); err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "email verified"})
}

func (h *AccountHandler) Resend(w http.ResponseWriter, r *http.Request) {
	var req domain.ResendRequest
	if !decodeValid(w, r, &req) {
		return
	}
	if err := h.svc.Resend(r.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrAlreadyVerified) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "verification code sent"})
}
