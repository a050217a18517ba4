package handler

import (
	"net/http"

	"github.com/cp-portal/internal/application/profile"
	"github.com/cp-portal/internal/domain"
	"github.com/cp-portal/internal/pkg/id"
	appmiddleware "github.com/cp-portal/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// ProfileHandler serves the caller's profile and admin rating adjustments.
type ProfileHandler struct {
	svc profile.Service
}

func NewProfileHandler(svc profile.Service) *ProfileHandler { return &ProfileHandler{svc: svc} }

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := appmiddleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	p, err := h.svc.Get(r.Context(), claims.AccountID)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) RecordRatingChange(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if !id.Valid(accountID) {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	var in domain.RatingChangeInput
	if !decodeValid(w, r, &in) {
		return
	}
	c, err := h.svc.RecordRatingChange(r.Context(), accountID, in)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, DataEnvelope{Data: c})
}
