package handler

import (
	"net/http"

	"github.com/cp-portal/internal/application/info"
	"github.com/cp-portal/internal/domain"
)

// InfoHandler serves informational entries.
type InfoHandler struct {
	svc info.Service
}

func NewInfoHandler(svc info.Service) *InfoHandler { return &InfoHandler{svc: svc} }

func (h *InfoHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Data: entries})
}

func (h *InfoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.InfoEntryInput
	if !decodeValid(w, r, &in) {
		return
	}
	e, err := h.svc.Create(r.Context(), in.Title, in.Body, in.Order)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, DataEnvelope{Data: e})
}
