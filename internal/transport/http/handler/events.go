package handler

import (
	"net/http"
	"time"

	"github.com/cp-portal/internal/application/calendar"
	"github.com/cp-portal/internal/domain"
)

// EventHandler serves the contest calendar.
type EventHandler struct {
	svc calendar.Service
}

func NewEventHandler(svc calendar.Service) *EventHandler { return &EventHandler{svc: svc} }

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	var rng calendar.Range
	for name, dst := range map[string]*time.Time{"from": &rng.From, "to": &rng.To} {
		v := r.URL.Query().Get(name)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "query '"+name+"' must be RFC3339")
			return
		}
		*dst = t
	}
	events, err := h.svc.List(r.Context(), rng)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Data: events})
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.CalendarEventInput
	if !decodeValid(w, r, &in) {
		return
	}
	e, err := h.svc.Create(r.Context(), in)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, DataEnvelope{Data: e})
}
