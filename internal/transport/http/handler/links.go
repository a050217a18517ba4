package handler

import (
	"net/http"

	"github.com/cp-portal/internal/application/link"
	"github.com/cp-portal/internal/domain"
	appmiddleware "github.com/cp-portal/internal/transport/http/middleware"
)

// LinkHandler handles the Codeforces account link flow.
type LinkHandler struct {
	svc link.Service
}

func NewLinkHandler(svc link.Service) *LinkHandler { return &LinkHandler{svc: svc} }

type challengeResponse struct {
	Message   string `json:"message"`
	Challenge string `json:"challenge"`
}

type linkedResponse struct {
	Message string `json:"message"`
	Handle  string `json:"handle"`
	Rating  int    `json:"rating"`
}

// ownsTarget reports whether the caller may act on accountID. Admins may act
// on any account.
func ownsTarget(w http.ResponseWriter, r *http.Request, accountID string) bool {
	claims, ok := appmiddleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	if claims.AccountID != accountID && claims.Role != domain.RoleAdmin {
		writeError(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}

func (h *LinkHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	var req domain.InitiateLinkRequest
	if !decodeValid(w, r, &req) {
		return
	}
	if !ownsTarget(w, r, req.AccountID) {
		return
	}
	challenge, err := h.svc.Initiate(r.Context(), req.AccountID, req.Handle)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, challengeResponse{
		Message:   "put the challenge into your Codeforces first name, then call verify",
		Challenge: challenge,
	})
}

func (h *LinkHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyLinkRequest
	if !decodeValid(w, r, &req) {
		return
	}
	if !ownsTarget(w, r, req.AccountID) {
		return
	}
	l, err := h.svc.Verify(r.Context(), req.AccountID)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, linkedResponse{
		Message: "codeforces account verified",
		Handle:  l.Handle,
		Rating:  l.Rating,
	})
}
