package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// pathID reads a URL parameter and validates it as a UUID. Malformed ids
// are rejected before any persistence or gateway call is made.
func pathID(r *http.Request, name string) (string, bool) {
	raw := chi.URLParam(r, name)
	if _, err := uuid.Parse(raw); err != nil {
		return "", false
	}
	return raw, true
}

// RequireMembership is chi middleware for routes under /company/{companyID}.
// It rejects requests from users who are not members of the company, so no
// handler ever sees another tenant's ids.
func (h *Handler) RequireMembership(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := authFromContext(r.Context())
		if claims == nil {
			writeError(w, r, "authentication required", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}

		companyID, ok := pathID(r, "companyID")
		if !ok {
			writeError(w, r, "invalid company id", "INVALID_INPUT", http.StatusBadRequest)
			return
		}

		member, err := h.svc.IsCompanyMember(r.Context(), companyID, claims.UserID)
		if err != nil {
			h.writeDomainError(w, r, err)
			return
		}
		if !member {
			writeError(w, r, "you are not a member of this company", "FORBIDDEN", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
