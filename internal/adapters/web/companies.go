package web

import (
	"net/http"

	"quotegen/internal/app"
)

// createCompany handles POST /api/company.
func (h *Handler) createCompany(w http.ResponseWriter, r *http.Request) {
	var req app.CreateCompanyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	company, err := h.svc.CreateCompany(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, company)
}

// getCompany handles GET /api/company/{companyID}.
func (h *Handler) getCompany(w http.ResponseWriter, r *http.Request) {
	companyID, ok := pathID(r, "companyID")
	if !ok {
		writeError(w, r, "invalid company id", "INVALID_INPUT", http.StatusBadRequest)
		return
	}

	company, err := h.svc.GetCompany(r.Context(), companyID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, company)
}
