package web

import (
	"net/http"

	"quotegen/internal/app"
)

// createClient handles POST /api/company/{companyID}/client.
func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	companyID, _ := pathID(r, "companyID")

	var req app.CreateClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	client, err := h.svc.CreateClient(r.Context(), companyID, req)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

// listClients handles GET /api/company/{companyID}/client.
func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	companyID, _ := pathID(r, "companyID")

	result, err := h.svc.ListClients(r.Context(), companyID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
