package web

import (
	"net/http"

	"quotegen/internal/app"
)

// createQuote handles POST /api/company/{companyID}/client/{clientID}/quote.
func (h *Handler) createQuote(w http.ResponseWriter, r *http.Request) {
	companyID, _ := pathID(r, "companyID")
	clientID, ok := pathID(r, "clientID")
	if !ok {
		writeError(w, r, "invalid client id", "INVALID_INPUT", http.StatusBadRequest)
		return
	}

	var req app.CreateQuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.CompanyID = companyID
	req.ClientID = clientID
	if claims := authFromContext(r.Context()); claims != nil {
		req.CreatedByID = &claims.UserID
	}

	result, err := h.svc.CreateQuote(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// getQuote handles GET /api/company/{companyID}/client/{clientID}/quote/{quoteID}.
func (h *Handler) getQuote(w http.ResponseWriter, r *http.Request) {
	companyID, _ := pathID(r, "companyID")
	quoteID, ok := pathID(r, "quoteID")
	if !ok {
		writeError(w, r, "invalid quote id", "INVALID_INPUT", http.StatusBadRequest)
		return
	}

	result, err := h.svc.GetQuote(r.Context(), companyID, quoteID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// listQuotes handles GET /api/company/{companyID}/quotes.
func (h *Handler) listQuotes(w http.ResponseWriter, r *http.Request) {
	companyID, _ := pathID(r, "companyID")

	result, err := h.svc.ListQuotes(r.Context(), companyID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// updateQuote handles PUT /api/company/{companyID}/client/{clientID}/quote/{quoteID}.
// The item set in the body fully replaces the quote's items.
func (h *Handler) updateQuote(w http.ResponseWriter, r *http.Request) {
	companyID, _ := pathID(r, "companyID")
	quoteID, ok := pathID(r, "quoteID")
	if !ok {
		writeError(w, r, "invalid quote id", "INVALID_INPUT", http.StatusBadRequest)
		return
	}

	var req app.UpdateQuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.CompanyID = companyID
	req.QuoteID = quoteID

	result, err := h.svc.UpdateQuote(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// deleteQuote handles DELETE /api/company/{companyID}/client/{clientID}/quote/{quoteID}.
func (h *Handler) deleteQuote(w http.ResponseWriter, r *http.Request) {
	companyID, _ := pathID(r, "companyID")
	quoteID, ok := pathID(r, "quoteID")
	if !ok {
		writeError(w, r, "invalid quote id", "INVALID_INPUT", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteQuote(r.Context(), companyID, quoteID); err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	type response struct {
		Message string `json:"message"`
	}
	writeJSON(w, http.StatusOK, response{Message: "quote and items deleted"})
}
