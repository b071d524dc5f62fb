package web

import "net/http"

// generateOptions mirrors the accepted (optional) generate request body.
// Decoded for forward compatibility; generation currently ignores it.
type generateOptions struct {
	Lang     string `json:"lang,omitempty"`
	Tone     string `json:"tone,omitempty"`
	MaxItems int    `json:"maxItems,omitempty"`
	MaxWords int    `json:"maxWords,omitempty"`
	Persist  *bool  `json:"persist,omitempty"`
}

// generateQuoteText handles
// POST /api/company/{companyID}/client/{clientID}/quote/{quoteID}/generate.
func (h *Handler) generateQuoteText(w http.ResponseWriter, r *http.Request) {
	companyID, _ := pathID(r, "companyID")
	clientID, ok := pathID(r, "clientID")
	if !ok {
		writeError(w, r, "invalid client id", "INVALID_INPUT", http.StatusBadRequest)
		return
	}
	quoteID, ok := pathID(r, "quoteID")
	if !ok {
		writeError(w, r, "invalid quote id", "INVALID_INPUT", http.StatusBadRequest)
		return
	}

	// Body is optional; decode only to reject malformed JSON early.
	if r.ContentLength > 0 {
		var opts generateOptions
		if !decodeJSON(w, r, &opts) {
			return
		}
	}

	result, err := h.svc.GenerateQuoteText(r.Context(), companyID, clientID, quoteID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// updateGeneratedText handles
// POST /api/company/{companyID}/client/{clientID}/quote/{quoteID}/update-generated.
func (h *Handler) updateGeneratedText(w http.ResponseWriter, r *http.Request) {
	companyID, _ := pathID(r, "companyID")
	quoteID, ok := pathID(r, "quoteID")
	if !ok {
		writeError(w, r, "invalid quote id", "INVALID_INPUT", http.StatusBadRequest)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.ReviseQuoteText(r.Context(), companyID, quoteID, req.Text)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
