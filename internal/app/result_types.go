package app

import "quotegen/internal/core"

// QuoteResult is returned by quote read and write operations.
type QuoteResult struct {
	Quote *core.Quote      `json:"quote"`
	Items []core.QuoteItem `json:"items"`
}

// QuoteListResult is returned by ListQuotes.
type QuoteListResult struct {
	Quotes    []core.QuoteSummary `json:"quotes"`
	CompanyID string              `json:"company_id"`
}

// ClientListResult is returned by ListClients.
type ClientListResult struct {
	Clients []core.Client `json:"clients"`
}
