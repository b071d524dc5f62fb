package app

// CreateCompanyRequest is the input for CreateCompany.
type CreateCompanyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// CreateClientRequest is the input for CreateClient.
type CreateClientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// QuoteItemRequest is one line item in a create or update request.
// DiscountPct and TaxRate are pointers: an omitted field defaults to 0
// without swallowing an explicit user-entered 0.
type QuoteItemRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	Unit        string   `json:"unit"`
	UnitPrice   float64  `json:"unitPrice"`
	DiscountPct *float64 `json:"discountPct,omitempty"`
	TaxRate     *float64 `json:"taxRate,omitempty"`
}

// CreateQuoteRequest is the input for CreateQuote.
type CreateQuoteRequest struct {
	CompanyID      string
	ClientID       string
	CreatedByID    *string
	QuoteNumber    string             `json:"quoteNumber"`
	Currency       string             `json:"currency"`
	Description    string             `json:"description"`
	IssueDate      string             `json:"issueDate"` // ISO date, empty means today
	DiscountAmount *float64           `json:"discountAmount,omitempty"`
	TaxAmount      *float64           `json:"taxAmount,omitempty"`
	Items          []QuoteItemRequest `json:"items"`
}

// UpdateQuoteRequest is the input for UpdateQuote. Items is the complete
// replacement set for the quote.
type UpdateQuoteRequest struct {
	CompanyID      string
	QuoteID        string
	Currency       string             `json:"currency"`
	Description    string             `json:"description"`
	Status         *string            `json:"status,omitempty"`
	DiscountAmount *float64           `json:"discountAmount,omitempty"`
	TaxAmount      *float64           `json:"taxAmount,omitempty"`
	Items          []QuoteItemRequest `json:"items"`
}
