package core

import "time"

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "DRAFT"
	QuoteStatusSent     QuoteStatus = "SENT"
	QuoteStatusAccepted QuoteStatus = "ACCEPTED"
	QuoteStatusRejected QuoteStatus = "REJECTED"
)

type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type Client struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Membership links a user to a company with a role. Every company-scoped
// route checks it before any domain logic runs.
type Membership struct {
	CompanyID string    `json:"company_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Quote struct {
	ID             string      `json:"id"`
	CompanyID      string      `json:"company_id"`
	ClientID       string      `json:"client_id"`
	CreatedByID    *string     `json:"created_by_id,omitempty"`
	QuoteNumber    string      `json:"quote_number"`
	Status         QuoteStatus `json:"status"`
	Currency       string      `json:"currency"`
	Subtotal       float64     `json:"subtotal"`
	DiscountAmount float64     `json:"discount_amount"`
	TaxAmount      float64     `json:"tax_amount"`
	Total          float64     `json:"total"`
	Description    string      `json:"description"`
	IssueDate      time.Time   `json:"issue_date"`
	// GeneratedText is the AI-authored narrative. nil until the first
	// successful generation; overwritten, never appended, on each revision.
	GeneratedText *string   `json:"generated_text,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type QuoteItem struct {
	ID          string  `json:"id"`
	QuoteID     string  `json:"quote_id"`
	Position    int     `json:"position"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
	DiscountPct float64 `json:"discount_pct"`
	TaxRate     float64 `json:"tax_rate"`
	LineTotal   float64 `json:"line_total"`
}

// QuoteSummary is the list-view projection of a quote.
type QuoteSummary struct {
	ID          string `json:"id"`
	QuoteNumber string `json:"quote_number"`
	Description string `json:"description"`
}
