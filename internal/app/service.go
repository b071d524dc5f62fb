package app

import (
	"context"

	"quotegen/internal/ai"
	"quotegen/internal/core"
)

// ApplicationService is the single interface the web adapter calls. It
// decouples the HTTP layer from domain logic; implementations contain no
// status codes and no response formatting.
type ApplicationService interface {
	// CreateCompany creates a new company (tenant).
	CreateCompany(ctx context.Context, req CreateCompanyRequest) (*core.Company, error)

	// GetCompany returns a company by id.
	GetCompany(ctx context.Context, companyID string) (*core.Company, error)

	// IsCompanyMember reports whether the user belongs to the company.
	IsCompanyMember(ctx context.Context, companyID, userID string) (bool, error)

	// CreateClient creates a client record under a company.
	CreateClient(ctx context.Context, companyID string, req CreateClientRequest) (*core.Client, error)

	// ListClients returns all clients of a company.
	ListClients(ctx context.Context, companyID string) (*ClientListResult, error)

	// CreateQuote creates a quote with its items in one transaction.
	// Totals and 1-based item positions are derived, never taken from input.
	CreateQuote(ctx context.Context, req CreateQuoteRequest) (*QuoteResult, error)

	// GetQuote returns a quote with its items, scoped to the company.
	GetQuote(ctx context.Context, companyID, quoteID string) (*QuoteResult, error)

	// ListQuotes returns quote summaries for a company.
	ListQuotes(ctx context.Context, companyID string) (*QuoteListResult, error)

	// UpdateQuote replaces a quote's fields and its full item set atomically.
	UpdateQuote(ctx context.Context, req UpdateQuoteRequest) (*QuoteResult, error)

	// DeleteQuote deletes a quote and, by cascade, its items.
	DeleteQuote(ctx context.Context, companyID, quoteID string) error

	// GenerateQuoteText drafts AI cover text for a quote and persists it.
	GenerateQuoteText(ctx context.Context, companyID, clientID, quoteID string) (*ai.NarrativeResult, error)

	// ReviseQuoteText rewrites previously generated cover text according to
	// a change instruction and persists the result.
	ReviseQuoteText(ctx context.Context, companyID, quoteID, instruction string) (*ai.NarrativeResult, error)
}
