package app

import (
	"context"
	"time"

	"quotegen/internal/ai"
	"quotegen/internal/core"
)

type appService struct {
	companies   core.CompanyService
	clients     core.ClientService
	quotes      core.QuoteService
	memberships core.MembershipService
	narrative   *ai.NarrativeService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	companies core.CompanyService,
	clients core.ClientService,
	quotes core.QuoteService,
	memberships core.MembershipService,
	narrative *ai.NarrativeService,
) ApplicationService {
	return &appService{
		companies:   companies,
		clients:     clients,
		quotes:      quotes,
		memberships: memberships,
		narrative:   narrative,
	}
}

// NarrativeStore bundles the persistence services into the single
// capability the narrative lifecycle consumes.
func NarrativeStore(companies core.CompanyService, clients core.ClientService, quotes core.QuoteService) ai.QuoteStore {
	return &narrativeStore{companies: companies, clients: clients, quotes: quotes}
}

type narrativeStore struct {
	companies core.CompanyService
	clients   core.ClientService
	quotes    core.QuoteService
}

func (s *narrativeStore) GetCompany(ctx context.Context, companyID string) (*core.Company, error) {
	return s.companies.GetCompany(ctx, companyID)
}

func (s *narrativeStore) GetClient(ctx context.Context, clientID string) (*core.Client, error) {
	return s.clients.GetClient(ctx, clientID)
}

func (s *narrativeStore) GetQuote(ctx context.Context, quoteID string) (*core.Quote, error) {
	return s.quotes.GetQuote(ctx, quoteID)
}

func (s *narrativeStore) GetQuoteItems(ctx context.Context, quoteID string) ([]core.QuoteItem, error) {
	return s.quotes.GetQuoteItems(ctx, quoteID)
}

func (s *narrativeStore) GetQuoteForCompany(ctx context.Context, quoteID, companyID string) (*core.Quote, error) {
	return s.quotes.GetQuoteForCompany(ctx, quoteID, companyID)
}

func (s *narrativeStore) UpdateGeneratedText(ctx context.Context, quoteID, text string) error {
	return s.quotes.UpdateGeneratedText(ctx, quoteID, text)
}

func (s *appService) CreateCompany(ctx context.Context, req CreateCompanyRequest) (*core.Company, error) {
	return s.companies.CreateCompany(ctx, core.CompanyInput{
		Name:    req.Name,
		Address: req.Address,
		Email:   req.Email,
		Phone:   req.Phone,
	})
}

func (s *appService) GetCompany(ctx context.Context, companyID string) (*core.Company, error) {
	company, err := s.companies.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, core.NotFound("company not found")
	}
	return company, nil
}

func (s *appService) IsCompanyMember(ctx context.Context, companyID, userID string) (bool, error) {
	m, err := s.memberships.GetMembership(ctx, companyID, userID)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

func (s *appService) CreateClient(ctx context.Context, companyID string, req CreateClientRequest) (*core.Client, error) {
	return s.clients.CreateClient(ctx, companyID, core.ClientInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
}

func (s *appService) ListClients(ctx context.Context, companyID string) (*ClientListResult, error) {
	clients, err := s.clients.ListClients(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &ClientListResult{Clients: clients}, nil
}

// parseIssueDate accepts an ISO date or RFC 3339 timestamp; empty means now.
func parseIssueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, core.InvalidInput("issueDate must be an ISO date")
}

func itemInputs(items []QuoteItemRequest) []core.QuoteItemInput {
	out := make([]core.QuoteItemInput, len(items))
	for i, it := range items {
		out[i] = core.QuoteItemInput{
			Title:       it.Title,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			DiscountPct: it.DiscountPct,
			TaxRate:     it.TaxRate,
		}
	}
	return out
}

func (s *appService) CreateQuote(ctx context.Context, req CreateQuoteRequest) (*QuoteResult, error) {
	client, err := s.clients.GetClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.CompanyID != req.CompanyID {
		return nil, core.NotFound("client not found for this company")
	}

	issueDate, err := parseIssueDate(req.IssueDate)
	if err != nil {
		return nil, err
	}

	quote, items, err := s.quotes.CreateQuote(ctx, req.CompanyID, req.ClientID, req.CreatedByID, core.QuoteInput{
		QuoteNumber:    req.QuoteNumber,
		Currency:       req.Currency,
		Description:    req.Description,
		IssueDate:      issueDate,
		DiscountAmount: req.DiscountAmount,
		TaxAmount:      req.TaxAmount,
		Items:          itemInputs(req.Items),
	})
	if err != nil {
		return nil, err
	}
	return &QuoteResult{Quote: quote, Items: items}, nil
}

func (s *appService) GetQuote(ctx context.Context, companyID, quoteID string) (*QuoteResult, error) {
	quote, err := s.quotes.GetQuoteForCompany(ctx, quoteID, companyID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, core.NotFound("quote not found")
	}
	items, err := s.quotes.GetQuoteItems(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	return &QuoteResult{Quote: quote, Items: items}, nil
}

func (s *appService) ListQuotes(ctx context.Context, companyID string) (*QuoteListResult, error) {
	quotes, err := s.quotes.ListQuotes(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &QuoteListResult{Quotes: quotes, CompanyID: companyID}, nil
}

func (s *appService) UpdateQuote(ctx context.Context, req UpdateQuoteRequest) (*QuoteResult, error) {
	existing, err := s.quotes.GetQuoteForCompany(ctx, req.QuoteID, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, core.NotFound("quote not found")
	}

	var status *core.QuoteStatus
	if req.Status != nil {
		st := core.QuoteStatus(*req.Status)
		status = &st
	}

	quote, items, err := s.quotes.UpdateQuote(ctx, req.QuoteID, core.QuoteUpdateInput{
		Currency:       req.Currency,
		Description:    req.Description,
		Status:         status,
		DiscountAmount: req.DiscountAmount,
		TaxAmount:      req.TaxAmount,
		Items:          itemInputs(req.Items),
	})
	if err != nil {
		return nil, err
	}
	return &QuoteResult{Quote: quote, Items: items}, nil
}

func (s *appService) DeleteQuote(ctx context.Context, companyID, quoteID string) error {
	existing, err := s.quotes.GetQuoteForCompany(ctx, quoteID, companyID)
	if err != nil {
		return err
	}
	if existing == nil {
		return core.NotFound("quote not found")
	}
	return s.quotes.DeleteQuote(ctx, quoteID)
}

func (s *appService) GenerateQuoteText(ctx context.Context, companyID, clientID, quoteID string) (*ai.NarrativeResult, error) {
	return s.narrative.Generate(ctx, companyID, clientID, quoteID)
}

func (s *appService) ReviseQuoteText(ctx context.Context, companyID, quoteID, instruction string) (*ai.NarrativeResult, error) {
	return s.narrative.Revise(ctx, companyID, quoteID, instruction)
}
