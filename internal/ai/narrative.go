package ai

import (
	"context"
	"strings"

	"quotegen/internal/core"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// QuoteStore is the persistence capability the narrative lifecycle needs.
// Lookups return (nil, nil) for missing records; errors are reserved for
// storage failures. Satisfied by the pgx services via app wiring and by an
// in-memory fake in tests.
type QuoteStore interface {
	GetCompany(ctx context.Context, companyID string) (*core.Company, error)
	GetClient(ctx context.Context, clientID string) (*core.Client, error)
	GetQuote(ctx context.Context, quoteID string) (*core.Quote, error)
	GetQuoteItems(ctx context.Context, quoteID string) ([]core.QuoteItem, error)
	GetQuoteForCompany(ctx context.Context, quoteID, companyID string) (*core.Quote, error)
	UpdateGeneratedText(ctx context.Context, quoteID, text string) error
}

// NarrativeResult is returned by Generate and Revise. Saved reports that
// the text was persisted before the call returned.
type NarrativeResult struct {
	Text  string `json:"text"`
	Saved bool   `json:"saved"`
}

// NarrativeService orchestrates the lifecycle of a quote's AI-authored
// cover text: initial generation and bounded revision. The gateway call
// and the persistence write are strictly ordered — a failed generation
// never mutates stored state.
type NarrativeService struct {
	store QuoteStore
	gen   TextGenerator
	log   *zap.Logger
}

// NewNarrativeService wires the lifecycle manager with its collaborators.
func NewNarrativeService(store QuoteStore, gen TextGenerator, log *zap.Logger) *NarrativeService {
	return &NarrativeService{store: store, gen: gen, log: log}
}

// Generate drafts cover text for a quote and persists it.
// The four reads are independent and issued concurrently.
func (s *NarrativeService) Generate(ctx context.Context, companyID, clientID, quoteID string) (*NarrativeResult, error) {
	var (
		company *core.Company
		client  *core.Client
		quote   *core.Quote
		items   []core.QuoteItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		company, err = s.store.GetCompany(gctx, companyID)
		return err
	})
	g.Go(func() error {
		var err error
		client, err = s.store.GetClient(gctx, clientID)
		return err
	})
	g.Go(func() error {
		var err error
		quote, err = s.store.GetQuote(gctx, quoteID)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.store.GetQuoteItems(gctx, quoteID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, core.Internal("failed to load quote data", err)
	}

	if company == nil || client == nil || quote == nil {
		return nil, core.NotFound("company, client or quote not found")
	}
	if len(items) == 0 {
		return nil, core.InvalidState("the quote must have at least 1 item")
	}

	prompt := buildQuotePrompt(company, client, quote, items)

	res := s.gen.Generate(ctx, prompt)
	if !res.Success {
		s.log.Warn("quote text generation failed",
			zap.String("quote_id", quoteID),
			zap.String("error", res.Error))
		return nil, core.Upstream(res.Error)
	}

	if err := s.store.UpdateGeneratedText(ctx, quoteID, res.Text); err != nil {
		return nil, core.Internal("failed to save generated text", err)
	}

	s.log.Info("quote text generated",
		zap.String("quote_id", quoteID),
		zap.Int("chars", len(res.Text)))
	return &NarrativeResult{Text: res.Text, Saved: true}, nil
}

// Revise rewrites previously generated text according to a change
// instruction. The quote lookup is scoped by company so one tenant can
// never revise another tenant's quote.
func (s *NarrativeService) Revise(ctx context.Context, companyID, quoteID, instruction string) (*NarrativeResult, error) {
	if strings.TrimSpace(instruction) == "" {
		return nil, core.InvalidInput("the 'text' field is required")
	}

	quote, err := s.store.GetQuoteForCompany(ctx, quoteID, companyID)
	if err != nil {
		return nil, core.Internal("failed to load quote", err)
	}
	if quote == nil {
		return nil, core.NotFound("quote not found or does not belong to this company")
	}
	if quote.GeneratedText == nil || strings.TrimSpace(*quote.GeneratedText) == "" {
		return nil, core.InvalidState("this quote has no generated text yet")
	}

	prompt := buildRevisionPrompt(*quote.GeneratedText, instruction)

	res := s.gen.Generate(ctx, prompt)
	if !res.Success {
		s.log.Warn("quote text revision failed",
			zap.String("quote_id", quoteID),
			zap.String("error", res.Error))
		return nil, core.Upstream(res.Error)
	}

	if err := s.store.UpdateGeneratedText(ctx, quoteID, res.Text); err != nil {
		return nil, core.Internal("failed to save revised text", err)
	}

	s.log.Info("quote text revised",
		zap.String("quote_id", quoteID),
		zap.Int("chars", len(res.Text)))
	return &NarrativeResult{Text: res.Text, Saved: true}, nil
}
