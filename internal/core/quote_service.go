package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuoteItemInput is the caller-supplied data for one line item.
// DiscountPct and TaxRate are optional; absent means 0 (a pointer keeps a
// user-entered 0 distinct from an omitted field).
type QuoteItemInput struct {
	Title       string
	Description string
	Quantity    float64
	Unit        string
	UnitPrice   float64
	DiscountPct *float64
	TaxRate     *float64
}

// QuoteInput is the caller-supplied data for creating a quote.
type QuoteInput struct {
	QuoteNumber    string
	Currency       string
	Description    string
	IssueDate      *time.Time
	DiscountAmount *float64
	TaxAmount      *float64
	Items          []QuoteItemInput
}

// QuoteUpdateInput replaces a quote's mutable fields and its full item set.
type QuoteUpdateInput struct {
	Currency       string
	Description    string
	Status         *QuoteStatus
	DiscountAmount *float64
	TaxAmount      *float64
	Items          []QuoteItemInput
}

// QuoteService owns quote and quote-item persistence. A quote and its
// items are created, replaced, and deleted together; item replacement is
// always delete-all-then-insert-all inside one transaction. Lookups
// return (nil, nil) for missing records.
type QuoteService interface {
	CreateQuote(ctx context.Context, companyID, clientID string, createdByID *string, input QuoteInput) (*Quote, []QuoteItem, error)
	GetQuote(ctx context.Context, quoteID string) (*Quote, error)
	GetQuoteItems(ctx context.Context, quoteID string) ([]QuoteItem, error)
	// GetQuoteForCompany looks a quote up by id AND company so a caller can
	// never reach another tenant's quote through this method.
	GetQuoteForCompany(ctx context.Context, quoteID, companyID string) (*Quote, error)
	ListQuotes(ctx context.Context, companyID string) ([]QuoteSummary, error)
	UpdateQuote(ctx context.Context, quoteID string, input QuoteUpdateInput) (*Quote, []QuoteItem, error)
	DeleteQuote(ctx context.Context, quoteID string) error
	// UpdateGeneratedText overwrites the stored narrative in a single-row,
	// single-column write. Concurrent writers race; last write wins.
	UpdateGeneratedText(ctx context.Context, quoteID, text string) error
}

type quoteService struct {
	pool *pgxpool.Pool
}

// NewQuoteService constructs a QuoteService backed by PostgreSQL.
func NewQuoteService(pool *pgxpool.Pool) QuoteService {
	return &quoteService{pool: pool}
}

func validateItems(items []QuoteItemInput) error {
	if len(items) == 0 {
		return InvalidInput("quote must have at least 1 item")
	}
	for i, it := range items {
		if it.Title == "" {
			return InvalidInput(fmt.Sprintf("item %d: title is required", i+1))
		}
		if it.Quantity <= 0 {
			return InvalidInput(fmt.Sprintf("item %d: quantity must be > 0", i+1))
		}
		if it.UnitPrice < 0 {
			return InvalidInput(fmt.Sprintf("item %d: unit price must be >= 0", i+1))
		}
		if d := it.DiscountPct; d != nil && (*d < 0 || *d > 100) {
			return InvalidInput(fmt.Sprintf("item %d: discount must be between 0 and 100", i+1))
		}
		if tr := it.TaxRate; tr != nil && (*tr < 0 || *tr > 100) {
			return InvalidInput(fmt.Sprintf("item %d: tax rate must be between 0 and 100", i+1))
		}
	}
	return nil
}

func lineInputs(items []QuoteItemInput) []LineInput {
	ins := make([]LineInput, len(items))
	for i, it := range items {
		ins[i] = LineInput{
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			DiscountPct: it.DiscountPct,
			TaxRate:     it.TaxRate,
		}
	}
	return ins
}

// insertItems writes the full item set with positions renumbered 1..N in
// input order, discarding any prior numbering.
func insertItems(ctx context.Context, tx pgx.Tx, quoteID string, items []QuoteItemInput, totals QuoteTotals) ([]QuoteItem, error) {
	out := make([]QuoteItem, len(items))
	for i, it := range items {
		q := QuoteItem{
			QuoteID:     quoteID,
			Position:    i + 1,
			Title:       it.Title,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			DiscountPct: orZero(it.DiscountPct),
			TaxRate:     orZero(it.TaxRate),
			LineTotal:   totals.LineTotals[i],
		}
		err := tx.QueryRow(ctx, `
			INSERT INTO quote_items (quote_id, position, title, description, quantity, unit, unit_price, discount_pct, tax_rate, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id`,
			q.QuoteID, q.Position, q.Title, q.Description, q.Quantity, q.Unit, q.UnitPrice, q.DiscountPct, q.TaxRate, q.LineTotal,
		).Scan(&q.ID)
		if err != nil {
			return nil, fmt.Errorf("insert item %d: %w", i+1, err)
		}
		out[i] = q
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *quoteService) CreateQuote(ctx context.Context, companyID, clientID string, createdByID *string, input QuoteInput) (*Quote, []QuoteItem, error) {
	if input.QuoteNumber == "" {
		return nil, nil, InvalidInput("quote number is required")
	}
	if err := validateItems(input.Items); err != nil {
		return nil, nil, err
	}

	totals := ComputeTotals(lineInputs(input.Items), input.DiscountAmount, input.TaxAmount)

	issueDate := time.Now()
	if input.IssueDate != nil {
		issueDate = *input.IssueDate
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin create quote: %w", err)
	}
	defer tx.Rollback(ctx)

	q := &Quote{}
	err = tx.QueryRow(ctx, `
		INSERT INTO quotes (company_id, client_id, created_by_id, quote_number, status, currency,
		                    subtotal, discount_amount, tax_amount, total, description, issue_date)
		VALUES ($1, $2, $3, $4, 'DRAFT', $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, company_id, client_id, created_by_id, quote_number, status, currency,
		          subtotal, discount_amount, tax_amount, total, description, issue_date, generated_text, created_at`,
		companyID, clientID, createdByID, input.QuoteNumber, input.Currency,
		totals.Subtotal, orZero(input.DiscountAmount), orZero(input.TaxAmount), totals.Total,
		input.Description, issueDate,
	).Scan(
		&q.ID, &q.CompanyID, &q.ClientID, &q.CreatedByID, &q.QuoteNumber, &q.Status, &q.Currency,
		&q.Subtotal, &q.DiscountAmount, &q.TaxAmount, &q.Total, &q.Description, &q.IssueDate,
		&q.GeneratedText, &q.CreatedAt,
	)
	if isUniqueViolation(err) {
		return nil, nil, Conflict("quote number already exists")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("insert quote %q: %w", input.QuoteNumber, err)
	}

	items, err := insertItems(ctx, tx, q.ID, input.Items, totals)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit create quote: %w", err)
	}
	return q, items, nil
}

const quoteColumns = `id, company_id, client_id, created_by_id, quote_number, status, currency,
	subtotal, discount_amount, tax_amount, total, description, issue_date, generated_text, created_at`

func scanQuote(row pgx.Row) (*Quote, error) {
	q := &Quote{}
	err := row.Scan(
		&q.ID, &q.CompanyID, &q.ClientID, &q.CreatedByID, &q.QuoteNumber, &q.Status, &q.Currency,
		&q.Subtotal, &q.DiscountAmount, &q.TaxAmount, &q.Total, &q.Description, &q.IssueDate,
		&q.GeneratedText, &q.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (s *quoteService) GetQuote(ctx context.Context, quoteID string) (*Quote, error) {
	q, err := scanQuote(s.pool.QueryRow(ctx,
		`SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, quoteID))
	if err != nil {
		return nil, fmt.Errorf("get quote %s: %w", quoteID, err)
	}
	return q, nil
}

func (s *quoteService) GetQuoteForCompany(ctx context.Context, quoteID, companyID string) (*Quote, error) {
	q, err := scanQuote(s.pool.QueryRow(ctx,
		`SELECT `+quoteColumns+` FROM quotes WHERE id = $1 AND company_id = $2`, quoteID, companyID))
	if err != nil {
		return nil, fmt.Errorf("get quote %s for company %s: %w", quoteID, companyID, err)
	}
	return q, nil
}

func (s *quoteService) GetQuoteItems(ctx context.Context, quoteID string) ([]QuoteItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, quote_id, position, title, description, quantity, unit, unit_price, discount_pct, tax_rate, line_total
		FROM quote_items
		WHERE quote_id = $1
		ORDER BY position`,
		quoteID,
	)
	if err != nil {
		return nil, fmt.Errorf("get quote items: %w", err)
	}
	defer rows.Close()

	var items []QuoteItem
	for rows.Next() {
		var it QuoteItem
		if err := rows.Scan(
			&it.ID, &it.QuoteID, &it.Position, &it.Title, &it.Description,
			&it.Quantity, &it.Unit, &it.UnitPrice, &it.DiscountPct, &it.TaxRate, &it.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		items = append(items, it)
	}
	return items, nil
}

func (s *quoteService) ListQuotes(ctx context.Context, companyID string) ([]QuoteSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, quote_number, description
		FROM quotes
		WHERE company_id = $1
		ORDER BY created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var quotes []QuoteSummary
	for rows.Next() {
		var q QuoteSummary
		if err := rows.Scan(&q.ID, &q.QuoteNumber, &q.Description); err != nil {
			return nil, fmt.Errorf("scan quote summary: %w", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func (s *quoteService) UpdateQuote(ctx context.Context, quoteID string, input QuoteUpdateInput) (*Quote, []QuoteItem, error) {
	if err := validateItems(input.Items); err != nil {
		return nil, nil, err
	}
	if input.Status != nil {
		switch *input.Status {
		case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected:
		default:
			return nil, nil, InvalidInput(fmt.Sprintf("invalid quote status %q", *input.Status))
		}
	}

	totals := ComputeTotals(lineInputs(input.Items), input.DiscountAmount, input.TaxAmount)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin update quote: %w", err)
	}
	defer tx.Rollback(ctx)

	q, err := scanQuote(tx.QueryRow(ctx, `
		UPDATE quotes
		SET currency = $2,
		    description = $3,
		    status = COALESCE($4, status),
		    subtotal = $5,
		    discount_amount = $6,
		    tax_amount = $7,
		    total = $8
		WHERE id = $1
		RETURNING `+quoteColumns,
		quoteID, input.Currency, input.Description, input.Status,
		totals.Subtotal, orZero(input.DiscountAmount), orZero(input.TaxAmount), totals.Total,
	))
	if err != nil {
		return nil, nil, fmt.Errorf("update quote %s: %w", quoteID, err)
	}
	if q == nil {
		return nil, nil, NotFound("quote not found")
	}

	// Full replace: delete every existing item, then insert the new set
	// with fresh 1..N positions. Never a partial merge.
	if _, err := tx.Exec(ctx, `DELETE FROM quote_items WHERE quote_id = $1`, quoteID); err != nil {
		return nil, nil, fmt.Errorf("delete quote items: %w", err)
	}

	items, err := insertItems(ctx, tx, quoteID, input.Items, totals)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit update quote: %w", err)
	}
	return q, items, nil
}

func (s *quoteService) DeleteQuote(ctx context.Context, quoteID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, quoteID)
	if err != nil {
		return fmt.Errorf("delete quote %s: %w", quoteID, err)
	}
	if tag.RowsAffected() == 0 {
		return NotFound("quote not found")
	}
	return nil
}

func (s *quoteService) UpdateGeneratedText(ctx context.Context, quoteID, text string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE quotes SET generated_text = $2 WHERE id = $1`, quoteID, text)
	if err != nil {
		return fmt.Errorf("update generated text for quote %s: %w", quoteID, err)
	}
	if tag.RowsAffected() == 0 {
		return NotFound("quote not found")
	}
	return nil
}
