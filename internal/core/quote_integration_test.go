package core_test

import (
	"context"
	"os"
	"testing"

	"quotegen/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE quote_items, quotes, clients, company_users, companies, users CASCADE;
	`)
	if err != nil {
		t.Fatalf("Failed to clean test database: %v", err)
	}

	return pool
}

// seedTenant creates a company with one member user and one client, returning
// their ids.
func seedTenant(t *testing.T, ctx context.Context, pool *pgxpool.Pool, companyName string) (companyID, userID, clientID string) {
	t.Helper()

	companies := core.NewCompanyService(pool)
	clients := core.NewClientService(pool)

	company, err := companies.CreateCompany(ctx, core.CompanyInput{Name: companyName, Email: "billing@" + companyName + ".test"})
	if err != nil {
		t.Fatalf("CreateCompany failed: %v", err)
	}

	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash) VALUES ($1, $2, 'x') RETURNING id`,
		"owner@"+companyName+".test", "Owner",
	).Scan(&userID)
	if err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO company_users (company_id, user_id, role) VALUES ($1, $2, 'owner')`,
		company.ID, userID,
	)
	if err != nil {
		t.Fatalf("Failed to seed membership: %v", err)
	}

	client, err := clients.CreateClient(ctx, company.ID, core.ClientInput{Name: "Globex Ltd"})
	if err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}

	return company.ID, userID, client.ID
}

func fptr(v float64) *float64 { return &v }

func sampleQuoteInput(number string) core.QuoteInput {
	return core.QuoteInput{
		QuoteNumber:    number,
		Currency:       "EUR",
		Description:    "Website project",
		DiscountAmount: fptr(50),
		TaxAmount:      fptr(20.50),
		Items: []core.QuoteItemInput{
			{Title: "Design", Quantity: 2, UnitPrice: 100},
			{Title: "Build", Quantity: 1, UnitPrice: 500},
		},
	}
}

func TestQuoteService_CreateQuote(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	companyID, userID, clientID := seedTenant(t, ctx, pool, "acme")
	quotes := core.NewQuoteService(pool)

	q, items, err := quotes.CreateQuote(ctx, companyID, clientID, &userID, sampleQuoteInput("Q-001"))
	if err != nil {
		t.Fatalf("CreateQuote failed: %v", err)
	}

	if q.Status != core.QuoteStatusDraft {
		t.Errorf("Status = %s, want DRAFT", q.Status)
	}
	if q.Subtotal != 700 {
		t.Errorf("Subtotal = %v, want 700", q.Subtotal)
	}
	if q.Total != 670.50 {
		t.Errorf("Total = %v, want 670.50", q.Total)
	}
	if q.GeneratedText != nil {
		t.Error("new quote must have no generated text")
	}

	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	for i, it := range items {
		if it.Position != i+1 {
			t.Errorf("item %d position = %d, want %d", i, it.Position, i+1)
		}
	}
	if items[0].LineTotal != 200 || items[1].LineTotal != 500 {
		t.Errorf("line totals = %v, %v, want 200, 500", items[0].LineTotal, items[1].LineTotal)
	}

	// Items come back ordered by position.
	got, err := quotes.GetQuoteItems(ctx, q.ID)
	if err != nil {
		t.Fatalf("GetQuoteItems failed: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Design" || got[1].Title != "Build" {
		t.Errorf("stored items = %+v", got)
	}
}

func TestQuoteService_DuplicateQuoteNumber(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	companyID, userID, clientID := seedTenant(t, ctx, pool, "acme")
	quotes := core.NewQuoteService(pool)

	if _, _, err := quotes.CreateQuote(ctx, companyID, clientID, &userID, sampleQuoteInput("Q-001")); err != nil {
		t.Fatalf("first CreateQuote failed: %v", err)
	}

	_, _, err := quotes.CreateQuote(ctx, companyID, clientID, &userID, sampleQuoteInput("Q-001"))
	if core.KindOf(err) != core.KindConflict {
		t.Errorf("kind = %v, want CONFLICT", core.KindOf(err))
	}

	// The same number is fine under another company.
	otherCompany, otherUser, otherClient := seedTenant(t, ctx, pool, "beta")
	if _, _, err := quotes.CreateQuote(ctx, otherCompany, otherClient, &otherUser, sampleQuoteInput("Q-001")); err != nil {
		t.Errorf("same quote number under another company failed: %v", err)
	}
}

func TestQuoteService_UpdateQuoteReplacesItems(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	companyID, userID, clientID := seedTenant(t, ctx, pool, "acme")
	quotes := core.NewQuoteService(pool)

	q, _, err := quotes.CreateQuote(ctx, companyID, clientID, &userID, sampleQuoteInput("Q-001"))
	if err != nil {
		t.Fatalf("CreateQuote failed: %v", err)
	}

	sent := core.QuoteStatusSent
	updated, items, err := quotes.UpdateQuote(ctx, q.ID, core.QuoteUpdateInput{
		Currency:    "USD",
		Description: "Revised scope",
		Status:      &sent,
		Items: []core.QuoteItemInput{
			{Title: "Discovery", Quantity: 1, UnitPrice: 300},
		},
	})
	if err != nil {
		t.Fatalf("UpdateQuote failed: %v", err)
	}

	if updated.Currency != "USD" || updated.Status != core.QuoteStatusSent {
		t.Errorf("updated quote = %+v", updated)
	}
	if updated.Subtotal != 300 || updated.Total != 300 {
		t.Errorf("totals = %v / %v, want 300 / 300", updated.Subtotal, updated.Total)
	}
	if len(items) != 1 || items[0].Position != 1 || items[0].Title != "Discovery" {
		t.Errorf("items after replace = %+v", items)
	}

	// No orphans from the old item set.
	stored, err := quotes.GetQuoteItems(ctx, q.ID)
	if err != nil {
		t.Fatalf("GetQuoteItems failed: %v", err)
	}
	if len(stored) != 1 {
		t.Errorf("stored items = %d, want 1", len(stored))
	}
}

func TestQuoteService_TenantScopedLookup(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	companyID, userID, clientID := seedTenant(t, ctx, pool, "acme")
	otherCompany, _, _ := seedTenant(t, ctx, pool, "beta")
	quotes := core.NewQuoteService(pool)

	q, _, err := quotes.CreateQuote(ctx, companyID, clientID, &userID, sampleQuoteInput("Q-001"))
	if err != nil {
		t.Fatalf("CreateQuote failed: %v", err)
	}

	found, err := quotes.GetQuoteForCompany(ctx, q.ID, companyID)
	if err != nil || found == nil {
		t.Fatalf("GetQuoteForCompany(own) = %v, %v", found, err)
	}

	cross, err := quotes.GetQuoteForCompany(ctx, q.ID, otherCompany)
	if err != nil {
		t.Fatalf("GetQuoteForCompany(cross) error: %v", err)
	}
	if cross != nil {
		t.Error("a quote must not be reachable through another company's id")
	}
}

func TestQuoteService_UpdateGeneratedText(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	companyID, userID, clientID := seedTenant(t, ctx, pool, "acme")
	quotes := core.NewQuoteService(pool)

	q, _, err := quotes.CreateQuote(ctx, companyID, clientID, &userID, sampleQuoteInput("Q-001"))
	if err != nil {
		t.Fatalf("CreateQuote failed: %v", err)
	}

	text := "Dear client,\n\nPlease find our quote below.\n\nBest regards"
	if err := quotes.UpdateGeneratedText(ctx, q.ID, text); err != nil {
		t.Fatalf("UpdateGeneratedText failed: %v", err)
	}

	got, err := quotes.GetQuote(ctx, q.ID)
	if err != nil {
		t.Fatalf("GetQuote failed: %v", err)
	}
	if got.GeneratedText == nil || *got.GeneratedText != text {
		t.Errorf("stored text = %v, want %q with line breaks intact", got.GeneratedText, text)
	}

	err = quotes.UpdateGeneratedText(ctx, "00000000-0000-0000-0000-000000000000", "x")
	if core.KindOf(err) != core.KindNotFound {
		t.Errorf("kind = %v, want NOT_FOUND for unknown quote", core.KindOf(err))
	}
}

func TestQuoteService_DeleteQuoteCascades(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	companyID, userID, clientID := seedTenant(t, ctx, pool, "acme")
	quotes := core.NewQuoteService(pool)

	q, _, err := quotes.CreateQuote(ctx, companyID, clientID, &userID, sampleQuoteInput("Q-001"))
	if err != nil {
		t.Fatalf("CreateQuote failed: %v", err)
	}

	if err := quotes.DeleteQuote(ctx, q.ID); err != nil {
		t.Fatalf("DeleteQuote failed: %v", err)
	}

	gone, err := quotes.GetQuote(ctx, q.ID)
	if err != nil {
		t.Fatalf("GetQuote after delete: %v", err)
	}
	if gone != nil {
		t.Error("quote still present after delete")
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM quote_items WHERE quote_id = $1`, q.ID).Scan(&count); err != nil {
		t.Fatalf("count items: %v", err)
	}
	if count != 0 {
		t.Errorf("orphaned items = %d, want 0 (ON DELETE CASCADE)", count)
	}

	if err := quotes.DeleteQuote(ctx, q.ID); core.KindOf(err) != core.KindNotFound {
		t.Errorf("second delete kind = %v, want NOT_FOUND", core.KindOf(err))
	}
}

func TestMembershipService(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	companyID, userID, _ := seedTenant(t, ctx, pool, "acme")
	_, otherUser, _ := seedTenant(t, ctx, pool, "beta")
	memberships := core.NewMembershipService(pool)

	m, err := memberships.GetMembership(ctx, companyID, userID)
	if err != nil {
		t.Fatalf("GetMembership failed: %v", err)
	}
	if m == nil || m.Role != "owner" {
		t.Errorf("membership = %+v, want owner", m)
	}

	outsider, err := memberships.GetMembership(ctx, companyID, otherUser)
	if err != nil {
		t.Fatalf("GetMembership(outsider) failed: %v", err)
	}
	if outsider != nil {
		t.Error("user from another company must not be a member")
	}

	// Membership of a soft-deleted company disappears.
	if _, err := pool.Exec(ctx, `UPDATE companies SET deleted_at = now() WHERE id = $1`, companyID); err != nil {
		t.Fatalf("soft delete company: %v", err)
	}
	m, err = memberships.GetMembership(ctx, companyID, userID)
	if err != nil {
		t.Fatalf("GetMembership after soft delete failed: %v", err)
	}
	if m != nil {
		t.Error("membership must not survive company soft-deletion")
	}
}
