package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CompanyInput is the caller-supplied data for creating a company.
type CompanyInput struct {
	Name    string
	Address string
	Email   string
	Phone   string
}

// CompanyService provides company (tenant) records. Lookups return
// (nil, nil) when the record does not exist; "not found" is a caller
// decision, not a storage error.
type CompanyService interface {
	CreateCompany(ctx context.Context, input CompanyInput) (*Company, error)
	GetCompany(ctx context.Context, companyID string) (*Company, error)
}

// MembershipService answers whether a user belongs to a company.
type MembershipService interface {
	// GetMembership returns (nil, nil) when the user is not a member or
	// the company is soft-deleted.
	GetMembership(ctx context.Context, companyID, userID string) (*Membership, error)
}

type companyService struct {
	pool *pgxpool.Pool
}

// NewCompanyService constructs a CompanyService backed by PostgreSQL.
func NewCompanyService(pool *pgxpool.Pool) CompanyService {
	return &companyService{pool: pool}
}

func (s *companyService) CreateCompany(ctx context.Context, input CompanyInput) (*Company, error) {
	if input.Name == "" {
		return nil, InvalidInput("company name is required")
	}

	c := &Company{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO companies (name, address, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, address, email, phone, created_at`,
		input.Name, input.Address, input.Email, input.Phone,
	).Scan(&c.ID, &c.Name, &c.Address, &c.Email, &c.Phone, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create company %q: %w", input.Name, err)
	}
	return c, nil
}

func (s *companyService) GetCompany(ctx context.Context, companyID string) (*Company, error) {
	c := &Company{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, address, email, phone, created_at
		FROM companies
		WHERE id = $1 AND deleted_at IS NULL`,
		companyID,
	).Scan(&c.ID, &c.Name, &c.Address, &c.Email, &c.Phone, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get company %s: %w", companyID, err)
	}
	return c, nil
}

type membershipService struct {
	pool *pgxpool.Pool
}

// NewMembershipService constructs a MembershipService backed by PostgreSQL.
func NewMembershipService(pool *pgxpool.Pool) MembershipService {
	return &membershipService{pool: pool}
}

func (s *membershipService) GetMembership(ctx context.Context, companyID, userID string) (*Membership, error) {
	m := &Membership{}
	err := s.pool.QueryRow(ctx, `
		SELECT cu.company_id, cu.user_id, cu.role, cu.created_at
		FROM company_users cu
		JOIN companies c ON c.id = cu.company_id
		WHERE cu.company_id = $1 AND cu.user_id = $2 AND c.deleted_at IS NULL`,
		companyID, userID,
	).Scan(&m.CompanyID, &m.UserID, &m.Role, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get membership company=%s user=%s: %w", companyID, userID, err)
	}
	return m, nil
}
