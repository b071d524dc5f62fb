package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClientInput is the caller-supplied data for creating a client.
type ClientInput struct {
	Name  string
	Email string
	Phone string
}

// ClientService provides client records, always scoped to one company.
type ClientService interface {
	CreateClient(ctx context.Context, companyID string, input ClientInput) (*Client, error)
	// GetClient returns (nil, nil) when the client does not exist.
	GetClient(ctx context.Context, clientID string) (*Client, error)
	ListClients(ctx context.Context, companyID string) ([]Client, error)
}

type clientService struct {
	pool *pgxpool.Pool
}

// NewClientService constructs a ClientService backed by PostgreSQL.
func NewClientService(pool *pgxpool.Pool) ClientService {
	return &clientService{pool: pool}
}

func (s *clientService) CreateClient(ctx context.Context, companyID string, input ClientInput) (*Client, error) {
	if input.Name == "" {
		return nil, InvalidInput("client name is required")
	}

	c := &Client{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO clients (company_id, name, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, company_id, name, email, phone, created_at`,
		companyID, input.Name, input.Email, input.Phone,
	).Scan(&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create client %q: %w", input.Name, err)
	}
	return c, nil
}

func (s *clientService) GetClient(ctx context.Context, clientID string) (*Client, error) {
	c := &Client{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, company_id, name, email, phone, created_at
		FROM clients
		WHERE id = $1`,
		clientID,
	).Scan(&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get client %s: %w", clientID, err)
	}
	return c, nil
}

func (s *clientService) ListClients(ctx context.Context, companyID string) ([]Client, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, company_id, name, email, phone, created_at
		FROM clients
		WHERE company_id = $1
		ORDER BY name`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, nil
}
