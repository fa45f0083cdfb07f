package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/captable/internal/business"
	"github.com/MrJamesThe3rd/captable/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListBusinesses(ctx context.Context) ([]*business.Business, error) {
	query := `SELECT id, name, created_at FROM businesses ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing businesses: %w", err)
	}
	defer rows.Close()

	var businesses []*business.Business

	for rows.Next() {
		var b business.Business
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning business: %w", err)
		}

		businesses = append(businesses, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating businesses: %w", err)
	}

	return businesses, nil
}

func (s *Store) GetBusiness(ctx context.Context, id uuid.UUID) (*business.Business, error) {
	query := `SELECT id, name, created_at FROM businesses WHERE id = $1`

	var b business.Business

	err := s.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Name, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting business: %w", err)
	}

	return &b, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*business.User, error) {
	query := `SELECT id, name, created_at FROM users ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*business.User

	for rows.Next() {
		var u business.User
		if err := rows.Scan(&u.ID, &u.Name, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}

		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	return users, nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*business.User, error) {
	query := `SELECT id, name, created_at FROM users WHERE id = $1`

	var u business.User

	err := s.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return &u, nil
}

func (s *Store) CreateStakeholder(ctx context.Context, stakeholder *ledger.Stakeholder) error {
	query := `
		INSERT INTO stakeholders (business_id, user_id, type, config, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	var config any
	if len(stakeholder.Config) > 0 {
		config = string(stakeholder.Config)
	}

	err := s.db.QueryRowContext(ctx, query,
		stakeholder.BusinessID, stakeholder.UserID, stakeholder.Type, config,
	).Scan(&stakeholder.ID, &stakeholder.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating stakeholder: %w", err)
	}

	return nil
}

func (s *Store) ListStakeholdersMin(ctx context.Context, businessID uuid.UUID) ([]*business.StakeholderListing, error) {
	query := `
		SELECT s.id, s.user_id, u.name, s.type, s.config, s.created_at,
			EXISTS (SELECT 1 FROM stakeholder_events se WHERE se.stakeholder_id = s.id) AS has_stakes
		FROM stakeholders s
		JOIN users u ON s.user_id = u.id
		WHERE s.business_id = $1
		ORDER BY s.created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing stakeholders: %w", err)
	}
	defer rows.Close()

	var listings []*business.StakeholderListing

	for rows.Next() {
		var listing business.StakeholderListing

		var config sql.NullString

		if err := rows.Scan(
			&listing.ID, &listing.UserID, &listing.Name, &listing.Type,
			&config, &listing.CreatedAt, &listing.HasStakes,
		); err != nil {
			return nil, fmt.Errorf("scanning stakeholder: %w", err)
		}

		if config.Valid {
			listing.Config = []byte(config.String)
		}

		listings = append(listings, &listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stakeholders: %w", err)
	}

	return listings, nil
}
