package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/captable/internal/ledger"
)

// Store runs the read-side queries behind the aggregation engine. Reads are
// not transactional snapshots; each query sees whatever has committed.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectBusinessEventColumns = `
	be.id, be.round_id, be.business_id, be.seq, be.balance_shares, be.total_shares,
	be.pre_money_valuation, be.post_money_valuation, be.created_at
`

func scanBusinessEvent(s scanner) (*ledger.BusinessEvent, error) {
	var event ledger.BusinessEvent

	if err := s.Scan(
		&event.ID, &event.RoundID, &event.BusinessID, &event.Seq,
		&event.BalanceShares, &event.TotalShares,
		&event.PreMoneyValuation, &event.PostMoneyValuation, &event.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &event, nil
}

func (s *Store) LatestBusinessEvent(ctx context.Context, businessID uuid.UUID) (*ledger.BusinessEvent, error) {
	query := `SELECT ` + selectBusinessEventColumns + `
		FROM business_events be
		WHERE be.business_id = $1
		ORDER BY be.created_at DESC, be.seq DESC
		LIMIT 1`

	event, err := scanBusinessEvent(s.db.QueryRowContext(ctx, query, businessID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("reading latest business event: %w", err)
	}

	return event, nil
}

func (s *Store) ListBusinessEvents(ctx context.Context, businessID uuid.UUID) ([]*ledger.BusinessEvent, error) {
	query := `SELECT ` + selectBusinessEventColumns + `
		FROM business_events be
		WHERE be.business_id = $1
		ORDER BY be.created_at ASC, be.seq ASC`

	rows, err := s.db.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing business events: %w", err)
	}
	defer rows.Close()

	var events []*ledger.BusinessEvent

	for rows.Next() {
		event, err := scanBusinessEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning business event: %w", err)
		}

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating business events: %w", err)
	}

	return events, nil
}

func (s *Store) ListRounds(ctx context.Context, businessID uuid.UUID) ([]*ledger.Round, error) {
	query := `
		SELECT id, business_id, name, type, created_at
		FROM rounds
		WHERE business_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing rounds: %w", err)
	}
	defer rows.Close()

	var rounds []*ledger.Round

	for rows.Next() {
		var round ledger.Round
		if err := rows.Scan(&round.ID, &round.BusinessID, &round.Name, &round.Type, &round.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning round: %w", err)
		}

		rounds = append(rounds, &round)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rounds: %w", err)
	}

	return rounds, nil
}

func (s *Store) ListStakeholders(ctx context.Context, businessID uuid.UUID) ([]*ledger.Stakeholder, error) {
	query := `
		SELECT s.id, s.business_id, s.user_id, u.name, s.type, s.config,
			s.has_exited, s.exited_at_price, s.created_at
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

	var stakeholders []*ledger.Stakeholder

	for rows.Next() {
		var stakeholder ledger.Stakeholder

		var config sql.NullString

		var exitedAtPrice decimal.NullDecimal

		if err := rows.Scan(
			&stakeholder.ID, &stakeholder.BusinessID, &stakeholder.UserID,
			&stakeholder.Name, &stakeholder.Type, &config,
			&stakeholder.HasExited, &exitedAtPrice, &stakeholder.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning stakeholder: %w", err)
		}

		if config.Valid {
			stakeholder.Config = []byte(config.String)
		}

		if exitedAtPrice.Valid {
			stakeholder.ExitedAtPrice = &exitedAtPrice.Decimal
		}

		stakeholders = append(stakeholders, &stakeholder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stakeholders: %w", err)
	}

	return stakeholders, nil
}

func (s *Store) ListStakeholderEvents(ctx context.Context, businessID uuid.UUID) ([]*ledger.StakeholderEvent, error) {
	query := `
		SELECT se.id, se.round_id, se.stakeholder_id, se.shares, se.share_type,
			se.share_allocation_type, se.event_type, se.price_per_share,
			se.contract_id, se.created_at
		FROM stakeholder_events se
		JOIN rounds rd ON se.round_id = rd.id
		WHERE rd.business_id = $1
		ORDER BY se.created_at ASC, se.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing stakeholder events: %w", err)
	}
	defer rows.Close()

	var events []*ledger.StakeholderEvent

	for rows.Next() {
		var event ledger.StakeholderEvent

		var price decimal.NullDecimal

		var contractID *uuid.UUID

		if err := rows.Scan(
			&event.ID, &event.RoundID, &event.StakeholderID, &event.Shares,
			&event.ShareType, &event.ShareAllocationType, &event.EventType,
			&price, &contractID, &event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning stakeholder event: %w", err)
		}

		if price.Valid {
			event.PricePerShare = &price.Decimal
		}

		event.ContractID = contractID

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stakeholder events: %w", err)
	}

	return events, nil
}

func (s *Store) ListInvestments(ctx context.Context, businessID uuid.UUID) ([]*ledger.Investment, error) {
	query := `
		SELECT i.id, i.round_id, i.stakeholder_id, i.amount, i.notes, i.created_at
		FROM investments i
		JOIN rounds rd ON i.round_id = rd.id
		WHERE rd.business_id = $1
		ORDER BY i.created_at ASC, i.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing investments: %w", err)
	}
	defer rows.Close()

	var investments []*ledger.Investment

	for rows.Next() {
		var inv ledger.Investment
		if err := rows.Scan(&inv.ID, &inv.RoundID, &inv.StakeholderID, &inv.Amount, &inv.Notes, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning investment: %w", err)
		}

		investments = append(investments, &inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating investments: %w", err)
	}

	return investments, nil
}

func (s *Store) ListContracts(ctx context.Context, businessID uuid.UUID, status ledger.ContractStatus) ([]*ledger.Contract, error) {
	query := `
		SELECT c.id, c.investment_id, c.warrant_grant_id, c.title, c.description,
			c.contract_type, c.shares, c.price_per_share, c.contract_investment,
			c.status, c.created_at,
			COALESCE(i.stakeholder_id, w.stakeholder_id) AS stakeholder_id,
			COALESCE(rd.business_id, w.business_id) AS business_id,
			i.round_id
		FROM contracts c
		LEFT JOIN investments i ON c.investment_id = i.id
		LEFT JOIN rounds rd ON i.round_id = rd.id
		LEFT JOIN warrant_and_option_shares w ON c.warrant_grant_id = w.id
		WHERE COALESCE(rd.business_id, w.business_id) = $1
	`

	args := []any{businessID}

	if status != "" {
		query += " AND c.status = $2"

		args = append(args, status)
	}

	query += " ORDER BY c.created_at ASC, c.id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	defer rows.Close()

	var contracts []*ledger.Contract

	for rows.Next() {
		var contract ledger.Contract

		var investmentID, warrantGrantID, roundID *uuid.UUID

		if err := rows.Scan(
			&contract.ID, &investmentID, &warrantGrantID, &contract.Title, &contract.Description,
			&contract.ContractType, &contract.Shares, &contract.PricePerShare,
			&contract.ContractInvestment, &contract.Status, &contract.CreatedAt,
			&contract.StakeholderID, &contract.BusinessID, &roundID,
		); err != nil {
			return nil, fmt.Errorf("scanning contract: %w", err)
		}

		switch {
		case investmentID != nil:
			contract.Parent = ledger.ContractParent{Kind: ledger.ParentInvestment, ID: *investmentID}
		case warrantGrantID != nil:
			contract.Parent = ledger.ContractParent{Kind: ledger.ParentWarrantGrant, ID: *warrantGrantID}
		}

		contract.RoundID = roundID

		contracts = append(contracts, &contract)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contracts: %w", err)
	}

	return contracts, nil
}
