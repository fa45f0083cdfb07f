package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/captable/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// businessLockKey hashes a business id into the advisory-lock keyspace.
// Writers for the same business queue behind the lock, so every round folds
// from the truly latest snapshot.
func businessLockKey(businessID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write([]byte(businessID.String()))

	return int64(h.Sum64())
}

func (s *Store) BeginRound(ctx context.Context, businessID uuid.UUID) (ledger.RoundTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning round tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", businessLockKey(businessID)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring business lock: %w", err)
	}

	return &roundTx{tx: dbTx}, nil
}

type roundTx struct {
	tx *sql.Tx
}

func (r *roundTx) Commit() error   { return mapConflict(r.tx.Commit()) }
func (r *roundTx) Rollback() error { return r.tx.Rollback() }

// mapConflict translates Postgres serialization failures into the ledger's
// retryable conflict error.
func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "40001" {
		return fmt.Errorf("%w: %s", ledger.ErrConflict, pgErr.Message)
	}

	return err
}

func (r *roundTx) LatestBusinessEvent(ctx context.Context, businessID uuid.UUID) (*ledger.BusinessEvent, error) {
	query := `
		SELECT id, round_id, business_id, seq, balance_shares, total_shares,
			pre_money_valuation, post_money_valuation, created_at
		FROM business_events
		WHERE business_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT 1
	`

	var event ledger.BusinessEvent

	err := r.tx.QueryRowContext(ctx, query, businessID).Scan(
		&event.ID, &event.RoundID, &event.BusinessID, &event.Seq,
		&event.BalanceShares, &event.TotalShares,
		&event.PreMoneyValuation, &event.PostMoneyValuation, &event.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("reading latest business event: %w", err)
	}

	return &event, nil
}

func (r *roundTx) GetStakeholders(ctx context.Context, businessID uuid.UUID, ids []uuid.UUID) ([]*ledger.Stakeholder, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := []any{businessID}

	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}

	query := `
		SELECT s.id, s.business_id, s.user_id, u.name, s.type, s.config,
			s.has_exited, s.exited_at_price, s.created_at
		FROM stakeholders s
		JOIN users u ON s.user_id = u.id
		WHERE s.business_id = $1 AND s.id IN (` + strings.Join(placeholders, ", ") + `)`

	rows, err := r.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reading stakeholders: %w", err)
	}
	defer rows.Close()

	var stakeholders []*ledger.Stakeholder

	for rows.Next() {
		var s ledger.Stakeholder

		var config sql.NullString

		var exitedAtPrice decimal.NullDecimal

		if err := rows.Scan(
			&s.ID, &s.BusinessID, &s.UserID, &s.Name, &s.Type, &config,
			&s.HasExited, &exitedAtPrice, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning stakeholder: %w", err)
		}

		if config.Valid {
			s.Config = []byte(config.String)
		}

		if exitedAtPrice.Valid {
			s.ExitedAtPrice = &exitedAtPrice.Decimal
		}

		stakeholders = append(stakeholders, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stakeholder rows: %w", err)
	}

	return stakeholders, nil
}

const selectContractColumns = `
	c.id, c.investment_id, c.warrant_grant_id, c.title, c.description,
	c.contract_type, c.shares, c.price_per_share, c.contract_investment,
	c.status, c.created_at,
	COALESCE(i.stakeholder_id, w.stakeholder_id) AS stakeholder_id,
	COALESCE(rd.business_id, w.business_id) AS business_id,
	i.round_id
`

const contractJoins = `
	FROM contracts c
	LEFT JOIN investments i ON c.investment_id = i.id
	LEFT JOIN rounds rd ON i.round_id = rd.id
	LEFT JOIN warrant_and_option_shares w ON c.warrant_grant_id = w.id
`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanContract(s scanner) (*ledger.Contract, error) {
	var c ledger.Contract

	var investmentID, warrantGrantID, roundID *uuid.UUID

	if err := s.Scan(
		&c.ID, &investmentID, &warrantGrantID, &c.Title, &c.Description,
		&c.ContractType, &c.Shares, &c.PricePerShare, &c.ContractInvestment,
		&c.Status, &c.CreatedAt, &c.StakeholderID, &c.BusinessID, &roundID,
	); err != nil {
		return nil, err
	}

	switch {
	case investmentID != nil:
		c.Parent = ledger.ContractParent{Kind: ledger.ParentInvestment, ID: *investmentID}
	case warrantGrantID != nil:
		c.Parent = ledger.ContractParent{Kind: ledger.ParentWarrantGrant, ID: *warrantGrantID}
	}

	c.RoundID = roundID

	return &c, nil
}

func (r *roundTx) GetContract(ctx context.Context, businessID, contractID uuid.UUID) (*ledger.Contract, error) {
	query := `SELECT ` + selectContractColumns + contractJoins + ` WHERE c.id = $1`

	contract, err := scanContract(r.tx.QueryRowContext(ctx, query, contractID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("reading contract: %w", err)
	}

	if contract.BusinessID != businessID {
		return nil, ledger.ErrNotFound
	}

	return contract, nil
}

func (r *roundTx) StakeholderShareSums(ctx context.Context, businessID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	query := `
		SELECT se.stakeholder_id, COALESCE(SUM(se.shares), 0)
		FROM stakeholder_events se
		JOIN rounds rd ON se.round_id = rd.id
		WHERE rd.business_id = $1
	`

	args := []any{businessID}

	if len(ids) > 0 {
		placeholders := make([]string, len(ids))
		for i, id := range ids {
			placeholders[i] = fmt.Sprintf("$%d", i+2)
			args = append(args, id)
		}

		query += " AND se.stakeholder_id IN (" + strings.Join(placeholders, ", ") + ")"
	}

	query += " GROUP BY se.stakeholder_id"

	rows, err := r.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summing stakeholder shares: %w", err)
	}
	defer rows.Close()

	sums := make(map[uuid.UUID]decimal.Decimal)

	for rows.Next() {
		var id uuid.UUID

		var shares decimal.Decimal

		if err := rows.Scan(&id, &shares); err != nil {
			return nil, fmt.Errorf("scanning share sum: %w", err)
		}

		sums[id] = shares
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating share sums: %w", err)
	}

	return sums, nil
}

func (r *roundTx) CreateRound(ctx context.Context, round *ledger.Round) error {
	query := `
		INSERT INTO rounds (business_id, name, type, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.tx.QueryRowContext(ctx, query,
		round.BusinessID, round.Name, round.Type, round.CreatedAt,
	).Scan(&round.ID)
	if err != nil {
		return fmt.Errorf("creating round: %w", err)
	}

	return nil
}

func (r *roundTx) CreateBusinessEvent(ctx context.Context, event *ledger.BusinessEvent) error {
	query := `
		INSERT INTO business_events (round_id, business_id, balance_shares, total_shares,
			pre_money_valuation, post_money_valuation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, seq
	`

	err := r.tx.QueryRowContext(ctx, query,
		event.RoundID, event.BusinessID, event.BalanceShares, event.TotalShares,
		event.PreMoneyValuation, event.PostMoneyValuation, event.CreatedAt,
	).Scan(&event.ID, &event.Seq)
	if err != nil {
		return fmt.Errorf("creating business event: %w", err)
	}

	return nil
}

func (r *roundTx) CreateStakeholderEvents(ctx context.Context, events []*ledger.StakeholderEvent) error {
	query := `
		INSERT INTO stakeholder_events (round_id, stakeholder_id, shares, share_type,
			share_allocation_type, event_type, price_per_share, contract_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	for _, event := range events {
		var price decimal.NullDecimal
		if event.PricePerShare != nil {
			price = decimal.NullDecimal{Decimal: *event.PricePerShare, Valid: true}
		}

		err := r.tx.QueryRowContext(ctx, query,
			event.RoundID, event.StakeholderID, event.Shares, event.ShareType,
			event.ShareAllocationType, event.EventType, price, event.ContractID, event.CreatedAt,
		).Scan(&event.ID)
		if err != nil {
			return fmt.Errorf("creating stakeholder event: %w", err)
		}
	}

	return nil
}

func (r *roundTx) CreateInvestment(ctx context.Context, investment *ledger.Investment) error {
	query := `
		INSERT INTO investments (round_id, stakeholder_id, amount, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.tx.QueryRowContext(ctx, query,
		investment.RoundID, investment.StakeholderID, investment.Amount,
		investment.Notes, investment.CreatedAt,
	).Scan(&investment.ID)
	if err != nil {
		return fmt.Errorf("creating investment: %w", err)
	}

	return nil
}

func (r *roundTx) CreateWarrantGrant(ctx context.Context, grant *ledger.WarrantGrant) error {
	query := `
		INSERT INTO warrant_and_option_shares (business_id, stakeholder_id, event_type, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.tx.QueryRowContext(ctx, query,
		grant.BusinessID, grant.StakeholderID, grant.EventType, grant.Notes, grant.CreatedAt,
	).Scan(&grant.ID)
	if err != nil {
		return fmt.Errorf("creating warrant grant: %w", err)
	}

	return nil
}

func (r *roundTx) CreateContracts(ctx context.Context, contracts []*ledger.Contract) error {
	query := `
		INSERT INTO contracts (investment_id, warrant_grant_id, title, description,
			contract_type, shares, price_per_share, contract_investment, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	for _, contract := range contracts {
		var investmentID, warrantGrantID *uuid.UUID

		switch contract.Parent.Kind {
		case ledger.ParentInvestment:
			id := contract.Parent.ID
			investmentID = &id
		case ledger.ParentWarrantGrant:
			id := contract.Parent.ID
			warrantGrantID = &id
		default:
			return fmt.Errorf("contract %q has no parent", contract.Title)
		}

		err := r.tx.QueryRowContext(ctx, query,
			investmentID, warrantGrantID, contract.Title, contract.Description,
			contract.ContractType, contract.Shares, contract.PricePerShare,
			contract.ContractInvestment, contract.Status, contract.CreatedAt,
		).Scan(&contract.ID)
		if err != nil {
			return fmt.Errorf("creating contract: %w", err)
		}
	}

	return nil
}

func (r *roundTx) UpdateContract(ctx context.Context, id uuid.UUID, remainingShares decimal.Decimal, status ledger.ContractStatus) error {
	query := `
		UPDATE contracts
		SET shares = $1, status = $2
		WHERE id = $3
	`

	_, err := r.tx.ExecContext(ctx, query, remainingShares, status, id)
	if err != nil {
		return fmt.Errorf("updating contract: %w", err)
	}

	return nil
}

func (r *roundTx) MarkStakeholderExited(ctx context.Context, id uuid.UUID, exitedAtPrice decimal.Decimal) error {
	query := `
		UPDATE stakeholders
		SET has_exited = TRUE, exited_at_price = $1
		WHERE id = $2
	`

	_, err := r.tx.ExecContext(ctx, query, exitedAtPrice, id)
	if err != nil {
		return fmt.Errorf("marking stakeholder exited: %w", err)
	}

	return nil
}
