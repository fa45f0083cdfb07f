package aicontext

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/captable/internal/ledger"
	"github.com/MrJamesThe3rd/captable/internal/report"
)

// Mock report repository; only the listings Build touches are wired.
type mockRepo struct {
	latest       *ledger.BusinessEvent
	stakeholders []*ledger.Stakeholder
	events       []*ledger.StakeholderEvent
	investments  []*ledger.Investment
	rounds       []*ledger.Round
}

func (m *mockRepo) LatestBusinessEvent(ctx context.Context, businessID uuid.UUID) (*ledger.BusinessEvent, error) {
	return m.latest, nil
}

func (m *mockRepo) ListBusinessEvents(ctx context.Context, businessID uuid.UUID) ([]*ledger.BusinessEvent, error) {
	return nil, nil
}

func (m *mockRepo) ListRounds(ctx context.Context, businessID uuid.UUID) ([]*ledger.Round, error) {
	return m.rounds, nil
}

func (m *mockRepo) ListStakeholders(ctx context.Context, businessID uuid.UUID) ([]*ledger.Stakeholder, error) {
	return m.stakeholders, nil
}

func (m *mockRepo) ListStakeholderEvents(ctx context.Context, businessID uuid.UUID) ([]*ledger.StakeholderEvent, error) {
	return m.events, nil
}

func (m *mockRepo) ListInvestments(ctx context.Context, businessID uuid.UUID) ([]*ledger.Investment, error) {
	return m.investments, nil
}

func (m *mockRepo) ListContracts(ctx context.Context, businessID uuid.UUID, status ledger.ContractStatus) ([]*ledger.Contract, error) {
	return nil, nil
}

func TestService_Build_EmptyLedger(t *testing.T) {
	svc := NewService(report.NewService(&mockRepo{}))

	text, err := svc.Build(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Contains(t, text, "Indian Companies Act")
	assert.Contains(t, text, "has not recorded any corporate actions")
}

func TestService_Build(t *testing.T) {
	holderA := uuid.New()
	holderB := uuid.New()

	repo := &mockRepo{
		latest: &ledger.BusinessEvent{
			BalanceShares:      decimal.NewFromInt(200),
			TotalShares:        decimal.NewFromInt(1000),
			PreMoneyValuation:  decimal.NewFromInt(4000),
			PostMoneyValuation: decimal.NewFromInt(5000),
			CreatedAt:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		stakeholders: []*ledger.Stakeholder{
			{ID: holderA, Name: "Asha", Type: ledger.StakeholderFoundingTeam},
			{ID: holderB, Name: "Bala", Type: ledger.StakeholderAngelInvestor},
		},
		events: []*ledger.StakeholderEvent{
			{StakeholderID: holderA, Shares: decimal.NewFromInt(600), EventType: ledger.EventTypeInvestment},
			{StakeholderID: holderB, Shares: decimal.NewFromInt(200), EventType: ledger.EventTypeInvestment},
		},
		investments: []*ledger.Investment{
			{StakeholderID: holderB, Amount: decimal.NewFromInt(1000)},
		},
		rounds: []*ledger.Round{
			{ID: uuid.New(), Name: "Founding", Type: ledger.RoundTypeBootstrap},
			{ID: uuid.New(), Name: "Seed", Type: ledger.RoundTypeSeed},
		},
	}

	text, err := NewService(report.NewService(repo)).Build(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Contains(t, text, "recorded 2 rounds")
	assert.Contains(t, text, "1 March 2024")
	assert.Contains(t, text, "Asha (FOUNDING_TEAM)")
	// 600 of 800 ownership-bearing shares.
	assert.Contains(t, text, "75% ownership")
	assert.Contains(t, text, "Bala (ANGEL_INVESTOR)")
	assert.Contains(t, text, "25% ownership")
}
