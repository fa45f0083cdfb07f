package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/captable/internal/ledger"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func priorEvent(balance, total, pre, post int64) *ledger.BusinessEvent {
	return &ledger.BusinessEvent{
		ID:                 uuid.New(),
		BalanceShares:      dec(balance),
		TotalShares:        dec(total),
		PreMoneyValuation:  dec(pre),
		PostMoneyValuation: dec(post),
	}
}

func TestService_AllocateShares_NewShares(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockRoundTx(ctrl)
	svc := ledger.NewService(repo)

	businessID := uuid.New()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	var created *ledger.BusinessEvent

	repo.EXPECT().BeginRound(gomock.Any(), businessID).Return(tx, nil)
	tx.EXPECT().LatestBusinessEvent(gomock.Any(), businessID).Return(priorEvent(100, 1000, 4000, 5000), nil)
	tx.EXPECT().CreateRound(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, round *ledger.Round) error {
		round.ID = uuid.New()
		return nil
	})
	tx.EXPECT().CreateBusinessEvent(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, event *ledger.BusinessEvent) error {
		created = event
		return nil
	})
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	err := svc.AllocateShares(context.Background(), businessID, ledger.AllocateSharesParams{
		Type:        ledger.RoundTypeNewShares,
		Name:        "ESOP pool expansion",
		Date:        date,
		Valuation:   dec(10000),
		AddedShares: dec(500),
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.True(t, created.BalanceShares.Equal(dec(600)), "balance %s", created.BalanceShares)
	assert.True(t, created.TotalShares.Equal(dec(1500)), "total %s", created.TotalShares)
	assert.True(t, created.PreMoneyValuation.Equal(dec(5000)), "pre %s", created.PreMoneyValuation)
	assert.True(t, created.PostMoneyValuation.Equal(dec(10000)), "post %s", created.PostMoneyValuation)
}

func TestService_AllocateShares_StockSplit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockRoundTx(ctrl)
	svc := ledger.NewService(repo)

	businessID := uuid.New()
	holderA := uuid.New()
	holderB := uuid.New()
	emptyHolder := uuid.New()

	var (
		created *ledger.BusinessEvent
		events  []*ledger.StakeholderEvent
	)

	repo.EXPECT().BeginRound(gomock.Any(), businessID).Return(tx, nil)
	tx.EXPECT().LatestBusinessEvent(gomock.Any(), businessID).Return(priorEvent(100, 1000, 4000, 5000), nil)
	tx.EXPECT().CreateRound(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, round *ledger.Round) error {
		round.ID = uuid.New()
		return nil
	})
	tx.EXPECT().CreateBusinessEvent(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, event *ledger.BusinessEvent) error {
		created = event
		return nil
	})
	tx.EXPECT().StakeholderShareSums(gomock.Any(), businessID, nil).Return(map[uuid.UUID]decimal.Decimal{
		holderA:     dec(300),
		holderB:     dec(600),
		emptyHolder: dec(0),
	}, nil)
	tx.EXPECT().CreateStakeholderEvents(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, es []*ledger.StakeholderEvent) error {
		events = es
		return nil
	})
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	// A 2-for-1 split: each holder gains one additional share per share held.
	err := svc.AllocateShares(context.Background(), businessID, ledger.AllocateSharesParams{
		Type:            ledger.RoundTypeStockSplit,
		Name:            "2-for-1 split",
		Date:            time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		StockSplitRatio: dec(1),
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.True(t, created.BalanceShares.Equal(dec(200)))
	assert.True(t, created.TotalShares.Equal(dec(2000)))
	assert.True(t, created.PreMoneyValuation.Equal(dec(4000)))
	assert.True(t, created.PostMoneyValuation.Equal(dec(5000)))

	require.Len(t, events, 2)

	byHolder := make(map[uuid.UUID]*ledger.StakeholderEvent, len(events))
	for _, event := range events {
		byHolder[event.StakeholderID] = event

		assert.Equal(t, ledger.EventTypeAllocation, event.EventType)
		assert.Equal(t, ledger.AllocationNone, event.ShareAllocationType)
	}

	require.Contains(t, byHolder, holderA)
	require.Contains(t, byHolder, holderB)
	assert.NotContains(t, byHolder, emptyHolder)
	assert.True(t, byHolder[holderA].Shares.Equal(dec(300)))
	assert.True(t, byHolder[holderB].Shares.Equal(dec(600)))
}

func TestService_AllocateShares_Validation(t *testing.T) {
	type testCase struct {
		name   string
		params ledger.AllocateSharesParams
	}

	tests := []testCase{
		{
			name:   "MissingName",
			params: ledger.AllocateSharesParams{Type: ledger.RoundTypeNewShares, AddedShares: dec(10)},
		},
		{
			name:   "NonPositiveAddedShares",
			params: ledger.AllocateSharesParams{Type: ledger.RoundTypeNewShares, Name: "pool"},
		},
		{
			name:   "NonPositiveSplitRatio",
			params: ledger.AllocateSharesParams{Type: ledger.RoundTypeStockSplit, Name: "split"},
		},
		{
			name:   "UnsupportedType",
			params: ledger.AllocateSharesParams{Type: ledger.RoundTypeSeed, Name: "seed", AddedShares: dec(10)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			svc := ledger.NewService(repo)

			err := svc.AllocateShares(context.Background(), uuid.New(), tt.params)

			var validation *ledger.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestService_RaiseRound_DerivedAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockRoundTx(ctrl)
	svc := ledger.NewService(repo)

	businessID := uuid.New()
	investorID := uuid.New()
	date := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	var (
		created    *ledger.BusinessEvent
		investment *ledger.Investment
		events     []*ledger.StakeholderEvent
	)

	repo.EXPECT().BeginRound(gomock.Any(), businessID).Return(tx, nil)
	tx.EXPECT().LatestBusinessEvent(gomock.Any(), businessID).Return(priorEvent(1500, 1500, 8000, 9000), nil)
	tx.EXPECT().GetStakeholders(gomock.Any(), businessID, []uuid.UUID{investorID}).
		Return([]*ledger.Stakeholder{{ID: investorID}}, nil)
	tx.EXPECT().CreateRound(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, round *ledger.Round) error {
		round.ID = uuid.New()
		return nil
	})
	tx.EXPECT().CreateBusinessEvent(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, event *ledger.BusinessEvent) error {
		created = event
		return nil
	})
	tx.EXPECT().CreateInvestment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, inv *ledger.Investment) error {
		inv.ID = uuid.New()
		investment = inv
		return nil
	})
	tx.EXPECT().CreateStakeholderEvents(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, es []*ledger.StakeholderEvent) error {
		events = es
		return nil
	})
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	err := svc.RaiseRound(context.Background(), businessID, ledger.RaiseRoundParams{
		Round: ledger.RoundParams{
			Name:              "Seed",
			Type:              ledger.RoundTypeSeed,
			Date:              date,
			PreMoneyValuation: dec(10000),
		},
		Investments: []ledger.InvestmentParams{
			{StakeholderID: investorID, Shares: dec(150)},
		},
	})
	require.NoError(t, err)

	// 150 shares at a 10000 pre-money over 1500 outstanding prices the
	// investment at 1000.
	require.NotNil(t, investment)
	assert.True(t, investment.Amount.Equal(dec(1000)), "amount %s", investment.Amount)

	require.NotNil(t, created)
	assert.True(t, created.BalanceShares.Equal(dec(1350)))
	assert.True(t, created.TotalShares.Equal(dec(1500)))
	assert.True(t, created.PreMoneyValuation.Equal(dec(10000)))
	assert.True(t, created.PostMoneyValuation.Equal(dec(11000)))

	require.Len(t, events, 1)
	assert.Equal(t, investorID, events[0].StakeholderID)
	assert.True(t, events[0].Shares.Equal(dec(150)))
	assert.Equal(t, ledger.EventTypeInvestment, events[0].EventType)
	assert.Equal(t, ledger.AllocationActualPrice, events[0].ShareAllocationType)
}

func TestService_RaiseRound_Contracts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockRoundTx(ctrl)
	svc := ledger.NewService(repo)

	businessID := uuid.New()
	investorID := uuid.New()
	amount := dec(2000)

	var (
		created   *ledger.BusinessEvent
		contracts []*ledger.Contract
		events    []*ledger.StakeholderEvent
	)

	repo.EXPECT().BeginRound(gomock.Any(), businessID).Return(tx, nil)
	tx.EXPECT().LatestBusinessEvent(gomock.Any(), businessID).Return(priorEvent(1000, 2000, 9000, 10000), nil)
	tx.EXPECT().GetStakeholders(gomock.Any(), businessID, []uuid.UUID{investorID}).
		Return([]*ledger.Stakeholder{{ID: investorID}}, nil)
	tx.EXPECT().CreateRound(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, round *ledger.Round) error {
		round.ID = uuid.New()
		return nil
	})
	tx.EXPECT().CreateBusinessEvent(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, event *ledger.BusinessEvent) error {
		created = event
		return nil
	})
	tx.EXPECT().CreateInvestment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, inv *ledger.Investment) error {
		inv.ID = uuid.New()
		return nil
	})
	tx.EXPECT().CreateContracts(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, cs []*ledger.Contract) error {
		for _, c := range cs {
			c.ID = uuid.New()
		}

		contracts = cs

		return nil
	})
	tx.EXPECT().CreateStakeholderEvents(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, es []*ledger.StakeholderEvent) error {
		events = es
		return nil
	})
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	err := svc.RaiseRound(context.Background(), businessID, ledger.RaiseRoundParams{
		Round: ledger.RoundParams{
			Name:              "Series A",
			Type:              ledger.RoundTypeSeriesA,
			Date:              time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			PreMoneyValuation: dec(10000),
		},
		Investments: []ledger.InvestmentParams{
			{
				StakeholderID: investorID,
				Amount:        &amount,
				Contracts: []ledger.ContractParams{
					{Title: "Direct purchase", Shares: dec(100), PricePerShare: dec(5)},
					{Title: "SAFE note", ContractType: ledger.ContractTypeSAFE, InvestedAmount: dec(300)},
				},
			},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	// 100 priced contract shares leave the pool immediately.
	assert.True(t, created.BalanceShares.Equal(dec(900)))
	// Post-money: 10000 pre + 2000 direct + 500 priced contract + 300 SAFE.
	assert.True(t, created.PostMoneyValuation.Equal(dec(12800)))

	require.Len(t, contracts, 2)
	assert.Equal(t, ledger.ContractCompleted, contracts[0].Status)
	assert.Equal(t, ledger.ContractTypeNone, contracts[0].ContractType)
	assert.Equal(t, ledger.ContractPending, contracts[1].Status)
	assert.True(t, contracts[1].ContractInvestment.Equal(dec(300)))

	require.Len(t, events, 1)
	assert.True(t, events[0].Shares.Equal(dec(100)))
	assert.Equal(t, ledger.AllocationContractPrice, events[0].ShareAllocationType)
	require.NotNil(t, events[0].PricePerShare)
	assert.True(t, events[0].PricePerShare.Equal(dec(5)))
	require.NotNil(t, events[0].ContractID)
	assert.Equal(t, contracts[0].ID, *events[0].ContractID)
}

func TestService_RaiseRound_NegativeBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockRoundTx(ctrl)
	svc := ledger.NewService(repo)

	businessID := uuid.New()
	investorID := uuid.New()
	amount := dec(100)

	repo.EXPECT().BeginRound(gomock.Any(), businessID).Return(tx, nil)
	tx.EXPECT().LatestBusinessEvent(gomock.Any(), businessID).Return(priorEvent(50, 1000, 4000, 5000), nil)
	tx.EXPECT().GetStakeholders(gomock.Any(), businessID, []uuid.UUID{investorID}).
		Return([]*ledger.Stakeholder{{ID: investorID}}, nil)
	tx.EXPECT().Rollback().Return(nil)

	err := svc.RaiseRound(context.Background(), businessID, ledger.RaiseRoundParams{
		Round: ledger.RoundParams{Name: "Overdraw", Type: ledger.RoundTypeSeed},
		Investments: []ledger.InvestmentParams{
			{StakeholderID: investorID, Shares: dec(100), Amount: &amount},
		},
	})

	var validation *ledger.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestService_RaiseRound_MissingStakeholder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockRoundTx(ctrl)
	svc := ledger.NewService(repo)

	businessID := uuid.New()
	investorID := uuid.New()
	amount := dec(100)

	repo.EXPECT().BeginRound(gomock.Any(), businessID).Return(tx, nil)
	tx.EXPECT().LatestBusinessEvent(gomock.Any(), businessID).Return(priorEvent(1000, 1000, 4000, 5000), nil)
	tx.EXPECT().GetStakeholders(gomock.Any(), businessID, []uuid.UUID{investorID}).Return(nil, nil)
	tx.EXPECT().Rollback().Return(nil)

	err := svc.RaiseRound(context.Background(), businessID, ledger.RaiseRoundParams{
		Round: ledger.RoundParams{Name: "Seed", Type: ledger.RoundTypeSeed},
		Investments: []ledger.InvestmentParams{
			{StakeholderID: investorID, Shares: dec(10), Amount: &amount},
		},
	})

	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestService_RaiseRound_BootstrapRequiresAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockRoundTx(ctrl)
	svc := ledger.NewService(repo)

	businessID := uuid.New()
	founderID := uuid.New()

	repo.EXPECT().BeginRound(gomock.Any(), businessID).Return(tx, nil)
	tx.EXPECT().LatestBusinessEvent(gomock.Any(), businessID).Return(priorEvent(1000, 1000, 0, 0), nil)
	tx.EXPECT().GetStakeholders(gomock.Any(), businessID, []uuid.UUID{founderID}).
		Return([]*ledger.Stakeholder{{ID: founderID}}, nil)
	tx.EXPECT().Rollback().Return(nil)

	err := svc.RaiseRound(context.Background(), businessID, ledger.RaiseRoundParams{
		Round: ledger.RoundParams{Name: "Founding", Type: ledger.RoundTypeBootstrap},
		Investments: []ledger.InvestmentParams{
			{StakeholderID: founderID, Shares: dec(100)},
		},
	})

	var validation *ledger.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestService_IssueContract(t *testing.T) {
	type testCase struct {
		name          string
		contract      *ledger.Contract
		issueShares   decimal.Decimal
		wantRemaining decimal.Decimal
		wantStatus    ledger.ContractStatus
		wantEventType ledger.EventType
		wantShareType ledger.ShareType
		wantRoundType ledger.RoundType
	}

	businessID := uuid.New()
	stakeholderID := uuid.New()
	contractID := uuid.New()

	tests := []testCase{
		{
			name: "PartialWarrant",
			contract: &ledger.Contract{
				ID:            contractID,
				ContractType:  ledger.ContractTypeWarrant,
				Shares:        dec(500),
				PricePerShare: dec(2),
				Status:        ledger.ContractPending,
				StakeholderID: stakeholderID,
			},
			issueShares:   dec(200),
			wantRemaining: dec(300),
			wantStatus:    ledger.ContractPending,
			wantEventType: ledger.EventTypeWarrant,
			wantShareType: ledger.ShareTypeWarrant,
			wantRoundType: ledger.RoundTypeWarrant,
		},
		{
			name: "CompletingSAFE",
			contract: &ledger.Contract{
				ID:            contractID,
				ContractType:  ledger.ContractTypeSAFE,
				Shares:        dec(300),
				PricePerShare: dec(4),
				Status:        ledger.ContractPending,
				StakeholderID: stakeholderID,
			},
			issueShares:   dec(300),
			wantRemaining: dec(0),
			wantStatus:    ledger.ContractCompleted,
			wantEventType: ledger.EventTypeSAFE,
			wantShareType: ledger.ShareTypeCommon,
			wantRoundType: ledger.RoundTypeSAFE,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			tx := ledger.NewMockRoundTx(ctrl)
			svc := ledger.NewService(repo)

			var (
				round   *ledger.Round
				created *ledger.BusinessEvent
				events  []*ledger.StakeholderEvent
			)

			repo.EXPECT().BeginRound(gomock.Any(), businessID).Return(tx, nil)
			tx.EXPECT().GetContract(gomock.Any(), businessID, contractID).Return(tt.contract, nil)
			tx.EXPECT().LatestBusinessEvent(gomock.Any(), businessID).Return(priorEvent(400, 1000, 4000, 5000), nil)
			tx.EXPECT().CreateRound(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *ledger.Round) error {
				r.ID = uuid.New()
				round = r
				return nil
			})
			tx.EXPECT().CreateBusinessEvent(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, event *ledger.BusinessEvent) error {
				created = event
				return nil
			})
			tx.EXPECT().UpdateContract(gomock.Any(), contractID, gomock.Any(), tt.wantStatus).
				DoAndReturn(func(_ context.Context, _ uuid.UUID, remaining decimal.Decimal, _ ledger.ContractStatus) error {
					assert.True(t, remaining.Equal(tt.wantRemaining), "remaining %s", remaining)
					return nil
				})
			tx.EXPECT().CreateStakeholderEvents(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, es []*ledger.StakeholderEvent) error {
				events = es
				return nil
			})
			tx.EXPECT().Commit().Return(nil)
			tx.EXPECT().Rollback().Return(nil)

			err := svc.IssueContract(context.Background(), businessID, ledger.IssueContractParams{
				Name:       "Exercise",
				Date:       time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
				ContractID: contractID,
				Shares:     tt.issueShares,
			})
			require.NoError(t, err)

			require.NotNil(t, round)
			assert.Equal(t, tt.wantRoundType, round.Type)

			require.NotNil(t, created)
			assert.True(t, created.BalanceShares.Equal(dec(400).Sub(tt.issueShares)))
			assert.True(t, created.TotalShares.Equal(dec(1000)))
			assert.True(t, created.PostMoneyValuation.Equal(dec(5000)))

			require.Len(t, events, 1)
			assert.Equal(t, stakeholderID, events[0].StakeholderID)
			assert.True(t, events[0].Shares.Equal(tt.issueShares))
			assert.Equal(t, tt.wantEventType, events[0].EventType)
			assert.Equal(t, tt.wantShareType, events[0].ShareType)
			assert.Equal(t, ledger.AllocationContractPrice, events[0].ShareAllocationType)
			require.NotNil(t, events[0].PricePerShare)
			assert.True(t, events[0].PricePerShare.Equal(tt.contract.PricePerShare))
		})
	}
}

func TestService_IssueContract_NotPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockRoundTx(ctrl)
	svc := ledger.NewService(repo)

	businessID := uuid.New()
	contractID := uuid.New()

	repo.EXPECT().BeginRound(gomock.Any(), businessID).Return(tx, nil)
	tx.EXPECT().GetContract(gomock.Any(), businessID, contractID).Return(&ledger.Contract{
		ID:     contractID,
		Status: ledger.ContractCompleted,
	}, nil)
	tx.EXPECT().Rollback().Return(nil)

	err := svc.IssueContract(context.Background(), businessID, ledger.IssueContractParams{
		Name:       "Exercise",
		ContractID: contractID,
		Shares:     dec(10),
	})

	var validation *ledger.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestService_IssueContract_Overdraw(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockRoundTx(ctrl)
	svc := ledger.NewService(repo)

	businessID := uuid.New()
	contractID := uuid.New()

	repo.EXPECT().BeginRound(gomock.Any(), businessID).Return(tx, nil)
	tx.EXPECT().GetContract(gomock.Any(), businessID, contractID).Return(&ledger.Contract{
		ID:     contractID,
		Shares: dec(100),
		Status: ledger.ContractPending,
	}, nil)
	tx.EXPECT().Rollback().Return(nil)

	err := svc.IssueContract(context.Background(), businessID, ledger.IssueContractParams{
		Name:       "Exercise",
		ContractID: contractID,
		Shares:     dec(150),
	})

	var validation *ledger.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestService_GrantExit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockRoundTx(ctrl)
	svc := ledger.NewService(repo)

	businessID := uuid.New()
	exitingID := uuid.New()
	receivingID := uuid.New()

	var (
		created *ledger.BusinessEvent
		events  []*ledger.StakeholderEvent
	)

	repo.EXPECT().BeginRound(gomock.Any(), businessID).Return(tx, nil)
	tx.EXPECT().GetStakeholders(gomock.Any(), businessID, gomock.Any()).
		Return([]*ledger.Stakeholder{{ID: exitingID}, {ID: receivingID}}, nil)
	tx.EXPECT().LatestBusinessEvent(gomock.Any(), businessID).Return(priorEvent(100, 1000, 4000, 5000), nil)
	tx.EXPECT().StakeholderShareSums(gomock.Any(), businessID, []uuid.UUID{exitingID}).
		Return(map[uuid.UUID]decimal.Decimal{exitingID: dec(200)}, nil)
	tx.EXPECT().CreateRound(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, round *ledger.Round) error {
		round.ID = uuid.New()

		assert.Equal(t, ledger.RoundTypeExit, round.Type)

		return nil
	})
	tx.EXPECT().CreateBusinessEvent(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, event *ledger.BusinessEvent) error {
		created = event
		return nil
	})
	tx.EXPECT().CreateStakeholderEvents(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, es []*ledger.StakeholderEvent) error {
		events = es
		return nil
	})
	// 200 shares exiting at 5000/1000 = 5 per share.
	tx.EXPECT().MarkStakeholderExited(gomock.Any(), exitingID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, price decimal.Decimal) error {
			assert.True(t, price.Equal(dec(1000)), "exit price %s", price)
			return nil
		})
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	err := svc.GrantExit(context.Background(), businessID, ledger.GrantExitParams{
		Name: "Founder exit",
		Date: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
		Exits: []ledger.ExitParams{
			{StakeholderID: exitingID},
		},
		Issues: []ledger.DilutionParams{
			{StakeholderID: receivingID, Shares: dec(200)},
		},
	})
	require.NoError(t, err)

	// The exit is zero-sum: the balance and total are untouched.
	require.NotNil(t, created)
	assert.True(t, created.BalanceShares.Equal(dec(100)))
	assert.True(t, created.TotalShares.Equal(dec(1000)))

	require.Len(t, events, 2)
	assert.Equal(t, exitingID, events[0].StakeholderID)
	assert.True(t, events[0].Shares.Equal(dec(-200)))
	assert.Equal(t, ledger.EventTypeExit, events[0].EventType)
	assert.Equal(t, receivingID, events[1].StakeholderID)
	assert.True(t, events[1].Shares.Equal(dec(200)))
	assert.Equal(t, ledger.EventTypeExit, events[1].EventType)
}

func TestService_GrantExit_Validation(t *testing.T) {
	businessID := uuid.New()
	exitingID := uuid.New()
	receivingID := uuid.New()

	type testCase struct {
		name      string
		setupMock func(tx *ledger.MockRoundTx)
		issues    []ledger.DilutionParams
		wantIs    error
	}

	tests := []testCase{
		{
			name: "ShareCountMismatch",
			setupMock: func(tx *ledger.MockRoundTx) {
				tx.EXPECT().GetStakeholders(gomock.Any(), businessID, gomock.Any()).
					Return([]*ledger.Stakeholder{{ID: exitingID}, {ID: receivingID}}, nil)
				tx.EXPECT().LatestBusinessEvent(gomock.Any(), businessID).Return(priorEvent(100, 1000, 4000, 5000), nil)
				tx.EXPECT().StakeholderShareSums(gomock.Any(), businessID, []uuid.UUID{exitingID}).
					Return(map[uuid.UUID]decimal.Decimal{exitingID: dec(200)}, nil)
			},
			issues: []ledger.DilutionParams{{StakeholderID: receivingID, Shares: dec(150)}},
		},
		{
			name: "AlreadyExited",
			setupMock: func(tx *ledger.MockRoundTx) {
				tx.EXPECT().GetStakeholders(gomock.Any(), businessID, gomock.Any()).
					Return([]*ledger.Stakeholder{{ID: exitingID, HasExited: true}, {ID: receivingID}}, nil)
			},
			issues: []ledger.DilutionParams{{StakeholderID: receivingID, Shares: dec(200)}},
		},
		{
			name: "NothingToExit",
			setupMock: func(tx *ledger.MockRoundTx) {
				tx.EXPECT().GetStakeholders(gomock.Any(), businessID, gomock.Any()).
					Return([]*ledger.Stakeholder{{ID: exitingID}, {ID: receivingID}}, nil)
				tx.EXPECT().LatestBusinessEvent(gomock.Any(), businessID).Return(priorEvent(100, 1000, 4000, 5000), nil)
				tx.EXPECT().StakeholderShareSums(gomock.Any(), businessID, []uuid.UUID{exitingID}).
					Return(map[uuid.UUID]decimal.Decimal{}, nil)
			},
			issues: []ledger.DilutionParams{{StakeholderID: receivingID, Shares: dec(200)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			tx := ledger.NewMockRoundTx(ctrl)
			svc := ledger.NewService(repo)

			repo.EXPECT().BeginRound(gomock.Any(), businessID).Return(tx, nil)
			tx.EXPECT().Rollback().Return(nil)
			tt.setupMock(tx)

			err := svc.GrantExit(context.Background(), businessID, ledger.GrantExitParams{
				Name:   "Exit",
				Exits:  []ledger.ExitParams{{StakeholderID: exitingID}},
				Issues: tt.issues,
			})

			var validation *ledger.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestService_GrantWarrantOrOption(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockRoundTx(ctrl)
	svc := ledger.NewService(repo)

	businessID := uuid.New()
	employeeID := uuid.New()

	var (
		grant     *ledger.WarrantGrant
		contracts []*ledger.Contract
	)

	repo.EXPECT().BeginRound(gomock.Any(), businessID).Return(tx, nil)
	tx.EXPECT().GetStakeholders(gomock.Any(), businessID, []uuid.UUID{employeeID}).
		Return([]*ledger.Stakeholder{{ID: employeeID}}, nil)
	tx.EXPECT().CreateWarrantGrant(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, g *ledger.WarrantGrant) error {
		g.ID = uuid.New()
		grant = g
		return nil
	})
	tx.EXPECT().CreateContracts(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, cs []*ledger.Contract) error {
		contracts = cs
		return nil
	})
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	err := svc.GrantWarrantOrOption(context.Background(), businessID, ledger.WarrantGrantParams{
		EventType: ledger.RoundTypeOption,
		Date:      time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
		Grants: []ledger.GrantParams{
			{
				StakeholderID: employeeID,
				PricePerShare: dec(3),
				Contracts: []ledger.GrantContractParams{
					{Title: "ESOP tranche 1", Shares: dec(100)},
				},
			},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, grant)
	assert.Equal(t, ledger.RoundTypeOption, grant.EventType)
	assert.Equal(t, employeeID, grant.StakeholderID)

	require.Len(t, contracts, 1)
	assert.Equal(t, ledger.ContractTypeOption, contracts[0].ContractType)
	assert.Equal(t, ledger.ContractPending, contracts[0].Status)
	assert.True(t, contracts[0].Shares.Equal(dec(100)))
	assert.True(t, contracts[0].PricePerShare.Equal(dec(3)))
	assert.Equal(t, ledger.ParentWarrantGrant, contracts[0].Parent.Kind)
	assert.Equal(t, grant.ID, contracts[0].Parent.ID)
}

func TestService_GrantWarrantOrOption_BadEventType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	err := svc.GrantWarrantOrOption(context.Background(), uuid.New(), ledger.WarrantGrantParams{
		EventType: ledger.RoundTypeSeed,
		Grants: []ledger.GrantParams{
			{StakeholderID: uuid.New(), Contracts: []ledger.GrantContractParams{{Shares: dec(1)}}},
		},
	})

	var validation *ledger.ValidationError
	assert.ErrorAs(t, err, &validation)
}
