package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	BeginRound(ctx context.Context, businessID uuid.UUID) (RoundTx, error)
}

// RoundTx is a single atomic unit of ledger work. The store serializes
// concurrent transactions for the same business, so the latest snapshot read
// here stays the baseline until Commit.
type RoundTx interface {
	LatestBusinessEvent(ctx context.Context, businessID uuid.UUID) (*BusinessEvent, error)
	GetStakeholders(ctx context.Context, businessID uuid.UUID, ids []uuid.UUID) ([]*Stakeholder, error)
	GetContract(ctx context.Context, businessID, contractID uuid.UUID) (*Contract, error)

	// StakeholderShareSums folds stakeholder events into per-stakeholder share
	// balances. A nil ids slice covers every holder of the business.
	StakeholderShareSums(ctx context.Context, businessID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)

	CreateRound(ctx context.Context, round *Round) error
	CreateBusinessEvent(ctx context.Context, event *BusinessEvent) error
	CreateStakeholderEvents(ctx context.Context, events []*StakeholderEvent) error
	CreateInvestment(ctx context.Context, investment *Investment) error
	CreateWarrantGrant(ctx context.Context, grant *WarrantGrant) error
	CreateContracts(ctx context.Context, contracts []*Contract) error
	UpdateContract(ctx context.Context, id uuid.UUID, remainingShares decimal.Decimal, status ContractStatus) error
	MarkStakeholderExited(ctx context.Context, id uuid.UUID, exitedAtPrice decimal.Decimal) error

	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// snapshot is the prior business state every processor computes deltas
// against. Zero-valued when the business has no events yet.
type snapshot struct {
	Balance decimal.Decimal
	Total   decimal.Decimal
	Pre     decimal.Decimal
	Post    decimal.Decimal
}

func latestSnapshot(ctx context.Context, tx RoundTx, businessID uuid.UUID) (snapshot, error) {
	event, err := tx.LatestBusinessEvent(ctx, businessID)
	if err != nil {
		return snapshot{}, fmt.Errorf("reading latest business event: %w", err)
	}

	if event == nil {
		return snapshot{}, nil
	}

	return snapshot{
		Balance: event.BalanceShares,
		Total:   event.TotalShares,
		Pre:     event.PreMoneyValuation,
		Post:    event.PostMoneyValuation,
	}, nil
}

func requireStakeholders(ctx context.Context, tx RoundTx, businessID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]*Stakeholder, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*Stakeholder{}, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	stakeholders, err := tx.GetStakeholders(ctx, businessID, unique)
	if err != nil {
		return nil, fmt.Errorf("reading stakeholders: %w", err)
	}

	byID := make(map[uuid.UUID]*Stakeholder, len(stakeholders))
	for _, s := range stakeholders {
		byID[s.ID] = s
	}

	for _, id := range unique {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("stakeholder %s: %w", id, ErrNotFound)
		}
	}

	return byID, nil
}

type AllocateSharesParams struct {
	Type            RoundType
	Name            string
	Date            time.Time
	Valuation       decimal.Decimal
	AddedShares     decimal.Decimal
	StockSplitRatio decimal.Decimal
}

// AllocateShares expands the unissued pool (NEW_SHARES) or re-denominates all
// shares (STOCK_SPLIT). The split ratio is the number of additional shares
// granted per existing share, so a 2-for-1 split has ratio 1: the pool scales
// by 1+ratio and every holder receives holding*ratio as an ALLOCATION event.
func (s *Service) AllocateShares(ctx context.Context, businessID uuid.UUID, params AllocateSharesParams) error {
	if params.Name == "" {
		return validationf("round name is required")
	}

	switch params.Type {
	case RoundTypeNewShares:
		if !params.AddedShares.IsPositive() {
			return validationf("addedShares must be positive")
		}
	case RoundTypeStockSplit:
		if !params.StockSplitRatio.IsPositive() {
			return validationf("stockSplitRatio must be positive")
		}
	default:
		return validationf("unsupported allocation type %q", params.Type)
	}

	tx, err := s.repo.BeginRound(ctx, businessID)
	if err != nil {
		return fmt.Errorf("begin round: %w", err)
	}
	defer tx.Rollback()

	prior, err := latestSnapshot(ctx, tx, businessID)
	if err != nil {
		return err
	}

	round := &Round{
		BusinessID: businessID,
		Name:       params.Name,
		Type:       params.Type,
		CreatedAt:  params.Date,
	}
	if err := tx.CreateRound(ctx, round); err != nil {
		return fmt.Errorf("creating round: %w", err)
	}

	event := &BusinessEvent{
		RoundID:    round.ID,
		BusinessID: businessID,
		CreatedAt:  params.Date,
	}

	switch params.Type {
	case RoundTypeNewShares:
		event.BalanceShares = prior.Balance.Add(params.AddedShares)
		event.TotalShares = prior.Total.Add(params.AddedShares)
		event.PreMoneyValuation = prior.Post
		event.PostMoneyValuation = params.Valuation
	case RoundTypeStockSplit:
		factor := decimal.NewFromInt(1).Add(params.StockSplitRatio)
		event.BalanceShares = prior.Balance.Mul(factor)
		event.TotalShares = prior.Total.Mul(factor)
		event.PreMoneyValuation = prior.Pre
		event.PostMoneyValuation = prior.Post
	}

	if err := tx.CreateBusinessEvent(ctx, event); err != nil {
		return fmt.Errorf("creating business event: %w", err)
	}

	if params.Type == RoundTypeStockSplit {
		sums, err := tx.StakeholderShareSums(ctx, businessID, nil)
		if err != nil {
			return fmt.Errorf("summing holder shares: %w", err)
		}

		holders := make([]uuid.UUID, 0, len(sums))

		for id, held := range sums {
			if held.IsPositive() {
				holders = append(holders, id)
			}
		}

		sort.Slice(holders, func(i, j int) bool { return holders[i].String() < holders[j].String() })

		events := make([]*StakeholderEvent, 0, len(holders))
		for _, id := range holders {
			events = append(events, &StakeholderEvent{
				RoundID:             round.ID,
				StakeholderID:       id,
				Shares:              sums[id].Mul(params.StockSplitRatio),
				ShareType:           ShareTypeCommon,
				ShareAllocationType: AllocationNone,
				EventType:           EventTypeAllocation,
				CreatedAt:           params.Date,
			})
		}

		if err := tx.CreateStakeholderEvents(ctx, events); err != nil {
			return fmt.Errorf("creating allocation events: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit round: %w", err)
	}

	return nil
}

type RoundParams struct {
	Name              string
	Type              RoundType
	Date              time.Time
	PreMoneyValuation decimal.Decimal
}

type ContractParams struct {
	Title          string
	Description    string
	ContractType   ContractType
	Shares         decimal.Decimal
	PricePerShare  decimal.Decimal
	InvestedAmount decimal.Decimal
}

type InvestmentParams struct {
	StakeholderID uuid.UUID
	Shares        decimal.Decimal
	Amount        *decimal.Decimal
	Notes         string
	Contracts     []ContractParams
}

type DilutionParams struct {
	StakeholderID uuid.UUID
	Shares        decimal.Decimal
}

type RaiseRoundParams struct {
	Round       RoundParams
	Investments []InvestmentParams
	Dilutions   []DilutionParams
}

// RaiseRound records a funding round: direct investments, dilutions and the
// contracts accompanying each investment. A NONE contract is priced and
// completed immediately; any other instrument stays PENDING until issued.
// BOOTSTRAP rounds take the declared amount as-is; every other type derives a
// missing amount as shares * preMoney / priorTotal.
func (s *Service) RaiseRound(ctx context.Context, businessID uuid.UUID, params RaiseRoundParams) error {
	if params.Round.Name == "" || params.Round.Type == "" {
		return validationf("round name and type are required")
	}

	if len(params.Investments) == 0 && len(params.Dilutions) == 0 {
		return validationf("round has no investments or dilutions")
	}

	for _, inv := range params.Investments {
		if inv.Shares.IsNegative() {
			return validationf("investment shares must not be negative")
		}

		for _, c := range inv.Contracts {
			if contractTypeOrNone(c.ContractType) == ContractTypeNone && !c.Shares.IsPositive() {
				return validationf("priced contract %q needs a positive share count", c.Title)
			}
		}
	}

	for _, d := range params.Dilutions {
		if !d.Shares.IsPositive() {
			return validationf("dilution shares must be positive")
		}
	}

	tx, err := s.repo.BeginRound(ctx, businessID)
	if err != nil {
		return fmt.Errorf("begin round: %w", err)
	}
	defer tx.Rollback()

	prior, err := latestSnapshot(ctx, tx, businessID)
	if err != nil {
		return err
	}

	ids := make([]uuid.UUID, 0, len(params.Investments)+len(params.Dilutions))
	for _, inv := range params.Investments {
		ids = append(ids, inv.StakeholderID)
	}

	for _, d := range params.Dilutions {
		ids = append(ids, d.StakeholderID)
	}

	if _, err := requireStakeholders(ctx, tx, businessID, ids); err != nil {
		return err
	}

	// Resolve each investment's amount and each contract's consideration
	// before touching the ledger, so the post-money is known up front.
	amounts := make([]decimal.Decimal, len(params.Investments))
	totalInvested := decimal.Zero
	contractInvested := decimal.Zero
	pricedContractShares := decimal.Zero
	sharesIssued := decimal.Zero
	sharesDiluted := decimal.Zero

	for i, inv := range params.Investments {
		switch {
		case inv.Amount != nil:
			amounts[i] = *inv.Amount
		case params.Round.Type == RoundTypeBootstrap:
			return validationf("bootstrap investments must declare an amount")
		case prior.Total.IsZero():
			return validationf("cannot derive investment amount with no outstanding shares")
		default:
			amounts[i] = inv.Shares.Mul(params.Round.PreMoneyValuation).Div(prior.Total)
		}

		totalInvested = totalInvested.Add(amounts[i])
		sharesIssued = sharesIssued.Add(inv.Shares)

		for _, c := range inv.Contracts {
			if contractTypeOrNone(c.ContractType) == ContractTypeNone {
				contractInvested = contractInvested.Add(c.Shares.Mul(c.PricePerShare))
				pricedContractShares = pricedContractShares.Add(c.Shares)
			} else {
				contractInvested = contractInvested.Add(c.InvestedAmount)
			}
		}
	}

	for _, d := range params.Dilutions {
		sharesDiluted = sharesDiluted.Add(d.Shares)
	}

	balance := prior.Balance.Sub(sharesIssued.Add(pricedContractShares)).Add(sharesDiluted)
	if balance.IsNegative() {
		return validationf("round would drive balance shares negative (%s)", balance)
	}

	round := &Round{
		BusinessID: businessID,
		Name:       params.Round.Name,
		Type:       params.Round.Type,
		CreatedAt:  params.Round.Date,
	}
	if err := tx.CreateRound(ctx, round); err != nil {
		return fmt.Errorf("creating round: %w", err)
	}

	event := &BusinessEvent{
		RoundID:            round.ID,
		BusinessID:         businessID,
		BalanceShares:      balance,
		TotalShares:        prior.Total,
		PreMoneyValuation:  params.Round.PreMoneyValuation,
		PostMoneyValuation: params.Round.PreMoneyValuation.Add(totalInvested).Add(contractInvested),
		CreatedAt:          params.Round.Date,
	}
	if err := tx.CreateBusinessEvent(ctx, event); err != nil {
		return fmt.Errorf("creating business event: %w", err)
	}

	var events []*StakeholderEvent

	for i, inv := range params.Investments {
		investment := &Investment{
			RoundID:       round.ID,
			StakeholderID: inv.StakeholderID,
			Amount:        amounts[i],
			Notes:         inv.Notes,
			CreatedAt:     params.Round.Date,
		}
		if err := tx.CreateInvestment(ctx, investment); err != nil {
			return fmt.Errorf("creating investment: %w", err)
		}

		if inv.Shares.IsPositive() {
			events = append(events, &StakeholderEvent{
				RoundID:             round.ID,
				StakeholderID:       inv.StakeholderID,
				Shares:              inv.Shares,
				ShareType:           ShareTypeCommon,
				ShareAllocationType: AllocationActualPrice,
				EventType:           EventTypeInvestment,
				CreatedAt:           params.Round.Date,
			})
		}

		if len(inv.Contracts) == 0 {
			continue
		}

		contracts := make([]*Contract, 0, len(inv.Contracts))

		for _, c := range inv.Contracts {
			contractType := contractTypeOrNone(c.ContractType)

			contract := &Contract{
				Parent:        ContractParent{Kind: ParentInvestment, ID: investment.ID},
				Title:         c.Title,
				Description:   c.Description,
				ContractType:  contractType,
				Shares:        c.Shares,
				PricePerShare: c.PricePerShare,
				Status:        ContractPending,
				CreatedAt:     params.Round.Date,
			}

			if contractType == ContractTypeNone {
				// Priced at creation: shares count against the pool now and
				// the contract has nothing left to fulfill.
				contract.Status = ContractCompleted
			} else {
				contract.ContractInvestment = c.InvestedAmount
			}

			contracts = append(contracts, contract)
		}

		if err := tx.CreateContracts(ctx, contracts); err != nil {
			return fmt.Errorf("creating contracts: %w", err)
		}

		for _, contract := range contracts {
			if contract.ContractType != ContractTypeNone {
				continue
			}

			price := contract.PricePerShare

			events = append(events, &StakeholderEvent{
				RoundID:             round.ID,
				StakeholderID:       inv.StakeholderID,
				Shares:              contract.Shares,
				ShareType:           ShareTypeCommon,
				ShareAllocationType: AllocationContractPrice,
				EventType:           EventTypeInvestment,
				PricePerShare:       &price,
				ContractID:          &contract.ID,
				CreatedAt:           params.Round.Date,
			})
		}
	}

	for _, d := range params.Dilutions {
		events = append(events, &StakeholderEvent{
			RoundID:             round.ID,
			StakeholderID:       d.StakeholderID,
			Shares:              d.Shares.Neg(),
			ShareType:           ShareTypeCommon,
			ShareAllocationType: AllocationActualPrice,
			EventType:           EventTypeDilution,
			CreatedAt:           params.Round.Date,
		})
	}

	if err := tx.CreateStakeholderEvents(ctx, events); err != nil {
		return fmt.Errorf("creating stakeholder events: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit round: %w", err)
	}

	return nil
}

type IssueContractParams struct {
	Name       string
	Date       time.Time
	ContractID uuid.UUID
	Shares     decimal.Decimal
	Dilutions  []DilutionParams
}

// IssueContract realizes part or all of a pending contract into real shares.
// Issuance draws the shares out of the unissued balance; totalShares never
// changes here since the pool itself is untouched.
func (s *Service) IssueContract(ctx context.Context, businessID uuid.UUID, params IssueContractParams) error {
	if params.Name == "" {
		return validationf("round name is required")
	}

	if !params.Shares.IsPositive() {
		return validationf("issued shares must be positive")
	}

	for _, d := range params.Dilutions {
		if !d.Shares.IsPositive() {
			return validationf("dilution shares must be positive")
		}
	}

	tx, err := s.repo.BeginRound(ctx, businessID)
	if err != nil {
		return fmt.Errorf("begin round: %w", err)
	}
	defer tx.Rollback()

	contract, err := tx.GetContract(ctx, businessID, params.ContractID)
	if err != nil {
		return fmt.Errorf("reading contract %s: %w", params.ContractID, err)
	}

	if contract.Status != ContractPending {
		return validationf("contract %s is not pending", contract.ID)
	}

	if params.Shares.GreaterThan(contract.Shares) {
		return validationf("issuing %s shares exceeds the contract's remaining %s", params.Shares, contract.Shares)
	}

	ids := make([]uuid.UUID, 0, len(params.Dilutions))
	for _, d := range params.Dilutions {
		ids = append(ids, d.StakeholderID)
	}

	if _, err := requireStakeholders(ctx, tx, businessID, ids); err != nil {
		return err
	}

	prior, err := latestSnapshot(ctx, tx, businessID)
	if err != nil {
		return err
	}

	sharesDiluted := decimal.Zero
	for _, d := range params.Dilutions {
		sharesDiluted = sharesDiluted.Add(d.Shares)
	}

	balance := prior.Balance.Sub(params.Shares).Add(sharesDiluted)
	if balance.IsNegative() {
		return validationf("issuance would drive balance shares negative (%s)", balance)
	}

	round := &Round{
		BusinessID: businessID,
		Name:       params.Name,
		Type:       roundTypeForContract(contract.ContractType),
		CreatedAt:  params.Date,
	}
	if err := tx.CreateRound(ctx, round); err != nil {
		return fmt.Errorf("creating round: %w", err)
	}

	event := &BusinessEvent{
		RoundID:            round.ID,
		BusinessID:         businessID,
		BalanceShares:      balance,
		TotalShares:        prior.Total,
		PreMoneyValuation:  prior.Pre,
		PostMoneyValuation: prior.Post,
		CreatedAt:          params.Date,
	}
	if err := tx.CreateBusinessEvent(ctx, event); err != nil {
		return fmt.Errorf("creating business event: %w", err)
	}

	remaining := contract.Shares.Sub(params.Shares)

	status := ContractPending
	if !remaining.IsPositive() {
		status = ContractCompleted
	}

	if err := tx.UpdateContract(ctx, contract.ID, remaining, status); err != nil {
		return fmt.Errorf("updating contract: %w", err)
	}

	price := contract.PricePerShare
	events := []*StakeholderEvent{{
		RoundID:             round.ID,
		StakeholderID:       contract.StakeholderID,
		Shares:              params.Shares,
		ShareType:           shareTypeForContract(contract.ContractType),
		ShareAllocationType: AllocationContractPrice,
		EventType:           eventTypeForContract(contract.ContractType),
		PricePerShare:       &price,
		ContractID:          &contract.ID,
		CreatedAt:           params.Date,
	}}

	for _, d := range params.Dilutions {
		events = append(events, &StakeholderEvent{
			RoundID:             round.ID,
			StakeholderID:       d.StakeholderID,
			Shares:              d.Shares.Neg(),
			ShareType:           ShareTypeCommon,
			ShareAllocationType: AllocationActualPrice,
			EventType:           EventTypeDilution,
			CreatedAt:           params.Date,
		})
	}

	if err := tx.CreateStakeholderEvents(ctx, events); err != nil {
		return fmt.Errorf("creating stakeholder events: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit round: %w", err)
	}

	return nil
}

type ExitParams struct {
	StakeholderID uuid.UUID
	Notes         string
}

type GrantExitParams struct {
	Name   string
	Date   time.Time
	Exits  []ExitParams
	Issues []DilutionParams
}

// GrantExit removes exiting stakeholders' full balances and re-issues the
// same number of shares to the remaining or new stakeholders. The exit payout
// is priced at the valuation in effect before this round. Partial exits are
// not modeled.
func (s *Service) GrantExit(ctx context.Context, businessID uuid.UUID, params GrantExitParams) error {
	if params.Name == "" {
		return validationf("round name is required")
	}

	if len(params.Exits) == 0 {
		return validationf("at least one exiting stakeholder is required")
	}

	for _, issue := range params.Issues {
		if !issue.Shares.IsPositive() {
			return validationf("re-issued shares must be positive")
		}
	}

	tx, err := s.repo.BeginRound(ctx, businessID)
	if err != nil {
		return fmt.Errorf("begin round: %w", err)
	}
	defer tx.Rollback()

	exitIDs := make([]uuid.UUID, 0, len(params.Exits))
	for _, e := range params.Exits {
		exitIDs = append(exitIDs, e.StakeholderID)
	}

	issueIDs := make([]uuid.UUID, 0, len(params.Issues))
	for _, issue := range params.Issues {
		issueIDs = append(issueIDs, issue.StakeholderID)
	}

	stakeholders, err := requireStakeholders(ctx, tx, businessID, append(append([]uuid.UUID{}, exitIDs...), issueIDs...))
	if err != nil {
		return err
	}

	for _, id := range exitIDs {
		if stakeholders[id].HasExited {
			return validationf("stakeholder %s has already exited", id)
		}
	}

	prior, err := latestSnapshot(ctx, tx, businessID)
	if err != nil {
		return err
	}

	sums, err := tx.StakeholderShareSums(ctx, businessID, exitIDs)
	if err != nil {
		return fmt.Errorf("summing exit shares: %w", err)
	}

	exitShares := decimal.Zero

	for _, id := range exitIDs {
		held := sums[id]
		if !held.IsPositive() {
			return validationf("stakeholder %s has no shares to exit", id)
		}

		exitShares = exitShares.Add(held)
	}

	sharesIssued := decimal.Zero
	for _, issue := range params.Issues {
		sharesIssued = sharesIssued.Add(issue.Shares)
	}

	if !exitShares.Equal(sharesIssued) {
		return validationf("re-issued shares (%s) must equal exiting shares (%s)", sharesIssued, exitShares)
	}

	round := &Round{
		BusinessID: businessID,
		Name:       params.Name,
		Type:       RoundTypeExit,
		CreatedAt:  params.Date,
	}
	if err := tx.CreateRound(ctx, round); err != nil {
		return fmt.Errorf("creating round: %w", err)
	}

	event := &BusinessEvent{
		RoundID:            round.ID,
		BusinessID:         businessID,
		BalanceShares:      prior.Balance.Sub(sharesIssued).Add(exitShares),
		TotalShares:        prior.Total,
		PreMoneyValuation:  prior.Pre,
		PostMoneyValuation: prior.Post,
		CreatedAt:          params.Date,
	}
	if err := tx.CreateBusinessEvent(ctx, event); err != nil {
		return fmt.Errorf("creating business event: %w", err)
	}

	pricePerShare := decimal.Zero
	if prior.Total.IsPositive() {
		pricePerShare = prior.Post.Div(prior.Total)
	}

	events := make([]*StakeholderEvent, 0, len(exitIDs)+len(params.Issues))

	for _, id := range exitIDs {
		events = append(events, &StakeholderEvent{
			RoundID:             round.ID,
			StakeholderID:       id,
			Shares:              sums[id].Neg(),
			ShareType:           ShareTypeCommon,
			ShareAllocationType: AllocationActualPrice,
			EventType:           EventTypeExit,
			CreatedAt:           params.Date,
		})
	}

	for _, issue := range params.Issues {
		events = append(events, &StakeholderEvent{
			RoundID:             round.ID,
			StakeholderID:       issue.StakeholderID,
			Shares:              issue.Shares,
			ShareType:           ShareTypeCommon,
			ShareAllocationType: AllocationActualPrice,
			EventType:           EventTypeExit,
			CreatedAt:           params.Date,
		})
	}

	if err := tx.CreateStakeholderEvents(ctx, events); err != nil {
		return fmt.Errorf("creating stakeholder events: %w", err)
	}

	for _, id := range exitIDs {
		if err := tx.MarkStakeholderExited(ctx, id, sums[id].Mul(pricePerShare)); err != nil {
			return fmt.Errorf("marking stakeholder %s exited: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit round: %w", err)
	}

	return nil
}

type GrantContractParams struct {
	Title       string
	Description string
	Shares      decimal.Decimal
}

type GrantParams struct {
	StakeholderID uuid.UUID
	Notes         string
	PricePerShare decimal.Decimal
	Contracts     []GrantContractParams
}

type WarrantGrantParams struct {
	EventType RoundType
	Date      time.Time
	Notes     string
	Grants    []GrantParams
}

// GrantWarrantOrOption records warrant/option grants as pending contracts.
// Nothing moves on the ledger until a grant is run through IssueContract, so
// no round or business event is written here.
func (s *Service) GrantWarrantOrOption(ctx context.Context, businessID uuid.UUID, params WarrantGrantParams) error {
	if params.EventType != RoundTypeWarrant && params.EventType != RoundTypeOption {
		return validationf("event type must be WARRANT or OPTION")
	}

	if len(params.Grants) == 0 {
		return validationf("at least one grant is required")
	}

	for _, grant := range params.Grants {
		if len(grant.Contracts) == 0 {
			return validationf("grant for %s has no contracts", grant.StakeholderID)
		}

		if grant.PricePerShare.IsNegative() {
			return validationf("pricePerShare must not be negative")
		}

		for _, c := range grant.Contracts {
			if !c.Shares.IsPositive() {
				return validationf("contract %q needs a positive share count", c.Title)
			}
		}
	}

	contractType := ContractTypeWarrant
	if params.EventType == RoundTypeOption {
		contractType = ContractTypeOption
	}

	tx, err := s.repo.BeginRound(ctx, businessID)
	if err != nil {
		return fmt.Errorf("begin round: %w", err)
	}
	defer tx.Rollback()

	ids := make([]uuid.UUID, 0, len(params.Grants))
	for _, grant := range params.Grants {
		ids = append(ids, grant.StakeholderID)
	}

	if _, err := requireStakeholders(ctx, tx, businessID, ids); err != nil {
		return err
	}

	for _, grant := range params.Grants {
		warrantGrant := &WarrantGrant{
			BusinessID:    businessID,
			StakeholderID: grant.StakeholderID,
			EventType:     params.EventType,
			Notes:         grant.Notes,
			CreatedAt:     params.Date,
		}
		if err := tx.CreateWarrantGrant(ctx, warrantGrant); err != nil {
			return fmt.Errorf("creating warrant grant: %w", err)
		}

		contracts := make([]*Contract, 0, len(grant.Contracts))
		for _, c := range grant.Contracts {
			contracts = append(contracts, &Contract{
				Parent:        ContractParent{Kind: ParentWarrantGrant, ID: warrantGrant.ID},
				Title:         c.Title,
				Description:   c.Description,
				ContractType:  contractType,
				Shares:        c.Shares,
				PricePerShare: grant.PricePerShare,
				Status:        ContractPending,
				CreatedAt:     params.Date,
			})
		}

		if err := tx.CreateContracts(ctx, contracts); err != nil {
			return fmt.Errorf("creating contracts: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit grant: %w", err)
	}

	return nil
}

func contractTypeOrNone(t ContractType) ContractType {
	if t == "" {
		return ContractTypeNone
	}

	return t
}

func roundTypeForContract(t ContractType) RoundType {
	switch t {
	case ContractTypeWarrant:
		return RoundTypeWarrant
	case ContractTypeOption:
		return RoundTypeOption
	case ContractTypeConvertibleNote:
		return RoundTypeConvertibleNote
	case ContractTypeSAFE:
		return RoundTypeSAFE
	default:
		return RoundTypeContractIssue
	}
}

func eventTypeForContract(t ContractType) EventType {
	switch t {
	case ContractTypeWarrant:
		return EventTypeWarrant
	case ContractTypeOption:
		return EventTypeOption
	case ContractTypeConvertibleNote:
		return EventTypeConvertibleNote
	case ContractTypeSAFE:
		return EventTypeSAFE
	default:
		return EventTypeInvestment
	}
}

func shareTypeForContract(t ContractType) ShareType {
	switch t {
	case ContractTypeWarrant:
		return ShareTypeWarrant
	case ContractTypeOption:
		return ShareTypeOption
	default:
		return ShareTypeCommon
	}
}
