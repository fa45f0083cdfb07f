package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/captable/internal/ledger"
)

// Repository lists persisted ledger state for read-side folds. All listings
// are ordered ascending by effective date (seq breaks exact-timestamp ties
// where one exists).
type Repository interface {
	LatestBusinessEvent(ctx context.Context, businessID uuid.UUID) (*ledger.BusinessEvent, error)
	ListBusinessEvents(ctx context.Context, businessID uuid.UUID) ([]*ledger.BusinessEvent, error)
	ListRounds(ctx context.Context, businessID uuid.UUID) ([]*ledger.Round, error)
	ListStakeholders(ctx context.Context, businessID uuid.UUID) ([]*ledger.Stakeholder, error)
	ListStakeholderEvents(ctx context.Context, businessID uuid.UUID) ([]*ledger.StakeholderEvent, error)
	ListInvestments(ctx context.Context, businessID uuid.UUID) ([]*ledger.Investment, error)

	// ListContracts filters by status; an empty status lists every contract.
	ListContracts(ctx context.Context, businessID uuid.UUID, status ledger.ContractStatus) ([]*ledger.Contract, error)
}

// Service folds the append-only event log into derived read views. It never
// mutates anything.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// BusinessInfo returns the authoritative current snapshot, or nil when the
// business has no events yet.
func (s *Service) BusinessInfo(ctx context.Context, businessID uuid.UUID) (*ledger.BusinessEvent, error) {
	return s.repo.LatestBusinessEvent(ctx, businessID)
}

type StakeholderSummary struct {
	ID            uuid.UUID
	Name          string
	UserID        uuid.UUID
	Type          ledger.StakeholderType
	HasExited     bool
	ExitedAtPrice *decimal.Decimal
	CreatedAt     time.Time

	OwnedShares     decimal.Decimal // every event counted
	OwnershipShares decimal.Decimal // voting/equity-bearing: OPTION events excluded
	TotalInvestment decimal.Decimal
	PromisedShares  decimal.Decimal // pending contract shares not yet issued
	StockValue      decimal.Decimal
}

type StakeholdersView struct {
	Stakeholders         []StakeholderSummary
	TotalOwnedShares     decimal.Decimal
	TotalOwnershipShares decimal.Decimal
	TotalInvestment      decimal.Decimal
}

// Stakeholders folds every stakeholder's events, investments and contracts
// into a per-stakeholder summary plus the denominators for ownership
// percentages.
func (s *Service) Stakeholders(ctx context.Context, businessID uuid.UUID) (*StakeholdersView, error) {
	stakeholders, err := s.repo.ListStakeholders(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing stakeholders: %w", err)
	}

	events, err := s.repo.ListStakeholderEvents(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing stakeholder events: %w", err)
	}

	investments, err := s.repo.ListInvestments(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing investments: %w", err)
	}

	contracts, err := s.repo.ListContracts(ctx, businessID, "")
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}

	latest, err := s.repo.LatestBusinessEvent(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("reading latest business event: %w", err)
	}

	owned := make(map[uuid.UUID]decimal.Decimal)
	ownership := make(map[uuid.UUID]decimal.Decimal)

	for _, event := range events {
		owned[event.StakeholderID] = owned[event.StakeholderID].Add(event.Shares)

		if event.EventType != ledger.EventTypeOption {
			ownership[event.StakeholderID] = ownership[event.StakeholderID].Add(event.Shares)
		}
	}

	invested := make(map[uuid.UUID]decimal.Decimal)
	for _, inv := range investments {
		invested[inv.StakeholderID] = invested[inv.StakeholderID].Add(inv.Amount)
	}

	promised := make(map[uuid.UUID]decimal.Decimal)

	for _, contract := range contracts {
		switch contract.Status {
		case ledger.ContractPending:
			promised[contract.StakeholderID] = promised[contract.StakeholderID].Add(contract.Shares)
		case ledger.ContractCompleted:
			invested[contract.StakeholderID] = invested[contract.StakeholderID].Add(contractValue(contract))
		}
	}

	pricePerShare := decimal.Zero
	if latest != nil && latest.TotalShares.IsPositive() {
		pricePerShare = latest.PostMoneyValuation.Div(latest.TotalShares)
	}

	view := &StakeholdersView{Stakeholders: make([]StakeholderSummary, 0, len(stakeholders))}

	for _, stakeholder := range stakeholders {
		summary := StakeholderSummary{
			ID:              stakeholder.ID,
			Name:            stakeholder.Name,
			UserID:          stakeholder.UserID,
			Type:            stakeholder.Type,
			HasExited:       stakeholder.HasExited,
			ExitedAtPrice:   stakeholder.ExitedAtPrice,
			CreatedAt:       stakeholder.CreatedAt,
			OwnedShares:     owned[stakeholder.ID],
			OwnershipShares: ownership[stakeholder.ID],
			TotalInvestment: invested[stakeholder.ID],
			PromisedShares:  promised[stakeholder.ID],
			StockValue:      owned[stakeholder.ID].Mul(pricePerShare),
		}

		view.Stakeholders = append(view.Stakeholders, summary)
		view.TotalOwnedShares = view.TotalOwnedShares.Add(summary.OwnedShares)
		view.TotalOwnershipShares = view.TotalOwnershipShares.Add(summary.OwnershipShares)
		view.TotalInvestment = view.TotalInvestment.Add(summary.TotalInvestment)
	}

	return view, nil
}

type TimelineSnapshot struct {
	Timestamp          time.Time
	PreMoneyValuation  decimal.Decimal
	PostMoneyValuation decimal.Decimal
	TotalShares        decimal.Decimal
	BalanceShares      decimal.Decimal
	PricePerShare      decimal.Decimal
	HolderShares       map[uuid.UUID]decimal.Decimal // cumulative through this bucket
	DirectInvestment   decimal.Decimal
	ContractInvestment decimal.Decimal
}

// Timeline buckets the log by exact timestamp (events written in one round
// transaction share an effective date) and emits a chronological sequence of
// snapshots, each carrying the cumulative per-stakeholder share fold.
func (s *Service) Timeline(ctx context.Context, businessID uuid.UUID) ([]TimelineSnapshot, error) {
	businessEvents, err := s.repo.ListBusinessEvents(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing business events: %w", err)
	}

	stakeholderEvents, err := s.repo.ListStakeholderEvents(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing stakeholder events: %w", err)
	}

	investments, err := s.repo.ListInvestments(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing investments: %w", err)
	}

	contracts, err := s.repo.ListContracts(ctx, businessID, ledger.ContractCompleted)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}

	directByTime := make(map[int64]decimal.Decimal)
	for _, inv := range investments {
		key := inv.CreatedAt.UnixNano()
		directByTime[key] = directByTime[key].Add(inv.Amount)
	}

	contractByTime := make(map[int64]decimal.Decimal)
	for _, contract := range contracts {
		key := contract.CreatedAt.UnixNano()
		contractByTime[key] = contractByTime[key].Add(contractValue(contract))
	}

	sort.SliceStable(stakeholderEvents, func(i, j int) bool {
		return stakeholderEvents[i].CreatedAt.Before(stakeholderEvents[j].CreatedAt)
	})

	var snapshots []TimelineSnapshot

	cumulative := make(map[uuid.UUID]decimal.Decimal)
	next := 0

	for i, event := range businessEvents {
		// Same-timestamp snapshots collapse into one bucket; the last event
		// in log order carries the authoritative state for that instant.
		if i+1 < len(businessEvents) && businessEvents[i+1].CreatedAt.Equal(event.CreatedAt) {
			continue
		}

		for next < len(stakeholderEvents) && !stakeholderEvents[next].CreatedAt.After(event.CreatedAt) {
			se := stakeholderEvents[next]
			cumulative[se.StakeholderID] = cumulative[se.StakeholderID].Add(se.Shares)
			next++
		}

		holders := make(map[uuid.UUID]decimal.Decimal, len(cumulative))
		for id, shares := range cumulative {
			holders[id] = shares
		}

		pricePerShare := decimal.Zero
		if event.TotalShares.IsPositive() {
			pricePerShare = event.PostMoneyValuation.Div(event.TotalShares)
		}

		key := event.CreatedAt.UnixNano()
		snapshots = append(snapshots, TimelineSnapshot{
			Timestamp:          event.CreatedAt,
			PreMoneyValuation:  event.PreMoneyValuation,
			PostMoneyValuation: event.PostMoneyValuation,
			TotalShares:        event.TotalShares,
			BalanceShares:      event.BalanceShares,
			PricePerShare:      pricePerShare,
			HolderShares:       holders,
			DirectInvestment:   directByTime[key],
			ContractInvestment: contractByTime[key],
		})
	}

	return snapshots, nil
}

type MonthBucket struct {
	Month           string
	FirstValuation  decimal.Decimal
	LastValuation   decimal.Decimal
	TotalInvestment decimal.Decimal
}

// BusinessByMonth buckets business events by calendar month. Each bucket
// records the opening pre-money, the closing post-money, and the total money
// that came in: direct investment amounts, completed contract considerations,
// and the consideration on warrant/option contracts issued that month.
func (s *Service) BusinessByMonth(ctx context.Context, businessID uuid.UUID) ([]MonthBucket, error) {
	businessEvents, err := s.repo.ListBusinessEvents(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing business events: %w", err)
	}

	investments, err := s.repo.ListInvestments(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing investments: %w", err)
	}

	contracts, err := s.repo.ListContracts(ctx, businessID, ledger.ContractCompleted)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}

	stakeholderEvents, err := s.repo.ListStakeholderEvents(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing stakeholder events: %w", err)
	}

	directByRound := make(map[uuid.UUID]decimal.Decimal)
	for _, inv := range investments {
		directByRound[inv.RoundID] = directByRound[inv.RoundID].Add(inv.Amount)
	}

	contractsByRound := make(map[uuid.UUID]decimal.Decimal)
	contractsByID := make(map[uuid.UUID]*ledger.Contract, len(contracts))

	for _, contract := range contracts {
		contractsByID[contract.ID] = contract

		if contract.RoundID != nil {
			contractsByRound[*contract.RoundID] = contractsByRound[*contract.RoundID].Add(contractValue(contract))
		}
	}

	// Warrant/option issuance brings the contract's consideration into the
	// month it was exercised, not the month it was granted.
	warrantByRound := make(map[uuid.UUID]decimal.Decimal)

	for _, event := range stakeholderEvents {
		if event.EventType != ledger.EventTypeWarrant && event.EventType != ledger.EventTypeOption {
			continue
		}

		if event.ContractID == nil {
			continue
		}

		contract, ok := contractsByID[*event.ContractID]
		if !ok {
			continue
		}

		warrantByRound[event.RoundID] = warrantByRound[event.RoundID].Add(contract.ContractInvestment)
	}

	var months []MonthBucket

	index := make(map[string]int)

	for _, event := range businessEvents {
		month := event.CreatedAt.Format("January 2006")

		i, ok := index[month]
		if !ok {
			i = len(months)
			index[month] = i
			months = append(months, MonthBucket{
				Month:          month,
				FirstValuation: event.PreMoneyValuation,
			})
		}

		months[i].LastValuation = event.PostMoneyValuation
		months[i].TotalInvestment = months[i].TotalInvestment.
			Add(directByRound[event.RoundID]).
			Add(contractsByRound[event.RoundID]).
			Add(warrantByRound[event.RoundID])
	}

	return months, nil
}

// RoundDetail is one round with everything it wrote, for the raw events feed.
type RoundDetail struct {
	Round             *ledger.Round
	BusinessEvent     *ledger.BusinessEvent
	Investments       []*ledger.Investment
	StakeholderEvents []*ledger.StakeholderEvent
}

// Rounds returns the chronological round feed with each round's snapshot,
// investments and share movements attached.
func (s *Service) Rounds(ctx context.Context, businessID uuid.UUID) ([]RoundDetail, error) {
	rounds, err := s.repo.ListRounds(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing rounds: %w", err)
	}

	businessEvents, err := s.repo.ListBusinessEvents(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing business events: %w", err)
	}

	investments, err := s.repo.ListInvestments(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing investments: %w", err)
	}

	stakeholderEvents, err := s.repo.ListStakeholderEvents(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing stakeholder events: %w", err)
	}

	eventByRound := make(map[uuid.UUID]*ledger.BusinessEvent, len(businessEvents))
	for _, event := range businessEvents {
		eventByRound[event.RoundID] = event
	}

	investmentsByRound := make(map[uuid.UUID][]*ledger.Investment)
	for _, inv := range investments {
		investmentsByRound[inv.RoundID] = append(investmentsByRound[inv.RoundID], inv)
	}

	seByRound := make(map[uuid.UUID][]*ledger.StakeholderEvent)
	for _, event := range stakeholderEvents {
		seByRound[event.RoundID] = append(seByRound[event.RoundID], event)
	}

	details := make([]RoundDetail, 0, len(rounds))
	for _, round := range rounds {
		details = append(details, RoundDetail{
			Round:             round,
			BusinessEvent:     eventByRound[round.ID],
			Investments:       investmentsByRound[round.ID],
			StakeholderEvents: seByRound[round.ID],
		})
	}

	return details, nil
}

// Contracts lists a business's contracts by status; ledger.ContractStatus("")
// lists all of them.
func (s *Service) Contracts(ctx context.Context, businessID uuid.UUID, status ledger.ContractStatus) ([]*ledger.Contract, error) {
	return s.repo.ListContracts(ctx, businessID, status)
}

// contractValue is the money a completed contract brought in: a plain NONE
// purchase is worth shares at its fixed price, any other instrument carries
// the amount actually invested under it.
func contractValue(contract *ledger.Contract) decimal.Decimal {
	if contract.ContractType == ledger.ContractTypeNone {
		return contract.Shares.Mul(contract.PricePerShare)
	}

	return contract.ContractInvestment
}
