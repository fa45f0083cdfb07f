package ledger

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RoundType classifies the corporate action a round records.
type RoundType string

const (
	RoundTypeBootstrap       RoundType = "BOOTSTRAP"
	RoundTypeSeed            RoundType = "SEED"
	RoundTypeSeriesA         RoundType = "SERIES_A"
	RoundTypeSeriesB         RoundType = "SERIES_B"
	RoundTypeSeriesC         RoundType = "SERIES_C"
	RoundTypeSeriesN         RoundType = "SERIES_N"
	RoundTypeBridge          RoundType = "BRIDGE"
	RoundTypeIPO             RoundType = "IPO"
	RoundTypeCrowdfunding    RoundType = "CROWDFUNDING"
	RoundTypeVentureDebt     RoundType = "VENTURE_DEBT"
	RoundTypeNewShares       RoundType = "NEW_SHARES"
	RoundTypeStockSplit      RoundType = "STOCK_SPLIT"
	RoundTypeWarrant         RoundType = "WARRANT"
	RoundTypeOption          RoundType = "OPTION"
	RoundTypeExit            RoundType = "EXIT"
	RoundTypeContractIssue   RoundType = "CONTRACT_ISSUE"
	RoundTypeConvertibleNote RoundType = "CONVERTIBLE_NOTE"
	RoundTypeSAFE            RoundType = "SAFE"
)

// EventType classifies a single stakeholder share movement.
type EventType string

const (
	EventTypeInvestment      EventType = "INVESTMENT"
	EventTypeDilution        EventType = "DILUTION"
	EventTypeExit            EventType = "EXIT"
	EventTypeWarrant         EventType = "WARRANT"
	EventTypeOption          EventType = "OPTION"
	EventTypeConvertibleNote EventType = "CONVERTIBLE_NOTE"
	EventTypeSAFE            EventType = "SAFE"
	EventTypeAllocation      EventType = "ALLOCATION"
)

// ShareType is the class of shares a stakeholder event moves.
type ShareType string

const (
	ShareTypeCommon  ShareType = "COMMON"
	ShareTypeOption  ShareType = "OPTION"
	ShareTypeWarrant ShareType = "WARRANT"
)

// ShareAllocationType records how the price per share was derived.
type ShareAllocationType string

const (
	AllocationActualPrice   ShareAllocationType = "ACTUAL_PRICE"
	AllocationContractPrice ShareAllocationType = "CONTRACT_PRICE"
	AllocationNone          ShareAllocationType = "NONE"
)

// ContractType is the equity instrument a contract promises shares under.
// ContractTypeNone is a plain share purchase priced at creation.
type ContractType string

const (
	ContractTypeNone            ContractType = "NONE"
	ContractTypeSAFE            ContractType = "SAFE"
	ContractTypeConvertibleNote ContractType = "CONVERTIBLE_NOTE"
	ContractTypeWarrant         ContractType = "WARRANT"
	ContractTypeOption          ContractType = "OPTION"
)

// ContractStatus is the fulfillment state of a contract.
type ContractStatus string

const (
	ContractPending   ContractStatus = "PENDING"
	ContractCompleted ContractStatus = "COMPLETED"
)

// StakeholderType classifies a stakeholder's relationship to the business.
type StakeholderType string

const (
	StakeholderFoundingTeam   StakeholderType = "FOUNDING_TEAM"
	StakeholderAngelInvestor  StakeholderType = "ANGEL_INVESTOR"
	StakeholderEmployee       StakeholderType = "EMPLOYEE"
	StakeholderFriendsNFamily StakeholderType = "FRIENDS_N_FAMILY"
	StakeholderOther          StakeholderType = "OTHER"
)

// Round is one discrete corporate action. CreatedAt is the effective date of
// the action as supplied by the caller, not the insertion time. Immutable.
type Round struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Name       string
	Type       RoundType
	CreatedAt  time.Time
}

// BusinessEvent is the company-wide snapshot written by a round, one per
// round. The snapshot with the greatest CreatedAt (Seq breaks exact-timestamp
// ties) is the authoritative current state.
type BusinessEvent struct {
	ID                 uuid.UUID
	RoundID            uuid.UUID
	BusinessID         uuid.UUID
	Seq                int64
	BalanceShares      decimal.Decimal
	TotalShares        decimal.Decimal
	PreMoneyValuation  decimal.Decimal
	PostMoneyValuation decimal.Decimal
	CreatedAt          time.Time
}

// Stakeholder is a person or entity holding (or eligible to hold) equity.
type Stakeholder struct {
	ID            uuid.UUID
	BusinessID    uuid.UUID
	UserID        uuid.UUID
	Name          string // resolved from the user record on read
	Type          StakeholderType
	Config        json.RawMessage
	HasExited     bool
	ExitedAtPrice *decimal.Decimal
	CreatedAt     time.Time
}

// StakeholderEvent is one signed share delta for one stakeholder within one
// round. A stakeholder's balance at any point is the sum of their events up to
// that point; it is never stored directly.
type StakeholderEvent struct {
	ID                  uuid.UUID
	RoundID             uuid.UUID
	StakeholderID       uuid.UUID
	Shares              decimal.Decimal
	ShareType           ShareType
	ShareAllocationType ShareAllocationType
	EventType           EventType
	PricePerShare       *decimal.Decimal
	ContractID          *uuid.UUID
	CreatedAt           time.Time
}

// Investment is an investor's capital commitment within a round.
type Investment struct {
	ID            uuid.UUID
	RoundID       uuid.UUID
	StakeholderID uuid.UUID
	Amount        decimal.Decimal
	Notes         string
	CreatedAt     time.Time
}

// WarrantGrant is the container for warrant/option contracts granted outside
// a capital investment.
type WarrantGrant struct {
	ID            uuid.UUID
	BusinessID    uuid.UUID
	StakeholderID uuid.UUID
	EventType     RoundType
	Notes         string
	CreatedAt     time.Time
}

// ContractParentKind discriminates the owning side of a contract.
type ContractParentKind string

const (
	ParentInvestment   ContractParentKind = "INVESTMENT"
	ParentWarrantGrant ContractParentKind = "WARRANT_GRANT"
)

// ContractParent identifies the single owner of a contract: an investment or
// a warrant grant, never both.
type ContractParent struct {
	Kind ContractParentKind
	ID   uuid.UUID
}

// Contract is a promise of future shares. Shares holds the remaining
// (unissued) quantity and is reduced as issue-contract rounds realize it;
// Status flips to COMPLETED when it reaches zero.
type Contract struct {
	ID                 uuid.UUID
	Parent             ContractParent
	Title              string
	Description        string
	ContractType       ContractType
	Shares             decimal.Decimal
	PricePerShare      decimal.Decimal
	ContractInvestment decimal.Decimal
	Status             ContractStatus
	CreatedAt          time.Time

	// Resolved through the parent on read; not writable.
	StakeholderID uuid.UUID
	BusinessID    uuid.UUID
	RoundID       *uuid.UUID
}
