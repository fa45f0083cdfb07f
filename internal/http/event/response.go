package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/captable/internal/ledger"
	"github.com/MrJamesThe3rd/captable/internal/report"
)

type infoResponse struct {
	ID                 uuid.UUID       `json:"id"`
	RoundID            uuid.UUID       `json:"roundId"`
	BusinessID         uuid.UUID       `json:"businessId"`
	BalanceShares      decimal.Decimal `json:"balanceShares"`
	TotalShares        decimal.Decimal `json:"totalShares"`
	PreMoneyValuation  decimal.Decimal `json:"preMoneyValuation"`
	PostMoneyValuation decimal.Decimal `json:"postMoneyValuation"`
	CreatedAt          time.Time       `json:"createdAt"`
}

func toInfoResponse(event *ledger.BusinessEvent) infoResponse {
	return infoResponse{
		ID:                 event.ID,
		RoundID:            event.RoundID,
		BusinessID:         event.BusinessID,
		BalanceShares:      event.BalanceShares,
		TotalShares:        event.TotalShares,
		PreMoneyValuation:  event.PreMoneyValuation,
		PostMoneyValuation: event.PostMoneyValuation,
		CreatedAt:          event.CreatedAt,
	}
}

type stakeholderEventResponse struct {
	ID                  uuid.UUID                  `json:"id"`
	StakeholderID       uuid.UUID                  `json:"stakeholderId"`
	Shares              decimal.Decimal            `json:"shares"`
	ShareType           ledger.ShareType           `json:"shareType"`
	ShareAllocationType ledger.ShareAllocationType `json:"shareAllocationType"`
	EventType           ledger.EventType           `json:"eventType"`
	PricePerShare       *decimal.Decimal           `json:"pricePerShare,omitempty"`
	ContractID          *uuid.UUID                 `json:"contractId,omitempty"`
	CreatedAt           time.Time                  `json:"createdAt"`
}

type investmentResponse struct {
	ID            uuid.UUID       `json:"id"`
	StakeholderID uuid.UUID       `json:"stakeholderId"`
	Amount        decimal.Decimal `json:"amount"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type roundResponse struct {
	ID                uuid.UUID                  `json:"id"`
	Name              string                     `json:"name"`
	Type              ledger.RoundType           `json:"type"`
	CreatedAt         time.Time                  `json:"createdAt"`
	BusinessEvent     *infoResponse              `json:"businessEvent,omitempty"`
	Investments       []investmentResponse       `json:"investments"`
	StakeholderEvents []stakeholderEventResponse `json:"stakeholderEvents"`
}

func toRoundsResponse(details []report.RoundDetail) []roundResponse {
	out := make([]roundResponse, 0, len(details))

	for _, detail := range details {
		resp := roundResponse{
			ID:                detail.Round.ID,
			Name:              detail.Round.Name,
			Type:              detail.Round.Type,
			CreatedAt:         detail.Round.CreatedAt,
			Investments:       make([]investmentResponse, 0, len(detail.Investments)),
			StakeholderEvents: make([]stakeholderEventResponse, 0, len(detail.StakeholderEvents)),
		}

		if detail.BusinessEvent != nil {
			info := toInfoResponse(detail.BusinessEvent)
			resp.BusinessEvent = &info
		}

		for _, inv := range detail.Investments {
			resp.Investments = append(resp.Investments, investmentResponse{
				ID:            inv.ID,
				StakeholderID: inv.StakeholderID,
				Amount:        inv.Amount,
				Notes:         inv.Notes,
				CreatedAt:     inv.CreatedAt,
			})
		}

		for _, se := range detail.StakeholderEvents {
			resp.StakeholderEvents = append(resp.StakeholderEvents, stakeholderEventResponse{
				ID:                  se.ID,
				StakeholderID:       se.StakeholderID,
				Shares:              se.Shares,
				ShareType:           se.ShareType,
				ShareAllocationType: se.ShareAllocationType,
				EventType:           se.EventType,
				PricePerShare:       se.PricePerShare,
				ContractID:          se.ContractID,
				CreatedAt:           se.CreatedAt,
			})
		}

		out = append(out, resp)
	}

	return out
}

type timelineResponse struct {
	Timestamp          time.Time                  `json:"timestamp"`
	PreMoneyValuation  decimal.Decimal            `json:"preMoneyValuation"`
	PostMoneyValuation decimal.Decimal            `json:"postMoneyValuation"`
	TotalShares        decimal.Decimal            `json:"totalShares"`
	BalanceShares      decimal.Decimal            `json:"balanceShares"`
	PricePerShare      decimal.Decimal            `json:"pricePerShare"`
	HolderShares       map[string]decimal.Decimal `json:"holderShares"`
	DirectInvestment   decimal.Decimal            `json:"directInvestment"`
	ContractInvestment decimal.Decimal            `json:"contractInvestment"`
}

func toTimelineResponse(snapshots []report.TimelineSnapshot) []timelineResponse {
	out := make([]timelineResponse, 0, len(snapshots))

	for _, snap := range snapshots {
		holders := make(map[string]decimal.Decimal, len(snap.HolderShares))
		for id, shares := range snap.HolderShares {
			holders[id.String()] = shares
		}

		out = append(out, timelineResponse{
			Timestamp:          snap.Timestamp,
			PreMoneyValuation:  snap.PreMoneyValuation,
			PostMoneyValuation: snap.PostMoneyValuation,
			TotalShares:        snap.TotalShares,
			BalanceShares:      snap.BalanceShares,
			PricePerShare:      snap.PricePerShare,
			HolderShares:       holders,
			DirectInvestment:   snap.DirectInvestment,
			ContractInvestment: snap.ContractInvestment,
		})
	}

	return out
}

type monthResponse struct {
	Month           string          `json:"month"`
	FirstValuation  decimal.Decimal `json:"firstValuation"`
	LastValuation   decimal.Decimal `json:"lastValuation"`
	TotalInvestment decimal.Decimal `json:"totalInvestment"`
}

func toMonthsResponse(months []report.MonthBucket) []monthResponse {
	out := make([]monthResponse, 0, len(months))

	for _, month := range months {
		out = append(out, monthResponse{
			Month:           month.Month,
			FirstValuation:  month.FirstValuation,
			LastValuation:   month.LastValuation,
			TotalInvestment: month.TotalInvestment,
		})
	}

	return out
}
