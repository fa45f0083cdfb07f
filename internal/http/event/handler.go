package event

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/captable/internal/ledger"
	"github.com/MrJamesThe3rd/captable/internal/report"
)

type Handler struct {
	ledgers *ledger.Service
	reports *report.Service
}

func NewHandler(ledgers *ledger.Service, reports *report.Service) *Handler {
	return &Handler{ledgers: ledgers, reports: reports}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/timeline", h.timeline)
	r.Get("/business-by-month", h.businessByMonth)
	r.Post("/allocate-shares", h.allocateShares)
	r.Post("/raise-a-round", h.raiseRound)
	r.Post("/issue-contract", h.issueContract)
	r.Post("/grant-exit", h.grantExit)
	r.Post("/warrant-n-options", h.warrantNOptions)
}

// BusinessRoutes registers the business-level read endpoints that sit outside
// the /events subtree.
func (h *Handler) BusinessRoutes(r chi.Router) {
	r.Get("/info", h.info)
}

func businessID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "businessID"))
}

// writeError maps ledger errors onto status codes: validation failures are the
// caller's fault, lookup misses are 404, conflicts ask for a retry.
func writeError(w http.ResponseWriter, err error) {
	var validation *ledger.ValidationError

	switch {
	case errors.As(err, &validation):
		http.Error(w, validation.Reason, http.StatusBadRequest)
	case errors.Is(err, ledger.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ledger.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type allocateSharesRequest struct {
	Type            ledger.RoundType `json:"type"`
	Name            string           `json:"name"`
	Date            time.Time        `json:"date"`
	Valuation       decimal.Decimal  `json:"valuation"`
	AddedShares     decimal.Decimal  `json:"addedShares"`
	StockSplitRatio decimal.Decimal  `json:"stockSplitRatio"`
}

func (h *Handler) allocateShares(w http.ResponseWriter, r *http.Request) {
	id, err := businessID(r)
	if err != nil {
		http.Error(w, "invalid business id", http.StatusBadRequest)
		return
	}

	var req allocateSharesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.ledgers.AllocateShares(r.Context(), id, ledger.AllocateSharesParams{
		Type:            req.Type,
		Name:            req.Name,
		Date:            req.Date,
		Valuation:       req.Valuation,
		AddedShares:     req.AddedShares,
		StockSplitRatio: req.StockSplitRatio,
	})
	if err != nil {
		slog.Error("allocate shares failed", "business_id", id, "error", err)
		writeError(w, err)

		return
	}

	w.WriteHeader(http.StatusCreated)
}

type roundRequest struct {
	Name              string           `json:"name"`
	Type              ledger.RoundType `json:"type"`
	Date              time.Time        `json:"date"`
	PreMoneyValuation decimal.Decimal  `json:"preMoneyValuation"`
}

type contractRequest struct {
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	ContractType   ledger.ContractType `json:"contractType"`
	Shares         decimal.Decimal     `json:"shares"`
	PricePerShare  decimal.Decimal     `json:"pricePerShare"`
	InvestedAmount decimal.Decimal     `json:"investedAmount"`
}

type investmentRequest struct {
	StakeholderID uuid.UUID         `json:"stakeholderId"`
	Shares        decimal.Decimal   `json:"shares"`
	Amount        *decimal.Decimal  `json:"amount,omitempty"`
	Notes         string            `json:"notes"`
	Contracts     []contractRequest `json:"contracts"`
}

type dilutionRequest struct {
	StakeholderID uuid.UUID       `json:"stakeholderId"`
	Shares        decimal.Decimal `json:"shares"`
}

type raiseRoundRequest struct {
	Round       roundRequest        `json:"round"`
	Investments []investmentRequest `json:"investments"`
	Dilutions   []dilutionRequest   `json:"dilutions"`
}

func (h *Handler) raiseRound(w http.ResponseWriter, r *http.Request) {
	id, err := businessID(r)
	if err != nil {
		http.Error(w, "invalid business id", http.StatusBadRequest)
		return
	}

	var req raiseRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := ledger.RaiseRoundParams{
		Round: ledger.RoundParams{
			Name:              req.Round.Name,
			Type:              req.Round.Type,
			Date:              req.Round.Date,
			PreMoneyValuation: req.Round.PreMoneyValuation,
		},
	}

	for _, inv := range req.Investments {
		contracts := make([]ledger.ContractParams, 0, len(inv.Contracts))
		for _, c := range inv.Contracts {
			contracts = append(contracts, ledger.ContractParams{
				Title:          c.Title,
				Description:    c.Description,
				ContractType:   c.ContractType,
				Shares:         c.Shares,
				PricePerShare:  c.PricePerShare,
				InvestedAmount: c.InvestedAmount,
			})
		}

		params.Investments = append(params.Investments, ledger.InvestmentParams{
			StakeholderID: inv.StakeholderID,
			Shares:        inv.Shares,
			Amount:        inv.Amount,
			Notes:         inv.Notes,
			Contracts:     contracts,
		})
	}

	for _, d := range req.Dilutions {
		params.Dilutions = append(params.Dilutions, ledger.DilutionParams{
			StakeholderID: d.StakeholderID,
			Shares:        d.Shares,
		})
	}

	if err := h.ledgers.RaiseRound(r.Context(), id, params); err != nil {
		slog.Error("raise round failed", "business_id", id, "error", err)
		writeError(w, err)

		return
	}

	w.WriteHeader(http.StatusCreated)
}

type issueContractRequest struct {
	Round struct {
		Name       string          `json:"name"`
		Date       time.Time       `json:"date"`
		ContractID uuid.UUID       `json:"contractId"`
		Shares     decimal.Decimal `json:"shares"`
	} `json:"round"`
	Dilutions []dilutionRequest `json:"dilutions"`
}

func (h *Handler) issueContract(w http.ResponseWriter, r *http.Request) {
	id, err := businessID(r)
	if err != nil {
		http.Error(w, "invalid business id", http.StatusBadRequest)
		return
	}

	var req issueContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := ledger.IssueContractParams{
		Name:       req.Round.Name,
		Date:       req.Round.Date,
		ContractID: req.Round.ContractID,
		Shares:     req.Round.Shares,
	}

	for _, d := range req.Dilutions {
		params.Dilutions = append(params.Dilutions, ledger.DilutionParams{
			StakeholderID: d.StakeholderID,
			Shares:        d.Shares,
		})
	}

	if err := h.ledgers.IssueContract(r.Context(), id, params); err != nil {
		slog.Error("issue contract failed", "business_id", id, "error", err)
		writeError(w, err)

		return
	}

	w.WriteHeader(http.StatusCreated)
}

type grantExitRequest struct {
	Round struct {
		Name string    `json:"name"`
		Date time.Time `json:"date"`
	} `json:"round"`
	Exits []struct {
		StakeholderID uuid.UUID `json:"stakeholderId"`
		Notes         string    `json:"notes"`
	} `json:"exits"`
	Issues []dilutionRequest `json:"issues"`
}

func (h *Handler) grantExit(w http.ResponseWriter, r *http.Request) {
	id, err := businessID(r)
	if err != nil {
		http.Error(w, "invalid business id", http.StatusBadRequest)
		return
	}

	var req grantExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := ledger.GrantExitParams{
		Name: req.Round.Name,
		Date: req.Round.Date,
	}

	for _, e := range req.Exits {
		params.Exits = append(params.Exits, ledger.ExitParams{
			StakeholderID: e.StakeholderID,
			Notes:         e.Notes,
		})
	}

	for _, issue := range req.Issues {
		params.Issues = append(params.Issues, ledger.DilutionParams{
			StakeholderID: issue.StakeholderID,
			Shares:        issue.Shares,
		})
	}

	if err := h.ledgers.GrantExit(r.Context(), id, params); err != nil {
		slog.Error("grant exit failed", "business_id", id, "error", err)
		writeError(w, err)

		return
	}

	w.WriteHeader(http.StatusCreated)
}

type warrantNOptionsRequest struct {
	Event struct {
		Type  ledger.RoundType `json:"type"`
		Date  time.Time        `json:"date"`
		Notes string           `json:"notes"`
	} `json:"event"`
	Grants []struct {
		StakeholderID uuid.UUID       `json:"stakeholderId"`
		Notes         string          `json:"notes"`
		PricePerShare decimal.Decimal `json:"pricePerShare"`
		Contracts     []struct {
			Title       string          `json:"title"`
			Description string          `json:"description"`
			Shares      decimal.Decimal `json:"shares"`
		} `json:"contracts"`
	} `json:"grants"`
}

func (h *Handler) warrantNOptions(w http.ResponseWriter, r *http.Request) {
	id, err := businessID(r)
	if err != nil {
		http.Error(w, "invalid business id", http.StatusBadRequest)
		return
	}

	var req warrantNOptionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := ledger.WarrantGrantParams{
		EventType: req.Event.Type,
		Date:      req.Event.Date,
		Notes:     req.Event.Notes,
	}

	for _, grant := range req.Grants {
		contracts := make([]ledger.GrantContractParams, 0, len(grant.Contracts))
		for _, c := range grant.Contracts {
			contracts = append(contracts, ledger.GrantContractParams{
				Title:       c.Title,
				Description: c.Description,
				Shares:      c.Shares,
			})
		}

		params.Grants = append(params.Grants, ledger.GrantParams{
			StakeholderID: grant.StakeholderID,
			Notes:         grant.Notes,
			PricePerShare: grant.PricePerShare,
			Contracts:     contracts,
		})
	}

	if err := h.ledgers.GrantWarrantOrOption(r.Context(), id, params); err != nil {
		slog.Error("warrant/option grant failed", "business_id", id, "error", err)
		writeError(w, err)

		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) info(w http.ResponseWriter, r *http.Request) {
	id, err := businessID(r)
	if err != nil {
		http.Error(w, "invalid business id", http.StatusBadRequest)
		return
	}

	info, err := h.reports.BusinessInfo(r.Context(), id)
	if err != nil {
		slog.Error("business info failed", "business_id", id, "error", err)
		writeError(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	// No events yet reads as an empty object, not an error.
	if info == nil {
		w.Write([]byte("{}"))
		return
	}

	if err := json.NewEncoder(w).Encode(toInfoResponse(info)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, err := businessID(r)
	if err != nil {
		http.Error(w, "invalid business id", http.StatusBadRequest)
		return
	}

	rounds, err := h.reports.Rounds(r.Context(), id)
	if err != nil {
		slog.Error("rounds feed failed", "business_id", id, "error", err)
		writeError(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toRoundsResponse(rounds)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) timeline(w http.ResponseWriter, r *http.Request) {
	id, err := businessID(r)
	if err != nil {
		http.Error(w, "invalid business id", http.StatusBadRequest)
		return
	}

	snapshots, err := h.reports.Timeline(r.Context(), id)
	if err != nil {
		slog.Error("timeline failed", "business_id", id, "error", err)
		writeError(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toTimelineResponse(snapshots)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) businessByMonth(w http.ResponseWriter, r *http.Request) {
	id, err := businessID(r)
	if err != nil {
		http.Error(w, "invalid business id", http.StatusBadRequest)
		return
	}

	months, err := h.reports.BusinessByMonth(r.Context(), id)
	if err != nil {
		slog.Error("business by month failed", "business_id", id, "error", err)
		writeError(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toMonthsResponse(months)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
