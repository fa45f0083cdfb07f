package contract

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/captable/internal/ledger"
	"github.com/MrJamesThe3rd/captable/internal/report"
)

type Handler struct {
	reports *report.Service
}

func NewHandler(reports *report.Service) *Handler {
	return &Handler{reports: reports}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{status}", h.list)
}

type contractResponse struct {
	ID                 uuid.UUID             `json:"id"`
	StakeholderID      uuid.UUID             `json:"stakeholderId"`
	RoundID            *uuid.UUID            `json:"roundId,omitempty"`
	Title              string                `json:"title"`
	Description        string                `json:"description,omitempty"`
	ContractType       ledger.ContractType   `json:"contractType"`
	Shares             decimal.Decimal       `json:"shares"`
	PricePerShare      decimal.Decimal       `json:"pricePerShare"`
	ContractInvestment decimal.Decimal       `json:"contractInvestment"`
	Status             ledger.ContractStatus `json:"status"`
	CreatedAt          time.Time             `json:"createdAt"`
}

// list serves /contracts/{status} where status is "pending", "completed" or
// "all".
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "businessID"))
	if err != nil {
		http.Error(w, "invalid business id", http.StatusBadRequest)
		return
	}

	var status ledger.ContractStatus

	switch strings.ToLower(chi.URLParam(r, "status")) {
	case "pending":
		status = ledger.ContractPending
	case "completed":
		status = ledger.ContractCompleted
	case "all":
		status = ""
	default:
		http.Error(w, "status must be pending, completed or all", http.StatusBadRequest)
		return
	}

	contracts, err := h.reports.Contracts(r.Context(), id, status)
	if err != nil {
		slog.Error("listing contracts failed", "business_id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]contractResponse, 0, len(contracts))
	for _, c := range contracts {
		resp = append(resp, contractResponse{
			ID:                 c.ID,
			StakeholderID:      c.StakeholderID,
			RoundID:            c.RoundID,
			Title:              c.Title,
			Description:        c.Description,
			ContractType:       c.ContractType,
			Shares:             c.Shares,
			PricePerShare:      c.PricePerShare,
			ContractInvestment: c.ContractInvestment,
			Status:             c.Status,
			CreatedAt:          c.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
