package stakeholder

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/captable/internal/business"
	"github.com/MrJamesThe3rd/captable/internal/ledger"
	"github.com/MrJamesThe3rd/captable/internal/report"
)

type Handler struct {
	businesses *business.Service
	reports    *report.Service
}

func NewHandler(businesses *business.Service, reports *report.Service) *Handler {
	return &Handler{businesses: businesses, reports: reports}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/min", h.listMin)
	r.Post("/", h.create)
}

func businessID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "businessID"))
}

type summaryResponse struct {
	ID            uuid.UUID              `json:"id"`
	UserID        uuid.UUID              `json:"userId"`
	Name          string                 `json:"name"`
	Type          ledger.StakeholderType `json:"type"`
	HasExited     bool                   `json:"hasExited"`
	ExitedAtPrice *decimal.Decimal       `json:"exitedAtPrice,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`

	OwnedShares     decimal.Decimal `json:"ownedShares"`
	OwnershipShares decimal.Decimal `json:"ownershipShares"`
	TotalInvestment decimal.Decimal `json:"totalInvestment"`
	PromisedShares  decimal.Decimal `json:"promisedShares"`
	StockValue      decimal.Decimal `json:"stockValue"`
}

type listResponse struct {
	Stakeholders         []summaryResponse `json:"stakeholders"`
	TotalOwnedShares     decimal.Decimal   `json:"totalOwnedShares"`
	TotalOwnershipShares decimal.Decimal   `json:"totalOwnershipShares"`
	TotalInvestment      decimal.Decimal   `json:"totalInvestment"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, err := businessID(r)
	if err != nil {
		http.Error(w, "invalid business id", http.StatusBadRequest)
		return
	}

	view, err := h.reports.Stakeholders(r.Context(), id)
	if err != nil {
		slog.Error("listing stakeholders failed", "business_id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := listResponse{
		Stakeholders:         make([]summaryResponse, 0, len(view.Stakeholders)),
		TotalOwnedShares:     view.TotalOwnedShares,
		TotalOwnershipShares: view.TotalOwnershipShares,
		TotalInvestment:      view.TotalInvestment,
	}

	for _, s := range view.Stakeholders {
		resp.Stakeholders = append(resp.Stakeholders, summaryResponse{
			ID:              s.ID,
			UserID:          s.UserID,
			Name:            s.Name,
			Type:            s.Type,
			HasExited:       s.HasExited,
			ExitedAtPrice:   s.ExitedAtPrice,
			CreatedAt:       s.CreatedAt,
			OwnedShares:     s.OwnedShares,
			OwnershipShares: s.OwnershipShares,
			TotalInvestment: s.TotalInvestment,
			PromisedShares:  s.PromisedShares,
			StockValue:      s.StockValue,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type listingResponse struct {
	ID        uuid.UUID              `json:"id"`
	UserID    uuid.UUID              `json:"userId"`
	Name      string                 `json:"name"`
	Type      ledger.StakeholderType `json:"type"`
	Config    json.RawMessage        `json:"config,omitempty"`
	HasStakes bool                   `json:"hasStakes"`
	CreatedAt time.Time              `json:"createdAt"`
}

func (h *Handler) listMin(w http.ResponseWriter, r *http.Request) {
	id, err := businessID(r)
	if err != nil {
		http.Error(w, "invalid business id", http.StatusBadRequest)
		return
	}

	listings, err := h.businesses.ListStakeholdersMin(r.Context(), id)
	if err != nil {
		slog.Error("listing stakeholders failed", "business_id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]listingResponse, 0, len(listings))
	for _, listing := range listings {
		resp = append(resp, listingResponse{
			ID:        listing.ID,
			UserID:    listing.UserID,
			Name:      listing.Name,
			Type:      listing.Type,
			Config:    listing.Config,
			HasStakes: listing.HasStakes,
			CreatedAt: listing.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createRequest struct {
	UserID uuid.UUID              `json:"userId"`
	Type   ledger.StakeholderType `json:"type"`
	Config json.RawMessage        `json:"config,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id, err := businessID(r)
	if err != nil {
		http.Error(w, "invalid business id", http.StatusBadRequest)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stakeholder, err := h.businesses.Onboard(r.Context(), id, business.OnboardParams{
		UserID: req.UserID,
		Type:   req.Type,
		Config: req.Config,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		slog.Error("onboarding stakeholder failed", "business_id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := listingResponse{
		ID:        stakeholder.ID,
		UserID:    stakeholder.UserID,
		Name:      stakeholder.Name,
		Type:      stakeholder.Type,
		Config:    stakeholder.Config,
		CreatedAt: stakeholder.CreatedAt,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
