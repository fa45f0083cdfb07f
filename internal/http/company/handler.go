package company

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/captable/internal/aicontext"
	"github.com/MrJamesThe3rd/captable/internal/business"
	"github.com/MrJamesThe3rd/captable/internal/ledger"
)

type Handler struct {
	businesses *business.Service
	contexts   *aicontext.Service
}

func NewHandler(businesses *business.Service, contexts *aicontext.Service) *Handler {
	return &Handler{businesses: businesses, contexts: contexts}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

func (h *Handler) UserRoutes(r chi.Router) {
	r.Get("/", h.listUsers)
}

// BusinessRoutes registers the endpoints nested under a single business.
func (h *Handler) BusinessRoutes(r chi.Router) {
	r.Get("/", h.get)
	r.Get("/ai-context", h.aiContext)
}

type businessResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	businesses, err := h.businesses.List(r.Context())
	if err != nil {
		slog.Error("listing businesses failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]businessResponse, 0, len(businesses))
	for _, b := range businesses {
		resp = append(resp, businessResponse{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "businessID"))
	if err != nil {
		http.Error(w, "invalid business id", http.StatusBadRequest)
		return
	}

	b, err := h.businesses.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "business not found", http.StatusNotFound)
			return
		}

		slog.Error("getting business failed", "business_id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(businessResponse{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.businesses.ListUsers(r.Context())
	if err != nil {
		slog.Error("listing users failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, userResponse{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) aiContext(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "businessID"))
	if err != nil {
		http.Error(w, "invalid business id", http.StatusBadRequest)
		return
	}

	text, err := h.contexts.Build(r.Context(), id)
	if err != nil {
		slog.Error("building ai context failed", "business_id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]string{"context": text}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
