package business

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/captable/internal/ledger"
)

type Business struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type User struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// StakeholderListing is the minimal stakeholder row used by pickers: identity
// plus whether any share events exist for them yet.
type StakeholderListing struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      ledger.StakeholderType
	Config    json.RawMessage
	HasStakes bool
	CreatedAt time.Time
}

type Repository interface {
	ListBusinesses(ctx context.Context) ([]*Business, error)
	GetBusiness(ctx context.Context, id uuid.UUID) (*Business, error)
	ListUsers(ctx context.Context) ([]*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	CreateStakeholder(ctx context.Context, stakeholder *ledger.Stakeholder) error
	ListStakeholdersMin(ctx context.Context, businessID uuid.UUID) ([]*StakeholderListing, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Business, error) {
	return s.repo.ListBusinesses(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Business, error) {
	return s.repo.GetBusiness(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.ListUsers(ctx)
}

type OnboardParams struct {
	UserID uuid.UUID
	Type   ledger.StakeholderType
	Config json.RawMessage
}

// Onboard registers a user as a stakeholder of a business. The stakeholder
// holds nothing until a round issues shares to them.
func (s *Service) Onboard(ctx context.Context, businessID uuid.UUID, params OnboardParams) (*ledger.Stakeholder, error) {
	if _, err := s.repo.GetBusiness(ctx, businessID); err != nil {
		return nil, fmt.Errorf("business %s: %w", businessID, err)
	}

	user, err := s.repo.GetUser(ctx, params.UserID)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", params.UserID, err)
	}

	stakeholder := &ledger.Stakeholder{
		BusinessID: businessID,
		UserID:     user.ID,
		Name:       user.Name,
		Type:       params.Type,
		Config:     params.Config,
	}
	if err := s.repo.CreateStakeholder(ctx, stakeholder); err != nil {
		return nil, fmt.Errorf("creating stakeholder: %w", err)
	}

	return stakeholder, nil
}

func (s *Service) ListStakeholdersMin(ctx context.Context, businessID uuid.UUID) ([]*StakeholderListing, error) {
	return s.repo.ListStakeholdersMin(ctx, businessID)
}
