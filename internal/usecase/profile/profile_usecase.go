package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/penpalhq/penpals-backend/internal/domain"
	"github.com/penpalhq/penpals-backend/internal/repository"
	"github.com/penpalhq/penpals-backend/internal/usecase/matching"
	"go.uber.org/zap"
)

// ErrInvalidAvailability is returned when an availability slot is
// missing its day or time.
var ErrInvalidAvailability = errors.New("invalid availability format")

type ProfileUseCase struct {
	profiles     repository.ProfileRepository
	relations    repository.RelationRepository
	orchestrator *matching.Orchestrator
	log          *zap.Logger
}

func NewProfileUseCase(
	profiles repository.ProfileRepository,
	relations repository.RelationRepository,
	orchestrator *matching.Orchestrator,
	log *zap.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profiles:     profiles,
		relations:    relations,
		orchestrator: orchestrator,
		log:          log,
	}
}

// CreateProfileRequest represents classroom creation request
type CreateProfileRequest struct {
	Name         string                    `json:"name" binding:"required,max=100"`
	Location     *string                   `json:"location" binding:"omitempty,max=100"`
	Latitude     *float64                  `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude    *float64                  `json:"longitude" binding:"omitempty,min=-180,max=180"`
	ClassSize    *int                      `json:"class_size" binding:"omitempty,min=1,max=100"`
	Availability []domain.AvailabilitySlot `json:"availability"`
	Interests    []interface{}             `json:"interests"`
}

// UpdateProfileRequest represents classroom update request
type UpdateProfileRequest struct {
	Name         *string                    `json:"name" binding:"omitempty,max=100"`
	Location     *string                    `json:"location" binding:"omitempty,max=100"`
	Latitude     *float64                   `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude    *float64                   `json:"longitude" binding:"omitempty,min=-180,max=180"`
	ClassSize    *int                       `json:"class_size" binding:"omitempty,min=1,max=100"`
	Availability *[]domain.AvailabilitySlot `json:"availability"`
	Interests    *[]interface{}             `json:"interests"`
}

// SearchRequest represents an interest search request
type SearchRequest struct {
	Interests []interface{} `json:"interests" binding:"required"`
	NResults  int           `json:"n_results"`
}

// Create validates and stores a new classroom, then indexes its
// interests for semantic search.
func (uc *ProfileUseCase) Create(ctx context.Context, accountID int, req *CreateProfileRequest) (*domain.Profile, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("profile name is required")
	}
	if err := validateAvailability(req.Availability); err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		AccountID:    accountID,
		Name:         name,
		Location:     trimOptional(req.Location),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		ClassSize:    req.ClassSize,
		Availability: req.Availability,
		Interests:    matching.NormalizeInterests(req.Interests),
	}

	// The interest document is written between the insert and the
	// commit. A crash in the window leaves at worst an orphan document,
	// never a committed profile missing from the index.
	err := uc.profiles.Create(ctx, profile, func(ctx context.Context) error {
		uc.orchestrator.UpsertInterests(ctx, profile)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

// Get returns a classroom by id.
func (uc *ProfileUseCase) Get(ctx context.Context, profileID int) (*domain.Profile, error) {
	return uc.profiles.GetByID(ctx, profileID)
}

// Update modifies the classroom fields present in the request. Only the
// owning account may update. The interest document is refreshed after
// the relational commit when interests changed.
func (uc *ProfileUseCase) Update(ctx context.Context, accountID, profileID int, req *UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := uc.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.AccountID != accountID {
		return nil, domain.ErrNotProfileOwner
	}

	oldInterests := profile.Interests

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("profile name cannot be empty")
		}
		profile.Name = name
	}
	if req.Location != nil {
		profile.Location = trimOptional(req.Location)
	}
	if req.Latitude != nil {
		profile.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		profile.Longitude = req.Longitude
	}
	if req.ClassSize != nil {
		profile.ClassSize = req.ClassSize
	}
	if req.Availability != nil {
		if err := validateAvailability(*req.Availability); err != nil {
			return nil, err
		}
		profile.Availability = *req.Availability
	}
	if req.Interests != nil {
		profile.Interests = matching.NormalizeInterests(*req.Interests)
	}

	if err := uc.profiles.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if !equalInterests(oldInterests, profile.Interests) {
		uc.orchestrator.UpsertInterests(ctx, profile)
	}

	return profile, nil
}

// Delete removes a classroom and its interest document. The index
// delete runs first and is best-effort; the relational delete decides
// the outcome. Returns how many connections the classroom had.
func (uc *ProfileUseCase) Delete(ctx context.Context, accountID, profileID int) (int, error) {
	profile, err := uc.profiles.GetByID(ctx, profileID)
	if err != nil {
		return 0, err
	}
	if profile.AccountID != accountID {
		return 0, domain.ErrNotProfileOwner
	}

	connections, err := uc.relations.CountByProfile(ctx, profileID)
	if err != nil {
		return 0, err
	}

	uc.orchestrator.RemoveProfile(ctx, profileID)

	if err := uc.profiles.Delete(ctx, profileID); err != nil {
		return 0, err
	}
	return connections, nil
}

// Search finds classrooms by semantic interest similarity.
func (uc *ProfileUseCase) Search(ctx context.Context, req *SearchRequest) ([]*domain.SearchResult, error) {
	interests := matching.NormalizeInterests(req.Interests)
	return uc.orchestrator.Search(ctx, interests, req.NResults)
}

func validateAvailability(slots []domain.AvailabilitySlot) error {
	for _, slot := range slots {
		if strings.TrimSpace(slot.Day) == "" || strings.TrimSpace(slot.Time) == "" {
			return ErrInvalidAvailability
		}
	}
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func equalInterests(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
