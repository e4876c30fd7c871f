package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/streetserve/streetserve-backend/pkg/db"
	"github.com/streetserve/streetserve-backend/pkg/db/models"
	"github.com/streetserve/streetserve-backend/pkg/enums"
	pkgerrors "github.com/streetserve/streetserve-backend/pkg/errors"
)

// New vendors start at the midpoint of the 0-10 trust scale.
const defaultVendorTrustScore = 5.0

type profileRepository interface {
	Create(ctx context.Context, dto CreateProfileDTO) (*models.Profile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service exposes profile operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateProfileInput) (*ProfileDTO, error)
	GetCurrent(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error)
}

type service struct {
	repo  profileRepository
	users userRepository
}

// NewService builds a profile service with the provided repositories.
func NewService(repo profileRepository, usersRepo userRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profile repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, users: usersRepo}, nil
}

// CreateProfileInput captures the fields accepted at profile creation.
type CreateProfileInput struct {
	Role         enums.ProfileRole
	BusinessName string
	ContactPhone string
	Address      string
	City         string
}

// UpdateProfileInput captures the allowed profile fields for mutation.
// Nil pointers leave the stored value untouched. Role is not updatable.
type UpdateProfileInput struct {
	BusinessName *string
	ContactPhone *string
	Address      *string
	City         *string
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateProfileInput) (*ProfileDTO, error) {
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}

	if _, err := s.repo.FindByUserID(ctx, userID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "profile already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing profile")
	}

	var trustScore *float64
	if input.Role == enums.ProfileRoleVendor {
		score := defaultVendorTrustScore
		trustScore = &score
	}

	profile, err := s.repo.Create(ctx, CreateProfileDTO{
		UserID:       userID,
		Role:         input.Role,
		BusinessName: input.BusinessName,
		ContactPhone: input.ContactPhone,
		Address:      input.Address,
		City:         input.City,
		TrustScore:   trustScore,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "profile already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create profile")
	}
	return FromModel(profile), nil
}

// GetCurrent returns the caller's profile with their email merged in,
// or nil when no profile has been created yet.
func (s *service) GetCurrent(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}

	dto := FromModel(profile)
	if user, err := s.users.FindByID(ctx, userID); err == nil {
		dto.Email = user.Email
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return dto, nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}

	if input.BusinessName != nil {
		profile.BusinessName = *input.BusinessName
	}
	if input.ContactPhone != nil {
		profile.ContactPhone = *input.ContactPhone
	}
	if input.Address != nil {
		profile.Address = *input.Address
	}
	if input.City != nil {
		profile.City = *input.City
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	return FromModel(profile), nil
}
