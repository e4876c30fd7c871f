package controllers

import (
	"net/http"
	"strings"

	"github.com/streetserve/streetserve-backend/api/responses"
	"github.com/streetserve/streetserve-backend/api/validators"
	profilesvc "github.com/streetserve/streetserve-backend/internal/profiles"
	"github.com/streetserve/streetserve-backend/pkg/enums"
	pkgerrors "github.com/streetserve/streetserve-backend/pkg/errors"
	"github.com/streetserve/streetserve-backend/pkg/logger"
)

type createProfileRequest struct {
	Role         string `json:"role" validate:"required,oneof=vendor supplier"`
	BusinessName string `json:"business_name" validate:"required,max=200"`
	ContactPhone string `json:"contact_phone" validate:"omitempty,max=40"`
	Address      string `json:"address" validate:"omitempty,max=300"`
	City         string `json:"city" validate:"omitempty,max=120"`
}

type updateProfileRequest struct {
	BusinessName *string `json:"business_name,omitempty" validate:"omitempty,max=200"`
	ContactPhone *string `json:"contact_phone,omitempty" validate:"omitempty,max=40"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=300"`
	City         *string `json:"city,omitempty" validate:"omitempty,max=120"`
}

// CreateProfile handles onboarding the caller's business profile.
func CreateProfile(svc profilesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProfileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseProfileRole(strings.TrimSpace(payload.Role))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
			return
		}

		profile, err := svc.Create(r.Context(), userID, profilesvc.CreateProfileInput{
			Role:         role,
			BusinessName: validators.SanitizeString(payload.BusinessName, 200),
			ContactPhone: validators.SanitizeString(payload.ContactPhone, 40),
			Address:      validators.SanitizeString(payload.Address, 300),
			City:         validators.SanitizeString(payload.City, 120),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, profile)
	}
}

// GetCurrentProfile returns the caller's profile, or null when none
// exists yet.
func GetCurrentProfile(svc profilesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.GetCurrent(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// UpdateProfile applies a partial update to the caller's profile.
func UpdateProfile(svc profilesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProfileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Update(r.Context(), userID, profilesvc.UpdateProfileInput{
			BusinessName: payload.BusinessName,
			ContactPhone: payload.ContactPhone,
			Address:      payload.Address,
			City:         payload.City,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}
