package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/streetserve/streetserve-backend/api/responses"
	"github.com/streetserve/streetserve-backend/api/validators"
	groupbuysvc "github.com/streetserve/streetserve-backend/internal/groupbuys"
	pkgerrors "github.com/streetserve/streetserve-backend/pkg/errors"
	"github.com/streetserve/streetserve-backend/pkg/logger"
)

type createGroupBuyRequest struct {
	ProductID          uuid.UUID       `json:"product_id" validate:"required"`
	Title              string          `json:"title" validate:"required,max=200"`
	Description        string          `json:"description" validate:"omitempty,max=2000"`
	TargetQuantity     int             `json:"target_quantity" validate:"required,min=1"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage" validate:"required"`
	MinParticipants    int             `json:"min_participants" validate:"required,min=1"`
	MaxParticipants    int             `json:"max_participants" validate:"required,min=1"`
	Deadline           time.Time       `json:"deadline" validate:"required"`
}

type joinGroupBuyRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// VendorCreateGroupBuy starts a new campaign for the calling vendor.
func VendorCreateGroupBuy(svc groupbuysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "group buy service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createGroupBuyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		groupBuy, err := svc.Create(r.Context(), userID, groupbuysvc.CreateGroupBuyInput{
			ProductID:          payload.ProductID,
			Title:              validators.SanitizeString(payload.Title, 200),
			Description:        validators.SanitizeString(payload.Description, 2000),
			TargetQuantity:     payload.TargetQuantity,
			DiscountPercentage: payload.DiscountPercentage,
			MinParticipants:    payload.MinParticipants,
			MaxParticipants:    payload.MaxParticipants,
			Deadline:           payload.Deadline,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, groupBuy)
	}
}

// VendorJoinGroupBuy adds the calling vendor to an active campaign.
func VendorJoinGroupBuy(svc groupbuysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "group buy service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		groupBuyID, err := pathUUID(r, "groupBuyID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload joinGroupBuyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		groupBuy, err := svc.Join(r.Context(), userID, groupBuyID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, groupBuy)
	}
}

// ListActiveGroupBuys is the public discovery endpoint for open
// campaigns.
func ListActiveGroupBuys(svc groupbuysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "group buy service unavailable"))
			return
		}

		list, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// VendorMyGroupBuys returns campaigns the caller created or joined.
func VendorMyGroupBuys(svc groupbuysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "group buy service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mine, err := svc.ListMine(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, mine)
	}
}
