package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/streetserve/streetserve-backend/api/responses"
	"github.com/streetserve/streetserve-backend/api/validators"
	inventorysvc "github.com/streetserve/streetserve-backend/internal/inventory"
	pkgerrors "github.com/streetserve/streetserve-backend/pkg/errors"
	"github.com/streetserve/streetserve-backend/pkg/logger"
)

type createInventoryItemRequest struct {
	ProductName   string     `json:"product_name" validate:"required,max=200"`
	Category      string     `json:"category" validate:"omitempty,max=120"`
	CurrentStock  int        `json:"current_stock" validate:"omitempty,min=0"`
	MinStockLevel int        `json:"min_stock_level" validate:"omitempty,min=0"`
	Unit          string     `json:"unit" validate:"required,max=40"`
	LastRestocked *time.Time `json:"last_restocked,omitempty"`
	SupplierID    *uuid.UUID `json:"supplier_id,omitempty"`
}

type updateInventoryItemRequest struct {
	CurrentStock  *int       `json:"current_stock,omitempty" validate:"omitempty,min=0"`
	MinStockLevel *int       `json:"min_stock_level,omitempty" validate:"omitempty,min=0"`
	LastRestocked *time.Time `json:"last_restocked,omitempty"`
}

// VendorCreateInventoryItem adds a tracked stock item for the caller.
func VendorCreateInventoryItem(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createInventoryItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), userID, inventorysvc.CreateInventoryItemInput{
			ProductName:   validators.SanitizeString(payload.ProductName, 200),
			Category:      validators.SanitizeString(payload.Category, 120),
			CurrentStock:  payload.CurrentStock,
			MinStockLevel: payload.MinStockLevel,
			Unit:          validators.SanitizeString(payload.Unit, 40),
			LastRestocked: payload.LastRestocked,
			SupplierID:    payload.SupplierID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// VendorListInventory returns the caller's tracked stock items.
func VendorListInventory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListMine(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// VendorUpdateInventoryItem adjusts stock levels on an owned item.
func VendorUpdateInventoryItem(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := pathUUID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateInventoryItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Update(r.Context(), userID, itemID, inventorysvc.UpdateInventoryItemInput{
			CurrentStock:  payload.CurrentStock,
			MinStockLevel: payload.MinStockLevel,
			LastRestocked: payload.LastRestocked,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}
