package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/streetserve/streetserve-backend/api/responses"
	"github.com/streetserve/streetserve-backend/api/validators"
	productsvc "github.com/streetserve/streetserve-backend/internal/products"
	pkgerrors "github.com/streetserve/streetserve-backend/pkg/errors"
	"github.com/streetserve/streetserve-backend/pkg/logger"
)

type createProductRequest struct {
	Name             string          `json:"name" validate:"required,max=200"`
	Category         string          `json:"category" validate:"required,max=120"`
	Description      string          `json:"description" validate:"omitempty,max=2000"`
	Price            decimal.Decimal `json:"price" validate:"required"`
	Unit             string          `json:"unit" validate:"required,max=40"`
	Quantity         int             `json:"quantity" validate:"omitempty,min=0"`
	MinOrderQuantity int             `json:"min_order_quantity" validate:"omitempty,min=1"`
	MaxOrderQuantity *int            `json:"max_order_quantity,omitempty" validate:"omitempty,min=1"`
}

type updateProductRequest struct {
	Name             *string          `json:"name,omitempty" validate:"omitempty,max=200"`
	Category         *string          `json:"category,omitempty" validate:"omitempty,max=120"`
	Description      *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	Unit             *string          `json:"unit,omitempty" validate:"omitempty,max=40"`
	Quantity         *int             `json:"quantity,omitempty" validate:"omitempty,min=0"`
	MinOrderQuantity *int             `json:"min_order_quantity,omitempty" validate:"omitempty,min=1"`
	MaxOrderQuantity *int             `json:"max_order_quantity,omitempty" validate:"omitempty,min=1"`
	IsActive         *bool            `json:"is_active,omitempty"`
}

// SupplierCreateProduct handles listing creation for suppliers.
func SupplierCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if payload.Price.IsNegative() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative"))
			return
		}

		product, err := svc.Create(r.Context(), userID, productsvc.CreateProductInput{
			Name:             validators.SanitizeString(payload.Name, 200),
			Category:         validators.SanitizeString(payload.Category, 120),
			Description:      validators.SanitizeString(payload.Description, 2000),
			Price:            payload.Price,
			Unit:             validators.SanitizeString(payload.Unit, 40),
			Quantity:         payload.Quantity,
			MinOrderQuantity: payload.MinOrderQuantity,
			MaxOrderQuantity: payload.MaxOrderQuantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// SupplierListProducts returns the caller's own listings including
// inactive ones.
func SupplierListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
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

// ListActiveProducts is the public catalog endpoint.
func ListActiveProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
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

// SupplierUpdateProduct applies a partial update to an owned listing.
func SupplierUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if payload.Price != nil && payload.Price.IsNegative() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative"))
			return
		}

		product, err := svc.Update(r.Context(), userID, productID, productsvc.UpdateProductInput{
			Name:             payload.Name,
			Category:         payload.Category,
			Description:      payload.Description,
			Price:            payload.Price,
			Unit:             payload.Unit,
			Quantity:         payload.Quantity,
			MinOrderQuantity: payload.MinOrderQuantity,
			MaxOrderQuantity: payload.MaxOrderQuantity,
			IsActive:         payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// SupplierDeleteProduct removes an owned listing permanently.
func SupplierDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
