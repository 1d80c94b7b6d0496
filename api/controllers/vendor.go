package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/mandilink-backend/api/responses"
	"github.com/angelmondragon/mandilink-backend/api/validators"
	"github.com/angelmondragon/mandilink-backend/internal/catalog"
	"github.com/angelmondragon/mandilink-backend/internal/identity"
	"github.com/angelmondragon/mandilink-backend/internal/orders"
	"github.com/angelmondragon/mandilink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/mandilink-backend/pkg/errors"
	"github.com/angelmondragon/mandilink-backend/pkg/logger"
)

const pickupDateLayout = "2006-01-02"

type cartLineRequest struct {
	ProductID  string  `json:"product_id" validate:"required,uuid"`
	SupplierID string  `json:"supplier_id" validate:"required,uuid"`
	Quantity   float64 `json:"quantity" validate:"required,gte=0.1"`
}

type placeOrderRequest struct {
	Lines         []cartLineRequest `json:"lines" validate:"required,min=1,dive"`
	PickupSlot    string            `json:"pickup_slot" validate:"required"`
	PickupDate    string            `json:"pickup_date" validate:"required"`
	PaymentMethod string            `json:"payment_method" validate:"required"`
	Notes         *string           `json:"notes,omitempty"`
}

func (req placeOrderRequest) toInput() (orders.PlaceOrderInput, error) {
	var input orders.PlaceOrderInput

	slot, err := enums.ParsePickupSlot(req.PickupSlot)
	if err != nil {
		return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid pickup slot")
	}
	method, err := enums.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}
	date, err := time.Parse(pickupDateLayout, req.PickupDate)
	if err != nil {
		return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid pickup date").
			WithDetails(map[string]string{"pickup_date": "expected YYYY-MM-DD"})
	}

	lines := make([]orders.CartLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
		}
		supplierID, err := uuid.Parse(line.SupplierID)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid supplier id")
		}
		lines = append(lines, orders.CartLine{
			ProductID:  productID,
			SupplierID: supplierID,
			Quantity:   line.Quantity,
		})
	}

	input.Lines = lines
	input.PickupSlot = slot
	input.PickupDate = date
	input.PaymentMethod = method
	input.Notes = req.Notes
	return input, nil
}

// VendorPlaceOrder places a multi-supplier cart, producing one order per
// distinct supplier or failing as a whole.
func VendorPlaceOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req placeOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := req.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Place(r.Context(), actor.ID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, orders.OrderList{Orders: created})
	}
}

type rateOrderRequest struct {
	Rating  int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment *string `json:"comment,omitempty"`
}

// VendorRateOrder records the one-shot rating on a completed order.
func VendorRateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req rateOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Rate(r.Context(), actor.ID, orderID, req.Rating, req.Comment)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// CompareProduct returns every live offer for a product alongside min, max
// and average price so a vendor can pick a supplier.
func CompareProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		comparison, err := svc.CompareProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, comparison)
	}
}

// SupplierProfile returns the public supplier view with rating history.
func SupplierProfile(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID, err := validators.ParseUUIDParam(r, "supplierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.GetSupplierProfile(r.Context(), supplierID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}
