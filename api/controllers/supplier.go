package controllers

import (
	"net/http"

	"github.com/angelmondragon/mandilink-backend/api/responses"
	"github.com/angelmondragon/mandilink-backend/api/validators"
	"github.com/angelmondragon/mandilink-backend/internal/catalog"
	"github.com/angelmondragon/mandilink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/mandilink-backend/pkg/errors"
	"github.com/angelmondragon/mandilink-backend/pkg/logger"
)

type listOfferRequest struct {
	Name         string   `json:"name" validate:"required"`
	Category     string   `json:"category" validate:"required"`
	Unit         string   `json:"unit" validate:"required"`
	PricePerUnit float64  `json:"price_per_unit" validate:"required,gt=0"`
	Stock        float64  `json:"stock" validate:"gte=0"`
	PickupSlots  []string `json:"pickup_slots" validate:"required,min=1"`
	IsAvailable  *bool    `json:"is_available,omitempty"`
}

func (req listOfferRequest) toInput() (catalog.ListOfferInput, error) {
	var input catalog.ListOfferInput

	category, err := enums.ParseProductCategory(req.Category)
	if err != nil {
		return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}
	unit, err := enums.ParseProductUnit(req.Unit)
	if err != nil {
		return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit")
	}
	slots, err := parseSlots(req.PickupSlots)
	if err != nil {
		return input, err
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	input.Name = req.Name
	input.Category = category
	input.Unit = unit
	input.PricePerUnit = req.PricePerUnit
	input.Stock = req.Stock
	input.PickupSlots = slots
	input.IsAvailable = available
	return input, nil
}

// SupplierListOffer lists a product for sale, creating the shared product on
// its first listing.
func SupplierListOffer(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req listOfferRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := req.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.ListOffer(r.Context(), actor.ID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

type updateOfferRequest struct {
	PricePerUnit *float64 `json:"price_per_unit,omitempty" validate:"omitempty,gt=0"`
	Stock        *float64 `json:"stock,omitempty" validate:"omitempty,gte=0"`
	PickupSlots  []string `json:"pickup_slots,omitempty"`
	IsAvailable  *bool    `json:"is_available,omitempty"`
}

// SupplierUpdateOffer patches price, stock, slots or availability on an
// existing offer.
func SupplierUpdateOffer(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateOfferRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.UpdateOfferInput{
			PricePerUnit: req.PricePerUnit,
			Stock:        req.Stock,
			IsAvailable:  req.IsAvailable,
		}
		if req.PickupSlots != nil {
			slots, err := parseSlots(req.PickupSlots)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.PickupSlots = slots
		}

		offer, err := svc.UpdateOffer(r.Context(), actor.ID, productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, offer)
	}
}

// SupplierDeleteOffer delists an offer. The product itself disappears from
// the catalog when no supplier lists it anymore.
func SupplierDeleteOffer(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveOffer(r.Context(), actor.ID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// SupplierCatalog lists the caller's own offers with their products.
func SupplierCatalog(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.ListSupplierCatalog(r.Context(), actor.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

func parseSlots(raw []string) ([]enums.PickupSlot, error) {
	slots := make([]enums.PickupSlot, 0, len(raw))
	for _, value := range raw {
		slot, err := enums.ParsePickupSlot(value)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid pickup slot").
				WithDetails(map[string]string{"pickup_slots": value})
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
