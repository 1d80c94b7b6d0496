package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/mandilink-backend/pkg/db/models"
	"github.com/angelmondragon/mandilink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/mandilink-backend/pkg/errors"
)

// Rate records the vendor's one-shot rating on a completed order, appends it
// to the supplier's rating history, and recomputes the supplier average.
//
// An order carrying a rating object without a positive numeric value counts
// as unrated, so a previously failed attempt can be retried.
func (s *service) Rate(ctx context.Context, vendorID, orderID uuid.UUID, rating int, comment *string) (*models.Order, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if rating < 1 || rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5").
			WithDetails(map[string]any{"rating": rating})
	}

	var rated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		identityRepo := s.identityRepo.WithTx(tx)

		order, err := repo.FindOrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.VendorID != vendorID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to vendor")
		}
		if order.Status != enums.OrderStatusCompleted {
			return pkgerrors.New(pkgerrors.CodeOrderNotRatable, "only completed orders can be rated").
				WithDetails(map[string]string{"status": string(order.Status)})
		}
		if order.Rating != nil && *order.Rating > 0 {
			return pkgerrors.New(pkgerrors.CodeOrderNotRatable, "order already rated")
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"rating":     rating,
			"rated_at":   now,
			"updated_at": now,
		}
		if comment != nil {
			updates["rating_comment"] = *comment
		}
		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return err
		}

		if _, err := identityRepo.AppendSupplierRating(ctx, order.SupplierID, models.SupplierReview{
			VendorID: vendorID,
			OrderID:  order.ID,
			Rating:   rating,
			Comment:  comment,
		}); err != nil {
			return err
		}

		rated, err = repo.FindOrderByID(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rated, nil
}
