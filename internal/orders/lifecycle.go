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

// transitions is the full status state machine. Completed and Cancelled are
// terminal: they have no outgoing edges.
var transitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:   {enums.OrderStatusConfirmed, enums.OrderStatusCancelled},
	enums.OrderStatusConfirmed: {enums.OrderStatusReady, enums.OrderStatusCancelled},
	enums.OrderStatusReady:     {enums.OrderStatusCompleted, enums.OrderStatusCancelled},
}

// CanTransition reports whether the state machine permits moving from one
// status to another.
func CanTransition(from, to enums.OrderStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// UpdateStatus applies a role-gated status transition. Suppliers may drive
// the order forward along the state machine; vendors may only cancel.
//
// Cancelling any order that has not reached Completed restores the stock its
// lines consumed at placement, regardless of which side cancels: restoration
// is keyed to the order's state (stock was decremented, order abandoned
// before completion), not to the cancelling role.
func (s *service) UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, target enums.OrderStatus) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !target.IsValid() || target == enums.OrderStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid target status").
			WithDetails(map[string]string{"target": string(target)})
	}
	if actor.Role == enums.RoleVendor && target != enums.OrderStatusCancelled {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendors may only cancel orders")
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		catalogRepo := s.catalogRepo.WithTx(tx)

		order, err := repo.FindOrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := checkOwnership(order, actor); err != nil {
			return err
		}

		if !CanTransition(order.Status, target) {
			return pkgerrors.New(pkgerrors.CodeInvalidTransition, "status transition disallowed").
				WithDetails(map[string]string{
					"from": string(order.Status),
					"to":   string(target),
				})
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"status":     target,
			"updated_at": now,
		}
		switch target {
		case enums.OrderStatusConfirmed:
			updates["confirmed_at"] = now
		case enums.OrderStatusReady:
			updates["ready_at"] = now
		case enums.OrderStatusCompleted:
			updates["completed_at"] = now
		case enums.OrderStatusCancelled:
			updates["cancelled_at"] = now
			updates["cancelled_by"] = actor.Role
		}

		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return err
		}

		if target == enums.OrderStatusCancelled {
			for _, line := range order.Lines {
				err := catalogRepo.AdjustStock(ctx, line.ProductID, order.SupplierID, line.Quantity)
				if err != nil {
					// the supplier may have delisted the offer since
					// placement; a missing row means there is nothing to
					// restore, and must not block the cancellation itself
					if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
						continue
					}
					return err
				}
			}
		}

		updated, err = repo.FindOrderByID(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Cancel is the vendor- and supplier-facing cancellation entry point.
func (s *service) Cancel(ctx context.Context, actor Actor, orderID uuid.UUID) (*models.Order, error) {
	return s.UpdateStatus(ctx, actor, orderID, enums.OrderStatusCancelled)
}
