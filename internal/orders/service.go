package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/mandilink-backend/internal/catalog"
	"github.com/angelmondragon/mandilink-backend/internal/identity"
	"github.com/angelmondragon/mandilink-backend/pkg/db/models"
	"github.com/angelmondragon/mandilink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/mandilink-backend/pkg/errors"
	"github.com/angelmondragon/mandilink-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the order placement, lifecycle and rating operations.
type Service interface {
	Place(ctx context.Context, vendorID uuid.UUID, input PlaceOrderInput) ([]models.Order, error)
	UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, target enums.OrderStatus) (*models.Order, error)
	Cancel(ctx context.Context, actor Actor, orderID uuid.UUID) (*models.Order, error)
	Rate(ctx context.Context, vendorID, orderID uuid.UUID, rating int, comment *string) (*models.Order, error)
	Get(ctx context.Context, actor Actor, orderID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, actor Actor, params pagination.Params, filters ListFilters) (*OrderList, error)
	Summarize(ctx context.Context, actor Actor, filters ListFilters) (*AnalyticsSummary, error)
}

type service struct {
	tx            txRunner
	repo          Repository
	catalogRepo   catalog.Repository
	identityRepo  identity.Repository
	numberRetries int
}

// NewService builds the orders service.
func NewService(tx txRunner, repo Repository, catalogRepo catalog.Repository, identityRepo identity.Repository, numberRetries int) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if identityRepo == nil {
		return nil, fmt.Errorf("identity repository required")
	}
	if numberRetries <= 0 {
		numberRetries = 5
	}
	return &service{
		tx:            tx,
		repo:          repo,
		catalogRepo:   catalogRepo,
		identityRepo:  identityRepo,
		numberRetries: numberRetries,
	}, nil
}

func (s *service) Get(ctx context.Context, actor Actor, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(order, actor); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) List(ctx context.Context, actor Actor, params pagination.Params, filters ListFilters) (*OrderList, error) {
	switch actor.Role {
	case enums.RoleVendor:
		return s.repo.ListVendorOrders(ctx, actor.ID, params, filters)
	case enums.RoleSupplier:
		return s.repo.ListSupplierOrders(ctx, actor.ID, params, filters)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "unknown actor role")
	}
}

func (s *service) Summarize(ctx context.Context, actor Actor, filters ListFilters) (*AnalyticsSummary, error) {
	if !actor.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "unknown actor role")
	}
	return s.repo.Summary(ctx, actor.Role, actor.ID, filters)
}

func checkOwnership(order *models.Order, actor Actor) error {
	switch actor.Role {
	case enums.RoleVendor:
		if order.VendorID != actor.ID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to vendor")
		}
	case enums.RoleSupplier:
		if order.SupplierID != actor.ID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to supplier")
		}
	default:
		return pkgerrors.New(pkgerrors.CodeForbidden, "unknown actor role")
	}
	return nil
}
