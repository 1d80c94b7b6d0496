package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/mandilink-backend/pkg/db/models"
	"github.com/angelmondragon/mandilink-backend/pkg/enums"
	"github.com/angelmondragon/mandilink-backend/pkg/pagination"
)

// Repository defines persistence operations for orders and their lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderLines(ctx context.Context, lines []models.OrderLine) error
	FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListVendorOrders(ctx context.Context, vendorID uuid.UUID, params pagination.Params, filters ListFilters) (*OrderList, error)
	ListSupplierOrders(ctx context.Context, supplierID uuid.UUID, params pagination.Params, filters ListFilters) (*OrderList, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
	Summary(ctx context.Context, role enums.Role, actorID uuid.UUID, filters ListFilters) (*AnalyticsSummary, error)
}
