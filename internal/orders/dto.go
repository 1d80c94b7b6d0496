package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/mandilink-backend/pkg/db/models"
	"github.com/angelmondragon/mandilink-backend/pkg/enums"
)

// CartLine is one submitted cart entry. Lines are never merged: two lines
// for the same (product, supplier) pair stay separate and each decrements
// stock independently.
type CartLine struct {
	ProductID  uuid.UUID `json:"product_id"`
	SupplierID uuid.UUID `json:"supplier_id"`
	Quantity   float64   `json:"quantity"`
}

// PlaceOrderInput captures a vendor's multi-supplier cart placement.
type PlaceOrderInput struct {
	Lines         []CartLine
	PickupSlot    enums.PickupSlot
	PickupDate    time.Time
	PaymentMethod enums.PaymentMethod
	Notes         *string
}

// Actor identifies who is driving a lifecycle transition.
type Actor struct {
	ID   uuid.UUID
	Role enums.Role
}

// ListFilters describe the inputs supported by the order list endpoints.
type ListFilters struct {
	Status   *enums.OrderStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// AnalyticsSummary is the read-only aggregate view over an actor's orders.
type AnalyticsSummary struct {
	TotalOrders       int64   `json:"total_orders"`
	PendingOrders     int64   `json:"pending_orders"`
	CompletedOrders   int64   `json:"completed_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
}
