package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/mandilink-backend/pkg/enums"
)

// Order is the per-supplier order produced when a vendor places a cart.
// One cart placement yields one Order row per distinct supplier.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber   string              `gorm:"column:order_number;not null;uniqueIndex:uq_orders_order_number"`
	VendorID      uuid.UUID           `gorm:"column:vendor_id;type:uuid;not null;index"`
	SupplierID    uuid.UUID           `gorm:"column:supplier_id;type:uuid;not null;index"`
	Status        enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'Pending'"`
	PickupSlot    enums.PickupSlot    `gorm:"column:pickup_slot;type:text;not null"`
	PickupDate    time.Time           `gorm:"column:pickup_date;not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	TotalAmount   float64             `gorm:"column:total_amount;not null"`
	Notes         *string             `gorm:"column:notes"`
	Rating        *int                `gorm:"column:rating"`
	RatingComment *string             `gorm:"column:rating_comment"`
	RatedAt       *time.Time          `gorm:"column:rated_at"`
	CancelledBy   *enums.Role         `gorm:"column:cancelled_by;type:text"`
	ConfirmedAt   *time.Time          `gorm:"column:confirmed_at"`
	ReadyAt       *time.Time          `gorm:"column:ready_at"`
	CompletedAt   *time.Time          `gorm:"column:completed_at"`
	CancelledAt   *time.Time          `gorm:"column:cancelled_at"`
	Lines         []OrderLine         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
