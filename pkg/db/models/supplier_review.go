package models

import (
	"time"

	"github.com/google/uuid"
)

// SupplierReview records the rating a vendor left on a completed order.
// The unique index on order_id is what makes rating a one-shot operation.
type SupplierReview struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SupplierID uuid.UUID `gorm:"column:supplier_id;type:uuid;not null;index"`
	VendorID   uuid.UUID `gorm:"column:vendor_id;type:uuid;not null"`
	OrderID    uuid.UUID `gorm:"column:order_id;type:uuid;not null;uniqueIndex:uq_supplier_reviews_order"`
	Rating     int       `gorm:"column:rating;not null"`
	Comment    *string   `gorm:"column:comment"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
