package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SupplierOffer is one supplier's listing of a catalog product: their price,
// live stock, and the pickup slots they serve. A supplier can list a product
// at most once.
type SupplierOffer struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID    uuid.UUID      `gorm:"column:product_id;type:uuid;not null;uniqueIndex:uq_offers_product_supplier"`
	SupplierID   uuid.UUID      `gorm:"column:supplier_id;type:uuid;not null;uniqueIndex:uq_offers_product_supplier;index"`
	PricePerUnit float64        `gorm:"column:price_per_unit;not null"`
	Stock        float64        `gorm:"column:stock;not null;default:0"`
	IsAvailable  bool           `gorm:"column:is_available;not null;default:true"`
	PickupSlots  pq.StringArray `gorm:"column:pickup_slots;type:text[]"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
