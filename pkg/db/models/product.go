package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/mandilink-backend/pkg/enums"
)

// Product is the shared catalog entry suppliers list offers against.
// A product exists while at least one supplier offers it; price statistics
// are derived from the live offers at read time.
type Product struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string                `gorm:"column:name;not null;uniqueIndex:uq_products_name_category"`
	Category  enums.ProductCategory `gorm:"column:category;type:text;not null;uniqueIndex:uq_products_name_category"`
	Unit      enums.ProductUnit     `gorm:"column:unit;type:text;not null"`
	Offers    []SupplierOffer       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
