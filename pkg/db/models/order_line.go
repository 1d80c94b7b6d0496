package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/mandilink-backend/pkg/enums"
)

// OrderLine snapshots one cart line at placement time. Name, unit and price
// are copied so later catalog edits never rewrite order history.
type OrderLine struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID             `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID   uuid.UUID             `gorm:"column:product_id;type:uuid;not null"`
	ProductName string                `gorm:"column:product_name;not null"`
	Category    enums.ProductCategory `gorm:"column:category;type:text;not null"`
	Unit        enums.ProductUnit     `gorm:"column:unit;type:text;not null"`
	Quantity    float64               `gorm:"column:quantity;not null"`
	UnitPrice   float64               `gorm:"column:unit_price;not null"`
	LineTotal   float64               `gorm:"column:line_total;not null"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
}
