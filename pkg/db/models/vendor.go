package models

import (
	"time"

	"github.com/google/uuid"
)

// Vendor represents a food cart operator buying ingredients.
type Vendor struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	Phone         string    `gorm:"column:phone;not null;uniqueIndex"`
	Email         *string   `gorm:"column:email"`
	StallName     string    `gorm:"column:stall_name;not null"`
	StallLocation string    `gorm:"column:stall_location;not null"`
	CuisineType   *string   `gorm:"column:cuisine_type"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
