package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Supplier represents a wholesale ingredient seller.
//
// Ratings holds every star value ever submitted; AverageRating is kept in
// sync whenever a new rating is appended so list endpoints never need to
// aggregate on read.
type Supplier struct {
	ID            uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string        `gorm:"column:name;not null"`
	Phone         string        `gorm:"column:phone;not null;uniqueIndex"`
	Email         *string       `gorm:"column:email"`
	BusinessName  string        `gorm:"column:business_name;not null"`
	Location      string        `gorm:"column:location;not null"`
	Description   *string       `gorm:"column:description"`
	Ratings       pq.Int64Array `gorm:"column:ratings;type:integer[]"`
	AverageRating float64       `gorm:"column:average_rating;not null;default:0"`
	CreatedAt     time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
