package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/mandilink-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/mandilink-backend/pkg/errors"
)

// SupplierProfile is the vendor-facing view of a supplier.
type SupplierProfile struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	BusinessName  string          `json:"business_name"`
	Location      string          `json:"location"`
	Description   *string         `json:"description,omitempty"`
	AverageRating float64         `json:"average_rating"`
	TotalRatings  int             `json:"total_ratings"`
	Reviews       []ReviewSummary `json:"reviews"`
}

// ReviewSummary is one review entry on a supplier profile.
type ReviewSummary struct {
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	VendorID  uuid.UUID `json:"vendor_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Service exposes read operations over vendors and suppliers.
type Service interface {
	GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	GetSupplierProfile(ctx context.Context, id uuid.UUID) (*SupplierProfile, error)
}

type service struct {
	repo Repository
}

// NewService builds the identity read service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("identity repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	return s.repo.FindVendorByID(ctx, id)
}

func (s *service) GetSupplierProfile(ctx context.Context, id uuid.UUID) (*SupplierProfile, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}
	supplier, err := s.repo.FindSupplierByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.repo.ListSupplierReviews(ctx, id, 20)
	if err != nil {
		return nil, err
	}

	profile := &SupplierProfile{
		ID:            supplier.ID,
		Name:          supplier.Name,
		BusinessName:  supplier.BusinessName,
		Location:      supplier.Location,
		Description:   supplier.Description,
		AverageRating: supplier.AverageRating,
		TotalRatings:  len(supplier.Ratings),
		Reviews:       make([]ReviewSummary, 0, len(reviews)),
	}
	for _, review := range reviews {
		profile.Reviews = append(profile.Reviews, ReviewSummary{
			Rating:    review.Rating,
			Comment:   review.Comment,
			VendorID:  review.VendorID,
			CreatedAt: review.CreatedAt,
		})
	}
	return profile, nil
}
