package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/mandilink-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/mandilink-backend/pkg/errors"
)

// Repository defines persistence operations for vendors and suppliers.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindVendorByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	FindSupplierByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	AppendSupplierRating(ctx context.Context, supplierID uuid.UUID, review models.SupplierReview) (*models.Supplier, error)
	ListSupplierReviews(ctx context.Context, supplierID uuid.UUID, limit int) ([]models.SupplierReview, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an identity repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindVendorByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	return &vendor, nil
}

func (r *repository) FindSupplierByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	var supplier models.Supplier
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&supplier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supplier")
	}
	return &supplier, nil
}

// AppendSupplierRating appends a star value to the supplier's rating history,
// recomputes the stored average, and records the structured review. Callers
// run this inside the same transaction that marks the order rated.
func (r *repository) AppendSupplierRating(ctx context.Context, supplierID uuid.UUID, review models.SupplierReview) (*models.Supplier, error) {
	supplier, err := r.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	supplier.Ratings = append(supplier.Ratings, int64(review.Rating))
	supplier.AverageRating = AverageRating(supplier.Ratings)

	updates := map[string]any{
		"ratings":        supplier.Ratings,
		"average_rating": supplier.AverageRating,
	}
	if err := r.db.WithContext(ctx).Model(&models.Supplier{}).
		Where("id = ?", supplierID).
		Updates(updates).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update supplier ratings")
	}

	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	review.SupplierID = supplierID
	if err := r.db.WithContext(ctx).Create(&review).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create supplier review")
	}

	return supplier, nil
}

func (r *repository) ListSupplierReviews(ctx context.Context, supplierID uuid.UUID, limit int) ([]models.SupplierReview, error) {
	if limit <= 0 {
		limit = 20
	}
	var reviews []models.SupplierReview
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list supplier reviews")
	}
	return reviews, nil
}
