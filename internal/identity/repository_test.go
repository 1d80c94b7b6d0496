package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/mandilink-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/mandilink-backend/pkg/errors"
)

func setupIdentityTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	vendors := `
CREATE TABLE IF NOT EXISTS vendors (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  phone TEXT NOT NULL UNIQUE,
  email TEXT,
  stall_name TEXT NOT NULL,
  stall_location TEXT NOT NULL,
  cuisine_type TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	suppliers := `
CREATE TABLE IF NOT EXISTS suppliers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  phone TEXT NOT NULL UNIQUE,
  email TEXT,
  business_name TEXT NOT NULL,
  location TEXT NOT NULL,
  description TEXT,
  ratings TEXT,
  average_rating REAL NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	reviews := `
CREATE TABLE IF NOT EXISTS supplier_reviews (
  id TEXT PRIMARY KEY,
  supplier_id TEXT NOT NULL,
  vendor_id TEXT NOT NULL,
  order_id TEXT NOT NULL UNIQUE,
  rating INTEGER NOT NULL,
  comment TEXT,
  created_at DATETIME
);`

	for _, ddl := range []string{vendors, suppliers, reviews} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func seedSupplier(t *testing.T, db *gorm.DB) *models.Supplier {
	t.Helper()
	supplier := &models.Supplier{
		ID:           uuid.New(),
		Name:         "Anand Traders",
		Phone:        "9876500001",
		BusinessName: "Anand Wholesale Produce",
		Location:     "Azadpur Mandi, Delhi",
	}
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func TestFindVendorByIDNotFound(t *testing.T) {
	db := setupIdentityTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindVendorByID(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestAppendSupplierRatingRecomputesAverage(t *testing.T) {
	db := setupIdentityTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	supplier := seedSupplier(t, db)

	updated, err := repo.AppendSupplierRating(ctx, supplier.ID, models.SupplierReview{
		VendorID: uuid.New(),
		OrderID:  uuid.New(),
		Rating:   4,
	})
	require.NoError(t, err)
	assert.Equal(t, 4.0, updated.AverageRating)
	assert.Len(t, updated.Ratings, 1)

	comment := "fresh stock, on time"
	updated, err = repo.AppendSupplierRating(ctx, supplier.ID, models.SupplierReview{
		VendorID: uuid.New(),
		OrderID:  uuid.New(),
		Rating:   5,
		Comment:  &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, 4.5, updated.AverageRating)
	assert.Len(t, updated.Ratings, 2)

	var persisted models.Supplier
	require.NoError(t, db.Where("id = ?", supplier.ID).First(&persisted).Error)
	assert.Equal(t, 4.5, persisted.AverageRating)

	reviews, err := repo.ListSupplierReviews(ctx, supplier.ID, 10)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestAppendSupplierRatingRejectsDuplicateOrder(t *testing.T) {
	db := setupIdentityTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	supplier := seedSupplier(t, db)
	orderID := uuid.New()

	_, err := repo.AppendSupplierRating(ctx, supplier.ID, models.SupplierReview{
		VendorID: uuid.New(),
		OrderID:  orderID,
		Rating:   3,
	})
	require.NoError(t, err)

	_, err = repo.AppendSupplierRating(ctx, supplier.ID, models.SupplierReview{
		VendorID: uuid.New(),
		OrderID:  orderID,
		Rating:   5,
	})
	require.Error(t, err)
}

func TestGetSupplierProfile(t *testing.T) {
	db := setupIdentityTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()
	supplier := seedSupplier(t, db)

	for _, rating := range []int{5, 3} {
		_, err := repo.AppendSupplierRating(ctx, supplier.ID, models.SupplierReview{
			VendorID: uuid.New(),
			OrderID:  uuid.New(),
			Rating:   rating,
		})
		require.NoError(t, err)
	}

	profile, err := svc.GetSupplierProfile(ctx, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, supplier.BusinessName, profile.BusinessName)
	assert.Equal(t, 4.0, profile.AverageRating)
	assert.Equal(t, 2, profile.TotalRatings)
	assert.Len(t, profile.Reviews, 2)
}
