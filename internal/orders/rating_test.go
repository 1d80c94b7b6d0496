package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/mandilink-backend/pkg/db/models"
	"github.com/angelmondragon/mandilink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/mandilink-backend/pkg/errors"
)

func completeOrder(t *testing.T, f *lifecycleFixture) {
	t.Helper()
	ctx := context.Background()
	for _, target := range []enums.OrderStatus{
		enums.OrderStatusConfirmed,
		enums.OrderStatusReady,
		enums.OrderStatusCompleted,
	} {
		_, err := f.svc.UpdateStatus(ctx, f.supplier, f.order.ID, target)
		require.NoError(t, err)
	}
}

func TestRateCompletedOrder(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	completeOrder(t, f)

	comment := "fresh stock, quick handover"
	order, err := f.svc.Rate(ctx, f.vendor.ID, f.order.ID, 5, &comment)
	require.NoError(t, err)
	require.NotNil(t, order.Rating)
	assert.Equal(t, 5, *order.Rating)
	require.NotNil(t, order.RatingComment)
	assert.Equal(t, comment, *order.RatingComment)
	assert.NotNil(t, order.RatedAt)

	var supplier models.Supplier
	require.NoError(t, f.db.Where("id = ?", f.supplier.ID).First(&supplier).Error)
	assert.Equal(t, 5.0, supplier.AverageRating)
	assert.Len(t, supplier.Ratings, 1)

	var review models.SupplierReview
	require.NoError(t, f.db.Where("order_id = ?", f.order.ID).First(&review).Error)
	assert.Equal(t, f.vendor.ID, review.VendorID)
	assert.Equal(t, 5, review.Rating)
}

func TestRateRequiresCompletedStatus(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	_, err := f.svc.Rate(ctx, f.vendor.ID, f.order.ID, 4, nil)
	assert.Equal(t, pkgerrors.CodeOrderNotRatable, errCode(t, err))

	_, err = f.svc.UpdateStatus(ctx, f.supplier, f.order.ID, enums.OrderStatusConfirmed)
	require.NoError(t, err)
	_, err = f.svc.Rate(ctx, f.vendor.ID, f.order.ID, 4, nil)
	assert.Equal(t, pkgerrors.CodeOrderNotRatable, errCode(t, err))
}

func TestRateIsOneShot(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	completeOrder(t, f)

	_, err := f.svc.Rate(ctx, f.vendor.ID, f.order.ID, 4, nil)
	require.NoError(t, err)

	_, err = f.svc.Rate(ctx, f.vendor.ID, f.order.ID, 5, nil)
	assert.Equal(t, pkgerrors.CodeOrderNotRatable, errCode(t, err))

	// the supplier aggregate keeps the first rating only.
	var supplier models.Supplier
	require.NoError(t, f.db.Where("id = ?", f.supplier.ID).First(&supplier).Error)
	assert.Equal(t, 4.0, supplier.AverageRating)
	assert.Len(t, supplier.Ratings, 1)
}

func TestRateRejectsWrongVendor(t *testing.T) {
	f := newLifecycleFixture(t)
	completeOrder(t, f)

	_, err := f.svc.Rate(context.Background(), uuid.New(), f.order.ID, 4, nil)
	assert.Equal(t, pkgerrors.CodeForbidden, errCode(t, err))
}

func TestRateValidatesRange(t *testing.T) {
	f := newLifecycleFixture(t)
	completeOrder(t, f)

	for _, rating := range []int{0, -1, 6} {
		_, err := f.svc.Rate(context.Background(), f.vendor.ID, f.order.ID, rating, nil)
		assert.Equal(t, pkgerrors.CodeValidation, errCode(t, err), "rating %d", rating)
	}
}

func TestRateAveragesAcrossOrders(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db)
	ctx := context.Background()
	vendor := seedVendor(t, db)
	supplier := seedOrderSupplier(t, db)
	onion, _ := seedCatalogOffer(t, db, supplier.ID, "Onion", 30, 500)
	supplierActor := Actor{ID: supplier.ID, Role: enums.RoleSupplier}

	for _, rating := range []int{5, 3} {
		created, err := svc.Place(ctx, vendor.ID, placeInput([]CartLine{
			{ProductID: onion.ID, SupplierID: supplier.ID, Quantity: 2},
		}))
		require.NoError(t, err)
		orderID := created[0].ID
		for _, target := range []enums.OrderStatus{
			enums.OrderStatusConfirmed,
			enums.OrderStatusReady,
			enums.OrderStatusCompleted,
		} {
			_, err := svc.UpdateStatus(ctx, supplierActor, orderID, target)
			require.NoError(t, err)
		}
		_, err = svc.Rate(ctx, vendor.ID, orderID, rating, nil)
		require.NoError(t, err)
	}

	var persisted models.Supplier
	require.NoError(t, db.Where("id = ?", supplier.ID).First(&persisted).Error)
	assert.Equal(t, 4.0, persisted.AverageRating)
	assert.Len(t, persisted.Ratings, 2)
}
