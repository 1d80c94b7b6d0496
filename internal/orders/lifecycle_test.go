package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/mandilink-backend/pkg/db/models"
	"github.com/angelmondragon/mandilink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/mandilink-backend/pkg/errors"
)

type lifecycleFixture struct {
	svc        Service
	db         *gorm.DB
	vendor     Actor
	supplier   Actor
	order      *models.Order
	offerID    uuid.UUID
	seedStock  float64
	orderedQty float64
}

func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db)
	vendor := seedVendor(t, db)
	supplier := seedOrderSupplier(t, db)
	onion, offer := seedCatalogOffer(t, db, supplier.ID, "Onion", 30, 50)

	created, err := svc.Place(context.Background(), vendor.ID, placeInput([]CartLine{
		{ProductID: onion.ID, SupplierID: supplier.ID, Quantity: 8},
	}))
	require.NoError(t, err)
	require.Len(t, created, 1)

	return &lifecycleFixture{
		svc:        svc,
		db:         db,
		vendor:     Actor{ID: vendor.ID, Role: enums.RoleVendor},
		supplier:   Actor{ID: supplier.ID, Role: enums.RoleSupplier},
		order:      &created[0],
		offerID:    offer.ID,
		seedStock:  50,
		orderedQty: 8,
	}
}

func TestSupplierDrivesHappyPath(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	order, err := f.svc.UpdateStatus(ctx, f.supplier, f.order.ID, enums.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusConfirmed, order.Status)
	assert.NotNil(t, order.ConfirmedAt)

	order, err = f.svc.UpdateStatus(ctx, f.supplier, f.order.ID, enums.OrderStatusReady)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusReady, order.Status)
	assert.NotNil(t, order.ReadyAt)

	order, err = f.svc.UpdateStatus(ctx, f.supplier, f.order.ID, enums.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCompleted, order.Status)
	assert.NotNil(t, order.CompletedAt)
	assert.Nil(t, order.CancelledBy)

	// completion never restores stock.
	assert.Equal(t, f.seedStock-f.orderedQty, offerStock(t, f.db, f.offerID))
}

func TestVendorMayOnlyCancel(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpdateStatus(ctx, f.vendor, f.order.ID, enums.OrderStatusConfirmed)
	assert.Equal(t, pkgerrors.CodeForbidden, errCode(t, err))

	order, err := f.svc.Cancel(ctx, f.vendor, f.order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCancelled, order.Status)
	require.NotNil(t, order.CancelledBy)
	assert.Equal(t, enums.RoleVendor, *order.CancelledBy)
	assert.NotNil(t, order.CancelledAt)
}

func TestCancellationRestoresStock(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	require.Equal(t, f.seedStock-f.orderedQty, offerStock(t, f.db, f.offerID))

	_, err := f.svc.UpdateStatus(ctx, f.supplier, f.order.ID, enums.OrderStatusConfirmed)
	require.NoError(t, err)

	// supplier cancels after confirming: stock comes back.
	order, err := f.svc.Cancel(ctx, f.supplier, f.order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCancelled, order.Status)
	require.NotNil(t, order.CancelledBy)
	assert.Equal(t, enums.RoleSupplier, *order.CancelledBy)
	assert.Equal(t, f.seedStock, offerStock(t, f.db, f.offerID))
}

func TestVendorCancellationRestoresStock(t *testing.T) {
	f := newLifecycleFixture(t)

	_, err := f.svc.Cancel(context.Background(), f.vendor, f.order.ID)
	require.NoError(t, err)
	assert.Equal(t, f.seedStock, offerStock(t, f.db, f.offerID))
}

func TestCancelAfterOfferDelisted(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	// supplier delists the offer (and its now-empty product) while the
	// order is still open
	require.NoError(t, f.db.Exec(`DELETE FROM supplier_offers WHERE id = ?`, f.offerID).Error)
	require.NoError(t, f.db.Exec(`DELETE FROM products WHERE id = ?`, f.order.Lines[0].ProductID).Error)

	// the vendor can still cancel; there is just no stock left to restore
	order, err := f.svc.Cancel(ctx, f.vendor, f.order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCancelled, order.Status)
	require.NotNil(t, order.CancelledBy)
	assert.Equal(t, enums.RoleVendor, *order.CancelledBy)
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	_, err := f.svc.Cancel(ctx, f.vendor, f.order.ID)
	require.NoError(t, err)

	for _, target := range []enums.OrderStatus{
		enums.OrderStatusConfirmed,
		enums.OrderStatusReady,
		enums.OrderStatusCompleted,
		enums.OrderStatusCancelled,
	} {
		_, err := f.svc.UpdateStatus(ctx, f.supplier, f.order.ID, target)
		assert.Equal(t, pkgerrors.CodeInvalidTransition, errCode(t, err), "target %s", target)
	}

	// a second cancel also fails, so stock is restored exactly once.
	assert.Equal(t, f.seedStock, offerStock(t, f.db, f.offerID))
}

func TestSkippingStatesRejected(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpdateStatus(ctx, f.supplier, f.order.ID, enums.OrderStatusReady)
	assert.Equal(t, pkgerrors.CodeInvalidTransition, errCode(t, err))

	_, err = f.svc.UpdateStatus(ctx, f.supplier, f.order.ID, enums.OrderStatusCompleted)
	assert.Equal(t, pkgerrors.CodeInvalidTransition, errCode(t, err))
}

func TestUpdateStatusEnforcesOwnership(t *testing.T) {
	f := newLifecycleFixture(t)

	stranger := Actor{ID: uuid.New(), Role: enums.RoleSupplier}
	_, err := f.svc.UpdateStatus(context.Background(), stranger, f.order.ID, enums.OrderStatusConfirmed)
	assert.Equal(t, pkgerrors.CodeForbidden, errCode(t, err))
}

func TestCanTransitionTable(t *testing.T) {
	statuses := []enums.OrderStatus{
		enums.OrderStatusPending,
		enums.OrderStatusConfirmed,
		enums.OrderStatusReady,
		enums.OrderStatusCompleted,
		enums.OrderStatusCancelled,
	}
	allowed := map[enums.OrderStatus]map[enums.OrderStatus]bool{
		enums.OrderStatusPending:   {enums.OrderStatusConfirmed: true, enums.OrderStatusCancelled: true},
		enums.OrderStatusConfirmed: {enums.OrderStatusReady: true, enums.OrderStatusCancelled: true},
		enums.OrderStatusReady:     {enums.OrderStatusCompleted: true, enums.OrderStatusCancelled: true},
	}
	for _, from := range statuses {
		for _, to := range statuses {
			assert.Equal(t, allowed[from][to], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}
