package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/mandilink-backend/internal/catalog"
	"github.com/angelmondragon/mandilink-backend/internal/identity"
	pkgdb "github.com/angelmondragon/mandilink-backend/pkg/db"
	"github.com/angelmondragon/mandilink-backend/pkg/db/models"
	"github.com/angelmondragon/mandilink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/mandilink-backend/pkg/errors"
	"github.com/angelmondragon/mandilink-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS vendors (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  phone TEXT NOT NULL UNIQUE,
  email TEXT,
  stall_name TEXT NOT NULL,
  stall_location TEXT NOT NULL,
  cuisine_type TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS suppliers (
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
);`,
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  unit TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE(name, category)
);`,
		`CREATE TABLE IF NOT EXISTS supplier_offers (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  supplier_id TEXT NOT NULL,
  price_per_unit REAL NOT NULL,
  stock REAL NOT NULL DEFAULT 0,
  is_available INTEGER NOT NULL DEFAULT 1,
  pickup_slots TEXT,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE(product_id, supplier_id)
);`,
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  vendor_id TEXT NOT NULL,
  supplier_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'Pending',
  pickup_slot TEXT NOT NULL,
  pickup_date DATETIME NOT NULL,
  payment_method TEXT NOT NULL,
  total_amount REAL NOT NULL DEFAULT 0,
  notes TEXT,
  rating INTEGER,
  rating_comment TEXT,
  rated_at DATETIME,
  cancelled_by TEXT,
  confirmed_at DATETIME,
  ready_at DATETIME,
  completed_at DATETIME,
  cancelled_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_lines (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  category TEXT NOT NULL,
  unit TEXT NOT NULL,
  quantity REAL NOT NULL,
  unit_price REAL NOT NULL,
  line_total REAL NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS supplier_reviews (
  id TEXT PRIMARY KEY,
  supplier_id TEXT NOT NULL,
  vendor_id TEXT NOT NULL,
  order_id TEXT NOT NULL UNIQUE,
  rating INTEGER NOT NULL,
  comment TEXT,
  created_at DATETIME
);`,
	}
	for _, ddl := range statements {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func newOrdersService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(
		pkgdb.NewWithConn(db),
		NewRepository(db),
		catalog.NewRepository(db),
		identity.NewRepository(db),
		5,
	)
	require.NoError(t, err)
	return svc
}

func seedVendor(t *testing.T, db *gorm.DB) *models.Vendor {
	t.Helper()
	vendor := &models.Vendor{
		ID:            uuid.New(),
		Name:          "Ravi Kumar",
		Phone:         "98765" + uuid.NewString()[:5],
		StallName:     "Ravi Chaat Corner",
		StallLocation: "Sector 18, Noida",
	}
	require.NoError(t, db.Create(vendor).Error)
	return vendor
}

func seedOrderSupplier(t *testing.T, db *gorm.DB) *models.Supplier {
	t.Helper()
	supplier := &models.Supplier{
		ID:           uuid.New(),
		Name:         "Anand Traders",
		Phone:        "91234" + uuid.NewString()[:5],
		BusinessName: "Anand Wholesale Produce",
		Location:     "Azadpur Mandi, Delhi",
	}
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func seedCatalogOffer(t *testing.T, db *gorm.DB, supplierID uuid.UUID, name string, price, stock float64, slots ...string) (*models.Product, *models.SupplierOffer) {
	t.Helper()
	if len(slots) == 0 {
		slots = []string{enums.PickupSlotEarlyMorning.String()}
	}
	product := &models.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: enums.ProductCategoryVegetables,
		Unit:     enums.ProductUnitKilogram,
	}
	require.NoError(t, db.Create(product).Error)

	offer := &models.SupplierOffer{
		ID:           uuid.New(),
		ProductID:    product.ID,
		SupplierID:   supplierID,
		PricePerUnit: price,
		Stock:        stock,
		IsAvailable:  true,
		PickupSlots:  slots,
	}
	require.NoError(t, db.Create(offer).Error)
	return product, offer
}

func placeInput(lines []CartLine) PlaceOrderInput {
	return PlaceOrderInput{
		Lines:         lines,
		PickupSlot:    enums.PickupSlotEarlyMorning,
		PickupDate:    time.Now().AddDate(0, 0, 1),
		PaymentMethod: enums.PaymentMethodUPI,
	}
}

func offerStock(t *testing.T, db *gorm.DB, offerID uuid.UUID) float64 {
	t.Helper()
	var offer models.SupplierOffer
	require.NoError(t, db.Where("id = ?", offerID).First(&offer).Error)
	return offer.Stock
}

func errCode(t *testing.T, err error) pkgerrors.Code {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	return typed.Code()
}

func TestGetEnforcesOwnership(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db)
	ctx := context.Background()
	vendor := seedVendor(t, db)
	supplier := seedOrderSupplier(t, db)
	product, _ := seedCatalogOffer(t, db, supplier.ID, "Onion", 30, 50)

	created, err := svc.Place(ctx, vendor.ID, placeInput([]CartLine{
		{ProductID: product.ID, SupplierID: supplier.ID, Quantity: 5},
	}))
	require.NoError(t, err)
	require.Len(t, created, 1)

	got, err := svc.Get(ctx, Actor{ID: vendor.ID, Role: enums.RoleVendor}, created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, created[0].OrderNumber, got.OrderNumber)

	_, err = svc.Get(ctx, Actor{ID: uuid.New(), Role: enums.RoleVendor}, created[0].ID)
	assert.Equal(t, pkgerrors.CodeForbidden, errCode(t, err))

	_, err = svc.Get(ctx, Actor{ID: supplier.ID, Role: enums.RoleSupplier}, created[0].ID)
	require.NoError(t, err)
}

func TestListSplitsByRole(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db)
	ctx := context.Background()
	vendor := seedVendor(t, db)
	supplierA := seedOrderSupplier(t, db)
	supplierB := seedOrderSupplier(t, db)
	productA, _ := seedCatalogOffer(t, db, supplierA.ID, "Onion", 30, 50)
	productB, _ := seedCatalogOffer(t, db, supplierB.ID, "Tomato", 40, 50)

	_, err := svc.Place(ctx, vendor.ID, placeInput([]CartLine{
		{ProductID: productA.ID, SupplierID: supplierA.ID, Quantity: 2},
		{ProductID: productB.ID, SupplierID: supplierB.ID, Quantity: 3},
	}))
	require.NoError(t, err)

	vendorList, err := svc.List(ctx, Actor{ID: vendor.ID, Role: enums.RoleVendor}, pagination.Params{}, ListFilters{})
	require.NoError(t, err)
	assert.Len(t, vendorList.Orders, 2)

	supplierList, err := svc.List(ctx, Actor{ID: supplierA.ID, Role: enums.RoleSupplier}, pagination.Params{}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, supplierList.Orders, 1)
	assert.Equal(t, supplierA.ID, supplierList.Orders[0].SupplierID)
}

func TestSummarizeCountsRevenueFromCompletedOnly(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db)
	ctx := context.Background()
	vendor := seedVendor(t, db)
	supplier := seedOrderSupplier(t, db)
	product, _ := seedCatalogOffer(t, db, supplier.ID, "Onion", 10, 500)

	supplierActor := Actor{ID: supplier.ID, Role: enums.RoleSupplier}

	// one completed order worth 100, one pending worth 50, one cancelled.
	for _, tc := range []struct {
		quantity float64
		complete bool
		cancel   bool
	}{
		{quantity: 10, complete: true},
		{quantity: 5},
		{quantity: 7, cancel: true},
	} {
		created, err := svc.Place(ctx, vendor.ID, placeInput([]CartLine{
			{ProductID: product.ID, SupplierID: supplier.ID, Quantity: tc.quantity},
		}))
		require.NoError(t, err)
		orderID := created[0].ID
		if tc.complete {
			_, err = svc.UpdateStatus(ctx, supplierActor, orderID, enums.OrderStatusConfirmed)
			require.NoError(t, err)
			_, err = svc.UpdateStatus(ctx, supplierActor, orderID, enums.OrderStatusReady)
			require.NoError(t, err)
			_, err = svc.UpdateStatus(ctx, supplierActor, orderID, enums.OrderStatusCompleted)
			require.NoError(t, err)
		}
		if tc.cancel {
			_, err = svc.Cancel(ctx, supplierActor, orderID)
			require.NoError(t, err)
		}
	}

	summary, err := svc.Summarize(ctx, supplierActor, ListFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.TotalOrders)
	assert.Equal(t, int64(1), summary.PendingOrders)
	assert.Equal(t, int64(1), summary.CompletedOrders)
	assert.Equal(t, 100.0, summary.TotalRevenue)
	assert.Equal(t, 100.0, summary.AverageOrderValue)
}
