package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgdb "github.com/angelmondragon/mandilink-backend/pkg/db"
	"github.com/angelmondragon/mandilink-backend/pkg/db/models"
	"github.com/angelmondragon/mandilink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/mandilink-backend/pkg/errors"
)

func newCatalogService(t *testing.T) (Service, Repository, *pkgdb.Client) {
	t.Helper()
	conn := setupCatalogTestDB(t)
	client := pkgdb.NewWithConn(conn)
	repo := NewRepository(conn)
	svc, err := NewService(client, repo)
	require.NoError(t, err)
	return svc, repo, client
}

func tomatoListing(stock float64) ListOfferInput {
	return ListOfferInput{
		Name:         "Tomato",
		Category:     enums.ProductCategoryVegetables,
		Unit:         enums.ProductUnitKilogram,
		PricePerUnit: 25,
		Stock:        stock,
		PickupSlots:  []enums.PickupSlot{enums.PickupSlotEarlyMorning},
		IsAvailable:  true,
	}
}

func TestListOfferCreatesProductOnFirstListing(t *testing.T) {
	svc, repo, _ := newCatalogService(t)
	ctx := context.Background()
	supplierID := uuid.New()

	entry, err := svc.ListOffer(ctx, supplierID, tomatoListing(50))
	require.NoError(t, err)
	assert.Equal(t, "Tomato", entry.Product.Name)
	assert.Equal(t, supplierID, entry.Offer.SupplierID)
	assert.Equal(t, 50.0, entry.Offer.Stock)

	// second supplier listing the same product reuses the product row
	otherSupplier := uuid.New()
	entry2, err := svc.ListOffer(ctx, otherSupplier, tomatoListing(20))
	require.NoError(t, err)
	assert.Equal(t, entry.Product.ID, entry2.Product.ID)

	product, err := repo.FindProductByID(ctx, entry.Product.ID)
	require.NoError(t, err)
	assert.Len(t, product.Offers, 2)
}

func TestListOfferRejectsDuplicateSupplier(t *testing.T) {
	svc, _, _ := newCatalogService(t)
	ctx := context.Background()
	supplierID := uuid.New()

	_, err := svc.ListOffer(ctx, supplierID, tomatoListing(50))
	require.NoError(t, err)

	_, err = svc.ListOffer(ctx, supplierID, tomatoListing(10))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestListOfferValidatesInput(t *testing.T) {
	svc, _, _ := newCatalogService(t)

	input := tomatoListing(50)
	input.PricePerUnit = 0
	input.Category = enums.ProductCategory("Gadgets")

	_, err := svc.ListOffer(context.Background(), uuid.New(), input)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	fields, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, fields, "price_per_unit")
	assert.Contains(t, fields, "category")
}

func TestUpdateOfferOwnershipAndFields(t *testing.T) {
	svc, _, _ := newCatalogService(t)
	ctx := context.Background()
	supplierID := uuid.New()

	entry, err := svc.ListOffer(ctx, supplierID, tomatoListing(50))
	require.NoError(t, err)

	newPrice := 28.0
	updated, err := svc.UpdateOffer(ctx, supplierID, entry.Product.ID, UpdateOfferInput{PricePerUnit: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 28.0, updated.PricePerUnit)
	assert.Equal(t, 50.0, updated.Stock)

	// a different supplier has no offer on this product to update
	_, err = svc.UpdateOffer(ctx, uuid.New(), entry.Product.ID, UpdateOfferInput{PricePerUnit: &newPrice})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestRemoveOfferDeletesEmptyProduct(t *testing.T) {
	svc, repo, _ := newCatalogService(t)
	ctx := context.Background()
	first := uuid.New()
	second := uuid.New()

	entry, err := svc.ListOffer(ctx, first, tomatoListing(50))
	require.NoError(t, err)
	_, err = svc.ListOffer(ctx, second, tomatoListing(30))
	require.NoError(t, err)

	require.NoError(t, svc.RemoveOffer(ctx, first, entry.Product.ID))

	// product survives while another offer remains
	product, err := repo.FindProductByID(ctx, entry.Product.ID)
	require.NoError(t, err)
	assert.Len(t, product.Offers, 1)

	require.NoError(t, svc.RemoveOffer(ctx, second, entry.Product.ID))

	_, err = repo.FindProductByID(ctx, entry.Product.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCompareProductStats(t *testing.T) {
	svc, _, _ := newCatalogService(t)
	ctx := context.Background()

	entry, err := svc.ListOffer(ctx, uuid.New(), tomatoListing(50))
	require.NoError(t, err)

	cheaper := tomatoListing(10)
	cheaper.PricePerUnit = 20
	_, err = svc.ListOffer(ctx, uuid.New(), cheaper)
	require.NoError(t, err)

	hidden := tomatoListing(5)
	hidden.PricePerUnit = 90
	hidden.IsAvailable = false
	_, err = svc.ListOffer(ctx, uuid.New(), hidden)
	require.NoError(t, err)

	comparison, err := svc.CompareProduct(ctx, entry.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, 22.5, comparison.Stats.AveragePrice)
	assert.Equal(t, 20.0, comparison.Stats.MinPrice)
	assert.Equal(t, 25.0, comparison.Stats.MaxPrice)
	assert.Len(t, comparison.Offers, 3)
}

func TestListSupplierCatalog(t *testing.T) {
	svc, _, _ := newCatalogService(t)
	ctx := context.Background()
	supplierID := uuid.New()

	_, err := svc.ListOffer(ctx, supplierID, tomatoListing(50))
	require.NoError(t, err)

	potato := tomatoListing(40)
	potato.Name = "Potato"
	_, err = svc.ListOffer(ctx, supplierID, potato)
	require.NoError(t, err)

	entries, err := svc.ListSupplierCatalog(ctx, supplierID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	names := []string{entries[0].Product.Name, entries[1].Product.Name}
	assert.ElementsMatch(t, []string{"Tomato", "Potato"}, names)
	for _, entry := range entries {
		assert.Equal(t, supplierID, entry.Offer.SupplierID)
		var zero []models.SupplierOffer
		assert.Equal(t, zero, entry.Product.Offers)
	}
}
