package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/angelmondragon/mandilink-backend/pkg/db"
	"github.com/angelmondragon/mandilink-backend/pkg/db/models"
	"github.com/angelmondragon/mandilink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/mandilink-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ListOfferInput captures a supplier listing a product for sale.
type ListOfferInput struct {
	Name         string
	Category     enums.ProductCategory
	Unit         enums.ProductUnit
	PricePerUnit float64
	Stock        float64
	PickupSlots  []enums.PickupSlot
	IsAvailable  bool
}

// UpdateOfferInput carries the mutable fields of an existing offer.
// Nil pointers leave the field untouched.
type UpdateOfferInput struct {
	PricePerUnit *float64
	Stock        *float64
	PickupSlots  []enums.PickupSlot
	IsAvailable  *bool
}

// CatalogEntry pairs an offer with its product for supplier-facing lists.
type CatalogEntry struct {
	Product models.Product       `json:"product"`
	Offer   models.SupplierOffer `json:"offer"`
}

// ProductComparison is the vendor-facing price comparison view.
type ProductComparison struct {
	Product models.Product         `json:"product"`
	Stats   PriceStats             `json:"stats"`
	Offers  []models.SupplierOffer `json:"offers"`
}

// Service exposes catalog operations for suppliers and vendors.
type Service interface {
	ListOffer(ctx context.Context, supplierID uuid.UUID, input ListOfferInput) (*CatalogEntry, error)
	UpdateOffer(ctx context.Context, supplierID, productID uuid.UUID, input UpdateOfferInput) (*models.SupplierOffer, error)
	RemoveOffer(ctx context.Context, supplierID, productID uuid.UUID) error
	ListSupplierCatalog(ctx context.Context, supplierID uuid.UUID) ([]CatalogEntry, error)
	CompareProduct(ctx context.Context, productID uuid.UUID) (*ProductComparison, error)
}

type service struct {
	tx   txRunner
	repo Repository
}

// NewService builds the catalog service.
func NewService(tx txRunner, repo Repository) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{tx: tx, repo: repo}, nil
}

// ListOffer creates the product on its first listing and appends the
// supplier's offer. A supplier listing the same product twice is a conflict.
func (s *service) ListOffer(ctx context.Context, supplierID uuid.UUID, input ListOfferInput) (*CatalogEntry, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}
	if err := validateListInput(input); err != nil {
		return nil, err
	}

	var entry *CatalogEntry
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		product, err := repo.FindProductByNameCategory(ctx, input.Name, input.Category)
		if err != nil {
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
				return err
			}
			product, err = repo.CreateProduct(ctx, &models.Product{
				Name:     input.Name,
				Category: input.Category,
				Unit:     input.Unit,
			})
			if err != nil {
				if db.IsUniqueViolation(err, "") {
					return pkgerrors.New(pkgerrors.CodeConflict, "product already exists")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
			}
		}

		offer := &models.SupplierOffer{
			ProductID:    product.ID,
			SupplierID:   supplierID,
			PricePerUnit: input.PricePerUnit,
			Stock:        input.Stock,
			IsAvailable:  input.IsAvailable,
			PickupSlots:  slotsToStrings(input.PickupSlots),
		}
		created, err := repo.CreateOffer(ctx, offer)
		if err != nil {
			if db.IsUniqueViolation(err, "uq_offers_product_supplier") || db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "supplier already lists this product")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create offer")
		}

		entry = &CatalogEntry{Product: *product, Offer: *created}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) UpdateOffer(ctx context.Context, supplierID, productID uuid.UUID, input UpdateOfferInput) (*models.SupplierOffer, error) {
	if supplierID == uuid.Nil || productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id and product id required")
	}
	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	var updated *models.SupplierOffer
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		offer, err := repo.FindOffer(ctx, productID, supplierID)
		if err != nil {
			return err
		}

		updates := map[string]any{"updated_at": time.Now().UTC()}
		if input.PricePerUnit != nil {
			updates["price_per_unit"] = *input.PricePerUnit
		}
		if input.Stock != nil {
			updates["stock"] = *input.Stock
		}
		if input.IsAvailable != nil {
			updates["is_available"] = *input.IsAvailable
		}
		if input.PickupSlots != nil {
			updates["pickup_slots"] = slotsToStrings(input.PickupSlots)
		}

		if err := repo.UpdateOffer(ctx, offer.ID, updates); err != nil {
			return err
		}
		updated, err = repo.FindOffer(ctx, productID, supplierID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveOffer delists the supplier's offer; a product with no offers left
// is deleted from the catalog.
func (s *service) RemoveOffer(ctx context.Context, supplierID, productID uuid.UUID) error {
	if supplierID == uuid.Nil || productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "supplier id and product id required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		offer, err := repo.FindOffer(ctx, productID, supplierID)
		if err != nil {
			return err
		}
		if err := repo.DeleteOffer(ctx, offer.ID); err != nil {
			return err
		}

		remaining, err := repo.CountOffersByProduct(ctx, productID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			if err := repo.DeleteProduct(ctx, productID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete empty product")
			}
		}
		return nil
	})
}

func (s *service) ListSupplierCatalog(ctx context.Context, supplierID uuid.UUID) ([]CatalogEntry, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}

	offers, err := s.repo.ListOffersBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(offers))
	for _, offer := range offers {
		ids = append(ids, offer.ProductID)
	}
	products, err := s.repo.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	entries := make([]CatalogEntry, 0, len(offers))
	for _, offer := range offers {
		product, ok := byID[offer.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]string{"product_id": offer.ProductID.String()})
		}
		entries = append(entries, CatalogEntry{Product: product, Offer: offer})
	}
	return entries, nil
}

func (s *service) CompareProduct(ctx context.Context, productID uuid.UUID) (*ProductComparison, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	comparison := &ProductComparison{
		Product: *product,
		Stats:   ComputePriceStats(product.Offers),
		Offers:  product.Offers,
	}
	comparison.Product.Offers = nil
	return comparison, nil
}

func validateListInput(input ListOfferInput) error {
	fields := map[string]string{}
	if input.Name == "" {
		fields["name"] = "name is required"
	}
	if !input.Category.IsValid() {
		fields["category"] = "unknown product category"
	}
	if !input.Unit.IsValid() {
		fields["unit"] = "unknown product unit"
	}
	if input.PricePerUnit <= 0 {
		fields["price_per_unit"] = "price must be greater than zero"
	}
	if input.Stock < 0 {
		fields["stock"] = "stock cannot be negative"
	}
	for _, slot := range input.PickupSlots {
		if !slot.IsValid() {
			fields["pickup_slots"] = "unknown pickup slot"
		}
	}
	if len(fields) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid offer").WithDetails(fields)
	}
	return nil
}

func validateUpdateInput(input UpdateOfferInput) error {
	fields := map[string]string{}
	if input.PricePerUnit != nil && *input.PricePerUnit <= 0 {
		fields["price_per_unit"] = "price must be greater than zero"
	}
	if input.Stock != nil && *input.Stock < 0 {
		fields["stock"] = "stock cannot be negative"
	}
	for _, slot := range input.PickupSlots {
		if !slot.IsValid() {
			fields["pickup_slots"] = "unknown pickup slot"
		}
	}
	if len(fields) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid offer update").WithDetails(fields)
	}
	return nil
}

func slotsToStrings(slots []enums.PickupSlot) pq.StringArray {
	out := make(pq.StringArray, 0, len(slots))
	for _, slot := range slots {
		out = append(out, slot.String())
	}
	return out
}
