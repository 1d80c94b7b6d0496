package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/mandilink-backend/pkg/db/models"
	"github.com/angelmondragon/mandilink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/mandilink-backend/pkg/errors"
)

// Repository defines persistence operations for products and supplier offers.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	FindProductByNameCategory(ctx context.Context, name string, category enums.ProductCategory) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	FindOffer(ctx context.Context, productID, supplierID uuid.UUID) (*models.SupplierOffer, error)
	CreateOffer(ctx context.Context, offer *models.SupplierOffer) (*models.SupplierOffer, error)
	UpdateOffer(ctx context.Context, offerID uuid.UUID, updates map[string]any) error
	DeleteOffer(ctx context.Context, offerID uuid.UUID) error
	CountOffersByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	ListOffersBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.SupplierOffer, error)
	AdjustStock(ctx context.Context, productID, supplierID uuid.UUID, delta float64) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Offers").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return &product, nil
}

// FindProductsByIDs loads bare product rows (no offers) in one query.
func (r *repository) FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	return products, nil
}

func (r *repository) FindProductByNameCategory(ctx context.Context, name string, category enums.ProductCategory) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Offers").
		Where("name = ? AND category = ?", name, category).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return &product, nil
}

func (r *repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

func (r *repository) FindOffer(ctx context.Context, productID, supplierID uuid.UUID) (*models.SupplierOffer, error) {
	var offer models.SupplierOffer
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND supplier_id = ?", productID, supplierID).
		First(&offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
	}
	return &offer, nil
}

func (r *repository) CreateOffer(ctx context.Context, offer *models.SupplierOffer) (*models.SupplierOffer, error) {
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(offer).Error; err != nil {
		return nil, err
	}
	return offer, nil
}

func (r *repository) UpdateOffer(ctx context.Context, offerID uuid.UUID, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.SupplierOffer{}).
		Where("id = ?", offerID).
		Updates(updates)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "update offer")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
	}
	return nil
}

func (r *repository) DeleteOffer(ctx context.Context, offerID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", offerID).Delete(&models.SupplierOffer{})
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "delete offer")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
	}
	return nil
}

func (r *repository) CountOffersByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SupplierOffer{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count offers")
	}
	return count, nil
}

func (r *repository) ListOffersBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.SupplierOffer, error) {
	var offers []models.SupplierOffer
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("created_at ASC").
		Find(&offers).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list supplier offers")
	}
	return offers, nil
}

// AdjustStock applies a stock delta to one offer. Decrements are conditional:
// the update only lands when the offer is available and holds enough stock,
// so two concurrent placements can never drive stock negative. Increments
// (cancellation restoration) only require the offer row to exist.
func (r *repository) AdjustStock(ctx context.Context, productID, supplierID uuid.UUID, delta float64) error {
	if delta == 0 {
		return nil
	}

	if delta < 0 {
		need := -delta
		res := r.db.WithContext(ctx).Exec(`
			UPDATE supplier_offers
			SET stock = stock - ?,
				updated_at = CURRENT_TIMESTAMP
			WHERE product_id = ? AND supplier_id = ?
			  AND is_available AND stock >= ?
		`, need, productID, supplierID, need)
		if res.Error != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "decrement stock")
		}
		if res.RowsAffected == 0 {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "not enough stock for requested quantity")
		}
		return nil
	}

	res := r.db.WithContext(ctx).Exec(`
		UPDATE supplier_offers
		SET stock = stock + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE product_id = ? AND supplier_id = ?
	`, delta, productID, supplierID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "restore stock")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
	}
	return nil
}
