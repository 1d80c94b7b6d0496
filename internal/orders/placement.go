package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/mandilink-backend/internal/catalog"
	"github.com/angelmondragon/mandilink-backend/pkg/db"
	"github.com/angelmondragon/mandilink-backend/pkg/db/models"
	"github.com/angelmondragon/mandilink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/mandilink-backend/pkg/errors"
)

// Place splits the cart into one order per distinct supplier, validates each
// line against the live catalog, snapshots unit prices, and decrements stock.
//
// The whole placement runs in a single transaction: the first failing line
// anywhere in the cart aborts every partition (all-or-nothing). Stock is
// decremented only after the partition's order row exists, and the decrement
// itself is a conditional update, so two concurrent placements can never
// overdraw the same offer.
func (s *service) Place(ctx context.Context, vendorID uuid.UUID, input PlaceOrderInput) ([]models.Order, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	if err := validatePlaceInput(input); err != nil {
		return nil, err
	}

	if _, err := s.identityRepo.FindVendorByID(ctx, vendorID); err != nil {
		return nil, err
	}

	var created []models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		catalogRepo := s.catalogRepo.WithTx(tx)
		identityRepo := s.identityRepo.WithTx(tx)

		partitions := partitionBySupplier(input.Lines)
		productCache := map[uuid.UUID]*models.Product{}

		created = created[:0]
		for _, partition := range partitions {
			if _, err := identityRepo.FindSupplierByID(ctx, partition.supplierID); err != nil {
				return err
			}

			lines, totalAmount, err := buildPartitionLines(ctx, catalogRepo, productCache, partition, input.PickupSlot)
			if err != nil {
				return err
			}

			order, err := s.createOrderWithNumber(ctx, tx, &models.Order{
				VendorID:      vendorID,
				SupplierID:    partition.supplierID,
				Status:        enums.OrderStatusPending,
				PickupSlot:    input.PickupSlot,
				PickupDate:    input.PickupDate,
				PaymentMethod: input.PaymentMethod,
				TotalAmount:   totalAmount,
				Notes:         input.Notes,
			})
			if err != nil {
				return err
			}

			for i := range lines {
				lines[i].OrderID = order.ID
			}
			if err := repo.CreateOrderLines(ctx, lines); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order lines")
			}

			// order-then-decrement: the order row is durable before any
			// stock moves, and each decrement revalidates stock.
			for _, line := range lines {
				if err := catalogRepo.AdjustStock(ctx, line.ProductID, partition.supplierID, -line.Quantity); err != nil {
					return err
				}
			}

			order.Lines = lines
			created = append(created, *order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

type cartPartition struct {
	supplierID uuid.UUID
	lines      []CartLine
}

// partitionBySupplier groups cart lines per supplier, preserving both the
// order suppliers first appear and the submitted line order within each
// partition.
func partitionBySupplier(lines []CartLine) []cartPartition {
	index := map[uuid.UUID]int{}
	partitions := make([]cartPartition, 0, len(lines))
	for _, line := range lines {
		pos, ok := index[line.SupplierID]
		if !ok {
			pos = len(partitions)
			index[line.SupplierID] = pos
			partitions = append(partitions, cartPartition{supplierID: line.SupplierID})
		}
		partitions[pos].lines = append(partitions[pos].lines, line)
	}
	return partitions
}

func buildPartitionLines(
	ctx context.Context,
	catalogRepo catalog.Repository,
	cache map[uuid.UUID]*models.Product,
	partition cartPartition,
	slot enums.PickupSlot,
) ([]models.OrderLine, float64, error) {
	lines := make([]models.OrderLine, 0, len(partition.lines))
	var totalAmount float64

	for _, cartLine := range partition.lines {
		product, ok := cache[cartLine.ProductID]
		if !ok {
			loaded, err := catalogRepo.FindProductByID(ctx, cartLine.ProductID)
			if err != nil {
				return nil, 0, err
			}
			product = loaded
			cache[cartLine.ProductID] = product
		}

		offer := findOffer(product, partition.supplierID)
		if offer == nil {
			return nil, 0, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found").
				WithDetails(map[string]string{
					"product_id":  cartLine.ProductID.String(),
					"supplier_id": partition.supplierID.String(),
				})
		}

		if !offer.IsAvailable || offer.Stock < cartLine.Quantity {
			return nil, 0, pkgerrors.New(pkgerrors.CodeInsufficientStock, "not enough stock for requested quantity").
				WithDetails(map[string]any{
					"product_id": cartLine.ProductID.String(),
					"requested":  cartLine.Quantity,
					"available":  offer.Stock,
				})
		}
		if !offerServesSlot(offer, slot) {
			return nil, 0, pkgerrors.New(pkgerrors.CodeSlotUnavailable, "offer does not serve the requested pickup slot").
				WithDetails(map[string]any{
					"product_id":      cartLine.ProductID.String(),
					"requested_slot":  slot.String(),
					"available_slots": []string(offer.PickupSlots),
				})
		}

		lineTotal := offer.PricePerUnit * cartLine.Quantity
		totalAmount += lineTotal
		lines = append(lines, models.OrderLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Category:    product.Category,
			Unit:        product.Unit,
			Quantity:    cartLine.Quantity,
			UnitPrice:   offer.PricePerUnit,
			LineTotal:   lineTotal,
		})
	}
	return lines, totalAmount, nil
}

// generateOrderNumber is swapped out in tests to force collisions.
var generateOrderNumber = NewOrderNumber

func (s *service) createOrderWithNumber(ctx context.Context, tx *gorm.DB, order *models.Order) (*models.Order, error) {
	var lastErr error
	for attempt := 0; attempt < s.numberRetries; attempt++ {
		order.ID = uuid.Nil
		order.OrderNumber = generateOrderNumber(time.Now())

		// each attempt runs in its own savepoint: a unique-violation INSERT
		// poisons the enclosing postgres transaction (SQLSTATE 25P02) unless
		// it is rolled back before the next attempt.
		var created *models.Order
		err := tx.Transaction(func(inner *gorm.DB) error {
			var createErr error
			created, createErr = s.repo.WithTx(inner).CreateOrder(ctx, order)
			return createErr
		})
		if err == nil {
			return created, nil
		}
		if !db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		lastErr = err
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, lastErr,
		fmt.Sprintf("order number collision persisted after %d attempts", s.numberRetries))
}

func findOffer(product *models.Product, supplierID uuid.UUID) *models.SupplierOffer {
	for i := range product.Offers {
		if product.Offers[i].SupplierID == supplierID {
			return &product.Offers[i]
		}
	}
	return nil
}

func offerServesSlot(offer *models.SupplierOffer, slot enums.PickupSlot) bool {
	for _, candidate := range offer.PickupSlots {
		if candidate == slot.String() {
			return true
		}
	}
	return false
}

func validatePlaceInput(input PlaceOrderInput) error {
	fields := map[string]string{}
	if len(input.Lines) == 0 {
		fields["lines"] = "cart must contain at least one line"
	}
	for i, line := range input.Lines {
		if line.ProductID == uuid.Nil {
			fields[fmt.Sprintf("lines[%d].product_id", i)] = "product id required"
		}
		if line.SupplierID == uuid.Nil {
			fields[fmt.Sprintf("lines[%d].supplier_id", i)] = "supplier id required"
		}
		if line.Quantity < 0.1 {
			fields[fmt.Sprintf("lines[%d].quantity", i)] = "quantity must be at least 0.1"
		}
	}
	if !input.PickupSlot.IsValid() {
		fields["pickup_slot"] = "unknown pickup slot"
	}
	if input.PickupDate.IsZero() {
		fields["pickup_date"] = "pickup date required"
	}
	if !input.PaymentMethod.IsValid() {
		fields["payment_method"] = "payment method must be UPI, Cash or Card"
	}
	if len(fields) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid order placement").WithDetails(fields)
	}
	return nil
}
