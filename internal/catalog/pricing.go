package catalog

import "github.com/angelmondragon/mandilink-backend/pkg/db/models"

// PriceStats summarizes the live offers on a product.
type PriceStats struct {
	AveragePrice float64 `json:"average_price"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
}

// ComputePriceStats derives price aggregates from the offers where
// is_available is true. All three fields are 0 when no offer is available.
// Every offer mutation recomputes through this function so the derived
// values can never drift.
func ComputePriceStats(offers []models.SupplierOffer) PriceStats {
	var stats PriceStats
	var sum float64
	var count int
	for _, offer := range offers {
		if !offer.IsAvailable {
			continue
		}
		price := offer.PricePerUnit
		if count == 0 {
			stats.MinPrice = price
			stats.MaxPrice = price
		} else {
			if price < stats.MinPrice {
				stats.MinPrice = price
			}
			if price > stats.MaxPrice {
				stats.MaxPrice = price
			}
		}
		sum += price
		count++
	}
	if count == 0 {
		return PriceStats{}
	}
	stats.AveragePrice = sum / float64(count)
	return stats
}
