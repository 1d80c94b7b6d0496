package enums

import "fmt"

// ProductCategory represents the canonical ingredient categories supported by the catalog.
type ProductCategory string

const (
	ProductCategoryVegetables ProductCategory = "Vegetables"
	ProductCategoryFruits     ProductCategory = "Fruits"
	ProductCategoryGrains     ProductCategory = "Grains"
	ProductCategorySpices     ProductCategory = "Spices"
	ProductCategoryOils       ProductCategory = "Oils"
	ProductCategoryDairy      ProductCategory = "Dairy"
	ProductCategoryMeat       ProductCategory = "Meat"
	ProductCategorySeafood    ProductCategory = "Seafood"
	ProductCategoryBeverages  ProductCategory = "Beverages"
	ProductCategorySnacks     ProductCategory = "Snacks"
	ProductCategoryOther      ProductCategory = "Other"
)

var validProductCategories = []ProductCategory{
	ProductCategoryVegetables,
	ProductCategoryFruits,
	ProductCategoryGrains,
	ProductCategorySpices,
	ProductCategoryOils,
	ProductCategoryDairy,
	ProductCategoryMeat,
	ProductCategorySeafood,
	ProductCategoryBeverages,
	ProductCategorySnacks,
	ProductCategoryOther,
}

// ProductCategories returns the closed category enumeration.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductUnit defines the available units of measure for pricing.
type ProductUnit string

const (
	ProductUnitKilogram ProductUnit = "kg"
	ProductUnitGram     ProductUnit = "g"
	ProductUnitLitre    ProductUnit = "l"
	ProductUnitMillilit ProductUnit = "ml"
	ProductUnitPiece    ProductUnit = "piece"
	ProductUnitDozen    ProductUnit = "dozen"
	ProductUnitPack     ProductUnit = "pack"
)

var validProductUnits = []ProductUnit{
	ProductUnitKilogram,
	ProductUnitGram,
	ProductUnitLitre,
	ProductUnitMillilit,
	ProductUnitPiece,
	ProductUnitDozen,
	ProductUnitPack,
}

// String implements fmt.Stringer.
func (u ProductUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known ProductUnit.
func (u ProductUnit) IsValid() bool {
	for _, candidate := range validProductUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseProductUnit converts raw input into a ProductUnit.
func ParseProductUnit(value string) (ProductUnit, error) {
	for _, candidate := range validProductUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product unit %q", value)
}
