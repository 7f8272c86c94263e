package models

// Category is the closed set of expense categories assigned at extraction
// time. Unknown strings are rejected at the boundary instead of falling back
// to Other.
type Category string

const (
	CategoryGrocery     Category = "grocery"
	CategoryDining      Category = "dining"
	CategoryFashion     Category = "fashion"
	CategoryTravel      Category = "travel"
	CategoryUtilities   Category = "utilities"
	CategoryInventory   Category = "inventory purchasing"
	CategoryStationery  Category = "stationery"
	CategoryMaintenance Category = "maintenance"
	CategoryOther       Category = "other"
)

// Categories lists all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryGrocery,
		CategoryDining,
		CategoryFashion,
		CategoryTravel,
		CategoryUtilities,
		CategoryInventory,
		CategoryStationery,
		CategoryMaintenance,
		CategoryOther,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryGrocery, CategoryDining, CategoryFashion, CategoryTravel,
		CategoryUtilities, CategoryInventory, CategoryStationery,
		CategoryMaintenance, CategoryOther:
		return true
	}
	return false
}
