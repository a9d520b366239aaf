package model

// CourseFilters narrows catalog queries. Zero values mean "no constraint".
type CourseFilters struct {
	CategorySlugs []string
	PriceMin      *int64
	PriceMax      *int64
	IsFree        bool
	IsPaid        bool
	InstructorID  uint
	Search        string
}

// Catalog sort keys. Anything else falls back to title order.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortPopular   = "popular"
)
