package dto

type ProductFilters struct {
	StoreID     string
	CategoryID  string
	IsActive    *bool
	SearchQuery string
	SortBy      string // "name", "price", "created_at"
	SortOrder   string // "asc" or "desc"
	Page        int
	PageSize    int
}
