package dto

type CreateCategoryInput struct {
	StoreID     string
	ParentID    *string
	Name        string
	Description string
	ImageURL    string
	SortOrder   int
}

type UpdateCategoryInput struct {
	ID          string
	StoreID     string
	ParentID    *string
	Name        string
	Description string
	ImageURL    string
	SortOrder   int
	IsActive    bool
}
