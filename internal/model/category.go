package model

type Category struct {
	BaseModel
	StoreID     string     `db:"store_id" json:"store_id"`
	ParentID    *string    `db:"parent_id" json:"parent_id"` // Nullable
	Name        string     `db:"name" json:"name"`
	Description *string    `db:"description" json:"description"`
	ImageURL    *string    `db:"image_url" json:"image_url"`
	SortOrder   int        `db:"sort_order" json:"sort_order"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	Children    []Category `db:"-" json:"children,omitempty"` // For tree structure, not in DB
}
