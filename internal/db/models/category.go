package models

import "time"

// Category classifies plots and expenses (e.g., "Residential", "Commercial"
// for plots; "Maintenance", "Security" for expenses).
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"CategoryID"`
	Name string `gorm:"size:100;not null;uniqueIndex:idx_category_name_kind" json:"CategoryName" validate:"required,max=100"`
	// Kind separates plot categories from expense categories in one table.
	Kind      string    `gorm:"size:20;not null;default:'plot';uniqueIndex:idx_category_name_kind" json:"Kind" validate:"omitempty,oneof=plot expense"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the database table name for the Category model.
func (Category) TableName() string {
	return "categories"
}
