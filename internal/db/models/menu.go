package models

import "time"

// Menu represents a navigable location (roughly, a SPA route) in the
// application. Menus form a forest of depth two: top-level items carry
// ParentID 0, sub-items reference their parent's ID. Deeper nesting is not
// supported.
type Menu struct {
	// ID is the unique identifier for the menu.
	ID uint `gorm:"primaryKey" json:"MenuID"`
	// ParentID references the parent menu; 0 means top-level.
	ParentID uint `gorm:"column:parent_id;default:0;index" json:"ParentMenuID"`
	// Name is the display name shown in the sidebar.
	Name string `gorm:"size:100;not null" json:"MenuName" validate:"required,max=100"`
	// URL is the SPA route for this menu, unique per menu. Empty only for
	// pure container parents that exist to group sub-items.
	URL string `gorm:"size:255" json:"MenuURL" validate:"omitempty,max=255"`
	// Icon is the sidebar icon class (e.g., "fa-building").
	Icon string `gorm:"size:50" json:"Icon"`
	// Position orders siblings in the sidebar; lower values render first.
	Position int `gorm:"default:0" json:"Position"`
	// CreatedAt is the timestamp when the menu was created (managed by GORM).
	CreatedAt time.Time `json:"-"`
	// UpdatedAt is the timestamp when the menu was last updated (managed by GORM).
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the database table name for the Menu model.
func (Menu) TableName() string {
	return "menus"
}
