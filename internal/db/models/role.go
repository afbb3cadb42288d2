package models

import "time"

// Role represents a named group of users in the access-control system.
// A user is assigned exactly one role; the role's grants decide which menus
// and actions the user may reach.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey" json:"RoleID"`
	// Name is the unique name of the role (e.g., "Administrator", "Resident").
	Name string `gorm:"unique;size:100;not null" json:"RoleName" validate:"required,max=100"`
	// Description provides a human-readable description of the role's purpose.
	Description string `gorm:"size:255" json:"Description"`
	// IsSystem indicates if this is a system role that cannot be deleted.
	IsSystem bool `gorm:"default:false" json:"IsSystem"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time `json:"-"`
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}
