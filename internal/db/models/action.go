package models

import "time"

// Action represents a named capability that can be granted at a menu
// (View, Add, Edit, Delete, or a custom domain action such as
// GeneratePaymentPlan). Actions are immutable once referenced by grants.
type Action struct {
	// ID is the unique identifier for the action.
	ID uint `gorm:"primaryKey" json:"ActionID"`
	// Name is the unique action name (e.g., "View", "GeneratePaymentPlan").
	Name string `gorm:"unique;size:100;not null" json:"ActionName" validate:"required,max=100"`
	// Description provides a human-readable explanation of what this action allows.
	Description string `gorm:"size:255" json:"Description"`
	// CreatedAt is the timestamp when the action was created (managed by GORM).
	CreatedAt time.Time `json:"-"`
}

// TableName specifies the database table name for the Action model.
func (Action) TableName() string {
	return "actions"
}

// ColumnName returns the flattened grant row column for this action, the
// Can-prefixed form the permission map is keyed with ("View" -> "CanView").
func (a Action) ColumnName() string {
	return "Can" + a.Name
}
