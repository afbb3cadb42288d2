package models

// RoleMenuAction is one grant: members of the role may perform the action at
// the menu. Presence of a row means allowed; absence means denied. At most
// one row exists per (RoleID, MenuID, ActionID) combination.
// When a role, menu or action is deleted its grants are removed (CASCADE).
type RoleMenuAction struct {
	// RoleID is the ID of the role in this grant.
	RoleID uint `gorm:"primaryKey;column:role_id" json:"RoleID" validate:"required"`
	// MenuID is the ID of the menu in this grant.
	MenuID uint `gorm:"primaryKey;column:menu_id" json:"MenuID" validate:"required"`
	// ActionID is the ID of the action in this grant.
	ActionID uint `gorm:"primaryKey;column:action_id" json:"ActionID" validate:"required"`
	// Role is the associated role (loaded via foreign key).
	Role Role `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE" json:"-"`
	// Menu is the associated menu (loaded via foreign key).
	Menu Menu `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE" json:"-"`
	// Action is the associated action (loaded via foreign key).
	Action Action `gorm:"foreignKey:ActionID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the database table name for the RoleMenuAction model.
func (RoleMenuAction) TableName() string {
	return "role_menu_actions"
}
