package access

// Action name constants for the built-in capability vocabulary.
// The vocabulary is open-ended: any Can-prefixed column on a grant row
// becomes a checkable action without code changes. These constants only
// name the actions the application itself checks against.
const (
	// ActionView allows viewing a menu's screen and data.
	ActionView = "CanView"
	// ActionAdd allows creating records on a menu's screen.
	ActionAdd = "CanAdd"
	// ActionEdit allows editing records on a menu's screen.
	ActionEdit = "CanEdit"
	// ActionDelete allows deleting records on a menu's screen.
	ActionDelete = "CanDelete"
	// ActionGeneratePaymentPlan allows generating a payment plan from a rate plan.
	ActionGeneratePaymentPlan = "CanGeneratePaymentPlan"
	// ActionViewPaymentPlan allows viewing a previously generated payment plan.
	ActionViewPaymentPlan = "CanViewPaymentPlan"
)

// TopLevelParentID marks a menu record without a parent.
const TopLevelParentID = 0

// MenuRecord is one row of the flat menu snapshot delivered for a role.
type MenuRecord struct {
	// MenuID is the menu's unique identifier.
	MenuID uint `json:"MenuID"`
	// ParentMenuID references the parent menu; TopLevelParentID means top-level.
	ParentMenuID uint `json:"ParentMenuID"`
	// MenuName is the display name.
	MenuName string `json:"MenuName"`
	// MenuURL is the navigable path; empty for pure container menus.
	MenuURL string `json:"MenuURL"`
	// Icon is the sidebar icon class.
	Icon string `json:"Icon"`
	// Position orders siblings; lower values render first.
	Position int `json:"Position"`
	// RoleID is the role this snapshot row was flattened for.
	RoleID uint `json:"RoleID"`
}

// SubMenuItem is a second-level entry of the derived menu tree.
type SubMenuItem struct {
	Path       string `json:"Path"`
	Title      string `json:"Title"`
	Icon       string `json:"Icon"`
	Permission string `json:"Permission"`
}

// MenuItem is a top-level entry of the derived menu tree.
type MenuItem struct {
	Path       string        `json:"Path"`
	Title      string        `json:"Title"`
	Icon       string        `json:"Icon"`
	Permission string        `json:"Permission"`
	SubItems   []SubMenuItem `json:"SubItems,omitempty"`
}

// GrantRow is one flattened grant row for a role: the reserved identity
// fields plus one numeric column per action (e.g. "CanView": 1). Modeled as
// a map so the action vocabulary stays open-ended; any column that is not a
// reserved identity field is treated as an action.
type GrantRow map[string]any

// Reserved identity field names on a GrantRow. Everything else is an action.
const (
	FieldMenuURL      = "MenuURL"
	FieldRoleID       = "RoleID"
	FieldRoleName     = "RoleName"
	FieldMenuID       = "MenuID"
	FieldMenuName     = "MenuName"
	FieldParentMenuID = "ParentMenuID"
)

// reservedFields is the set of GrantRow keys that never become actions.
var reservedFields = map[string]struct{}{
	FieldMenuURL:      {},
	FieldRoleID:       {},
	FieldRoleName:     {},
	FieldMenuID:       {},
	FieldMenuName:     {},
	FieldParentMenuID: {},
}

// isReservedField reports whether the given grant row key is an identity
// field rather than an action column.
func isReservedField(name string) bool {
	_, ok := reservedFields[name]
	return ok
}
