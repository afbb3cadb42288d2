// Package grant provides access to the role-menu-action grant store and the
// flattened per-role snapshots the permission core is built from.
package grant

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoSociety-Admin/GoSociety-Admin/internal/access"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrRoleNotFound is returned when the role does not exist.
	ErrRoleNotFound = errors.New("role not found")
	// ErrGrantRoleMismatch is returned when a bulk replace payload carries a
	// grant for a different role than the one being replaced.
	ErrGrantRoleMismatch = errors.New("grant row does not belong to the role being replaced")
)

// ListForRole returns the raw grant rows of one role.
func ListForRole(db *gorm.DB, roleID uint) ([]models.RoleMenuAction, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var grants []models.RoleMenuAction

	result := db.Where("role_id = ?", roleID).Find(&grants)
	if result.Error != nil {
		return nil, result.Error
	}

	return grants, nil
}

// FlatRowsForRole flattens a role's grants into one row per granted menu:
// the identity fields plus a Can<Action> column per known action, 1 where a
// grant row exists and 0 where it does not. The action vocabulary comes from
// the actions table, so a new action becomes a new column without code
// changes. Menus the role holds no grant on are omitted entirely
// (absence = denied).
func FlatRowsForRole(db *gorm.DB, roleID uint) ([]access.GrantRow, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var role models.Role
	if err := db.First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}

		return nil, err
	}

	var actions []models.Action
	if err := db.Order("id").Find(&actions).Error; err != nil {
		return nil, err
	}

	var menus []models.Menu
	if err := db.Order("position, id").Find(&menus).Error; err != nil {
		return nil, err
	}

	grants, err := ListForRole(db, roleID)
	if err != nil {
		return nil, err
	}

	// granted[menuID][actionID]
	granted := make(map[uint]map[uint]bool, len(menus))
	for _, g := range grants {
		if granted[g.MenuID] == nil {
			granted[g.MenuID] = make(map[uint]bool)
		}

		granted[g.MenuID][g.ActionID] = true
	}

	rows := make([]access.GrantRow, 0, len(granted))

	for _, menu := range menus {
		menuGrants := granted[menu.ID]
		if menuGrants == nil {
			continue
		}

		row := access.GrantRow{
			access.FieldRoleID:       role.ID,
			access.FieldRoleName:     role.Name,
			access.FieldMenuID:       menu.ID,
			access.FieldMenuName:     menu.Name,
			access.FieldMenuURL:      menu.URL,
			access.FieldParentMenuID: menu.ParentID,
		}

		for _, action := range actions {
			value := 0
			if menuGrants[action.ID] {
				value = 1
			}

			row[action.ColumnName()] = value
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// MenusForRole returns the flat menu snapshot for a role: every menu the
// role holds at least one grant on, plus the parents of granted sub-items so
// the tree builder finds them. Order follows sidebar position.
func MenusForRole(db *gorm.DB, roleID uint) ([]access.MenuRecord, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var menus []models.Menu
	if err := db.Order("position, id").Find(&menus).Error; err != nil {
		return nil, err
	}

	grants, err := ListForRole(db, roleID)
	if err != nil {
		return nil, err
	}

	grantedMenus := make(map[uint]bool, len(grants))
	for _, g := range grants {
		grantedMenus[g.MenuID] = true
	}

	// pull in parents of granted children
	byID := make(map[uint]models.Menu, len(menus))
	for _, m := range menus {
		byID[m.ID] = m
	}

	include := make(map[uint]bool, len(grantedMenus))
	for id := range grantedMenus {
		include[id] = true

		if m, ok := byID[id]; ok && m.ParentID != access.TopLevelParentID {
			include[m.ParentID] = true
		}
	}

	records := make([]access.MenuRecord, 0, len(include))

	for _, m := range menus {
		if !include[m.ID] {
			continue
		}

		records = append(records, access.MenuRecord{
			MenuID:       m.ID,
			ParentMenuID: m.ParentID,
			MenuName:     m.Name,
			MenuURL:      m.URL,
			Icon:         m.Icon,
			Position:     m.Position,
			RoleID:       roleID,
		})
	}

	return records, nil
}

// ReplaceForRole replaces the full grant set of one role inside a single
// transaction. Partial updates are not supported; the admin screen always
// resubmits the complete set, which keeps derived client state impossible to
// drift from the store.
func ReplaceForRole(db *gorm.DB, roleID uint, grants []models.RoleMenuAction) error {
	if db == nil {
		return ErrDBNil
	}

	for _, g := range grants {
		if g.RoleID != roleID {
			return ErrGrantRoleMismatch
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&models.RoleMenuAction{}).Error; err != nil {
			return err
		}

		for _, g := range grants {
			if err := tx.Create(&g).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
