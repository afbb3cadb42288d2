// Package menu provides CRUD operations for the menu tree records.
package menu

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoSociety-Admin/GoSociety-Admin/internal/access"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/db/models"
)

var (
	// ErrMenuNotFound is returned when a menu is not found.
	ErrMenuNotFound = errors.New("menu not found")
	// ErrMenuNameEmpty is returned when attempting to create/update a menu with an empty name.
	ErrMenuNameEmpty = errors.New("menu name cannot be empty")
	// ErrMenuTooDeep is returned when the parent is itself a sub-item; the
	// menu forest never nests deeper than two levels.
	ErrMenuTooDeep = errors.New("menus cannot nest deeper than two levels")
	// ErrParentNotFound is returned when the referenced parent menu does not exist.
	ErrParentNotFound = errors.New("parent menu not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByID retrieves a menu by its ID.
func GetByID(db *gorm.DB, id uint) (*models.Menu, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var menu models.Menu
	result := db.First(&menu, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, result.Error
	}

	return &menu, nil
}

// GetAll retrieves all menus in sidebar order.
func GetAll(db *gorm.DB) ([]models.Menu, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var menus []models.Menu
	result := db.Order("position, id").Find(&menus)
	if result.Error != nil {
		return nil, result.Error
	}

	return menus, nil
}

// Create creates a new menu, enforcing the two-level depth invariant.
func Create(db *gorm.DB, menu *models.Menu) error {
	if db == nil {
		return ErrDBNil
	}
	if menu.Name == "" {
		return ErrMenuNameEmpty
	}

	if err := checkParent(db, menu.ParentID); err != nil {
		return err
	}

	return db.Create(menu).Error
}

// Update updates an existing menu.
func Update(db *gorm.DB, menu *models.Menu) error {
	if db == nil {
		return ErrDBNil
	}
	if menu.Name == "" {
		return ErrMenuNameEmpty
	}

	if err := checkParent(db, menu.ParentID); err != nil {
		return err
	}

	var existing models.Menu
	if err := db.First(&existing, menu.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMenuNotFound
		}
		return err
	}

	return db.Save(menu).Error
}

// Delete removes a menu. Grants referencing it go with it (CASCADE); child
// menus become orphans, which the tree builder silently drops.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Menu{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMenuNotFound
	}

	return nil
}

// checkParent validates the parent reference for the depth-two invariant.
func checkParent(db *gorm.DB, parentID uint) error {
	if parentID == access.TopLevelParentID {
		return nil
	}

	var parent models.Menu
	if err := db.First(&parent, parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParentNotFound
		}
		return err
	}

	if parent.ParentID != access.TopLevelParentID {
		return ErrMenuTooDeep
	}

	return nil
}
