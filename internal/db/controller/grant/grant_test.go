package grant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/GoSociety-Admin/GoSociety-Admin/internal/access"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.Role{},
		&models.Action{},
		&models.Menu{},
		&models.RoleMenuAction{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedAccessControl inserts a small role/menu/action fixture.
func seedAccessControl(t *testing.T, db *gorm.DB) {
	t.Helper()

	fixtures := []any{
		&models.Role{ID: 1, Name: "Administrator"},
		&models.Role{ID: 2, Name: "Resident"},
		&models.Action{ID: 1, Name: "View"},
		&models.Action{ID: 2, Name: "Add"},
		&models.Action{ID: 3, Name: "GeneratePaymentPlan"},
		&models.Menu{ID: 1, ParentID: 0, Name: "Dashboard", URL: "/dashboard", Position: 1},
		&models.Menu{ID: 2, ParentID: 0, Name: "System Management", URL: "/system-management", Position: 2},
		&models.Menu{ID: 3, ParentID: 2, Name: "Users", URL: "/system-management?tab=users", Position: 1},
		&models.Menu{ID: 4, ParentID: 0, Name: "Rate Plans", URL: "/rate-plans", Position: 3},
	}

	for _, f := range fixtures {
		require.NoError(t, db.Create(f).Error, "failed to seed fixture")
	}
}

func seedGrants(t *testing.T, db *gorm.DB, grants []models.RoleMenuAction) {
	t.Helper()

	for _, g := range grants {
		require.NoError(t, db.Create(&g).Error, "failed to seed grant")
	}
}

func TestFlatRowsForRole(t *testing.T) {
	db := setupTestDB(t)
	seedAccessControl(t, db)
	seedGrants(t, db, []models.RoleMenuAction{
		{RoleID: 1, MenuID: 1, ActionID: 1},
		{RoleID: 1, MenuID: 4, ActionID: 1},
		{RoleID: 1, MenuID: 4, ActionID: 3},
	})

	rows, err := FlatRowsForRole(db, 1)
	require.NoError(t, err)

	// one row per granted menu only
	require.Len(t, rows, 2)

	dashboard := rows[0]
	assert.Equal(t, "/dashboard", dashboard[access.FieldMenuURL])
	assert.Equal(t, "Administrator", dashboard[access.FieldRoleName])
	assert.Equal(t, 1, dashboard["CanView"])
	assert.Equal(t, 0, dashboard["CanAdd"])
	assert.Equal(t, 0, dashboard["CanGeneratePaymentPlan"])

	ratePlans := rows[1]
	assert.Equal(t, "/rate-plans", ratePlans[access.FieldMenuURL])
	assert.Equal(t, 1, ratePlans["CanView"])
	assert.Equal(t, 1, ratePlans["CanGeneratePaymentPlan"])
}

func TestFlatRowsForRole_FeedsPermissionMap(t *testing.T) {
	db := setupTestDB(t)
	seedAccessControl(t, db)
	seedGrants(t, db, []models.RoleMenuAction{
		{RoleID: 2, MenuID: 1, ActionID: 1},
	})

	rows, err := FlatRowsForRole(db, 2)
	require.NoError(t, err)

	m := access.BuildPermissionMap(rows)

	assert.True(t, m.Has("/dashboard", "CanView"))
	assert.False(t, m.Has("/dashboard", "CanAdd"))
	assert.False(t, m.Has("/rate-plans", "CanView"))
}

func TestFlatRowsForRole_Errors(t *testing.T) {
	db := setupTestDB(t)
	seedAccessControl(t, db)

	_, err := FlatRowsForRole(nil, 1)
	require.ErrorIs(t, err, ErrDBNil)

	_, err = FlatRowsForRole(db, 99)
	require.ErrorIs(t, err, ErrRoleNotFound)
}

func TestMenusForRole_IncludesParentOfGrantedChild(t *testing.T) {
	db := setupTestDB(t)
	seedAccessControl(t, db)
	seedGrants(t, db, []models.RoleMenuAction{
		// grant only on the Users sub-item
		{RoleID: 2, MenuID: 3, ActionID: 1},
	})

	menus, err := MenusForRole(db, 2)
	require.NoError(t, err)
	require.Len(t, menus, 2)

	// the ungranted parent is pulled in, so the tree still builds
	tree := access.BuildMenuTree(menus)
	require.Len(t, tree, 1)
	assert.Equal(t, "System Management", tree[0].Title)
	require.Len(t, tree[0].SubItems, 1)
	assert.Equal(t, "Users", tree[0].SubItems[0].Title)
}

func TestReplaceForRole(t *testing.T) {
	db := setupTestDB(t)
	seedAccessControl(t, db)
	seedGrants(t, db, []models.RoleMenuAction{
		{RoleID: 1, MenuID: 1, ActionID: 1},
		{RoleID: 1, MenuID: 1, ActionID: 2},
		{RoleID: 2, MenuID: 1, ActionID: 1},
	})

	err := ReplaceForRole(db, 1, []models.RoleMenuAction{
		{RoleID: 1, MenuID: 4, ActionID: 1},
	})
	require.NoError(t, err)

	replaced, err := ListForRole(db, 1)
	require.NoError(t, err)
	require.Len(t, replaced, 1)
	assert.Equal(t, uint(4), replaced[0].MenuID)

	// other roles untouched
	other, err := ListForRole(db, 2)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestReplaceForRole_RejectsForeignGrants(t *testing.T) {
	db := setupTestDB(t)
	seedAccessControl(t, db)

	err := ReplaceForRole(db, 1, []models.RoleMenuAction{
		{RoleID: 2, MenuID: 1, ActionID: 1},
	})
	require.ErrorIs(t, err, ErrGrantRoleMismatch)
}

func TestReplaceForRole_EmptySetRevokesEverything(t *testing.T) {
	db := setupTestDB(t)
	seedAccessControl(t, db)
	seedGrants(t, db, []models.RoleMenuAction{
		{RoleID: 1, MenuID: 1, ActionID: 1},
	})

	require.NoError(t, ReplaceForRole(db, 1, nil))

	grants, err := ListForRole(db, 1)
	require.NoError(t, err)
	assert.Empty(t, grants)
}
