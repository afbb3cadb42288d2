package role

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/GoSociety-Admin/GoSociety-Admin/internal/access"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/config"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/db/controller/grant"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/db/models"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/session"
)

const adminSessionID = "test-session-admin"

// setupApp builds a fiber app with the role handler over an in-memory
// database and plants an administrator session.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.Action{},
		&models.Menu{},
		&models.RoleMenuAction{},
		&models.User{},
	), "failed to migrate test database")

	fixtures := []any{
		&models.Role{ID: 1, Name: "Administrator", IsSystem: true},
		&models.Role{ID: 2, Name: "Resident"},
		&models.Action{ID: 1, Name: "View"},
		&models.Action{ID: 2, Name: "Add"},
		&models.Menu{ID: 1, Name: "Dashboard", URL: "/dashboard", Position: 1},
		&models.Menu{ID: 2, Name: "Plots", URL: "/plots", Position: 2},
	}
	for _, f := range fixtures {
		require.NoError(t, db.Create(f).Error, "failed to seed fixture")
	}

	session.Init(memory.New())

	grants := []access.GrantRow{{
		access.FieldMenuURL: Path,
		access.ActionView:   1,
		access.ActionAdd:    1,
		access.ActionEdit:   1,
		access.ActionDelete: 1,
	}}

	data := session.Data{
		User:   models.User{ID: 9, Active: true, Username: "tester", RoleID: 1},
		Access: access.NewSession(nil, grants),
	}
	require.NoError(t, data.Write(adminSessionID, 0))

	cfg := &config.Config{}
	cfg.Webserver.Port = 8080
	cfg.Webserver.URL = "http://localhost:8080"

	app := fiber.New()
	require.NoError(t, Handler.Init(app, cfg, db))

	return app, db
}

func request(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: adminSessionID})

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

// A matrix cell submitted with IsAllowed 0 is a denial and must end up as
// absence in the store, never as a stored allow.
func TestReplaceGrants_DeniedCellsAreNotStored(t *testing.T) {
	app, db := setupApp(t)

	body := `{"RoleMenuActions":[
		{"RoleID":2,"MenuID":1,"ActionID":1,"IsAllowed":1},
		{"RoleID":2,"MenuID":1,"ActionID":2,"IsAllowed":0},
		{"RoleID":2,"MenuID":2,"ActionID":1,"IsAllowed":0},
		{"RoleID":2,"MenuID":2,"ActionID":2,"IsAllowed":0}
	]}`

	resp := request(t, app, fiber.MethodPut, Path+"/2/grants", body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	stored, err := grant.ListForRole(db, 2)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, uint(1), stored[0].MenuID)
	assert.Equal(t, uint(1), stored[0].ActionID)

	rows, err := grant.FlatRowsForRole(db, 2)
	require.NoError(t, err)

	m := access.BuildPermissionMap(rows)
	assert.True(t, m.Has("/dashboard", "CanView"))
	assert.False(t, m.Has("/dashboard", "CanAdd"))
	assert.False(t, m.Has("/plots", "CanView"))
}

func TestReplaceGrants_AllDeniedRevokesEverything(t *testing.T) {
	app, db := setupApp(t)

	require.NoError(t, db.Create(&models.RoleMenuAction{RoleID: 2, MenuID: 1, ActionID: 1}).Error)

	body := `{"RoleMenuActions":[
		{"RoleID":2,"MenuID":1,"ActionID":1,"IsAllowed":0}
	]}`

	resp := request(t, app, fiber.MethodPut, Path+"/2/grants", body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	stored, err := grant.ListForRole(db, 2)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestReplaceGrants_RejectsForeignRows(t *testing.T) {
	app, db := setupApp(t)

	body := `{"RoleMenuActions":[
		{"RoleID":1,"MenuID":1,"ActionID":1,"IsAllowed":0}
	]}`

	resp := request(t, app, fiber.MethodPut, Path+"/2/grants", body)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	stored, err := grant.ListForRole(db, 1)
	require.NoError(t, err)
	assert.Empty(t, stored)
}
