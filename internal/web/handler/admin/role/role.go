// Package role provides handlers for managing roles and their grants in
// the system management area. The grants endpoints replace a role's whole
// grant set at once; sessions created before the change keep their old
// snapshot until the next login.
package role

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoSociety-Admin/GoSociety-Admin/internal/access"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/config"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/db/controller/grant"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/db/models"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/handler"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/middleware/guard"
)

// Path is the base path for role management.
const Path = "/system-management/roles"

// grantEntry is one cell of the submitted grant matrix. IsAllowed follows
// the 1/0 convention of the flattened grant rows; only allowed cells are
// persisted, so absence in the store keeps meaning denied.
type grantEntry struct {
	RoleID    uint `json:"RoleID"`
	MenuID    uint `json:"MenuID"`
	ActionID  uint `json:"ActionID"`
	IsAllowed int  `json:"IsAllowed"`
}

// grantsUpdate is the body of the grants replace endpoint.
type grantsUpdate struct {
	RoleMenuActions []grantEntry `json:"RoleMenuActions"`
}

// Service provides CRUD operations for roles and their grants.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return nil
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()

	app.Get(Path, guard.RequireAction(cfg, access.ActionView), s.List)
	app.Post(Path, guard.RequireAction(cfg, access.ActionAdd), s.Create)
	app.Put(Path+"/:id", guard.RequireAction(cfg, access.ActionEdit), s.Update)
	app.Delete(Path+"/:id", guard.RequireAction(cfg, access.ActionDelete), s.Delete)

	app.Get(Path+"/:id/grants", guard.RequireAction(cfg, access.ActionView), s.Grants)
	app.Put(Path+"/:id/grants", guard.RequireAction(cfg, access.ActionEdit), s.ReplaceGrants)

	return nil
}

// List returns all roles.
func (s *Service) List(c *fiber.Ctx) error {
	var roles []models.Role
	if err := s.db.Order("name").Find(&roles).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load roles")
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"roles":           roles,
	})
}

// Create adds a new role.
func (s *Service) Create(c *fiber.Ctx) error {
	role := new(models.Role)

	if err := c.BodyParser(role); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(role); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	role.ID = 0
	role.IsSystem = false

	if err := s.db.Create(role).Error; err != nil {
		return fail(c, fiber.StatusConflict, "Failed to create role (possibly duplicate name)")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"role":            role,
	})
}

// Update edits a role's name and description. The IsSystem flag is kept
// from the stored record.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	var existing models.Role
	if err := s.db.First(&existing, id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Role not found")
	}

	role := new(models.Role)
	if err := c.BodyParser(role); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(role); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	role.ID = existing.ID
	role.IsSystem = existing.IsSystem
	role.CreatedAt = existing.CreatedAt

	if err := s.db.Save(role).Error; err != nil {
		return fail(c, fiber.StatusConflict, "Failed to update role")
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"role":            role,
	})
}

// Delete removes a role. System roles and roles still assigned to users
// are refused; grants cascade with the role.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	var role models.Role
	if err := s.db.First(&role, id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Role not found")
	}

	if role.IsSystem {
		return fail(c, fiber.StatusConflict, "System roles cannot be deleted")
	}

	var users int64
	if err := s.db.Model(&models.User{}).Where("role_id = ?", id).Count(&users).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to delete role")
	}
	if users > 0 {
		return fail(c, fiber.StatusConflict, "Role is still assigned to users")
	}

	if err := s.db.Delete(&role).Error; err != nil {
		log.Error().Err(err).Msg("failed to delete role")
		return fail(c, fiber.StatusInternalServerError, "Failed to delete role")
	}

	return c.JSON(fiber.Map{handler.StatusKey: handler.StatusOK})
}

// Grants returns the role's grant rows together with all menus and actions,
// so the grant matrix can be rendered in one round trip.
func (s *Service) Grants(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	grants, err := grant.ListForRole(s.db, uint(id))
	if err != nil {
		if errors.Is(err, grant.ErrRoleNotFound) {
			return fail(c, fiber.StatusNotFound, "Role not found")
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to load grants")
	}

	var menus []models.Menu
	if err := s.db.Order("position, id").Find(&menus).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load grants")
	}

	var actions []models.Action
	if err := s.db.Order("id").Find(&actions).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load grants")
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"grants":          grants,
		"menus":           menus,
		"actions":         actions,
	})
}

// ReplaceGrants swaps the role's entire grant set in one transaction.
func (s *Service) ReplaceGrants(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	update := new(grantsUpdate)
	if err := c.BodyParser(update); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	grants := make([]models.RoleMenuAction, 0, len(update.RoleMenuActions))

	for _, entry := range update.RoleMenuActions {
		if entry.RoleID != uint(id) {
			return fail(c, fiber.StatusBadRequest, "Grant rows must all belong to the role")
		}

		if entry.IsAllowed != 1 {
			continue
		}

		grants = append(grants, models.RoleMenuAction{
			RoleID:   entry.RoleID,
			MenuID:   entry.MenuID,
			ActionID: entry.ActionID,
		})
	}

	if err := grant.ReplaceForRole(s.db, uint(id), grants); err != nil {
		switch {
		case errors.Is(err, grant.ErrRoleNotFound):
			return fail(c, fiber.StatusNotFound, "Role not found")
		case errors.Is(err, grant.ErrGrantRoleMismatch):
			return fail(c, fiber.StatusBadRequest, "Grant rows must all belong to the role")
		default:
			log.Error().Err(err).Uint64("role_id", id).Msg("failed to replace grants")
			return fail(c, fiber.StatusInternalServerError, "Failed to replace grants")
		}
	}

	log.Info().Uint64("role_id", id).Int("grants", len(grants)).
		Msg("role grants replaced")

	return c.JSON(fiber.Map{handler.StatusKey: handler.StatusOK})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		handler.StatusKey:  handler.StatusError,
		handler.MessageKey: message,
	})
}
