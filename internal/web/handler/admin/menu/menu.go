// Package menu provides handlers for managing sidebar menus in the
// system management area.
package menu

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoSociety-Admin/GoSociety-Admin/internal/access"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/config"
	menuctl "github.com/GoSociety-Admin/GoSociety-Admin/internal/db/controller/menu"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/db/models"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/handler"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/middleware/guard"
)

// Path is the base path for menu management.
const Path = "/system-management/menus"

// Service provides CRUD operations for menus.
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

	return nil
}

// List returns all menus in sidebar order.
func (s *Service) List(c *fiber.Ctx) error {
	menus, err := menuctl.GetAll(s.db)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load menus")
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"menus":           menus,
	})
}

// Create adds a new menu.
func (s *Service) Create(c *fiber.Ctx) error {
	menu := new(models.Menu)

	if err := c.BodyParser(menu); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(menu); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	menu.ID = 0

	if err := menuctl.Create(s.db, menu); err != nil {
		return menuError(c, err, "Failed to create menu")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"menu":            menu,
	})
}

// Update edits an existing menu.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	menu := new(models.Menu)
	if err := c.BodyParser(menu); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(menu); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	menu.ID = uint(id)

	if err := menuctl.Update(s.db, menu); err != nil {
		return menuError(c, err, "Failed to update menu")
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"menu":            menu,
	})
}

// Delete removes a menu. Its grants cascade; child menus are orphaned and
// disappear from the sidebar until re-parented.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	if err := menuctl.Delete(s.db, uint(id)); err != nil {
		return menuError(c, err, "Failed to delete menu")
	}

	return c.JSON(fiber.Map{handler.StatusKey: handler.StatusOK})
}

// menuError maps controller errors onto HTTP statuses.
func menuError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, menuctl.ErrMenuNotFound):
		return fail(c, fiber.StatusNotFound, "Menu not found")
	case errors.Is(err, menuctl.ErrParentNotFound):
		return fail(c, fiber.StatusBadRequest, "Parent menu not found")
	case errors.Is(err, menuctl.ErrMenuTooDeep):
		return fail(c, fiber.StatusBadRequest, "Menus cannot nest deeper than two levels")
	case errors.Is(err, menuctl.ErrMenuNameEmpty):
		return fail(c, fiber.StatusBadRequest, "Menu name cannot be empty")
	default:
		log.Error().Err(err).Msg("menu operation failed")
		return fail(c, fiber.StatusInternalServerError, fallback)
	}
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		handler.StatusKey:  handler.StatusError,
		handler.MessageKey: message,
	})
}
