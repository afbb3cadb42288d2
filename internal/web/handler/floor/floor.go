// Package floor provides CRUD endpoints for floor configurations.
package floor

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoSociety-Admin/GoSociety-Admin/internal/access"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/config"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/db/models"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/handler"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/middleware/guard"
)

// Path is the base path for floor management. It lives under the
// management panel in the sidebar, so the guard resolves it by prefix.
const Path = "/management-panel/floors"

// Service provides CRUD operations for floors.
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

// List returns all floors.
func (s *Service) List(c *fiber.Ctx) error {
	var floors []models.Floor
	if err := s.db.Order("name").Find(&floors).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load floors")
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"floors":          floors,
	})
}

// Create adds a new floor.
func (s *Service) Create(c *fiber.Ctx) error {
	floor := new(models.Floor)

	if err := c.BodyParser(floor); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(floor); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	floor.ID = 0

	if err := s.db.Create(floor).Error; err != nil {
		return fail(c, fiber.StatusConflict, "Failed to create floor (possibly duplicate name)")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"floor":           floor,
	})
}

// Update edits an existing floor.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	var existing models.Floor
	if err := s.db.First(&existing, id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Floor not found")
	}

	floor := new(models.Floor)
	if err := c.BodyParser(floor); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(floor); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	floor.ID = existing.ID

	if err := s.db.Save(floor).Error; err != nil {
		return fail(c, fiber.StatusConflict, "Failed to update floor")
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"floor":           floor,
	})
}

// Delete removes a floor.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	var count int64
	if err := s.db.Model(&models.Plot{}).Where("floor_id = ?", id).Count(&count).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to delete floor")
	}
	if count > 0 {
		return fail(c, fiber.StatusConflict, "Floor is still referenced by plots")
	}

	result := s.db.Delete(&models.Floor{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("failed to delete floor")
		return fail(c, fiber.StatusInternalServerError, "Failed to delete floor")
	}

	if result.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Floor not found")
	}

	return c.JSON(fiber.Map{handler.StatusKey: handler.StatusOK})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		handler.StatusKey:  handler.StatusError,
		handler.MessageKey: message,
	})
}
