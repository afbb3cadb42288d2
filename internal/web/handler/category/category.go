// Package category provides CRUD endpoints for plot and expense categories.
package category

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

const (
	// Path is the base path for category management.
	Path = "/management-panel/categories"

	// QueryKind filters the listing by category kind (plot or expense).
	QueryKind = "kind"
)

// Service provides CRUD operations for categories.
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

// List returns categories, optionally filtered by kind.
func (s *Service) List(c *fiber.Ctx) error {
	query := s.db.Model(&models.Category{})

	if kind := c.Query(QueryKind); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var categories []models.Category
	if err := query.Order("kind, name").Find(&categories).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load categories")
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"categories":      categories,
	})
}

// Create adds a new category.
func (s *Service) Create(c *fiber.Ctx) error {
	category := new(models.Category)

	if err := c.BodyParser(category); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if category.Kind == "" {
		category.Kind = "plot"
	}

	if err := s.validator.Struct(category); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	category.ID = 0

	if err := s.db.Create(category).Error; err != nil {
		return fail(c, fiber.StatusConflict, "Failed to create category (possibly duplicate name)")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"category":        category,
	})
}

// Update edits an existing category.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	var existing models.Category
	if err := s.db.First(&existing, id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Category not found")
	}

	category := new(models.Category)
	if err := c.BodyParser(category); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if category.Kind == "" {
		category.Kind = existing.Kind
	}

	if err := s.validator.Struct(category); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	category.ID = existing.ID

	if err := s.db.Save(category).Error; err != nil {
		return fail(c, fiber.StatusConflict, "Failed to update category")
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"category":        category,
	})
}

// Delete removes a category. Categories still referenced by plots or
// expenses are refused.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	var plots, expenses int64
	if err := s.db.Model(&models.Plot{}).Where("category_id = ?", id).Count(&plots).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to delete category")
	}
	if err := s.db.Model(&models.Expense{}).Where("category_id = ?", id).Count(&expenses).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to delete category")
	}
	if plots > 0 || expenses > 0 {
		return fail(c, fiber.StatusConflict, "Category is still in use")
	}

	result := s.db.Delete(&models.Category{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("failed to delete category")
		return fail(c, fiber.StatusInternalServerError, "Failed to delete category")
	}

	if result.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Category not found")
	}

	return c.JSON(fiber.Map{handler.StatusKey: handler.StatusOK})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		handler.StatusKey:  handler.StatusError,
		handler.MessageKey: message,
	})
}
