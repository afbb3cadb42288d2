// Package plot provides the plots CRUD endpoints.
package plot

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
	// Path is the base path for plot management.
	Path = "/plots"

	// DefaultPageSize for pagination.
	DefaultPageSize = 25
	// MaxPageSize clamps the page size upper bound.
	MaxPageSize = 100

	// QueryPage is the query parameter name for the current page index.
	QueryPage = "page"
	// QueryPageSize is the query parameter name for the page size.
	QueryPageSize = "pageSize"
	// QuerySearch is the query parameter name for the search term.
	QuerySearch = "search"
)

// Service provides CRUD operations for plots.
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

// List returns plots with simple pagination and search.
func (s *Service) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query(QueryPage, "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.Query(QueryPageSize, strconv.Itoa(DefaultPageSize)))
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}

	query := s.db.Model(&models.Plot{})

	if search := c.Query(QuerySearch); search != "" {
		term := "%" + search + "%"
		query = query.Where("number LIKE ? OR owner_name LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load plots")
	}

	var plots []models.Plot
	if err := query.Order("number").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&plots).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load plots")
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"plots":           plots,
		"total":           total,
		"page":            page,
		"pageSize":        pageSize,
	})
}

// Create adds a new plot.
func (s *Service) Create(c *fiber.Ctx) error {
	plot := new(models.Plot)

	if err := c.BodyParser(plot); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(plot); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	plot.ID = 0

	if err := s.db.Create(plot).Error; err != nil {
		log.Error().Err(err).Msg("failed to create plot")
		return fail(c, fiber.StatusConflict, "Failed to create plot (possibly duplicate number)")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"plot":            plot,
	})
}

// Update edits an existing plot.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	var existing models.Plot
	if err := s.db.First(&existing, id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Plot not found")
	}

	plot := new(models.Plot)
	if err := c.BodyParser(plot); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(plot); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	plot.ID = existing.ID

	if err := s.db.Save(plot).Error; err != nil {
		log.Error().Err(err).Msg("failed to update plot")
		return fail(c, fiber.StatusConflict, "Failed to update plot (check uniqueness constraints)")
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"plot":            plot,
	})
}

// Delete removes a plot.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	result := s.db.Delete(&models.Plot{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("failed to delete plot")
		return fail(c, fiber.StatusInternalServerError, "Failed to delete plot")
	}

	if result.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Plot not found")
	}

	return c.JSON(fiber.Map{handler.StatusKey: handler.StatusOK})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		handler.StatusKey:  handler.StatusError,
		handler.MessageKey: message,
	})
}
