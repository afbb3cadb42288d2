// Package expense provides CRUD endpoints for society expenses.
package expense

import (
	"strconv"
	"time"

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
	// Path is the base path for expense management.
	Path = "/expenses"

	// QueryFrom and QueryTo bound the expense date range (YYYY-MM-DD).
	QueryFrom = "from"
	QueryTo   = "to"
	// QueryCategory filters by expense category id.
	QueryCategory = "categoryId"

	dateLayout = "2006-01-02"
)

// Service provides CRUD operations for expenses.
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

// List returns expenses filtered by date range and category, newest first,
// with the filtered total so the SPA can show a sum without re-fetching.
func (s *Service) List(c *fiber.Ctx) error {
	query := s.db.Model(&models.Expense{})

	if from := c.Query(QueryFrom); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid 'from' date")
		}
		query = query.Where("expense_date >= ?", t)
	}

	if to := c.Query(QueryTo); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid 'to' date")
		}
		query = query.Where("expense_date <= ?", t)
	}

	if catID := c.Query(QueryCategory); catID != "" {
		query = query.Where("category_id = ?", catID)
	}

	var expenses []models.Expense
	if err := query.Order("expense_date DESC, id DESC").Find(&expenses).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load expenses")
	}

	var totalAmount float64
	for _, e := range expenses {
		totalAmount += e.Amount
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"expenses":        expenses,
		"totalAmount":     totalAmount,
	})
}

// Create adds a new expense.
func (s *Service) Create(c *fiber.Ctx) error {
	expense := new(models.Expense)

	if err := c.BodyParser(expense); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(expense); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	var category models.Category
	if err := s.db.Where("id = ? AND kind = ?", expense.CategoryID, "expense").First(&category).Error; err != nil {
		return fail(c, fiber.StatusBadRequest, "Unknown expense category")
	}

	expense.ID = 0

	if err := s.db.Create(expense).Error; err != nil {
		log.Error().Err(err).Msg("failed to create expense")
		return fail(c, fiber.StatusInternalServerError, "Failed to create expense")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"expense":         expense,
	})
}

// Update edits an existing expense.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	var existing models.Expense
	if err := s.db.First(&existing, id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Expense not found")
	}

	expense := new(models.Expense)
	if err := c.BodyParser(expense); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(expense); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	expense.ID = existing.ID

	if err := s.db.Save(expense).Error; err != nil {
		log.Error().Err(err).Msg("failed to update expense")
		return fail(c, fiber.StatusInternalServerError, "Failed to update expense")
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"expense":         expense,
	})
}

// Delete removes an expense.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	result := s.db.Delete(&models.Expense{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("failed to delete expense")
		return fail(c, fiber.StatusInternalServerError, "Failed to delete expense")
	}

	if result.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Expense not found")
	}

	return c.JSON(fiber.Map{handler.StatusKey: handler.StatusOK})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		handler.StatusKey:  handler.StatusError,
		handler.MessageKey: message,
	})
}
