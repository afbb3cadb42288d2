// Package receivable provides endpoints for charges owed by plots:
// listing, manual one-off charges and marking charges paid or waived.
package receivable

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
	// Path is the base path for receivable management.
	Path = "/receivables"

	// QueryPlot filters by plot id, QueryStatus by payment status.
	QueryPlot   = "plotId"
	QueryStatus = "status"
)

// statusUpdate is the body for the pay/waive endpoint.
type statusUpdate struct {
	Status string `json:"Status" validate:"required,oneof=pending paid waived"`
}

// Service provides receivable operations.
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
	app.Put(Path+"/:id/status", guard.RequireAction(cfg, access.ActionEdit), s.SetStatus)
	app.Delete(Path+"/:id", guard.RequireAction(cfg, access.ActionDelete), s.Delete)

	return nil
}

// List returns receivables filtered by plot and status, due date ascending.
func (s *Service) List(c *fiber.Ctx) error {
	query := s.db.Model(&models.Receivable{})

	if plotID := c.Query(QueryPlot); plotID != "" {
		query = query.Where("plot_id = ?", plotID)
	}

	if status := c.Query(QueryStatus); status != "" {
		query = query.Where("status = ?", status)
	}

	var receivables []models.Receivable
	if err := query.Order("due_date, id").Find(&receivables).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load receivables")
	}

	var outstanding float64
	for _, r := range receivables {
		if r.Status == models.ReceivablePending {
			outstanding += r.Amount
		}
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"receivables":     receivables,
		"outstanding":     outstanding,
	})
}

// Create adds a manual one-off charge against a plot.
func (s *Service) Create(c *fiber.Ctx) error {
	receivable := new(models.Receivable)

	if err := c.BodyParser(receivable); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(receivable); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	var plot models.Plot
	if err := s.db.First(&plot, receivable.PlotID).Error; err != nil {
		return fail(c, fiber.StatusBadRequest, "Unknown plot")
	}

	receivable.ID = 0
	receivable.RatePlanID = nil
	receivable.Status = models.ReceivablePending
	receivable.PaidAt = nil

	if err := s.db.Create(receivable).Error; err != nil {
		log.Error().Err(err).Msg("failed to create receivable")
		return fail(c, fiber.StatusInternalServerError, "Failed to create receivable")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"receivable":      receivable,
	})
}

// SetStatus marks a receivable paid, waived or back to pending. PaidAt is
// stamped when the status becomes paid and cleared otherwise.
func (s *Service) SetStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	update := new(statusUpdate)
	if err := c.BodyParser(update); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(update); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	var receivable models.Receivable
	if err := s.db.First(&receivable, id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Receivable not found")
	}

	receivable.Status = update.Status
	if update.Status == models.ReceivablePaid {
		now := time.Now()
		receivable.PaidAt = &now
	} else {
		receivable.PaidAt = nil
	}

	if err := s.db.Save(&receivable).Error; err != nil {
		log.Error().Err(err).Msg("failed to update receivable status")
		return fail(c, fiber.StatusInternalServerError, "Failed to update receivable")
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"receivable":      receivable,
	})
}

// Delete removes a receivable. Paid receivables are refused so the payment
// history stays intact; waive instead.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	var receivable models.Receivable
	if err := s.db.First(&receivable, id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Receivable not found")
	}

	if receivable.Status == models.ReceivablePaid {
		return fail(c, fiber.StatusConflict, "Paid receivables cannot be deleted")
	}

	if err := s.db.Delete(&receivable).Error; err != nil {
		log.Error().Err(err).Msg("failed to delete receivable")
		return fail(c, fiber.StatusInternalServerError, "Failed to delete receivable")
	}

	return c.JSON(fiber.Map{handler.StatusKey: handler.StatusOK})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		handler.StatusKey:  handler.StatusError,
		handler.MessageKey: message,
	})
}
