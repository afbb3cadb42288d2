// Package rateplan provides CRUD endpoints for service-rate plans plus the
// payment-plan generation and preview endpoints. Generation and preview are
// guarded by their own actions, separate from the plain CRUD actions, so a
// role can manage rates without being able to bill the whole society.
package rateplan

import (
	"fmt"
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
	// Path is the base path for rate plan management.
	Path = "/rate-plans"

	monthLayout = "2006-01"
	dateLayout  = "2006-01-02"
)

// generateRequest is the body for payment plan generation.
type generateRequest struct {
	// BillingMonth is the month being charged, formatted YYYY-MM.
	BillingMonth string `json:"BillingMonth" validate:"required"`
	// DueDate is when the generated charges fall due, formatted YYYY-MM-DD.
	DueDate string `json:"DueDate" validate:"required"`
}

// planLine is one row of a payment plan preview.
type planLine struct {
	PlotID      uint    `json:"PlotID"`
	PlotNumber  string  `json:"PlotNumber"`
	AreaSqYards float64 `json:"AreaSqYards"`
	Amount      float64 `json:"Amount"`
}

// Service provides rate plan operations.
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

	app.Get(Path+"/:id/payment-plan",
		guard.RequireAction(cfg, access.ActionViewPaymentPlan), s.PaymentPlan)
	app.Post(Path+"/:id/generate-plan",
		guard.RequireAction(cfg, access.ActionGeneratePaymentPlan), s.GeneratePlan)

	return nil
}

// List returns all rate plans.
func (s *Service) List(c *fiber.Ctx) error {
	var plans []models.RatePlan
	if err := s.db.Order("name").Find(&plans).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load rate plans")
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"ratePlans":       plans,
	})
}

// Create adds a new rate plan.
func (s *Service) Create(c *fiber.Ctx) error {
	plan := new(models.RatePlan)

	if err := c.BodyParser(plan); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(plan); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	plan.ID = 0

	if err := s.db.Create(plan).Error; err != nil {
		return fail(c, fiber.StatusConflict, "Failed to create rate plan (possibly duplicate name)")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"ratePlan":        plan,
	})
}

// Update edits an existing rate plan.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	var existing models.RatePlan
	if err := s.db.First(&existing, id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Rate plan not found")
	}

	plan := new(models.RatePlan)
	if err := c.BodyParser(plan); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(plan); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	plan.ID = existing.ID

	if err := s.db.Save(plan).Error; err != nil {
		return fail(c, fiber.StatusConflict, "Failed to update rate plan")
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"ratePlan":        plan,
	})
}

// Delete removes a rate plan. Receivables generated from it keep their
// RatePlanID reference, so deletion is refused while any exist.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	var count int64
	if err := s.db.Model(&models.Receivable{}).Where("rate_plan_id = ?", id).Count(&count).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to delete rate plan")
	}
	if count > 0 {
		return fail(c, fiber.StatusConflict, "Rate plan has generated receivables")
	}

	result := s.db.Delete(&models.RatePlan{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("failed to delete rate plan")
		return fail(c, fiber.StatusInternalServerError, "Failed to delete rate plan")
	}

	if result.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Rate plan not found")
	}

	return c.JSON(fiber.Map{handler.StatusKey: handler.StatusOK})
}

// PaymentPlan previews what generation would charge each plot under the
// plan, without writing anything.
func (s *Service) PaymentPlan(c *fiber.Ctx) error {
	plan, ok := s.loadPlan(c)
	if !ok {
		return nil
	}

	plots, err := s.plotsForPlan(plan)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load plots")
	}

	lines := make([]planLine, 0, len(plots))
	var total float64
	for _, p := range plots {
		amount := p.AreaSqYards*plan.RatePerSqYard + plan.FlatRate
		lines = append(lines, planLine{
			PlotID:      p.ID,
			PlotNumber:  p.Number,
			AreaSqYards: p.AreaSqYards,
			Amount:      amount,
		})
		total += amount
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"ratePlan":        plan,
		"lines":           lines,
		"totalAmount":     total,
	})
}

// GeneratePlan creates one pending receivable per matching plot for the
// given billing month. Re-running for the same plan and month is a no-op
// for plots already charged, so a partially failed run can be retried.
func (s *Service) GeneratePlan(c *fiber.Ctx) error {
	plan, ok := s.loadPlan(c)
	if !ok {
		return nil
	}

	req := new(generateRequest)
	if err := c.BodyParser(req); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	if _, err := time.Parse(monthLayout, req.BillingMonth); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid billing month, expected YYYY-MM")
	}

	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid due date, expected YYYY-MM-DD")
	}

	if !plan.Active {
		return fail(c, fiber.StatusConflict, "Rate plan is inactive")
	}

	plots, err := s.plotsForPlan(plan)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load plots")
	}

	description := fmt.Sprintf("%s %s", plan.Name, req.BillingMonth)

	var created int
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range plots {
			var existing int64
			err := tx.Model(&models.Receivable{}).
				Where("plot_id = ? AND rate_plan_id = ? AND description = ?", p.ID, plan.ID, description).
				Count(&existing).Error
			if err != nil {
				return err
			}
			if existing > 0 {
				continue
			}

			receivable := models.Receivable{
				PlotID:      p.ID,
				RatePlanID:  &plan.ID,
				Description: description,
				Amount:      p.AreaSqYards*plan.RatePerSqYard + plan.FlatRate,
				DueDate:     dueDate,
				Status:      models.ReceivablePending,
			}
			if err := tx.Create(&receivable).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if txErr != nil {
		log.Error().Err(txErr).Uint("rate_plan_id", plan.ID).Msg("payment plan generation failed")
		return fail(c, fiber.StatusInternalServerError, "Failed to generate payment plan")
	}

	log.Info().
		Uint("rate_plan_id", plan.ID).
		Str("billing_month", req.BillingMonth).
		Int("created", created).
		Msg("payment plan generated")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"created":         created,
		"skipped":         len(plots) - created,
	})
}

// loadPlan resolves the :id parameter. On failure the error response has
// already been written and ok is false.
func (s *Service) loadPlan(c *fiber.Ctx) (*models.RatePlan, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		_ = fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
		return nil, false
	}

	var plan models.RatePlan
	if err := s.db.First(&plan, id).Error; err != nil {
		_ = fail(c, fiber.StatusNotFound, "Rate plan not found")
		return nil, false
	}

	return &plan, true
}

func (s *Service) plotsForPlan(plan *models.RatePlan) ([]models.Plot, error) {
	query := s.db.Order("number")
	if plan.CategoryID != 0 {
		query = query.Where("category_id = ?", plan.CategoryID)
	}

	var plots []models.Plot
	if err := query.Find(&plots).Error; err != nil {
		return nil, err
	}
	return plots, nil
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		handler.StatusKey:  handler.StatusError,
		handler.MessageKey: message,
	})
}
