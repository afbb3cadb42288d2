// Package dashboard provides the summary endpoint behind the SPA's
// landing screen.
package dashboard

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoSociety-Admin/GoSociety-Admin/internal/access"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/config"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/db/models"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/handler"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/middleware/guard"
)

// Path is the path to the dashboard endpoint.
const Path = "/dashboard"

// Stats is the dashboard payload.
type Stats struct {
	TotalPlots         int64   `json:"TotalPlots"`
	OccupiedPlots      int64   `json:"OccupiedPlots"`
	PendingReceivables int64   `json:"PendingReceivables"`
	OutstandingAmount  float64 `json:"OutstandingAmount"`
	ExpensesThisMonth  float64 `json:"ExpensesThisMonth"`
	ActiveRatePlans    int64   `json:"ActiveRatePlans"`
}

// Service is the dashboard handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
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

	app.Get(Path, guard.RequireAction(cfg, access.ActionView), s.Get)

	return nil
}

// Get returns the society-wide summary numbers.
func (s *Service) Get(c *fiber.Ctx) error {
	var stats Stats

	if err := s.db.Model(&models.Plot{}).Count(&stats.TotalPlots).Error; err != nil {
		return s.statsError(c, err)
	}

	if err := s.db.Model(&models.Plot{}).Where("occupied = ?", true).
		Count(&stats.OccupiedPlots).Error; err != nil {
		return s.statsError(c, err)
	}

	if err := s.db.Model(&models.Receivable{}).
		Where("status = ?", models.ReceivablePending).
		Count(&stats.PendingReceivables).Error; err != nil {
		return s.statsError(c, err)
	}

	if err := s.db.Model(&models.Receivable{}).
		Where("status = ?", models.ReceivablePending).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.OutstandingAmount).Error; err != nil {
		return s.statsError(c, err)
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	if err := s.db.Model(&models.Expense{}).
		Where("expense_date >= ?", monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.ExpensesThisMonth).Error; err != nil {
		return s.statsError(c, err)
	}

	if err := s.db.Model(&models.RatePlan{}).Where("active = ?", true).
		Count(&stats.ActiveRatePlans).Error; err != nil {
		return s.statsError(c, err)
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"stats":           stats,
	})
}

func (s *Service) statsError(c *fiber.Ctx, err error) error {
	log.Error().Err(err).Msg("failed to load dashboard stats")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		handler.StatusKey:  handler.StatusError,
		handler.MessageKey: "Failed to load dashboard stats",
	})
}
