// Package web assembles the fiber application: middleware chain, handler
// registration and the server lifecycle.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoSociety-Admin/GoSociety-Admin/internal/config"
	fiberlogger "github.com/GoSociety-Admin/GoSociety-Admin/internal/logger/adapter/fiber"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/handler"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/handler/admin/menu"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/handler/admin/role"
	adminuser "github.com/GoSociety-Admin/GoSociety-Admin/internal/web/handler/admin/user"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/handler/category"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/handler/dashboard"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/handler/expense"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/handler/floor"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/handler/login"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/handler/plot"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/handler/rateplan"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/handler/receivable"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/middleware/guard"
)

// CheckAlivePath is probed by load balancers.
const CheckAlivePath = "/checkalive"

// MetricsPath exposes prometheus metrics.
const MetricsPath = "/metrics"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	// access log
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	// login session middleware
	app.Use(guard.Authentication)

	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}
		return c.SendString("OK")
	})

	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// init handlers (they register their own routes with permission checks)
	handlers := []handler.Service{
		&login.Handler,
		&dashboard.Handler,
		&plot.Handler,
		&floor.Handler,
		&category.Handler,
		&expense.Handler,
		&receivable.Handler,
		&rateplan.Handler,
		&adminuser.Handler,
		&role.Handler,
		&menu.Handler,
	}
	for _, h := range handlers {
		if err := h.Init(app, cfg, db); err != nil {
			log.Fatal().Err(err).Msg("handler init failed")
		}
	}

	// redirect root to dashboard
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(dashboard.Path)
	})

	return service
}
