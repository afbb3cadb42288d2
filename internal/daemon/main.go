// Package daemon wires the database, session store and web service together.
package daemon

import (
	"fmt"

	sessionmysql "github.com/gofiber/storage/mysql"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/GoSociety-Admin/GoSociety-Admin/internal/config"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/db/dsn"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/db/models"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService *web.Service
}

// Start starts the Daemon's web service.
func (d *Daemon) Start(port int) error {
	return d.webService.Start(fmt.Sprintf(":%d", port))
}

// WaitShutdown blocks until the web service has shut down gracefully.
func (d *Daemon) WaitShutdown() {
	d.webService.WaitShutdown()
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	dbDriver := gormmysql.Open(dsn.Create(cfg)) // open db with gorm mysql driver

	db, err := gorm.Open(dbDriver, &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
		return nil
	}

	if err = db.AutoMigrate(
		&models.Role{},
		&models.Action{},
		&models.Menu{},
		&models.RoleMenuAction{},
		&models.User{},
		&models.Category{},
		&models.Floor{},
		&models.Plot{},
		&models.RatePlan{},
		&models.Expense{},
		&models.Receivable{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
		return nil
	}

	seed(cfg, db)

	// Initialize fiber session store
	sessionStorage := sessionmysql.New(sessionmysql.Config{
		ConnectionURI: dsn.Create(cfg),
		Table:         "sessions",
	})

	session.Init(sessionStorage)

	return &Daemon{
		webService: web.New(cfg, db),
	}
}
