// Package login implements the login/logout endpoints. A successful login
// builds the full access snapshot for the user's role and hands the derived
// menu tree and permission map to the SPA in one response.
package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoSociety-Admin/GoSociety-Admin/internal/access"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/config"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/db/controller/grant"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/db/models"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/handler"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/middleware/guard"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/web/session"
)

const (
	// Path is the path to the login endpoint.
	Path = "/login"
	// LogoutPath is the path to the logout endpoint.
	LogoutPath = "/logout"
	// MePath returns the current session's user and access snapshot.
	MePath = "/me"

	errInvalidCredentials = "Invalid username or password"
	errInactiveAccount    = "Account is inactive"
	errInternal           = "Internal server error"
)

// credentials is the login request body.
type credentials struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

// Service is the login handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.db = db
	s.cfg = cfg

	app.Post(Path, s.Post)
	app.Post(LogoutPath, s.Logout)
	app.Get(MePath, s.Me)

	return nil
}

// Me returns the current user with the session's derived menu tree and
// permission map, so a SPA reload can rebuild its state without a re-login.
func (s *Service) Me(c *fiber.Ctx) error {
	sessData, ok := guard.CurrentSession(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"user":            sessData.User,
		"menus":           sessData.Access.MenuTree,
		"permissions":     sessData.Access.PermissionsByPath(),
	})
}

// Post handles the login request. The session is written only after the
// complete snapshot (menus and grant rows) was loaded and derived, so a
// half-built permission map can never be observed; a failed load leaves the
// caller unauthenticated.
func (s *Service) Post(c *fiber.Ctx) error {
	creds := new(credentials)

	if err := c.BodyParser(creds); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	var dbUser models.User
	result := s.db.Preload("Role").Where("username = ?", creds.Username).First(&dbUser)
	if result.Error != nil {
		return fail(c, fiber.StatusUnauthorized, errInvalidCredentials)
	}

	if !dbUser.Active {
		return fail(c, fiber.StatusUnauthorized, errInactiveAccount)
	}

	if !dbUser.VerifyPassword(creds.Password) {
		return fail(c, fiber.StatusUnauthorized, errInvalidCredentials)
	}

	menus, err := grant.MenusForRole(s.db, dbUser.RoleID)
	if err != nil {
		log.Error().Err(err).Uint("role_id", dbUser.RoleID).Msg("failed to load menu snapshot")
		return fail(c, fiber.StatusInternalServerError, errInternal)
	}

	grants, err := grant.FlatRowsForRole(s.db, dbUser.RoleID)
	if err != nil {
		log.Error().Err(err).Uint("role_id", dbUser.RoleID).Msg("failed to load grant snapshot")
		return fail(c, fiber.StatusInternalServerError, errInternal)
	}

	accessSession := access.NewSession(menus, grants)

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return fail(c, fiber.StatusInternalServerError, errInternal)
	}

	userSession := &session.Data{
		User:   dbUser,
		Access: accessSession,
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return fail(c, fiber.StatusInternalServerError, errInternal)
	}

	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	log.Info().Str("username", dbUser.Username).Str("role", dbUser.Role.Name).Msg("user logged in")

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"user":            dbUser,
		"menus":           accessSession.MenuTree,
		"permissions":     accessSession.PermissionsByPath(),
	})
}

// Logout invalidates the session and clears the login cookie.
func (s *Service) Logout(c *fiber.Ctx) error {
	sessionID := c.Cookies(session.CookieName)
	if sessionID != "" {
		if err := session.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete session")
		}
	}

	c.ClearCookie(session.CookieName)

	return c.JSON(fiber.Map{
		handler.StatusKey:   handler.StatusOK,
		handler.RedirectKey: Path,
	})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		handler.StatusKey:  handler.StatusError,
		handler.MessageKey: message,
	})
}
