// Package user provides handlers for managing user accounts in the
// system management area.
package user

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
	// Path is the base path for user management.
	Path = "/system-management/users"

	minPasswordLength = 8
)

// userRequest is the create/update body. Password is taken separately from
// the model so a blank password on update keeps the stored hash.
type userRequest struct {
	models.User
	Password string `json:"Password"`
}

// Service provides CRUD operations for users.
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

// List returns all users with their roles.
func (s *Service) List(c *fiber.Ctx) error {
	var users []models.User
	if err := s.db.Preload("Role").Order("username").Find(&users).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load users")
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"users":           users,
	})
}

// Create adds a new user. A password is mandatory here, unlike update.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(userRequest)

	if err := c.BodyParser(req); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(&req.User); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	if len(req.Password) < minPasswordLength {
		return fail(c, fiber.StatusBadRequest, "Password must be at least 8 characters")
	}

	var role models.Role
	if err := s.db.First(&role, req.RoleID).Error; err != nil {
		return fail(c, fiber.StatusBadRequest, "Unknown role")
	}

	user := req.User
	user.ID = 0
	user.Role = models.Role{}
	user.Password = models.HashPassword(req.Password)

	if err := s.db.Create(&user).Error; err != nil {
		log.Error().Err(err).Msg("failed to create user")
		return fail(c, fiber.StatusConflict, "Failed to create user (possibly duplicate username)")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"user":            user,
	})
}

// Update edits an existing user. An empty password keeps the current one.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	var existing models.User
	if err := s.db.First(&existing, id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "User not found")
	}

	req := new(userRequest)
	if err := c.BodyParser(req); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(&req.User); err != nil {
		return fail(c, fiber.StatusBadRequest, handler.ErrValidationPrefix+err.Error())
	}

	var role models.Role
	if err := s.db.First(&role, req.RoleID).Error; err != nil {
		return fail(c, fiber.StatusBadRequest, "Unknown role")
	}

	user := req.User
	user.ID = existing.ID
	user.Role = models.Role{}
	user.CreatedAt = existing.CreatedAt

	if req.Password == "" {
		user.Password = existing.Password
	} else {
		if len(req.Password) < minPasswordLength {
			return fail(c, fiber.StatusBadRequest, "Password must be at least 8 characters")
		}
		user.Password = models.HashPassword(req.Password)
	}

	if err := s.db.Save(&user).Error; err != nil {
		log.Error().Err(err).Msg("failed to update user")
		return fail(c, fiber.StatusConflict, "Failed to update user")
	}

	return c.JSON(fiber.Map{
		handler.StatusKey: handler.StatusOK,
		"user":            user,
	})
}

// Delete removes a user. The last active user cannot be deleted.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return fail(c, fiber.StatusBadRequest, handler.ErrInvalidID)
	}

	var active int64
	if err := s.db.Model(&models.User{}).Where("active = ? AND id <> ?", true, id).
		Count(&active).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to delete user")
	}
	if active == 0 {
		return fail(c, fiber.StatusConflict, "Cannot delete the last active user")
	}

	result := s.db.Delete(&models.User{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("failed to delete user")
		return fail(c, fiber.StatusInternalServerError, "Failed to delete user")
	}

	if result.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "User not found")
	}

	return c.JSON(fiber.Map{handler.StatusKey: handler.StatusOK})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		handler.StatusKey:  handler.StatusError,
		handler.MessageKey: message,
	})
}
