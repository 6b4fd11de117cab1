package handlers

import (
	"errors"
	"time"

	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/apperr"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/logging"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/middleware"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/models"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandlers struct {
	userRepo   *repositories.UserRepository
	validate   *validator.Validate
	log        logging.Logger
	adminEmail string
	sessionTTL time.Duration
}

func NewAuthHandlers(userRepo *repositories.UserRepository, log logging.Logger, adminEmail string, sessionTTL time.Duration) *AuthHandlers {
	return &AuthHandlers{
		userRepo:   userRepo,
		validate:   validator.New(),
		log:        log,
		adminEmail: adminEmail,
		sessionTTL: sessionTTL,
	}
}

type signupRequest struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
	Phone    string `form:"phone" validate:"required"`
	College  string `form:"college" validate:"required"`
	Branch   string `form:"branch" validate:"required"`
	Semester string `form:"semester" validate:"required"`
}

// SignupHandler registers a new account.
func (h *AuthHandlers) SignupHandler(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid form data")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "All fields are required and the email must be valid")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return internalError(c)
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		College:      req.College,
		Branch:       req.Branch,
		Semester:     req.Semester,
	}

	if err := h.userRepo.Create(&user); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return message(c, fiber.StatusConflict, false, "Email already exists!")
		}
		h.log.Error(c.UserContext(), "failed to create user", "error", err)
		return internalError(c)
	}

	return message(c, fiber.StatusCreated, true, "Registration successful! Please login.")
}

type loginRequest struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// LoginHandler verifies credentials and issues a session cookie.
func (h *AuthHandlers) LoginHandler(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid form data")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Email and password are required")
	}

	user, err := h.userRepo.GetByEmail(req.Email)
	if err != nil {
		// Same response as a bad password: no account enumeration.
		return message(c, fiber.StatusUnauthorized, false, "Invalid email or password!")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return message(c, fiber.StatusUnauthorized, false, "Invalid email or password!")
	}

	role := middleware.RoleStudent
	if user.Email == h.adminEmail {
		role = middleware.RoleAdmin
	}

	token := middleware.CreateSession(user.ID, user.Email, role, h.sessionTTL)
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		MaxAge:   int(h.sessionTTL.Seconds()),
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful!",
		"role":    role,
	})
}

// LogoutHandler ends the session.
func (h *AuthHandlers) LogoutHandler(c *fiber.Ctx) error {
	token := c.Cookies(middleware.SessionCookieName)
	if token != "" {
		middleware.DeleteSession(token)
	}

	c.ClearCookie(middleware.SessionCookieName)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}
