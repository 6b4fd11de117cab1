package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Roles derived at login time. Admin currently only gates the account-info
// lookup endpoint.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Session represents an active login.
type Session struct {
	UserID    uint
	Email     string
	Role      string
	ExpiresAt time.Time
}

var (
	sessions  = make(map[string]*Session)
	sessionMu sync.RWMutex
)

const SessionCookieName = "session_token"

// GenerateSessionToken creates a random session token.
func GenerateSessionToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// CreateSession creates a new session and returns the token.
func CreateSession(userID uint, email, role string, ttl time.Duration) string {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	token := GenerateSessionToken()
	sessions[token] = &Session{
		UserID:    userID,
		Email:     email,
		Role:      role,
		ExpiresAt: time.Now().Add(ttl),
	}
	return token
}

// GetSession retrieves a session by token.
func GetSession(token string) (*Session, bool) {
	sessionMu.RLock()
	defer sessionMu.RUnlock()

	session, exists := sessions[token]
	if !exists || time.Now().After(session.ExpiresAt) {
		return nil, false
	}
	return session, true
}

// DeleteSession removes a session.
func DeleteSession(token string) {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	delete(sessions, token)
}

// RequireAuth ensures the request carries a valid session and stores the
// authenticated identity in the request context.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		if token == "" {
			return unauthenticated(c)
		}

		session, valid := GetSession(token)
		if !valid {
			return unauthenticated(c)
		}

		c.Locals("userID", session.UserID)
		c.Locals("email", session.Email)
		c.Locals("role", session.Role)

		return c.Next()
	}
}

// RequireRole ensures the authenticated account holds one of the given
// roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return unauthenticated(c)
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": "Please login to continue",
	})
}
