package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/service"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/store"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID"      // Key for storing UserID in fiber.Ctx locals
	DisplayNameKey      = "displayName" // Key for storing DisplayName in fiber.Ctx locals
)

// Protected is a middleware function that protects routes by requiring a
// valid session token. It validates the token, sets the user identity in
// the context, and opens the user's progress store. Opening here rather
// than only at session creation means a token issued before a restart, or
// by another node, still reaches a live store on its next request.
func Protected(sessions service.SessionService, stores *store.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := sessions.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(DisplayNameKey, claims.DisplayName)

		// Idempotent per Manager.Open: an already-open store is returned
		// as-is, a missing one runs the load-local/fetch-remote/merge path.
		if _, err := stores.Open(c.Context(), claims.UserID, claims.DisplayName); err != nil {
			return err
		}

		return c.Next()
	}
}
