// Package middleware holds the Fiber middlewares: Firebase bearer-token
// authentication and the shared-secret guard on the sweep endpoint.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/IncharaS06/vital/internal/common"
	"github.com/IncharaS06/vital/internal/utility"
)

// FirebaseAuth verifies the Authorization bearer token against Firebase and
// stores the caller's UID in c.Locals("user_id"). Every villager-facing
// route sits behind this.
func FirebaseAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		idToken := strings.TrimPrefix(authHeader, "Bearer ")
		if idToken == authHeader || idToken == "" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		token, err := utility.VerifyIDToken(c.Context(), idToken)
		if err != nil {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		c.Locals("user_id", token.UID)
		return c.Next()
	}
}

// UserID returns the authenticated caller's UID set by FirebaseAuth, or "".
func UserID(c fiber.Ctx) string {
	uid, _ := c.Locals("user_id").(string)
	return uid
}
