package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v3"

	"github.com/IncharaS06/vital/internal/common"
	"github.com/IncharaS06/vital/internal/global"
)

// SweepToken guards the on-demand sweep endpoint with the configured shared
// secret. The token rides in the token query param or the X-Escalate-Token
// header. An empty configured token leaves the endpoint open (dev setups).
func SweepToken() fiber.Handler {
	return func(c fiber.Ctx) error {
		expected := global.ServerConfig.EscalateToken
		if expected == "" {
			return c.Next()
		}

		got := c.Query("token")
		if got == "" {
			got = c.Get("X-Escalate-Token")
		}

		if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthToken,
				"Invalid escalation token",
				common.StatusUnauthorized,
				nil,
			))
			return nil
		}

		return c.Next()
	}
}
