package escalationrouter

import (
	"github.com/gofiber/fiber/v3"

	escalationhdl "github.com/IncharaS06/vital/internal/api/escalation/handler"
	"github.com/IncharaS06/vital/internal/api/middleware"
	apirouter "github.com/IncharaS06/vital/internal/api/router"
	"github.com/IncharaS06/vital/internal/escalation"
)

// Register wires the sweep trigger. It is guarded by the shared escalation
// token, not by Firebase auth, so cron services can call it.
func Register(engine *escalation.Engine) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		handler := escalationhdl.NewEscalationHandler(engine)

		guard := []fiber.Handler{middleware.SweepToken()}

		apirouter.RegisterRouteWithMiddleware(v1, "/escalation", "POST", "/run", guard, handler.RunSweep)

		return nil
	}
}
