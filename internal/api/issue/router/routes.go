package issuerouter

import (
	"github.com/gofiber/fiber/v3"

	issuehdl "github.com/IncharaS06/vital/internal/api/issue/handler"
	"github.com/IncharaS06/vital/internal/api/middleware"
	apirouter "github.com/IncharaS06/vital/internal/api/router"
	"github.com/IncharaS06/vital/internal/escalation"
)

// Register wires the issue routes. Everything here is villager-facing and
// requires a Firebase identity.
func Register(engine *escalation.Engine) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		handler, err := issuehdl.NewIssueHandler(engine)
		if err != nil {
			return err
		}

		auth := []fiber.Handler{middleware.FirebaseAuth()}

		apirouter.RegisterRouteWithMiddleware(v1, "/issue", "POST", "/", auth, handler.Create)
		apirouter.RegisterRouteWithMiddleware(v1, "/issue", "GET", "/", auth, handler.FindMine)
		apirouter.RegisterRouteWithMiddleware(v1, "/issue", "GET", "/all", auth, handler.FindAll)
		apirouter.RegisterRouteWithMiddleware(v1, "/issue", "GET", "/:id", auth, handler.FindOneById)
		apirouter.RegisterRouteWithMiddleware(v1, "/issue", "PUT", "/:id/status", auth, handler.UpdateStatus)
		apirouter.RegisterRouteWithMiddleware(v1, "/issue", "POST", "/:id/escalate", auth, handler.Escalate)

		return nil
	}
}
