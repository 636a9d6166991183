package outboxrouter

import (
	"github.com/gofiber/fiber/v3"

	"github.com/IncharaS06/vital/internal/api/middleware"
	outboxhdl "github.com/IncharaS06/vital/internal/api/outbox/handler"
	apirouter "github.com/IncharaS06/vital/internal/api/router"
)

// Register wires the outbox inspection routes.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := outboxhdl.NewMailQueueHandler()
	if err != nil {
		return err
	}

	auth := []fiber.Handler{middleware.FirebaseAuth()}

	apirouter.RegisterRouteWithMiddleware(v1, "/outbox", "GET", "/", auth, handler.FindAll)
	apirouter.RegisterRouteWithMiddleware(v1, "/outbox", "GET", "/:id", auth, handler.FindOneById)

	return nil
}
