package authorityrouter

import (
	"github.com/gofiber/fiber/v3"

	authorityhdl "github.com/IncharaS06/vital/internal/api/authority/handler"
	"github.com/IncharaS06/vital/internal/api/middleware"
	apirouter "github.com/IncharaS06/vital/internal/api/router"
)

// Register wires the authority directory routes.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := authorityhdl.NewAuthorityHandler()
	if err != nil {
		return err
	}

	auth := []fiber.Handler{middleware.FirebaseAuth()}

	apirouter.RegisterRouteWithMiddleware(v1, "/authority", "POST", "/", auth, handler.Create)
	apirouter.RegisterRouteWithMiddleware(v1, "/authority", "GET", "/", auth, handler.FindByRole)
	apirouter.RegisterRouteWithMiddleware(v1, "/authority", "GET", "/:id", auth, handler.FindOneById)

	return nil
}
