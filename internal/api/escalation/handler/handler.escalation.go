// Package escalationhdl exposes the scheduled sweep trigger over HTTP.
package escalationhdl

import (
	"time"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/IncharaS06/vital/internal/api/base/handler"
	"github.com/IncharaS06/vital/internal/common"
	"github.com/IncharaS06/vital/internal/escalation"
	"github.com/IncharaS06/vital/internal/logger"
)

// EscalationHandler handles the escalation sweep routes.
type EscalationHandler struct {
	engine *escalation.Engine
}

// NewEscalationHandler creates an EscalationHandler bound to the engine.
func NewEscalationHandler(engine *escalation.Engine) *EscalationHandler {
	return &EscalationHandler{engine: engine}
}

// RunSweep handles POST /escalation/run. It walks every overdue issue one
// authority tier up and reports what moved. The same sweep also runs on the
// worker's interval; this endpoint exists for external schedulers.
func (h *EscalationHandler) RunSweep(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		result, err := h.engine.RunSweep(c.Context(), time.Now())
		if err != nil {
			logger.GetErrorLogger().WithFields(map[string]interface{}{
				"error": err.Error(),
			}).Error("🔥 [ESCALATION] Sweep run failed")
			return basehdl.JSONResponse(c, common.StatusInternalServerError, fiber.Map{
				"ok":    false,
				"error": err.Error(),
			})
		}

		return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
			"ok":             true,
			"processedCount": result.ProcessedCount,
			"escalations":    result.Escalations,
		})
	})
}
