package outboxhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basehdl "github.com/IncharaS06/vital/internal/api/base/handler"
	outboxmodels "github.com/IncharaS06/vital/internal/api/outbox/models"
	outboxsvc "github.com/IncharaS06/vital/internal/api/outbox/service"
)

type emptyInput struct{}

// MailQueueHandler exposes the outbox for inspection. Writes go through the
// engine and the delivery worker, never through HTTP.
type MailQueueHandler struct {
	*basehdl.BaseHandler[outboxmodels.MailQueueItem, emptyInput, emptyInput]
	mailQueueService *outboxsvc.MailQueueService
}

func NewMailQueueHandler() (*MailQueueHandler, error) {
	mailQueueService, err := outboxsvc.NewMailQueueService()
	if err != nil {
		return nil, fmt.Errorf("failed to create mail queue service: %w", err)
	}

	return &MailQueueHandler{
		BaseHandler:      basehdl.NewBaseHandler[outboxmodels.MailQueueItem, emptyInput, emptyInput](mailQueueService.BaseServiceMongoImpl),
		mailQueueService: mailQueueService,
	}, nil
}

// FindAll handles GET /outbox?status=failed, paginated, oldest first.
func (h *MailQueueHandler) FindAll(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := h.ParsePagination(c)

		filter := bson.M{}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

		data, err := h.mailQueueService.FindWithPagination(c.Context(), filter, page, limit, opts)
		h.HandleResponse(c, data, err)
		return nil
	})
}
