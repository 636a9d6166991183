package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	outboxsvc "github.com/IncharaS06/vital/internal/api/outbox/service"
	"github.com/IncharaS06/vital/internal/delivery/channels"
	"github.com/IncharaS06/vital/internal/logger"
)

// DeliveryWorker drains the mail_queue outbox: claims pending records, makes
// one delivery attempt each, and records sent or failed. Failed records stay
// failed; re-delivery is a manual operational action.
type DeliveryWorker struct {
	queue     *outboxsvc.MailQueueService
	sender    *channels.EmailSender
	interval  time.Duration
	batchSize int
}

// NewDeliveryWorker creates the outbox drain worker.
func NewDeliveryWorker(sender *channels.EmailSender, interval time.Duration, batchSize int) (*DeliveryWorker, error) {
	queue, err := outboxsvc.NewMailQueueService()
	if err != nil {
		return nil, err
	}
	if interval < time.Second {
		interval = 30 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 20
	}
	return &DeliveryWorker{
		queue:     queue,
		sender:    sender,
		interval:  interval,
		batchSize: batchSize,
	}, nil
}

// Start runs the drain loop until ctx is cancelled.
func (w *DeliveryWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval":  w.interval.String(),
		"batchSize": w.batchSize,
	}).Info("📨 [DELIVERY] Starting Mail Delivery Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("📨 [DELIVERY] Mail Delivery Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("📨 [DELIVERY] Panic during drain, will retry next tick")
					}
				}()
				w.drainOnce(ctx, log)
			}()
		}
	}
}

func (w *DeliveryWorker) drainOnce(ctx context.Context, log *logrus.Logger) {
	items, err := w.queue.FindPending(ctx, w.batchSize)
	if err != nil {
		log.WithError(err).Error("📨 [DELIVERY] Failed to load pending mail")
		return
	}

	for i := range items {
		item, err := w.queue.Claim(ctx, items[i].ID)
		if err != nil {
			continue // another worker got there first
		}

		if sendErr := w.sender.Send(item.Recipient, item.Subject, item.Body); sendErr != nil {
			if err := w.queue.MarkFailed(ctx, item.ID, sendErr); err != nil {
				log.WithError(err).Error("📨 [DELIVERY] Failed to mark mail as failed")
			}
			continue
		}

		if err := w.queue.MarkSent(ctx, item.ID); err != nil {
			log.WithError(err).Error("📨 [DELIVERY] Failed to mark mail as sent")
		}
	}
}
