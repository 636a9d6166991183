// Package outboxsvc contains the data-access service for the notification
// outbox (mail_queue collection).
package outboxsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/IncharaS06/vital/internal/api/base/service"
	outboxmodels "github.com/IncharaS06/vital/internal/api/outbox/models"
	"github.com/IncharaS06/vital/internal/common"
	"github.com/IncharaS06/vital/internal/global"
)

// staleClaimAfter is how long a processing claim may sit before another drain
// pass reclaims the item (worker crashed mid-send).
const staleClaimAfter = 5 * time.Minute

// MailQueueService manages the mail_queue collection.
type MailQueueService struct {
	*basesvc.BaseServiceMongoImpl[outboxmodels.MailQueueItem]
}

// NewMailQueueService creates a new MailQueueService.
func NewMailQueueService() (*MailQueueService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.MailQueue)
	if !exist {
		return nil, fmt.Errorf("failed to get mail_queue collection: %v", common.ErrNotFound)
	}

	return &MailQueueService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[outboxmodels.MailQueueItem](collection),
	}, nil
}

// Enqueue inserts a pending notification. Run it on a session context when
// the enqueue must commit together with an issue mutation.
func (s *MailQueueService) Enqueue(ctx context.Context, item outboxmodels.MailQueueItem) (outboxmodels.MailQueueItem, error) {
	item.Status = outboxmodels.MailStatusPending
	return s.InsertOne(ctx, item)
}

// FindPending returns deliverable items: pending ones, plus processing claims
// older than the stale threshold. Oldest first.
func (s *MailQueueService) FindPending(ctx context.Context, limit int) ([]outboxmodels.MailQueueItem, error) {
	staleBefore := time.Now().Add(-staleClaimAfter).UnixMilli()

	filter := bson.M{
		"$or": []bson.M{
			{"status": outboxmodels.MailStatusPending},
			{
				"status":       outboxmodels.MailStatusProcessing,
				"processingAt": bson.M{"$lt": staleBefore},
			},
		},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(int64(limit))

	return s.Find(ctx, filter, opts)
}

// Claim moves one item from pending (or a stale processing claim) to
// processing. The status guard in the filter means two workers cannot both
// claim the same item.
func (s *MailQueueService) Claim(ctx context.Context, id primitive.ObjectID) (outboxmodels.MailQueueItem, error) {
	staleBefore := time.Now().Add(-staleClaimAfter).UnixMilli()
	filter := bson.M{
		"_id": id,
		"$or": []bson.M{
			{"status": outboxmodels.MailStatusPending},
			{
				"status":       outboxmodels.MailStatusProcessing,
				"processingAt": bson.M{"$lt": staleBefore},
			},
		},
	}

	update := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status":       outboxmodels.MailStatusProcessing,
			"processingAt": time.Now().UnixMilli(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return s.FindOneAndUpdate(ctx, filter, update, opts)
}

// MarkSent records a successful delivery.
func (s *MailQueueService) MarkSent(ctx context.Context, id primitive.ObjectID) error {
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status": outboxmodels.MailStatusSent,
			"sentAt": time.Now().UnixMilli(),
		},
		Unset: map[string]interface{}{
			"processingAt": "",
		},
	}

	_, err := s.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, nil)
	return err
}

// MarkFailed records a delivery failure. Failures are terminal for the
// record; re-delivery is an operational action, not an automatic retry.
func (s *MailQueueService) MarkFailed(ctx context.Context, id primitive.ObjectID, sendErr error) error {
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status": outboxmodels.MailStatusFailed,
			"error":  sendErr.Error(),
		},
		Unset: map[string]interface{}{
			"processingAt": "",
		},
	}

	_, err := s.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, nil)
	return err
}
