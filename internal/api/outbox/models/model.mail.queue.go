// Package models - MailQueueItem belongs to the Outbox domain (mail_queue
// collection). Records are created in the same transaction as the escalation
// they report and delivered asynchronously by the delivery worker. They are
// never deleted by the engine; the queue doubles as an audit trail.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mail queue statuses.
const (
	MailStatusPending    = "pending"
	MailStatusProcessing = "processing"
	MailStatusSent       = "sent"
	MailStatusFailed     = "failed"
)

// MailQueueItem is one durable outbound notification.
type MailQueueItem struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Recipient string `json:"recipient" bson:"recipient"`
	Subject   string `json:"subject" bson:"subject"`
	Body      string `json:"body" bson:"body"` // HTML

	// IssueID links the notification back to the escalated issue.
	IssueID primitive.ObjectID `json:"issueId,omitempty" bson:"issueId,omitempty" index:"single:1"`

	Status string `json:"status" bson:"status" index:"single:1"` // pending | processing | sent | failed
	Error  string `json:"error,omitempty" bson:"error,omitempty"`

	// ProcessingAt marks when a worker claimed the item. Stale claims are
	// reclaimed by the next drain pass.
	ProcessingAt *int64 `json:"processingAt,omitempty" bson:"processingAt,omitempty"`
	SentAt       *int64 `json:"sentAt,omitempty" bson:"sentAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
