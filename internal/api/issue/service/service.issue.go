// Package issuesvc contains the data-access service for the Issue domain.
// Besides the inherited CRUD it carries the escalation mutation primitives:
// the due-candidate query and the guarded, transaction-aware level advance.
package issuesvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/IncharaS06/vital/internal/api/base/service"
	issuemodels "github.com/IncharaS06/vital/internal/api/issue/models"
	"github.com/IncharaS06/vital/internal/common"
	"github.com/IncharaS06/vital/internal/global"
)

// IssueService manages the issues collection.
type IssueService struct {
	*basesvc.BaseServiceMongoImpl[issuemodels.Issue]
}

// NewIssueService creates a new IssueService.
func NewIssueService() (*IssueService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Issues)
	if !exist {
		return nil, fmt.Errorf("failed to get issues collection: %v", common.ErrNotFound)
	}

	return &IssueService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[issuemodels.Issue](collection),
	}, nil
}

// FindDue returns open issues whose current tier deadline has passed, oldest
// deadline first, capped at limit. The result is only a candidate list; the
// engine re-validates each issue inside its transaction.
func (s *IssueService) FindDue(ctx context.Context, now int64, limit int64) ([]issuemodels.Issue, error) {
	filter := bson.M{
		"status":       bson.M{"$nin": issuemodels.TerminalStatuses},
		"resolveDueAt": bson.M{"$gt": 0, "$lte": now},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "resolveDueAt", Value: 1}}).
		SetLimit(limit)

	return s.Find(ctx, filter, opts)
}

// EscalationUpdate describes one guarded level advance.
type EscalationUpdate struct {
	IssueID   primitive.ObjectID
	FromLevel int    // Expected current escalatedLevel; the guard filter pins it
	ToRole    string
	NewDueAt  int64
	Entry     issuemodels.EscalationEntry

	// Manual marks a villager-triggered escalation: the guard additionally
	// requires manualEscalationUsed == false, and the update burns the flag
	// and arms the one-shot auto suppression.
	Manual bool
}

// ApplyEscalation commits a single escalation transition. The filter carries
// the expected level and a non-terminal status, so at most one of any number
// of concurrent attempts can match; the losers get common.ErrNotFound and
// must treat it as "someone else already moved the issue".
func (s *IssueService) ApplyEscalation(ctx context.Context, u EscalationUpdate) (issuemodels.Issue, error) {
	filter := bson.M{
		"_id":            u.IssueID,
		"escalatedLevel": u.FromLevel,
		"status":         bson.M{"$nin": issuemodels.TerminalStatuses},
	}
	if u.Manual {
		filter["manualEscalationUsed"] = false
	}

	set := bson.M{
		"escalatedLevel":             u.FromLevel + 1,
		"assignedRole":               u.ToRole,
		"resolveDueAt":               u.NewDueAt,
		"escalation.lastEscalatedTo": u.ToRole,
	}
	if u.Manual {
		set["manualEscalationUsed"] = true
		set["autoEscalationSuppressed"] = true
	}

	update := &basesvc.UpdateData{
		Set: set,
		Push: map[string]interface{}{
			"escalation.history": u.Entry,
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return s.FindOneAndUpdate(ctx, filter, update, opts)
}

// ConsumeAutoSuppression clears the one-shot suppression flag without
// advancing the level. Guarded on the level so a concurrent escalation does
// not race the clear.
func (s *IssueService) ConsumeAutoSuppression(ctx context.Context, issueID primitive.ObjectID, level int) error {
	filter := bson.M{
		"_id":                      issueID,
		"escalatedLevel":           level,
		"autoEscalationSuppressed": true,
	}
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"autoEscalationSuppressed": false,
		},
	}

	_, err := s.FindOneAndUpdate(ctx, filter, update, nil)
	return err
}

// WithTransaction runs fn inside a MongoDB session transaction, so the
// escalation mutation and its outbox enqueue commit or abort together.
func (s *IssueService) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := global.MongoDB_Session.StartSession()
	if err != nil {
		return common.ConvertMongoError(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}

// MarkResolved flips the issue to resolved, recording the time. Used by the
// authority status-update endpoint; escalation never touches resolvedAt.
func (s *IssueService) MarkResolved(ctx context.Context, issueID primitive.ObjectID) (issuemodels.Issue, error) {
	filter := bson.M{
		"_id":    issueID,
		"status": bson.M{"$nin": issuemodels.TerminalStatuses},
	}
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status":     issuemodels.IssueStatusResolved,
			"resolvedAt": time.Now().UnixMilli(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return s.FindOneAndUpdate(ctx, filter, update, opts)
}
