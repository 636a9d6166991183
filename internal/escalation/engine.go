package escalation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authoritymodels "github.com/IncharaS06/vital/internal/api/authority/models"
	issuemodels "github.com/IncharaS06/vital/internal/api/issue/models"
	issuesvc "github.com/IncharaS06/vital/internal/api/issue/service"
	outboxmodels "github.com/IncharaS06/vital/internal/api/outbox/models"
	"github.com/IncharaS06/vital/internal/common"
)

// DefaultSweepBatchSize caps how many candidates one sweep invocation
// handles. Leftovers wait for the next scheduled run.
const DefaultSweepBatchSize = 50

// History reasons recorded on transitions.
const (
	ReasonSLABreached     = "SLA breached"
	ReasonManualEscalated = "Manually escalated by villager after due date"
)

// IssueStore is the slice of the issue service the engine needs. The concrete
// implementation is issuesvc.IssueService; tests substitute a fake.
type IssueStore interface {
	FindDue(ctx context.Context, now int64, limit int64) ([]issuemodels.Issue, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (issuemodels.Issue, error)
	ApplyEscalation(ctx context.Context, u issuesvc.EscalationUpdate) (issuemodels.Issue, error)
	ConsumeAutoSuppression(ctx context.Context, issueID primitive.ObjectID, level int) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuthorityDirectory resolves escalation targets. Read-only.
type AuthorityDirectory interface {
	FindForRole(ctx context.Context, role string, j issuemodels.Jurisdiction) (authoritymodels.Authority, error)
}

// NotificationSink accepts outbox records. Enqueue must run on the same
// session context as the escalation mutation so both commit together.
type NotificationSink interface {
	Enqueue(ctx context.Context, item outboxmodels.MailQueueItem) (outboxmodels.MailQueueItem, error)
}

// Config tunes the engine.
type Config struct {
	BatchSize   int64  // Sweep candidate cap; DefaultSweepBatchSize when zero
	FrontendURL string // Base URL for the dashboard links in notifications
}

// EscalationRecord is one committed transition, as reported by the sweep.
type EscalationRecord struct {
	IssueID    string `json:"issueId"`
	From       string `json:"from"`
	To         string `json:"to"`
	DaysPassed int    `json:"daysPassed"`
}

// SweepResult aggregates one sweep invocation.
type SweepResult struct {
	ProcessedCount int                `json:"processedCount"`
	Escalations    []EscalationRecord `json:"escalations"`
}

// Engine walks issues up the authority chain. All state lives in the store;
// the engine itself is stateless and safe for concurrent invocations.
type Engine struct {
	issues    IssueStore
	directory AuthorityDirectory
	sink      NotificationSink
	cfg       Config
	log       *logrus.Logger
}

// NewEngine wires an Engine from its dependencies.
func NewEngine(issues IssueStore, directory AuthorityDirectory, sink NotificationSink, cfg Config, log *logrus.Logger) *Engine {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultSweepBatchSize
	}
	return &Engine{
		issues:    issues,
		directory: directory,
		sink:      sink,
		cfg:       cfg,
		log:       log,
	}
}

// RunSweep queries for due issues and escalates each eligible one by a single
// tier. Per-issue failures are logged and skipped; the sweep itself only
// fails when the candidate query does.
func (e *Engine) RunSweep(ctx context.Context, now time.Time) (*SweepResult, error) {
	nowMs := now.UnixMilli()

	candidates, err := e.issues.FindDue(ctx, nowMs, e.cfg.BatchSize)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{Escalations: []EscalationRecord{}}
	for i := range candidates {
		rec, err := e.sweepOne(ctx, candidates[i].ID, nowMs)
		if err != nil {
			entry := e.log.WithFields(logrus.Fields{
				"issueId": candidates[i].ID.Hex(),
				"error":   err.Error(),
			})
			// Contention and timeouts resolve themselves by the next run;
			// anything else deserves operator attention.
			if common.IsTransient(err) {
				entry.Warn("[Escalation] Sweep skipped issue after transient error")
			} else {
				entry.Error("[Escalation] Sweep skipped issue after error")
			}
			continue
		}
		result.ProcessedCount++
		if rec != nil {
			result.Escalations = append(result.Escalations, *rec)
		}
	}

	e.log.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"processed":  result.ProcessedCount,
		"escalated":  len(result.Escalations),
	}).Info("[Escalation] Sweep finished")

	return result, nil
}

// sweepOne escalates a single candidate inside its own transaction. Returns
// a nil record when the issue turned out ineligible on the fresh read (that
// is a no-op, not an error).
func (e *Engine) sweepOne(ctx context.Context, issueID primitive.ObjectID, nowMs int64) (*EscalationRecord, error) {
	var rec *EscalationRecord

	err := e.issues.WithTransaction(ctx, func(txCtx context.Context) error {
		issue, err := e.issues.FindOneById(txCtx, issueID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil // deleted between query and transaction
			}
			return err
		}

		// A manual escalation armed the one-shot suppression: consume it
		// instead of escalating, so the manual bump and the next sweep
		// cannot double-jump the issue.
		if issue.AutoEscalationSuppressed {
			if err := e.issues.ConsumeAutoSuppression(txCtx, issue.ID, issue.EscalatedLevel); err != nil && !errors.Is(err, common.ErrNotFound) {
				return err
			}
			return nil
		}

		// Re-validate on the fresh read; the candidate query may be stale.
		if !IsDueForAutoEscalation(&issue, nowMs) {
			return nil
		}

		toRole, ok := NextRole(issue.AssignedRole)
		if !ok {
			return nil // already at ddo
		}

		updated, err := e.escalate(txCtx, &issue, toRole, issuemodels.EscalationTypeAuto, ReasonSLABreached, nowMs)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil // lost the race to a concurrent run
			}
			return err
		}

		rec = &EscalationRecord{
			IssueID:    updated.ID.Hex(),
			From:       issue.AssignedRole,
			To:         toRole,
			DaysPassed: DaysPassed(issue.CreatedAt, nowMs),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// RequestManualEscalation handles the villager-triggered path. Preconditions
// are validated against a fresh read inside the transaction, and the
// manualEscalationUsed guard on the write makes sure only one of two racing
// requests succeeds. Returns the new escalatedLevel.
func (e *Engine) RequestManualEscalation(ctx context.Context, issueID primitive.ObjectID, requesterID string, now time.Time) (int, error) {
	nowMs := now.UnixMilli()
	newLevel := 0

	err := e.issues.WithTransaction(ctx, func(txCtx context.Context) error {
		issue, err := e.issues.FindOneById(txCtx, issueID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrIssueNotFound
			}
			return err
		}

		if err := CheckManualEscalation(&issue, requesterID, nowMs); err != nil {
			return err
		}

		toRole, _ := NextRole(issue.AssignedRole)
		updated, err := e.escalate(txCtx, &issue, toRole, issuemodels.EscalationTypeManual, ReasonManualEscalated, nowMs)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				// A concurrent request burned the flag first.
				return common.ErrEscalationAlreadyUsed
			}
			return err
		}

		newLevel = updated.EscalatedLevel
		return nil
	})
	if err != nil {
		return 0, err
	}

	e.log.WithFields(logrus.Fields{
		"issueId":  issueID.Hex(),
		"newLevel": newLevel,
	}).Info("[Escalation] Manual escalation committed")

	return newLevel, nil
}

// escalate applies the guarded transition and queues the notification, both
// on the caller's (transactional) context. The authority is resolved first so
// a missing target can be noted in the history reason; a missing authority
// never blocks the transition itself.
func (e *Engine) escalate(txCtx context.Context, issue *issuemodels.Issue, toRole, escType, reason string, nowMs int64) (issuemodels.Issue, error) {
	var zero issuemodels.Issue

	authority, err := e.directory.FindForRole(txCtx, toRole, issue.Jurisdiction)
	authorityFound := err == nil
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return zero, err
	}
	if !authorityFound {
		reason = fmt.Sprintf("%s (no authority found for role %s)", reason, toRole)
	}

	updated, err := e.issues.ApplyEscalation(txCtx, issuesvc.EscalationUpdate{
		IssueID:   issue.ID,
		FromLevel: issue.EscalatedLevel,
		ToRole:    toRole,
		NewDueAt:  NextResolveDueAt(nowMs, EffectiveSlaDays(issue)),
		Entry: issuemodels.EscalationEntry{
			Type:   escType,
			From:   issue.AssignedRole,
			To:     toRole,
			At:     nowMs,
			Reason: reason,
		},
		Manual: escType == issuemodels.EscalationTypeManual,
	})
	if err != nil {
		return zero, err
	}

	if authorityFound {
		mail := BuildEscalationMail(&updated, toRole, reason, e.cfg.FrontendURL)
		if _, err := e.sink.Enqueue(txCtx, outboxmodels.MailQueueItem{
			Recipient: authority.Email,
			Subject:   mail.Subject,
			Body:      mail.HTML,
			IssueID:   updated.ID,
		}); err != nil {
			return zero, err
		}
	}

	if updated.ReporterEmail != "" {
		mail := BuildReporterMail(&updated, toRole, e.cfg.FrontendURL)
		if _, err := e.sink.Enqueue(txCtx, outboxmodels.MailQueueItem{
			Recipient: updated.ReporterEmail,
			Subject:   mail.Subject,
			Body:      mail.HTML,
			IssueID:   updated.ID,
		}); err != nil {
			return zero, err
		}
	}

	return updated, nil
}
