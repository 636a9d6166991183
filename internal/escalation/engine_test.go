package escalation

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authoritymodels "github.com/IncharaS06/vital/internal/api/authority/models"
	issuemodels "github.com/IncharaS06/vital/internal/api/issue/models"
	issuesvc "github.com/IncharaS06/vital/internal/api/issue/service"
	outboxmodels "github.com/IncharaS06/vital/internal/api/outbox/models"
	"github.com/IncharaS06/vital/internal/common"
)

// fakeIssueStore is an in-memory IssueStore mirroring the guard semantics of
// the Mongo implementation: a stale FromLevel, a terminal status, or a burnt
// manual flag makes the write miss with ErrNotFound. WithTransaction
// snapshots the state and restores it on error, like a rollback would.
type fakeIssueStore struct {
	issues map[primitive.ObjectID]issuemodels.Issue
}

func newFakeIssueStore(issues ...issuemodels.Issue) *fakeIssueStore {
	s := &fakeIssueStore{issues: map[primitive.ObjectID]issuemodels.Issue{}}
	for _, issue := range issues {
		s.issues[issue.ID] = issue
	}
	return s
}

func (s *fakeIssueStore) FindDue(ctx context.Context, now int64, limit int64) ([]issuemodels.Issue, error) {
	var due []issuemodels.Issue
	for _, issue := range s.issues {
		if issue.IsTerminal() {
			continue
		}
		if issue.ResolveDueAt <= 0 || issue.ResolveDueAt > now {
			continue
		}
		due = append(due, issue)
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ResolveDueAt < due[j].ResolveDueAt })
	if int64(len(due)) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (s *fakeIssueStore) FindOneById(ctx context.Context, id primitive.ObjectID) (issuemodels.Issue, error) {
	issue, ok := s.issues[id]
	if !ok {
		return issuemodels.Issue{}, common.ErrNotFound
	}
	return issue, nil
}

func (s *fakeIssueStore) ApplyEscalation(ctx context.Context, u issuesvc.EscalationUpdate) (issuemodels.Issue, error) {
	issue, ok := s.issues[u.IssueID]
	if !ok || issue.IsTerminal() || issue.EscalatedLevel != u.FromLevel {
		return issuemodels.Issue{}, common.ErrNotFound
	}
	if u.Manual && issue.ManualEscalationUsed {
		return issuemodels.Issue{}, common.ErrNotFound
	}

	issue.EscalatedLevel = u.FromLevel + 1
	issue.AssignedRole = u.ToRole
	issue.ResolveDueAt = u.NewDueAt
	issue.Escalation.LastEscalatedTo = u.ToRole
	issue.Escalation.History = append(issue.Escalation.History, u.Entry)
	if u.Manual {
		issue.ManualEscalationUsed = true
		issue.AutoEscalationSuppressed = true
	}

	s.issues[u.IssueID] = issue
	return issue, nil
}

func (s *fakeIssueStore) ConsumeAutoSuppression(ctx context.Context, issueID primitive.ObjectID, level int) error {
	issue, ok := s.issues[issueID]
	if !ok || issue.EscalatedLevel != level || !issue.AutoEscalationSuppressed {
		return common.ErrNotFound
	}
	issue.AutoEscalationSuppressed = false
	s.issues[issueID] = issue
	return nil
}

func (s *fakeIssueStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := make(map[primitive.ObjectID]issuemodels.Issue, len(s.issues))
	for id, issue := range s.issues {
		snapshot[id] = issue
	}
	if err := fn(ctx); err != nil {
		s.issues = snapshot
		return err
	}
	return nil
}

// staleReadStore wraps fakeIssueStore to model a reader that raced a writer
// whose transition already committed: the candidate list and the first fresh
// read serve a stale snapshot, while writes keep hitting the live state. The
// guard filter on the write is then the only thing standing between the two.
type staleReadStore struct {
	*fakeIssueStore
	stale issuemodels.Issue
	read  bool
}

func (s *staleReadStore) FindDue(ctx context.Context, now int64, limit int64) ([]issuemodels.Issue, error) {
	return []issuemodels.Issue{s.stale}, nil
}

func (s *staleReadStore) FindOneById(ctx context.Context, id primitive.ObjectID) (issuemodels.Issue, error) {
	if !s.read && id == s.stale.ID {
		s.read = true
		return s.stale, nil
	}
	return s.fakeIssueStore.FindOneById(ctx, id)
}

// fakeDirectory serves authorities by role; roles not present report
// ErrNotFound like the Mongo lookup does.
type fakeDirectory struct {
	byRole map[string]authoritymodels.Authority
}

func (d *fakeDirectory) FindForRole(ctx context.Context, role string, j issuemodels.Jurisdiction) (authoritymodels.Authority, error) {
	authority, ok := d.byRole[role]
	if !ok {
		return authoritymodels.Authority{}, common.ErrNotFound
	}
	return authority, nil
}

type fakeSink struct {
	items   []outboxmodels.MailQueueItem
	failErr error
}

func (s *fakeSink) Enqueue(ctx context.Context, item outboxmodels.MailQueueItem) (outboxmodels.MailQueueItem, error) {
	if s.failErr != nil {
		return outboxmodels.MailQueueItem{}, s.failErr
	}
	s.items = append(s.items, item)
	return item, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func allRolesDirectory() *fakeDirectory {
	return &fakeDirectory{byRole: map[string]authoritymodels.Authority{
		authoritymodels.RolePDO: {Email: "pdo@example.gov.in", Role: authoritymodels.RolePDO},
		authoritymodels.RoleTDO: {Email: "tdo@example.gov.in", Role: authoritymodels.RoleTDO},
		authoritymodels.RoleDDO: {Email: "ddo@example.gov.in", Role: authoritymodels.RoleDDO},
	}}
}

func overdueIssue(role string, level int, dueAt int64) issuemodels.Issue {
	return issuemodels.Issue{
		ID:             primitive.NewObjectID(),
		Title:          "Broken street light",
		ReporterID:     "uid-reporter",
		Status:         issuemodels.IssueStatusPending,
		AssignedRole:   role,
		EscalatedLevel: level,
		SlaDays:        7,
		ResolveDueAt:   dueAt,
	}
}

func TestRunSweep_EscalatesOverdueIssue(t *testing.T) {
	now := time.UnixMilli(30 * millisPerDay)
	issue := overdueIssue(authoritymodels.RoleVillageIncharge, 0, 10*millisPerDay)
	issue.CreatedAt = 3 * millisPerDay

	store := newFakeIssueStore(issue)
	sink := &fakeSink{}
	engine := NewEngine(store, allRolesDirectory(), sink, Config{FrontendURL: "http://vital.test"}, quietLogger())

	result, err := engine.RunSweep(context.Background(), now)
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if result.ProcessedCount != 1 {
		t.Errorf("ProcessedCount = %d, want 1", result.ProcessedCount)
	}
	if len(result.Escalations) != 1 {
		t.Fatalf("Escalations = %d, want 1", len(result.Escalations))
	}

	rec := result.Escalations[0]
	if rec.From != authoritymodels.RoleVillageIncharge || rec.To != authoritymodels.RolePDO {
		t.Errorf("transition %s -> %s, want vi -> pdo", rec.From, rec.To)
	}
	if rec.DaysPassed != 27 {
		t.Errorf("DaysPassed = %d, want 27", rec.DaysPassed)
	}

	got := store.issues[issue.ID]
	if got.EscalatedLevel != 1 {
		t.Errorf("escalatedLevel = %d, want 1", got.EscalatedLevel)
	}
	if got.AssignedRole != authoritymodels.RolePDO {
		t.Errorf("assignedRole = %q, want pdo", got.AssignedRole)
	}
	wantDue := now.UnixMilli() + 7*millisPerDay
	if got.ResolveDueAt != wantDue {
		t.Errorf("resolveDueAt = %d, want %d", got.ResolveDueAt, wantDue)
	}
	if len(got.Escalation.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(got.Escalation.History))
	}
	entry := got.Escalation.History[0]
	if entry.Type != issuemodels.EscalationTypeAuto || entry.Reason != ReasonSLABreached {
		t.Errorf("history entry = %+v, want auto / %q", entry, ReasonSLABreached)
	}

	if len(sink.items) != 1 {
		t.Fatalf("outbox items = %d, want 1", len(sink.items))
	}
	if sink.items[0].Recipient != "pdo@example.gov.in" {
		t.Errorf("recipient = %q, want the pdo authority", sink.items[0].Recipient)
	}
}

func TestRunSweep_MissingAuthorityStillEscalates(t *testing.T) {
	now := time.UnixMilli(30 * millisPerDay)
	issue := overdueIssue(authoritymodels.RoleVillageIncharge, 0, 10*millisPerDay)

	store := newFakeIssueStore(issue)
	sink := &fakeSink{}
	directory := &fakeDirectory{byRole: map[string]authoritymodels.Authority{}}
	engine := NewEngine(store, directory, sink, Config{}, quietLogger())

	result, err := engine.RunSweep(context.Background(), now)
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if len(result.Escalations) != 1 {
		t.Fatalf("Escalations = %d, want 1; the transition must not depend on the directory", len(result.Escalations))
	}

	got := store.issues[issue.ID]
	if got.EscalatedLevel != 1 {
		t.Errorf("escalatedLevel = %d, want 1", got.EscalatedLevel)
	}
	entry := got.Escalation.History[0]
	want := ReasonSLABreached + " (no authority found for role pdo)"
	if entry.Reason != want {
		t.Errorf("reason = %q, want %q", entry.Reason, want)
	}

	if len(sink.items) != 0 {
		t.Errorf("outbox items = %d, want 0 when no authority exists", len(sink.items))
	}
}

func TestRunSweep_ConsumesSuppressionWithoutEscalating(t *testing.T) {
	now := time.UnixMilli(40 * millisPerDay)
	issue := overdueIssue(authoritymodels.RolePDO, 1, 20*millisPerDay)
	issue.ManualEscalationUsed = true
	issue.AutoEscalationSuppressed = true

	store := newFakeIssueStore(issue)
	sink := &fakeSink{}
	engine := NewEngine(store, allRolesDirectory(), sink, Config{}, quietLogger())

	result, err := engine.RunSweep(context.Background(), now)
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if result.ProcessedCount != 1 {
		t.Errorf("ProcessedCount = %d, want 1", result.ProcessedCount)
	}
	if len(result.Escalations) != 0 {
		t.Errorf("Escalations = %d, want 0; the suppressed visit is a no-op", len(result.Escalations))
	}

	got := store.issues[issue.ID]
	if got.AutoEscalationSuppressed {
		t.Error("suppression flag should be consumed")
	}
	if got.EscalatedLevel != 1 {
		t.Errorf("escalatedLevel = %d, want unchanged 1", got.EscalatedLevel)
	}
	if len(sink.items) != 0 {
		t.Errorf("outbox items = %d, want 0", len(sink.items))
	}

	// The suppression is one-shot: the next sweep escalates normally.
	result, err = engine.RunSweep(context.Background(), now)
	if err != nil {
		t.Fatalf("second RunSweep: %v", err)
	}
	if len(result.Escalations) != 1 {
		t.Fatalf("second sweep Escalations = %d, want 1", len(result.Escalations))
	}
	got = store.issues[issue.ID]
	if got.EscalatedLevel != 2 || got.AssignedRole != authoritymodels.RoleTDO {
		t.Errorf("after second sweep: level=%d role=%q, want 2/tdo", got.EscalatedLevel, got.AssignedRole)
	}
}

func TestRunSweep_IssueAtTopTierIsLeftAlone(t *testing.T) {
	now := time.UnixMilli(40 * millisPerDay)
	issue := overdueIssue(authoritymodels.RoleDDO, 3, 20*millisPerDay)

	store := newFakeIssueStore(issue)
	sink := &fakeSink{}
	engine := NewEngine(store, allRolesDirectory(), sink, Config{}, quietLogger())

	result, err := engine.RunSweep(context.Background(), now)
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if len(result.Escalations) != 0 {
		t.Errorf("Escalations = %d, want 0 at the top tier", len(result.Escalations))
	}
	got := store.issues[issue.ID]
	if got.EscalatedLevel != 3 || got.AssignedRole != authoritymodels.RoleDDO {
		t.Errorf("ddo issue mutated: level=%d role=%q", got.EscalatedLevel, got.AssignedRole)
	}
}

func TestRunSweep_BatchCap(t *testing.T) {
	now := time.UnixMilli(40 * millisPerDay)
	var issues []issuemodels.Issue
	for i := 0; i < 5; i++ {
		issues = append(issues, overdueIssue(authoritymodels.RoleVillageIncharge, 0, int64(i+1)*millisPerDay))
	}

	store := newFakeIssueStore(issues...)
	sink := &fakeSink{}
	engine := NewEngine(store, allRolesDirectory(), sink, Config{BatchSize: 3}, quietLogger())

	result, err := engine.RunSweep(context.Background(), now)
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if result.ProcessedCount != 3 {
		t.Errorf("ProcessedCount = %d, want the batch cap 3", result.ProcessedCount)
	}
	if len(result.Escalations) != 3 {
		t.Errorf("Escalations = %d, want 3", len(result.Escalations))
	}
}

func TestRunSweep_SinkFailureRollsBackTransition(t *testing.T) {
	now := time.UnixMilli(30 * millisPerDay)
	issue := overdueIssue(authoritymodels.RoleVillageIncharge, 0, 10*millisPerDay)

	store := newFakeIssueStore(issue)
	sink := &fakeSink{failErr: errors.New("outbox unavailable")}
	engine := NewEngine(store, allRolesDirectory(), sink, Config{}, quietLogger())

	result, err := engine.RunSweep(context.Background(), now)
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if result.ProcessedCount != 0 || len(result.Escalations) != 0 {
		t.Errorf("failed candidate must be skipped, got processed=%d escalations=%d", result.ProcessedCount, len(result.Escalations))
	}

	// The escalation and the notification commit together or not at all.
	got := store.issues[issue.ID]
	if got.EscalatedLevel != 0 {
		t.Errorf("escalatedLevel = %d, want 0 after rollback", got.EscalatedLevel)
	}
}

func TestRunSweep_ConcurrentRunEscalatesOnce(t *testing.T) {
	now := time.UnixMilli(30 * millisPerDay)
	issue := overdueIssue(authoritymodels.RoleVillageIncharge, 0, 10*millisPerDay)

	store := newFakeIssueStore(issue)
	first := NewEngine(store, allRolesDirectory(), &fakeSink{}, Config{}, quietLogger())
	if _, err := first.RunSweep(context.Background(), now); err != nil {
		t.Fatalf("first RunSweep: %v", err)
	}
	if got := store.issues[issue.ID]; got.EscalatedLevel != 1 {
		t.Fatalf("after first sweep: level = %d, want 1", got.EscalatedLevel)
	}

	// A second run that queried and read before the first one committed
	// passes its own validation on the stale snapshot; the level pinned in
	// the write filter makes it lose.
	raceStore := &staleReadStore{fakeIssueStore: store, stale: issue}
	sink := &fakeSink{}
	second := NewEngine(raceStore, allRolesDirectory(), sink, Config{}, quietLogger())

	result, err := second.RunSweep(context.Background(), now)
	if err != nil {
		t.Fatalf("second RunSweep: %v", err)
	}
	if result.ProcessedCount != 1 {
		t.Errorf("ProcessedCount = %d, want 1; a lost race is a no-op, not an error", result.ProcessedCount)
	}
	if len(result.Escalations) != 0 {
		t.Errorf("Escalations = %d, want 0 for the losing run", len(result.Escalations))
	}

	got := store.issues[issue.ID]
	if got.EscalatedLevel != 1 {
		t.Errorf("escalatedLevel = %d, want 1; exactly one transition per window", got.EscalatedLevel)
	}
	if len(got.Escalation.History) != 1 {
		t.Errorf("history length = %d, want 1", len(got.Escalation.History))
	}
	if len(sink.items) != 0 {
		t.Errorf("losing run queued %d mails, want 0", len(sink.items))
	}
}

func TestRequestManualEscalation_RaceLoserGetsAlreadyUsed(t *testing.T) {
	now := time.UnixMilli(30 * millisPerDay)
	issue := overdueIssue(authoritymodels.RoleVillageIncharge, 0, 10*millisPerDay)

	store := newFakeIssueStore(issue)
	sink := &fakeSink{}
	winner := NewEngine(store, allRolesDirectory(), sink, Config{}, quietLogger())
	if _, err := winner.RequestManualEscalation(context.Background(), issue.ID, "uid-reporter", now); err != nil {
		t.Fatalf("winner RequestManualEscalation: %v", err)
	}

	// The loser read the issue before the winner's flag burn committed, so
	// its precondition check passes; the manualEscalationUsed guard on the
	// write must reject it and surface AlreadyUsed.
	raceStore := &staleReadStore{fakeIssueStore: store, stale: issue}
	loser := NewEngine(raceStore, allRolesDirectory(), sink, Config{}, quietLogger())

	_, err := loser.RequestManualEscalation(context.Background(), issue.ID, "uid-reporter", now)
	if !errors.Is(err, common.ErrEscalationAlreadyUsed) {
		t.Errorf("race loser: got %v, want ErrEscalationAlreadyUsed", err)
	}

	got := store.issues[issue.ID]
	if got.EscalatedLevel != 1 {
		t.Errorf("escalatedLevel = %d, want 1; only the winner's transition commits", got.EscalatedLevel)
	}
	if len(got.Escalation.History) != 1 {
		t.Errorf("history length = %d, want 1", len(got.Escalation.History))
	}
	if len(sink.items) != 1 {
		t.Errorf("outbox items = %d, want only the winner's mail", len(sink.items))
	}
}

func TestRunSweep_NotifiesReporterWhenEmailKnown(t *testing.T) {
	now := time.UnixMilli(30 * millisPerDay)
	issue := overdueIssue(authoritymodels.RoleVillageIncharge, 0, 10*millisPerDay)
	issue.ReporterEmail = "villager@example.com"

	store := newFakeIssueStore(issue)
	sink := &fakeSink{}
	engine := NewEngine(store, allRolesDirectory(), sink, Config{}, quietLogger())

	if _, err := engine.RunSweep(context.Background(), now); err != nil {
		t.Fatalf("RunSweep: %v", err)
	}

	if len(sink.items) != 2 {
		t.Fatalf("outbox items = %d, want authority + reporter", len(sink.items))
	}
	recipients := map[string]bool{}
	for _, item := range sink.items {
		recipients[item.Recipient] = true
	}
	if !recipients["pdo@example.gov.in"] || !recipients["villager@example.com"] {
		t.Errorf("recipients = %v, want authority and reporter", recipients)
	}
}

func TestRequestManualEscalation_Succeeds(t *testing.T) {
	now := time.UnixMilli(30 * millisPerDay)
	issue := overdueIssue(authoritymodels.RoleVillageIncharge, 0, 10*millisPerDay)

	store := newFakeIssueStore(issue)
	sink := &fakeSink{}
	engine := NewEngine(store, allRolesDirectory(), sink, Config{}, quietLogger())

	newLevel, err := engine.RequestManualEscalation(context.Background(), issue.ID, "uid-reporter", now)
	if err != nil {
		t.Fatalf("RequestManualEscalation: %v", err)
	}
	if newLevel != 1 {
		t.Errorf("newLevel = %d, want 1", newLevel)
	}

	got := store.issues[issue.ID]
	if !got.ManualEscalationUsed {
		t.Error("manualEscalationUsed should be burnt")
	}
	if !got.AutoEscalationSuppressed {
		t.Error("autoEscalationSuppressed should be armed")
	}
	if got.AssignedRole != authoritymodels.RolePDO {
		t.Errorf("assignedRole = %q, want pdo", got.AssignedRole)
	}
	if len(got.Escalation.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(got.Escalation.History))
	}
	entry := got.Escalation.History[0]
	if entry.Type != issuemodels.EscalationTypeManual || entry.Reason != ReasonManualEscalated {
		t.Errorf("history entry = %+v, want manual / %q", entry, ReasonManualEscalated)
	}
	if len(sink.items) != 1 {
		t.Errorf("outbox items = %d, want 1", len(sink.items))
	}
}

func TestRequestManualEscalation_SingleUse(t *testing.T) {
	now := time.UnixMilli(30 * millisPerDay)
	issue := overdueIssue(authoritymodels.RoleVillageIncharge, 0, 10*millisPerDay)

	store := newFakeIssueStore(issue)
	engine := NewEngine(store, allRolesDirectory(), &fakeSink{}, Config{}, quietLogger())

	if _, err := engine.RequestManualEscalation(context.Background(), issue.ID, "uid-reporter", now); err != nil {
		t.Fatalf("first RequestManualEscalation: %v", err)
	}

	// Even far past the new deadline the second manual attempt must fail.
	later := time.UnixMilli(300 * millisPerDay)
	_, err := engine.RequestManualEscalation(context.Background(), issue.ID, "uid-reporter", later)
	if !errors.Is(err, common.ErrEscalationAlreadyUsed) {
		t.Errorf("second attempt: got %v, want ErrEscalationAlreadyUsed", err)
	}

	got := store.issues[issue.ID]
	if got.EscalatedLevel != 1 {
		t.Errorf("escalatedLevel = %d, want 1; the failed retry must not advance", got.EscalatedLevel)
	}
}

func TestRequestManualEscalation_Preconditions(t *testing.T) {
	now := time.UnixMilli(30 * millisPerDay)
	issue := overdueIssue(authoritymodels.RoleVillageIncharge, 0, 10*millisPerDay)
	store := newFakeIssueStore(issue)
	engine := NewEngine(store, allRolesDirectory(), &fakeSink{}, Config{}, quietLogger())

	if _, err := engine.RequestManualEscalation(context.Background(), primitive.NewObjectID(), "uid-reporter", now); !errors.Is(err, common.ErrIssueNotFound) {
		t.Errorf("unknown issue: got %v, want ErrIssueNotFound", err)
	}

	if _, err := engine.RequestManualEscalation(context.Background(), issue.ID, "uid-other", now); !errors.Is(err, common.ErrEscalationNotReporter) {
		t.Errorf("non-reporter: got %v, want ErrEscalationNotReporter", err)
	}

	early := time.UnixMilli(5 * millisPerDay)
	if _, err := engine.RequestManualEscalation(context.Background(), issue.ID, "uid-reporter", early); !errors.Is(err, common.ErrEscalationTooEarly) {
		t.Errorf("before deadline: got %v, want ErrEscalationTooEarly", err)
	}

	got := store.issues[issue.ID]
	if got.EscalatedLevel != 0 {
		t.Errorf("escalatedLevel = %d, want 0; rejected requests must not mutate", got.EscalatedLevel)
	}
}

func TestManualThenSweep_NoDoubleJump(t *testing.T) {
	issue := overdueIssue(authoritymodels.RoleVillageIncharge, 0, 10*millisPerDay)
	issue.SlaDays = 1

	store := newFakeIssueStore(issue)
	engine := NewEngine(store, allRolesDirectory(), &fakeSink{}, Config{}, quietLogger())

	manualAt := time.UnixMilli(12 * millisPerDay)
	if _, err := engine.RequestManualEscalation(context.Background(), issue.ID, "uid-reporter", manualAt); err != nil {
		t.Fatalf("RequestManualEscalation: %v", err)
	}

	// The pdo window has lapsed too, but the first sweep after a manual
	// bump only disarms the suppression.
	sweepAt := time.UnixMilli(20 * millisPerDay)
	if _, err := engine.RunSweep(context.Background(), sweepAt); err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if got := store.issues[issue.ID]; got.EscalatedLevel != 1 {
		t.Fatalf("after manual + one sweep: level = %d, want 1", got.EscalatedLevel)
	}

	if _, err := engine.RunSweep(context.Background(), sweepAt); err != nil {
		t.Fatalf("second RunSweep: %v", err)
	}
	if got := store.issues[issue.ID]; got.EscalatedLevel != 2 {
		t.Errorf("after second sweep: level = %d, want 2", got.EscalatedLevel)
	}
}
