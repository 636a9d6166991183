package escalation

import (
	"errors"
	"testing"

	authoritymodels "github.com/IncharaS06/vital/internal/api/authority/models"
	issuemodels "github.com/IncharaS06/vital/internal/api/issue/models"
	"github.com/IncharaS06/vital/internal/common"
)

func TestNextRole_Chain(t *testing.T) {
	cases := []struct {
		current string
		want    string
		ok      bool
	}{
		{authoritymodels.RoleVillageIncharge, authoritymodels.RolePDO, true},
		{authoritymodels.RolePDO, authoritymodels.RoleTDO, true},
		{authoritymodels.RoleTDO, authoritymodels.RoleDDO, true},
		{authoritymodels.RoleDDO, "", false},
		{"unknown", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := NextRole(tc.current)
		if got != tc.want || ok != tc.ok {
			t.Errorf("NextRole(%q) = (%q, %v), want (%q, %v)", tc.current, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRoleLabel(t *testing.T) {
	if got := RoleLabel(authoritymodels.RolePDO); got != "PDO" {
		t.Errorf("RoleLabel(pdo) = %q, want PDO", got)
	}
	if got := RoleLabel("mystery"); got != "mystery" {
		t.Errorf("RoleLabel should fall back to the raw value, got %q", got)
	}
}

func TestEffectiveSlaDays(t *testing.T) {
	if got := EffectiveSlaDays(&issuemodels.Issue{SlaDays: 3}); got != 3 {
		t.Errorf("EffectiveSlaDays = %d, want 3", got)
	}
	if got := EffectiveSlaDays(&issuemodels.Issue{}); got != DefaultSlaDays {
		t.Errorf("EffectiveSlaDays with no SLA = %d, want %d", got, DefaultSlaDays)
	}
}

func TestNextResolveDueAt(t *testing.T) {
	now := int64(1_000_000)
	if got := NextResolveDueAt(now, 2); got != now+2*millisPerDay {
		t.Errorf("NextResolveDueAt = %d, want %d", got, now+2*millisPerDay)
	}
	// Zero and negative windows fall back to the default
	if got := NextResolveDueAt(now, 0); got != now+int64(DefaultSlaDays)*millisPerDay {
		t.Errorf("NextResolveDueAt with zero slaDays = %d, want default window", got)
	}
}

func TestDaysPassed(t *testing.T) {
	created := int64(0)
	if got := DaysPassed(created, 9*millisPerDay+1); got != 9 {
		t.Errorf("DaysPassed = %d, want 9", got)
	}
	if got := DaysPassed(100, 50); got != 0 {
		t.Errorf("DaysPassed with now before createdAt = %d, want 0", got)
	}
}

func TestIsDueForAutoEscalation(t *testing.T) {
	now := int64(10 * millisPerDay)

	base := issuemodels.Issue{
		Status:       issuemodels.IssueStatusPending,
		AssignedRole: authoritymodels.RoleVillageIncharge,
		ResolveDueAt: now - 1,
	}

	if !IsDueForAutoEscalation(&base, now) {
		t.Error("overdue pending issue at vi should be due")
	}

	resolved := base
	resolved.Status = issuemodels.IssueStatusResolved
	if IsDueForAutoEscalation(&resolved, now) {
		t.Error("resolved issue must never be due")
	}

	closed := base
	closed.Status = issuemodels.IssueStatusClosed
	if IsDueForAutoEscalation(&closed, now) {
		t.Error("closed issue must never be due")
	}

	noDeadline := base
	noDeadline.ResolveDueAt = 0
	if IsDueForAutoEscalation(&noDeadline, now) {
		t.Error("issue without a deadline must not be due")
	}

	early := base
	early.ResolveDueAt = now + 1
	if IsDueForAutoEscalation(&early, now) {
		t.Error("issue before its deadline must not be due")
	}

	atDeadline := base
	atDeadline.ResolveDueAt = now
	if !IsDueForAutoEscalation(&atDeadline, now) {
		t.Error("issue exactly at its deadline should be due")
	}

	atTop := base
	atTop.AssignedRole = authoritymodels.RoleDDO
	if IsDueForAutoEscalation(&atTop, now) {
		t.Error("issue already at ddo has no next tier and must not be due")
	}
}

func TestCheckManualEscalation_PreconditionOrder(t *testing.T) {
	now := int64(20 * millisPerDay)
	reporter := "uid-reporter"

	eligible := func() issuemodels.Issue {
		return issuemodels.Issue{
			ReporterID:   reporter,
			Status:       issuemodels.IssueStatusInProgress,
			AssignedRole: authoritymodels.RolePDO,
			ResolveDueAt: now - millisPerDay,
		}
	}

	ok := eligible()
	if err := CheckManualEscalation(&ok, reporter, now); err != nil {
		t.Fatalf("eligible issue rejected: %v", err)
	}

	stranger := eligible()
	if err := CheckManualEscalation(&stranger, "uid-other", now); !errors.Is(err, common.ErrEscalationNotReporter) {
		t.Errorf("non-reporter: got %v, want ErrEscalationNotReporter", err)
	}

	terminal := eligible()
	terminal.Status = issuemodels.IssueStatusClosed
	if err := CheckManualEscalation(&terminal, reporter, now); !errors.Is(err, common.ErrEscalationIssueTerminal) {
		t.Errorf("terminal issue: got %v, want ErrEscalationIssueTerminal", err)
	}

	noDeadline := eligible()
	noDeadline.ResolveDueAt = 0
	if err := CheckManualEscalation(&noDeadline, reporter, now); !errors.Is(err, common.ErrEscalationMissingDeadline) {
		t.Errorf("missing deadline: got %v, want ErrEscalationMissingDeadline", err)
	}

	early := eligible()
	early.ResolveDueAt = now + 1
	if err := CheckManualEscalation(&early, reporter, now); !errors.Is(err, common.ErrEscalationTooEarly) {
		t.Errorf("before deadline: got %v, want ErrEscalationTooEarly", err)
	}

	used := eligible()
	used.ManualEscalationUsed = true
	if err := CheckManualEscalation(&used, reporter, now); !errors.Is(err, common.ErrEscalationAlreadyUsed) {
		t.Errorf("already used: got %v, want ErrEscalationAlreadyUsed", err)
	}

	top := eligible()
	top.AssignedRole = authoritymodels.RoleDDO
	if err := CheckManualEscalation(&top, reporter, now); !errors.Is(err, common.ErrEscalationAtFinalAuthority) {
		t.Errorf("at ddo: got %v, want ErrEscalationAtFinalAuthority", err)
	}

	// Ownership is checked before everything else: a stranger poking a
	// closed issue learns nothing beyond "not yours"
	strangerClosed := eligible()
	strangerClosed.Status = issuemodels.IssueStatusClosed
	if err := CheckManualEscalation(&strangerClosed, "uid-other", now); !errors.Is(err, common.ErrEscalationNotReporter) {
		t.Errorf("stranger on closed issue: got %v, want ErrEscalationNotReporter", err)
	}
}
