// Package escalation implements the issue escalation engine: the pure policy
// deciding when an issue moves up the authority chain, and the engine that
// commits those transitions transactionally and queues the notifications.
package escalation

import (
	authoritymodels "github.com/IncharaS06/vital/internal/api/authority/models"
	issuemodels "github.com/IncharaS06/vital/internal/api/issue/models"
	"github.com/IncharaS06/vital/internal/common"
)

const millisPerDay = int64(24 * 60 * 60 * 1000)

// DefaultSlaDays applies when an issue carries no SLA window of its own.
const DefaultSlaDays = 7

// roleChain is the authority ladder, lowest tier first. ddo is terminal.
var roleChain = []string{
	authoritymodels.RoleVillageIncharge,
	authoritymodels.RolePDO,
	authoritymodels.RoleTDO,
	authoritymodels.RoleDDO,
}

// roleLabels are the display names used in notifications.
var roleLabels = map[string]string{
	authoritymodels.RoleVillageIncharge: "Village In-charge",
	authoritymodels.RolePDO:             "PDO",
	authoritymodels.RoleTDO:             "TDO",
	authoritymodels.RoleDDO:             "DDO",
}

// NextRole returns the role one tier above current, or ok=false when current
// is already the terminal tier (or unknown).
func NextRole(current string) (string, bool) {
	for i, role := range roleChain {
		if role == current && i+1 < len(roleChain) {
			return roleChain[i+1], true
		}
	}
	return "", false
}

// RoleLabel returns the display name for a role, falling back to the raw
// value for unknown roles.
func RoleLabel(role string) string {
	if label, ok := roleLabels[role]; ok {
		return label
	}
	return role
}

// EffectiveSlaDays returns the issue's SLA window, defaulted when absent.
func EffectiveSlaDays(issue *issuemodels.Issue) int {
	if issue.SlaDays <= 0 {
		return DefaultSlaDays
	}
	return issue.SlaDays
}

// NextResolveDueAt computes the deadline for the tier an issue is entering:
// a fresh SLA window counted from the moment of the transition.
func NextResolveDueAt(now int64, slaDays int) int64 {
	if slaDays <= 0 {
		slaDays = DefaultSlaDays
	}
	return now + int64(slaDays)*millisPerDay
}

// DaysPassed returns whole days elapsed since the issue was filed.
func DaysPassed(createdAt, now int64) int {
	if now <= createdAt {
		return 0
	}
	return int((now - createdAt) / millisPerDay)
}

// IsDueForAutoEscalation reports whether the sweep should advance the issue:
// not terminal, deadline present and elapsed, and a next tier exists.
// The one-shot suppression after a manual escalation is handled by the
// engine, not here; this predicate only reads the deadline state.
func IsDueForAutoEscalation(issue *issuemodels.Issue, now int64) bool {
	if issue.IsTerminal() {
		return false
	}
	if issue.ResolveDueAt <= 0 || now < issue.ResolveDueAt {
		return false
	}
	_, ok := NextRole(issue.AssignedRole)
	return ok
}

// CheckManualEscalation validates a villager's manual escalation request
// against the issue snapshot. Returns nil when the request may proceed, or
// the specific precondition failure so the caller can tell the villager
// exactly why the action is unavailable.
func CheckManualEscalation(issue *issuemodels.Issue, requesterID string, now int64) error {
	if issue.ReporterID != requesterID {
		return common.ErrEscalationNotReporter
	}
	if issue.IsTerminal() {
		return common.ErrEscalationIssueTerminal
	}
	if issue.ResolveDueAt <= 0 {
		return common.ErrEscalationMissingDeadline
	}
	if now < issue.ResolveDueAt {
		return common.ErrEscalationTooEarly
	}
	if issue.ManualEscalationUsed {
		return common.ErrEscalationAlreadyUsed
	}
	if _, ok := NextRole(issue.AssignedRole); !ok {
		return common.ErrEscalationAtFinalAuthority
	}
	return nil
}
