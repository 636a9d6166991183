// Package models - Issue belongs to the Issue domain (issues collection).
// An issue is a civic ticket filed by a villager and walked up the authority
// chain by the escalation engine.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Issue statuses. resolved and closed are terminal: they freeze the
// escalation chain.
const (
	IssueStatusPending    = "pending"
	IssueStatusInProgress = "in_progress"
	IssueStatusResolved   = "resolved"
	IssueStatusClosed     = "closed"
)

// TerminalStatuses are the statuses no escalation may move past.
var TerminalStatuses = []string{IssueStatusResolved, IssueStatusClosed}

// Escalation trigger types recorded in history entries.
const (
	EscalationTypeAuto   = "auto"
	EscalationTypeManual = "manual"
)

// Jurisdiction locates an issue in the administrative hierarchy. Assigned at
// creation, immutable afterwards.
type Jurisdiction struct {
	PanchayatID string `json:"panchayatId,omitempty" bson:"panchayatId,omitempty"`
	Taluk       string `json:"taluk,omitempty" bson:"taluk,omitempty"`
	District    string `json:"district,omitempty" bson:"district,omitempty"`
}

// EscalationEntry is one append-only history record. Every entry pairs with
// exactly one escalatedLevel increment.
type EscalationEntry struct {
	Type   string `json:"type" bson:"type"` // auto | manual
	From   string `json:"from" bson:"from"`
	To     string `json:"to" bson:"to"`
	At     int64  `json:"at" bson:"at"` // Unix millis
	Reason string `json:"reason" bson:"reason"`
}

// EscalationState groups the escalation bookkeeping on an issue.
type EscalationState struct {
	LastEscalatedTo string            `json:"lastEscalatedTo,omitempty" bson:"lastEscalatedTo,omitempty"`
	History         []EscalationEntry `json:"history" bson:"history"`
}

// Issue is a civic ticket (issues collection).
type Issue struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	// Content — immutable after creation except via the reporter's own edit flow.
	Title       string `json:"title" bson:"title"`
	Category    string `json:"category,omitempty" bson:"category,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`

	Jurisdiction Jurisdiction `json:"jurisdiction" bson:"jurisdiction"`

	// ReporterID is the Firebase UID of the villager who filed the issue.
	ReporterID string `json:"reporterId" bson:"reporterId" index:"single:1"`

	// ReporterEmail is captured at intake from the Firebase account so the
	// reporter can be notified when their issue escalates. May be empty.
	ReporterEmail string `json:"reporterEmail,omitempty" bson:"reporterEmail,omitempty"`

	Status       string `json:"status" bson:"status" index:"single:1"` // pending | in_progress | resolved | closed
	AssignedRole string `json:"assignedRole" bson:"assignedRole"`      // vi | pdo | tdo | ddo

	// EscalatedLevel counts committed escalations. Monotonically
	// non-decreasing; level 0 is the initial assignment.
	EscalatedLevel int `json:"escalatedLevel" bson:"escalatedLevel"`

	// SlaDays is the SLA window in days for the current tier.
	SlaDays int `json:"slaDays" bson:"slaDays"`

	// ResolveDueAt is when the current tier's window expires (Unix millis).
	// Recomputed on every tier advance.
	ResolveDueAt int64 `json:"resolveDueAt,omitempty" bson:"resolveDueAt,omitempty"`

	// ManualEscalationUsed is set the first time the reporter manually
	// escalates. A second manual escalation is rejected.
	ManualEscalationUsed bool `json:"manualEscalationUsed" bson:"manualEscalationUsed"`

	// AutoEscalationSuppressed is set alongside a manual escalation and
	// consumed by the next sweep visit, so a manual bump right before the
	// scheduled sweep does not double-jump the issue.
	AutoEscalationSuppressed bool `json:"autoEscalationSuppressed,omitempty" bson:"autoEscalationSuppressed,omitempty"`

	Escalation EscalationState `json:"escalation" bson:"escalation"`

	ResolvedAt *int64 `json:"resolvedAt,omitempty" bson:"resolvedAt,omitempty"`
	CreatedAt  int64  `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64  `json:"updatedAt" bson:"updatedAt"`
}

// IsTerminal reports whether the issue's status freezes the escalation chain.
func (i *Issue) IsTerminal() bool {
	return i.Status == IssueStatusResolved || i.Status == IssueStatusClosed
}
