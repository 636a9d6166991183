// Package issuedto holds the transport-layer inputs for the Issue domain.
package issuedto

// JurisdictionInput locates the issue in the administrative hierarchy.
type JurisdictionInput struct {
	PanchayatID string `json:"panchayatId" validate:"required"`
	Taluk       string `json:"taluk" validate:"required"`
	District    string `json:"district" validate:"required"`
}

// IssueCreateInput is the villager's issue submission.
type IssueCreateInput struct {
	Title        string            `json:"title" validate:"required,max=200,no_xss"`
	Category     string            `json:"category,omitempty" validate:"omitempty,max=100,no_xss"`
	Description  string            `json:"description,omitempty" validate:"omitempty,max=4000,no_xss"`
	Jurisdiction JurisdictionInput `json:"jurisdiction" validate:"required"`
	SlaDays      int               `json:"slaDays,omitempty" validate:"omitempty,min=1,max=90"`
}

// IssueStatusUpdateInput is the authority's status change.
type IssueStatusUpdateInput struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress resolved closed"`
}
