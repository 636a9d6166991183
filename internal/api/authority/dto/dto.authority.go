package authoritydto

// JurisdictionInput scopes an authority to the area it serves. The fields an
// authority actually needs depend on its role, so only the district is
// mandatory here; the lookup filters decide what matters per role.
type JurisdictionInput struct {
	PanchayatID string `json:"panchayatId" validate:"omitempty,no_xss"`
	Taluk       string `json:"taluk" validate:"omitempty,no_xss"`
	District    string `json:"district" validate:"required,no_xss"`
}

// AuthorityCreateInput seeds a directory entry.
type AuthorityCreateInput struct {
	Name         string            `json:"name" validate:"required,max=200,no_xss"`
	Email        string            `json:"email" validate:"required,email"`
	Role         string            `json:"role" validate:"required,oneof=vi pdo tdo ddo"`
	Jurisdiction JurisdictionInput `json:"jurisdiction" validate:"required"`
	Verified     bool              `json:"verified"`
}

// AuthorityUpdateInput toggles the fields an operator may change after
// seeding.
type AuthorityUpdateInput struct {
	Name     string `json:"name" validate:"omitempty,max=200,no_xss"`
	Email    string `json:"email" validate:"omitempty,email"`
	Verified *bool  `json:"verified" validate:"omitempty"`
}
