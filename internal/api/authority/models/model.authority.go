// Package models - Authority belongs to the Authority domain (authorities
// collection). Read-only from the escalation engine's point of view.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	issuemodels "github.com/IncharaS06/vital/internal/api/issue/models"
)

// Authority roles, in ascending order of the escalation chain.
const (
	RoleVillageIncharge = "vi"
	RolePDO             = "pdo"
	RoleTDO             = "tdo"
	RoleDDO             = "ddo"
)

// Authority is an officer account holding one role for one jurisdiction.
// Only verified authorities are eligible escalation targets.
type Authority struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Role  string `json:"role" bson:"role" index:"single:1"` // vi | pdo | tdo | ddo

	Jurisdiction issuemodels.Jurisdiction `json:"jurisdiction" bson:"jurisdiction"`

	Verified bool `json:"verified" bson:"verified"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
