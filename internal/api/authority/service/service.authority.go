// Package authoritysvc contains the data-access service for the Authority
// domain. The escalation engine only reads from it.
package authoritysvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	authoritymodels "github.com/IncharaS06/vital/internal/api/authority/models"
	basesvc "github.com/IncharaS06/vital/internal/api/base/service"
	issuemodels "github.com/IncharaS06/vital/internal/api/issue/models"
	"github.com/IncharaS06/vital/internal/common"
	"github.com/IncharaS06/vital/internal/global"
)

// AuthorityService manages the authorities collection.
type AuthorityService struct {
	*basesvc.BaseServiceMongoImpl[authoritymodels.Authority]
}

// NewAuthorityService creates a new AuthorityService.
func NewAuthorityService() (*AuthorityService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Authorities)
	if !exist {
		return nil, fmt.Errorf("failed to get authorities collection: %v", common.ErrNotFound)
	}

	return &AuthorityService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[authoritymodels.Authority](collection),
	}, nil
}

// FindForRole resolves the verified authority holding the given role for the
// issue's jurisdiction. Which jurisdiction fields matter depends on the tier:
// vi and pdo are panchayat-scoped, tdo is taluk-scoped, ddo district-scoped.
// Returns common.ErrNotFound when nobody verified holds the post.
func (s *AuthorityService) FindForRole(ctx context.Context, role string, j issuemodels.Jurisdiction) (authoritymodels.Authority, error) {
	filter := bson.M{
		"role":     role,
		"verified": true,
	}

	switch role {
	case authoritymodels.RoleVillageIncharge, authoritymodels.RolePDO:
		filter["jurisdiction.panchayatId"] = j.PanchayatID
	case authoritymodels.RoleTDO:
		filter["jurisdiction.taluk"] = j.Taluk
		filter["jurisdiction.district"] = j.District
	case authoritymodels.RoleDDO:
		filter["jurisdiction.district"] = j.District
	default:
		var zero authoritymodels.Authority
		return zero, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("unknown authority role: %q", role),
			common.StatusBadRequest,
			nil,
		)
	}

	return s.FindOne(ctx, filter, nil)
}
