package authorityhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	authoritydto "github.com/IncharaS06/vital/internal/api/authority/dto"
	authoritymodels "github.com/IncharaS06/vital/internal/api/authority/models"
	authoritysvc "github.com/IncharaS06/vital/internal/api/authority/service"
	basehdl "github.com/IncharaS06/vital/internal/api/base/handler"
	issuemodels "github.com/IncharaS06/vital/internal/api/issue/models"
)

// AuthorityHandler handles the authority directory routes.
type AuthorityHandler struct {
	*basehdl.BaseHandler[authoritymodels.Authority, authoritydto.AuthorityCreateInput, authoritydto.AuthorityUpdateInput]
	authorityService *authoritysvc.AuthorityService
}

func NewAuthorityHandler() (*AuthorityHandler, error) {
	authorityService, err := authoritysvc.NewAuthorityService()
	if err != nil {
		return nil, fmt.Errorf("failed to create authority service: %w", err)
	}

	return &AuthorityHandler{
		BaseHandler:      basehdl.NewBaseHandler[authoritymodels.Authority, authoritydto.AuthorityCreateInput, authoritydto.AuthorityUpdateInput](authorityService.BaseServiceMongoImpl),
		authorityService: authorityService,
	}, nil
}

// Create seeds a directory entry.
func (h *AuthorityHandler) Create(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authoritydto.AuthorityCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		authority := authoritymodels.Authority{
			Name:  input.Name,
			Email: input.Email,
			Role:  input.Role,
			Jurisdiction: issuemodels.Jurisdiction{
				PanchayatID: input.Jurisdiction.PanchayatID,
				Taluk:       input.Jurisdiction.Taluk,
				District:    input.Jurisdiction.District,
			},
			Verified: input.Verified,
		}

		created, err := h.authorityService.InsertOne(c.Context(), authority)
		h.HandleResponse(c, created, err)
		return nil
	})
}

// FindByRole handles GET /authority?role=pdo&district=... for directory
// browsing.
func (h *AuthorityHandler) FindByRole(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := h.ParsePagination(c)

		filter := bson.M{}
		if role := c.Query("role"); role != "" {
			filter["role"] = role
		}
		if district := c.Query("district"); district != "" {
			filter["jurisdiction.district"] = district
		}

		data, err := h.authorityService.FindWithPagination(c.Context(), filter, page, limit, nil)
		h.HandleResponse(c, data, err)
		return nil
	})
}
