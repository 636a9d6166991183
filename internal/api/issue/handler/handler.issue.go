// Package issuehdl contains the HTTP handlers for the Issue domain: the
// villager's submission/read endpoints and the manual escalation request.
package issuehdl

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basehdl "github.com/IncharaS06/vital/internal/api/base/handler"
	issuedto "github.com/IncharaS06/vital/internal/api/issue/dto"
	issuemodels "github.com/IncharaS06/vital/internal/api/issue/models"
	issuesvc "github.com/IncharaS06/vital/internal/api/issue/service"
	"github.com/IncharaS06/vital/internal/api/middleware"
	"github.com/IncharaS06/vital/internal/common"
	"github.com/IncharaS06/vital/internal/escalation"
	"github.com/IncharaS06/vital/internal/global"
	"github.com/IncharaS06/vital/internal/utility"
)

// IssueHandler handles the issue routes.
type IssueHandler struct {
	*basehdl.BaseHandler[issuemodels.Issue, issuedto.IssueCreateInput, issuedto.IssueStatusUpdateInput]
	issueService *issuesvc.IssueService
	engine       *escalation.Engine
}

// NewIssueHandler creates an IssueHandler bound to the escalation engine.
func NewIssueHandler(engine *escalation.Engine) (*IssueHandler, error) {
	issueService, err := issuesvc.NewIssueService()
	if err != nil {
		return nil, fmt.Errorf("failed to create issue service: %w", err)
	}

	return &IssueHandler{
		BaseHandler:  basehdl.NewBaseHandler[issuemodels.Issue, issuedto.IssueCreateInput, issuedto.IssueStatusUpdateInput](issueService.BaseServiceMongoImpl),
		issueService: issueService,
		engine:       engine,
	}, nil
}

// Create handles POST /issue. The reporter is the authenticated caller; the
// server owns status, role and deadline.
func (h *IssueHandler) Create(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input issuedto.IssueCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		slaDays := input.SlaDays
		if slaDays <= 0 {
			slaDays = global.ServerConfig.DefaultSlaDays
		}
		now := time.Now().UnixMilli()

		// Best effort: the reporter's email enables the status mails on
		// escalation, but a missing Firebase record must not block intake.
		reporterID := middleware.UserID(c)
		reporterEmail := ""
		if client := utility.GetFirebaseAuth(); client != nil {
			if user, err := client.GetUser(c.Context(), reporterID); err == nil {
				reporterEmail = user.Email
			}
		}

		issue := issuemodels.Issue{
			Title:       input.Title,
			Category:    input.Category,
			Description: input.Description,
			Jurisdiction: issuemodels.Jurisdiction{
				PanchayatID: input.Jurisdiction.PanchayatID,
				Taluk:       input.Jurisdiction.Taluk,
				District:    input.Jurisdiction.District,
			},
			ReporterID:    reporterID,
			ReporterEmail: reporterEmail,
			Status:        issuemodels.IssueStatusPending,
			AssignedRole:  global.ServerConfig.InitialAssignedRole,
			SlaDays:       slaDays,
			ResolveDueAt:  escalation.NextResolveDueAt(now, slaDays),
			Escalation: issuemodels.EscalationState{
				History: []issuemodels.EscalationEntry{},
			},
		}

		created, err := h.issueService.InsertOne(c.Context(), issue)
		h.HandleResponse(c, created, err)
		return nil
	})
}

// FindMine handles GET /issue: the caller's own issues, paginated, newest
// first.
func (h *IssueHandler) FindMine(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := h.ParsePagination(c)
		filter := bson.M{"reporterId": middleware.UserID(c)}
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

		data, err := h.issueService.FindWithPagination(c.Context(), filter, page, limit, opts)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindAll handles GET /issue/all, the dashboard view for authorities:
// every issue, optionally filtered by status or district, most urgent
// deadline first.
func (h *IssueHandler) FindAll(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := h.ParsePagination(c)

		filter := bson.M{}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}
		if district := c.Query("district"); district != "" {
			filter["jurisdiction.district"] = district
		}
		opts := options.Find().SetSort(bson.D{{Key: "resolveDueAt", Value: 1}})

		data, err := h.issueService.FindWithPagination(c.Context(), filter, page, limit, opts)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// UpdateStatus handles PUT /issue/:id/status, the authority's status-update
// flow. Terminal statuses freeze the escalation chain from then on.
func (h *IssueHandler) UpdateStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input issuedto.IssueStatusUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if input.Status == issuemodels.IssueStatusResolved {
			updated, err := h.issueService.MarkResolved(c.Context(), id)
			h.HandleResponse(c, updated, err)
			return nil
		}

		updated, err := h.issueService.UpdateById(c.Context(), id, bson.M{"status": input.Status})
		h.HandleResponse(c, updated, err)
		return nil
	})
}

// Escalate handles POST /issue/:id/escalate, the villager's manual
// escalation. Success answers {ok, newLevel}; precondition failures surface
// as specific structured errors so the villager knows why the action is
// unavailable.
func (h *IssueHandler) Escalate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		newLevel, err := h.engine.RequestManualEscalation(c.Context(), id, middleware.UserID(c), time.Now())
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
			"ok":       true,
			"newLevel": newLevel,
		})
	})
}
