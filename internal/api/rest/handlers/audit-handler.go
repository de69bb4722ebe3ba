package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/qualiflow/document_service/internal/api/rest/middleware"
	"github.com/qualiflow/document_service/internal/dto"
	"github.com/qualiflow/document_service/internal/repository"
	"github.com/qualiflow/document_service/internal/services"
	"github.com/qualiflow/document_service/pkg/utils"
)

type AuditHandler struct {
	svc services.AuditRecorder
}

func NewAuditHandler(svc services.AuditRecorder) *AuditHandler {
	return &AuditHandler{svc: svc}
}

func (h *AuditHandler) SetupRoutes(api fiber.Router) {
	g := api.Group("/audit-logs")
	g.Get("/", h.Query)
	g.Post("/", h.Create)
}

func (h *AuditHandler) Query(ctx *fiber.Ctx) error {
	filter := repository.AuditFilter{
		ActorID:    ctx.Query("actor_id"),
		Action:     ctx.Query("action"),
		EntityType: ctx.Query("entity_type"),
		EntityID:   ctx.Query("entity_id"),
		Limit:      ctx.QueryInt("limit"),
		Offset:     ctx.QueryInt("offset"),
	}
	if v := ctx.Query("start_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "start_date must be RFC3339")
		}
		filter.StartDate = &t
	}
	if v := ctx.Query("end_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "end_date must be RFC3339")
		}
		filter.EndDate = &t
	}

	logs, err := h.svc.Query(filter)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to load audit logs")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, logs)
}

// Create accepts manual audit entries from embedding UIs. Like every audit
// write it is best-effort, but a malformed request is still a client error.
func (h *AuditHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.CreateAuditLogRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "action and entityType are required")
	}
	if requestBody.Action == "" || requestBody.EntityType == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "action and entityType are required")
	}

	principal := middleware.PrincipalFrom(ctx)
	h.svc.Record(principal, requestBody.Action, requestBody.EntityType,
		requestBody.EntityID, requestBody.EntityName, requestBody.Details)

	return utils.ResponseSuccess(ctx, fiber.StatusCreated, fiber.Map{"recorded": true})
}
