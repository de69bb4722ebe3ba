package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/qualiflow/document_service/internal/api/rest/middleware"
	"github.com/qualiflow/document_service/internal/domain"
	"github.com/qualiflow/document_service/internal/services"
	"github.com/qualiflow/document_service/pkg/utils"
)

type CheckHandler struct {
	svc services.ChecklistService
}

func NewCheckHandler(svc services.ChecklistService) *CheckHandler {
	return &CheckHandler{svc: svc}
}

func (h *CheckHandler) SetupRoutes(api fiber.Router) {
	g := api.Group("/documentation-checks")
	g.Get("/", h.List)
	g.Get("/latest", h.GetLatest)
	g.Post("/", h.Save)
}

type saveCheckRequest struct {
	ProjectID             string                          `json:"project_id"`
	QualificationObjectID string                          `json:"qualification_object_id"`
	ObjectName            string                          `json:"object_name,omitempty"`
	Items                 []domain.DocumentationCheckItem `json:"items"`
}

func (h *CheckHandler) Save(ctx *fiber.Ctx) error {
	var requestBody saveCheckRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "project_id, qualification_object_id and items are required")
	}
	if requestBody.ProjectID == "" || requestBody.QualificationObjectID == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "project_id, qualification_object_id and items are required")
	}

	check, err := h.svc.SaveCheck(middleware.PrincipalFrom(ctx),
		requestBody.ProjectID, requestBody.QualificationObjectID, requestBody.ObjectName, requestBody.Items)
	if err != nil {
		return transitionError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, check)
}

func (h *CheckHandler) GetLatest(ctx *fiber.Ctx) error {
	objectID := ctx.Query("qualification_object_id")
	projectID := ctx.Query("project_id")
	if objectID == "" || projectID == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "qualification_object_id and project_id are required")
	}

	check, err := h.svc.GetLatest(objectID, projectID)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to load documentation check")
	}
	if check == nil {
		return utils.ResponseError(ctx, fiber.StatusNotFound, "documentation check not found")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, check)
}

func (h *CheckHandler) List(ctx *fiber.Ctx) error {
	projectID := ctx.Query("project_id")
	if projectID == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "project_id is required")
	}
	checks, err := h.svc.List(projectID, ctx.QueryInt("limit"), ctx.QueryInt("offset"))
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to load documentation checks")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, checks)
}
