package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/qualiflow/document_service/internal/api/rest/middleware"
	"github.com/qualiflow/document_service/internal/domain"
	"github.com/qualiflow/document_service/internal/dto"
	"github.com/qualiflow/document_service/internal/services"
	"github.com/qualiflow/document_service/pkg/utils"
)

type ApprovalHandler struct {
	svc services.ApprovalService
}

func NewApprovalHandler(svc services.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{svc: svc}
}

func (h *ApprovalHandler) SetupRoutes(api fiber.Router) {
	g := api.Group("/document-approval")

	g.Get("/comments/:documentId", h.GetComments)
	g.Post("/comments", h.AddComment)

	g.Get("/approvals/:documentId", h.GetApprovalHistory)
	g.Get("/status/:documentId", h.GetApprovalStatus)

	g.Post("/approve", h.Approve)
	g.Post("/reject", h.Reject)
	g.Post("/cancel", h.Cancel)
}

func (h *ApprovalHandler) GetComments(ctx *fiber.Ctx) error {
	comments, err := h.svc.GetComments(ctx.Params("documentId"))
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to load comments")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, comments)
}

func (h *ApprovalHandler) AddComment(ctx *fiber.Ctx) error {
	var requestBody dto.AddCommentRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "documentId and comment are required")
	}
	if requestBody.DocumentID == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "documentId and comment are required")
	}

	comment, err := h.svc.AddComment(middleware.PrincipalFrom(ctx), requestBody.DocumentID, requestBody.Comment)
	if err != nil {
		return transitionError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, comment)
}

func (h *ApprovalHandler) GetApprovalHistory(ctx *fiber.Ctx) error {
	history, err := h.svc.GetApprovalHistory(ctx.Params("documentId"))
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to load approval history")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, history)
}

func (h *ApprovalHandler) GetApprovalStatus(ctx *fiber.Ctx) error {
	status, err := h.svc.GetApprovalStatus(ctx.Params("documentId"))
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to resolve approval status")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, status)
}

func (h *ApprovalHandler) Approve(ctx *fiber.Ctx) error {
	return h.handleTransition(ctx, h.svc.Approve)
}

func (h *ApprovalHandler) Reject(ctx *fiber.Ctx) error {
	return h.handleTransition(ctx, h.svc.Reject)
}

func (h *ApprovalHandler) Cancel(ctx *fiber.Ctx) error {
	return h.handleTransition(ctx, h.svc.Cancel)
}

func (h *ApprovalHandler) handleTransition(
	ctx *fiber.Ctx,
	transition func(dto.Principal, string, string) (*dto.TransitionResult, error),
) error {
	var requestBody dto.TransitionRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "documentId is required")
	}
	if requestBody.DocumentID == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "documentId is required")
	}

	result, err := transition(middleware.PrincipalFrom(ctx), requestBody.DocumentID, requestBody.Comment)
	if err != nil {
		return transitionError(ctx, err)
	}
	if result.Blocked {
		return ctx.Status(fiber.StatusConflict).JSON(result)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, result)
}

func transitionError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrAuthenticationRequired):
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrCommentRequired):
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDocumentNotFound):
		return utils.ResponseError(ctx, fiber.StatusNotFound, err.Error())
	default:
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
}
