package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/qualiflow/document_service/internal/api/rest/middleware"
	"github.com/qualiflow/document_service/internal/dto"
	"github.com/qualiflow/document_service/internal/objecttype"
	"github.com/qualiflow/document_service/internal/services"
	"github.com/qualiflow/document_service/pkg/utils"
)

const maxDocumentSize = 25 * 1024 * 1024 // 25MB

type DocumentHandler struct {
	documents services.DocumentService
	progress  services.ProgressService
}

func NewDocumentHandler(documents services.DocumentService, progress services.ProgressService) *DocumentHandler {
	return &DocumentHandler{documents: documents, progress: progress}
}

func (h *DocumentHandler) SetupRoutes(api fiber.Router) {
	api.Post("/documents", h.Upload)
	api.Get("/documents/:documentId", h.Get)
	api.Get("/projects/:projectId/documents", h.ListByProject)
	api.Get("/projects/:projectId/progress", h.Progress)
	api.Get("/qualification-protocols", h.ListProtocols)
	api.Get("/object-types", h.ObjectTypes)
}

// Upload creates the document once; there is no overwrite path.
// form-data: file=<blob> plus project_id, document_type and, for protocols,
// object_type (and optionally qualification_object_id / object_name).
func (h *DocumentHandler) Upload(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file is required")
	}
	if file.Size > maxDocumentSize {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 25MB)")
	}

	f, err := file.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot open uploaded file")
	}
	defer f.Close()

	data, err := utils.ReadAllLimit(f, maxDocumentSize)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	input := dto.UploadDocumentInput{
		ProjectID:             ctx.FormValue("project_id"),
		DocumentType:          ctx.FormValue("document_type"),
		ObjectType:            ctx.FormValue("object_type"),
		ObjectName:            ctx.FormValue("object_name"),
		QualificationObjectID: ctx.FormValue("qualification_object_id"),
		FileName:              file.Filename,
		MimeType:              file.Header.Get("Content-Type"),
		Data:                  data,
	}

	uploadCtx, cancel := context.WithTimeout(ctx.Context(), 20*time.Second)
	defer cancel()

	doc, err := h.documents.Upload(uploadCtx, middleware.PrincipalFrom(ctx), input)
	if err != nil {
		return transitionError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, doc)
}

func (h *DocumentHandler) Get(ctx *fiber.Ctx) error {
	doc, err := h.documents.Get(ctx.Params("documentId"))
	if err != nil {
		return transitionError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, doc)
}

func (h *DocumentHandler) ListByProject(ctx *fiber.Ctx) error {
	docs, err := h.documents.ListByProject(ctx.Params("projectId"))
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to load documents")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, docs)
}

func (h *DocumentHandler) Progress(ctx *fiber.Ctx) error {
	progress, err := h.progress.GetProjectProgress(ctx.Params("projectId"))
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to compute progress")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, progress)
}

func (h *DocumentHandler) ListProtocols(ctx *fiber.Ctx) error {
	projectID := ctx.Query("project_id")
	if projectID == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "project_id is required")
	}
	protocols, err := h.documents.ListProtocols(projectID)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to load protocols")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, protocols)
}

func (h *DocumentHandler) ObjectTypes(ctx *fiber.Ctx) error {
	keys := objecttype.CanonicalKeys()
	entries := make([]dto.ObjectTypeEntry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, dto.ObjectTypeEntry{
			Key:         key,
			Label:       objecttype.ToLabel(key),
			DisplayName: objecttype.DisplayName(key),
		})
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, entries)
}
