package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/audit-mgmt-api/internal/dto"
	"github.com/noah-isme/audit-mgmt-api/internal/middleware"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
	"github.com/noah-isme/audit-mgmt-api/internal/service"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
	"github.com/noah-isme/audit-mgmt-api/pkg/response"
)

type documentService interface {
	List(ctx context.Context, testID string) ([]models.AuditDocument, error)
	Upload(ctx context.Context, testID string, upload service.DocumentUpload, meta service.RequestMeta) (*models.AuditDocument, error)
	Link(ctx context.Context, id string) (*dto.DocumentLinkResponse, error)
	Download(ctx context.Context, token string) (*service.DocumentContent, error)
	Delete(ctx context.Context, id string, meta service.RequestMeta) error
}

// DocumentHandler serves audit evidence.
type DocumentHandler struct {
	documents documentService
}

// NewDocumentHandler constructs a document handler.
func NewDocumentHandler(documents documentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// List godoc
// @Summary List evidence of an audit test
// @Tags Documents
// @Produce json
// @Param id path string true "Audit test ID"
// @Success 200 {object} response.Envelope
// @Router /audit-tests/{id}/documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	documents, err := h.documents.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, documents, nil)
}

// Upload godoc
// @Summary Upload evidence for an audit test
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Audit test ID"
// @Param file formData file true "Evidence file"
// @Param name formData string false "Display name"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /audit-tests/{id}/documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Internal(err, "failed to open file"))
		return
	}
	defer src.Close()

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		name = fileHeader.Filename
	}
	document, err := h.documents.Upload(c.Request.Context(), c.Param("id"), service.DocumentUpload{
		Name: name,
		Size: fileHeader.Size,
		Body: src,
	}, middleware.RequestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, document)
}

// Link godoc
// @Summary Get a short-lived download link
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.Envelope
// @Router /documents/{id}/link [get]
func (h *DocumentHandler) Link(c *gin.Context) {
	link, err := h.documents.Link(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, link, nil)
}

// Download godoc
// @Summary Download evidence via signed token
// @Tags Documents
// @Produce octet-stream
// @Param token query string true "Signed token"
// @Success 200 {file} binary
// @Router /documents/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	content, err := h.documents.Download(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer content.Body.Close() //nolint:errcheck

	doc := content.Document
	c.Header("Content-Disposition", attachment(doc.Name))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, doc.SizeBytes, doc.MimeType, content.Body, nil)
}

// Delete godoc
// @Summary Delete evidence
// @Tags Documents
// @Param id path string true "Document ID"
// @Success 204
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.documents.Delete(c.Request.Context(), c.Param("id"), middleware.RequestMeta(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
