package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
	"github.com/noah-isme/audit-mgmt-api/internal/service"
	"github.com/noah-isme/audit-mgmt-api/pkg/response"
)

// AuditLogHandler lists the audit trail.
type AuditLogHandler struct {
	service *service.AuditLogService
}

// NewAuditLogHandler constructs an audit log handler.
func NewAuditLogHandler(svc *service.AuditLogService) *AuditLogHandler {
	return &AuditLogHandler{service: svc}
}

// List godoc
// @Summary List audit trail entries
// @Tags Audit logs
// @Produce json
// @Param resource query string false "Resource, e.g. finding"
// @Param resource_id query string false "Resource ID"
// @Param user_id query string false "Actor ID"
// @Param action query string false "e.g. CREATE, LINK, LOGIN, REPORT_REQUEST"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /audit-logs [get]
func (h *AuditLogHandler) List(c *gin.Context) {
	filter := models.AuditLogFilter{
		ListOptions: listOptions(c),
		Resource:    c.Query("resource"),
		ResourceID:  c.Query("resource_id"),
		UserID:      c.Query("user_id"),
		Action:      c.Query("action"),
	}
	logs, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs, pagination)
}
