package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/audit-mgmt-api/internal/middleware"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
	"github.com/noah-isme/audit-mgmt-api/internal/service"
	"github.com/noah-isme/audit-mgmt-api/pkg/response"
)

// PermissionHandler exposes the permission catalog.
type PermissionHandler struct {
	roles *service.RoleService
}

// NewPermissionHandler constructs a permission handler.
func NewPermissionHandler(roles *service.RoleService) *PermissionHandler {
	return &PermissionHandler{roles: roles}
}

// List godoc
// @Summary List permissions
// @Tags Roles
// @Produce json
// @Param resource query string false "Filter by resource, e.g. finding"
// @Param status query bool false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /permissions [get]
func (h *PermissionHandler) List(c *gin.Context) {
	filter := models.PermissionFilter{
		ListOptions: listOptions(c),
		Resource:    c.Query("resource"),
		Status:      boolQuery(c, "status"),
	}
	permissions, pagination, err := h.roles.ListPermissions(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, permissions, pagination)
}

// SetStatus godoc
// @Summary Enable or disable a permission for every role
// @Tags Roles
// @Accept json
// @Produce json
// @Param id path string true "Permission ID"
// @Param payload body service.PermissionStatusRequest true "Status"
// @Success 200 {object} response.Envelope
// @Router /permissions/{id} [put]
func (h *PermissionHandler) SetStatus(c *gin.Context) {
	var req service.PermissionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid permission payload"))
		return
	}
	permission, err := h.roles.SetPermissionStatus(c.Request.Context(), c.Param("id"), req, middleware.RequestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, permission, nil)
}
