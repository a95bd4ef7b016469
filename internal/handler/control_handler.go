package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/audit-mgmt-api/internal/dto"
	"github.com/noah-isme/audit-mgmt-api/internal/middleware"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
	"github.com/noah-isme/audit-mgmt-api/internal/service"
	"github.com/noah-isme/audit-mgmt-api/pkg/response"
)

// ControlHandler handles control endpoints.
type ControlHandler struct {
	service *service.ControlService
}

// NewControlHandler constructs a control handler.
func NewControlHandler(svc *service.ControlService) *ControlHandler {
	return &ControlHandler{service: svc}
}

// List godoc
// @Summary List controls
// @Tags Controls
// @Produce json
// @Param company_id query string false "Filter by company"
// @Param control_type query string false "Filter by control type"
// @Param status query bool false "Filter by status"
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort column"
// @Param order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /controls [get]
func (h *ControlHandler) List(c *gin.Context) {
	filter := models.ControlFilter{
		ListOptions: listOptions(c),
		CompanyID:   c.Query("company_id"),
		ControlType: c.Query("control_type"),
		Status:      boolQuery(c, "status"),
	}
	items, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get control by id
// @Tags Controls
// @Produce json
// @Param id path string true "Control ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /controls/{id} [get]
func (h *ControlHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create control
// @Tags Controls
// @Accept json
// @Produce json
// @Param payload body service.ControlRequest true "Control payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /controls [post]
func (h *ControlHandler) Create(c *gin.Context) {
	var req service.ControlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid control payload"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), req, middleware.RequestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update control
// @Tags Controls
// @Accept json
// @Produce json
// @Param id path string true "Control ID"
// @Param payload body service.ControlRequest true "Control payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /controls/{id} [put]
func (h *ControlHandler) Update(c *gin.Context) {
	var req service.ControlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid control payload"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req, middleware.RequestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Disable control
// @Tags Controls
// @Param id path string true "Control ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /controls/{id} [delete]
func (h *ControlHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), middleware.RequestMeta(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetRisks godoc
// @Summary Replace mitigated risks
// @Tags Controls
// @Accept json
// @Produce json
// @Param id path string true "Control ID"
// @Param payload body dto.IDsRequest true "Replacement set"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /controls/{id}/risks [put]
func (h *ControlHandler) SetRisks(c *gin.Context) {
	var req dto.IDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid risks payload"))
		return
	}
	result, err := h.service.SetRisks(c.Request.Context(), c.Param("id"), req, middleware.RequestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
