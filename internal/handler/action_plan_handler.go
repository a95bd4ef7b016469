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

// ActionPlanHandler handles action plan endpoints.
type ActionPlanHandler struct {
	service *service.ActionPlanService
}

// NewActionPlanHandler constructs an action plan handler.
func NewActionPlanHandler(svc *service.ActionPlanService) *ActionPlanHandler {
	return &ActionPlanHandler{service: svc}
}

// List godoc
// @Summary List action plans
// @Tags Action plans
// @Produce json
// @Param plan_type query string false "Evento or Hallazgo"
// @Param event_id query string false "Filter by event"
// @Param audit_finding_id query string false "Filter by finding"
// @Param status query string false "Filter by status"
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort column"
// @Param order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /plans [get]
func (h *ActionPlanHandler) List(c *gin.Context) {
	filter := models.ActionPlanFilter{
		ListOptions:    listOptions(c),
		PlanType:       c.Query("plan_type"),
		EventID:        c.Query("event_id"),
		AuditFindingID: c.Query("audit_finding_id"),
		Status:         c.Query("status"),
	}
	items, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get action plan by id
// @Tags Action plans
// @Produce json
// @Param id path string true "Action plan ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /plans/{id} [get]
func (h *ActionPlanHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create action plan
// @Tags Action plans
// @Accept json
// @Produce json
// @Param payload body service.ActionPlanRequest true "Action plan payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /plans [post]
func (h *ActionPlanHandler) Create(c *gin.Context) {
	var req service.ActionPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid action plan payload"))
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
// @Summary Update action plan
// @Tags Action plans
// @Accept json
// @Produce json
// @Param id path string true "Action plan ID"
// @Param payload body service.ActionPlanRequest true "Action plan payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /plans/{id} [put]
func (h *ActionPlanHandler) Update(c *gin.Context) {
	var req service.ActionPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid action plan payload"))
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
// @Summary Cancel action plan
// @Tags Action plans
// @Param id path string true "Action plan ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /plans/{id} [delete]
func (h *ActionPlanHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), middleware.RequestMeta(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetResponsibles godoc
// @Summary Replace plan responsibles
// @Tags Action plans
// @Accept json
// @Produce json
// @Param id path string true "Action plan ID"
// @Param payload body dto.IDsRequest true "Replacement set"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /plans/{id}/responsibles [put]
func (h *ActionPlanHandler) SetResponsibles(c *gin.Context) {
	var req dto.IDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid responsibles payload"))
		return
	}
	result, err := h.service.SetResponsibles(c.Request.Context(), c.Param("id"), req, middleware.RequestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
