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

// ProcessHandler handles process endpoints.
type ProcessHandler struct {
	service *service.ProcessService
}

// NewProcessHandler constructs a process handler.
func NewProcessHandler(svc *service.ProcessService) *ProcessHandler {
	return &ProcessHandler{service: svc}
}

// List godoc
// @Summary List processes
// @Tags Processes
// @Produce json
// @Param company_id query string false "Filter by company"
// @Param status query bool false "Filter by status"
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort column"
// @Param order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /processes [get]
func (h *ProcessHandler) List(c *gin.Context) {
	filter := models.ProcessFilter{
		ListOptions: listOptions(c),
		CompanyID:   c.Query("company_id"),
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
// @Summary Get process by id
// @Tags Processes
// @Produce json
// @Param id path string true "Process ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /processes/{id} [get]
func (h *ProcessHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create process
// @Tags Processes
// @Accept json
// @Produce json
// @Param payload body service.ProcessRequest true "Process payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /processes [post]
func (h *ProcessHandler) Create(c *gin.Context) {
	var req service.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid process payload"))
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
// @Summary Update process
// @Tags Processes
// @Accept json
// @Produce json
// @Param id path string true "Process ID"
// @Param payload body service.ProcessRequest true "Process payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /processes/{id} [put]
func (h *ProcessHandler) Update(c *gin.Context) {
	var req service.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid process payload"))
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
// @Summary Disable process
// @Tags Processes
// @Param id path string true "Process ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /processes/{id} [delete]
func (h *ProcessHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), middleware.RequestMeta(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetResponsibles godoc
// @Summary Replace process responsibles
// @Tags Processes
// @Accept json
// @Produce json
// @Param id path string true "Process ID"
// @Param payload body dto.IDsRequest true "Replacement set"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /processes/{id}/responsibles [put]
func (h *ProcessHandler) SetResponsibles(c *gin.Context) {
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

// SetControls godoc
// @Summary Replace process controls
// @Tags Processes
// @Accept json
// @Produce json
// @Param id path string true "Process ID"
// @Param payload body dto.IDsRequest true "Replacement set"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /processes/{id}/controls [put]
func (h *ProcessHandler) SetControls(c *gin.Context) {
	var req dto.IDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid controls payload"))
		return
	}
	result, err := h.service.SetControls(c.Request.Context(), c.Param("id"), req, middleware.RequestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
