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

// RiskHandler handles risk endpoints.
type RiskHandler struct {
	service *service.RiskService
}

// NewRiskHandler constructs a risk handler.
func NewRiskHandler(svc *service.RiskService) *RiskHandler {
	return &RiskHandler{service: svc}
}

// List godoc
// @Summary List risks
// @Tags Risks
// @Produce json
// @Param company_id query string false "Filter by company"
// @Param process_id query string false "Filter by affected process"
// @Param status query bool false "Filter by status"
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort column"
// @Param order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /risks [get]
func (h *RiskHandler) List(c *gin.Context) {
	filter := models.RiskFilter{
		ListOptions: listOptions(c),
		CompanyID:   c.Query("company_id"),
		ProcessID:   c.Query("process_id"),
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
// @Summary Get risk by id
// @Tags Risks
// @Produce json
// @Param id path string true "Risk ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /risks/{id} [get]
func (h *RiskHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create risk
// @Tags Risks
// @Accept json
// @Produce json
// @Param payload body service.RiskRequest true "Risk payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /risks [post]
func (h *RiskHandler) Create(c *gin.Context) {
	var req service.RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid risk payload"))
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
// @Summary Update risk
// @Tags Risks
// @Accept json
// @Produce json
// @Param id path string true "Risk ID"
// @Param payload body service.RiskRequest true "Risk payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /risks/{id} [put]
func (h *RiskHandler) Update(c *gin.Context) {
	var req service.RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid risk payload"))
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
// @Summary Disable risk
// @Tags Risks
// @Param id path string true "Risk ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /risks/{id} [delete]
func (h *RiskHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), middleware.RequestMeta(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetProcesses godoc
// @Summary Replace affected processes
// @Tags Risks
// @Accept json
// @Produce json
// @Param id path string true "Risk ID"
// @Param payload body dto.IDsRequest true "Replacement set"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /risks/{id}/processes [put]
func (h *RiskHandler) SetProcesses(c *gin.Context) {
	var req dto.IDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid processes payload"))
		return
	}
	result, err := h.service.SetProcesses(c.Request.Context(), c.Param("id"), req, middleware.RequestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
