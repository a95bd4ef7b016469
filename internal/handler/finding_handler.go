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

// FindingHandler handles finding endpoints.
type FindingHandler struct {
	service *service.FindingService
}

// NewFindingHandler constructs a finding handler.
func NewFindingHandler(svc *service.FindingService) *FindingHandler {
	return &FindingHandler{service: svc}
}

// List godoc
// @Summary List findings
// @Tags Findings
// @Produce json
// @Param audit_program_id query string false "Filter by audit program"
// @Param audit_test_id query string false "Filter by audit test"
// @Param classification query string false "Filter by classification"
// @Param finding_type query string false "Filter by type"
// @Param status query bool false "Filter by status"
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort column"
// @Param order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /findings [get]
func (h *FindingHandler) List(c *gin.Context) {
	filter := models.FindingFilter{
		ListOptions:    listOptions(c),
		AuditProgramID: c.Query("audit_program_id"),
		AuditTestID:    c.Query("audit_test_id"),
		Classification: c.Query("classification"),
		FindingType:    c.Query("finding_type"),
		Status:         boolQuery(c, "status"),
	}
	items, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get finding by id
// @Tags Findings
// @Produce json
// @Param id path string true "Finding ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /findings/{id} [get]
func (h *FindingHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create finding
// @Tags Findings
// @Accept json
// @Produce json
// @Param payload body service.FindingRequest true "Finding payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /findings [post]
func (h *FindingHandler) Create(c *gin.Context) {
	var req service.FindingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid finding payload"))
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
// @Summary Update finding
// @Tags Findings
// @Accept json
// @Produce json
// @Param id path string true "Finding ID"
// @Param payload body service.FindingRequest true "Finding payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /findings/{id} [put]
func (h *FindingHandler) Update(c *gin.Context) {
	var req service.FindingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid finding payload"))
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
// @Summary Disable finding
// @Tags Findings
// @Param id path string true "Finding ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /findings/{id} [delete]
func (h *FindingHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), middleware.RequestMeta(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetControls godoc
// @Summary Replace affected controls
// @Tags Findings
// @Accept json
// @Produce json
// @Param id path string true "Finding ID"
// @Param payload body dto.PairsRequest true "Replacement set"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /findings/{id}/controls [put]
func (h *FindingHandler) SetControls(c *gin.Context) {
	var req dto.PairsRequest
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
