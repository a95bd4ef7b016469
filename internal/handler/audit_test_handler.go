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

// AuditTestHandler handles audit test endpoints.
type AuditTestHandler struct {
	service *service.AuditTestService
}

// NewAuditTestHandler constructs an audit test handler.
func NewAuditTestHandler(svc *service.AuditTestService) *AuditTestHandler {
	return &AuditTestHandler{service: svc}
}

// List godoc
// @Summary List audit tests
// @Tags Audit tests
// @Produce json
// @Param audit_program_id query string false "Filter by audit program"
// @Param status query string false "Filter by status"
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort column"
// @Param order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /audit-tests [get]
func (h *AuditTestHandler) List(c *gin.Context) {
	filter := models.AuditTestFilter{
		ListOptions:    listOptions(c),
		AuditProgramID: c.Query("audit_program_id"),
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
// @Summary Get audit test by id
// @Tags Audit tests
// @Produce json
// @Param id path string true "Audit test ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /audit-tests/{id} [get]
func (h *AuditTestHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create audit test
// @Tags Audit tests
// @Accept json
// @Produce json
// @Param payload body service.AuditTestRequest true "Audit test payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /audit-tests [post]
func (h *AuditTestHandler) Create(c *gin.Context) {
	var req service.AuditTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid audit test payload"))
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
// @Summary Update audit test
// @Tags Audit tests
// @Accept json
// @Produce json
// @Param id path string true "Audit test ID"
// @Param payload body service.AuditTestRequest true "Audit test payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /audit-tests/{id} [put]
func (h *AuditTestHandler) Update(c *gin.Context) {
	var req service.AuditTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid audit test payload"))
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
// @Summary Delete audit test
// @Tags Audit tests
// @Param id path string true "Audit test ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /audit-tests/{id} [delete]
func (h *AuditTestHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), middleware.RequestMeta(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetParticipants godoc
// @Summary Replace test participants
// @Tags Audit tests
// @Accept json
// @Produce json
// @Param id path string true "Audit test ID"
// @Param payload body dto.IDsRequest true "Replacement set"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /audit-tests/{id}/participants [put]
func (h *AuditTestHandler) SetParticipants(c *gin.Context) {
	var req dto.IDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid participants payload"))
		return
	}
	result, err := h.service.SetParticipants(c.Request.Context(), c.Param("id"), req, middleware.RequestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// SetControls godoc
// @Summary Replace examined controls
// @Tags Audit tests
// @Accept json
// @Produce json
// @Param id path string true "Audit test ID"
// @Param payload body dto.PairsRequest true "Replacement set"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /audit-tests/{id}/controls [put]
func (h *AuditTestHandler) SetControls(c *gin.Context) {
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
