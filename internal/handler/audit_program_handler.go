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

// AuditProgramHandler handles audit program endpoints.
type AuditProgramHandler struct {
	service *service.AuditProgramService
}

// NewAuditProgramHandler constructs an audit program handler.
func NewAuditProgramHandler(svc *service.AuditProgramService) *AuditProgramHandler {
	return &AuditProgramHandler{service: svc}
}

// List godoc
// @Summary List audit programs
// @Tags Audits
// @Produce json
// @Param company_id query string false "Filter by company"
// @Param status query string false "Filter by status"
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort column"
// @Param order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /audits [get]
func (h *AuditProgramHandler) List(c *gin.Context) {
	filter := models.AuditProgramFilter{
		ListOptions: listOptions(c),
		CompanyID:   c.Query("company_id"),
		Status:      c.Query("status"),
	}
	items, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get audit program by id
// @Tags Audits
// @Produce json
// @Param id path string true "Audit program ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /audits/{id} [get]
func (h *AuditProgramHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create audit program
// @Tags Audits
// @Accept json
// @Produce json
// @Param payload body service.AuditProgramRequest true "Audit program payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /audits [post]
func (h *AuditProgramHandler) Create(c *gin.Context) {
	var req service.AuditProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid audit program payload"))
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
// @Summary Update audit program
// @Tags Audits
// @Accept json
// @Produce json
// @Param id path string true "Audit program ID"
// @Param payload body service.AuditProgramRequest true "Audit program payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /audits/{id} [put]
func (h *AuditProgramHandler) Update(c *gin.Context) {
	var req service.AuditProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid audit program payload"))
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
// @Summary Delete audit program
// @Tags Audits
// @Param id path string true "Audit program ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /audits/{id} [delete]
func (h *AuditProgramHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), middleware.RequestMeta(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetParticipants godoc
// @Summary Replace audit participants
// @Tags Audits
// @Accept json
// @Produce json
// @Param id path string true "Audit program ID"
// @Param payload body dto.ParticipantsRequest true "Replacement set"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /audits/{id}/participants [put]
func (h *AuditProgramHandler) SetParticipants(c *gin.Context) {
	var req dto.ParticipantsRequest
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

// SetScope godoc
// @Summary Replace audit scope
// @Tags Audits
// @Accept json
// @Produce json
// @Param id path string true "Audit program ID"
// @Param payload body dto.PairsRequest true "Replacement set"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /audits/{id}/scope [put]
func (h *AuditProgramHandler) SetScope(c *gin.Context) {
	var req dto.PairsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid scope payload"))
		return
	}
	result, err := h.service.SetScope(c.Request.Context(), c.Param("id"), req, middleware.RequestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
