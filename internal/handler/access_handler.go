package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/audit-mgmt-api/internal/access"
	"github.com/noah-isme/audit-mgmt-api/internal/dto"
	"github.com/noah-isme/audit-mgmt-api/internal/middleware"
	"github.com/noah-isme/audit-mgmt-api/pkg/response"
)

// AccessHandler lets the client evaluate route rules before navigating.
type AccessHandler struct {
	guard *middleware.Access
}

// NewAccessHandler constructs an access handler.
func NewAccessHandler(guard *middleware.Access) *AccessHandler {
	return &AccessHandler{guard: guard}
}

// Check godoc
// @Summary Evaluate route rules for the current session
// @Description Rules are comma separated: access classes (guest, auth) and permission keys such as get.user.
// @Tags Access
// @Produce json
// @Param rules query string false "Rule list, e.g. auth,get.user"
// @Success 200 {object} response.Envelope
// @Router /access/check [get]
func (h *AccessHandler) Check(c *gin.Context) {
	rules := access.ParseRules(c.Query("rules"))
	decision, session, err := h.guard.Evaluate(c, rules...)
	if err != nil {
		response.Error(c, err)
		return
	}

	granted := []string{}
	if session != nil {
		granted = access.GrantedKeys(session.User).Keys()
	}
	if rules == nil {
		rules = []string{}
	}
	response.JSON(c, http.StatusOK, dto.AccessCheckResponse{
		Decision:    decision,
		Rules:       rules,
		GrantedKeys: granted,
	}, nil)
}
