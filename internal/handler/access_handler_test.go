package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/audit-mgmt-api/internal/access"
	"github.com/noah-isme/audit-mgmt-api/internal/dto"
	"github.com/noah-isme/audit-mgmt-api/internal/middleware"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

type staticSubject struct {
	user *models.User
}

func (s staticSubject) Subject(context.Context, string) (*models.User, error) {
	return s.user, nil
}

func newAccessHandler(user *models.User) *AccessHandler {
	now := func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return NewAccessHandler(middleware.NewAccess(access.NewGuard(now, access.Paths{}), staticSubject{user: user}, nil, nil))
}

func checkAccess(t *testing.T, h *AccessHandler, query string, claims *models.JWTClaims) dto.AccessCheckResponse {
	t.Helper()
	c, w := newGinContext(http.MethodGet, "/access/check?"+query, nil)
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}

	h.Check(c)

	require.Equal(t, http.StatusOK, w.Code)
	var res dto.AccessCheckResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &res))
	return res
}

func TestAccessHandlerCheck(t *testing.T) {
	user := &models.User{ID: "u-1", Status: true, Role: &models.Role{Name: "Auditor", Status: true, Permissions: []models.Permission{
		{Key: "get.user", Status: true},
		{Key: "create.user", Status: false},
	}}}
	claims := &models.JWTClaims{UserID: "u-1", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)),
	}}
	h := newAccessHandler(user)

	res := checkAccess(t, h, "rules=auth,get.user", claims)
	assert.True(t, res.Decision.Allowed)
	assert.Equal(t, []string{"get.user"}, res.GrantedKeys)

	res = checkAccess(t, h, "rules=get.user,auth", claims)
	assert.True(t, res.Decision.Allowed)
	assert.Equal(t, []string{"get.user", "auth"}, res.Rules)

	res = checkAccess(t, h, "rules=create.user", claims)
	assert.False(t, res.Decision.Allowed)
	assert.Equal(t, access.RedirectDenied, res.Decision.Redirect)
	assert.Equal(t, "create.user", res.Decision.FailedRule)

	res = checkAccess(t, h, "rules=auth", nil)
	assert.False(t, res.Decision.Allowed)
	assert.Equal(t, access.RedirectLogin, res.Decision.Redirect)
	assert.Empty(t, res.GrantedKeys)

	res = checkAccess(t, h, "rules=guest", claims)
	assert.Equal(t, access.RedirectHome, res.Decision.Redirect)
	assert.Equal(t, "/", res.Decision.Path)
}
