package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/audit-mgmt-api/internal/access"
	"github.com/noah-isme/audit-mgmt-api/internal/handler"
	"github.com/noah-isme/audit-mgmt-api/internal/middleware"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
	"github.com/noah-isme/audit-mgmt-api/internal/seed"
	"github.com/noah-isme/audit-mgmt-api/internal/service"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

var permissionKey = regexp.MustCompile(`^(get|create|update|delete)\.[a-z_]+$`)

type staticTokens map[string]string

func (t staticTokens) ValidateToken(token string) (*models.JWTClaims, error) {
	userID, ok := t[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return &models.JWTClaims{UserID: userID}, nil
}

type staticSubjects map[string]*models.User

func (s staticSubjects) Subject(_ context.Context, userID string) (*models.User, error) {
	user, ok := s[userID]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return user, nil
}

func readerWith(keys ...string) *models.User {
	permissions := make([]models.Permission, len(keys))
	for i, key := range keys {
		permissions[i] = models.Permission{Key: key, Status: true}
	}
	return &models.User{ID: "reader", Status: true, Role: &models.Role{Status: true, Permissions: permissions}}
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	guard := middleware.NewAccess(access.NewGuard(nil, access.Paths{}), staticSubjects{"reader": readerWith("get.company")}, metrics, nil)
	h := Handlers{
		Access:  handler.NewAccessHandler(guard),
		Metrics: handler.NewMetricsHandler(metrics),
	}
	deps := Dependencies{Access: guard, Tokens: staticTokens{"reader-token": "reader"}, Metrics: metrics}
	return New(h, deps, Options{APIPrefix: "/api/v1", LoginPerMinute: 5})
}

func perform(engine *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestRoutesDeclareRules(t *testing.T) {
	public := map[string]bool{
		"GET /access/check":       true,
		"GET /documents/download": true,
		"GET /reports/download":   true,
	}
	catalog := map[string]bool{}
	for _, def := range seed.Permissions() {
		catalog[def.Key] = true
	}
	seen := map[string]bool{}
	for _, route := range Routes(Handlers{}, func(*gin.Context) {}) {
		id := route.Method + " " + route.Path
		assert.False(t, seen[id], "duplicate route %s", id)
		seen[id] = true
		assert.NotNil(t, route.Handler, id)

		if public[id] {
			assert.Empty(t, route.Rules, id)
			continue
		}
		require.NotEmpty(t, route.Rules, "route %s has no access rules", id)
		for _, rule := range route.Rules {
			if rule == access.RuleGuest || rule == access.RuleAuth {
				continue
			}
			assert.Regexp(t, permissionKey, rule, id)
			assert.True(t, catalog[rule], "route %s requires %s which no seeded permission grants", id, rule)
		}
	}
	assert.True(t, seen["POST /auth/login"])
	assert.True(t, seen["PUT /audits/:id/scope"])
}

func TestRoutesLoginIsRateLimited(t *testing.T) {
	for _, route := range Routes(Handlers{}, func(*gin.Context) {}) {
		if route.Path == "/auth/login" {
			assert.Len(t, route.Middleware, 1)
			assert.Equal(t, []string{access.RuleGuest}, route.Rules)
			return
		}
	}
	t.Fatal("login route missing")
}

func TestAnonymousRequestRedirectsToLogin(t *testing.T) {
	engine := newTestEngine(t)

	w := perform(engine, http.MethodGet, "/api/v1/companies", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decode(t, w)
	assert.Equal(t, "UNAUTHORIZED", env.Error["code"])
	assert.Equal(t, "/login", env.Meta["redirect"])
	assert.Equal(t, "get.company", env.Meta["failed_rule"])
}

func TestMissingPermissionIsDenied(t *testing.T) {
	engine := newTestEngine(t)

	w := perform(engine, http.MethodDelete, "/api/v1/companies/c1", "reader-token")

	assert.Equal(t, http.StatusForbidden, w.Code)
	env := decode(t, w)
	assert.Equal(t, "ACCESS_DENIED", env.Error["code"])
	assert.Equal(t, "/403", env.Meta["redirect"])
	assert.Equal(t, "delete.company", env.Meta["failed_rule"])
}

func TestAuthenticatedUserCannotLogInAgain(t *testing.T) {
	engine := newTestEngine(t)

	w := perform(engine, http.MethodPost, "/api/v1/auth/login", "reader-token")

	assert.Equal(t, http.StatusConflict, w.Code)
	env := decode(t, w)
	assert.Equal(t, "/", env.Meta["redirect"])
}

func TestAccessCheckReportsGrantedKeys(t *testing.T) {
	engine := newTestEngine(t)

	w := perform(engine, http.MethodGet, "/api/v1/access/check?rules=auth,get.company", "reader-token")

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	decision := env.Data["decision"].(map[string]interface{})
	assert.Equal(t, true, decision["allowed"])
	assert.Equal(t, []interface{}{"get.company"}, env.Data["granted_keys"])
}

func TestOperationalEndpoints(t *testing.T) {
	engine := newTestEngine(t)

	assert.Equal(t, http.StatusOK, perform(engine, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, perform(engine, http.MethodGet, "/ready", "").Code)
	assert.Equal(t, http.StatusOK, perform(engine, http.MethodGet, "/metrics", "").Code)
	assert.Equal(t, http.StatusNotFound, perform(engine, http.MethodGet, "/docs/index.html", "").Code)
}
