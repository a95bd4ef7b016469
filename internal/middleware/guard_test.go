package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/audit-mgmt-api/internal/access"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
	"github.com/noah-isme/audit-mgmt-api/internal/service"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

var guardNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type stubSubjects struct {
	users map[string]*models.User
	err   error
	calls int
}

func (s *stubSubjects) Subject(_ context.Context, userID string) (*models.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[userID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return user, nil
}

type guardEnvelope struct {
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func reader(keys map[string]bool) *models.User {
	permissions := make([]models.Permission, 0, len(keys))
	for key, status := range keys {
		permissions = append(permissions, models.Permission{Key: key, Status: status})
	}
	return &models.User{ID: "u-1", Status: true, Role: &models.Role{Name: "Consulta", Status: true, Permissions: permissions}}
}

func inactive(user *models.User) *models.User {
	user.ID = "u-2"
	user.Status = false
	return user
}

func withClaims(userID string, expires time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set(ContextUserKey, &models.JWTClaims{
				UserID:           userID,
				RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expires)},
			})
		}
		c.Next()
	}
}

func serveGuard(t *testing.T, subjects SubjectLoader, userID string, expires time.Time, rules ...string) (*httptest.ResponseRecorder, guardEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	guard := NewAccess(access.NewGuard(func() time.Time { return guardNow }, access.Paths{}), subjects, service.NewMetricsService(), nil)

	router := gin.New()
	router.GET("/resource", withClaims(userID, expires), guard.Require(rules...), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/resource", nil))

	var envelope guardEnvelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec, envelope
}

func TestAccessRequireOutcomes(t *testing.T) {
	subjects := &stubSubjects{users: map[string]*models.User{
		"u-1": reader(map[string]bool{"get.user": true, "create.user": false}),
		"u-2": inactive(reader(map[string]bool{"get.user": true})),
	}}
	live := guardNow.Add(time.Hour)

	tests := []struct {
		name     string
		userID   string
		expires  time.Time
		rules    []string
		status   int
		code     string
		redirect string
		failed   string
	}{
		{name: "granted key", userID: "u-1", expires: live, rules: []string{"auth", "get.user"}, status: http.StatusNoContent},
		{name: "disabled key", userID: "u-1", expires: live, rules: []string{"create.user"}, status: http.StatusForbidden, code: "ACCESS_DENIED", redirect: "/403", failed: "create.user"},
		{name: "no session", rules: []string{"get.user"}, status: http.StatusUnauthorized, code: "UNAUTHORIZED", redirect: "/login", failed: "get.user"},
		{name: "guest with session", userID: "u-1", expires: live, rules: []string{"guest"}, status: http.StatusConflict, code: "ALREADY_AUTHENTICATED", redirect: "/", failed: "guest"},
		{name: "expired session", userID: "u-1", expires: guardNow.Add(-time.Minute), rules: []string{"auth"}, status: http.StatusUnauthorized, code: "UNAUTHORIZED", redirect: "/login", failed: "auth"},
		{name: "expired session is a guest", userID: "u-1", expires: guardNow.Add(-time.Minute), rules: []string{"guest"}, status: http.StatusNoContent},
		{name: "inactive subject", userID: "u-2", expires: live, rules: []string{"auth"}, status: http.StatusUnauthorized, code: "UNAUTHORIZED", redirect: "/login", failed: "auth"},
		{name: "inactive subject keeps no key", userID: "u-2", expires: live, rules: []string{"get.user"}, status: http.StatusUnauthorized, code: "UNAUTHORIZED", redirect: "/login", failed: "get.user"},
		{name: "inactive subject is a guest", userID: "u-2", expires: live, rules: []string{"guest"}, status: http.StatusNoContent},
		{name: "unknown subject", userID: "ghost", expires: live, rules: []string{"auth"}, status: http.StatusUnauthorized, code: "UNAUTHORIZED", redirect: "/login", failed: "auth"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, envelope := serveGuard(t, subjects, tc.userID, tc.expires, tc.rules...)
			assert.Equal(t, tc.status, rec.Code)
			if tc.code == "" {
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tc.code, envelope.Error.Code)
			assert.Equal(t, tc.redirect, envelope.Meta["redirect"])
			assert.Equal(t, tc.failed, envelope.Meta["failed_rule"])
		})
	}
}

func TestAccessRequireSurfacesLoaderFailure(t *testing.T) {
	subjects := &stubSubjects{err: errors.New("connection refused")}

	rec, envelope := serveGuard(t, subjects, "u-1", guardNow.Add(time.Hour), "auth")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "INTERNAL_ERROR", envelope.Error.Code)
}

func TestAccessSessionResolvedOncePerRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	subjects := &stubSubjects{users: map[string]*models.User{"u-1": reader(map[string]bool{"get.audit": true})}}
	guard := NewAccess(access.NewGuard(func() time.Time { return guardNow }, access.Paths{}), subjects, nil, nil)

	router := gin.New()
	router.GET("/audits", withClaims("u-1", guardNow.Add(time.Hour)), guard.Require("auth"), guard.Require("get.audit"), func(c *gin.Context) {
		assert.Equal(t, "u-1", CurrentUser(c).ID)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audits", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, subjects.calls)
}
