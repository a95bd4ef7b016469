package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

type stubTokens map[string]string

func (s stubTokens) ValidateToken(token string) (*models.JWTClaims, error) {
	userID, ok := s[token]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return &models.JWTClaims{UserID: userID}, nil
}

func serveJWT(handler gin.HandlerFunc, header string) (*httptest.ResponseRecorder, string) {
	gin.SetMode(gin.TestMode)
	var seen string
	router := gin.New()
	router.GET("/", handler, func(c *gin.Context) {
		if claims := Claims(c); claims != nil {
			seen = claims.UserID
		}
		c.Status(http.StatusNoContent)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec, seen
}

func TestJWTRequiresBearerToken(t *testing.T) {
	tokens := stubTokens{"good": "u-1"}

	rec, seen := serveJWT(JWT(tokens), "Bearer good")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "u-1", seen)

	rec, _ = serveJWT(JWT(tokens), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serveJWT(JWT(tokens), "Basic good")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serveJWT(JWT(tokens), "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalJWTNeverBlocks(t *testing.T) {
	tokens := stubTokens{"good": "u-1"}

	rec, seen := serveJWT(OptionalJWT(tokens), "bearer good")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "u-1", seen)

	rec, seen = serveJWT(OptionalJWT(tokens), "Bearer forged")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, seen)
}

func TestRequestMetaCarriesActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Request.Header.Set("User-Agent", "audit-spa/1.0")
	c.Request.RemoteAddr = "10.0.0.7:5123"
	c.Set(ContextUserKey, &models.JWTClaims{UserID: "u-9"})

	meta := RequestMeta(c)

	assert.Equal(t, "u-9", meta.ActorID)
	assert.Equal(t, "10.0.0.7", meta.IP)
	assert.Equal(t, "audit-spa/1.0", meta.UserAgent)
}
