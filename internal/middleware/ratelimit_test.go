package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/stretchr/testify/assert"
)

type countingLimiter struct {
	used map[string]int
	err  error
}

func (l *countingLimiter) Allow(_ context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.used[key]++
	if l.used[key] > limit.Rate {
		return &redis_rate.Result{Limit: limit, Allowed: 0, Remaining: 0, RetryAfter: 30 * time.Second}, nil
	}
	return &redis_rate.Result{Limit: limit, Allowed: 1, Remaining: limit.Rate - l.used[key]}, nil
}

func hitLogin(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/login", handler, func(c *gin.Context) { c.Status(http.StatusOK) })
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	return rec
}

func TestRateLimitRejectsAfterBudget(t *testing.T) {
	limiter := &countingLimiter{used: map[string]int{}}
	handler := RateLimit(limiter, "login", 2, nil)

	assert.Equal(t, http.StatusOK, hitLogin(handler).Code)
	second := hitLogin(handler)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := hitLogin(handler)
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, "31", third.Header().Get("Retry-After"))
}

func TestRateLimitFailsOpen(t *testing.T) {
	limiter := &countingLimiter{err: errors.New("redis down")}

	assert.Equal(t, http.StatusOK, hitLogin(RateLimit(limiter, "login", 1, nil)).Code)
	assert.Equal(t, http.StatusOK, hitLogin(RateLimit(nil, "login", 1, nil)).Code)
}
