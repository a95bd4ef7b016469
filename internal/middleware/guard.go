package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/audit-mgmt-api/internal/access"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
	"github.com/noah-isme/audit-mgmt-api/internal/service"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
	"github.com/noah-isme/audit-mgmt-api/pkg/response"
)

const contextSessionKey = "accessSession"

// SubjectLoader returns the user aggregate with role and permissions.
type SubjectLoader interface {
	Subject(ctx context.Context, userID string) (*models.User, error)
}

// Access adapts the route guard to gin. Every route declares its rules when
// registered; the adapter resolves the session once per request.
type Access struct {
	guard    *access.Guard
	subjects SubjectLoader
	metrics  *service.MetricsService
	logger   *zap.Logger
}

// NewAccess builds the guard adapter. Metrics and logger may be nil.
func NewAccess(guard *access.Guard, subjects SubjectLoader, metrics *service.MetricsService, logger *zap.Logger) *Access {
	if guard == nil {
		guard = access.NewGuard(nil, access.Paths{})
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Access{guard: guard, subjects: subjects, metrics: metrics, logger: logger}
}

// Require rejects the request unless every rule admits the session.
func (a *Access) Require(rules ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := a.Session(c)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		decision := a.guard.Evaluate(session, rules...)
		if decision.Allowed {
			a.metrics.RecordAccessDecision("allowed")
			c.Next()
			return
		}

		a.metrics.RecordAccessDecision(string(decision.Redirect))
		a.logger.Debug("access rejected",
			zap.String("route", c.FullPath()),
			zap.String("rule", decision.FailedRule),
			zap.String("redirect", string(decision.Redirect)))
		response.ErrorWithMeta(c, decisionError(decision), map[string]interface{}{
			"redirect":    decision.Path,
			"failed_rule": decision.FailedRule,
		})
		c.Abort()
	}
}

// Evaluate runs the guard for the current request without aborting it.
func (a *Access) Evaluate(c *gin.Context, rules ...string) (access.Decision, *access.Session, error) {
	session, err := a.Session(c)
	if err != nil {
		return access.Decision{}, nil, err
	}
	return a.guard.Evaluate(session, rules...), session, nil
}

// Session resolves the request session from JWT claims. A token whose user
// no longer exists or is inactive yields no session.
func (a *Access) Session(c *gin.Context) (*access.Session, error) {
	if value, ok := c.Get(contextSessionKey); ok {
		session, _ := value.(*access.Session)
		return session, nil
	}

	var session *access.Session
	if claims := Claims(c); claims != nil {
		user, err := a.subjects.Subject(c.Request.Context(), claims.UserID)
		switch appErr := appErrors.FromError(err); {
		case err == nil && !user.Status:
			a.logger.Debug("token subject inactive", zap.String("user_id", claims.UserID))
		case err == nil:
			session = &access.Session{User: user}
			if claims.ExpiresAt != nil {
				session.ExpiresAt = claims.ExpiresAt.Time
			}
		case appErr.Status == http.StatusNotFound:
			a.logger.Debug("token subject missing", zap.String("user_id", claims.UserID))
		default:
			return nil, err
		}
	}

	c.Set(contextSessionKey, session)
	return session, nil
}

// CurrentUser returns the user aggregate resolved by the guard, or nil.
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(contextSessionKey)
	if !ok {
		return nil
	}
	session, _ := value.(*access.Session)
	if session == nil {
		return nil
	}
	return session.User
}

func decisionError(decision access.Decision) error {
	switch decision.Redirect {
	case access.RedirectLogin:
		return appErrors.ErrUnauthorized
	case access.RedirectHome:
		return appErrors.ErrAlreadyAuthenticated
	default:
		return appErrors.Clone(appErrors.ErrAccessDenied, "missing permission "+decision.FailedRule)
	}
}
