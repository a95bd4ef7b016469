package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newTestGuard() *Guard {
	return NewGuard(func() time.Time { return fixedNow }, Paths{Home: "/inicio", Login: "/ingresar", Denied: "/sin-permiso"})
}

func activeSession(perms map[string]bool) *Session {
	return &Session{User: userWith(perms), ExpiresAt: fixedNow.Add(time.Hour)}
}

func TestEvaluateGuestRule(t *testing.T) {
	guard := newTestGuard()

	assert.True(t, guard.Evaluate(nil, RuleGuest).Allowed)

	decision := guard.Evaluate(activeSession(nil), RuleGuest)
	assert.False(t, decision.Allowed)
	assert.Equal(t, RedirectHome, decision.Redirect)
	assert.Equal(t, "/inicio", decision.Path)
	assert.Equal(t, RuleGuest, decision.FailedRule)
}

func TestEvaluateAuthRule(t *testing.T) {
	guard := newTestGuard()

	assert.True(t, guard.Evaluate(activeSession(nil), RuleAuth).Allowed)

	decision := guard.Evaluate(nil, RuleAuth)
	assert.False(t, decision.Allowed)
	assert.Equal(t, RedirectLogin, decision.Redirect)
	assert.Equal(t, "/ingresar", decision.Path)
}

func TestEvaluateExpiredSessionIsAbsent(t *testing.T) {
	guard := newTestGuard()
	expired := &Session{User: userWith(map[string]bool{"get.user": true}), ExpiresAt: fixedNow.Add(-time.Second)}

	assert.True(t, guard.Evaluate(expired, RuleGuest).Allowed)
	assert.Equal(t, RedirectLogin, guard.Evaluate(expired, RuleAuth).Redirect)
	assert.Equal(t, RedirectLogin, guard.Evaluate(expired, "get.user").Redirect)
}

func TestEvaluatePermissionKeys(t *testing.T) {
	guard := newTestGuard()
	session := activeSession(map[string]bool{"get.user": true, "create.user": false})

	assert.True(t, guard.Evaluate(session, RuleAuth, "get.user").Allowed)

	decision := guard.Evaluate(session, RuleAuth, "create.user")
	assert.False(t, decision.Allowed)
	assert.Equal(t, RedirectDenied, decision.Redirect)
	assert.Equal(t, "/sin-permiso", decision.Path)
	assert.Equal(t, "create.user", decision.FailedRule)
}

func TestEvaluatePermissionWithoutSessionRedirectsLogin(t *testing.T) {
	decision := newTestGuard().Evaluate(nil, "get.user")
	assert.False(t, decision.Allowed)
	assert.Equal(t, RedirectLogin, decision.Redirect)
}

func TestEvaluateClassRulesRunBeforeKeys(t *testing.T) {
	guard := newTestGuard()
	session := activeSession(map[string]bool{})

	// The key is declared first but the guest class still decides.
	decision := guard.Evaluate(session, "create.user", RuleGuest)
	assert.Equal(t, RedirectHome, decision.Redirect)
	assert.Equal(t, RuleGuest, decision.FailedRule)
}

func TestEvaluateFirstFailingClassWins(t *testing.T) {
	guard := newTestGuard()

	decision := guard.Evaluate(nil, RuleAuth, RuleGuest)
	assert.Equal(t, RedirectLogin, decision.Redirect)

	decision = guard.Evaluate(activeSession(nil), RuleGuest, RuleAuth)
	assert.Equal(t, RedirectHome, decision.Redirect)
}

func TestEvaluateNoRulesAllows(t *testing.T) {
	assert.True(t, newTestGuard().Evaluate(nil).Allowed)
}

func TestNewGuardDefaults(t *testing.T) {
	guard := NewGuard(nil, Paths{})
	decision := guard.Evaluate(nil, RuleAuth)
	assert.Equal(t, "/login", decision.Path)
	assert.True(t, guard.Active(&Session{}))
}

func TestParseRules(t *testing.T) {
	assert.Equal(t, []string{"get.user", "auth", "create.user"}, ParseRules(" get.user, auth ,,create.user"))
	assert.Nil(t, ParseRules("  "))
	assert.Equal(t, "delete.risk", Key("delete", "risk"))
}
