package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

func userWith(perms map[string]bool) *models.User {
	role := &models.Role{Name: "Auditor"}
	for key, status := range perms {
		role.Permissions = append(role.Permissions, models.Permission{Key: key, Status: status})
	}
	return &models.User{ID: "u1", Role: role}
}

func TestGrantedKeysEmptyWhenRoleMissing(t *testing.T) {
	assert.Empty(t, GrantedKeys(nil))
	assert.Empty(t, GrantedKeys(&models.User{}))
	assert.Empty(t, GrantedKeys(&models.User{Role: &models.Role{Name: "Vacío"}}))
}

func TestGrantedKeysExcludesDisabledPermissions(t *testing.T) {
	granted := GrantedKeys(userWith(map[string]bool{"get.user": true, "create.user": false}))
	assert.Equal(t, []string{"get.user"}, granted.Keys())
}

func TestGrantedKeysIgnoresBlankKeys(t *testing.T) {
	granted := GrantedKeys(userWith(map[string]bool{"": true, "get.risk": true}))
	assert.Equal(t, []string{"get.risk"}, granted.Keys())
}

func TestAllowedIsAllOf(t *testing.T) {
	user := userWith(map[string]bool{"get.user": true, "create.user": false, "get.risk": true})

	assert.True(t, Allowed(user, "get.user"))
	assert.False(t, Allowed(user, "create.user"))
	assert.True(t, Allowed(user, "get.user", "get.risk"))
	assert.False(t, Allowed(user, "get.user", "create.user"))
	assert.True(t, Allowed(user))
	assert.True(t, Allowed(nil))
	assert.False(t, Allowed(nil, "get.user"))
}

func TestAllowedMatchesSubsetDefinition(t *testing.T) {
	user := userWith(map[string]bool{"a": true, "b": true, "c": false})
	granted := GrantedKeys(user)
	candidates := [][]string{{}, {"a"}, {"b"}, {"c"}, {"a", "b"}, {"a", "c"}, {"a", "b", "c"}, {"d"}}
	for _, required := range candidates {
		subset := true
		for _, key := range required {
			if !granted.Has(key) {
				subset = false
			}
		}
		assert.Equal(t, subset, Allowed(user, required...), "%v", required)
	}
}
