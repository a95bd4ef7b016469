// Package access resolves the permission keys granted to a user and decides
// whether a route's access rules admit a session.
//
// Everything here is pure: no I/O, no global state. Missing or malformed role
// data always resolves to "no permissions".
package access

import (
	"sort"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

// Set is a set of permission keys.
type Set map[string]struct{}

// Has reports whether key is in the set.
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Keys returns the keys in lexical order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// GrantedKeys returns the keys of the user's role permissions whose status is true.
// A nil user, a nil role or an empty permission list yields an empty set.
func GrantedKeys(user *models.User) Set {
	granted := Set{}
	if user == nil || user.Role == nil {
		return granted
	}
	for _, permission := range user.Role.Permissions {
		if !permission.Status || permission.Key == "" {
			continue
		}
		granted[permission.Key] = struct{}{}
	}
	return granted
}

// Allowed reports whether every required key is granted to user.
// No required keys is always allowed.
func Allowed(user *models.User, required ...string) bool {
	return missing(GrantedKeys(user), required) == ""
}

// missing returns the first required key absent from granted, or "".
func missing(granted Set, required []string) string {
	for _, key := range required {
		if !granted.Has(key) {
			return key
		}
	}
	return ""
}
