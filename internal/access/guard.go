package access

import (
	"strings"
	"time"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

// Access classes evaluated before permission keys.
const (
	// RuleGuest admits only requests without a session.
	RuleGuest = "guest"
	// RuleAuth admits only requests with a session.
	RuleAuth = "auth"
)

// Redirect names the view a rejected request is sent to.
type Redirect string

const (
	RedirectNone   Redirect = ""
	RedirectHome   Redirect = "home"
	RedirectLogin  Redirect = "login"
	RedirectDenied Redirect = "denied"
)

// Session is the authenticated subject of a request. A nil *Session means
// no session.
type Session struct {
	User      *models.User
	ExpiresAt time.Time
}

// Decision is the outcome of evaluating a route's rules.
type Decision struct {
	Allowed    bool     `json:"allowed"`
	Redirect   Redirect `json:"redirect,omitempty"`
	Path       string   `json:"path,omitempty"`
	FailedRule string   `json:"failed_rule,omitempty"`
}

// Paths are the client routes a redirect resolves to.
type Paths struct {
	Home   string
	Login  string
	Denied string
}

// Guard evaluates route rules against a session.
type Guard struct {
	now   func() time.Time
	paths Paths
}

// NewGuard builds a guard. A nil clock uses time.Now; empty paths fall back to
// "/", "/login" and "/403".
func NewGuard(now func() time.Time, paths Paths) *Guard {
	if now == nil {
		now = time.Now
	}
	if paths.Home == "" {
		paths.Home = "/"
	}
	if paths.Login == "" {
		paths.Login = "/login"
	}
	if paths.Denied == "" {
		paths.Denied = "/403"
	}
	return &Guard{now: now, paths: paths}
}

// Active reports whether session exists and has not expired. A zero ExpiresAt never expires.
func (g *Guard) Active(session *Session) bool {
	if session == nil {
		return false
	}
	if session.ExpiresAt.IsZero() {
		return true
	}
	return !g.now().After(session.ExpiresAt)
}

// Evaluate applies rules in two passes: the guest/auth classes in declared
// order, then the permission keys. The first failing rule decides the redirect.
func (g *Guard) Evaluate(session *Session, rules ...string) Decision {
	active := g.Active(session)
	classes, keys := SplitRules(rules)

	for _, rule := range classes {
		switch rule {
		case RuleGuest:
			if active {
				return g.deny(RedirectHome, rule)
			}
		case RuleAuth:
			if !active {
				return g.deny(RedirectLogin, rule)
			}
		}
	}

	if len(keys) == 0 {
		return Decision{Allowed: true}
	}
	if !active {
		return g.deny(RedirectLogin, keys[0])
	}
	if key := missing(GrantedKeys(session.User), keys); key != "" {
		return g.deny(RedirectDenied, key)
	}
	return Decision{Allowed: true}
}

func (g *Guard) deny(redirect Redirect, rule string) Decision {
	return Decision{Allowed: false, Redirect: redirect, Path: g.path(redirect), FailedRule: rule}
}

func (g *Guard) path(redirect Redirect) string {
	switch redirect {
	case RedirectHome:
		return g.paths.Home
	case RedirectLogin:
		return g.paths.Login
	case RedirectDenied:
		return g.paths.Denied
	default:
		return ""
	}
}

// SplitRules separates access classes from permission keys, preserving order
// and dropping blanks.
func SplitRules(rules []string) (classes, keys []string) {
	for _, rule := range rules {
		rule = strings.TrimSpace(rule)
		switch rule {
		case "":
			continue
		case RuleGuest, RuleAuth:
			classes = append(classes, rule)
		default:
			keys = append(keys, rule)
		}
	}
	return classes, keys
}

// ParseRules splits a comma separated rule list such as "auth,get.user",
// keeping the caller's order and dropping blanks.
func ParseRules(raw string) []string {
	var rules []string
	for _, rule := range strings.Split(raw, ",") {
		if rule = strings.TrimSpace(rule); rule != "" {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Key builds a permission key such as "create.audit".
func Key(action, resource string) string {
	return action + "." + resource
}
