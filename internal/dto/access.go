package dto

import (
	"github.com/noah-isme/audit-mgmt-api/internal/access"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

// AccessCheckResponse reports how the route guard judged a rule list.
type AccessCheckResponse struct {
	Decision    access.Decision `json:"decision"`
	Rules       []string        `json:"rules"`
	GrantedKeys []string        `json:"granted_keys"`
}

// MeResponse is the authenticated user aggregate with its resolved permission keys.
type MeResponse struct {
	User        *models.User `json:"user"`
	GrantedKeys []string     `json:"granted_keys"`
}
