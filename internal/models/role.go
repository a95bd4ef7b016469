package models

import "time"

// Role groups permissions assigned to users.
type Role struct {
	ID          string       `db:"id" json:"id"`
	Name        string       `db:"name" json:"name"`
	Slug        string       `db:"slug" json:"slug"`
	Description string       `db:"description" json:"description"`
	Status      bool         `db:"status" json:"status"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
	Permissions []Permission `db:"-" json:"permissions,omitempty"`
}

// Permission is a named capability such as "get.user". Status false disables it for every role.
type Permission struct {
	ID          string    `db:"id" json:"id"`
	Key         string    `db:"key" json:"key"`
	Name        string    `db:"name" json:"name"`
	Resource    string    `db:"resource" json:"resource"`
	Description string    `db:"description" json:"description"`
	Status      bool      `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// RoleFilter captures filtering criteria for listing roles.
type RoleFilter struct {
	ListOptions
	Status *bool
}

// PermissionFilter captures filtering criteria for listing permissions.
type PermissionFilter struct {
	ListOptions
	Resource string
	Status   *bool
}
