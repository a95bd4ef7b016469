package models

import "time"

// Process is a business process of a company.
type Process struct {
	ID          string    `db:"id" json:"id"`
	CompanyID   string    `db:"company_id" json:"company_id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description string    `db:"description" json:"description"`
	Objective   string    `db:"objective" json:"objective"`
	Status      bool      `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ProcessControl links a control to a process. Audit scope rows reference these pairs.
type ProcessControl struct {
	ProcessID string `db:"process_id" json:"process_id"`
	ControlID string `db:"control_id" json:"control_id"`
}

// ProcessFilter captures filtering criteria for listing processes.
type ProcessFilter struct {
	ListOptions
	CompanyID string
	Status    *bool
}
