package models

import "time"

// EventStatus tracks the analysis of a materialised risk event.
type EventStatus string

const (
	EventStatusOpen       EventStatus = "Abierto"
	EventStatusInAnalysis EventStatus = "En análisis"
	EventStatusClosed     EventStatus = "Cerrado"
)

// Event is an incident in which one or more risks materialised.
type Event struct {
	ID          string      `db:"id" json:"id"`
	CompanyID   string      `db:"company_id" json:"company_id"`
	Name        string      `db:"name" json:"name"`
	Slug        string      `db:"slug" json:"slug"`
	Description string      `db:"description" json:"description"`
	OccurredAt  time.Time   `db:"occurred_at" json:"occurred_at"`
	LossAmount  float64     `db:"loss_amount" json:"loss_amount"`
	Status      EventStatus `db:"status" json:"status"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// EventFilter captures filtering criteria for listing events.
type EventFilter struct {
	ListOptions
	CompanyID string
	Status    string
}
