package models

import "time"

// ControlType classifies what a control does.
type ControlType string

const (
	ControlTypePreventive ControlType = "Preventivo"
	ControlTypeDetective  ControlType = "Detectivo"
	ControlTypeCorrective ControlType = "Correctivo"
)

// ControlExecution describes how a control runs.
type ControlExecution string

const (
	ControlExecutionManual        ControlExecution = "Manual"
	ControlExecutionAutomatic     ControlExecution = "Automático"
	ControlExecutionSemiautomatic ControlExecution = "Semiautomático"
)

// ControlFrequency describes how often a control runs.
type ControlFrequency string

const (
	ControlFrequencyDaily      ControlFrequency = "Diaria"
	ControlFrequencyWeekly     ControlFrequency = "Semanal"
	ControlFrequencyMonthly    ControlFrequency = "Mensual"
	ControlFrequencyQuarterly  ControlFrequency = "Trimestral"
	ControlFrequencySemiannual ControlFrequency = "Semestral"
	ControlFrequencyAnnual     ControlFrequency = "Anual"
	ControlFrequencyOnEvent    ControlFrequency = "Por evento"
)

// Control is an internal control mitigating risks within processes.
type Control struct {
	ID          string           `db:"id" json:"id"`
	CompanyID   string           `db:"company_id" json:"company_id"`
	Name        string           `db:"name" json:"name"`
	Slug        string           `db:"slug" json:"slug"`
	Description string           `db:"description" json:"description"`
	ControlType ControlType      `db:"control_type" json:"control_type"`
	Execution   ControlExecution `db:"execution" json:"execution"`
	Frequency   ControlFrequency `db:"frequency" json:"frequency"`
	Status      bool             `db:"status" json:"status"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
}

// ControlFilter captures filtering criteria for listing controls.
type ControlFilter struct {
	ListOptions
	CompanyID   string
	ControlType string
	Status      *bool
}
