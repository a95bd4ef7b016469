package models

import "time"

// AuditProgramStatus is the lifecycle stage of an audit program.
type AuditProgramStatus string

const (
	AuditProgramPlanning  AuditProgramStatus = "Planificación"
	AuditProgramExecution AuditProgramStatus = "Ejecución"
	AuditProgramReporting AuditProgramStatus = "Informe"
	AuditProgramFinished  AuditProgramStatus = "Finalizado"
)

// AuditProgram is a planned audit over a set of process/control pairs.
type AuditProgram struct {
	ID        string             `db:"id" json:"id"`
	CompanyID string             `db:"company_id" json:"company_id"`
	Name      string             `db:"name" json:"name"`
	Slug      string             `db:"slug" json:"slug"`
	Objective string             `db:"objective" json:"objective"`
	Scope     string             `db:"scope" json:"scope"`
	StartDate time.Time          `db:"start_date" json:"start_date"`
	EndDate   time.Time          `db:"end_date" json:"end_date"`
	Status    AuditProgramStatus `db:"status" json:"status"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}

// PlannedHours sums the hour budgets of participants.
func (p AuditProgram) PlannedHours(participants []AuditParticipant) float64 {
	var total float64
	for _, participant := range participants {
		if participant.AuditProgramID != "" && participant.AuditProgramID != p.ID {
			continue
		}
		total += participant.PlannedHours
	}
	return total
}

// AuditParticipant is a user assigned to an audit program with an hour budget.
type AuditParticipant struct {
	AuditProgramID string  `db:"audit_program_id" json:"audit_program_id"`
	UserID         string  `db:"user_id" json:"user_id"`
	Role           string  `db:"role" json:"role"`
	PlannedHours   float64 `db:"planned_hours" json:"planned_hours"`
}

// AuditProcessControl places a process/control pair inside an audit program's scope.
type AuditProcessControl struct {
	AuditProgramID string `db:"audit_program_id" json:"audit_program_id"`
	ProcessID      string `db:"process_id" json:"process_id"`
	ControlID      string `db:"control_id" json:"control_id"`
}

// AuditProgramFilter captures filtering criteria for listing audit programs.
type AuditProgramFilter struct {
	ListOptions
	CompanyID string
	Status    string
}
