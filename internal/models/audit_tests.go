package models

import "time"

// AuditTestStatus tracks execution of an audit test.
type AuditTestStatus string

const (
	AuditTestPending    AuditTestStatus = "Pendiente"
	AuditTestInProgress AuditTestStatus = "En ejecución"
	AuditTestFinished   AuditTestStatus = "Finalizada"
)

// AuditTest is a unit of fieldwork inside an audit program.
type AuditTest struct {
	ID             string          `db:"id" json:"id"`
	AuditProgramID string          `db:"audit_program_id" json:"audit_program_id"`
	Name           string          `db:"name" json:"name"`
	Description    string          `db:"description" json:"description"`
	Procedure      string          `db:"procedure" json:"procedure"`
	StartDate      *time.Time      `db:"start_date" json:"start_date,omitempty"`
	EndDate        *time.Time      `db:"end_date" json:"end_date,omitempty"`
	Status         AuditTestStatus `db:"status" json:"status"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// AuditTestParticipant must also be a participant of the owning program.
type AuditTestParticipant struct {
	AuditTestID    string `db:"audit_test_id" json:"audit_test_id"`
	AuditProgramID string `db:"audit_program_id" json:"audit_program_id"`
	UserID         string `db:"user_id" json:"user_id"`
}

// AuditTestControl must reference a pair in the owning program's scope.
type AuditTestControl struct {
	AuditTestID    string `db:"audit_test_id" json:"audit_test_id"`
	AuditProgramID string `db:"audit_program_id" json:"audit_program_id"`
	ProcessID      string `db:"process_id" json:"process_id"`
	ControlID      string `db:"control_id" json:"control_id"`
}

// AuditTestFilter captures filtering criteria for listing audit tests.
type AuditTestFilter struct {
	ListOptions
	AuditProgramID string
	Status         string
}
