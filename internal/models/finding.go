package models

import "time"

// FindingClassification grades the severity of a finding.
type FindingClassification string

const (
	FindingMinor     FindingClassification = "Menor"
	FindingModerate  FindingClassification = "Moderado"
	FindingImportant FindingClassification = "Importante"
	FindingCritical  FindingClassification = "Crítico"
)

// FindingType states whether the tested control conformed.
type FindingType string

const (
	FindingConforming    FindingType = "Conforme"
	FindingNonConforming FindingType = "No conforme"
)

// AuditFinding is the outcome recorded for an audit test.
type AuditFinding struct {
	ID             string                `db:"id" json:"id"`
	AuditTestID    string                `db:"audit_test_id" json:"audit_test_id"`
	AuditProgramID string                `db:"audit_program_id" json:"audit_program_id"`
	Title          string                `db:"title" json:"title"`
	Description    string                `db:"description" json:"description"`
	Criteria       string                `db:"criteria" json:"criteria"`
	Cause          string                `db:"cause" json:"cause"`
	Effect         string                `db:"effect" json:"effect"`
	Recommendation string                `db:"recommendation" json:"recommendation"`
	Classification FindingClassification `db:"classification" json:"classification"`
	FindingType    FindingType           `db:"finding_type" json:"finding_type"`
	Status         bool                  `db:"status" json:"status"`
	CreatedAt      time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time             `db:"updated_at" json:"updated_at"`
}

// IsNonConformity reports whether the finding requires remediation.
func (f AuditFinding) IsNonConformity() bool {
	return f.FindingType == FindingNonConforming
}

// AuditFindingControl must reference a control attached to the finding's test.
type AuditFindingControl struct {
	AuditFindingID string `db:"audit_finding_id" json:"audit_finding_id"`
	AuditTestID    string `db:"audit_test_id" json:"audit_test_id"`
	AuditProgramID string `db:"audit_program_id" json:"audit_program_id"`
	ProcessID      string `db:"process_id" json:"process_id"`
	ControlID      string `db:"control_id" json:"control_id"`
}

// FindingFilter captures filtering criteria for listing findings.
type FindingFilter struct {
	ListOptions
	AuditProgramID string
	AuditTestID    string
	Classification string
	FindingType    string
	Status         *bool
}
