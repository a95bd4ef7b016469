package dto

import "time"

// ReportRequest asks for an asynchronous report.
type ReportRequest struct {
	Type           string `json:"type" validate:"required,oneof=findings risk_matrix"`
	AuditProgramID string `json:"audit_program_id" validate:"omitempty,uuid"`
	CompanyID      string `json:"company_id" validate:"omitempty,uuid"`
	Format         string `json:"format" validate:"required,oneof=csv pdf"`
}

// ReportJobResponse describes a queued or finished report job.
type ReportJobResponse struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Format      string     `json:"format"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	DownloadURL string     `json:"download_url,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}
