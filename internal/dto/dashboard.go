package dto

import "time"

// DashboardSummary aggregates the counters shown on the landing dashboard.
type DashboardSummary struct {
	CompanyID                string         `json:"company_id,omitempty"`
	FindingsByClassification map[string]int `json:"findings_by_classification"`
	FindingsByType           map[string]int `json:"findings_by_type"`
	ActionPlansByStatus      map[string]int `json:"action_plans_by_status"`
	RisksByLevel             map[string]int `json:"risks_by_level"`
	AuditProgramsByStatus    map[string]int `json:"audit_programs_by_status"`
	OverdueTasks             int            `json:"overdue_tasks"`
	GeneratedAt              time.Time      `json:"generated_at"`
}
