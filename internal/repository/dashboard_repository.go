package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// StatusCount is one bucket of a GROUP BY count.
type StatusCount struct {
	Key   string `db:"key"`
	Total int    `db:"total"`
}

// DashboardRepository aggregates counters for the dashboard. An empty company ID spans every company.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs the repository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// FindingsByClassification counts active findings per classification.
func (r *DashboardRepository) FindingsByClassification(ctx context.Context, companyID string) ([]StatusCount, error) {
	const query = `SELECT f.classification AS key, COUNT(*) AS total
FROM audit_findings f JOIN audit_programs p ON p.id = f.audit_program_id
WHERE f.status = TRUE AND ($1 = '' OR p.company_id::text = $1)
GROUP BY f.classification`
	return r.counts(ctx, "findings by classification", query, companyID)
}

// FindingsByType counts active findings per conformity type.
func (r *DashboardRepository) FindingsByType(ctx context.Context, companyID string) ([]StatusCount, error) {
	const query = `SELECT f.finding_type AS key, COUNT(*) AS total
FROM audit_findings f JOIN audit_programs p ON p.id = f.audit_program_id
WHERE f.status = TRUE AND ($1 = '' OR p.company_id::text = $1)
GROUP BY f.finding_type`
	return r.counts(ctx, "findings by type", query, companyID)
}

// ActionPlansByStatus counts plans of the company's events and findings per status.
func (r *DashboardRepository) ActionPlansByStatus(ctx context.Context, companyID string) ([]StatusCount, error) {
	const query = `SELECT ap.status AS key, COUNT(*) AS total
FROM action_plans ap
LEFT JOIN events e ON e.id = ap.event_id
LEFT JOIN audit_findings f ON f.id = ap.audit_finding_id
LEFT JOIN audit_programs p ON p.id = f.audit_program_id
WHERE $1 = '' OR COALESCE(e.company_id, p.company_id)::text = $1
GROUP BY ap.status`
	return r.counts(ctx, "action plans by status", query, companyID)
}

// AuditProgramsByStatus counts programs per lifecycle stage.
func (r *DashboardRepository) AuditProgramsByStatus(ctx context.Context, companyID string) ([]StatusCount, error) {
	const query = `SELECT status AS key, COUNT(*) AS total FROM audit_programs
WHERE $1 = '' OR company_id::text = $1
GROUP BY status`
	return r.counts(ctx, "audit programs by status", query, companyID)
}

// OverdueTasks counts open tasks whose due date is before now.
func (r *DashboardRepository) OverdueTasks(ctx context.Context, companyID string, now time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM tasks t
JOIN action_plans ap ON ap.id = t.action_plan_id
LEFT JOIN events e ON e.id = ap.event_id
LEFT JOIN audit_findings f ON f.id = ap.audit_finding_id
LEFT JOIN audit_programs p ON p.id = f.audit_program_id
WHERE t.status IN ('Pendiente', 'En progreso') AND t.due_date < $2
AND ($1 = '' OR COALESCE(e.company_id, p.company_id)::text = $1)`
	var total int
	if err := r.db.GetContext(ctx, &total, query, companyID, now); err != nil {
		return 0, fmt.Errorf("count overdue tasks: %w", err)
	}
	return total, nil
}

func (r *DashboardRepository) counts(ctx context.Context, label, query, companyID string) ([]StatusCount, error) {
	rows := []StatusCount{}
	if err := r.db.SelectContext(ctx, &rows, query, companyID); err != nil {
		return nil, fmt.Errorf("count %s: %w", label, err)
	}
	return rows, nil
}
