package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

const actionPlanColumns = "id, plan_type, event_id, audit_finding_id, name, description, start_date, due_date, status, created_at, updated_at"

var actionPlanSorts = sortSpec{
	allowed:  map[string]bool{"name": true, "start_date": true, "due_date": true, "status": true, "created_at": true},
	fallback: "due_date",
}

// ActionPlanRepository persists action plans and their responsible users.
type ActionPlanRepository struct {
	db *sqlx.DB
}

// NewActionPlanRepository creates a new instance of ActionPlanRepository.
func NewActionPlanRepository(db *sqlx.DB) *ActionPlanRepository {
	return &ActionPlanRepository{db: db}
}

// List returns plans matching the filter with the total count.
func (r *ActionPlanRepository) List(ctx context.Context, filter models.ActionPlanFilter) ([]models.ActionPlan, int, error) {
	where := &whereBuilder{}
	if filter.PlanType != "" {
		where.add("plan_type = $%d", filter.PlanType)
	}
	if filter.EventID != "" {
		where.add("event_id = $%d", filter.EventID)
	}
	if filter.AuditFindingID != "" {
		where.add("audit_finding_id = $%d", filter.AuditFindingID)
	}
	if filter.Status != "" {
		where.add("status = $%d", filter.Status)
	}
	where.search(filter.Search, "name")

	var plans []models.ActionPlan
	total, err := listPage(ctx, r.db, &plans, actionPlanColumns, "action_plans", where, filter.ListOptions, actionPlanSorts)
	if err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

// ListByFindings returns the plans remediating any of the given findings.
func (r *ActionPlanRepository) ListByFindings(ctx context.Context, findingIDs []string) ([]models.ActionPlan, error) {
	plans := []models.ActionPlan{}
	if len(findingIDs) == 0 {
		return plans, nil
	}
	query := "SELECT " + actionPlanColumns + " FROM action_plans WHERE audit_finding_id::text = ANY($1) ORDER BY due_date"
	if err := r.db.SelectContext(ctx, &plans, query, pq.Array(findingIDs)); err != nil {
		return nil, fmt.Errorf("list plans by findings: %w", err)
	}
	return plans, nil
}

// FindByID returns a plan by identifier.
func (r *ActionPlanRepository) FindByID(ctx context.Context, id string) (*models.ActionPlan, error) {
	query := "SELECT " + actionPlanColumns + " FROM action_plans WHERE id = $1"
	var plan models.ActionPlan
	if err := r.db.GetContext(ctx, &plan, query, id); err != nil {
		return nil, fmt.Errorf("find action plan: %w", err)
	}
	return &plan, nil
}

// Create inserts a plan.
func (r *ActionPlanRepository) Create(ctx context.Context, plan *models.ActionPlan) error {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	const query = `INSERT INTO action_plans (id, plan_type, event_id, audit_finding_id, name, description, start_date, due_date, status, created_at, updated_at)
VALUES (:id, :plan_type, :event_id, :audit_finding_id, :name, :description, :start_date, :due_date, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, plan); err != nil {
		return fmt.Errorf("create action plan: %w", TranslatePQError(err))
	}
	return nil
}

// Update saves mutable plan fields, including its target.
func (r *ActionPlanRepository) Update(ctx context.Context, plan *models.ActionPlan) error {
	plan.UpdatedAt = time.Now().UTC()
	const query = `UPDATE action_plans SET plan_type = :plan_type, event_id = :event_id, audit_finding_id = :audit_finding_id, name = :name, description = :description, start_date = :start_date, due_date = :due_date, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, plan); err != nil {
		return fmt.Errorf("update action plan: %w", TranslatePQError(err))
	}
	return nil
}

// Cancel retires a plan and its open tasks.
func (r *ActionPlanRepository) Cancel(ctx context.Context, id string) error {
	now := time.Now().UTC()
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE action_plans SET status = $2, updated_at = $3 WHERE id = $1`, id, models.WorkCancelled, now); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `UPDATE tasks SET status = $2, updated_at = $3 WHERE action_plan_id = $1 AND status <> $4`, id, models.WorkCancelled, now, models.WorkCompleted)
		return err
	})
	if err != nil {
		return fmt.Errorf("cancel action plan: %w", err)
	}
	return nil
}

type planUserRow struct {
	ActionPlanID string `db:"action_plan_id"`
	UserID       string `db:"user_id"`
}

// Responsibles lists the user IDs responsible for a plan.
func (r *ActionPlanRepository) Responsibles(ctx context.Context, planID string) ([]string, error) {
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, `SELECT user_id FROM plan_responsibles WHERE action_plan_id = $1 ORDER BY user_id`, planID); err != nil {
		return nil, fmt.Errorf("list plan responsibles: %w", err)
	}
	return ids, nil
}

// ReplaceResponsibles swaps the responsible users of a plan.
func (r *ActionPlanRepository) ReplaceResponsibles(ctx context.Context, planID string, userIDs []string) error {
	rows := make([]planUserRow, len(userIDs))
	for i, id := range userIDs {
		rows[i] = planUserRow{ActionPlanID: planID, UserID: id}
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return replaceSet(ctx, tx,
			`DELETE FROM plan_responsibles WHERE action_plan_id = $1`, planID,
			`INSERT INTO plan_responsibles (action_plan_id, user_id) VALUES (:action_plan_id, :user_id)`, rows)
	})
	if err != nil {
		return fmt.Errorf("replace plan responsibles: %w", err)
	}
	return nil
}
