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

const taskColumns = "id, action_plan_id, name, description, due_date, progress, status, completed_at, created_at, updated_at"

var taskSorts = sortSpec{
	allowed:  map[string]bool{"name": true, "due_date": true, "progress": true, "status": true, "created_at": true},
	fallback: "due_date",
}

// TaskRepository persists action plan tasks.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new instance of TaskRepository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns the tasks of a plan matching the filter.
func (r *TaskRepository) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, int, error) {
	where := &whereBuilder{}
	if filter.ActionPlanID != "" {
		where.add("action_plan_id = $%d", filter.ActionPlanID)
	}
	if filter.Status != "" {
		where.add("status = $%d", filter.Status)
	}
	where.search(filter.Search, "name")

	var tasks []models.Task
	total, err := listPage(ctx, r.db, &tasks, taskColumns, "tasks", where, filter.ListOptions, taskSorts)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// ListByPlans returns every task of the given plans.
func (r *TaskRepository) ListByPlans(ctx context.Context, planIDs []string) ([]models.Task, error) {
	tasks := []models.Task{}
	if len(planIDs) == 0 {
		return tasks, nil
	}
	query := "SELECT " + taskColumns + " FROM tasks WHERE action_plan_id::text = ANY($1) ORDER BY due_date"
	if err := r.db.SelectContext(ctx, &tasks, query, pq.Array(planIDs)); err != nil {
		return nil, fmt.Errorf("list tasks by plans: %w", err)
	}
	return tasks, nil
}

// FindByID returns a task by identifier.
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE id = $1"
	var task models.Task
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

// Create inserts a task.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	const query = `INSERT INTO tasks (id, action_plan_id, name, description, due_date, progress, status, completed_at, created_at, updated_at)
VALUES (:id, :action_plan_id, :name, :description, :due_date, :progress, :status, :completed_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("create task: %w", TranslatePQError(err))
	}
	return nil
}

// Update saves mutable task fields.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now().UTC()
	const query = `UPDATE tasks SET name = :name, description = :description, due_date = :due_date, progress = :progress, status = :status, completed_at = :completed_at, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("update task: %w", TranslatePQError(err))
	}
	return nil
}

// Cancel retires a task.
func (r *TaskRepository) Cancel(ctx context.Context, id string) error {
	const query = `UPDATE tasks SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, models.WorkCancelled, time.Now().UTC()); err != nil {
		return fmt.Errorf("cancel task: %w", err)
	}
	return nil
}
