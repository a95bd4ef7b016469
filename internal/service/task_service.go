package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

type taskRepository interface {
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, int, error)
	FindByID(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	Cancel(ctx context.Context, id string) error
}

type planFinder interface {
	FindByID(ctx context.Context, id string) (*models.ActionPlan, error)
}

// TaskRequest captures fields for creating or updating tasks.
type TaskRequest struct {
	Name        string    `json:"name" validate:"required,max=150"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	Progress    int       `json:"progress" validate:"gte=0,lte=100"`
	Status      string    `json:"status" validate:"omitempty,oneof=Pendiente 'En progreso' Completado Cancelado"`
}

// TaskService handles action plan task workflows.
type TaskService struct {
	repo      taskRepository
	plans     planFinder
	audit     auditTrail
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTaskService creates a task service.
func NewTaskService(repo taskRepository, plans planFinder, audit AuditLogWriter, validate *validator.Validate, logger *zap.Logger) *TaskService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{
		repo:      repo,
		plans:     plans,
		audit:     newAuditTrail(audit, logger),
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List returns the paginated tasks of a plan.
func (s *TaskService) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, *models.Pagination, error) {
	if _, err := s.plans.FindByID(ctx, filter.ActionPlanID); err != nil {
		return nil, nil, loadError(err, "action plan")
	}
	tasks, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, writeError(err, "failed to list tasks")
	}
	return tasks, models.NewPagination(filter.ListOptions, total), nil
}

// Get returns a task.
func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "task")
	}
	return task, nil
}

// Create adds a task to an open plan.
func (s *TaskService) Create(ctx context.Context, planID string, req TaskRequest, meta RequestMeta) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid task payload")
	}
	plan, err := s.plans.FindByID(ctx, planID)
	if err != nil {
		return nil, loadError(err, "action plan")
	}
	if plan.Status == models.WorkCancelled || plan.Status == models.WorkCompleted {
		return nil, appErrors.Clone(appErrors.ErrConflict, "action plan is closed")
	}
	task := &models.Task{ActionPlanID: planID, Status: models.WorkPending}
	s.apply(task, req)
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, writeError(err, "failed to create task")
	}
	s.audit.record(ctx, meta, models.AuditActionCreate, "task", task.ID, nil, task)
	return task, nil
}

// Update modifies a task.
func (s *TaskService) Update(ctx context.Context, id string, req TaskRequest, meta RequestMeta) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid task payload")
	}
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "task")
	}
	before := *task
	s.apply(task, req)
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, writeError(err, "failed to update task")
	}
	s.audit.record(ctx, meta, models.AuditActionUpdate, "task", id, before, task)
	return task, nil
}

// Delete cancels a task.
func (s *TaskService) Delete(ctx context.Context, id string, meta RequestMeta) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, "task")
	}
	if err := s.repo.Cancel(ctx, id); err != nil {
		return writeError(err, "failed to cancel task")
	}
	s.audit.record(ctx, meta, models.AuditActionDelete, "task", id, task, map[string]string{"status": string(models.WorkCancelled)})
	return nil
}

// apply copies request fields. Completed tasks are forced to 100% and stamped.
func (s *TaskService) apply(task *models.Task, req TaskRequest) {
	task.Name = strings.TrimSpace(req.Name)
	task.Description = strings.TrimSpace(req.Description)
	task.DueDate = req.DueDate.UTC()
	task.Progress = req.Progress
	if req.Status != "" {
		task.Status = models.WorkStatus(req.Status)
	}
	if task.Status == models.WorkCompleted {
		task.Progress = 100
		if task.CompletedAt == nil {
			now := s.now()
			task.CompletedAt = &now
		}
		return
	}
	task.CompletedAt = nil
}
