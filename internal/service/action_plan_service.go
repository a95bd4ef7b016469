package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/audit-mgmt-api/internal/dto"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

type actionPlanRepository interface {
	List(ctx context.Context, filter models.ActionPlanFilter) ([]models.ActionPlan, int, error)
	FindByID(ctx context.Context, id string) (*models.ActionPlan, error)
	Create(ctx context.Context, plan *models.ActionPlan) error
	Update(ctx context.Context, plan *models.ActionPlan) error
	Cancel(ctx context.Context, id string) error
	Responsibles(ctx context.Context, planID string) ([]string, error)
	ReplaceResponsibles(ctx context.Context, planID string, userIDs []string) error
}

type eventFinder interface {
	FindByID(ctx context.Context, id string) (*models.Event, error)
}

type findingFinder interface {
	FindByID(ctx context.Context, id string) (*models.AuditFinding, error)
}

type planTaskLister interface {
	ListByPlans(ctx context.Context, planIDs []string) ([]models.Task, error)
}

// ActionPlanRequest captures fields for creating or updating action plans.
// PlanType Evento requires EventID; Hallazgo requires AuditFindingID.
type ActionPlanRequest struct {
	PlanType       string    `json:"plan_type" validate:"required,oneof=Evento Hallazgo"`
	EventID        string    `json:"event_id" validate:"omitempty,uuid"`
	AuditFindingID string    `json:"audit_finding_id" validate:"omitempty,uuid"`
	Name           string    `json:"name" validate:"required,max=150"`
	Description    string    `json:"description"`
	StartDate      time.Time `json:"start_date" validate:"required"`
	DueDate        time.Time `json:"due_date" validate:"required,gtefield=StartDate"`
	Status         string    `json:"status" validate:"omitempty,oneof=Pendiente 'En progreso' Completado Cancelado"`
}

// ActionPlanDetail is a plan with responsibles, tasks and computed progress.
type ActionPlanDetail struct {
	models.ActionPlan
	ResponsibleIDs []string      `json:"responsible_ids"`
	Tasks          []models.Task `json:"tasks"`
	Progress       int           `json:"progress"`
}

// ActionPlanService handles action plan workflows.
type ActionPlanService struct {
	repo      actionPlanRepository
	events    eventFinder
	findings  findingFinder
	tasks     planTaskLister
	users     userCounter
	audit     auditTrail
	validator *validator.Validate
	logger    *zap.Logger
}

// NewActionPlanService creates an action plan service.
func NewActionPlanService(repo actionPlanRepository, events eventFinder, findings findingFinder, tasks planTaskLister, users userCounter, audit AuditLogWriter, validate *validator.Validate, logger *zap.Logger) *ActionPlanService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActionPlanService{
		repo:      repo,
		events:    events,
		findings:  findings,
		tasks:     tasks,
		users:     users,
		audit:     newAuditTrail(audit, logger),
		validator: validate,
		logger:    logger,
	}
}

// List returns paginated plans.
func (s *ActionPlanService) List(ctx context.Context, filter models.ActionPlanFilter) ([]models.ActionPlan, *models.Pagination, error) {
	plans, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, writeError(err, "failed to list action plans")
	}
	return plans, models.NewPagination(filter.ListOptions, total), nil
}

// Get returns a plan with its tasks and progress.
func (s *ActionPlanService) Get(ctx context.Context, id string) (*ActionPlanDetail, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "action plan")
	}
	responsibles, err := s.repo.Responsibles(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load plan responsibles")
	}
	tasks, err := s.tasks.ListByPlans(ctx, []string{id})
	if err != nil {
		return nil, writeError(err, "failed to load plan tasks")
	}
	return &ActionPlanDetail{
		ActionPlan:     *plan,
		ResponsibleIDs: responsibles,
		Tasks:          tasks,
		Progress:       plan.Progress(tasks),
	}, nil
}

// Create adds a plan for an event or a finding.
func (s *ActionPlanService) Create(ctx context.Context, req ActionPlanRequest, meta RequestMeta) (*models.ActionPlan, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid action plan payload")
	}
	plan := &models.ActionPlan{Status: models.WorkPending}
	if err := s.applyTarget(ctx, plan, req); err != nil {
		return nil, err
	}
	applyActionPlan(plan, req)
	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, writeError(err, "failed to create action plan")
	}
	s.audit.record(ctx, meta, models.AuditActionCreate, "plan", plan.ID, nil, plan)
	return plan, nil
}

// Update modifies a plan, including its target.
func (s *ActionPlanService) Update(ctx context.Context, id string, req ActionPlanRequest, meta RequestMeta) (*models.ActionPlan, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid action plan payload")
	}
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "action plan")
	}
	before := *plan
	if err := s.applyTarget(ctx, plan, req); err != nil {
		return nil, err
	}
	applyActionPlan(plan, req)
	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, writeError(err, "failed to update action plan")
	}
	s.audit.record(ctx, meta, models.AuditActionUpdate, "plan", id, before, plan)
	return plan, nil
}

// Delete cancels a plan together with its unfinished tasks.
func (s *ActionPlanService) Delete(ctx context.Context, id string, meta RequestMeta) error {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, "action plan")
	}
	if err := s.repo.Cancel(ctx, id); err != nil {
		return writeError(err, "failed to cancel action plan")
	}
	s.audit.record(ctx, meta, models.AuditActionDelete, "plan", id, plan, map[string]string{"status": string(models.WorkCancelled)})
	return nil
}

// SetResponsibles replaces the users responsible for a plan.
func (s *ActionPlanService) SetResponsibles(ctx context.Context, id string, req dto.IDsRequest, meta RequestMeta) ([]string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid responsibles payload")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, loadError(err, "action plan")
	}
	ids := uniqueIDs(req.IDs)
	if err := requireActiveUsers(ctx, s.users, ids); err != nil {
		return nil, err
	}
	before, err := s.repo.Responsibles(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load plan responsibles")
	}
	if err := s.repo.ReplaceResponsibles(ctx, id, ids); err != nil {
		return nil, writeError(err, "failed to update plan responsibles")
	}
	s.audit.record(ctx, meta, models.AuditActionLink, "plan_responsibles", id, before, ids)
	return ids, nil
}

// applyTarget enforces that exactly the target matching plan_type is set and exists.
func (s *ActionPlanService) applyTarget(ctx context.Context, plan *models.ActionPlan, req ActionPlanRequest) error {
	switch models.PlanType(req.PlanType) {
	case models.PlanTypeEvent:
		if req.EventID == "" || req.AuditFindingID != "" {
			return appErrors.Clone(appErrors.ErrValidation, "plan_type Evento requires event_id and no audit_finding_id")
		}
		if _, err := s.events.FindByID(ctx, req.EventID); err != nil {
			return loadError(err, "event")
		}
		eventID := req.EventID
		plan.EventID, plan.AuditFindingID = &eventID, nil
	case models.PlanTypeFinding:
		if req.AuditFindingID == "" || req.EventID != "" {
			return appErrors.Clone(appErrors.ErrValidation, "plan_type Hallazgo requires audit_finding_id and no event_id")
		}
		if _, err := s.findings.FindByID(ctx, req.AuditFindingID); err != nil {
			return loadError(err, "finding")
		}
		findingID := req.AuditFindingID
		plan.EventID, plan.AuditFindingID = nil, &findingID
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unknown plan_type")
	}
	plan.PlanType = models.PlanType(req.PlanType)
	return nil
}

func applyActionPlan(plan *models.ActionPlan, req ActionPlanRequest) {
	plan.Name = strings.TrimSpace(req.Name)
	plan.Description = strings.TrimSpace(req.Description)
	plan.StartDate = req.StartDate.UTC()
	plan.DueDate = req.DueDate.UTC()
	if req.Status != "" {
		plan.Status = models.WorkStatus(req.Status)
	}
}
