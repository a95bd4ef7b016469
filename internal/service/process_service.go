package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/audit-mgmt-api/internal/dto"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

type processRepository interface {
	List(ctx context.Context, filter models.ProcessFilter) ([]models.Process, int, error)
	FindByID(ctx context.Context, id string) (*models.Process, error)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, process *models.Process) error
	Update(ctx context.Context, process *models.Process) error
	Disable(ctx context.Context, id string) error
	Responsibles(ctx context.Context, processID string) ([]string, error)
	ReplaceResponsibles(ctx context.Context, processID string, userIDs []string) error
	Controls(ctx context.Context, processID string) ([]string, error)
	ReplaceControls(ctx context.Context, processID string, controlIDs []string) error
}

// userCounter verifies that referenced users exist and are active.
type userCounter interface {
	CountActiveByIDs(ctx context.Context, ids []string) (int, error)
}

// ProcessRequest captures fields for creating or updating processes.
type ProcessRequest struct {
	CompanyID   string `json:"company_id" validate:"required,uuid"`
	Name        string `json:"name" validate:"required,max=150"`
	Description string `json:"description"`
	Objective   string `json:"objective"`
	Status      *bool  `json:"status"`
}

// ProcessDetail is a process with its responsible users and controls.
type ProcessDetail struct {
	models.Process
	ResponsibleIDs []string `json:"responsible_ids"`
	ControlIDs     []string `json:"control_ids"`
}

// ProcessService handles process workflows.
type ProcessService struct {
	repo      processRepository
	users     userCounter
	audit     auditTrail
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProcessService creates a process service.
func NewProcessService(repo processRepository, users userCounter, audit AuditLogWriter, validate *validator.Validate, logger *zap.Logger) *ProcessService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcessService{repo: repo, users: users, audit: newAuditTrail(audit, logger), validator: validate, logger: logger}
}

// List returns paginated processes.
func (s *ProcessService) List(ctx context.Context, filter models.ProcessFilter) ([]models.Process, *models.Pagination, error) {
	processes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, writeError(err, "failed to list processes")
	}
	return processes, models.NewPagination(filter.ListOptions, total), nil
}

// Get returns a process with its links.
func (s *ProcessService) Get(ctx context.Context, id string) (*ProcessDetail, error) {
	process, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "process")
	}
	responsibles, err := s.repo.Responsibles(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load process responsibles")
	}
	controls, err := s.repo.Controls(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load process controls")
	}
	return &ProcessDetail{Process: *process, ResponsibleIDs: responsibles, ControlIDs: controls}, nil
}

// Create adds a process.
func (s *ProcessService) Create(ctx context.Context, req ProcessRequest, meta RequestMeta) (*models.Process, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid process payload")
	}
	process := &models.Process{Status: true}
	applyProcess(process, req)
	if err := claimSlug(ctx, s.repo.ExistsBySlug, process.Slug, "", "process"); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, process); err != nil {
		return nil, writeError(err, "failed to create process")
	}
	s.audit.record(ctx, meta, models.AuditActionCreate, "process", process.ID, nil, process)
	return process, nil
}

// Update modifies a process.
func (s *ProcessService) Update(ctx context.Context, id string, req ProcessRequest, meta RequestMeta) (*models.Process, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid process payload")
	}
	process, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "process")
	}
	before := *process
	applyProcess(process, req)
	if err := claimSlug(ctx, s.repo.ExistsBySlug, process.Slug, id, "process"); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, process); err != nil {
		return nil, writeError(err, "failed to update process")
	}
	s.audit.record(ctx, meta, models.AuditActionUpdate, "process", id, before, process)
	return process, nil
}

// Delete disables a process.
func (s *ProcessService) Delete(ctx context.Context, id string, meta RequestMeta) error {
	process, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, "process")
	}
	if err := s.repo.Disable(ctx, id); err != nil {
		return writeError(err, "failed to disable process")
	}
	s.audit.record(ctx, meta, models.AuditActionDelete, "process", id, process, nil)
	return nil
}

// SetResponsibles replaces the users responsible for a process. Every user must be active.
func (s *ProcessService) SetResponsibles(ctx context.Context, id string, req dto.IDsRequest, meta RequestMeta) ([]string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid responsibles payload")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, loadError(err, "process")
	}
	ids := uniqueIDs(req.IDs)
	if err := requireActiveUsers(ctx, s.users, ids); err != nil {
		return nil, err
	}
	before, err := s.repo.Responsibles(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load process responsibles")
	}
	if err := s.repo.ReplaceResponsibles(ctx, id, ids); err != nil {
		return nil, writeError(err, "failed to update process responsibles")
	}
	s.audit.record(ctx, meta, models.AuditActionLink, "process_responsibles", id, before, ids)
	return ids, nil
}

// SetControls replaces the controls attached to a process.
func (s *ProcessService) SetControls(ctx context.Context, id string, req dto.IDsRequest, meta RequestMeta) ([]string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid controls payload")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, loadError(err, "process")
	}
	ids := uniqueIDs(req.IDs)
	before, err := s.repo.Controls(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load process controls")
	}
	if err := s.repo.ReplaceControls(ctx, id, ids); err != nil {
		return nil, writeError(err, "failed to update process controls")
	}
	s.audit.record(ctx, meta, models.AuditActionLink, "process_controls", id, before, ids)
	return ids, nil
}

func applyProcess(process *models.Process, req ProcessRequest) {
	process.CompanyID = req.CompanyID
	process.Name = strings.TrimSpace(req.Name)
	process.Slug = slugify(process.Name)
	process.Description = strings.TrimSpace(req.Description)
	process.Objective = strings.TrimSpace(req.Objective)
	if req.Status != nil {
		process.Status = *req.Status
	}
}

func requireActiveUsers(ctx context.Context, users userCounter, ids []string) error {
	if len(ids) == 0 || users == nil {
		return nil
	}
	count, err := users.CountActiveByIDs(ctx, ids)
	if err != nil {
		return writeError(err, "failed to verify users")
	}
	if count != len(ids) {
		return appErrors.Clone(appErrors.ErrValidation, "one or more users do not exist or are inactive")
	}
	return nil
}
