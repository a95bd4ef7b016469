package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/audit-mgmt-api/internal/dto"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

type controlRepository interface {
	List(ctx context.Context, filter models.ControlFilter) ([]models.Control, int, error)
	FindByID(ctx context.Context, id string) (*models.Control, error)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, control *models.Control) error
	Update(ctx context.Context, control *models.Control) error
	Disable(ctx context.Context, id string) error
	Risks(ctx context.Context, controlID string) ([]string, error)
	ReplaceRisks(ctx context.Context, controlID string, riskIDs []string) error
}

// ControlRequest captures fields for creating or updating controls.
type ControlRequest struct {
	CompanyID   string `json:"company_id" validate:"required,uuid"`
	Name        string `json:"name" validate:"required,max=150"`
	Description string `json:"description"`
	ControlType string `json:"control_type" validate:"required,oneof=Preventivo Detectivo Correctivo"`
	Execution   string `json:"execution" validate:"required,oneof=Manual Automático Semiautomático"`
	Frequency   string `json:"frequency" validate:"required,oneof=Diaria Semanal Mensual Trimestral Semestral Anual 'Por evento'"`
	Status      *bool  `json:"status"`
}

// ControlDetail is a control with the risks it mitigates.
type ControlDetail struct {
	models.Control
	RiskIDs []string `json:"risk_ids"`
}

// ControlService handles control workflows.
type ControlService struct {
	repo      controlRepository
	audit     auditTrail
	validator *validator.Validate
	logger    *zap.Logger
}

// NewControlService creates a control service.
func NewControlService(repo controlRepository, audit AuditLogWriter, validate *validator.Validate, logger *zap.Logger) *ControlService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ControlService{repo: repo, audit: newAuditTrail(audit, logger), validator: validate, logger: logger}
}

// List returns paginated controls.
func (s *ControlService) List(ctx context.Context, filter models.ControlFilter) ([]models.Control, *models.Pagination, error) {
	controls, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, writeError(err, "failed to list controls")
	}
	return controls, models.NewPagination(filter.ListOptions, total), nil
}

// Get returns a control with its risks.
func (s *ControlService) Get(ctx context.Context, id string) (*ControlDetail, error) {
	control, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "control")
	}
	risks, err := s.repo.Risks(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load control risks")
	}
	return &ControlDetail{Control: *control, RiskIDs: risks}, nil
}

// Create adds a control.
func (s *ControlService) Create(ctx context.Context, req ControlRequest, meta RequestMeta) (*models.Control, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid control payload")
	}
	control := &models.Control{Status: true}
	applyControl(control, req)
	if err := claimSlug(ctx, s.repo.ExistsBySlug, control.Slug, "", "control"); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, control); err != nil {
		return nil, writeError(err, "failed to create control")
	}
	s.audit.record(ctx, meta, models.AuditActionCreate, "control", control.ID, nil, control)
	return control, nil
}

// Update modifies a control.
func (s *ControlService) Update(ctx context.Context, id string, req ControlRequest, meta RequestMeta) (*models.Control, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid control payload")
	}
	control, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "control")
	}
	before := *control
	applyControl(control, req)
	if err := claimSlug(ctx, s.repo.ExistsBySlug, control.Slug, id, "control"); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, control); err != nil {
		return nil, writeError(err, "failed to update control")
	}
	s.audit.record(ctx, meta, models.AuditActionUpdate, "control", id, before, control)
	return control, nil
}

// Delete disables a control.
func (s *ControlService) Delete(ctx context.Context, id string, meta RequestMeta) error {
	control, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, "control")
	}
	if err := s.repo.Disable(ctx, id); err != nil {
		return writeError(err, "failed to disable control")
	}
	s.audit.record(ctx, meta, models.AuditActionDelete, "control", id, control, nil)
	return nil
}

// SetRisks replaces the risks mitigated by a control.
func (s *ControlService) SetRisks(ctx context.Context, id string, req dto.IDsRequest, meta RequestMeta) ([]string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid risks payload")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, loadError(err, "control")
	}
	ids := uniqueIDs(req.IDs)
	before, err := s.repo.Risks(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load control risks")
	}
	if err := s.repo.ReplaceRisks(ctx, id, ids); err != nil {
		return nil, writeError(err, "failed to update control risks")
	}
	s.audit.record(ctx, meta, models.AuditActionLink, "control_risks", id, before, ids)
	return ids, nil
}

func applyControl(control *models.Control, req ControlRequest) {
	control.CompanyID = req.CompanyID
	control.Name = strings.TrimSpace(req.Name)
	control.Slug = slugify(control.Name)
	control.Description = strings.TrimSpace(req.Description)
	control.ControlType = models.ControlType(req.ControlType)
	control.Execution = models.ControlExecution(req.Execution)
	control.Frequency = models.ControlFrequency(req.Frequency)
	if req.Status != nil {
		control.Status = *req.Status
	}
}
