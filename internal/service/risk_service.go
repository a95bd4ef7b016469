package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/audit-mgmt-api/internal/dto"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

type riskRepository interface {
	List(ctx context.Context, filter models.RiskFilter) ([]models.Risk, int, error)
	FindByID(ctx context.Context, id string) (*models.Risk, error)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, risk *models.Risk) error
	Update(ctx context.Context, risk *models.Risk) error
	Disable(ctx context.Context, id string) error
	Processes(ctx context.Context, riskID string) ([]string, error)
	ReplaceProcesses(ctx context.Context, riskID string, processIDs []string) error
}

// RiskRequest captures fields for creating or updating risks.
type RiskRequest struct {
	CompanyID   string `json:"company_id" validate:"required,uuid"`
	Name        string `json:"name" validate:"required,max=150"`
	Description string `json:"description"`
	Probability string `json:"probability" validate:"required,oneof='Muy baja' Baja Media Alta 'Muy alta'"`
	Impact      string `json:"impact" validate:"required,oneof='Muy bajo' Bajo Medio Alto 'Muy alto'"`
	Status      *bool  `json:"status"`
}

// RiskDetail is a risk with computed level and affected processes.
type RiskDetail struct {
	models.RiskView
	ProcessIDs []string `json:"process_ids"`
}

// RiskService handles risk workflows.
type RiskService struct {
	repo      riskRepository
	audit     auditTrail
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRiskService creates a risk service.
func NewRiskService(repo riskRepository, audit AuditLogWriter, validate *validator.Validate, logger *zap.Logger) *RiskService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RiskService{repo: repo, audit: newAuditTrail(audit, logger), validator: validate, logger: logger}
}

// List returns paginated risks with score and level.
func (s *RiskService) List(ctx context.Context, filter models.RiskFilter) ([]models.RiskView, *models.Pagination, error) {
	risks, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, writeError(err, "failed to list risks")
	}
	views := make([]models.RiskView, len(risks))
	for i, risk := range risks {
		views[i] = models.NewRiskView(risk)
	}
	return views, models.NewPagination(filter.ListOptions, total), nil
}

// Get returns a risk with its affected processes.
func (s *RiskService) Get(ctx context.Context, id string) (*RiskDetail, error) {
	risk, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "risk")
	}
	processes, err := s.repo.Processes(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load affected processes")
	}
	return &RiskDetail{RiskView: models.NewRiskView(*risk), ProcessIDs: processes}, nil
}

// Create adds a risk.
func (s *RiskService) Create(ctx context.Context, req RiskRequest, meta RequestMeta) (*models.RiskView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid risk payload")
	}
	risk := &models.Risk{Status: true}
	applyRisk(risk, req)
	if err := claimSlug(ctx, s.repo.ExistsBySlug, risk.Slug, "", "risk"); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, risk); err != nil {
		return nil, writeError(err, "failed to create risk")
	}
	view := models.NewRiskView(*risk)
	s.audit.record(ctx, meta, models.AuditActionCreate, "risk", risk.ID, nil, view)
	return &view, nil
}

// Update modifies a risk.
func (s *RiskService) Update(ctx context.Context, id string, req RiskRequest, meta RequestMeta) (*models.RiskView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid risk payload")
	}
	risk, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "risk")
	}
	before := models.NewRiskView(*risk)
	applyRisk(risk, req)
	if err := claimSlug(ctx, s.repo.ExistsBySlug, risk.Slug, id, "risk"); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, risk); err != nil {
		return nil, writeError(err, "failed to update risk")
	}
	view := models.NewRiskView(*risk)
	s.audit.record(ctx, meta, models.AuditActionUpdate, "risk", id, before, view)
	return &view, nil
}

// Delete disables a risk.
func (s *RiskService) Delete(ctx context.Context, id string, meta RequestMeta) error {
	risk, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, "risk")
	}
	if err := s.repo.Disable(ctx, id); err != nil {
		return writeError(err, "failed to disable risk")
	}
	s.audit.record(ctx, meta, models.AuditActionDelete, "risk", id, risk, nil)
	return nil
}

// SetProcesses replaces the processes a risk affects.
func (s *RiskService) SetProcesses(ctx context.Context, id string, req dto.IDsRequest, meta RequestMeta) ([]string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid processes payload")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, loadError(err, "risk")
	}
	ids := uniqueIDs(req.IDs)
	before, err := s.repo.Processes(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load affected processes")
	}
	if err := s.repo.ReplaceProcesses(ctx, id, ids); err != nil {
		return nil, writeError(err, "failed to update affected processes")
	}
	s.audit.record(ctx, meta, models.AuditActionLink, "affected_processes", id, before, ids)
	return ids, nil
}

func applyRisk(risk *models.Risk, req RiskRequest) {
	risk.CompanyID = req.CompanyID
	risk.Name = strings.TrimSpace(req.Name)
	risk.Slug = slugify(risk.Name)
	risk.Description = strings.TrimSpace(req.Description)
	risk.Probability = models.RiskProbability(req.Probability)
	risk.Impact = models.RiskImpact(req.Impact)
	if req.Status != nil {
		risk.Status = *req.Status
	}
}
