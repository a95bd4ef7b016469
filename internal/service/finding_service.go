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

type findingRepository interface {
	List(ctx context.Context, filter models.FindingFilter) ([]models.AuditFinding, int, error)
	FindByID(ctx context.Context, id string) (*models.AuditFinding, error)
	Create(ctx context.Context, finding *models.AuditFinding) error
	Update(ctx context.Context, finding *models.AuditFinding) error
	Disable(ctx context.Context, id string) error
	Controls(ctx context.Context, findingID string) ([]models.AuditFindingControl, error)
	ReplaceControls(ctx context.Context, finding *models.AuditFinding, pairs []models.ProcessControl) error
}

// testControlSource exposes audit tests and the pairs they examine.
type testControlSource interface {
	FindByID(ctx context.Context, id string) (*models.AuditTest, error)
	Controls(ctx context.Context, testID string) ([]models.AuditTestControl, error)
}

// FindingRequest captures fields for creating or updating findings.
type FindingRequest struct {
	AuditTestID    string `json:"audit_test_id" validate:"required,uuid"`
	Title          string `json:"title" validate:"required,max=200"`
	Description    string `json:"description"`
	Criteria       string `json:"criteria"`
	Cause          string `json:"cause"`
	Effect         string `json:"effect"`
	Recommendation string `json:"recommendation"`
	Classification string `json:"classification" validate:"required,oneof=Menor Moderado Importante Crítico"`
	FindingType    string `json:"finding_type" validate:"required,oneof=Conforme 'No conforme'"`
	Status         *bool  `json:"status"`
}

// FindingDetail is a finding with the controls it cites.
type FindingDetail struct {
	models.AuditFinding
	NonConformity bool                         `json:"non_conformity"`
	Controls      []models.AuditFindingControl `json:"controls"`
}

// FindingService handles audit finding workflows.
type FindingService struct {
	repo      findingRepository
	tests     testControlSource
	audit     auditTrail
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFindingService creates a finding service.
func NewFindingService(repo findingRepository, tests testControlSource, audit AuditLogWriter, validate *validator.Validate, logger *zap.Logger) *FindingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FindingService{repo: repo, tests: tests, audit: newAuditTrail(audit, logger), validator: validate, logger: logger}
}

// List returns paginated findings.
func (s *FindingService) List(ctx context.Context, filter models.FindingFilter) ([]models.AuditFinding, *models.Pagination, error) {
	findings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, writeError(err, "failed to list findings")
	}
	return findings, models.NewPagination(filter.ListOptions, total), nil
}

// Get returns a finding with its controls.
func (s *FindingService) Get(ctx context.Context, id string) (*FindingDetail, error) {
	finding, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "finding")
	}
	controls, err := s.repo.Controls(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load finding controls")
	}
	return &FindingDetail{AuditFinding: *finding, NonConformity: finding.IsNonConformity(), Controls: controls}, nil
}

// Create records a finding for a test. A test may hold several findings.
func (s *FindingService) Create(ctx context.Context, req FindingRequest, meta RequestMeta) (*models.AuditFinding, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid finding payload")
	}
	test, err := s.tests.FindByID(ctx, req.AuditTestID)
	if err != nil {
		return nil, loadError(err, "audit test")
	}
	finding := &models.AuditFinding{AuditTestID: test.ID, AuditProgramID: test.AuditProgramID, Status: true}
	applyFinding(finding, req)
	if err := s.repo.Create(ctx, finding); err != nil {
		return nil, writeError(err, "failed to create finding")
	}
	s.audit.record(ctx, meta, models.AuditActionCreate, "finding", finding.ID, nil, finding)
	return finding, nil
}

// Update modifies a finding. The owning test is fixed.
func (s *FindingService) Update(ctx context.Context, id string, req FindingRequest, meta RequestMeta) (*models.AuditFinding, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid finding payload")
	}
	finding, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "finding")
	}
	if finding.AuditTestID != req.AuditTestID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "finding cannot move to another audit test")
	}
	before := *finding
	applyFinding(finding, req)
	if err := s.repo.Update(ctx, finding); err != nil {
		return nil, writeError(err, "failed to update finding")
	}
	s.audit.record(ctx, meta, models.AuditActionUpdate, "finding", id, before, finding)
	return finding, nil
}

// Delete disables a finding.
func (s *FindingService) Delete(ctx context.Context, id string, meta RequestMeta) error {
	finding, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, "finding")
	}
	if err := s.repo.Disable(ctx, id); err != nil {
		return writeError(err, "failed to disable finding")
	}
	s.audit.record(ctx, meta, models.AuditActionDelete, "finding", id, finding, nil)
	return nil
}

// SetControls replaces the controls cited by a finding. Each pair must be examined by its test.
func (s *FindingService) SetControls(ctx context.Context, id string, req dto.PairsRequest, meta RequestMeta) ([]models.ProcessControl, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid controls payload")
	}
	finding, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "finding")
	}
	pairs := uniquePairs(req.ToModels())

	examined, err := s.tests.Controls(ctx, finding.AuditTestID)
	if err != nil {
		return nil, writeError(err, "failed to load audit test controls")
	}
	allowed := make(map[pairKey]struct{}, len(examined))
	for _, c := range examined {
		allowed[pairKey{c.ProcessID, c.ControlID}] = struct{}{}
	}
	if bad := outsideScope(pairs, allowed); bad != nil {
		return nil, outOfScopeError(bad, "the audit test controls")
	}

	before, err := s.repo.Controls(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load finding controls")
	}
	if err := s.repo.ReplaceControls(ctx, finding, pairs); err != nil {
		return nil, writeError(err, "failed to update finding controls")
	}
	s.audit.record(ctx, meta, models.AuditActionLink, "audit_finding_controls", id, before, pairs)
	return pairs, nil
}

func applyFinding(finding *models.AuditFinding, req FindingRequest) {
	finding.Title = strings.TrimSpace(req.Title)
	finding.Description = strings.TrimSpace(req.Description)
	finding.Criteria = strings.TrimSpace(req.Criteria)
	finding.Cause = strings.TrimSpace(req.Cause)
	finding.Effect = strings.TrimSpace(req.Effect)
	finding.Recommendation = strings.TrimSpace(req.Recommendation)
	finding.Classification = models.FindingClassification(req.Classification)
	finding.FindingType = models.FindingType(req.FindingType)
	if req.Status != nil {
		finding.Status = *req.Status
	}
}
