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

type auditTestRepository interface {
	List(ctx context.Context, filter models.AuditTestFilter) ([]models.AuditTest, int, error)
	FindByID(ctx context.Context, id string) (*models.AuditTest, error)
	Create(ctx context.Context, test *models.AuditTest) error
	Update(ctx context.Context, test *models.AuditTest) error
	Delete(ctx context.Context, id string) error
	Participants(ctx context.Context, testID string) ([]models.AuditTestParticipant, error)
	ReplaceParticipants(ctx context.Context, test *models.AuditTest, userIDs []string) error
	Controls(ctx context.Context, testID string) ([]models.AuditTestControl, error)
	ReplaceControls(ctx context.Context, test *models.AuditTest, pairs []models.ProcessControl) error
}

// programScopeSource exposes the participants and scope of audit programs.
type programScopeSource interface {
	FindByID(ctx context.Context, id string) (*models.AuditProgram, error)
	Participants(ctx context.Context, programID string) ([]models.AuditParticipant, error)
	Scope(ctx context.Context, programID string) ([]models.AuditProcessControl, error)
}

// AuditTestRequest captures fields for creating or updating audit tests.
type AuditTestRequest struct {
	AuditProgramID string     `json:"audit_program_id" validate:"required,uuid"`
	Name           string     `json:"name" validate:"required,max=150"`
	Description    string     `json:"description"`
	Procedure      string     `json:"procedure"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	Status         string     `json:"status" validate:"omitempty,oneof=Pendiente 'En ejecución' Finalizada"`
}

// AuditTestDetail is a test with its participants and examined pairs.
type AuditTestDetail struct {
	models.AuditTest
	ParticipantIDs []string                  `json:"participant_ids"`
	Controls       []models.AuditTestControl `json:"controls"`
}

// AuditTestService handles audit test workflows.
type AuditTestService struct {
	repo      auditTestRepository
	programs  programScopeSource
	audit     auditTrail
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuditTestService creates an audit test service.
func NewAuditTestService(repo auditTestRepository, programs programScopeSource, audit AuditLogWriter, validate *validator.Validate, logger *zap.Logger) *AuditTestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditTestService{repo: repo, programs: programs, audit: newAuditTrail(audit, logger), validator: validate, logger: logger}
}

// List returns paginated audit tests.
func (s *AuditTestService) List(ctx context.Context, filter models.AuditTestFilter) ([]models.AuditTest, *models.Pagination, error) {
	tests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, writeError(err, "failed to list audit tests")
	}
	return tests, models.NewPagination(filter.ListOptions, total), nil
}

// Get returns a test with participants and controls.
func (s *AuditTestService) Get(ctx context.Context, id string) (*AuditTestDetail, error) {
	test, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "audit test")
	}
	participants, err := s.repo.Participants(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load audit test participants")
	}
	controls, err := s.repo.Controls(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load audit test controls")
	}
	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = p.UserID
	}
	return &AuditTestDetail{AuditTest: *test, ParticipantIDs: ids, Controls: controls}, nil
}

// Create adds a test to an existing program.
func (s *AuditTestService) Create(ctx context.Context, req AuditTestRequest, meta RequestMeta) (*models.AuditTest, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if _, err := s.programs.FindByID(ctx, req.AuditProgramID); err != nil {
		return nil, loadError(err, "audit program")
	}
	test := &models.AuditTest{AuditProgramID: req.AuditProgramID, Status: models.AuditTestPending}
	applyAuditTest(test, req)
	if err := s.repo.Create(ctx, test); err != nil {
		return nil, writeError(err, "failed to create audit test")
	}
	s.audit.record(ctx, meta, models.AuditActionCreate, "audit_test", test.ID, nil, test)
	return test, nil
}

// Update modifies a test. A test cannot move to another program.
func (s *AuditTestService) Update(ctx context.Context, id string, req AuditTestRequest, meta RequestMeta) (*models.AuditTest, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	test, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "audit test")
	}
	if test.AuditProgramID != req.AuditProgramID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "audit test cannot move to another audit program")
	}
	before := *test
	applyAuditTest(test, req)
	if err := s.repo.Update(ctx, test); err != nil {
		return nil, writeError(err, "failed to update audit test")
	}
	s.audit.record(ctx, meta, models.AuditActionUpdate, "audit_test", id, before, test)
	return test, nil
}

// Delete removes a test. Tests with findings or documents are rejected with a conflict.
func (s *AuditTestService) Delete(ctx context.Context, id string, meta RequestMeta) error {
	test, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, "audit test")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "failed to delete audit test")
	}
	s.audit.record(ctx, meta, models.AuditActionDelete, "audit_test", id, test, nil)
	return nil
}

// SetParticipants replaces the test participants. Each must participate in the program.
func (s *AuditTestService) SetParticipants(ctx context.Context, id string, req dto.IDsRequest, meta RequestMeta) ([]string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid participants payload")
	}
	test, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "audit test")
	}
	ids := uniqueIDs(req.IDs)

	members, err := s.programs.Participants(ctx, test.AuditProgramID)
	if err != nil {
		return nil, writeError(err, "failed to load audit participants")
	}
	allowed := make(map[string]struct{}, len(members))
	for _, m := range members {
		allowed[m.UserID] = struct{}{}
	}
	for _, userID := range ids {
		if _, ok := allowed[userID]; !ok {
			return nil, appErrors.Clone(appErrors.ErrOutOfScope, "user "+userID+" is not a participant of the audit program")
		}
	}

	before, err := s.repo.Participants(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load audit test participants")
	}
	if err := s.repo.ReplaceParticipants(ctx, test, ids); err != nil {
		return nil, writeError(err, "failed to update audit test participants")
	}
	s.audit.record(ctx, meta, models.AuditActionLink, "audit_test_participants", id, before, ids)
	return ids, nil
}

// SetControls replaces the pairs examined by the test. Each must be in the program scope.
func (s *AuditTestService) SetControls(ctx context.Context, id string, req dto.PairsRequest, meta RequestMeta) ([]models.ProcessControl, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid controls payload")
	}
	test, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "audit test")
	}
	pairs := uniquePairs(req.ToModels())

	scope, err := s.programs.Scope(ctx, test.AuditProgramID)
	if err != nil {
		return nil, writeError(err, "failed to load audit scope")
	}
	allowed := make(map[pairKey]struct{}, len(scope))
	for _, p := range scope {
		allowed[pairKey{p.ProcessID, p.ControlID}] = struct{}{}
	}
	if bad := outsideScope(pairs, allowed); bad != nil {
		return nil, outOfScopeError(bad, "the audit program scope")
	}

	before, err := s.repo.Controls(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load audit test controls")
	}
	if err := s.repo.ReplaceControls(ctx, test, pairs); err != nil {
		return nil, writeError(err, "failed to update audit test controls")
	}
	s.audit.record(ctx, meta, models.AuditActionLink, "audit_test_controls", id, before, pairs)
	return pairs, nil
}

func (s *AuditTestService) validate(req AuditTestRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, "invalid audit test payload")
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return appErrors.Clone(appErrors.ErrValidation, "end_date must not be before start_date")
	}
	return nil
}

func applyAuditTest(test *models.AuditTest, req AuditTestRequest) {
	test.Name = strings.TrimSpace(req.Name)
	test.Description = strings.TrimSpace(req.Description)
	test.Procedure = strings.TrimSpace(req.Procedure)
	test.StartDate = req.StartDate
	test.EndDate = req.EndDate
	if req.Status != "" {
		test.Status = models.AuditTestStatus(req.Status)
	}
}
