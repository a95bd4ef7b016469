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

type auditProgramRepository interface {
	List(ctx context.Context, filter models.AuditProgramFilter) ([]models.AuditProgram, int, error)
	FindByID(ctx context.Context, id string) (*models.AuditProgram, error)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, program *models.AuditProgram) error
	Update(ctx context.Context, program *models.AuditProgram) error
	Delete(ctx context.Context, id string) error
	Participants(ctx context.Context, programID string) ([]models.AuditParticipant, error)
	ReplaceParticipants(ctx context.Context, programID string, participants []models.AuditParticipant) error
	Scope(ctx context.Context, programID string) ([]models.AuditProcessControl, error)
	ReplaceScope(ctx context.Context, programID string, pairs []models.AuditProcessControl) error
}

// processPairSource lists the process/control pairs that exist in the catalog.
type processPairSource interface {
	PairsForProcesses(ctx context.Context, processIDs []string) ([]models.ProcessControl, error)
}

// AuditProgramRequest captures fields for creating or updating audit programs.
type AuditProgramRequest struct {
	CompanyID string    `json:"company_id" validate:"required,uuid"`
	Name      string    `json:"name" validate:"required,max=150"`
	Objective string    `json:"objective"`
	Scope     string    `json:"scope"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	Status    string    `json:"status" validate:"omitempty,oneof=Planificación Ejecución Informe Finalizado"`
}

// AuditProgramDetail is a program with participants, scope and total planned hours.
type AuditProgramDetail struct {
	models.AuditProgram
	Participants []models.AuditParticipant    `json:"participants"`
	ScopePairs   []models.AuditProcessControl `json:"scope_pairs"`
	PlannedHours float64                      `json:"planned_hours"`
}

// AuditProgramService handles audit program workflows.
type AuditProgramService struct {
	repo      auditProgramRepository
	pairs     processPairSource
	users     userCounter
	audit     auditTrail
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuditProgramService creates an audit program service.
func NewAuditProgramService(repo auditProgramRepository, pairs processPairSource, users userCounter, audit AuditLogWriter, validate *validator.Validate, logger *zap.Logger) *AuditProgramService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditProgramService{repo: repo, pairs: pairs, users: users, audit: newAuditTrail(audit, logger), validator: validate, logger: logger}
}

// List returns paginated audit programs.
func (s *AuditProgramService) List(ctx context.Context, filter models.AuditProgramFilter) ([]models.AuditProgram, *models.Pagination, error) {
	programs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, writeError(err, "failed to list audit programs")
	}
	return programs, models.NewPagination(filter.ListOptions, total), nil
}

// Get returns a program with participants and scope.
func (s *AuditProgramService) Get(ctx context.Context, id string) (*AuditProgramDetail, error) {
	program, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "audit program")
	}
	participants, err := s.repo.Participants(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load audit participants")
	}
	scope, err := s.repo.Scope(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load audit scope")
	}
	return &AuditProgramDetail{
		AuditProgram: *program,
		Participants: participants,
		ScopePairs:   scope,
		PlannedHours: program.PlannedHours(participants),
	}, nil
}

// Create adds an audit program in Planificación unless a status is given.
func (s *AuditProgramService) Create(ctx context.Context, req AuditProgramRequest, meta RequestMeta) (*models.AuditProgram, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid audit program payload")
	}
	program := &models.AuditProgram{Status: models.AuditProgramPlanning}
	applyAuditProgram(program, req)
	if err := claimSlug(ctx, s.repo.ExistsBySlug, program.Slug, "", "audit program"); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, program); err != nil {
		return nil, writeError(err, "failed to create audit program")
	}
	s.audit.record(ctx, meta, models.AuditActionCreate, "audit", program.ID, nil, program)
	return program, nil
}

// Update modifies an audit program.
func (s *AuditProgramService) Update(ctx context.Context, id string, req AuditProgramRequest, meta RequestMeta) (*models.AuditProgram, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid audit program payload")
	}
	program, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "audit program")
	}
	if program.CompanyID != req.CompanyID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "audit program company cannot change")
	}
	before := *program
	applyAuditProgram(program, req)
	if err := claimSlug(ctx, s.repo.ExistsBySlug, program.Slug, id, "audit program"); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, program); err != nil {
		return nil, writeError(err, "failed to update audit program")
	}
	s.audit.record(ctx, meta, models.AuditActionUpdate, "audit", id, before, program)
	return program, nil
}

// Delete removes a program. Programs with tests are rejected with a conflict.
func (s *AuditProgramService) Delete(ctx context.Context, id string, meta RequestMeta) error {
	program, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, "audit program")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "failed to delete audit program")
	}
	s.audit.record(ctx, meta, models.AuditActionDelete, "audit", id, program, nil)
	return nil
}

// SetParticipants replaces the program participants and their hour budgets.
func (s *AuditProgramService) SetParticipants(ctx context.Context, id string, req dto.ParticipantsRequest, meta RequestMeta) ([]models.AuditParticipant, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid participants payload")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, loadError(err, "audit program")
	}

	seen := make(map[string]struct{}, len(req.Participants))
	participants := make([]models.AuditParticipant, 0, len(req.Participants))
	userIDs := make([]string, 0, len(req.Participants))
	for _, p := range req.Participants {
		if _, dup := seen[p.UserID]; dup {
			return nil, appErrors.Clone(appErrors.ErrValidation, "user "+p.UserID+" is listed more than once")
		}
		seen[p.UserID] = struct{}{}
		userIDs = append(userIDs, p.UserID)
		participants = append(participants, models.AuditParticipant{
			AuditProgramID: id,
			UserID:         p.UserID,
			Role:           strings.TrimSpace(p.Role),
			PlannedHours:   p.PlannedHours,
		})
	}
	if err := requireActiveUsers(ctx, s.users, userIDs); err != nil {
		return nil, err
	}

	before, err := s.repo.Participants(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load audit participants")
	}
	if err := s.repo.ReplaceParticipants(ctx, id, participants); err != nil {
		return nil, writeError(err, "failed to update audit participants")
	}
	s.audit.record(ctx, meta, models.AuditActionLink, "audit_participants", id, before, participants)
	return participants, nil
}

// SetScope replaces the process/control pairs under audit. Every pair must
// exist in the process catalog.
func (s *AuditProgramService) SetScope(ctx context.Context, id string, req dto.PairsRequest, meta RequestMeta) ([]models.AuditProcessControl, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid scope payload")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, loadError(err, "audit program")
	}

	pairs := uniquePairs(req.ToModels())
	processIDs := make([]string, 0, len(pairs))
	for _, p := range pairs {
		processIDs = append(processIDs, p.ProcessID)
	}
	existing, err := s.pairs.PairsForProcesses(ctx, uniqueIDs(processIDs))
	if err != nil {
		return nil, writeError(err, "failed to load process controls")
	}
	if bad := outsideScope(pairs, pairSet(existing)); bad != nil {
		return nil, outOfScopeError(bad, "the process catalog")
	}

	scope := make([]models.AuditProcessControl, len(pairs))
	for i, p := range pairs {
		scope[i] = models.AuditProcessControl{AuditProgramID: id, ProcessID: p.ProcessID, ControlID: p.ControlID}
	}
	before, err := s.repo.Scope(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load audit scope")
	}
	if err := s.repo.ReplaceScope(ctx, id, scope); err != nil {
		return nil, writeError(err, "failed to update audit scope")
	}
	s.audit.record(ctx, meta, models.AuditActionLink, "audit_process_controls", id, before, scope)
	return scope, nil
}

func applyAuditProgram(program *models.AuditProgram, req AuditProgramRequest) {
	program.CompanyID = req.CompanyID
	program.Name = strings.TrimSpace(req.Name)
	program.Slug = slugify(program.Name)
	program.Objective = strings.TrimSpace(req.Objective)
	program.Scope = strings.TrimSpace(req.Scope)
	program.StartDate = req.StartDate.UTC()
	program.EndDate = req.EndDate.UTC()
	if req.Status != "" {
		program.Status = models.AuditProgramStatus(req.Status)
	}
}
