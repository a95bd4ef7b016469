package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

type companyRepository interface {
	List(ctx context.Context, filter models.CompanyFilter) ([]models.Company, int, error)
	FindByID(ctx context.Context, id string) (*models.Company, error)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, company *models.Company) error
	Update(ctx context.Context, company *models.Company) error
	Disable(ctx context.Context, id string) error
}

// CompanyRequest captures fields for creating or updating companies.
type CompanyRequest struct {
	Name    string `json:"name" validate:"required,max=150"`
	RIF     string `json:"rif" validate:"required,max=20"`
	Address string `json:"address" validate:"omitempty,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
	Status  *bool  `json:"status"`
}

// CompanyService handles company workflows.
type CompanyService struct {
	repo      companyRepository
	audit     auditTrail
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCompanyService creates a company service.
func NewCompanyService(repo companyRepository, audit AuditLogWriter, validate *validator.Validate, logger *zap.Logger) *CompanyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompanyService{repo: repo, audit: newAuditTrail(audit, logger), validator: validate, logger: logger}
}

// List returns paginated companies.
func (s *CompanyService) List(ctx context.Context, filter models.CompanyFilter) ([]models.Company, *models.Pagination, error) {
	companies, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, writeError(err, "failed to list companies")
	}
	return companies, models.NewPagination(filter.ListOptions, total), nil
}

// Get returns a company by identifier.
func (s *CompanyService) Get(ctx context.Context, id string) (*models.Company, error) {
	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "company")
	}
	return company, nil
}

// Create adds a company; its slug is derived from the name and must be unique.
func (s *CompanyService) Create(ctx context.Context, req CompanyRequest, meta RequestMeta) (*models.Company, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid company payload")
	}
	company := &models.Company{Status: true}
	s.apply(company, req)
	if err := claimSlug(ctx, s.repo.ExistsBySlug, company.Slug, "", "company"); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, writeError(err, "failed to create company")
	}
	s.audit.record(ctx, meta, models.AuditActionCreate, "company", company.ID, nil, company)
	return company, nil
}

// Update modifies an existing company.
func (s *CompanyService) Update(ctx context.Context, id string, req CompanyRequest, meta RequestMeta) (*models.Company, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid company payload")
	}
	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "company")
	}
	before := *company
	s.apply(company, req)
	if err := claimSlug(ctx, s.repo.ExistsBySlug, company.Slug, id, "company"); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, company); err != nil {
		return nil, writeError(err, "failed to update company")
	}
	s.audit.record(ctx, meta, models.AuditActionUpdate, "company", id, before, company)
	return company, nil
}

// Delete disables a company.
func (s *CompanyService) Delete(ctx context.Context, id string, meta RequestMeta) error {
	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, "company")
	}
	if err := s.repo.Disable(ctx, id); err != nil {
		return writeError(err, "failed to disable company")
	}
	s.audit.record(ctx, meta, models.AuditActionDelete, "company", id, company, nil)
	return nil
}

func (s *CompanyService) apply(company *models.Company, req CompanyRequest) {
	company.Name = strings.TrimSpace(req.Name)
	company.Slug = slugify(company.Name)
	company.RIF = strings.ToUpper(strings.TrimSpace(req.RIF))
	company.Address = strings.TrimSpace(req.Address)
	company.Phone = strings.TrimSpace(req.Phone)
	company.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Status != nil {
		company.Status = *req.Status
	}
}
