package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

const companyColumns = "id, name, slug, rif, address, phone, email, status, created_at, updated_at"

var companySorts = sortSpec{
	allowed:  map[string]bool{"name": true, "slug": true, "rif": true, "created_at": true, "updated_at": true},
	fallback: "created_at",
}

// CompanyRepository persists companies.
type CompanyRepository struct {
	db *sqlx.DB
}

// NewCompanyRepository creates a new instance of CompanyRepository.
func NewCompanyRepository(db *sqlx.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// List returns companies matching the filter with the total count.
func (r *CompanyRepository) List(ctx context.Context, filter models.CompanyFilter) ([]models.Company, int, error) {
	where := &whereBuilder{}
	if filter.Status != nil {
		where.add("status = $%d", *filter.Status)
	}
	where.search(filter.Search, "name", "slug", "rif")

	var companies []models.Company
	total, err := listPage(ctx, r.db, &companies, companyColumns, "companies", where, filter.ListOptions, companySorts)
	if err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

// FindByID returns a company by identifier.
func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*models.Company, error) {
	query := "SELECT " + companyColumns + " FROM companies WHERE id = $1"
	var company models.Company
	if err := r.db.GetContext(ctx, &company, query, id); err != nil {
		return nil, fmt.Errorf("find company: %w", err)
	}
	return &company, nil
}

// ExistsBySlug reports whether another company already uses slug.
func (r *CompanyRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugTaken(ctx, r.db, "companies", slug, excludeID)
}

// Create inserts a company.
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	const query = `INSERT INTO companies (id, name, slug, rif, address, phone, email, status, created_at, updated_at) VALUES (:id, :name, :slug, :rif, :address, :phone, :email, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, company); err != nil {
		return fmt.Errorf("create company: %w", TranslatePQError(err))
	}
	return nil
}

// Update saves mutable company fields.
func (r *CompanyRepository) Update(ctx context.Context, company *models.Company) error {
	company.UpdatedAt = time.Now().UTC()
	const query = `UPDATE companies SET name = :name, slug = :slug, rif = :rif, address = :address, phone = :phone, email = :email, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, company); err != nil {
		return fmt.Errorf("update company: %w", TranslatePQError(err))
	}
	return nil
}

// Disable soft-deletes a company.
func (r *CompanyRepository) Disable(ctx context.Context, id string) error {
	const query = `UPDATE companies SET status = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("disable company: %w", err)
	}
	return nil
}
