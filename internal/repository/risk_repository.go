package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

const riskColumns = "id, company_id, name, slug, description, probability, impact, status, created_at, updated_at"

var riskSorts = sortSpec{
	allowed:  map[string]bool{"name": true, "slug": true, "probability": true, "impact": true, "created_at": true},
	fallback: "name",
}

// RiskRepository persists risks and the processes they affect.
type RiskRepository struct {
	db *sqlx.DB
}

// NewRiskRepository creates a new instance of RiskRepository.
func NewRiskRepository(db *sqlx.DB) *RiskRepository {
	return &RiskRepository{db: db}
}

// List returns risks matching the filter with the total count.
func (r *RiskRepository) List(ctx context.Context, filter models.RiskFilter) ([]models.Risk, int, error) {
	where := &whereBuilder{}
	if filter.CompanyID != "" {
		where.add("company_id = $%d", filter.CompanyID)
	}
	if filter.ProcessID != "" {
		where.add("id IN (SELECT risk_id FROM affected_processes WHERE process_id = $%d)", filter.ProcessID)
	}
	if filter.Status != nil {
		where.add("status = $%d", *filter.Status)
	}
	where.search(filter.Search, "name", "slug")

	var risks []models.Risk
	total, err := listPage(ctx, r.db, &risks, riskColumns, "risks", where, filter.ListOptions, riskSorts)
	if err != nil {
		return nil, 0, err
	}
	return risks, total, nil
}

// ListActiveByCompany returns every enabled risk of a company; used by the risk matrix and dashboard.
func (r *RiskRepository) ListActiveByCompany(ctx context.Context, companyID string) ([]models.Risk, error) {
	query := "SELECT " + riskColumns + " FROM risks WHERE status = TRUE AND ($1 = '' OR company_id::text = $1) ORDER BY name"
	risks := []models.Risk{}
	if err := r.db.SelectContext(ctx, &risks, query, companyID); err != nil {
		return nil, fmt.Errorf("list company risks: %w", err)
	}
	return risks, nil
}

// FindByID returns a risk by identifier.
func (r *RiskRepository) FindByID(ctx context.Context, id string) (*models.Risk, error) {
	query := "SELECT " + riskColumns + " FROM risks WHERE id = $1"
	var risk models.Risk
	if err := r.db.GetContext(ctx, &risk, query, id); err != nil {
		return nil, fmt.Errorf("find risk: %w", err)
	}
	return &risk, nil
}

// ExistsBySlug reports whether another risk already uses slug.
func (r *RiskRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugTaken(ctx, r.db, "risks", slug, excludeID)
}

// Create inserts a risk.
func (r *RiskRepository) Create(ctx context.Context, risk *models.Risk) error {
	if risk.ID == "" {
		risk.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	risk.CreatedAt = now
	risk.UpdatedAt = now

	const query = `INSERT INTO risks (id, company_id, name, slug, description, probability, impact, status, created_at, updated_at)
VALUES (:id, :company_id, :name, :slug, :description, :probability, :impact, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, risk); err != nil {
		return fmt.Errorf("create risk: %w", TranslatePQError(err))
	}
	return nil
}

// Update saves mutable risk fields.
func (r *RiskRepository) Update(ctx context.Context, risk *models.Risk) error {
	risk.UpdatedAt = time.Now().UTC()
	const query = `UPDATE risks SET name = :name, slug = :slug, description = :description, probability = :probability, impact = :impact, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, risk); err != nil {
		return fmt.Errorf("update risk: %w", TranslatePQError(err))
	}
	return nil
}

// Disable soft-deletes a risk.
func (r *RiskRepository) Disable(ctx context.Context, id string) error {
	const query = `UPDATE risks SET status = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("disable risk: %w", err)
	}
	return nil
}

type riskProcessRow struct {
	RiskID    string `db:"risk_id"`
	ProcessID string `db:"process_id"`
}

// Processes lists the process IDs affected by a risk.
func (r *RiskRepository) Processes(ctx context.Context, riskID string) ([]string, error) {
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, `SELECT process_id FROM affected_processes WHERE risk_id = $1 ORDER BY process_id`, riskID); err != nil {
		return nil, fmt.Errorf("list affected processes: %w", err)
	}
	return ids, nil
}

// ReplaceProcesses swaps the processes affected by a risk.
func (r *RiskRepository) ReplaceProcesses(ctx context.Context, riskID string, processIDs []string) error {
	rows := make([]riskProcessRow, len(processIDs))
	for i, id := range processIDs {
		rows[i] = riskProcessRow{RiskID: riskID, ProcessID: id}
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return replaceSet(ctx, tx,
			`DELETE FROM affected_processes WHERE risk_id = $1`, riskID,
			`INSERT INTO affected_processes (risk_id, process_id) VALUES (:risk_id, :process_id)`, rows)
	})
	if err != nil {
		return fmt.Errorf("replace affected processes: %w", err)
	}
	return nil
}
