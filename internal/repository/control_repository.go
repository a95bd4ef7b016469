package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

const controlColumns = "id, company_id, name, slug, description, control_type, execution, frequency, status, created_at, updated_at"

var controlSorts = sortSpec{
	allowed:  map[string]bool{"name": true, "slug": true, "control_type": true, "frequency": true, "created_at": true},
	fallback: "name",
}

// ControlRepository persists internal controls and the risks they mitigate.
type ControlRepository struct {
	db *sqlx.DB
}

// NewControlRepository creates a new instance of ControlRepository.
func NewControlRepository(db *sqlx.DB) *ControlRepository {
	return &ControlRepository{db: db}
}

// List returns controls matching the filter with the total count.
func (r *ControlRepository) List(ctx context.Context, filter models.ControlFilter) ([]models.Control, int, error) {
	where := &whereBuilder{}
	if filter.CompanyID != "" {
		where.add("company_id = $%d", filter.CompanyID)
	}
	if filter.ControlType != "" {
		where.add("control_type = $%d", filter.ControlType)
	}
	if filter.Status != nil {
		where.add("status = $%d", *filter.Status)
	}
	where.search(filter.Search, "name", "slug")

	var controls []models.Control
	total, err := listPage(ctx, r.db, &controls, controlColumns, "controls", where, filter.ListOptions, controlSorts)
	if err != nil {
		return nil, 0, err
	}
	return controls, total, nil
}

// FindByID returns a control by identifier.
func (r *ControlRepository) FindByID(ctx context.Context, id string) (*models.Control, error) {
	query := "SELECT " + controlColumns + " FROM controls WHERE id = $1"
	var control models.Control
	if err := r.db.GetContext(ctx, &control, query, id); err != nil {
		return nil, fmt.Errorf("find control: %w", err)
	}
	return &control, nil
}

// ExistsBySlug reports whether another control already uses slug.
func (r *ControlRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugTaken(ctx, r.db, "controls", slug, excludeID)
}

// Create inserts a control.
func (r *ControlRepository) Create(ctx context.Context, control *models.Control) error {
	if control.ID == "" {
		control.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	control.CreatedAt = now
	control.UpdatedAt = now

	const query = `INSERT INTO controls (id, company_id, name, slug, description, control_type, execution, frequency, status, created_at, updated_at)
VALUES (:id, :company_id, :name, :slug, :description, :control_type, :execution, :frequency, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, control); err != nil {
		return fmt.Errorf("create control: %w", TranslatePQError(err))
	}
	return nil
}

// Update saves mutable control fields.
func (r *ControlRepository) Update(ctx context.Context, control *models.Control) error {
	control.UpdatedAt = time.Now().UTC()
	const query = `UPDATE controls SET name = :name, slug = :slug, description = :description, control_type = :control_type, execution = :execution, frequency = :frequency, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, control); err != nil {
		return fmt.Errorf("update control: %w", TranslatePQError(err))
	}
	return nil
}

// Disable soft-deletes a control.
func (r *ControlRepository) Disable(ctx context.Context, id string) error {
	const query = `UPDATE controls SET status = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("disable control: %w", err)
	}
	return nil
}

type controlRiskRow struct {
	ControlID string `db:"control_id"`
	RiskID    string `db:"risk_id"`
}

// Risks lists the risk IDs mitigated by a control.
func (r *ControlRepository) Risks(ctx context.Context, controlID string) ([]string, error) {
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, `SELECT risk_id FROM control_risks WHERE control_id = $1 ORDER BY risk_id`, controlID); err != nil {
		return nil, fmt.Errorf("list control risks: %w", err)
	}
	return ids, nil
}

// ReplaceRisks swaps the risks mitigated by a control.
func (r *ControlRepository) ReplaceRisks(ctx context.Context, controlID string, riskIDs []string) error {
	rows := make([]controlRiskRow, len(riskIDs))
	for i, id := range riskIDs {
		rows[i] = controlRiskRow{ControlID: controlID, RiskID: id}
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return replaceSet(ctx, tx,
			`DELETE FROM control_risks WHERE control_id = $1`, controlID,
			`INSERT INTO control_risks (control_id, risk_id) VALUES (:control_id, :risk_id)`, rows)
	})
	if err != nil {
		return fmt.Errorf("replace control risks: %w", err)
	}
	return nil
}
