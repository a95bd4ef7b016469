package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

const findingColumns = "id, audit_test_id, audit_program_id, title, description, criteria, cause, effect, recommendation, classification, finding_type, status, created_at, updated_at"

var findingSorts = sortSpec{
	allowed:  map[string]bool{"title": true, "classification": true, "finding_type": true, "created_at": true},
	fallback: "created_at",
}

// FindingRepository persists audit findings and the controls they cite.
type FindingRepository struct {
	db *sqlx.DB
}

// NewFindingRepository creates a new instance of FindingRepository.
func NewFindingRepository(db *sqlx.DB) *FindingRepository {
	return &FindingRepository{db: db}
}

// List returns findings matching the filter with the total count.
func (r *FindingRepository) List(ctx context.Context, filter models.FindingFilter) ([]models.AuditFinding, int, error) {
	where := &whereBuilder{}
	if filter.AuditProgramID != "" {
		where.add("audit_program_id = $%d", filter.AuditProgramID)
	}
	if filter.AuditTestID != "" {
		where.add("audit_test_id = $%d", filter.AuditTestID)
	}
	if filter.Classification != "" {
		where.add("classification = $%d", filter.Classification)
	}
	if filter.FindingType != "" {
		where.add("finding_type = $%d", filter.FindingType)
	}
	if filter.Status != nil {
		where.add("status = $%d", *filter.Status)
	}
	where.search(filter.Search, "title", "description")

	var findings []models.AuditFinding
	total, err := listPage(ctx, r.db, &findings, findingColumns, "audit_findings", where, filter.ListOptions, findingSorts)
	if err != nil {
		return nil, 0, err
	}
	return findings, total, nil
}

// ListByProgram returns every active finding of a program ordered for reporting.
func (r *FindingRepository) ListByProgram(ctx context.Context, programID string) ([]models.AuditFinding, error) {
	query := "SELECT " + findingColumns + " FROM audit_findings WHERE audit_program_id = $1 AND status = TRUE ORDER BY created_at"
	findings := []models.AuditFinding{}
	if err := r.db.SelectContext(ctx, &findings, query, programID); err != nil {
		return nil, fmt.Errorf("list program findings: %w", err)
	}
	return findings, nil
}

// FindByID returns a finding by identifier.
func (r *FindingRepository) FindByID(ctx context.Context, id string) (*models.AuditFinding, error) {
	query := "SELECT " + findingColumns + " FROM audit_findings WHERE id = $1"
	var finding models.AuditFinding
	if err := r.db.GetContext(ctx, &finding, query, id); err != nil {
		return nil, fmt.Errorf("find audit finding: %w", err)
	}
	return &finding, nil
}

// Create inserts a finding.
func (r *FindingRepository) Create(ctx context.Context, finding *models.AuditFinding) error {
	if finding.ID == "" {
		finding.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	finding.CreatedAt = now
	finding.UpdatedAt = now

	const query = `INSERT INTO audit_findings (id, audit_test_id, audit_program_id, title, description, criteria, cause, effect, recommendation, classification, finding_type, status, created_at, updated_at)
VALUES (:id, :audit_test_id, :audit_program_id, :title, :description, :criteria, :cause, :effect, :recommendation, :classification, :finding_type, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, finding); err != nil {
		return fmt.Errorf("create audit finding: %w", TranslatePQError(err))
	}
	return nil
}

// Update saves mutable finding fields. The owning test never changes.
func (r *FindingRepository) Update(ctx context.Context, finding *models.AuditFinding) error {
	finding.UpdatedAt = time.Now().UTC()
	const query = `UPDATE audit_findings SET title = :title, description = :description, criteria = :criteria, cause = :cause, effect = :effect, recommendation = :recommendation, classification = :classification, finding_type = :finding_type, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, finding); err != nil {
		return fmt.Errorf("update audit finding: %w", TranslatePQError(err))
	}
	return nil
}

// Disable soft-deletes a finding.
func (r *FindingRepository) Disable(ctx context.Context, id string) error {
	const query = `UPDATE audit_findings SET status = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("disable audit finding: %w", err)
	}
	return nil
}

// Controls lists the pairs cited by a finding.
func (r *FindingRepository) Controls(ctx context.Context, findingID string) ([]models.AuditFindingControl, error) {
	const query = `SELECT audit_finding_id, audit_test_id, audit_program_id, process_id, control_id FROM audit_finding_controls WHERE audit_finding_id = $1 ORDER BY process_id, control_id`
	controls := []models.AuditFindingControl{}
	if err := r.db.SelectContext(ctx, &controls, query, findingID); err != nil {
		return nil, fmt.Errorf("list finding controls: %w", err)
	}
	return controls, nil
}

// ReplaceControls swaps the pairs cited by a finding.
func (r *FindingRepository) ReplaceControls(ctx context.Context, finding *models.AuditFinding, pairs []models.ProcessControl) error {
	rows := make([]models.AuditFindingControl, len(pairs))
	for i, pair := range pairs {
		rows[i] = models.AuditFindingControl{
			AuditFindingID: finding.ID,
			AuditTestID:    finding.AuditTestID,
			AuditProgramID: finding.AuditProgramID,
			ProcessID:      pair.ProcessID,
			ControlID:      pair.ControlID,
		}
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return replaceSet(ctx, tx,
			`DELETE FROM audit_finding_controls WHERE audit_finding_id = $1`, finding.ID,
			`INSERT INTO audit_finding_controls (audit_finding_id, audit_test_id, audit_program_id, process_id, control_id) VALUES (:audit_finding_id, :audit_test_id, :audit_program_id, :process_id, :control_id)`, rows)
	})
	if err != nil {
		return fmt.Errorf("replace finding controls: %w", err)
	}
	return nil
}
