package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

const auditProgramColumns = "id, company_id, name, slug, objective, scope, start_date, end_date, status, created_at, updated_at"

var auditProgramSorts = sortSpec{
	allowed:  map[string]bool{"name": true, "start_date": true, "end_date": true, "status": true, "created_at": true},
	fallback: "start_date",
}

// AuditProgramRepository persists audit programs, their participants and their scope.
type AuditProgramRepository struct {
	db *sqlx.DB
}

// NewAuditProgramRepository creates a new instance of AuditProgramRepository.
func NewAuditProgramRepository(db *sqlx.DB) *AuditProgramRepository {
	return &AuditProgramRepository{db: db}
}

// List returns audit programs matching the filter with the total count.
func (r *AuditProgramRepository) List(ctx context.Context, filter models.AuditProgramFilter) ([]models.AuditProgram, int, error) {
	where := &whereBuilder{}
	if filter.CompanyID != "" {
		where.add("company_id = $%d", filter.CompanyID)
	}
	if filter.Status != "" {
		where.add("status = $%d", filter.Status)
	}
	where.search(filter.Search, "name", "slug")

	var programs []models.AuditProgram
	total, err := listPage(ctx, r.db, &programs, auditProgramColumns, "audit_programs", where, filter.ListOptions, auditProgramSorts)
	if err != nil {
		return nil, 0, err
	}
	return programs, total, nil
}

// FindByID returns an audit program by identifier.
func (r *AuditProgramRepository) FindByID(ctx context.Context, id string) (*models.AuditProgram, error) {
	query := "SELECT " + auditProgramColumns + " FROM audit_programs WHERE id = $1"
	var program models.AuditProgram
	if err := r.db.GetContext(ctx, &program, query, id); err != nil {
		return nil, fmt.Errorf("find audit program: %w", err)
	}
	return &program, nil
}

// ExistsBySlug reports whether another program already uses slug.
func (r *AuditProgramRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugTaken(ctx, r.db, "audit_programs", slug, excludeID)
}

// Create inserts an audit program.
func (r *AuditProgramRepository) Create(ctx context.Context, program *models.AuditProgram) error {
	if program.ID == "" {
		program.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	program.CreatedAt = now
	program.UpdatedAt = now

	const query = `INSERT INTO audit_programs (id, company_id, name, slug, objective, scope, start_date, end_date, status, created_at, updated_at)
VALUES (:id, :company_id, :name, :slug, :objective, :scope, :start_date, :end_date, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, program); err != nil {
		return fmt.Errorf("create audit program: %w", TranslatePQError(err))
	}
	return nil
}

// Update saves mutable program fields.
func (r *AuditProgramRepository) Update(ctx context.Context, program *models.AuditProgram) error {
	program.UpdatedAt = time.Now().UTC()
	const query = `UPDATE audit_programs SET name = :name, slug = :slug, objective = :objective, scope = :scope, start_date = :start_date, end_date = :end_date, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, program); err != nil {
		return fmt.Errorf("update audit program: %w", TranslatePQError(err))
	}
	return nil
}

// Delete removes a program without tests; restrict constraints reject the rest.
func (r *AuditProgramRepository) Delete(ctx context.Context, id string) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM audit_process_controls WHERE audit_program_id = $1`, id); err != nil {
			return TranslatePQError(err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM audit_programs WHERE id = $1`, id); err != nil {
			return TranslatePQError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete audit program: %w", err)
	}
	return nil
}

// Participants lists the users assigned to a program with their hour budgets.
func (r *AuditProgramRepository) Participants(ctx context.Context, programID string) ([]models.AuditParticipant, error) {
	const query = `SELECT audit_program_id, user_id, role, planned_hours FROM audit_participants WHERE audit_program_id = $1 ORDER BY user_id`
	participants := []models.AuditParticipant{}
	if err := r.db.SelectContext(ctx, &participants, query, programID); err != nil {
		return nil, fmt.Errorf("list audit participants: %w", err)
	}
	return participants, nil
}

// ReplaceParticipants swaps the participant set. Users still assigned to a test cannot be removed.
func (r *AuditProgramRepository) ReplaceParticipants(ctx context.Context, programID string, participants []models.AuditParticipant) error {
	for i := range participants {
		participants[i].AuditProgramID = programID
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return replaceSet(ctx, tx,
			`DELETE FROM audit_participants WHERE audit_program_id = $1`, programID,
			`INSERT INTO audit_participants (audit_program_id, user_id, role, planned_hours) VALUES (:audit_program_id, :user_id, :role, :planned_hours)`, participants)
	})
	if err != nil {
		return fmt.Errorf("replace audit participants: %w", err)
	}
	return nil
}

// Scope lists the process/control pairs in a program's scope.
func (r *AuditProgramRepository) Scope(ctx context.Context, programID string) ([]models.AuditProcessControl, error) {
	const query = `SELECT audit_program_id, process_id, control_id FROM audit_process_controls WHERE audit_program_id = $1 ORDER BY process_id, control_id`
	scope := []models.AuditProcessControl{}
	if err := r.db.SelectContext(ctx, &scope, query, programID); err != nil {
		return nil, fmt.Errorf("list audit scope: %w", err)
	}
	return scope, nil
}

// ReplaceScope swaps the program's process/control pairs. Pairs referenced by a test control cannot be removed.
func (r *AuditProgramRepository) ReplaceScope(ctx context.Context, programID string, pairs []models.AuditProcessControl) error {
	for i := range pairs {
		pairs[i].AuditProgramID = programID
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return replaceSet(ctx, tx,
			`DELETE FROM audit_process_controls WHERE audit_program_id = $1`, programID,
			`INSERT INTO audit_process_controls (audit_program_id, process_id, control_id) VALUES (:audit_program_id, :process_id, :control_id)`, pairs)
	})
	if err != nil {
		return fmt.Errorf("replace audit scope: %w", err)
	}
	return nil
}
