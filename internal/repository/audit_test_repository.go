package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

const auditTestColumns = "id, audit_program_id, name, description, procedure, start_date, end_date, status, created_at, updated_at"

var auditTestSorts = sortSpec{
	allowed:  map[string]bool{"name": true, "start_date": true, "status": true, "created_at": true},
	fallback: "created_at",
}

// AuditTestRepository persists audit tests with their participants and controls.
type AuditTestRepository struct {
	db *sqlx.DB
}

// NewAuditTestRepository creates a new instance of AuditTestRepository.
func NewAuditTestRepository(db *sqlx.DB) *AuditTestRepository {
	return &AuditTestRepository{db: db}
}

// List returns audit tests matching the filter with the total count.
func (r *AuditTestRepository) List(ctx context.Context, filter models.AuditTestFilter) ([]models.AuditTest, int, error) {
	where := &whereBuilder{}
	if filter.AuditProgramID != "" {
		where.add("audit_program_id = $%d", filter.AuditProgramID)
	}
	if filter.Status != "" {
		where.add("status = $%d", filter.Status)
	}
	where.search(filter.Search, "name")

	var tests []models.AuditTest
	total, err := listPage(ctx, r.db, &tests, auditTestColumns, "audit_tests", where, filter.ListOptions, auditTestSorts)
	if err != nil {
		return nil, 0, err
	}
	return tests, total, nil
}

// ListByProgram returns every test of a program ordered by name.
func (r *AuditTestRepository) ListByProgram(ctx context.Context, programID string) ([]models.AuditTest, error) {
	query := "SELECT " + auditTestColumns + " FROM audit_tests WHERE audit_program_id = $1 ORDER BY name"
	tests := []models.AuditTest{}
	if err := r.db.SelectContext(ctx, &tests, query, programID); err != nil {
		return nil, fmt.Errorf("list program audit tests: %w", err)
	}
	return tests, nil
}

// FindByID returns an audit test by identifier.
func (r *AuditTestRepository) FindByID(ctx context.Context, id string) (*models.AuditTest, error) {
	query := "SELECT " + auditTestColumns + " FROM audit_tests WHERE id = $1"
	var test models.AuditTest
	if err := r.db.GetContext(ctx, &test, query, id); err != nil {
		return nil, fmt.Errorf("find audit test: %w", err)
	}
	return &test, nil
}

// Create inserts an audit test.
func (r *AuditTestRepository) Create(ctx context.Context, test *models.AuditTest) error {
	if test.ID == "" {
		test.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	test.CreatedAt = now
	test.UpdatedAt = now

	const query = `INSERT INTO audit_tests (id, audit_program_id, name, description, procedure, start_date, end_date, status, created_at, updated_at)
VALUES (:id, :audit_program_id, :name, :description, :procedure, :start_date, :end_date, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, test); err != nil {
		return fmt.Errorf("create audit test: %w", TranslatePQError(err))
	}
	return nil
}

// Update saves mutable test fields. The owning program never changes.
func (r *AuditTestRepository) Update(ctx context.Context, test *models.AuditTest) error {
	test.UpdatedAt = time.Now().UTC()
	const query = `UPDATE audit_tests SET name = :name, description = :description, procedure = :procedure, start_date = :start_date, end_date = :end_date, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, test); err != nil {
		return fmt.Errorf("update audit test: %w", TranslatePQError(err))
	}
	return nil
}

// Delete removes a test; findings and documents referencing it block the delete.
func (r *AuditTestRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM audit_tests WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete audit test: %w", TranslatePQError(err))
	}
	return nil
}

// Participants lists the users assigned to a test.
func (r *AuditTestRepository) Participants(ctx context.Context, testID string) ([]models.AuditTestParticipant, error) {
	const query = `SELECT audit_test_id, audit_program_id, user_id FROM audit_test_participants WHERE audit_test_id = $1 ORDER BY user_id`
	participants := []models.AuditTestParticipant{}
	if err := r.db.SelectContext(ctx, &participants, query, testID); err != nil {
		return nil, fmt.Errorf("list audit test participants: %w", err)
	}
	return participants, nil
}

// ReplaceParticipants swaps the participants of a test.
func (r *AuditTestRepository) ReplaceParticipants(ctx context.Context, test *models.AuditTest, userIDs []string) error {
	rows := make([]models.AuditTestParticipant, len(userIDs))
	for i, id := range userIDs {
		rows[i] = models.AuditTestParticipant{AuditTestID: test.ID, AuditProgramID: test.AuditProgramID, UserID: id}
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return replaceSet(ctx, tx,
			`DELETE FROM audit_test_participants WHERE audit_test_id = $1`, test.ID,
			`INSERT INTO audit_test_participants (audit_test_id, audit_program_id, user_id) VALUES (:audit_test_id, :audit_program_id, :user_id)`, rows)
	})
	if err != nil {
		return fmt.Errorf("replace audit test participants: %w", err)
	}
	return nil
}

// Controls lists the process/control pairs examined by a test.
func (r *AuditTestRepository) Controls(ctx context.Context, testID string) ([]models.AuditTestControl, error) {
	const query = `SELECT audit_test_id, audit_program_id, process_id, control_id FROM audit_test_controls WHERE audit_test_id = $1 ORDER BY process_id, control_id`
	controls := []models.AuditTestControl{}
	if err := r.db.SelectContext(ctx, &controls, query, testID); err != nil {
		return nil, fmt.Errorf("list audit test controls: %w", err)
	}
	return controls, nil
}

// ReplaceControls swaps the pairs examined by a test. Pairs cited by a finding cannot be removed.
func (r *AuditTestRepository) ReplaceControls(ctx context.Context, test *models.AuditTest, pairs []models.ProcessControl) error {
	rows := make([]models.AuditTestControl, len(pairs))
	for i, pair := range pairs {
		rows[i] = models.AuditTestControl{
			AuditTestID:    test.ID,
			AuditProgramID: test.AuditProgramID,
			ProcessID:      pair.ProcessID,
			ControlID:      pair.ControlID,
		}
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return replaceSet(ctx, tx,
			`DELETE FROM audit_test_controls WHERE audit_test_id = $1`, test.ID,
			`INSERT INTO audit_test_controls (audit_test_id, audit_program_id, process_id, control_id) VALUES (:audit_test_id, :audit_program_id, :process_id, :control_id)`, rows)
	})
	if err != nil {
		return fmt.Errorf("replace audit test controls: %w", err)
	}
	return nil
}
