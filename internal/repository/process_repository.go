package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

const processColumns = "id, company_id, name, slug, description, objective, status, created_at, updated_at"

var processSorts = sortSpec{
	allowed:  map[string]bool{"name": true, "slug": true, "created_at": true, "updated_at": true},
	fallback: "name",
}

// ProcessRepository persists processes and their responsible users and controls.
type ProcessRepository struct {
	db *sqlx.DB
}

// NewProcessRepository creates a new instance of ProcessRepository.
func NewProcessRepository(db *sqlx.DB) *ProcessRepository {
	return &ProcessRepository{db: db}
}

// List returns processes matching the filter with the total count.
func (r *ProcessRepository) List(ctx context.Context, filter models.ProcessFilter) ([]models.Process, int, error) {
	where := &whereBuilder{}
	if filter.CompanyID != "" {
		where.add("company_id = $%d", filter.CompanyID)
	}
	if filter.Status != nil {
		where.add("status = $%d", *filter.Status)
	}
	where.search(filter.Search, "name", "slug")

	var processes []models.Process
	total, err := listPage(ctx, r.db, &processes, processColumns, "processes", where, filter.ListOptions, processSorts)
	if err != nil {
		return nil, 0, err
	}
	return processes, total, nil
}

// FindByID returns a process by identifier.
func (r *ProcessRepository) FindByID(ctx context.Context, id string) (*models.Process, error) {
	query := "SELECT " + processColumns + " FROM processes WHERE id = $1"
	var process models.Process
	if err := r.db.GetContext(ctx, &process, query, id); err != nil {
		return nil, fmt.Errorf("find process: %w", err)
	}
	return &process, nil
}

// ExistsBySlug reports whether another process already uses slug.
func (r *ProcessRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugTaken(ctx, r.db, "processes", slug, excludeID)
}

// Create inserts a process.
func (r *ProcessRepository) Create(ctx context.Context, process *models.Process) error {
	if process.ID == "" {
		process.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	process.CreatedAt = now
	process.UpdatedAt = now

	const query = `INSERT INTO processes (id, company_id, name, slug, description, objective, status, created_at, updated_at) VALUES (:id, :company_id, :name, :slug, :description, :objective, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, process); err != nil {
		return fmt.Errorf("create process: %w", TranslatePQError(err))
	}
	return nil
}

// Update saves mutable process fields.
func (r *ProcessRepository) Update(ctx context.Context, process *models.Process) error {
	process.UpdatedAt = time.Now().UTC()
	const query = `UPDATE processes SET name = :name, slug = :slug, description = :description, objective = :objective, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, process); err != nil {
		return fmt.Errorf("update process: %w", TranslatePQError(err))
	}
	return nil
}

// Disable soft-deletes a process.
func (r *ProcessRepository) Disable(ctx context.Context, id string) error {
	const query = `UPDATE processes SET status = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("disable process: %w", err)
	}
	return nil
}

type processUserRow struct {
	ProcessID string `db:"process_id"`
	UserID    string `db:"user_id"`
}

// Responsibles lists the user IDs responsible for a process.
func (r *ProcessRepository) Responsibles(ctx context.Context, processID string) ([]string, error) {
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, `SELECT user_id FROM process_responsibles WHERE process_id = $1 ORDER BY user_id`, processID); err != nil {
		return nil, fmt.Errorf("list process responsibles: %w", err)
	}
	return ids, nil
}

// ReplaceResponsibles swaps the responsible users of a process.
func (r *ProcessRepository) ReplaceResponsibles(ctx context.Context, processID string, userIDs []string) error {
	rows := make([]processUserRow, len(userIDs))
	for i, id := range userIDs {
		rows[i] = processUserRow{ProcessID: processID, UserID: id}
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return replaceSet(ctx, tx,
			`DELETE FROM process_responsibles WHERE process_id = $1`, processID,
			`INSERT INTO process_responsibles (process_id, user_id) VALUES (:process_id, :user_id)`, rows)
	})
	if err != nil {
		return fmt.Errorf("replace process responsibles: %w", err)
	}
	return nil
}

// Controls lists the control IDs attached to a process.
func (r *ProcessRepository) Controls(ctx context.Context, processID string) ([]string, error) {
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, `SELECT control_id FROM process_controls WHERE process_id = $1 ORDER BY control_id`, processID); err != nil {
		return nil, fmt.Errorf("list process controls: %w", err)
	}
	return ids, nil
}

// ReplaceControls swaps the controls of a process. Pairs referenced by an audit
// scope cannot be removed and surface as a conflict.
func (r *ProcessRepository) ReplaceControls(ctx context.Context, processID string, controlIDs []string) error {
	rows := make([]models.ProcessControl, len(controlIDs))
	for i, id := range controlIDs {
		rows[i] = models.ProcessControl{ProcessID: processID, ControlID: id}
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return replaceSet(ctx, tx,
			`DELETE FROM process_controls WHERE process_id = $1`, processID,
			`INSERT INTO process_controls (process_id, control_id) VALUES (:process_id, :control_id)`, rows)
	})
	if err != nil {
		return fmt.Errorf("replace process controls: %w", err)
	}
	return nil
}

// PairsForProcesses returns every process/control pair of the given processes.
func (r *ProcessRepository) PairsForProcesses(ctx context.Context, processIDs []string) ([]models.ProcessControl, error) {
	pairs := []models.ProcessControl{}
	if len(processIDs) == 0 {
		return pairs, nil
	}
	const query = `SELECT process_id, control_id FROM process_controls WHERE process_id::text = ANY($1)`
	if err := r.db.SelectContext(ctx, &pairs, query, pq.Array(processIDs)); err != nil {
		return nil, fmt.Errorf("list process control pairs: %w", err)
	}
	return pairs, nil
}
