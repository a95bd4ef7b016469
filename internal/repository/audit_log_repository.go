package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

const auditLogColumns = "id, user_id, action, resource, resource_id, old_values, new_values, ip_address, user_agent, created_at"

var auditLogSorts = sortSpec{
	allowed:  map[string]bool{"created_at": true, "action": true, "resource": true},
	fallback: "created_at",
}

// AuditLogRepository stores and lists the mutation trail.
type AuditLogRepository struct {
	db *sqlx.DB
}

// NewAuditLogRepository constructs the repository.
func NewAuditLogRepository(db *sqlx.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create stores an audit log entry. Empty value snapshots are stored as NULL.
func (r *AuditLogRepository) Create(ctx context.Context, log *models.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_logs (id, user_id, action, resource, resource_id, old_values, new_values, ip_address, user_agent, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		log.ID, log.UserID, log.Action, log.Resource, log.ResourceID,
		jsonOrNil([]byte(log.OldValues)), jsonOrNil([]byte(log.NewValues)),
		log.IPAddress, log.UserAgent, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// List returns audit logs matching the filter, newest first by default.
func (r *AuditLogRepository) List(ctx context.Context, filter models.AuditLogFilter) ([]models.AuditLog, int, error) {
	where := &whereBuilder{}
	if filter.Resource != "" {
		where.add("resource = $%d", filter.Resource)
	}
	if filter.ResourceID != "" {
		where.add("resource_id = $%d", filter.ResourceID)
	}
	if filter.UserID != "" {
		where.add("user_id = $%d", filter.UserID)
	}
	if filter.Action != "" {
		where.add("action = $%d", filter.Action)
	}

	var logs []models.AuditLog
	total, err := listPage(ctx, r.db, &logs, auditLogColumns, "audit_logs", where, filter.ListOptions, auditLogSorts)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func jsonOrNil(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
