package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

const documentColumns = "id, audit_test_id, name, storage_key, backend, mime_type, size_bytes, checksum, uploaded_by, created_at"

// DocumentRepository handles evidence metadata persistence.
type DocumentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository constructs the repository.
func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create stores metadata for an uploaded evidence file.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.AuditDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_documents (id, audit_test_id, name, storage_key, backend, mime_type, size_bytes, checksum, uploaded_by, created_at)
VALUES (:id, :audit_test_id, :name, :storage_key, :backend, :mime_type, :size_bytes, :checksum, :uploaded_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, doc); err != nil {
		return fmt.Errorf("create audit document: %w", TranslatePQError(err))
	}
	return nil
}

// FindByID retrieves one document row.
func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*models.AuditDocument, error) {
	query := "SELECT " + documentColumns + " FROM audit_documents WHERE id = $1"
	var doc models.AuditDocument
	if err := r.db.GetContext(ctx, &doc, query, id); err != nil {
		return nil, fmt.Errorf("find audit document: %w", err)
	}
	return &doc, nil
}

// ListByTest returns the evidence attached to a test, newest first.
func (r *DocumentRepository) ListByTest(ctx context.Context, testID string) ([]models.AuditDocument, error) {
	query := "SELECT " + documentColumns + " FROM audit_documents WHERE audit_test_id = $1 ORDER BY created_at DESC"
	docs := []models.AuditDocument{}
	if err := r.db.SelectContext(ctx, &docs, query, testID); err != nil {
		return nil, fmt.Errorf("list audit documents: %w", err)
	}
	return docs, nil
}

// Delete removes the metadata row.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM audit_documents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete audit document: %w", err)
	}
	return nil
}
