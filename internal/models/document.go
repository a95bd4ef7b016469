package models

import "time"

// AuditDocument is evidence uploaded for an audit test.
type AuditDocument struct {
	ID          string    `db:"id" json:"id"`
	AuditTestID string    `db:"audit_test_id" json:"audit_test_id"`
	Name        string    `db:"name" json:"name"`
	StorageKey  string    `db:"storage_key" json:"-"`
	Backend     string    `db:"backend" json:"backend"`
	MimeType    string    `db:"mime_type" json:"mime_type"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	Checksum    string    `db:"checksum" json:"checksum"`
	UploadedBy  string    `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
