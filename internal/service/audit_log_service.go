package service

import (
	"context"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

type auditLogReader interface {
	List(ctx context.Context, filter models.AuditLogFilter) ([]models.AuditLog, int, error)
}

// AuditLogService exposes the audit trail read side.
type AuditLogService struct {
	repo auditLogReader
}

// NewAuditLogService constructs the service.
func NewAuditLogService(repo auditLogReader) *AuditLogService {
	return &AuditLogService{repo: repo}
}

// List returns audit trail entries matching filter, newest first.
func (s *AuditLogService) List(ctx context.Context, filter models.AuditLogFilter) ([]models.AuditLog, *models.Pagination, error) {
	logs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list audit logs")
	}
	return logs, models.NewPagination(filter.ListOptions, total), nil
}
