package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/audit-mgmt-api/internal/dto"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

type roleRepository interface {
	List(ctx context.Context, filter models.RoleFilter) ([]models.Role, int, error)
	FindByID(ctx context.Context, id string) (*models.Role, error)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, role *models.Role) error
	Update(ctx context.Context, role *models.Role) error
	Disable(ctx context.Context, id string) error
	ReplacePermissions(ctx context.Context, roleID string, permissionIDs []string) error
	ListPermissions(ctx context.Context, filter models.PermissionFilter) ([]models.Permission, int, error)
	FindPermissionByID(ctx context.Context, id string) (*models.Permission, error)
	CountPermissions(ctx context.Context, ids []string) (int, error)
	SetPermissionStatus(ctx context.Context, id string, status bool) error
}

// RoleRequest captures fields for creating or updating roles.
type RoleRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=255"`
	Status      *bool  `json:"status"`
}

// PermissionStatusRequest toggles a permission for every role holding it.
type PermissionStatusRequest struct {
	Status *bool `json:"status" validate:"required"`
}

// RoleService manages roles and the permission catalog. Every change drops
// the cached permission sets so it applies on the next request.
type RoleService struct {
	repo        roleRepository
	permissions permissionCache
	audit       auditTrail
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewRoleService constructs a RoleService.
func NewRoleService(repo roleRepository, permissions permissionCache, audit AuditLogWriter, validate *validator.Validate, logger *zap.Logger) *RoleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleService{repo: repo, permissions: permissions, audit: newAuditTrail(audit, logger), validator: validate, logger: logger}
}

// List returns paginated roles.
func (s *RoleService) List(ctx context.Context, filter models.RoleFilter) ([]models.Role, *models.Pagination, error) {
	roles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, writeError(err, "failed to list roles")
	}
	return roles, models.NewPagination(filter.ListOptions, total), nil
}

// Get returns a role with its permissions.
func (s *RoleService) Get(ctx context.Context, id string) (*models.Role, error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "role")
	}
	return role, nil
}

// Create adds a role without permissions.
func (s *RoleService) Create(ctx context.Context, req RoleRequest, meta RequestMeta) (*models.Role, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid role payload")
	}
	role := &models.Role{Status: true}
	applyRole(role, req)
	if err := claimSlug(ctx, s.repo.ExistsBySlug, role.Slug, "", "role"); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, role); err != nil {
		return nil, writeError(err, "failed to create role")
	}
	s.audit.record(ctx, meta, models.AuditActionCreate, "role", role.ID, nil, role)
	return role, nil
}

// Update modifies a role.
func (s *RoleService) Update(ctx context.Context, id string, req RoleRequest, meta RequestMeta) (*models.Role, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid role payload")
	}
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "role")
	}
	before := *role
	applyRole(role, req)
	if err := claimSlug(ctx, s.repo.ExistsBySlug, role.Slug, id, "role"); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, role); err != nil {
		return nil, writeError(err, "failed to update role")
	}
	s.forgetAll(ctx)
	s.audit.record(ctx, meta, models.AuditActionUpdate, "role", id, before, role)
	return role, nil
}

// Delete disables a role; its users lose every permission.
func (s *RoleService) Delete(ctx context.Context, id string, meta RequestMeta) error {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, "role")
	}
	if err := s.repo.Disable(ctx, id); err != nil {
		return writeError(err, "failed to disable role")
	}
	s.forgetAll(ctx)
	s.audit.record(ctx, meta, models.AuditActionDelete, "role", id, role, nil)
	return nil
}

// SetPermissions replaces the permissions of a role. Unknown ids are rejected.
func (s *RoleService) SetPermissions(ctx context.Context, id string, req dto.IDsRequest, meta RequestMeta) (*models.Role, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid permissions payload")
	}
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "role")
	}
	ids := uniqueIDs(req.IDs)
	if len(ids) > 0 {
		count, err := s.repo.CountPermissions(ctx, ids)
		if err != nil {
			return nil, writeError(err, "failed to verify permissions")
		}
		if count != len(ids) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "one or more permissions do not exist")
		}
	}
	if err := s.repo.ReplacePermissions(ctx, id, ids); err != nil {
		return nil, writeError(err, "failed to update role permissions")
	}
	s.forgetAll(ctx)

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "role")
	}
	s.audit.record(ctx, meta, models.AuditActionLink, "role_permissions", id, permissionKeys(role.Permissions), permissionKeys(updated.Permissions))
	return updated, nil
}

// ListPermissions returns the paginated permission catalog.
func (s *RoleService) ListPermissions(ctx context.Context, filter models.PermissionFilter) ([]models.Permission, *models.Pagination, error) {
	permissions, total, err := s.repo.ListPermissions(ctx, filter)
	if err != nil {
		return nil, nil, writeError(err, "failed to list permissions")
	}
	return permissions, models.NewPagination(filter.ListOptions, total), nil
}

// SetPermissionStatus enables or disables a permission globally.
func (s *RoleService) SetPermissionStatus(ctx context.Context, id string, req PermissionStatusRequest, meta RequestMeta) (*models.Permission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid permission status payload")
	}
	permission, err := s.repo.FindPermissionByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "permission")
	}
	before := *permission
	if err := s.repo.SetPermissionStatus(ctx, id, *req.Status); err != nil {
		return nil, writeError(err, "failed to update permission")
	}
	permission.Status = *req.Status
	s.forgetAll(ctx)
	s.audit.record(ctx, meta, models.AuditActionUpdate, "permission", id, before, permission)
	return permission, nil
}

func (s *RoleService) forgetAll(ctx context.Context) {
	if s.permissions != nil {
		s.permissions.Forget(ctx, "")
	}
}

func applyRole(role *models.Role, req RoleRequest) {
	role.Name = strings.TrimSpace(req.Name)
	role.Slug = slugify(role.Name)
	role.Description = strings.TrimSpace(req.Description)
	if req.Status != nil {
		role.Status = *req.Status
	}
}

func permissionKeys(permissions []models.Permission) []string {
	keys := make([]string, len(permissions))
	for i, p := range permissions {
		keys[i] = p.Key
	}
	return keys
}
