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

const (
	roleColumns       = "id, name, slug, description, status, created_at, updated_at"
	permissionColumns = "id, key, name, resource, description, status, created_at, updated_at"
)

var roleSorts = sortSpec{
	allowed:  map[string]bool{"name": true, "slug": true, "created_at": true, "updated_at": true},
	fallback: "name",
}

var permissionSorts = sortSpec{
	allowed:  map[string]bool{"key": true, "name": true, "resource": true, "created_at": true},
	fallback: "key",
}

// RoleRepository persists roles, permissions and their assignment.
type RoleRepository struct {
	db *sqlx.DB
}

// NewRoleRepository creates a new instance of RoleRepository.
func NewRoleRepository(db *sqlx.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// List returns roles matching the filter with the total count.
func (r *RoleRepository) List(ctx context.Context, filter models.RoleFilter) ([]models.Role, int, error) {
	where := &whereBuilder{}
	if filter.Status != nil {
		where.add("status = $%d", *filter.Status)
	}
	where.search(filter.Search, "name", "slug")

	var roles []models.Role
	total, err := listPage(ctx, r.db, &roles, roleColumns, "roles", where, filter.ListOptions, roleSorts)
	if err != nil {
		return nil, 0, err
	}
	return roles, total, nil
}

// FindByID returns a role with every assigned permission, enabled or not.
func (r *RoleRepository) FindByID(ctx context.Context, id string) (*models.Role, error) {
	query := "SELECT " + roleColumns + " FROM roles WHERE id = $1"
	var role models.Role
	if err := r.db.GetContext(ctx, &role, query, id); err != nil {
		return nil, fmt.Errorf("find role: %w", err)
	}
	perms, err := r.PermissionsForRole(ctx, id)
	if err != nil {
		return nil, err
	}
	role.Permissions = perms
	return &role, nil
}

// FindBySlug returns a role by slug without permissions.
func (r *RoleRepository) FindBySlug(ctx context.Context, slug string) (*models.Role, error) {
	query := "SELECT " + roleColumns + " FROM roles WHERE slug = $1"
	var role models.Role
	if err := r.db.GetContext(ctx, &role, query, slug); err != nil {
		return nil, fmt.Errorf("find role by slug: %w", err)
	}
	return &role, nil
}

// ExistsBySlug reports whether another role already uses slug.
func (r *RoleRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugTaken(ctx, r.db, "roles", slug, excludeID)
}

// PermissionsForRole lists the permissions assigned to a role ordered by key.
func (r *RoleRepository) PermissionsForRole(ctx context.Context, roleID string) ([]models.Permission, error) {
	const query = `SELECT p.id, p.key, p.name, p.resource, p.description, p.status, p.created_at, p.updated_at
FROM permissions p JOIN role_permissions rp ON rp.permission_id = p.id
WHERE rp.role_id = $1 ORDER BY p.key`
	perms := []models.Permission{}
	if err := r.db.SelectContext(ctx, &perms, query, roleID); err != nil {
		return nil, fmt.Errorf("list role permissions: %w", err)
	}
	return perms, nil
}

// Create inserts a role.
func (r *RoleRepository) Create(ctx context.Context, role *models.Role) error {
	if role.ID == "" {
		role.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	role.CreatedAt = now
	role.UpdatedAt = now

	const query = `INSERT INTO roles (id, name, slug, description, status, created_at, updated_at) VALUES (:id, :name, :slug, :description, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, role); err != nil {
		return fmt.Errorf("create role: %w", TranslatePQError(err))
	}
	return nil
}

// Update saves mutable role fields.
func (r *RoleRepository) Update(ctx context.Context, role *models.Role) error {
	role.UpdatedAt = time.Now().UTC()
	const query = `UPDATE roles SET name = :name, slug = :slug, description = :description, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, role); err != nil {
		return fmt.Errorf("update role: %w", TranslatePQError(err))
	}
	return nil
}

// Disable soft-deletes a role.
func (r *RoleRepository) Disable(ctx context.Context, id string) error {
	const query = `UPDATE roles SET status = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("disable role: %w", err)
	}
	return nil
}

type rolePermissionRow struct {
	RoleID       string `db:"role_id"`
	PermissionID string `db:"permission_id"`
}

// ReplacePermissions swaps the full permission set of a role in one transaction.
func (r *RoleRepository) ReplacePermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	rows := make([]rolePermissionRow, len(permissionIDs))
	for i, id := range permissionIDs {
		rows[i] = rolePermissionRow{RoleID: roleID, PermissionID: id}
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return replaceSet(ctx, tx,
			`DELETE FROM role_permissions WHERE role_id = $1`, roleID,
			`INSERT INTO role_permissions (role_id, permission_id) VALUES (:role_id, :permission_id)`, rows)
	})
	if err != nil {
		return fmt.Errorf("replace role permissions: %w", err)
	}
	return nil
}

// ListPermissions returns permissions matching the filter with the total count.
func (r *RoleRepository) ListPermissions(ctx context.Context, filter models.PermissionFilter) ([]models.Permission, int, error) {
	where := &whereBuilder{}
	if filter.Resource != "" {
		where.add("resource = $%d", filter.Resource)
	}
	if filter.Status != nil {
		where.add("status = $%d", *filter.Status)
	}
	where.search(filter.Search, "key", "name")

	var perms []models.Permission
	total, err := listPage(ctx, r.db, &perms, permissionColumns, "permissions", where, filter.ListOptions, permissionSorts)
	if err != nil {
		return nil, 0, err
	}
	return perms, total, nil
}

// FindPermissionByID returns a single permission.
func (r *RoleRepository) FindPermissionByID(ctx context.Context, id string) (*models.Permission, error) {
	query := "SELECT " + permissionColumns + " FROM permissions WHERE id = $1"
	var perm models.Permission
	if err := r.db.GetContext(ctx, &perm, query, id); err != nil {
		return nil, fmt.Errorf("find permission: %w", err)
	}
	return &perm, nil
}

// CountPermissions counts how many of ids exist.
func (r *RoleRepository) CountPermissions(ctx context.Context, ids []string) (int, error) {
	const query = `SELECT COUNT(*) FROM permissions WHERE id::text = ANY($1)`
	var count int
	if err := r.db.GetContext(ctx, &count, query, pq.Array(ids)); err != nil {
		return 0, fmt.Errorf("count permissions: %w", err)
	}
	return count, nil
}

// SetPermissionStatus enables or disables a permission for every role holding it.
func (r *RoleRepository) SetPermissionStatus(ctx context.Context, id string, status bool) error {
	const query = `UPDATE permissions SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("set permission status: %w", err)
	}
	return nil
}

// UpsertPermission inserts a permission keyed by Key, leaving existing rows untouched.
func (r *RoleRepository) UpsertPermission(ctx context.Context, perm *models.Permission) error {
	if perm.ID == "" {
		perm.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	perm.CreatedAt = now
	perm.UpdatedAt = now
	const query = `INSERT INTO permissions (id, key, name, resource, description, status, created_at, updated_at)
VALUES (:id, :key, :name, :resource, :description, :status, :created_at, :updated_at)
ON CONFLICT (key) DO NOTHING`
	if _, err := r.db.NamedExecContext(ctx, query, perm); err != nil {
		return fmt.Errorf("upsert permission: %w", err)
	}
	return nil
}

// PermissionIDsByKeys resolves permission keys to identifiers.
func (r *RoleRepository) PermissionIDsByKeys(ctx context.Context, keys []string) ([]string, error) {
	const query = `SELECT id FROM permissions WHERE key = ANY($1) ORDER BY key`
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, query, pq.Array(keys)); err != nil {
		return nil, fmt.Errorf("resolve permission keys: %w", err)
	}
	return ids, nil
}
