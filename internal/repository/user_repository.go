package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

const userColumns = "id, company_id, role_id, first_name, last_name, email, username, password_hash, position, status, last_login_at, created_at, updated_at"

var userSorts = sortSpec{
	allowed: map[string]bool{
		"email":      true,
		"username":   true,
		"first_name": true,
		"last_name":  true,
		"created_at": true,
		"updated_at": true,
	},
	fallback: "created_at",
}

// UserRepository provides database access for user management.
type UserRepository struct {
	db    *sqlx.DB
	roles *RoleRepository
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db, roles: NewRoleRepository(db)}
}

// FindByIdentifier returns a user whose email or username matches identifier case-insensitively.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE LOWER(email) = $1 OR LOWER(username) = $1 LIMIT 1"
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, strings.ToLower(strings.TrimSpace(identifier))); err != nil {
		return nil, fmt.Errorf("find user by identifier: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = $1 LIMIT 1"
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// LoadSubject returns the user aggregate used for permission resolution:
// the user, its role and every permission assigned to that role.
func (r *UserRepository) LoadSubject(ctx context.Context, id string) (*models.User, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	role, err := r.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		return nil, fmt.Errorf("load subject role: %w", err)
	}
	user.Role = role
	return user, nil
}

// ExistsByEmailOrUsername reports whether another user holds email or username.
func (r *UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username, excludeID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM users WHERE (LOWER(email) = LOWER($1) OR LOWER(username) = LOWER($2)) AND ($3 = '' OR id::text <> $3))`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email, username, excludeID); err != nil {
		return false, fmt.Errorf("check user uniqueness: %w", err)
	}
	return exists, nil
}

// UpdateLastLogin updates the last_login_at timestamp for a user.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE users SET last_login_at = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, ts, ts); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// UpdatePassword updates the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	const query = `UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, passwordHash, updatedAt); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// List returns users based on filters with total count.
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	where := &whereBuilder{}
	if filter.CompanyID != "" {
		where.add("company_id = $%d", filter.CompanyID)
	}
	if filter.RoleID != "" {
		where.add("role_id = $%d", filter.RoleID)
	}
	if filter.Status != nil {
		where.add("status = $%d", *filter.Status)
	}
	where.search(filter.Search, "email", "username", "first_name", "last_name")

	var users []models.User
	total, err := listPage(ctx, r.db, &users, userColumns, "users", where, filter.ListOptions, userSorts)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	const query = `INSERT INTO users (id, company_id, role_id, first_name, last_name, email, username, password_hash, position, status, created_at, updated_at)
VALUES (:id, :company_id, :role_id, :first_name, :last_name, :email, :username, :password_hash, :position, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", TranslatePQError(err))
	}
	return nil
}

// Update updates mutable fields of a user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	const query = `UPDATE users SET company_id = :company_id, role_id = :role_id, first_name = :first_name, last_name = :last_name, email = :email, username = :username, position = :position, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("update user: %w", TranslatePQError(err))
	}
	return nil
}

// Disable performs a soft delete by marking the user inactive.
func (r *UserRepository) Disable(ctx context.Context, id string) error {
	const query = `UPDATE users SET status = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("disable user: %w", err)
	}
	return nil
}

// CountActiveByIDs counts how many of ids belong to active users.
func (r *UserRepository) CountActiveByIDs(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(`SELECT COUNT(*) FROM users WHERE status = TRUE AND id::text IN (?)`, ids)
	if err != nil {
		return 0, fmt.Errorf("build user count: %w", err)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}
