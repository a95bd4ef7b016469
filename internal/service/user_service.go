package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

type userRepository interface {
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	LoadSubject(ctx context.Context, id string) (*models.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username, excludeID string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
	Disable(ctx context.Context, id string) error
}

type roleFinder interface {
	FindByID(ctx context.Context, id string) (*models.Role, error)
}

// permissionCache drops cached subjects after user or role changes.
type permissionCache interface {
	Forget(ctx context.Context, userID string)
}

// CreateUserRequest captures fields for creating users.
type CreateUserRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid"`
	RoleID    string `json:"role_id" validate:"required,uuid"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Password  string `json:"password" validate:"required,min=8"`
	Position  string `json:"position" validate:"omitempty,max=100"`
}

// UpdateUserRequest modifies user fields. A non-empty Password resets it.
type UpdateUserRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid"`
	RoleID    string `json:"role_id" validate:"required,uuid"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Password  string `json:"password" validate:"omitempty,min=8"`
	Position  string `json:"position" validate:"omitempty,max=100"`
	Status    *bool  `json:"status"`
}

// UserService manages users.
type UserService struct {
	repo        userRepository
	roles       roleFinder
	permissions permissionCache
	audit       auditTrail
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewUserService constructs a UserService.
func NewUserService(repo userRepository, roles roleFinder, permissions permissionCache, audit AuditLogWriter, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		repo:        repo,
		roles:       roles,
		permissions: permissions,
		audit:       newAuditTrail(audit, logger),
		validator:   validate,
		logger:      logger,
	}
}

// List returns paginated users.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.User, *models.Pagination, error) {
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, writeError(err, "failed to list users")
	}
	return users, models.NewPagination(filter.ListOptions, total), nil
}

// Get returns a user with role and permissions.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.LoadSubject(ctx, id)
	if err != nil {
		return nil, loadError(err, "user")
	}
	return user, nil
}

// Create registers a user with a bcrypt-hashed password.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest, meta RequestMeta) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid user payload")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if err := s.ensureUnique(ctx, email, username, ""); err != nil {
		return nil, err
	}
	if err := s.ensureRole(ctx, req.RoleID); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	user := &models.User{
		CompanyID:    req.CompanyID,
		RoleID:       req.RoleID,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Position:     strings.TrimSpace(req.Position),
		Status:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, writeError(err, "failed to create user")
	}
	s.audit.record(ctx, meta, models.AuditActionCreate, "user", user.ID, nil, user)
	return user, nil
}

// Update modifies a user. Role or status changes take effect on the user's next request.
func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest, meta RequestMeta) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid user payload")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "user")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if err := s.ensureUnique(ctx, email, username, id); err != nil {
		return nil, err
	}
	if req.RoleID != user.RoleID {
		if err := s.ensureRole(ctx, req.RoleID); err != nil {
			return nil, err
		}
	}

	before := *user
	user.CompanyID = req.CompanyID
	user.RoleID = req.RoleID
	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.Email = email
	user.Username = username
	user.Position = strings.TrimSpace(req.Position)
	if req.Status != nil {
		user.Status = *req.Status
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, writeError(err, "failed to update user")
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
		if err := s.repo.UpdatePassword(ctx, id, string(hash), user.UpdatedAt); err != nil {
			return nil, writeError(err, "failed to update password")
		}
	}
	s.forget(ctx, id)
	s.audit.record(ctx, meta, models.AuditActionUpdate, "user", id, before, user)
	return user, nil
}

// Delete disables a user. Callers cannot disable themselves.
func (s *UserService) Delete(ctx context.Context, id string, meta RequestMeta) error {
	if id == meta.ActorID {
		return appErrors.Clone(appErrors.ErrConflict, "cannot disable your own account")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, "user")
	}
	if err := s.repo.Disable(ctx, id); err != nil {
		return writeError(err, "failed to disable user")
	}
	s.forget(ctx, id)
	s.audit.record(ctx, meta, models.AuditActionDelete, "user", id, user, nil)
	return nil
}

func (s *UserService) ensureUnique(ctx context.Context, email, username, excludeID string) error {
	exists, err := s.repo.ExistsByEmailOrUsername(ctx, email, username, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check user uniqueness")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "email or username already registered")
	}
	return nil
}

func (s *UserService) ensureRole(ctx context.Context, roleID string) error {
	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return loadError(err, "role")
	}
	if !role.Status {
		return appErrors.Clone(appErrors.ErrValidation, "role is inactive")
	}
	return nil
}

func (s *UserService) forget(ctx context.Context, id string) {
	if s.permissions != nil {
		s.permissions.Forget(ctx, id)
	}
}
