package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/audit-mgmt-api/internal/access"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

type subjectRepository interface {
	LoadSubject(ctx context.Context, id string) (*models.User, error)
}

// PermissionService loads the user aggregate the resolver works on and caches it per user.
type PermissionService struct {
	repo   subjectRepository
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
}

// NewPermissionService builds the subject loader. A nil cache disables caching.
func NewPermissionService(repo subjectRepository, cache *CacheService, ttl time.Duration, logger *zap.Logger) *PermissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PermissionService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// Subject returns the user with role and permissions. Inactive users and
// inactive roles resolve with no role, so they hold no permissions.
func (s *PermissionService) Subject(ctx context.Context, userID string) (*models.User, error) {
	key := permissionCachePrefix + userID
	var cached models.User
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	user, err := s.repo.LoadSubject(ctx, userID)
	if err != nil {
		return nil, loadError(err, "user")
	}
	if !user.Status || (user.Role != nil && !user.Role.Status) {
		user.Role = nil
	}
	if err := s.cache.Set(ctx, key, user, s.ttl); err != nil {
		s.logger.Debug("permission cache write skipped", zap.String("user_id", userID), zap.Error(err))
	}
	return user, nil
}

// Granted resolves the active permission keys of a user.
func (s *PermissionService) Granted(ctx context.Context, userID string) (access.Set, error) {
	user, err := s.Subject(ctx, userID)
	if err != nil {
		return nil, err
	}
	return access.GrantedKeys(user), nil
}

// Forget drops the cached aggregate of one user, or of every user when userID is empty.
func (s *PermissionService) Forget(ctx context.Context, userID string) {
	pattern := permissionCachePrefix + "*"
	if userID != "" {
		pattern = permissionCachePrefix + userID
	}
	_ = s.cache.Invalidate(ctx, pattern)
}
