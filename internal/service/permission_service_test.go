package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

type fakeSubjects struct {
	users map[string]*models.User
	loads int
}

func (f *fakeSubjects) LoadSubject(_ context.Context, id string) (*models.User, error) {
	f.loads++
	u, ok := f.users[id]
	if !ok {
		return nil, notFound()
	}
	copied := *u
	if u.Role != nil {
		role := *u.Role
		copied.Role = &role
	}
	return &copied, nil
}

func subjectWith(userActive, roleActive bool, perms ...models.Permission) *models.User {
	return &models.User{
		ID:     userA,
		Status: userActive,
		Role:   &models.Role{ID: "r1", Name: "Auditor", Status: roleActive, Permissions: perms},
	}
}

func TestPermissionServiceGrantedFiltersDisabled(t *testing.T) {
	repo := &fakeSubjects{users: map[string]*models.User{
		userA: subjectWith(true, true,
			models.Permission{Key: "get.user", Status: true},
			models.Permission{Key: "create.user", Status: false},
		),
	}}
	svc := NewPermissionService(repo, nil, time.Minute, zap.NewNop())

	granted, err := svc.Granted(context.Background(), userA)
	require.NoError(t, err)
	assert.Equal(t, []string{"get.user"}, granted.Keys())
}

func TestPermissionServiceInactiveResolvesEmpty(t *testing.T) {
	perms := models.Permission{Key: "get.user", Status: true}
	cases := map[string]*models.User{
		"inactive user": subjectWith(false, true, perms),
		"inactive role": subjectWith(true, false, perms),
	}
	for name, user := range cases {
		repo := &fakeSubjects{users: map[string]*models.User{userA: user}}
		svc := NewPermissionService(repo, nil, time.Minute, zap.NewNop())

		subject, err := svc.Subject(context.Background(), userA)
		require.NoError(t, err, name)
		assert.Nil(t, subject.Role, name)

		granted, err := svc.Granted(context.Background(), userA)
		require.NoError(t, err, name)
		assert.Empty(t, granted, name)
	}
}

func TestPermissionServiceCachesAndForgets(t *testing.T) {
	repo := &fakeSubjects{users: map[string]*models.User{
		userA: subjectWith(true, true, models.Permission{Key: "get.risk", Status: true}),
	}}
	store := newMemCacheRepo()
	metrics := NewMetricsService()
	cache := NewCacheService(store, metrics, time.Minute, zap.NewNop(), true)
	svc := NewPermissionService(repo, cache, time.Minute, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Granted(ctx, userA)
	require.NoError(t, err)
	granted, err := svc.Granted(ctx, userA)
	require.NoError(t, err)
	assert.True(t, granted.Has("get.risk"))
	assert.Equal(t, 1, repo.loads)
	assert.True(t, store.has(permissionCachePrefix+userA))

	svc.Forget(ctx, userA)
	assert.False(t, store.has(permissionCachePrefix+userA))

	_, err = svc.Granted(ctx, userA)
	require.NoError(t, err)
	svc.Forget(ctx, "")
	assert.False(t, store.has(permissionCachePrefix+userA))
	assert.Equal(t, 2, repo.loads)

	snap := metrics.Snapshot()
	assert.Equal(t, uint64(1), snap.CacheHits)
	assert.Equal(t, uint64(2), snap.CacheMisses)
}

func TestPermissionServiceUnknownUser(t *testing.T) {
	svc := NewPermissionService(&fakeSubjects{users: map[string]*models.User{}}, nil, time.Minute, nil)

	_, err := svc.Subject(context.Background(), userB)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
