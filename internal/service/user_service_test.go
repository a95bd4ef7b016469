package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

const (
	roleActiveID   = "cccccccc-cccc-4ccc-8ccc-cccccccccccc"
	roleInactiveID = "dddddddd-dddd-4ddd-8ddd-dddddddddddd"
)

type fakeUsers struct {
	users    map[string]*models.User
	disabled []string
}

func (f *fakeUsers) List(context.Context, models.UserFilter) ([]models.User, int, error) {
	return nil, 0, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, notFound()
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUsers) LoadSubject(ctx context.Context, id string) (*models.User, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeUsers) ExistsByEmailOrUsername(_ context.Context, email, username, excludeID string) (bool, error) {
	for id, u := range f.users {
		if id != excludeID && (u.Email == email || u.Username == username) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	user.ID = userB
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUsers) Update(_ context.Context, user *models.User) error {
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id, hash string, _ time.Time) error {
	f.users[id].PasswordHash = hash
	return nil
}

func (f *fakeUsers) Disable(_ context.Context, id string) error {
	f.disabled = append(f.disabled, id)
	return nil
}

type roleStatuses map[string]bool

func (r roleStatuses) FindByID(_ context.Context, id string) (*models.Role, error) {
	status, ok := r[id]
	if !ok {
		return nil, notFound()
	}
	return &models.Role{ID: id, Status: status}, nil
}

func newUserFixture() (*UserService, *fakeUsers, *forgetRecorder) {
	users := &fakeUsers{users: map[string]*models.User{
		userA: {ID: userA, Email: "ana@auditoria.local", Username: "ana", RoleID: roleActiveID, Status: true},
	}}
	forget := &forgetRecorder{}
	svc := NewUserService(users, roleStatuses{roleActiveID: true, roleInactiveID: false}, forget, nil, nil, nil)
	return svc, users, forget
}

func createUserRequest(email, username, roleID string) CreateUserRequest {
	return CreateUserRequest{
		CompanyID: companyID,
		RoleID:    roleID,
		FirstName: "Luis",
		LastName:  "Pérez",
		Email:     email,
		Username:  username,
		Password:  "clave-segura",
	}
}

func TestUserCreateHashesPassword(t *testing.T) {
	svc, users, _ := newUserFixture()

	user, err := svc.Create(context.Background(), createUserRequest("Luis@Auditoria.local", "Luis", roleActiveID), RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "luis@auditoria.local", user.Email)
	assert.Equal(t, "luis", user.Username)
	assert.True(t, user.Status)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.users[userB].PasswordHash), []byte("clave-segura")))
}

func TestUserCreateRejectsDuplicatesAndInactiveRole(t *testing.T) {
	svc, _, _ := newUserFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, createUserRequest("ana@auditoria.local", "otra", roleActiveID), RequestMeta{})
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(ctx, createUserRequest("luis@auditoria.local", "luis", roleInactiveID), RequestMeta{})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(ctx, createUserRequest("luis@auditoria.local", "luis", eventID), RequestMeta{})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestUserDeleteCannotDisableSelf(t *testing.T) {
	svc, users, forget := newUserFixture()
	ctx := context.Background()

	err := svc.Delete(ctx, userA, RequestMeta{ActorID: userA})
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, users.disabled)

	require.NoError(t, svc.Delete(ctx, userA, RequestMeta{ActorID: userB}))
	assert.Equal(t, []string{userA}, users.disabled)
	assert.Equal(t, []string{userA}, forget.calls)
}

func TestUserUpdateForgetsCachedSubject(t *testing.T) {
	svc, users, forget := newUserFixture()
	disabled := false

	user, err := svc.Update(context.Background(), userA, UpdateUserRequest{
		CompanyID: companyID,
		RoleID:    roleActiveID,
		FirstName: "Ana",
		LastName:  "Gómez",
		Email:     "ana@auditoria.local",
		Username:  "ana",
		Password:  "nueva-clave-1",
		Status:    &disabled,
	}, RequestMeta{ActorID: userB})
	require.NoError(t, err)
	assert.False(t, user.Status)
	assert.Equal(t, []string{userA}, forget.calls)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.users[userA].PasswordHash), []byte("nueva-clave-1")))
}
