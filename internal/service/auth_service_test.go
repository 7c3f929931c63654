package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/auth"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type fakeUserStore struct {
	byEmail map[string]*model.User
	byID    map[uuid.UUID]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail: map[string]*model.User{},
		byID:    map[uuid.UUID]*model.User{},
	}
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	user.ID = uuid.New()
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserStore) UpdateRole(_ context.Context, id uuid.UUID, roleID uuid.UUID) (*model.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	user.UserType = &roleID
	return user, nil
}

type fakeRoleStore struct {
	byType map[string]*model.Role
	byID   map[uuid.UUID]*model.Role
}

func (f *fakeRoleStore) GetByID(_ context.Context, id uuid.UUID) (*model.Role, error) {
	role, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return role, nil
}

func (f *fakeRoleStore) GetByUserType(_ context.Context, userType string) (*model.Role, error) {
	role, ok := f.byType[userType]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return role, nil
}

func (f *fakeRoleStore) List(context.Context) ([]model.Role, error) { return nil, nil }

func (f *fakeRoleStore) Create(_ context.Context, role *model.Role) error {
	role.ID = uuid.New()
	if f.byType == nil {
		f.byType = map[string]*model.Role{}
	}
	if f.byID == nil {
		f.byID = map[uuid.UUID]*model.Role{}
	}
	f.byType[role.UserType] = role
	f.byID[role.ID] = role
	return nil
}

func (f *fakeRoleStore) Update(_ context.Context, id uuid.UUID, description string, permissions model.PermissionMap) (*model.Role, error) {
	role, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	role.Description = description
	role.Permissions = permissions
	return role, nil
}

func newTestAuthService() (*AuthService, *fakeUserStore, *fakeRoleStore) {
	users := newFakeUserStore()
	roles := &fakeRoleStore{byType: map[string]*model.Role{}, byID: map[uuid.UUID]*model.Role{}}
	return NewAuthService(users, roles, auth.NewParser("test-secret")), users, roles
}

func TestRegisterHashesPasswordAndNormalizesEmail(t *testing.T) {
	svc, users, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "Nimal",
		Email:    "  Nimal@Example.COM ",
		Password: "s3cret",
	})
	require.NoError(t, err)

	assert.Equal(t, "nimal@example.com", user.Email)
	assert.NotEqual(t, "s3cret", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")))
	assert.Contains(t, users.byEmail, "nimal@example.com")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	input := RegisterInput{Username: "Nimal", Email: "nimal@example.com", Password: "s3cret"}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestAuthService()

	registered, err := svc.Register(context.Background(), RegisterInput{
		Username: "Nimal", Email: "nimal@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), "nimal@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, registered.ID, result.User.ID)

	_, err = svc.Login(context.Background(), "nimal@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = svc.Login(context.Background(), "unknown@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestRegisterAttachesRoleByUserType(t *testing.T) {
	svc, _, roles := newTestAuthService()
	role := &model.Role{UserType: "Resident"}
	require.NoError(t, roles.Create(context.Background(), role))

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "Kamala", Email: "kamala@example.com", Password: "s3cret",
	})
	require.NoError(t, err)
	require.NotNil(t, user.UserType)
	assert.Equal(t, role.ID, *user.UserType)
}
