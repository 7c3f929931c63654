package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/auth"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateRole(ctx context.Context, id uuid.UUID, roleID uuid.UUID) (*model.User, error)
}

type RoleStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Role, error)
	GetByUserType(ctx context.Context, userType string) (*model.Role, error)
	List(ctx context.Context) ([]model.Role, error)
	Create(ctx context.Context, role *model.Role) error
	Update(ctx context.Context, id uuid.UUID, description string, permissions model.PermissionMap) (*model.Role, error)
}

type AuthService struct {
	users  UserStore
	roles  RoleStore
	tokens *auth.Parser
	now    func() time.Time
}

func NewAuthService(users UserStore, roles RoleStore, tokens *auth.Parser) *AuthService {
	return &AuthService{users: users, roles: roles, tokens: tokens, now: time.Now}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Mobile   string
	UserType string
}

// Register creates a user with a bcrypt-hashed password. New accounts get the
// role named by UserType, defaulting to Resident.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if username == "" || email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrInvalidInput)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(err)
	}

	userType := input.UserType
	if userType == "" {
		userType = "Resident"
	}
	var roleID *uuid.UUID
	role, err := s.roles.GetByUserType(ctx, userType)
	switch {
	case err == nil:
		roleID = &role.ID
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, storeError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		UserType: roleID,
	}
	if mobile := strings.TrimSpace(input.Mobile); mobile != "" {
		user.Mobile = &mobile
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeError(err)
	}
	return user, nil
}

type LoginResult struct {
	Token string
	User  *model.User
	Role  *model.Role
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, storeError(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredential
	}

	token, err := s.tokens.Issue(user.ID, s.now())
	if err != nil {
		return nil, err
	}

	result := &LoginResult{Token: token, User: user}
	if user.UserType != nil {
		role, err := s.roles.GetByID(ctx, *user.UserType)
		if err == nil {
			result.Role = role
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storeError(err)
		}
	}
	return result, nil
}

// CurrentUser resolves the authenticated principal to its profile and role.
func (s *AuthService) CurrentUser(ctx context.Context, principal model.Principal) (*model.User, *model.Role, error) {
	user, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, storeError(err)
	}
	var role *model.Role
	if user.UserType != nil {
		role, err = s.roles.GetByID(ctx, *user.UserType)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, storeError(err)
		}
	}
	return user, role, nil
}

func (s *AuthService) AssignRole(ctx context.Context, userID, roleID uuid.UUID) (*model.User, error) {
	if _, err := s.roles.GetByID(ctx, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: role %s", ErrNotFound, roleID)
		}
		return nil, storeError(err)
	}
	user, err := s.users.UpdateRole(ctx, userID, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return nil, storeError(err)
	}
	return user, nil
}
