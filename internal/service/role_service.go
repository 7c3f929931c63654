package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type RoleService struct {
	roles RoleStore
}

func NewRoleService(roles RoleStore) *RoleService {
	return &RoleService{roles: roles}
}

func (s *RoleService) List(ctx context.Context) ([]model.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return roles, nil
}

func (s *RoleService) Get(ctx context.Context, id uuid.UUID) (*model.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return role, nil
}

func (s *RoleService) Create(ctx context.Context, userType, description string, permissions model.PermissionMap) (*model.Role, error) {
	userType = strings.TrimSpace(userType)
	if userType == "" {
		return nil, fmt.Errorf("%w: userType is required", ErrInvalidInput)
	}
	if permissions == nil {
		permissions = model.PermissionMap{}
	}
	role := &model.Role{
		UserType:    userType,
		Description: description,
		Permissions: permissions,
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, storeError(err)
	}
	return role, nil
}

func (s *RoleService) Update(ctx context.Context, id uuid.UUID, description string, permissions model.PermissionMap) (*model.Role, error) {
	if permissions == nil {
		permissions = model.PermissionMap{}
	}
	role, err := s.roles.Update(ctx, id, description, permissions)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return role, nil
}
