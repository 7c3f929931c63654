package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, user_type, description, permissions, created_at
		FROM roles
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&role).Error; err != nil {
		return nil, err
	}
	if role.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &role, nil
}

func (r *RoleRepository) GetByUserType(ctx context.Context, userType string) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, user_type, description, permissions, created_at
		FROM roles
		WHERE user_type = ?
		LIMIT 1
	`, userType).Scan(&role).Error; err != nil {
		return nil, err
	}
	if role.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &role, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, user_type, description, permissions, created_at
		FROM roles
		ORDER BY user_type ASC
	`).Scan(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *RoleRepository) Create(ctx context.Context, role *model.Role) error {
	return r.db.WithContext(ctx).Raw(`
		INSERT INTO roles (user_type, description, permissions)
		VALUES (?, ?, ?)
		RETURNING id, created_at
	`, role.UserType, role.Description, role.Permissions).
		Row().Scan(&role.ID, &role.CreatedAt)
}

func (r *RoleRepository) Update(ctx context.Context, id uuid.UUID, description string, permissions model.PermissionMap) (*model.Role, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE roles SET description = ?, permissions = ? WHERE id = ?
	`, description, permissions, id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}
