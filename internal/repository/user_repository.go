package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, username, email, password, mobile, user_type, created_at
		FROM users
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&user).Error; err != nil {
		return nil, err
	}
	if user.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, username, email, password, mobile, user_type, created_at
		FROM users
		WHERE email = ?
		LIMIT 1
	`, email).Scan(&user).Error; err != nil {
		return nil, err
	}
	if user.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Raw(`
		INSERT INTO users (username, email, password, mobile, user_type)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_at
	`, user.Username, user.Email, user.Password, user.Mobile, user.UserType).
		Row().Scan(&user.ID, &user.CreatedAt)
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, roleID uuid.UUID) (*model.User, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE users SET user_type = ? WHERE id = ?
	`, roleID, id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}
