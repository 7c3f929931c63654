package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type DepositRepository struct {
	db *gorm.DB
}

func NewDepositRepository(db *gorm.DB) *DepositRepository {
	return &DepositRepository{db: db}
}

func (r *DepositRepository) Create(ctx context.Context, deposit *model.Deposit) error {
	return r.db.WithContext(ctx).Raw(`
		INSERT INTO garbage (waste_weight, garbage_category, bin_id, created_by)
		VALUES (?, ?, ?, ?)
		RETURNING id, status, created_at, updated_at
	`, deposit.WasteWeight, deposit.GarbageCategory, deposit.BinID, deposit.CreatedBy).
		Row().Scan(&deposit.ID, &deposit.Status, &deposit.CreatedAt, &deposit.UpdatedAt)
}

func (r *DepositRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Deposit, error) {
	var deposit model.Deposit
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, waste_weight, garbage_category, status, bin_id, created_by, updated_by, created_at, updated_at
		FROM garbage
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&deposit).Error; err != nil {
		return nil, err
	}
	if deposit.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &deposit, nil
}

const depositDetailQuery = `
	SELECT g.id,
		g.waste_weight,
		g.garbage_category,
		g.status,
		g.bin_id,
		b.bin_code,
		b.bin_type,
		g.created_by,
		u.username AS creator_name,
		u.email AS creator_email,
		g.created_at
	FROM garbage g
	JOIN waste_bins b ON b.id = g.bin_id
	LEFT JOIN users u ON u.id::text = g.created_by
`

func (r *DepositRepository) List(ctx context.Context) ([]model.DepositDetail, error) {
	var rows []model.DepositDetail
	if err := r.db.WithContext(ctx).Raw(depositDetailQuery + `
		ORDER BY g.created_at DESC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListForCreatorSince returns the creator's deposits from a point in time
// onward, newest first. Both creator spellings are matched.
func (r *DepositRepository) ListForCreatorSince(ctx context.Context, creatorForms []string, since time.Time) ([]model.DepositDetail, error) {
	var rows []model.DepositDetail
	if err := r.db.WithContext(ctx).Raw(depositDetailQuery+`
		WHERE g.created_by IN ? AND g.created_at >= ?
		ORDER BY g.created_at DESC
	`, creatorForms, since).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DepositRepository) Update(ctx context.Context, id uuid.UUID, weight float64, binID uuid.UUID, category string, updatedBy string) (*model.Deposit, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE garbage
		SET waste_weight = ?, bin_id = ?, garbage_category = ?, updated_by = ?, updated_at = NOW()
		WHERE id = ?
	`, weight, binID, category, updatedBy, id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *DepositRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.DepositStatus) (*model.Deposit, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE garbage SET status = ?, updated_at = NOW() WHERE id = ?
	`, status, id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// Empty zeroes a collected deposit's weight and marks it Collected.
func (r *DepositRepository) Empty(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE garbage
		SET waste_weight = 0, status = ?, updated_at = NOW()
		WHERE id = ?
	`, model.DepositStatusCollected, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DepositRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Deposit, error) {
	deposit, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Exec(`DELETE FROM garbage WHERE id = ?`, id).Error; err != nil {
		return nil, err
	}
	return deposit, nil
}
