package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type BinRepository struct {
	db *gorm.DB
}

func NewBinRepository(db *gorm.DB) *BinRepository {
	return &BinRepository{db: db}
}

const binColumns = `id, bin_code, name, location, latitude, longitude,
	current_waste_level, threshold_level, capacity, bin_type, availability,
	owner, status, created_at`

func (r *BinRepository) Create(ctx context.Context, bin *model.WasteBin) error {
	return r.db.WithContext(ctx).Raw(`
		INSERT INTO waste_bins (bin_code, name, location, latitude, longitude, threshold_level, capacity, bin_type)
		VALUES (?, ?, COALESCE(NULLIF(?, ''), 'warehouse'), ?, ?, ?, ?, ?)
		RETURNING id, created_at
	`, bin.BinCode, bin.Name, bin.Location, bin.Latitude, bin.Longitude,
		bin.ThresholdLevel, bin.Capacity, bin.BinType).
		Row().Scan(&bin.ID, &bin.CreatedAt)
}

func (r *BinRepository) List(ctx context.Context) ([]model.WasteBin, error) {
	var bins []model.WasteBin
	if err := r.db.WithContext(ctx).Raw(`
		SELECT ` + binColumns + `
		FROM waste_bins
		ORDER BY created_at DESC
	`).Scan(&bins).Error; err != nil {
		return nil, err
	}
	return bins, nil
}

func (r *BinRepository) ListByOwnerAndType(ctx context.Context, owner uuid.UUID, binType model.BinType) ([]model.WasteBin, error) {
	var bins []model.WasteBin
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+binColumns+`
		FROM waste_bins
		WHERE owner = ? AND bin_type = ?
		ORDER BY created_at DESC
	`, owner, binType).Scan(&bins).Error; err != nil {
		return nil, err
	}
	return bins, nil
}

func (r *BinRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.WasteBin, error) {
	var bin model.WasteBin
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+binColumns+`
		FROM waste_bins
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&bin).Error; err != nil {
		return nil, err
	}
	if bin.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &bin, nil
}

// GetByIDOrCode resolves a bin by row id or by its human-facing bin code,
// matching the original lookup that accepted either form.
func (r *BinRepository) GetByIDOrCode(ctx context.Context, raw string) (*model.WasteBin, error) {
	var bin model.WasteBin
	query := `
		SELECT ` + binColumns + `
		FROM waste_bins
		WHERE bin_code = ?
		LIMIT 1
	`
	args := []interface{}{raw}
	if id, err := uuid.Parse(raw); err == nil {
		query = `
			SELECT ` + binColumns + `
			FROM waste_bins
			WHERE id = ? OR bin_code = ?
			LIMIT 1
		`
		args = []interface{}{id, raw}
	}
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&bin).Error; err != nil {
		return nil, err
	}
	if bin.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &bin, nil
}

func (r *BinRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.WasteBin, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Table("waste_bins").Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *BinRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM waste_bins WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BinRepository) ResetLevel(ctx context.Context, id uuid.UUID) (*model.WasteBin, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE waste_bins SET current_waste_level = 0 WHERE id = ?
	`, id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// MarkPurchased transfers a bin to its buyer after a successful payment.
func (r *BinRepository) MarkPurchased(ctx context.Context, id uuid.UUID, owner uuid.UUID, latitude, longitude float64) (*model.WasteBin, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE waste_bins
		SET status = ?, owner = ?, latitude = ?, longitude = ?, availability = FALSE
		WHERE id = ?
	`, model.BinStatusPurchased, owner, latitude, longitude, id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// PendingWeight sums the weight of deposits still waiting in a bin, used by
// the threshold check on new deposits.
func (r *BinRepository) PendingWeight(ctx context.Context, binID uuid.UUID) (float64, error) {
	var row struct {
		Total float64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(waste_weight), 0) AS total
		FROM garbage
		WHERE bin_id = ? AND status = ?
	`, binID, model.DepositStatusPending).Scan(&row).Error
	if err != nil {
		return 0, err
	}
	return row.Total, nil
}
