package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

// RequestRepository stores paid pickup requests tied to individual deposits.
type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, request *model.CollectionRequest) error {
	return r.db.WithContext(ctx).Raw(`
		INSERT INTO garbage_requests (garbage_id, price, currency, date_and_time)
		VALUES (?, ?, ?, ?)
		RETURNING id, status, created_at
	`, request.GarbageID, request.Price, request.Currency, request.DateAndTime).
		Row().Scan(&request.ID, &request.Status, &request.CreatedAt)
}

func (r *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CollectionRequest, error) {
	var request model.CollectionRequest
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, garbage_id, price, currency, status, date_and_time, created_at
		FROM garbage_requests
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&request).Error; err != nil {
		return nil, err
	}
	if request.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &request, nil
}

const requestDetailQuery = `
	SELECT r.id,
		r.garbage_id,
		r.price,
		r.currency,
		r.status,
		r.date_and_time,
		g.garbage_category,
		g.waste_weight,
		b.bin_code,
		u.username AS creator_name,
		r.created_at
	FROM garbage_requests r
	JOIN garbage g ON g.id = r.garbage_id
	JOIN waste_bins b ON b.id = g.bin_id
	LEFT JOIN users u ON u.id::text = g.created_by
`

func (r *RequestRepository) ListDetails(ctx context.Context) ([]model.RequestDetail, error) {
	var rows []model.RequestDetail
	if err := r.db.WithContext(ctx).Raw(requestDetailQuery + `
		ORDER BY r.created_at DESC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RequestRepository) ListDetailsByStatus(ctx context.Context, status model.RequestStatus) ([]model.RequestDetail, error) {
	var rows []model.RequestDetail
	if err := r.db.WithContext(ctx).Raw(requestDetailQuery+`
		WHERE r.status = ?
		ORDER BY r.created_at DESC
	`, status).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RequestRepository) ListDetailsForCreator(ctx context.Context, creatorForms []string) ([]model.RequestDetail, error) {
	var rows []model.RequestDetail
	if err := r.db.WithContext(ctx).Raw(requestDetailQuery+`
		WHERE g.created_by IN ?
		ORDER BY r.created_at DESC
	`, creatorForms).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.RequestStatus) (*model.CollectionRequest, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE garbage_requests SET status = ? WHERE id = ?
	`, status, id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *RequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM garbage_requests WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
