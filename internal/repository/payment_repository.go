package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreatePayment records a pickup-payment gateway notification.
func (r *PaymentRepository) CreatePayment(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Raw(`
		INSERT INTO payments (payment_id, order_id, payhere_amount, payhere_currency, status_code, custom_1, custom_2)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at
	`, p.PaymentID, p.OrderID, p.PayhereAmount, p.PayhereCurrency,
		p.StatusCode, p.Custom1, p.Custom2).
		Row().Scan(&p.ID, &p.CreatedAt)
}

// CreateBinPayment records a bin-purchase gateway notification.
func (r *PaymentRepository) CreateBinPayment(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Raw(`
		INSERT INTO bin_payments (payment_id, order_id, payhere_amount, payhere_currency, status_code, custom_1, custom_2)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at
	`, p.PaymentID, p.OrderID, p.PayhereAmount, p.PayhereCurrency,
		p.StatusCode, p.Custom1, p.Custom2).
		Row().Scan(&p.ID, &p.CreatedAt)
}

func (r *PaymentRepository) ListPayments(ctx context.Context) ([]model.Payment, error) {
	var rows []model.Payment
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, payment_id, order_id, payhere_amount, payhere_currency, status_code, custom_1, custom_2, created_at
		FROM payments
		ORDER BY created_at DESC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PaymentRepository) CreateBinCollectionRequest(ctx context.Context, req *model.BinCollectionRequest) error {
	return r.db.WithContext(ctx).Raw(`
		INSERT INTO bin_collection_requests
			(bin_id, user_id, collection_date, collection_time, latitude, longitude, order_id, amount, payment_status, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at
	`, req.BinID, req.UserID, req.CollectionDate, req.CollectionTime,
		req.Latitude, req.Longitude, req.OrderID, req.Amount,
		req.PaymentStatus, req.Status).
		Row().Scan(&req.ID, &req.CreatedAt)
}

func (r *PaymentRepository) GetBinCollectionRequestByOrder(ctx context.Context, orderID string) (*model.BinCollectionRequest, error) {
	var req model.BinCollectionRequest
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, bin_id, user_id, collection_date, collection_time, latitude, longitude, order_id, amount, payment_status, status, created_at
		FROM bin_collection_requests
		WHERE order_id = ?
		LIMIT 1
	`, orderID).Scan(&req).Error; err != nil {
		return nil, err
	}
	if req.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &req, nil
}

func (r *PaymentRepository) ListBinCollectionRequests(ctx context.Context) ([]model.BinCollectionRequest, error) {
	var rows []model.BinCollectionRequest
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, bin_id, user_id, collection_date, collection_time, latitude, longitude, order_id, amount, payment_status, status, created_at
		FROM bin_collection_requests
		ORDER BY created_at DESC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PaymentRepository) UpdateBinCollectionPaymentStatus(ctx context.Context, orderID, paymentStatus string) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE bin_collection_requests SET payment_status = ? WHERE order_id = ?
	`, paymentStatus, orderID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
