package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/config"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type PaymentStore interface {
	CreatePayment(ctx context.Context, p *model.Payment) error
	CreateBinPayment(ctx context.Context, p *model.Payment) error
	ListPayments(ctx context.Context) ([]model.Payment, error)
	CreateBinCollectionRequest(ctx context.Context, req *model.BinCollectionRequest) error
	GetBinCollectionRequestByOrder(ctx context.Context, orderID string) (*model.BinCollectionRequest, error)
	ListBinCollectionRequests(ctx context.Context) ([]model.BinCollectionRequest, error)
	UpdateBinCollectionPaymentStatus(ctx context.Context, orderID, paymentStatus string) error
}

type PickupRequestStore interface {
	Create(ctx context.Context, request *model.CollectionRequest) error
	ListDetails(ctx context.Context) ([]model.RequestDetail, error)
	ListDetailsByStatus(ctx context.Context, status model.RequestStatus) ([]model.RequestDetail, error)
	ListDetailsForCreator(ctx context.Context, creatorForms []string) ([]model.RequestDetail, error)
}

type PaymentService struct {
	payments PaymentStore
	requests PickupRequestStore
	deposits DepositStore
	bins     BinStore
	merchant string
	secret   string
}

func NewPaymentService(
	payments PaymentStore,
	requests PickupRequestStore,
	deposits DepositStore,
	bins BinStore,
	cfg *config.Config,
) *PaymentService {
	return &PaymentService{
		payments: payments,
		requests: requests,
		deposits: deposits,
		bins:     bins,
		merchant: cfg.PayHere.MerchantID,
		secret:   cfg.PayHere.Secret,
	}
}

// payHereStatusSuccess is the gateway's code for a completed payment.
const payHereStatusSuccess = "2"

type NotifyInput struct {
	PaymentID       string
	OrderID         string
	PayhereAmount   string
	PayhereCurrency string
	StatusCode      string
	Custom1         string
	Custom2         string
}

func (input NotifyInput) toPayment() (*model.Payment, error) {
	if strings.TrimSpace(input.PaymentID) == "" {
		return nil, fmt.Errorf("%w: payment_id is required", ErrInvalidInput)
	}
	p := &model.Payment{PaymentID: input.PaymentID}
	if input.OrderID != "" {
		p.OrderID = &input.OrderID
	}
	if input.PayhereAmount != "" {
		amount, err := strconv.ParseFloat(input.PayhereAmount, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: payhere_amount", ErrInvalidInput)
		}
		p.PayhereAmount = &amount
	}
	if input.PayhereCurrency != "" {
		p.PayhereCurrency = &input.PayhereCurrency
	}
	if input.StatusCode != "" {
		p.StatusCode = &input.StatusCode
	}
	if input.Custom1 != "" {
		p.Custom1 = &input.Custom1
	}
	if input.Custom2 != "" {
		p.Custom2 = &input.Custom2
	}
	return p, nil
}

// NotifyPickup persists a pickup-payment notification. On a successful status
// it opens a priced collection request for the deposit named in custom_1 and
// marks that deposit Requested. custom_2 carries the scheduled pickup time.
func (s *PaymentService) NotifyPickup(ctx context.Context, input NotifyInput) error {
	payment, err := input.toPayment()
	if err != nil {
		return err
	}
	if err := s.payments.CreatePayment(ctx, payment); err != nil {
		return storeError(err)
	}
	if input.StatusCode != payHereStatusSuccess {
		return nil
	}

	garbageID, err := uuid.Parse(strings.TrimSpace(input.Custom1))
	if err != nil {
		return fmt.Errorf("%w: custom_1 must carry the deposit id", ErrInvalidInput)
	}
	amount := 0.0
	if payment.PayhereAmount != nil {
		amount = *payment.PayhereAmount
	}
	currency := "LKR"
	if payment.PayhereCurrency != nil {
		currency = *payment.PayhereCurrency
	}
	request := &model.CollectionRequest{
		GarbageID:   garbageID,
		Price:       amount,
		Currency:    currency,
		DateAndTime: input.Custom2,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return storeError(err)
	}
	if _, err := s.deposits.UpdateStatus(ctx, garbageID, model.DepositStatusRequested); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: deposit", ErrNotFound)
		}
		return storeError(err)
	}
	return nil
}

// NotifyBinPurchase persists a bin-purchase notification. On success the bin
// named in custom_1 is transferred to the buyer; custom_2 carries
// "ownerId,latitude,longitude" from the checkout page.
func (s *PaymentService) NotifyBinPurchase(ctx context.Context, input NotifyInput) error {
	payment, err := input.toPayment()
	if err != nil {
		return err
	}
	if err := s.payments.CreateBinPayment(ctx, payment); err != nil {
		return storeError(err)
	}
	if input.StatusCode != payHereStatusSuccess {
		return nil
	}

	binID, err := uuid.Parse(strings.TrimSpace(input.Custom1))
	if err != nil {
		return fmt.Errorf("%w: custom_1 must carry the bin id", ErrInvalidInput)
	}
	parts := strings.Split(input.Custom2, ",")
	if len(parts) != 3 {
		return fmt.Errorf("%w: custom_2 must carry ownerId,latitude,longitude", ErrInvalidInput)
	}
	owner, err := uuid.Parse(strings.TrimSpace(parts[0]))
	if err != nil {
		return fmt.Errorf("%w: owner id", ErrInvalidInput)
	}
	latitude, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return fmt.Errorf("%w: latitude", ErrInvalidInput)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return fmt.Errorf("%w: longitude", ErrInvalidInput)
	}
	if _, err := s.bins.MarkPurchased(ctx, binID, owner, latitude, longitude); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: bin", ErrNotFound)
		}
		return storeError(err)
	}
	return nil
}

func (s *PaymentService) ListPayments(ctx context.Context) ([]model.Payment, error) {
	rows, err := s.payments.ListPayments(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return rows, nil
}

type ScheduleCollectionInput struct {
	BinID          string
	UserID         string
	CollectionDate string
	CollectionTime string
	Latitude       float64
	Longitude      float64
	OrderID        string
	Amount         float64
}

// ScheduleCollection records a paid bin-collection booking. Order ids are
// unique; replaying one is rejected.
func (s *PaymentService) ScheduleCollection(ctx context.Context, input ScheduleCollectionInput) (*model.BinCollectionRequest, error) {
	if input.BinID == "" || input.UserID == "" || input.OrderID == "" {
		return nil, fmt.Errorf("%w: binId, userId and orderId are required", ErrInvalidInput)
	}
	if input.CollectionDate == "" || input.CollectionTime == "" {
		return nil, fmt.Errorf("%w: collectionDate and collectionTime are required", ErrInvalidInput)
	}
	if _, err := s.payments.GetBinCollectionRequestByOrder(ctx, input.OrderID); err == nil {
		return nil, ErrDuplicateOrder
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(err)
	}

	req := &model.BinCollectionRequest{
		BinID:          input.BinID,
		UserID:         input.UserID,
		CollectionDate: input.CollectionDate,
		CollectionTime: input.CollectionTime,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		OrderID:        input.OrderID,
		Amount:         input.Amount,
		PaymentStatus:  "pending",
		Status:         "pending",
	}
	if err := s.payments.CreateBinCollectionRequest(ctx, req); err != nil {
		return nil, storeError(err)
	}
	return req, nil
}

func (s *PaymentService) ListScheduledCollections(ctx context.Context) ([]model.BinCollectionRequest, error) {
	rows, err := s.payments.ListBinCollectionRequests(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return rows, nil
}

func (s *PaymentService) MarkCollectionPaid(ctx context.Context, orderID string) error {
	if orderID == "" {
		return fmt.Errorf("%w: orderId is required", ErrInvalidInput)
	}
	if err := s.payments.UpdateBinCollectionPaymentStatus(ctx, orderID, "paid"); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeError(err)
	}
	return nil
}

func (s *PaymentService) ListPickupRequests(ctx context.Context, status string) ([]model.RequestDetail, error) {
	if status == "" {
		rows, err := s.requests.ListDetails(ctx)
		if err != nil {
			return nil, storeError(err)
		}
		return rows, nil
	}
	requestStatus := model.RequestStatus(status)
	switch requestStatus {
	case model.RequestStatusPending, model.RequestStatusApproved,
		model.RequestStatusRejected, model.RequestStatusCompleted:
	default:
		return nil, fmt.Errorf("%w: status", ErrInvalidFilter)
	}
	rows, err := s.requests.ListDetailsByStatus(ctx, requestStatus)
	if err != nil {
		return nil, storeError(err)
	}
	return rows, nil
}

func (s *PaymentService) ListPickupRequestsForCreator(ctx context.Context, creator model.CreatorRef) ([]model.RequestDetail, error) {
	if creator.IsZero() {
		return nil, ErrUnauthenticated
	}
	rows, err := s.requests.ListDetailsForCreator(ctx, creator.Forms())
	if err != nil {
		return nil, storeError(err)
	}
	return rows, nil
}

func md5Upper(value string) string {
	sum := md5.Sum([]byte(value))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// CheckoutHash computes the gateway's checkout signature: an uppercase MD5
// over merchant id, order id, the amount at two decimals, currency and the
// uppercase MD5 of the merchant secret.
func (s *PaymentService) CheckoutHash(orderID string, amount float64, currency string) (string, error) {
	if s.merchant == "" || s.secret == "" {
		return "", fmt.Errorf("%w: payment gateway is not configured", ErrInvalidInput)
	}
	if orderID == "" || currency == "" {
		return "", fmt.Errorf("%w: orderId and currency are required", ErrInvalidInput)
	}
	formatted := strconv.FormatFloat(amount, 'f', 2, 64)
	return md5Upper(s.merchant + orderID + formatted + currency + md5Upper(s.secret)), nil
}
