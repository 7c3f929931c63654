package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/config"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type fakePaymentStore struct {
	payments    []*model.Payment
	binPayments []*model.Payment
	schedules   map[string]*model.BinCollectionRequest
}

func (f *fakePaymentStore) CreatePayment(_ context.Context, p *model.Payment) error {
	p.ID = uuid.New()
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakePaymentStore) CreateBinPayment(_ context.Context, p *model.Payment) error {
	p.ID = uuid.New()
	f.binPayments = append(f.binPayments, p)
	return nil
}

func (f *fakePaymentStore) ListPayments(context.Context) ([]model.Payment, error) { return nil, nil }

func (f *fakePaymentStore) CreateBinCollectionRequest(_ context.Context, req *model.BinCollectionRequest) error {
	req.ID = uuid.New()
	if f.schedules == nil {
		f.schedules = map[string]*model.BinCollectionRequest{}
	}
	f.schedules[req.OrderID] = req
	return nil
}

func (f *fakePaymentStore) GetBinCollectionRequestByOrder(_ context.Context, orderID string) (*model.BinCollectionRequest, error) {
	req, ok := f.schedules[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return req, nil
}

func (f *fakePaymentStore) ListBinCollectionRequests(context.Context) ([]model.BinCollectionRequest, error) {
	return nil, nil
}

func (f *fakePaymentStore) UpdateBinCollectionPaymentStatus(context.Context, string, string) error {
	return nil
}

type fakePickupRequestStore struct {
	created []*model.CollectionRequest
}

func (f *fakePickupRequestStore) Create(_ context.Context, request *model.CollectionRequest) error {
	request.ID = uuid.New()
	request.Status = model.RequestStatusPending
	f.created = append(f.created, request)
	return nil
}

func (f *fakePickupRequestStore) ListDetails(context.Context) ([]model.RequestDetail, error) {
	return nil, nil
}

func (f *fakePickupRequestStore) ListDetailsByStatus(context.Context, model.RequestStatus) ([]model.RequestDetail, error) {
	return nil, nil
}

func (f *fakePickupRequestStore) ListDetailsForCreator(context.Context, []string) ([]model.RequestDetail, error) {
	return nil, nil
}

func newTestPaymentService(payments *fakePaymentStore, requests *fakePickupRequestStore, deposits *fakeDepositStore, bins *fakeBinStore) *PaymentService {
	cfg := &config.Config{PayHere: config.PayHereConfig{MerchantID: "1211149", Secret: "MySecret"}}
	return NewPaymentService(payments, requests, deposits, bins, cfg)
}

func TestNotifyPickupSuccessOpensRequest(t *testing.T) {
	payments := &fakePaymentStore{}
	requests := &fakePickupRequestStore{}
	deposit := &model.Deposit{ID: uuid.New(), WasteWeight: 10}
	deposits := &fakeDepositStore{deposits: map[uuid.UUID]*model.Deposit{deposit.ID: deposit}}
	svc := newTestPaymentService(payments, requests, deposits, &fakeBinStore{})

	err := svc.NotifyPickup(context.Background(), NotifyInput{
		PaymentID:       "320025",
		OrderID:         "ORD-1",
		PayhereAmount:   "450.00",
		PayhereCurrency: "LKR",
		StatusCode:      "2",
		Custom1:         deposit.ID.String(),
		Custom2:         "2024-03-20T10:00",
	})
	require.NoError(t, err)

	require.Len(t, payments.payments, 1)
	require.Len(t, requests.created, 1)
	assert.Equal(t, deposit.ID, requests.created[0].GarbageID)
	assert.Equal(t, 450.0, requests.created[0].Price)
	assert.Equal(t, "LKR", requests.created[0].Currency)
	assert.Equal(t, "2024-03-20T10:00", requests.created[0].DateAndTime)
	assert.Equal(t, model.DepositStatusRequested, deposits.statuses[deposit.ID])
}

func TestNotifyPickupNonSuccessOnlyRecordsPayment(t *testing.T) {
	payments := &fakePaymentStore{}
	requests := &fakePickupRequestStore{}
	deposits := &fakeDepositStore{}
	svc := newTestPaymentService(payments, requests, deposits, &fakeBinStore{})

	err := svc.NotifyPickup(context.Background(), NotifyInput{
		PaymentID:  "320026",
		StatusCode: "-2",
	})
	require.NoError(t, err)
	assert.Len(t, payments.payments, 1)
	assert.Empty(t, requests.created)
	assert.Empty(t, deposits.statuses)
}

func TestNotifyBinPurchaseTransfersBin(t *testing.T) {
	bin := &model.WasteBin{ID: uuid.New(), BinCode: "PP-1234"}
	bins := &fakeBinStore{bins: map[string]*model.WasteBin{bin.ID.String(): bin}}
	payments := &fakePaymentStore{}
	svc := newTestPaymentService(payments, &fakePickupRequestStore{}, &fakeDepositStore{}, bins)

	owner := uuid.New()
	err := svc.NotifyBinPurchase(context.Background(), NotifyInput{
		PaymentID:  "320027",
		StatusCode: "2",
		Custom1:    bin.ID.String(),
		Custom2:    fmt.Sprintf("%s,6.9271,79.8612", owner),
	})
	require.NoError(t, err)
	assert.Len(t, payments.binPayments, 1)
	assert.Equal(t, []uuid.UUID{bin.ID}, bins.purchased)
}

func TestNotifyBinPurchaseRejectsMalformedCustomFields(t *testing.T) {
	svc := newTestPaymentService(&fakePaymentStore{}, &fakePickupRequestStore{}, &fakeDepositStore{}, &fakeBinStore{})

	err := svc.NotifyBinPurchase(context.Background(), NotifyInput{
		PaymentID:  "320028",
		StatusCode: "2",
		Custom1:    "not-a-uuid",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestScheduleCollectionRejectsDuplicateOrder(t *testing.T) {
	payments := &fakePaymentStore{}
	svc := newTestPaymentService(payments, &fakePickupRequestStore{}, &fakeDepositStore{}, &fakeBinStore{})

	input := ScheduleCollectionInput{
		BinID:          "PL-0001",
		UserID:         uuid.New().String(),
		CollectionDate: "2024-04-01",
		CollectionTime: "09:00",
		OrderID:        "ORD-42",
		Amount:         500,
	}
	_, err := svc.ScheduleCollection(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.ScheduleCollection(context.Background(), input)
	assert.ErrorIs(t, err, ErrDuplicateOrder)
}

func TestCheckoutHash(t *testing.T) {
	svc := newTestPaymentService(&fakePaymentStore{}, &fakePickupRequestStore{}, &fakeDepositStore{}, &fakeBinStore{})

	hash, err := svc.CheckoutHash("Order123", 1000, "LKR")
	require.NoError(t, err)
	assert.Equal(t, "C8FB0DBB07C059CD4C72900DDE98E226", hash)
}

func TestCheckoutHashRequiresConfiguration(t *testing.T) {
	svc := NewPaymentService(&fakePaymentStore{}, &fakePickupRequestStore{}, &fakeDepositStore{}, &fakeBinStore{}, &config.Config{})

	_, err := svc.CheckoutHash("Order123", 1000, "LKR")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
