package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type fakeBinStore struct {
	bins          map[string]*model.WasteBin
	pendingWeight float64
	created       []*model.WasteBin
	purchased     []uuid.UUID
}

func (f *fakeBinStore) Create(_ context.Context, bin *model.WasteBin) error {
	bin.ID = uuid.New()
	f.created = append(f.created, bin)
	return nil
}

func (f *fakeBinStore) List(context.Context) ([]model.WasteBin, error) { return nil, nil }

func (f *fakeBinStore) ListByOwnerAndType(context.Context, uuid.UUID, model.BinType) ([]model.WasteBin, error) {
	return nil, nil
}

func (f *fakeBinStore) GetByID(_ context.Context, id uuid.UUID) (*model.WasteBin, error) {
	return f.GetByIDOrCode(context.Background(), id.String())
}

func (f *fakeBinStore) GetByIDOrCode(_ context.Context, raw string) (*model.WasteBin, error) {
	bin, ok := f.bins[raw]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return bin, nil
}

func (f *fakeBinStore) Update(context.Context, uuid.UUID, map[string]interface{}) (*model.WasteBin, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBinStore) Delete(context.Context, uuid.UUID) error { return nil }

func (f *fakeBinStore) ResetLevel(context.Context, uuid.UUID) (*model.WasteBin, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBinStore) MarkPurchased(_ context.Context, id uuid.UUID, _ uuid.UUID, _, _ float64) (*model.WasteBin, error) {
	bin, ok := f.bins[id.String()]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	f.purchased = append(f.purchased, id)
	return bin, nil
}

func (f *fakeBinStore) PendingWeight(context.Context, uuid.UUID) (float64, error) {
	return f.pendingWeight, nil
}

type fakeDepositStore struct {
	created  []*model.Deposit
	statuses map[uuid.UUID]model.DepositStatus
	deposits map[uuid.UUID]*model.Deposit
	emptied  []uuid.UUID
}

func (f *fakeDepositStore) Create(_ context.Context, deposit *model.Deposit) error {
	deposit.ID = uuid.New()
	deposit.Status = model.DepositStatusPending
	deposit.CreatedAt = time.Now()
	f.created = append(f.created, deposit)
	return nil
}

func (f *fakeDepositStore) GetByID(_ context.Context, id uuid.UUID) (*model.Deposit, error) {
	deposit, ok := f.deposits[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return deposit, nil
}

func (f *fakeDepositStore) List(context.Context) ([]model.DepositDetail, error) { return nil, nil }

func (f *fakeDepositStore) ListForCreatorSince(context.Context, []string, time.Time) ([]model.DepositDetail, error) {
	return nil, nil
}

func (f *fakeDepositStore) Update(context.Context, uuid.UUID, float64, uuid.UUID, string, string) (*model.Deposit, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDepositStore) UpdateStatus(_ context.Context, id uuid.UUID, status model.DepositStatus) (*model.Deposit, error) {
	if f.statuses == nil {
		f.statuses = map[uuid.UUID]model.DepositStatus{}
	}
	f.statuses[id] = status
	deposit, ok := f.deposits[id]
	if !ok {
		deposit = &model.Deposit{ID: id, Status: status}
	}
	return deposit, nil
}

func (f *fakeDepositStore) Empty(_ context.Context, id uuid.UUID) error {
	f.emptied = append(f.emptied, id)
	return nil
}

func (f *fakeDepositStore) Delete(context.Context, uuid.UUID) (*model.Deposit, error) {
	return nil, gorm.ErrRecordNotFound
}

func thresholdBin(threshold float64) (*model.WasteBin, *fakeBinStore) {
	bin := &model.WasteBin{
		ID:             uuid.New(),
		BinCode:        "PL-0042",
		BinType:        model.BinTypePlastic,
		ThresholdLevel: &threshold,
	}
	store := &fakeBinStore{bins: map[string]*model.WasteBin{
		bin.ID.String(): bin,
		bin.BinCode:     bin,
	}}
	return bin, store
}

func TestCreateDepositRejectsWhenThresholdExceeded(t *testing.T) {
	bin, bins := thresholdBin(20)
	bins.pendingWeight = 15
	deposits := &fakeDepositStore{}
	svc := NewDepositService(deposits, bins)

	_, err := svc.Create(context.Background(), CreateDepositInput{
		WasteWeight:     6,
		GarbageCategory: "Plastic",
		BinIDOrCode:     bin.BinCode,
		Creator:         model.CreatorRefFromID(uuid.New()),
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Empty(t, deposits.created)
}

func TestCreateDepositWithinThreshold(t *testing.T) {
	bin, bins := thresholdBin(20)
	bins.pendingWeight = 15
	deposits := &fakeDepositStore{}
	svc := NewDepositService(deposits, bins)

	creator := uuid.New()
	deposit, err := svc.Create(context.Background(), CreateDepositInput{
		WasteWeight:     5,
		GarbageCategory: "Plastic",
		BinIDOrCode:     bin.BinCode,
		Creator:         model.CreatorRefFromID(creator),
	})
	require.NoError(t, err)
	assert.Equal(t, bin.ID, deposit.BinID)
	assert.Equal(t, creator.String(), deposit.CreatedBy)
	assert.Len(t, deposits.created, 1)
}

func TestCreateDepositSkipsCheckWithoutThreshold(t *testing.T) {
	bin := &model.WasteBin{ID: uuid.New(), BinCode: "FD-0001", BinType: model.BinTypeFood}
	bins := &fakeBinStore{bins: map[string]*model.WasteBin{bin.BinCode: bin}}
	deposits := &fakeDepositStore{}
	svc := NewDepositService(deposits, bins)

	_, err := svc.Create(context.Background(), CreateDepositInput{
		WasteWeight:     500,
		GarbageCategory: "Food",
		BinIDOrCode:     bin.BinCode,
		Creator:         model.CreatorRefFromID(uuid.New()),
	})
	require.NoError(t, err)
}

func TestCreateDepositValidation(t *testing.T) {
	bin, bins := thresholdBin(20)
	svc := NewDepositService(&fakeDepositStore{}, bins)
	creator := model.CreatorRefFromID(uuid.New())

	_, err := svc.Create(context.Background(), CreateDepositInput{
		WasteWeight: 1, GarbageCategory: "Plastic", BinIDOrCode: bin.BinCode,
	})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Create(context.Background(), CreateDepositInput{
		WasteWeight: 0, GarbageCategory: "Plastic", BinIDOrCode: bin.BinCode, Creator: creator,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), CreateDepositInput{
		WasteWeight: 1, GarbageCategory: "Plastic", BinIDOrCode: "PL-9999", Creator: creator,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
