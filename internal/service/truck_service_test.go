package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type fakeTruckStore struct {
	lastCode string
	trucks   map[uuid.UUID]*model.Truck
	created  []*model.Truck
}

func (f *fakeTruckStore) LastTruckCode(context.Context) (string, error) { return f.lastCode, nil }

func (f *fakeTruckStore) Create(_ context.Context, truck *model.Truck) error {
	truck.ID = uuid.New()
	truck.Status = model.TruckStatusAvailable
	f.created = append(f.created, truck)
	return nil
}

func (f *fakeTruckStore) List(context.Context) ([]model.Truck, error) { return nil, nil }

func (f *fakeTruckStore) GetByID(_ context.Context, id uuid.UUID) (*model.Truck, error) {
	truck, ok := f.trucks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return truck, nil
}

func (f *fakeTruckStore) GetByDriver(context.Context, uuid.UUID) (*model.Truck, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTruckStore) Update(context.Context, uuid.UUID, map[string]interface{}) (*model.Truck, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTruckStore) Delete(context.Context, uuid.UUID) error { return nil }

func (f *fakeTruckStore) UpdateStatus(_ context.Context, id uuid.UUID, status model.TruckStatus) (*model.Truck, error) {
	truck, ok := f.trucks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	truck.Status = status
	return truck, nil
}

func (f *fakeTruckStore) UpdateLoad(_ context.Context, id uuid.UUID, load float64) (*model.Truck, error) {
	truck, ok := f.trucks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	truck.CurrentWasteLoad = load
	return truck, nil
}

type fakeRouteStatusStore struct {
	updates map[uuid.UUID]model.DeliveryStatus
}

func (f *fakeRouteStatusStore) UpdateDeliveryStatusByTruck(_ context.Context, truckID uuid.UUID, status model.DeliveryStatus) error {
	if f.updates == nil {
		f.updates = map[uuid.UUID]model.DeliveryStatus{}
	}
	f.updates[truckID] = status
	return nil
}

func TestTruckCodeSequence(t *testing.T) {
	tests := []struct {
		last string
		want string
	}{
		{"", "TRUCK001"},
		{"TRUCK001", "TRUCK002"},
		{"TRUCK099", "TRUCK100"},
		{"TRUCK999", "TRUCK1000"},
		{"garbage", "TRUCK001"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, nextTruckCode(tc.last), "last=%q", tc.last)
	}
}

func TestCreateTruckAssignsNextCode(t *testing.T) {
	trucks := &fakeTruckStore{lastCode: "TRUCK007"}
	svc := NewTruckService(trucks, &fakeRouteStatusStore{}, &fakeDepositStore{})

	truck, err := svc.Create(context.Background(), CreateTruckInput{
		Capacity: 1000,
		Driver:   uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, "TRUCK008", truck.TruckCode)
}

func TestSetStatusFlipsRoutes(t *testing.T) {
	truck := &model.Truck{ID: uuid.New(), Capacity: 500}
	trucks := &fakeTruckStore{trucks: map[uuid.UUID]*model.Truck{truck.ID: truck}}
	routes := &fakeRouteStatusStore{}
	svc := NewTruckService(trucks, routes, &fakeDepositStore{})

	_, err := svc.SetStatus(context.Background(), truck.ID, "In Service")
	require.NoError(t, err)
	assert.Equal(t, model.DeliveryStatusInProgress, routes.updates[truck.ID])

	_, err = svc.SetStatus(context.Background(), truck.ID, "Available")
	require.NoError(t, err)
	assert.Equal(t, model.DeliveryStatusCompleted, routes.updates[truck.ID])
}

func TestSetStatusMaintenanceLeavesRoutesAlone(t *testing.T) {
	truck := &model.Truck{ID: uuid.New()}
	trucks := &fakeTruckStore{trucks: map[uuid.UUID]*model.Truck{truck.ID: truck}}
	routes := &fakeRouteStatusStore{}
	svc := NewTruckService(trucks, routes, &fakeDepositStore{})

	_, err := svc.SetStatus(context.Background(), truck.ID, "Under Maintenance")
	require.NoError(t, err)
	assert.Empty(t, routes.updates)
}

func TestCollectDepositAddsWeightAndEmptiesDeposit(t *testing.T) {
	truck := &model.Truck{ID: uuid.New(), Capacity: 100, CurrentWasteLoad: 40}
	trucks := &fakeTruckStore{trucks: map[uuid.UUID]*model.Truck{truck.ID: truck}}
	deposit := &model.Deposit{ID: uuid.New(), WasteWeight: 25}
	deposits := &fakeDepositStore{deposits: map[uuid.UUID]*model.Deposit{deposit.ID: deposit}}
	svc := NewTruckService(trucks, &fakeRouteStatusStore{}, deposits)

	updated, err := svc.CollectDeposit(context.Background(), truck.ID, deposit.ID)
	require.NoError(t, err)
	assert.Equal(t, 65.0, updated.CurrentWasteLoad)
	assert.Equal(t, []uuid.UUID{deposit.ID}, deposits.emptied)
}

func TestCollectDepositGuardsCapacity(t *testing.T) {
	truck := &model.Truck{ID: uuid.New(), Capacity: 100, CurrentWasteLoad: 90}
	trucks := &fakeTruckStore{trucks: map[uuid.UUID]*model.Truck{truck.ID: truck}}
	deposit := &model.Deposit{ID: uuid.New(), WasteWeight: 25}
	deposits := &fakeDepositStore{deposits: map[uuid.UUID]*model.Deposit{deposit.ID: deposit}}
	svc := NewTruckService(trucks, &fakeRouteStatusStore{}, deposits)

	_, err := svc.CollectDeposit(context.Background(), truck.ID, deposit.ID)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Empty(t, deposits.emptied)
	assert.Equal(t, 90.0, truck.CurrentWasteLoad)
}
