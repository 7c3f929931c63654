package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type TruckStore interface {
	LastTruckCode(ctx context.Context) (string, error)
	Create(ctx context.Context, truck *model.Truck) error
	List(ctx context.Context) ([]model.Truck, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Truck, error)
	GetByDriver(ctx context.Context, driver uuid.UUID) (*model.Truck, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.Truck, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.TruckStatus) (*model.Truck, error)
	UpdateLoad(ctx context.Context, id uuid.UUID, load float64) (*model.Truck, error)
}

type RouteStatusStore interface {
	UpdateDeliveryStatusByTruck(ctx context.Context, truckID uuid.UUID, status model.DeliveryStatus) error
}

type CollectedDepositStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Deposit, error)
	Empty(ctx context.Context, id uuid.UUID) error
}

type TruckService struct {
	trucks   TruckStore
	routes   RouteStatusStore
	deposits CollectedDepositStore
}

func NewTruckService(trucks TruckStore, routes RouteStatusStore, deposits CollectedDepositStore) *TruckService {
	return &TruckService{trucks: trucks, routes: routes, deposits: deposits}
}

const truckCodePrefix = "TRUCK"

// nextTruckCode continues the TRUCK001 sequence from the last issued code.
func nextTruckCode(last string) string {
	n := 0
	if digits := strings.TrimPrefix(last, truckCodePrefix); digits != last {
		if parsed, err := strconv.Atoi(digits); err == nil {
			n = parsed
		}
	}
	return fmt.Sprintf("%s%03d", truckCodePrefix, n+1)
}

type CreateTruckInput struct {
	Capacity        float64
	Driver          uuid.UUID
	CurrentLocation *string
	Latitude        *float64
	Longitude       *float64
}

func (s *TruckService) Create(ctx context.Context, input CreateTruckInput) (*model.Truck, error) {
	if input.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}
	if input.Driver == uuid.Nil {
		return nil, fmt.Errorf("%w: driver is required", ErrInvalidInput)
	}
	last, err := s.trucks.LastTruckCode(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	truck := &model.Truck{
		TruckCode:       nextTruckCode(last),
		Capacity:        input.Capacity,
		Driver:          input.Driver,
		CurrentLocation: input.CurrentLocation,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
	}
	if err := s.trucks.Create(ctx, truck); err != nil {
		return nil, storeError(err)
	}
	return truck, nil
}

func (s *TruckService) List(ctx context.Context) ([]model.Truck, error) {
	trucks, err := s.trucks.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return trucks, nil
}

func (s *TruckService) Get(ctx context.Context, id uuid.UUID) (*model.Truck, error) {
	truck, err := s.trucks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return truck, nil
}

func (s *TruckService) GetByDriver(ctx context.Context, driver uuid.UUID) (*model.Truck, error) {
	truck, err := s.trucks.GetByDriver(ctx, driver)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return truck, nil
}

type UpdateTruckInput struct {
	Capacity        *float64
	Driver          *uuid.UUID
	CurrentLocation *string
	Latitude        *float64
	Longitude       *float64
}

func (s *TruckService) Update(ctx context.Context, id uuid.UUID, input UpdateTruckInput) (*model.Truck, error) {
	updates := map[string]interface{}{}
	if input.Capacity != nil {
		if *input.Capacity <= 0 {
			return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
		}
		updates["capacity"] = *input.Capacity
	}
	if input.Driver != nil {
		updates["driver"] = *input.Driver
	}
	if input.CurrentLocation != nil {
		updates["current_location"] = *input.CurrentLocation
	}
	if input.Latitude != nil {
		updates["latitude"] = *input.Latitude
	}
	if input.Longitude != nil {
		updates["longitude"] = *input.Longitude
	}
	truck, err := s.trucks.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return truck, nil
}

func (s *TruckService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trucks.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeError(err)
	}
	return nil
}

// SetStatus moves a truck between service states. Entering service flips the
// truck's routes to In Progress; returning to Available completes them.
func (s *TruckService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*model.Truck, error) {
	truckStatus := model.TruckStatus(status)
	switch truckStatus {
	case model.TruckStatusAvailable, model.TruckStatusInService, model.TruckStatusMaintenance:
	default:
		return nil, fmt.Errorf("%w: status", ErrInvalidInput)
	}
	truck, err := s.trucks.UpdateStatus(ctx, id, truckStatus)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	switch truckStatus {
	case model.TruckStatusInService:
		err = s.routes.UpdateDeliveryStatusByTruck(ctx, id, model.DeliveryStatusInProgress)
	case model.TruckStatusAvailable:
		err = s.routes.UpdateDeliveryStatusByTruck(ctx, id, model.DeliveryStatusCompleted)
	}
	if err != nil {
		return nil, storeError(err)
	}
	return truck, nil
}

// CollectDeposit transfers a deposit's weight onto the truck, zeroes the
// deposit and marks it Collected. The combined load may not exceed the
// truck's capacity.
func (s *TruckService) CollectDeposit(ctx context.Context, truckID, depositID uuid.UUID) (*model.Truck, error) {
	truck, err := s.trucks.GetByID(ctx, truckID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: truck", ErrNotFound)
		}
		return nil, storeError(err)
	}
	deposit, err := s.deposits.GetByID(ctx, depositID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: deposit", ErrNotFound)
		}
		return nil, storeError(err)
	}

	newLoad := truck.CurrentWasteLoad + deposit.WasteWeight
	if newLoad > truck.Capacity {
		return nil, ErrCapacityExceeded
	}

	updated, err := s.trucks.UpdateLoad(ctx, truckID, newLoad)
	if err != nil {
		return nil, storeError(err)
	}
	if err := s.deposits.Empty(ctx, depositID); err != nil {
		return nil, storeError(err)
	}
	return updated, nil
}
