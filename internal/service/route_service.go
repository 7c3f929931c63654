package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type RouteStore interface {
	Create(ctx context.Context, route *model.CollectionRoute) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.CollectionRoute, error)
	List(ctx context.Context) ([]model.CollectionRoute, error)
	ReplaceRequests(ctx context.Context, routeID uuid.UUID, requestIDs []uuid.UUID) error
	UpdateDeliveryStatus(ctx context.Context, id uuid.UUID, status model.DeliveryStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RouteService struct {
	routes RouteStore
	trucks TruckStore
}

func NewRouteService(routes RouteStore, trucks TruckStore) *RouteService {
	return &RouteService{routes: routes, trucks: trucks}
}

type CreateRouteInput struct {
	TruckID    uuid.UUID
	RequestIDs []uuid.UUID
}

// Create opens a collection route for a truck. The listed pickup requests are
// attached and approved in the same transaction.
func (s *RouteService) Create(ctx context.Context, input CreateRouteInput) (*model.CollectionRoute, error) {
	if input.TruckID == uuid.Nil {
		return nil, fmt.Errorf("%w: truckId is required", ErrInvalidInput)
	}
	if len(input.RequestIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one request is required", ErrInvalidInput)
	}
	if _, err := s.trucks.GetByID(ctx, input.TruckID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: truck", ErrNotFound)
		}
		return nil, storeError(err)
	}
	route := &model.CollectionRoute{
		TruckID:    input.TruckID,
		RequestIDs: input.RequestIDs,
	}
	if err := s.routes.Create(ctx, route); err != nil {
		return nil, storeError(err)
	}
	return route, nil
}

func (s *RouteService) List(ctx context.Context) ([]model.CollectionRoute, error) {
	routes, err := s.routes.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return routes, nil
}

func (s *RouteService) Get(ctx context.Context, id uuid.UUID) (*model.CollectionRoute, error) {
	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return route, nil
}

type UpdateRouteInput struct {
	RequestIDs     []uuid.UUID
	DeliveryStatus *string
}

func (s *RouteService) Update(ctx context.Context, id uuid.UUID, input UpdateRouteInput) (*model.CollectionRoute, error) {
	if _, err := s.routes.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	if input.RequestIDs != nil {
		if err := s.routes.ReplaceRequests(ctx, id, input.RequestIDs); err != nil {
			return nil, storeError(err)
		}
	}
	if input.DeliveryStatus != nil {
		status := model.DeliveryStatus(*input.DeliveryStatus)
		switch status {
		case model.DeliveryStatusPending, model.DeliveryStatusInProgress, model.DeliveryStatusCompleted:
		default:
			return nil, fmt.Errorf("%w: deliveryStatus", ErrInvalidInput)
		}
		if err := s.routes.UpdateDeliveryStatus(ctx, id, status); err != nil {
			return nil, storeError(err)
		}
	}
	return s.Get(ctx, id)
}

func (s *RouteService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.routes.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeError(err)
	}
	return nil
}
