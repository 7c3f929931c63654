package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type RouteRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// Create inserts a route, links it to its collection requests and marks those
// requests Approved, all in one transaction.
func (r *RouteRepository) Create(ctx context.Context, route *model.CollectionRoute) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Raw(`
			INSERT INTO collection_routes (truck_id)
			VALUES (?)
			RETURNING id, delivery_status, created_at
		`, route.TruckID).Row().Scan(&route.ID, &route.DeliveryStatus, &route.CreatedAt); err != nil {
			return err
		}
		for _, reqID := range route.RequestIDs {
			if err := tx.Exec(`
				INSERT INTO collection_route_requests (route_id, request_id)
				VALUES (?, ?)
			`, route.ID, reqID).Error; err != nil {
				return err
			}
		}
		if len(route.RequestIDs) > 0 {
			if err := tx.Exec(`
				UPDATE garbage_requests SET status = ? WHERE id IN ?
			`, model.RequestStatusApproved, route.RequestIDs).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *RouteRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CollectionRoute, error) {
	var route model.CollectionRoute
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, truck_id, delivery_status, created_at
		FROM collection_routes
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&route).Error; err != nil {
		return nil, err
	}
	if route.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	requestIDs, err := r.requestIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	route.RequestIDs = requestIDs
	return &route, nil
}

func (r *RouteRepository) List(ctx context.Context) ([]model.CollectionRoute, error) {
	var routes []model.CollectionRoute
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, truck_id, delivery_status, created_at
		FROM collection_routes
		ORDER BY created_at DESC
	`).Scan(&routes).Error; err != nil {
		return nil, err
	}
	for i := range routes {
		requestIDs, err := r.requestIDs(ctx, routes[i].ID)
		if err != nil {
			return nil, err
		}
		routes[i].RequestIDs = requestIDs
	}
	return routes, nil
}

func (r *RouteRepository) requestIDs(ctx context.Context, routeID uuid.UUID) ([]uuid.UUID, error) {
	var rows []struct {
		RequestID uuid.UUID
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT request_id
		FROM collection_route_requests
		WHERE route_id = ?
	`, routeID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.RequestID)
	}
	return ids, nil
}

// ReplaceRequests swaps the set of requests linked to a route.
func (r *RouteRepository) ReplaceRequests(ctx context.Context, routeID uuid.UUID, requestIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
			DELETE FROM collection_route_requests WHERE route_id = ?
		`, routeID).Error; err != nil {
			return err
		}
		for _, reqID := range requestIDs {
			if err := tx.Exec(`
				INSERT INTO collection_route_requests (route_id, request_id)
				VALUES (?, ?)
			`, routeID, reqID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *RouteRepository) UpdateDeliveryStatus(ctx context.Context, id uuid.UUID, status model.DeliveryStatus) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE collection_routes SET delivery_status = ? WHERE id = ?
	`, status, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateDeliveryStatusByTruck flips every route owned by a truck, used when a
// truck changes service status.
func (r *RouteRepository) UpdateDeliveryStatusByTruck(ctx context.Context, truckID uuid.UUID, status model.DeliveryStatus) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE collection_routes SET delivery_status = ? WHERE truck_id = ?
	`, status, truckID).Error
}

func (r *RouteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM collection_routes WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
