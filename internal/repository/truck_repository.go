package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type TruckRepository struct {
	db *gorm.DB
}

func NewTruckRepository(db *gorm.DB) *TruckRepository {
	return &TruckRepository{db: db}
}

const truckColumns = `id, truck_code, capacity, current_waste_load, driver,
	status, current_location, latitude, longitude, assigned_route, created_at`

// LastTruckCode returns the most recently issued truck code, or "" when no
// trucks exist yet.
func (r *TruckRepository) LastTruckCode(ctx context.Context) (string, error) {
	var row struct {
		TruckCode string
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT truck_code
		FROM trucks
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&row).Error
	if err != nil {
		return "", err
	}
	return row.TruckCode, nil
}

func (r *TruckRepository) Create(ctx context.Context, truck *model.Truck) error {
	return r.db.WithContext(ctx).Raw(`
		INSERT INTO trucks (truck_code, capacity, driver, current_location, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, current_waste_load, status, created_at
	`, truck.TruckCode, truck.Capacity, truck.Driver,
		truck.CurrentLocation, truck.Latitude, truck.Longitude).
		Row().Scan(&truck.ID, &truck.CurrentWasteLoad, &truck.Status, &truck.CreatedAt)
}

func (r *TruckRepository) List(ctx context.Context) ([]model.Truck, error) {
	var trucks []model.Truck
	if err := r.db.WithContext(ctx).Raw(`
		SELECT ` + truckColumns + `
		FROM trucks
		ORDER BY created_at DESC
	`).Scan(&trucks).Error; err != nil {
		return nil, err
	}
	return trucks, nil
}

func (r *TruckRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Truck, error) {
	var truck model.Truck
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+truckColumns+`
		FROM trucks
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&truck).Error; err != nil {
		return nil, err
	}
	if truck.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &truck, nil
}

func (r *TruckRepository) GetByDriver(ctx context.Context, driver uuid.UUID) (*model.Truck, error) {
	var truck model.Truck
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+truckColumns+`
		FROM trucks
		WHERE driver = ?
		LIMIT 1
	`, driver).Scan(&truck).Error; err != nil {
		return nil, err
	}
	if truck.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &truck, nil
}

func (r *TruckRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.Truck, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Table("trucks").Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *TruckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM trucks WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TruckRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.TruckStatus) (*model.Truck, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE trucks SET status = ? WHERE id = ?
	`, status, id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *TruckRepository) UpdateLoad(ctx context.Context, id uuid.UUID, load float64) (*model.Truck, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE trucks SET current_waste_load = ? WHERE id = ?
	`, load, id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *TruckRepository) AssignRoute(ctx context.Context, id uuid.UUID, routeID *uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE trucks SET assigned_route = ? WHERE id = ?
	`, routeID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
