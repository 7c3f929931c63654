package model

import (
	"time"

	"github.com/google/uuid"
)

type TruckStatus string

const (
	TruckStatusAvailable   TruckStatus = "Available"
	TruckStatusInService   TruckStatus = "In Service"
	TruckStatusMaintenance TruckStatus = "Under Maintenance"
)

type Truck struct {
	ID               uuid.UUID
	TruckCode        string
	Capacity         float64
	CurrentWasteLoad float64
	Driver           uuid.UUID
	Status           TruckStatus
	CurrentLocation  *string
	Latitude         *float64
	Longitude        *float64
	AssignedRoute    *uuid.UUID
	CreatedAt        time.Time
}

type DeliveryStatus string

const (
	DeliveryStatusPending    DeliveryStatus = "Pending"
	DeliveryStatusInProgress DeliveryStatus = "In Progress"
	DeliveryStatusCompleted  DeliveryStatus = "Completed"
)

type CollectionRoute struct {
	ID             uuid.UUID
	TruckID        uuid.UUID
	DeliveryStatus DeliveryStatus
	RequestIDs     []uuid.UUID `gorm:"-"`
	CreatedAt      time.Time
}
