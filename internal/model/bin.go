package model

import (
	"time"

	"github.com/google/uuid"
)

type BinStatus string

const (
	BinStatusNotPurchased BinStatus = "NotPurchased"
	BinStatusPurchased    BinStatus = "Purchased"
	BinStatusMaintenance  BinStatus = "Maintenance"
)

type BinType string

const (
	BinTypeFood    BinType = "Food"
	BinTypePaper   BinType = "Paper"
	BinTypePlastic BinType = "Plastic"
)

type WasteBin struct {
	ID                uuid.UUID
	BinCode           string
	Name              *string
	Location          string
	Latitude          *float64
	Longitude         *float64
	CurrentWasteLevel float64
	ThresholdLevel    *float64
	Capacity          *float64
	BinType           BinType
	Availability      bool
	Owner             *uuid.UUID
	Status            BinStatus
	CreatedAt         time.Time
}
