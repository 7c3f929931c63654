package model

import (
	"time"

	"github.com/google/uuid"
)

// Payment mirrors the PayHere notification payload persisted verbatim.
type Payment struct {
	ID              uuid.UUID
	PaymentID       string
	OrderID         *string
	PayhereAmount   *float64
	PayhereCurrency *string
	StatusCode      *string
	Custom1         *string
	Custom2         *string
	CreatedAt       time.Time
}

type BinCollectionRequest struct {
	ID             uuid.UUID
	BinID          string
	UserID         string
	CollectionDate string
	CollectionTime string
	Latitude       float64
	Longitude      float64
	OrderID        string
	Amount         float64
	PaymentStatus  string
	Status         string
	CreatedAt      time.Time
}
