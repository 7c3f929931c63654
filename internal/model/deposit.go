package model

import (
	"time"

	"github.com/google/uuid"
)

type DepositStatus string

const (
	DepositStatusPending   DepositStatus = "Pending"
	DepositStatusRequested DepositStatus = "Requested"
	DepositStatusCollected DepositStatus = "Collected"
)

// Deposit is a single logged waste-weight entry tied to a category, bin and
// creator. Rows are immutable for reporting purposes once created.
type Deposit struct {
	ID              uuid.UUID
	WasteWeight     float64
	GarbageCategory string
	Status          DepositStatus
	BinID           uuid.UUID
	CreatedBy       string
	UpdatedBy       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DepositDetail is a deposit joined to its bin and creator for list views.
type DepositDetail struct {
	ID              uuid.UUID     `json:"_id"`
	WasteWeight     float64       `json:"wasteWeight"`
	GarbageCategory string        `json:"garbageCategory"`
	Status          DepositStatus `json:"status"`
	BinID           uuid.UUID     `json:"binId"`
	BinCode         string        `json:"binCode"`
	BinType         BinType       `json:"binType"`
	CreatedBy       string        `json:"createdBy"`
	CreatorName     *string       `json:"creatorName"`
	CreatorEmail    *string       `json:"creatorEmail"`
	CreatedAt       time.Time     `json:"createdAt"`
}

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "Pending"
	RequestStatusApproved  RequestStatus = "Approved"
	RequestStatusRejected  RequestStatus = "Rejected"
	RequestStatusCompleted RequestStatus = "Completed"
)

// CollectionRequest links a deposit to a paid pickup price. date_and_time is
// a free-form string inherited from the payment gateway payload.
type CollectionRequest struct {
	ID          uuid.UUID
	GarbageID   uuid.UUID
	Price       float64
	Currency    string
	Status      RequestStatus
	DateAndTime string
	CreatedAt   time.Time
}

// RequestDetail is a collection request joined to its deposit, bin and
// creator for list views.
type RequestDetail struct {
	ID              uuid.UUID     `json:"_id"`
	GarbageID       uuid.UUID     `json:"garbageId"`
	Price           float64       `json:"price"`
	Currency        string        `json:"currency"`
	Status          RequestStatus `json:"status"`
	DateAndTime     string        `json:"dateAndTime"`
	GarbageCategory string        `json:"garbageCategory"`
	WasteWeight     float64       `json:"wasteWeight"`
	BinCode         string        `json:"binCode"`
	CreatorName     *string       `json:"creatorName"`
	CreatedAt       time.Time     `json:"createdAt"`
}
