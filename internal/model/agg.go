package model

import (
	"time"

	"github.com/google/uuid"
)

// Intermediate aggregation rows scanned straight out of the store. The
// reporting service shapes these into the response types in report.go.

type CategoryAgg struct {
	Category      string
	TotalWeight   float64
	Count         int64
	LastDepositAt *time.Time
}

type DayAgg struct {
	Day         string
	TotalWeight float64
	Count       int64
}

type MonthAgg struct {
	Year        int
	Month       int
	TotalWeight float64
	Count       int64
}

type DayCategoryAgg struct {
	Day         string
	Category    string
	TotalWeight float64
	Count       int64
}

type BinLoadAgg struct {
	BinID       uuid.UUID
	BinName     *string
	Capacity    *float64
	TotalWeight float64
	Deposits    int64
}

// RevenueRow is one priced collection request joined to its deposit's
// category, in insertion order. Revenue grouping keeps first-seen currency
// semantics, so rows are aggregated in order rather than in SQL.
type RevenueRow struct {
	Category string
	Price    float64
	Currency string
}

// RequestDateRow carries the free-form date_and_time string of a collection
// request for day-bucketing.
type RequestDateRow struct {
	DateAndTime string
}
