package model

import "github.com/google/uuid"

// Derived report shapes. These are computed per request and never persisted.

type UserInfo struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type SummaryTotals struct {
	TotalWeight   float64 `json:"totalWeight"`
	Count         int64   `json:"count"`
	LastDepositAt *string `json:"lastDepositAt"`
}

type CategorySummary struct {
	Category      string  `json:"category"`
	TotalWeight   float64 `json:"totalWeight"`
	Count         int64   `json:"count"`
	LastDepositAt *string `json:"lastDepositAt"`
}

type UserSummaryReport struct {
	User    UserInfo          `json:"user"`
	Range   *DateRange        `json:"range"`
	Totals  SummaryTotals     `json:"totals"`
	Summary []CategorySummary `json:"summary"`
}

type CategoryTrendEntry struct {
	Category    string  `json:"category"`
	TotalWeight float64 `json:"totalWeight"`
	Count       int64   `json:"count"`
}

// DayBucket is one gapless day of the trend series. Days with no deposits
// carry an empty category list and zero totals.
type DayBucket struct {
	Date        string               `json:"date"`
	Categories  []CategoryTrendEntry `json:"categories"`
	TotalWeight float64              `json:"totalWeight"`
	Count       int64                `json:"count"`
}

type TrendReport struct {
	StartDate string      `json:"startDate"`
	EndDate   string      `json:"endDate"`
	Trend     []DayBucket `json:"trend"`
}

type BinUtilization struct {
	BinID         uuid.UUID `json:"binId"`
	BinName       *string   `json:"binName"`
	TotalWeight   float64   `json:"totalWeight"`
	Capacity      float64   `json:"capacity"`
	PercentFilled float64   `json:"percentFilled"`
	Deposits      int64     `json:"deposits"`
}

type OverallUtilization struct {
	TotalWeight   float64 `json:"totalWeight"`
	TotalCapacity float64 `json:"totalCapacity"`
	PercentFilled float64 `json:"percentFilled"`
}

type BinFillReport struct {
	Overall OverallUtilization `json:"overall"`
	Bins    []BinUtilization   `json:"bins"`
}

type CategoryTotal struct {
	Category    string  `json:"category"`
	TotalWeight float64 `json:"totalWeight"`
	Count       int64   `json:"count"`
}

type StatusTotal struct {
	Status      string  `json:"status"`
	TotalWeight float64 `json:"totalWeight"`
	Count       int64   `json:"count"`
}

type BinTypeTotal struct {
	BinType     string  `json:"binType"`
	TotalWeight float64 `json:"totalWeight"`
	Count       int64   `json:"count"`
}

type RevenueTotal struct {
	Category     string  `json:"category"`
	TotalRevenue float64 `json:"totalRevenue"`
	Currency     string  `json:"currency"`
	Count        int64   `json:"count"`
}

type DailyTotal struct {
	Date        string  `json:"date"`
	TotalWeight float64 `json:"totalWeight"`
	Count       int64   `json:"count"`
}

type MonthlyTotal struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	MonthName   string  `json:"monthName"`
	TotalWeight float64 `json:"totalWeight"`
	Count       int64   `json:"count"`
}
