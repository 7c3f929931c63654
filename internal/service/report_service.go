package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/config"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

// ReportStore is the aggregation surface the reporting service needs from the
// database layer.
type ReportStore interface {
	CategoryTotals(ctx context.Context) ([]model.CategoryTotal, error)
	StatusTotals(ctx context.Context) ([]model.StatusTotal, error)
	BinTypeTotals(ctx context.Context) ([]model.BinTypeTotal, error)
	RevenueRows(ctx context.Context) ([]model.RevenueRow, error)
	DailyTotals(ctx context.Context) ([]model.DayAgg, error)
	MonthlyTotals(ctx context.Context) ([]model.MonthAgg, error)
	RequestDates(ctx context.Context) ([]model.RequestDateRow, error)
	EarliestDepositAt(ctx context.Context, creatorForms []string) (*time.Time, error)
	CategorySummaries(ctx context.Context, creatorForms []string, from, to time.Time, category string) ([]model.CategoryAgg, error)
	DailyCategoryTotals(ctx context.Context, creatorForms []string, from, to time.Time, category string) ([]model.DayCategoryAgg, error)
	BinLoads(ctx context.Context, creatorForms []string, category string) ([]model.BinLoadAgg, error)
}

// UserDirectory resolves user identities for report headers.
type UserDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type ReportService struct {
	store              ReportStore
	users              UserDirectory
	defaultBinCapacity float64
	now                func() time.Time
}

func NewReportService(store ReportStore, users UserDirectory, cfg *config.Config) *ReportService {
	return &ReportService{
		store:              store,
		users:              users,
		defaultBinCapacity: cfg.Reports.DefaultBinCapacity,
		now:                time.Now,
	}
}

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05.000Z"
)

var monthNames = [13]string{"",
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseDateOnly(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// CategoryBreakdown totals weight and count per waste category across every
// deposit.
func (s *ReportService) CategoryBreakdown(ctx context.Context) ([]model.CategoryTotal, error) {
	rows, err := s.store.CategoryTotals(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	for i := range rows {
		rows[i].TotalWeight = round2(rows[i].TotalWeight)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows, nil
}

func (s *ReportService) StatusBreakdown(ctx context.Context) ([]model.StatusTotal, error) {
	rows, err := s.store.StatusTotals(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	for i := range rows {
		rows[i].TotalWeight = round2(rows[i].TotalWeight)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Status < rows[j].Status })
	return rows, nil
}

func (s *ReportService) BinTypeBreakdown(ctx context.Context) ([]model.BinTypeTotal, error) {
	rows, err := s.store.BinTypeTotals(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	for i := range rows {
		rows[i].TotalWeight = round2(rows[i].TotalWeight)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].BinType < rows[j].BinType })
	return rows, nil
}

// RevenueByCategory sums request prices per deposit category. The currency
// reported for a category is the one first seen for it, in insertion order.
func (s *ReportService) RevenueByCategory(ctx context.Context) ([]model.RevenueTotal, error) {
	rows, err := s.store.RevenueRows(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	index := make(map[string]int, len(rows))
	totals := make([]model.RevenueTotal, 0, len(rows))
	for _, row := range rows {
		pos, ok := index[row.Category]
		if !ok {
			totals = append(totals, model.RevenueTotal{
				Category: row.Category,
				Currency: row.Currency,
			})
			pos = len(totals) - 1
			index[row.Category] = pos
		}
		totals[pos].TotalRevenue += row.Price
		totals[pos].Count++
	}
	for i := range totals {
		totals[i].TotalRevenue = round2(totals[i].TotalRevenue)
	}
	return totals, nil
}

func (s *ReportService) DepositDailyTotals(ctx context.Context) ([]model.DailyTotal, error) {
	rows, err := s.store.DailyTotals(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	totals := make([]model.DailyTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, model.DailyTotal{
			Date:        row.Day,
			TotalWeight: round2(row.TotalWeight),
			Count:       row.Count,
		})
	}
	return totals, nil
}

func (s *ReportService) DepositMonthlyTotals(ctx context.Context) ([]model.MonthlyTotal, error) {
	rows, err := s.store.MonthlyTotals(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	totals := make([]model.MonthlyTotal, 0, len(rows))
	for _, row := range rows {
		name := ""
		if row.Month >= 1 && row.Month <= 12 {
			name = monthNames[row.Month]
		}
		totals = append(totals, model.MonthlyTotal{
			Year:        row.Year,
			Month:       row.Month,
			MonthName:   name,
			TotalWeight: round2(row.TotalWeight),
			Count:       row.Count,
		})
	}
	return totals, nil
}

var requestDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	dateLayout,
}

func parseRequestDate(raw string) (time.Time, error) {
	for _, layout := range requestDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable request date %q", ErrStoreValidation, raw)
}

// RequestDailyTotals buckets pickup requests by their scheduled day. The
// scheduled date is stored as free text, so a single malformed entry fails
// the whole aggregation rather than silently dropping rows.
func (s *ReportService) RequestDailyTotals(ctx context.Context) ([]model.DailyTotal, error) {
	rows, err := s.store.RequestDates(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		t, err := parseRequestDate(row.DateAndTime)
		if err != nil {
			return nil, err
		}
		counts[t.UTC().Format(dateLayout)]++
	}
	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)
	totals := make([]model.DailyTotal, 0, len(days))
	for _, day := range days {
		totals = append(totals, model.DailyTotal{Date: day, Count: counts[day]})
	}
	return totals, nil
}

// SummaryInput selects the subject and window of a per-user summary. UserID
// overrides the requester when present.
type SummaryInput struct {
	Requester model.CreatorRef
	UserID    string
	StartDate string
	EndDate   string
	Category  string
}

func (s *ReportService) resolveSubject(ctx context.Context, requester model.CreatorRef, userID string) (model.CreatorRef, *model.User, error) {
	ref := requester
	if userID != "" {
		ref = model.NewCreatorRef(userID)
	}
	if ref.IsZero() {
		return model.CreatorRef{}, nil, ErrUnauthenticated
	}
	if !ref.IsTyped() {
		return model.CreatorRef{}, nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, ref.String())
	}
	id, err := uuid.Parse(ref.String())
	if err != nil {
		return model.CreatorRef{}, nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, ref.String())
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.CreatorRef{}, nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return model.CreatorRef{}, nil, storeError(err)
	}
	return ref, user, nil
}

// UserSummary aggregates a user's deposits per category over a date window.
// With no explicit start the window opens at the user's earliest deposit; a
// user with no deposits gets an empty summary, not an error.
func (s *ReportService) UserSummary(ctx context.Context, input SummaryInput) (*model.UserSummaryReport, error) {
	ref, user, err := s.resolveSubject(ctx, input.Requester, input.UserID)
	if err != nil {
		return nil, err
	}

	report := &model.UserSummaryReport{
		User: model.UserInfo{
			ID:    user.ID,
			Name:  user.Username,
			Email: user.Email,
		},
		Summary: []model.CategorySummary{},
	}

	var from time.Time
	if input.StartDate != "" {
		day, err := parseDateOnly(input.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: startDate", ErrInvalidDate)
		}
		from = day
	} else {
		earliest, err := s.store.EarliestDepositAt(ctx, ref.Forms())
		if err != nil {
			return nil, storeError(err)
		}
		if earliest == nil {
			return report, nil
		}
		t := earliest.UTC()
		from = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}

	var to time.Time
	if input.EndDate != "" {
		day, err := parseDateOnly(input.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: endDate", ErrInvalidDate)
		}
		to = day.Add(24*time.Hour - time.Millisecond)
	} else {
		t := s.now().UTC()
		to = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).
			Add(24*time.Hour - time.Millisecond)
	}

	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	rows, err := s.store.CategorySummaries(ctx, ref.Forms(), from, to, input.Category)
	if err != nil {
		return nil, storeError(err)
	}

	report.Range = &model.DateRange{
		Start: formatTimestamp(from),
		End:   formatTimestamp(to),
	}

	var lastDeposit *time.Time
	for _, row := range rows {
		entry := model.CategorySummary{
			Category:    row.Category,
			TotalWeight: round2(row.TotalWeight),
			Count:       row.Count,
		}
		if row.LastDepositAt != nil {
			stamp := formatTimestamp(*row.LastDepositAt)
			entry.LastDepositAt = &stamp
			if lastDeposit == nil || row.LastDepositAt.After(*lastDeposit) {
				t := *row.LastDepositAt
				lastDeposit = &t
			}
		}
		report.Summary = append(report.Summary, entry)
		report.Totals.TotalWeight += row.TotalWeight
		report.Totals.Count += row.Count
	}
	sort.Slice(report.Summary, func(i, j int) bool {
		return report.Summary[i].Category < report.Summary[j].Category
	})
	report.Totals.TotalWeight = round2(report.Totals.TotalWeight)
	if lastDeposit != nil {
		stamp := formatTimestamp(*lastDeposit)
		report.Totals.LastDepositAt = &stamp
	}
	return report, nil
}

// TrendInput selects the subject and window of a daily trend. An empty window
// defaults to the trailing thirty days.
type TrendInput struct {
	Requester model.CreatorRef
	UserID    string
	StartDate string
	EndDate   string
	Category  string
}

// Trend builds a gapless day-by-day series of a user's deposits. Days with no
// activity appear with zero totals so charts stay contiguous.
func (s *ReportService) Trend(ctx context.Context, input TrendInput) (*model.TrendReport, error) {
	ref, _, err := s.resolveSubject(ctx, input.Requester, input.UserID)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC()
	endDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if input.EndDate != "" {
		day, err := parseDateOnly(input.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: endDate", ErrInvalidDate)
		}
		endDay = day
	}
	startDay := endDay.AddDate(0, 0, -29)
	if input.StartDate != "" {
		day, err := parseDateOnly(input.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: startDate", ErrInvalidDate)
		}
		startDay = day
	}
	if endDay.Before(startDay) {
		return nil, ErrInvalidRange
	}

	from := startDay
	to := endDay.Add(24*time.Hour - time.Millisecond)
	rows, err := s.store.DailyCategoryTotals(ctx, ref.Forms(), from, to, input.Category)
	if err != nil {
		return nil, storeError(err)
	}

	byDay := make(map[string][]model.DayCategoryAgg)
	for _, row := range rows {
		byDay[row.Day] = append(byDay[row.Day], row)
	}

	report := &model.TrendReport{
		StartDate: startDay.Format(dateLayout),
		EndDate:   endDay.Format(dateLayout),
		Trend:     []model.DayBucket{},
	}
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		bucket := model.DayBucket{
			Date:       key,
			Categories: []model.CategoryTrendEntry{},
		}
		for _, row := range byDay[key] {
			bucket.Categories = append(bucket.Categories, model.CategoryTrendEntry{
				Category:    row.Category,
				TotalWeight: round2(row.TotalWeight),
				Count:       row.Count,
			})
			bucket.TotalWeight += row.TotalWeight
			bucket.Count += row.Count
		}
		bucket.TotalWeight = round2(bucket.TotalWeight)
		report.Trend = append(report.Trend, bucket)
	}
	return report, nil
}

// BinFillInput narrows the fill-level report to one creator or category.
type BinFillInput struct {
	UserID   string
	Category string
}

// BinFillLevels reports how full each bin is relative to its capacity, plus
// an overall utilization line. Bins without a recorded capacity fall back to
// the configured default.
func (s *ReportService) BinFillLevels(ctx context.Context, input BinFillInput) (*model.BinFillReport, error) {
	var creatorForms []string
	if input.UserID != "" {
		ref := model.NewCreatorRef(input.UserID)
		if !ref.IsTyped() {
			return nil, fmt.Errorf("%w: userId", ErrInvalidFilter)
		}
		creatorForms = ref.Forms()
	}

	rows, err := s.store.BinLoads(ctx, creatorForms, input.Category)
	if err != nil {
		return nil, storeError(err)
	}

	report := &model.BinFillReport{Bins: []model.BinUtilization{}}
	var totalWeight, totalCapacity float64
	for _, row := range rows {
		capacity := s.defaultBinCapacity
		if row.Capacity != nil && *row.Capacity > 0 {
			capacity = *row.Capacity
		}
		percent := 0.0
		if capacity > 0 {
			percent = clampPercent(row.TotalWeight / capacity * 100)
		}
		report.Bins = append(report.Bins, model.BinUtilization{
			BinID:         row.BinID,
			BinName:       row.BinName,
			TotalWeight:   round2(row.TotalWeight),
			Capacity:      round2(capacity),
			PercentFilled: round2(percent),
			Deposits:      row.Deposits,
		})
		totalWeight += row.TotalWeight
		totalCapacity += capacity
	}
	sort.Slice(report.Bins, func(i, j int) bool {
		if report.Bins[i].PercentFilled != report.Bins[j].PercentFilled {
			return report.Bins[i].PercentFilled > report.Bins[j].PercentFilled
		}
		return report.Bins[i].BinID.String() < report.Bins[j].BinID.String()
	})

	report.Overall.TotalWeight = round2(totalWeight)
	report.Overall.TotalCapacity = round2(totalCapacity)
	if totalCapacity > 0 {
		report.Overall.PercentFilled = round2(clampPercent(totalWeight / totalCapacity * 100))
	}
	return report, nil
}
