package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/config"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type fakeReportStore struct {
	categoryTotals    []model.CategoryTotal
	statusTotals      []model.StatusTotal
	binTypeTotals     []model.BinTypeTotal
	revenueRows       []model.RevenueRow
	dailyTotals       []model.DayAgg
	monthlyTotals     []model.MonthAgg
	requestDates      []model.RequestDateRow
	earliestDeposit   *time.Time
	categorySummaries []model.CategoryAgg
	dailyCategory     []model.DayCategoryAgg
	binLoads          []model.BinLoadAgg
	err               error

	lastCreatorForms []string
	lastFrom, lastTo time.Time
	lastCategory     string
}

func (f *fakeReportStore) CategoryTotals(context.Context) ([]model.CategoryTotal, error) {
	return f.categoryTotals, f.err
}

func (f *fakeReportStore) StatusTotals(context.Context) ([]model.StatusTotal, error) {
	return f.statusTotals, f.err
}

func (f *fakeReportStore) BinTypeTotals(context.Context) ([]model.BinTypeTotal, error) {
	return f.binTypeTotals, f.err
}

func (f *fakeReportStore) RevenueRows(context.Context) ([]model.RevenueRow, error) {
	return f.revenueRows, f.err
}

func (f *fakeReportStore) DailyTotals(context.Context) ([]model.DayAgg, error) {
	return f.dailyTotals, f.err
}

func (f *fakeReportStore) MonthlyTotals(context.Context) ([]model.MonthAgg, error) {
	return f.monthlyTotals, f.err
}

func (f *fakeReportStore) RequestDates(context.Context) ([]model.RequestDateRow, error) {
	return f.requestDates, f.err
}

func (f *fakeReportStore) EarliestDepositAt(_ context.Context, creatorForms []string) (*time.Time, error) {
	f.lastCreatorForms = creatorForms
	return f.earliestDeposit, f.err
}

func (f *fakeReportStore) CategorySummaries(_ context.Context, creatorForms []string, from, to time.Time, category string) ([]model.CategoryAgg, error) {
	f.lastCreatorForms = creatorForms
	f.lastFrom, f.lastTo = from, to
	f.lastCategory = category
	return f.categorySummaries, f.err
}

func (f *fakeReportStore) DailyCategoryTotals(_ context.Context, creatorForms []string, from, to time.Time, category string) ([]model.DayCategoryAgg, error) {
	f.lastCreatorForms = creatorForms
	f.lastFrom, f.lastTo = from, to
	f.lastCategory = category
	return f.dailyCategory, f.err
}

func (f *fakeReportStore) BinLoads(_ context.Context, creatorForms []string, category string) ([]model.BinLoadAgg, error) {
	f.lastCreatorForms = creatorForms
	f.lastCategory = category
	return f.binLoads, f.err
}

type fakeUserDirectory struct {
	users map[uuid.UUID]*model.User
}

func (f *fakeUserDirectory) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func newTestReportService(store *fakeReportStore, users *fakeUserDirectory) *ReportService {
	cfg := &config.Config{Reports: config.ReportsConfig{DefaultBinCapacity: 100}}
	svc := NewReportService(store, users, cfg)
	svc.now = func() time.Time {
		return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	}
	return svc
}

func testUser() (*model.User, *fakeUserDirectory) {
	id := uuid.MustParse("0c6f1a3e-9a51-4f30-b1dd-2a8e8f1c9d01")
	user := &model.User{ID: id, Username: "Nimal", Email: "nimal@example.com"}
	return user, &fakeUserDirectory{users: map[uuid.UUID]*model.User{id: user}}
}

func TestUserSummaryRoundsPerCategoryAndTotals(t *testing.T) {
	user, users := testUser()
	last := time.Date(2024, 2, 10, 8, 15, 30, 0, time.UTC)
	store := &fakeReportStore{
		categorySummaries: []model.CategoryAgg{
			{Category: "Food", TotalWeight: 5, Count: 1, LastDepositAt: &last},
			{Category: "Plastic", TotalWeight: 12.350000000000001, Count: 2, LastDepositAt: &last},
		},
	}
	svc := newTestReportService(store, users)

	report, err := svc.UserSummary(context.Background(), SummaryInput{
		Requester: model.CreatorRefFromID(user.ID),
		StartDate: "2024-02-01",
		EndDate:   "2024-02-29",
	})
	require.NoError(t, err)

	require.Len(t, report.Summary, 2)
	assert.Equal(t, "Food", report.Summary[0].Category)
	assert.Equal(t, "Plastic", report.Summary[1].Category)
	assert.Equal(t, 12.35, report.Summary[1].TotalWeight)
	assert.Equal(t, 17.35, report.Totals.TotalWeight)
	assert.Equal(t, int64(3), report.Totals.Count)
	require.NotNil(t, report.Totals.LastDepositAt)
	assert.Equal(t, "2024-02-10T08:15:30.000Z", *report.Totals.LastDepositAt)

	require.NotNil(t, report.Range)
	assert.Equal(t, "2024-02-01T00:00:00.000Z", report.Range.Start)
	assert.Equal(t, "2024-02-29T23:59:59.999Z", report.Range.End)
}

func TestUserSummaryNoDepositsReturnsEmptyReport(t *testing.T) {
	user, users := testUser()
	store := &fakeReportStore{}
	svc := newTestReportService(store, users)

	report, err := svc.UserSummary(context.Background(), SummaryInput{
		Requester: model.CreatorRefFromID(user.ID),
	})
	require.NoError(t, err)

	assert.Nil(t, report.Range)
	assert.Empty(t, report.Summary)
	assert.Zero(t, report.Totals.TotalWeight)
	assert.Zero(t, report.Totals.Count)
	assert.Nil(t, report.Totals.LastDepositAt)
	assert.Equal(t, user.ID, report.User.ID)
}

func TestUserSummaryValidation(t *testing.T) {
	user, users := testUser()
	requester := model.CreatorRefFromID(user.ID)

	tests := []struct {
		name    string
		input   SummaryInput
		wantErr error
	}{
		{"missing identity", SummaryInput{}, ErrUnauthenticated},
		{"malformed userId", SummaryInput{Requester: requester, UserID: "not-a-uuid"}, ErrInvalidIdentifier},
		{"bad startDate", SummaryInput{Requester: requester, StartDate: "02-01-2024"}, ErrInvalidDate},
		{"bad endDate", SummaryInput{Requester: requester, StartDate: "2024-01-01", EndDate: "tomorrow"}, ErrInvalidDate},
		{"inverted range", SummaryInput{Requester: requester, StartDate: "2024-02-01", EndDate: "2024-01-01"}, ErrInvalidRange},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestReportService(&fakeReportStore{}, users)
			_, err := svc.UserSummary(context.Background(), tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUserSummaryUnknownUser(t *testing.T) {
	_, users := testUser()
	svc := newTestReportService(&fakeReportStore{}, users)

	_, err := svc.UserSummary(context.Background(), SummaryInput{
		Requester: model.CreatorRefFromID(uuid.MustParse("99999999-9999-4999-8999-999999999999")),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserSummaryMatchesLegacyCreatorSpelling(t *testing.T) {
	user, users := testUser()
	store := &fakeReportStore{}
	svc := newTestReportService(store, users)

	upper := "0C6F1A3E-9A51-4F30-B1DD-2A8E8F1C9D01"
	_, err := svc.UserSummary(context.Background(), SummaryInput{
		Requester: model.CreatorRefFromID(user.ID),
		UserID:    upper,
	})
	require.NoError(t, err)
	assert.Contains(t, store.lastCreatorForms, user.ID.String())
	assert.Contains(t, store.lastCreatorForms, upper)
}

func TestUserSummarySortsCategoriesAscending(t *testing.T) {
	user, users := testUser()
	store := &fakeReportStore{
		categorySummaries: []model.CategoryAgg{
			{Category: "Plastic", TotalWeight: 2, Count: 1},
			{Category: "Food", TotalWeight: 5, Count: 2},
			{Category: "Paper", TotalWeight: 1, Count: 1},
		},
	}
	svc := newTestReportService(store, users)

	report, err := svc.UserSummary(context.Background(), SummaryInput{
		Requester: model.CreatorRefFromID(user.ID),
		StartDate: "2024-02-01",
		EndDate:   "2024-02-29",
	})
	require.NoError(t, err)

	require.Len(t, report.Summary, 3)
	assert.Equal(t, "Food", report.Summary[0].Category)
	assert.Equal(t, "Paper", report.Summary[1].Category)
	assert.Equal(t, "Plastic", report.Summary[2].Category)
}

func TestUserSummaryIsIdempotent(t *testing.T) {
	user, users := testUser()
	last := time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)
	store := &fakeReportStore{
		categorySummaries: []model.CategoryAgg{
			{Category: "Paper", TotalWeight: 3.333, Count: 4, LastDepositAt: &last},
		},
	}
	svc := newTestReportService(store, users)
	input := SummaryInput{
		Requester: model.CreatorRefFromID(user.ID),
		StartDate: "2024-02-01",
		EndDate:   "2024-02-29",
	}

	first, err := svc.UserSummary(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.UserSummary(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTrendFillsGapsAscending(t *testing.T) {
	user, users := testUser()
	store := &fakeReportStore{
		dailyCategory: []model.DayCategoryAgg{
			{Day: "2024-01-02", Category: "Plastic", TotalWeight: 4.5, Count: 2},
			{Day: "2024-01-04", Category: "Food", TotalWeight: 1.25, Count: 1},
			{Day: "2024-01-04", Category: "Plastic", TotalWeight: 2, Count: 1},
		},
	}
	svc := newTestReportService(store, users)

	report, err := svc.Trend(context.Background(), TrendInput{
		Requester: model.CreatorRefFromID(user.ID),
		StartDate: "2024-01-01",
		EndDate:   "2024-01-05",
	})
	require.NoError(t, err)

	require.Len(t, report.Trend, 5)
	for i, bucket := range report.Trend {
		expected := time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		assert.Equal(t, expected, bucket.Date)
	}

	assert.Empty(t, report.Trend[0].Categories)
	assert.Zero(t, report.Trend[0].TotalWeight)
	assert.Equal(t, 4.5, report.Trend[1].TotalWeight)
	assert.Equal(t, int64(2), report.Trend[1].Count)
	assert.Len(t, report.Trend[3].Categories, 2)
	assert.Equal(t, 3.25, report.Trend[3].TotalWeight)
	assert.Empty(t, report.Trend[4].Categories)
}

func TestTrendDefaultsToTrailingThirtyDays(t *testing.T) {
	user, users := testUser()
	svc := newTestReportService(&fakeReportStore{}, users)

	report, err := svc.Trend(context.Background(), TrendInput{
		Requester: model.CreatorRefFromID(user.ID),
	})
	require.NoError(t, err)

	assert.Len(t, report.Trend, 30)
	assert.Equal(t, "2024-02-15", report.StartDate)
	assert.Equal(t, "2024-03-15", report.EndDate)
	assert.Equal(t, "2024-02-15", report.Trend[0].Date)
	assert.Equal(t, "2024-03-15", report.Trend[29].Date)
}

func TestTrendInvertedRange(t *testing.T) {
	user, users := testUser()
	svc := newTestReportService(&fakeReportStore{}, users)

	_, err := svc.Trend(context.Background(), TrendInput{
		Requester: model.CreatorRefFromID(user.ID),
		StartDate: "2024-02-01",
		EndDate:   "2024-01-01",
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestBinFillLevels(t *testing.T) {
	name := "Yard bin"
	capacity150 := 150.0
	capacity120 := 120.0
	store := &fakeReportStore{
		binLoads: []model.BinLoadAgg{
			{BinID: uuid.MustParse("11111111-1111-4111-8111-111111111111"), BinName: &name, Capacity: &capacity150, TotalWeight: 40, Deposits: 3},
			{BinID: uuid.MustParse("22222222-2222-4222-8222-222222222222"), Capacity: &capacity120, TotalWeight: 90, Deposits: 5},
		},
	}
	_, users := testUser()
	svc := newTestReportService(store, users)

	report, err := svc.BinFillLevels(context.Background(), BinFillInput{})
	require.NoError(t, err)

	require.Len(t, report.Bins, 2)
	assert.Equal(t, 75.0, report.Bins[0].PercentFilled)
	assert.Equal(t, 26.67, report.Bins[1].PercentFilled)
	assert.Equal(t, 130.0, report.Overall.TotalWeight)
	assert.Equal(t, 270.0, report.Overall.TotalCapacity)
	assert.Equal(t, 48.15, report.Overall.PercentFilled)
}

func TestBinFillLevelsClampsAndDefaultsCapacity(t *testing.T) {
	overCapacity := 50.0
	store := &fakeReportStore{
		binLoads: []model.BinLoadAgg{
			{BinID: uuid.MustParse("33333333-3333-4333-8333-333333333333"), Capacity: &overCapacity, TotalWeight: 80, Deposits: 2},
			{BinID: uuid.MustParse("44444444-4444-4444-8444-444444444444"), TotalWeight: 30, Deposits: 1},
		},
	}
	_, users := testUser()
	svc := newTestReportService(store, users)

	report, err := svc.BinFillLevels(context.Background(), BinFillInput{})
	require.NoError(t, err)

	require.Len(t, report.Bins, 2)
	assert.Equal(t, 100.0, report.Bins[0].PercentFilled)
	assert.Equal(t, 100.0, report.Bins[1].Capacity)
	assert.Equal(t, 30.0, report.Bins[1].PercentFilled)
}

func TestBinFillLevelsRoundsCapacity(t *testing.T) {
	fractional := 120.555
	store := &fakeReportStore{
		binLoads: []model.BinLoadAgg{
			{BinID: uuid.MustParse("55555555-5555-4555-8555-555555555555"), Capacity: &fractional, TotalWeight: 60, Deposits: 2},
		},
	}
	_, users := testUser()
	svc := newTestReportService(store, users)

	report, err := svc.BinFillLevels(context.Background(), BinFillInput{})
	require.NoError(t, err)

	require.Len(t, report.Bins, 1)
	assert.Equal(t, 120.56, report.Bins[0].Capacity)
	assert.Equal(t, 49.77, report.Bins[0].PercentFilled)
	assert.Equal(t, 120.56, report.Overall.TotalCapacity)
}

func TestBinFillLevelsRejectsMalformedUserFilter(t *testing.T) {
	_, users := testUser()
	svc := newTestReportService(&fakeReportStore{}, users)

	_, err := svc.BinFillLevels(context.Background(), BinFillInput{UserID: "garbage"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestRevenueByCategoryKeepsFirstSeenCurrency(t *testing.T) {
	store := &fakeReportStore{
		revenueRows: []model.RevenueRow{
			{Category: "Plastic", Price: 100, Currency: "LKR"},
			{Category: "Plastic", Price: 50.567, Currency: "USD"},
			{Category: "Food", Price: 10, Currency: "USD"},
		},
	}
	_, users := testUser()
	svc := newTestReportService(store, users)

	totals, err := svc.RevenueByCategory(context.Background())
	require.NoError(t, err)

	require.Len(t, totals, 2)
	assert.Equal(t, "Plastic", totals[0].Category)
	assert.Equal(t, "LKR", totals[0].Currency)
	assert.Equal(t, 150.57, totals[0].TotalRevenue)
	assert.Equal(t, int64(2), totals[0].Count)
	assert.Equal(t, "Food", totals[1].Category)
	assert.Equal(t, "USD", totals[1].Currency)
}

func TestMonthlyTotalsCarryMonthNames(t *testing.T) {
	store := &fakeReportStore{
		monthlyTotals: []model.MonthAgg{
			{Year: 2023, Month: 12, TotalWeight: 9.006, Count: 3},
			{Year: 2024, Month: 1, TotalWeight: 2, Count: 1},
		},
	}
	_, users := testUser()
	svc := newTestReportService(store, users)

	totals, err := svc.DepositMonthlyTotals(context.Background())
	require.NoError(t, err)

	require.Len(t, totals, 2)
	assert.Equal(t, "December", totals[0].MonthName)
	assert.Equal(t, 9.01, totals[0].TotalWeight)
	assert.Equal(t, "January", totals[1].MonthName)
}

func TestRequestDailyTotalsBucketsByDay(t *testing.T) {
	store := &fakeReportStore{
		requestDates: []model.RequestDateRow{
			{DateAndTime: "2024-01-10T09:00:00Z"},
			{DateAndTime: "2024-01-10 14:30"},
			{DateAndTime: "2024-01-11"},
		},
	}
	_, users := testUser()
	svc := newTestReportService(store, users)

	totals, err := svc.RequestDailyTotals(context.Background())
	require.NoError(t, err)

	require.Len(t, totals, 2)
	assert.Equal(t, "2024-01-10", totals[0].Date)
	assert.Equal(t, int64(2), totals[0].Count)
	assert.Equal(t, "2024-01-11", totals[1].Date)
	assert.Equal(t, int64(1), totals[1].Count)
}

func TestRequestDailyTotalsFailsOnMalformedDate(t *testing.T) {
	store := &fakeReportStore{
		requestDates: []model.RequestDateRow{
			{DateAndTime: "2024-01-10"},
			{DateAndTime: "next tuesday"},
		},
	}
	_, users := testUser()
	svc := newTestReportService(store, users)

	_, err := svc.RequestDailyTotals(context.Background())
	assert.ErrorIs(t, err, ErrStoreValidation)
}

func TestStoreOutageMapsToUnavailable(t *testing.T) {
	_, users := testUser()
	store := &fakeReportStore{err: errors.New("dial tcp 127.0.0.1:5432: connection refused")}
	svc := newTestReportService(store, users)

	_, err := svc.CategoryBreakdown(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
