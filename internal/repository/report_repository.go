package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) CategoryTotals(ctx context.Context) ([]model.CategoryTotal, error) {
	var rows []model.CategoryTotal
	err := r.db.WithContext(ctx).
		Table("garbage g").
		Select(`g.garbage_category AS category,
			COALESCE(SUM(g.waste_weight), 0) AS total_weight,
			COUNT(*) AS count`).
		Group("g.garbage_category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) StatusTotals(ctx context.Context) ([]model.StatusTotal, error) {
	var rows []model.StatusTotal
	err := r.db.WithContext(ctx).
		Table("garbage g").
		Select(`g.status AS status,
			COALESCE(SUM(g.waste_weight), 0) AS total_weight,
			COUNT(*) AS count`).
		Group("g.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) BinTypeTotals(ctx context.Context) ([]model.BinTypeTotal, error) {
	var rows []model.BinTypeTotal
	err := r.db.WithContext(ctx).
		Table("garbage g").
		Select(`b.bin_type AS bin_type,
			COALESCE(SUM(g.waste_weight), 0) AS total_weight,
			COUNT(*) AS count`).
		Joins("JOIN waste_bins b ON b.id = g.bin_id").
		Group("b.bin_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RevenueRows returns priced requests joined to their deposit's category in
// insertion order, so the caller can keep first-seen currency per category.
func (r *ReportRepository) RevenueRows(ctx context.Context) ([]model.RevenueRow, error) {
	var rows []model.RevenueRow
	err := r.db.WithContext(ctx).
		Table("garbage_requests gr").
		Select(`g.garbage_category AS category,
			gr.price AS price,
			gr.currency AS currency`).
		Joins("JOIN garbage g ON g.id = gr.garbage_id").
		Order("gr.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) DailyTotals(ctx context.Context) ([]model.DayAgg, error) {
	var rows []model.DayAgg
	err := r.db.WithContext(ctx).
		Table("garbage g").
		Select(`to_char(g.created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
			COALESCE(SUM(g.waste_weight), 0) AS total_weight,
			COUNT(*) AS count`).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) MonthlyTotals(ctx context.Context) ([]model.MonthAgg, error) {
	var rows []model.MonthAgg
	err := r.db.WithContext(ctx).
		Table("garbage g").
		Select(`EXTRACT(YEAR FROM g.created_at AT TIME ZONE 'UTC')::int AS year,
			EXTRACT(MONTH FROM g.created_at AT TIME ZONE 'UTC')::int AS month,
			COALESCE(SUM(g.waste_weight), 0) AS total_weight,
			COUNT(*) AS count`).
		Group("year, month").
		Order("year ASC, month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RequestDates returns the raw date_and_time strings of every collection
// request. Parsing happens in the service; one malformed entry fails the
// whole aggregation.
func (r *ReportRepository) RequestDates(ctx context.Context) ([]model.RequestDateRow, error) {
	var rows []model.RequestDateRow
	err := r.db.WithContext(ctx).
		Table("garbage_requests gr").
		Select("gr.date_and_time AS date_and_time").
		Order("gr.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) EarliestDepositAt(ctx context.Context, creatorForms []string) (*time.Time, error) {
	var row struct {
		CreatedAt *time.Time
	}
	err := r.db.WithContext(ctx).
		Table("garbage g").
		Select("MIN(g.created_at) AS created_at").
		Where("g.created_by IN ?", creatorForms).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return row.CreatedAt, nil
}

func (r *ReportRepository) CategorySummaries(
	ctx context.Context,
	creatorForms []string,
	from, to time.Time,
	category string,
) ([]model.CategoryAgg, error) {
	query := r.db.WithContext(ctx).
		Table("garbage g").
		Select(`g.garbage_category AS category,
			COALESCE(SUM(g.waste_weight), 0) AS total_weight,
			COUNT(*) AS count,
			MAX(g.created_at) AS last_deposit_at`).
		Where("g.created_by IN ?", creatorForms).
		Where("g.created_at BETWEEN ? AND ?", from, to).
		Group("g.garbage_category").
		Order("g.garbage_category ASC")

	if category != "" {
		query = query.Where("g.garbage_category = ?", category)
	}

	var rows []model.CategoryAgg
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) DailyCategoryTotals(
	ctx context.Context,
	creatorForms []string,
	from, to time.Time,
	category string,
) ([]model.DayCategoryAgg, error) {
	query := r.db.WithContext(ctx).
		Table("garbage g").
		Select(`to_char(g.created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
			g.garbage_category AS category,
			COALESCE(SUM(g.waste_weight), 0) AS total_weight,
			COUNT(*) AS count`).
		Where("g.created_by IN ?", creatorForms).
		Where("g.created_at BETWEEN ? AND ?", from, to).
		Group("day, g.garbage_category").
		Order("day ASC, g.garbage_category ASC")

	if category != "" {
		query = query.Where("g.garbage_category = ?", category)
	}

	var rows []model.DayCategoryAgg
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// BinLoads groups deposits per bin and left-joins the bin for name and
// capacity, so deposits against a deleted bin still appear.
func (r *ReportRepository) BinLoads(ctx context.Context, creatorForms []string, category string) ([]model.BinLoadAgg, error) {
	query := r.db.WithContext(ctx).
		Table("garbage g").
		Select(`g.bin_id AS bin_id,
			b.name AS bin_name,
			b.capacity AS capacity,
			COALESCE(SUM(g.waste_weight), 0) AS total_weight,
			COUNT(*) AS deposits`).
		Joins("LEFT JOIN waste_bins b ON b.id = g.bin_id").
		Group("g.bin_id, b.name, b.capacity")

	if len(creatorForms) > 0 {
		query = query.Where("g.created_by IN ?", creatorForms)
	}
	if category != "" {
		query = query.Where("g.garbage_category = ?", category)
	}

	var rows []model.BinLoadAgg
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
