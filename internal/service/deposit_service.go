package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type DepositStore interface {
	Create(ctx context.Context, deposit *model.Deposit) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Deposit, error)
	List(ctx context.Context) ([]model.DepositDetail, error)
	ListForCreatorSince(ctx context.Context, creatorForms []string, since time.Time) ([]model.DepositDetail, error)
	Update(ctx context.Context, id uuid.UUID, weight float64, binID uuid.UUID, category string, updatedBy string) (*model.Deposit, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.DepositStatus) (*model.Deposit, error)
	Delete(ctx context.Context, id uuid.UUID) (*model.Deposit, error)
}

type DepositService struct {
	deposits DepositStore
	bins     BinStore
	now      func() time.Time
}

func NewDepositService(deposits DepositStore, bins BinStore) *DepositService {
	return &DepositService{deposits: deposits, bins: bins, now: time.Now}
}

type CreateDepositInput struct {
	WasteWeight     float64
	GarbageCategory string
	BinIDOrCode     string
	Creator         model.CreatorRef
}

// Create logs a deposit after checking the target bin still has room. The
// threshold compares the bin's pending load plus the new weight against its
// configured threshold level.
func (s *DepositService) Create(ctx context.Context, input CreateDepositInput) (*model.Deposit, error) {
	if input.Creator.IsZero() {
		return nil, ErrUnauthenticated
	}
	if input.WasteWeight <= 0 {
		return nil, fmt.Errorf("%w: wasteWeight must be positive", ErrInvalidInput)
	}
	category := strings.TrimSpace(input.GarbageCategory)
	if category == "" {
		return nil, fmt.Errorf("%w: garbageCategory is required", ErrInvalidInput)
	}

	bin, err := s.bins.GetByIDOrCode(ctx, strings.TrimSpace(input.BinIDOrCode))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bin", ErrNotFound)
		}
		return nil, storeError(err)
	}

	if bin.ThresholdLevel != nil {
		pending, err := s.bins.PendingWeight(ctx, bin.ID)
		if err != nil {
			return nil, storeError(err)
		}
		if pending+input.WasteWeight > *bin.ThresholdLevel {
			return nil, ErrCapacityExceeded
		}
	}

	deposit := &model.Deposit{
		WasteWeight:     input.WasteWeight,
		GarbageCategory: category,
		BinID:           bin.ID,
		CreatedBy:       input.Creator.String(),
	}
	if err := s.deposits.Create(ctx, deposit); err != nil {
		return nil, storeError(err)
	}
	return deposit, nil
}

func (s *DepositService) List(ctx context.Context) ([]model.DepositDetail, error) {
	rows, err := s.deposits.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return rows, nil
}

// ListToday returns the caller's deposits made since midnight UTC.
func (s *DepositService) ListToday(ctx context.Context, creator model.CreatorRef) ([]model.DepositDetail, error) {
	if creator.IsZero() {
		return nil, ErrUnauthenticated
	}
	t := s.now().UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	rows, err := s.deposits.ListForCreatorSince(ctx, creator.Forms(), midnight)
	if err != nil {
		return nil, storeError(err)
	}
	return rows, nil
}

func (s *DepositService) Get(ctx context.Context, id uuid.UUID) (*model.Deposit, error) {
	deposit, err := s.deposits.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return deposit, nil
}

type UpdateDepositInput struct {
	WasteWeight     float64
	GarbageCategory string
	BinIDOrCode     string
	UpdatedBy       model.CreatorRef
}

func (s *DepositService) Update(ctx context.Context, id uuid.UUID, input UpdateDepositInput) (*model.Deposit, error) {
	if input.WasteWeight <= 0 {
		return nil, fmt.Errorf("%w: wasteWeight must be positive", ErrInvalidInput)
	}
	category := strings.TrimSpace(input.GarbageCategory)
	if category == "" {
		return nil, fmt.Errorf("%w: garbageCategory is required", ErrInvalidInput)
	}
	bin, err := s.bins.GetByIDOrCode(ctx, strings.TrimSpace(input.BinIDOrCode))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bin", ErrNotFound)
		}
		return nil, storeError(err)
	}
	deposit, err := s.deposits.Update(ctx, id, input.WasteWeight, bin.ID, category, input.UpdatedBy.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return deposit, nil
}

func (s *DepositService) Delete(ctx context.Context, id uuid.UUID) (*model.Deposit, error) {
	deposit, err := s.deposits.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return deposit, nil
}
