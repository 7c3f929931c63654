package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type BinStore interface {
	Create(ctx context.Context, bin *model.WasteBin) error
	List(ctx context.Context) ([]model.WasteBin, error)
	ListByOwnerAndType(ctx context.Context, owner uuid.UUID, binType model.BinType) ([]model.WasteBin, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.WasteBin, error)
	GetByIDOrCode(ctx context.Context, raw string) (*model.WasteBin, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.WasteBin, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ResetLevel(ctx context.Context, id uuid.UUID) (*model.WasteBin, error)
	MarkPurchased(ctx context.Context, id uuid.UUID, owner uuid.UUID, latitude, longitude float64) (*model.WasteBin, error)
	PendingWeight(ctx context.Context, binID uuid.UUID) (float64, error)
}

type BinService struct {
	bins BinStore
	rand *rand.Rand
}

func NewBinService(bins BinStore, rng *rand.Rand) *BinService {
	return &BinService{bins: bins, rand: rng}
}

var binCodePrefixes = map[model.BinType]string{
	model.BinTypePlastic: "PL",
	model.BinTypeFood:    "FD",
	model.BinTypePaper:   "PP",
}

func (s *BinService) newBinCode(binType model.BinType) string {
	prefix, ok := binCodePrefixes[binType]
	if !ok {
		prefix = "WB"
	}
	return fmt.Sprintf("%s-%04d", prefix, s.rand.Intn(10000))
}

type CreateBinInput struct {
	Name           string
	Location       string
	Latitude       *float64
	Longitude      *float64
	ThresholdLevel *float64
	Capacity       *float64
	BinType        string
}

func (s *BinService) Create(ctx context.Context, input CreateBinInput) (*model.WasteBin, error) {
	binType := model.BinType(strings.TrimSpace(input.BinType))
	switch binType {
	case model.BinTypeFood, model.BinTypePaper, model.BinTypePlastic:
	default:
		return nil, fmt.Errorf("%w: binType must be Food, Paper or Plastic", ErrInvalidInput)
	}
	if input.Capacity != nil && *input.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}

	bin := &model.WasteBin{
		BinCode:        s.newBinCode(binType),
		Location:       input.Location,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		ThresholdLevel: input.ThresholdLevel,
		Capacity:       input.Capacity,
		BinType:        binType,
		Availability:   true,
		Status:         model.BinStatusNotPurchased,
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		bin.Name = &name
	}
	if err := s.bins.Create(ctx, bin); err != nil {
		return nil, storeError(err)
	}
	return bin, nil
}

func (s *BinService) List(ctx context.Context) ([]model.WasteBin, error) {
	bins, err := s.bins.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return bins, nil
}

func (s *BinService) ListForOwner(ctx context.Context, owner uuid.UUID, binType string) ([]model.WasteBin, error) {
	bt := model.BinType(binType)
	switch bt {
	case model.BinTypeFood, model.BinTypePaper, model.BinTypePlastic:
	default:
		return nil, fmt.Errorf("%w: binType", ErrInvalidFilter)
	}
	bins, err := s.bins.ListByOwnerAndType(ctx, owner, bt)
	if err != nil {
		return nil, storeError(err)
	}
	return bins, nil
}

// Get resolves a bin by row id or human-facing bin code.
func (s *BinService) Get(ctx context.Context, idOrCode string) (*model.WasteBin, error) {
	idOrCode = strings.TrimSpace(idOrCode)
	if idOrCode == "" {
		return nil, fmt.Errorf("%w: bin identifier is required", ErrInvalidInput)
	}
	bin, err := s.bins.GetByIDOrCode(ctx, idOrCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return bin, nil
}

type UpdateBinInput struct {
	Name           *string
	Location       *string
	Latitude       *float64
	Longitude      *float64
	ThresholdLevel *float64
	Capacity       *float64
	Status         *string
}

func (s *BinService) Update(ctx context.Context, id uuid.UUID, input UpdateBinInput) (*model.WasteBin, error) {
	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.Latitude != nil {
		updates["latitude"] = *input.Latitude
	}
	if input.Longitude != nil {
		updates["longitude"] = *input.Longitude
	}
	if input.ThresholdLevel != nil {
		updates["threshold_level"] = *input.ThresholdLevel
	}
	if input.Capacity != nil {
		if *input.Capacity <= 0 {
			return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
		}
		updates["capacity"] = *input.Capacity
	}
	if input.Status != nil {
		status := model.BinStatus(*input.Status)
		switch status {
		case model.BinStatusNotPurchased, model.BinStatusPurchased, model.BinStatusMaintenance:
		default:
			return nil, fmt.Errorf("%w: status", ErrInvalidInput)
		}
		updates["status"] = status
	}
	bin, err := s.bins.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return bin, nil
}

func (s *BinService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.bins.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeError(err)
	}
	return nil
}

func (s *BinService) ResetLevel(ctx context.Context, id uuid.UUID) (*model.WasteBin, error) {
	bin, err := s.bins.ResetLevel(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return bin, nil
}
