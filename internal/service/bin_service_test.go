package service

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

func newTestBinService(bins *fakeBinStore) *BinService {
	return NewBinService(bins, rand.New(rand.NewSource(1)))
}

func TestCreateBinAssignsPrefixedCode(t *testing.T) {
	tests := []struct {
		binType string
		prefix  string
	}{
		{"Plastic", "PL-"},
		{"Food", "FD-"},
		{"Paper", "PP-"},
	}
	for _, tc := range tests {
		t.Run(tc.binType, func(t *testing.T) {
			bins := &fakeBinStore{}
			svc := newTestBinService(bins)

			bin, err := svc.Create(context.Background(), CreateBinInput{BinType: tc.binType})
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(bin.BinCode, tc.prefix), "code %q", bin.BinCode)
			assert.Len(t, bin.BinCode, 7)
			assert.Equal(t, model.BinStatusNotPurchased, bin.Status)
			assert.True(t, bin.Availability)
		})
	}
}

func TestCreateBinRejectsUnknownType(t *testing.T) {
	svc := newTestBinService(&fakeBinStore{})

	_, err := svc.Create(context.Background(), CreateBinInput{BinType: "Metal"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateBinRejectsNonPositiveCapacity(t *testing.T) {
	svc := newTestBinService(&fakeBinStore{})
	capacity := -5.0

	_, err := svc.Create(context.Background(), CreateBinInput{BinType: "Food", Capacity: &capacity})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetBinByCode(t *testing.T) {
	bin, bins := thresholdBin(20)
	svc := newTestBinService(bins)

	found, err := svc.Get(context.Background(), bin.BinCode)
	require.NoError(t, err)
	assert.Equal(t, bin.ID, found.ID)

	_, err = svc.Get(context.Background(), "PL-0000")
	assert.ErrorIs(t, err, ErrNotFound)
}
