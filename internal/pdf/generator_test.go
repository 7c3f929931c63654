package pdf

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

func TestGenerateSummaryPDF(t *testing.T) {
	last := "2024-02-10T08:15:30.000Z"
	report := model.UserSummaryReport{
		User: model.UserInfo{ID: uuid.New(), Name: "Nimal", Email: "nimal@example.com"},
		Range: &model.DateRange{
			Start: "2024-02-01T00:00:00.000Z",
			End:   "2024-02-29T23:59:59.999Z",
		},
		Totals: model.SummaryTotals{TotalWeight: 17.35, Count: 3, LastDepositAt: &last},
		Summary: []model.CategorySummary{
			{Category: "Plastic", TotalWeight: 12.35, Count: 2, LastDepositAt: &last},
		},
	}

	content, err := NewGenerator().Generate(report)
	require.NoError(t, err)
	assert.NotEmpty(t, content)
	assert.Equal(t, "%PDF", string(content[:4]))
}

func TestGenerateEmptySummaryPDF(t *testing.T) {
	report := model.UserSummaryReport{
		User:    model.UserInfo{ID: uuid.New(), Name: "Kamala", Email: "kamala@example.com"},
		Summary: []model.CategorySummary{},
	}
	content, err := NewGenerator().Generate(report)
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}
