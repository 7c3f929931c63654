package excel

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

func TestGenerateSummaryWorkbook(t *testing.T) {
	last := "2024-02-10T08:15:30.000Z"
	report := model.UserSummaryReport{
		User: model.UserInfo{ID: uuid.New(), Name: "Nimal", Email: "nimal@example.com"},
		Range: &model.DateRange{
			Start: "2024-02-01T00:00:00.000Z",
			End:   "2024-02-29T23:59:59.999Z",
		},
		Totals: model.SummaryTotals{TotalWeight: 17.35, Count: 3, LastDepositAt: &last},
		Summary: []model.CategorySummary{
			{Category: "Food", TotalWeight: 5, Count: 1, LastDepositAt: &last},
			{Category: "Plastic", TotalWeight: 12.35, Count: 2, LastDepositAt: &last},
		},
	}

	content, err := NewGenerator().Generate(report)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	name, err := file.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Nimal", name)

	category, err := file.GetCellValue("Summary", "A10")
	require.NoError(t, err)
	assert.Equal(t, "Food", category)
}

func TestGenerateEmptySummary(t *testing.T) {
	report := model.UserSummaryReport{
		User:    model.UserInfo{ID: uuid.New(), Name: "Kamala", Email: "kamala@example.com"},
		Summary: []model.CategorySummary{},
	}
	content, err := NewGenerator().Generate(report)
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}
