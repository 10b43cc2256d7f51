package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pticevod/poultry-ledger/internal/domain/activities"
	"github.com/pticevod/poultry-ledger/internal/domain/batches"
	"github.com/pticevod/poultry-ledger/internal/domain/units"
)

func TestBuildLedgerXLSX(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	b := &batches.Batch{
		ID:                7,
		Name:              "broilers-2026-04",
		Breed:             "Cobb 500",
		StartDate:         start,
		Status:            batches.StatusActive,
		InitialPopulation: 200,
		MaleCount:         70,
		FemaleCount:       100,
	}
	acts := []activities.Activity{
		{
			BatchID: 7,
			Type:    activities.TypeProductConsumption,
			Date:    start.AddDate(0, 0, 10),
			Payload: activities.ProductConsumption{ProductID: 3, Quantity: 2000, Unit: units.Gram},
		},
		{
			BatchID: 7,
			Type:    activities.TypeMortality,
			Date:    start.AddDate(0, 0, 5),
			Notes:   "heat stress",
			Payload: activities.Mortality{NumberOfDeaths: 30, Sex: batches.SexMale},
		},
	}

	f, err := BuildLedgerXLSX(b, acts, map[int64]string{3: "starter feed"})
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := f.GetCellValue(sheetName, "B1")
	require.NoError(t, err)
	require.Equal(t, "broilers-2026-04", got)

	got, err = f.GetCellValue(sheetName, "B7")
	require.NoError(t, err)
	require.Equal(t, "170", got)

	// header row sits one blank line below the summary block
	got, err = f.GetCellValue(sheetName, "A10")
	require.NoError(t, err)
	require.Equal(t, "Date", got)

	got, err = f.GetCellValue(sheetName, "C11")
	require.NoError(t, err)
	require.Equal(t, "consumed 2000 g of starter feed", got)

	got, err = f.GetCellValue(sheetName, "C12")
	require.NoError(t, err)
	require.Equal(t, "30 male birds died", got)

	got, err = f.GetCellValue(sheetName, "D12")
	require.NoError(t, err)
	require.Equal(t, "heat stress", got)
}

func TestDescribeFallsBackToProductID(t *testing.T) {
	a := activities.Activity{Payload: activities.ProductConsumption{ProductID: 9, Quantity: 1, Unit: units.Liter}}
	require.Equal(t, "consumed 1 l of #9", describe(a, nil))
}
