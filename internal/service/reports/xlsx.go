// Package reports builds downloadable ledger exports for a batch.
package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pticevod/poultry-ledger/internal/domain/activities"
	"github.com/pticevod/poultry-ledger/internal/domain/batches"
)

const sheetName = "Ledger"

// BuildLedgerXLSX renders a batch summary plus its full activity ledger.
// productNames resolves product ids referenced by consumption rows; an
// unknown id falls back to "#<id>".
func BuildLedgerXLSX(b *batches.Batch, acts []activities.Activity, productNames map[int64]string) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(sheet)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	summary := [][]any{
		{"Batch", b.Name},
		{"Breed", b.Breed},
		{"Shed", b.Shed},
		{"Start date", b.StartDate.Format("2006-01-02")},
		{"Status", string(b.Status)},
		{"Initial population", b.InitialPopulation},
		{"Population", b.Population()},
		{"Male / Female / Unsexed", fmt.Sprintf("%d / %d / %d", b.MaleCount, b.FemaleCount, b.UnsexedCount)},
	}
	row := 1
	for _, line := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheetName, cell, &line); err != nil {
			return nil, err
		}
		row++
	}

	row++ // blank line between summary and ledger
	header := []any{"Date", "Type", "Detail", "Notes"}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(sheetName, cell, &header); err != nil {
		return nil, err
	}
	row++

	for _, a := range acts {
		line := []any{
			a.Date.Format("2006-01-02 15:04"),
			string(a.Type),
			describe(a, productNames),
			a.Notes,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheetName, cell, &line); err != nil {
			return nil, err
		}
		row++
	}
	return f, nil
}

func describe(a activities.Activity, productNames map[int64]string) string {
	switch p := a.Payload.(type) {
	case activities.Mortality:
		return fmt.Sprintf("%d %s birds died", p.NumberOfDeaths, p.Sex)
	case activities.StatusSwitch:
		return fmt.Sprintf("status set to %s", p.NewStatus)
	case activities.ProductConsumption:
		name, ok := productNames[p.ProductID]
		if !ok {
			name = fmt.Sprintf("#%d", p.ProductID)
		}
		return fmt.Sprintf("consumed %v %s of %s", p.Quantity, p.Unit, name)
	case activities.WeightMeasurement:
		return fmt.Sprintf("avg weight %v %s over %d birds", p.AverageWeight, p.Unit, p.SampleSize)
	}
	return ""
}
