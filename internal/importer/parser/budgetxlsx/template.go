package budgetxlsx

import (
	"github.com/budget-desk/backend/internal/types"
	"github.com/xuri/excelize/v2"
)

// Template returns an empty budget spreadsheet with one row per account.
func Template(accounts []string) (*excelize.File, error) {
	f := excelize.NewFile()

	err := f.SetSheetName("Sheet1", SheetName)
	if err != nil {
		return nil, err
	}

	header := []interface{}{"Acc Name"}
	for _, m := range types.FiscalMonths() {
		header = append(header, m.String())
	}

	err = f.SetSheetRow(SheetName, "A1", &header)
	if err != nil {
		return nil, err
	}

	for i, account := range accounts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		err = f.SetCellValue(SheetName, cell, account)
		if err != nil {
			return nil, err
		}
	}

	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return nil, err
	}

	err = f.SetColWidth(SheetName, "A", last, 20)
	if err != nil {
		return nil, err
	}

	return f, nil
}
