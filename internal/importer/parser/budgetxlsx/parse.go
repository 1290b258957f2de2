// Package budgetxlsx reads and writes budget spreadsheets.
//
// The first row holds "Acc Name" followed by month names. Every following row
// holds an account name in the first column and the budget of each month in the
// column of that month.
package budgetxlsx

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/budget-desk/backend/internal/importer"
	"github.com/budget-desk/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the sheet in generated templates.
const SheetName = "Budget Format"

var (
	ErrInvalidFile   = errors.New("unable to read the spreadsheet, please upload a valid .xlsx file")
	ErrInvalidFormat = errors.New("invalid budget format, the file must contain months and values")
)

// Parse reads the first sheet of a budget spreadsheet.
//
// Empty cells are zero. Cells that do not contain a non-negative number are
// reported in the Errors of the sheet.
func Parse(r io.Reader) (importer.Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return importer.Sheet{}, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return importer.Sheet{}, ErrInvalidFormat
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return importer.Sheet{}, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	if len(rows) == 0 || len(rows[0]) < 2 {
		return importer.Sheet{}, ErrInvalidFormat
	}

	months, err := parseHeader(rows[0])
	if err != nil {
		return importer.Sheet{}, err
	}

	sheet := importer.Sheet{Months: months}

	for i, cells := range rows[1:] {
		line := i + 2

		if len(cells) == 0 {
			continue
		}

		account := strings.TrimSpace(cells[0])
		if account == "" {
			continue
		}

		row := importer.Row{
			Line:    line,
			Account: account,
			Amounts: make(map[types.FiscalMonth]decimal.Decimal, len(months)),
		}

		for j, month := range months {
			column := j + 2

			value := ""
			if column-1 < len(cells) {
				value = strings.TrimSpace(cells[column-1])
			}

			if value == "" {
				row.Amounts[month] = decimal.Zero
				continue
			}

			amount, err := decimal.NewFromString(value)
			if err != nil || amount.IsNegative() {
				sheet.Errors = append(sheet.Errors, importer.CellError{
					Row:     line,
					Column:  column,
					Month:   month.String(),
					Account: account,
					Value:   value,
				})
				continue
			}

			row.Amounts[month] = amount
		}

		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet, nil
}

// parseHeader returns the months of the header row. The first column is the
// account column and is not checked.
func parseHeader(header []string) ([]types.FiscalMonth, error) {
	months := make([]types.FiscalMonth, 0, len(header)-1)
	seen := make(map[types.FiscalMonth]bool, len(header)-1)

	for i, name := range header[1:] {
		month, err := types.ParseFiscalMonth(strings.TrimSpace(name))
		if err != nil || month.IsZero() {
			return nil, fmt.Errorf("%w: the header of column %d is '%s', not a month", ErrInvalidFormat, i+2, name)
		}

		if seen[month] {
			return nil, fmt.Errorf("%w: the month %s appears more than once", ErrInvalidFormat, month)
		}
		seen[month] = true

		months = append(months, month)
	}

	return months, nil
}
