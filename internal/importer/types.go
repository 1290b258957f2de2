package importer

import (
	"fmt"

	"github.com/budget-desk/backend/internal/models"
	"github.com/budget-desk/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Sheet is a parsed budget spreadsheet.
//
// Cells that could not be parsed are listed in Errors and
// are missing from the amounts of their row.
type Sheet struct {
	Months []types.FiscalMonth // Months in the order of the columns
	Rows   []Row
	Errors []CellError
}

// HasErrors reports if any cell could not be parsed.
func (s Sheet) HasErrors() bool {
	return len(s.Errors) > 0
}

// Row is the budget of one account, split by month.
type Row struct {
	Line    int // Row number in the spreadsheet, starting at 1
	Account string
	Amounts map[types.FiscalMonth]decimal.Decimal
}

// Total returns the annual budget of the row.
func (r Row) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, a := range r.Amounts {
		sum = sum.Add(a)
	}
	return sum
}

// CellError describes a cell that does not contain a valid amount.
type CellError struct {
	Row     int    `json:"row" example:"4"`                        // Row number in the spreadsheet
	Column  int    `json:"column" example:"3"`                     // Column number in the spreadsheet
	Month   string `json:"month" example:"May"`                    // Month of the column
	Account string `json:"account" example:"Travel Expenses - AL"` // Account of the row
	Value   string `json:"value" example:"n/a"`                    // Content of the cell
}

func (e CellError) Error() string {
	return fmt.Sprintf("Row %d, Column %d (%s) for Account '%s': '%s'", e.Row, e.Column, e.Month, e.Account, e.Value)
}

// ParsedResources are the resources to create from an uploaded sheet.
type ParsedResources struct {
	Company    string
	CostCenter string
	FiscalYear string
	Rows       []Row
}

// Result lists what was created by an upload.
type Result struct {
	Distributions        []models.MonthlyDistribution
	Budget               models.Budget // Submitted budget the accounts were added to
	SkippedDistributions []string      // Names of distributions that already existed
	SkippedAccounts      []string      // Accounts that already were in the submitted budget
}
