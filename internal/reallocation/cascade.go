package reallocation

import "github.com/shopspring/decimal"

// Positions in the dependency order. Lookup figures, the new budget and
// derived values come after the identifying fields.
const (
	positionFigures = iota + 5
	positionNewBudget
	positionDerived
)

func position(f Field) int {
	if f == FieldNewBudget {
		return positionNewBudget
	}
	return int(f)
}

// ClearDownstream empties every field that comes strictly after the changed
// field in the dependency order
//
//	company → costCenter → fiscalYear → account → month →
//	lookup figures → newBudget → derived values
//
// It never fails.
func ClearDownstream(r *Record, changed Field) {
	pos := position(changed)

	for _, f := range identifying {
		if position(f) > pos {
			r.clearIdentifying(f)
		}
	}

	if pos < positionFigures {
		r.clearFigures()
	}

	if pos < positionNewBudget {
		r.NewBudget = decimal.NullDecimal{}
	}

	if pos < positionDerived {
		r.clearDerived()
	}
}

func (r *Record) clearIdentifying(f Field) {
	switch f {
	case FieldCompany:
		r.Company = ""
	case FieldCostCenter:
		r.CostCenter = ""
	case FieldFiscalYear:
		r.FiscalYear = ""
	case FieldAccount:
		r.Account = ""
	case FieldMonth:
		r.Month = 0
	}
}
