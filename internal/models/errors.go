package models

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Master budget errors
var (
	ErrMasterBudgetNotUnique          = errors.New("a master budget for this company and fiscal year already exists")
	ErrMasterBudgetDepartmentRepeated = errors.New("each cost center must appear only once in a master budget")
	ErrMasterBudgetTotalExceeded      = errors.New("the sum of the department budgets must not be greater than the total budget")
	ErrNoMasterBudget                 = errors.New("no master budget found")
)

// Budget errors
var (
	ErrBudgetAccountRepeated   = errors.New("an account must appear only once in a budget")
	ErrBudgetAllocatedExceeded = errors.New("the sum of the account budgets must not be greater than the allocated budget")
	ErrBudgetAlreadySubmitted  = errors.New("a submitted budget already exists for this company, fiscal year and cost center. Please edit the existing budget")
	ErrBudgetNotSubmitted      = errors.New("only submitted budgets can be reallocated")
	ErrAmountNegative          = errors.New("budget amounts must not be negative")
)

// Monthly distribution and reallocation errors
var (
	ErrMonthlyDistributionExists = errors.New("a monthly distribution for this fiscal year, cost center and account already exists")
	ErrDistributionNameTooLong   = errors.New("fiscal year, cost center and account are too long for a monthly distribution name")
	ErrMasterBudgetLimitExceeded = errors.New("budget limit exceeded")
	ErrNewBudgetNotSet           = errors.New("the new budget must be set")
)

// isNotFound reports if err means that no record matched the query.
func isNotFound(err error) bool {
	return errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
