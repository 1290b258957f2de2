package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var DB *gorm.DB

type BDContext string

const (
	DBContextURL BDContext = "budget-desk-url"
)

// uniqueConstraints maps the sqlite messages for unique constraint
// violations to the errors returned to users.
var uniqueConstraints = map[string]error{
	"UNIQUE constraint failed: master_budgets.company, master_budgets.fiscal_year":                                               ErrMasterBudgetNotUnique,
	"UNIQUE constraint failed: master_budget_departments.master_budget_id, master_budget_departments.cost_center":                ErrMasterBudgetDepartmentRepeated,
	"UNIQUE constraint failed: budget_accounts.budget_id, budget_accounts.account":                                               ErrBudgetAccountRepeated,
	"UNIQUE constraint failed: monthly_distributions.name":                                                                       ErrMonthlyDistributionExists,
	"UNIQUE constraint failed: monthly_distribution_percentages.monthly_distribution_id, monthly_distribution_percentages.month": ErrMonthlyDistributionExists,
}

// Connect opens the SQLite database, migrates the schema and
// registers the error translation callbacks.
func Connect(dsn string) error {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection prevents SQLITE_BUSY errors
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	err = migrate(db)
	if err != nil {
		return err
	}

	callbacks := []struct {
		register func(string, func(*gorm.DB)) error
		name     string
		fn       func(*gorm.DB)
	}{
		{db.Callback().Query().After("*").Register, "budget_desk:after_query", queryCallback},
		{db.Callback().Query().After("*").Register, "budget_desk:after_query_general", generalCallback},
		{db.Callback().Create().After("*").Register, "budget_desk:after_create", createUpdateCallback},
		{db.Callback().Create().After("*").Register, "budget_desk:after_create_general", generalCallback},
		{db.Callback().Update().After("*").Register, "budget_desk:after_update", createUpdateCallback},
		{db.Callback().Update().After("*").Register, "budget_desk:after_update_general", generalCallback},
		{db.Callback().Delete().After("*").Register, "budget_desk:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		err = c.register(c.name, c.fn)
		if err != nil {
			return fmt.Errorf("registering callback %s: %w", c.name, err)
		}
	}

	DB = db
	return nil
}

// queryCallback replaces the generic "no record" error with one
// naming the resource type
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// The table name describes the type of resource
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		match := regexp.MustCompile("ies$")
		name = match.ReplaceAllString(name, "y")
		name = strings.TrimSuffix(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback replaces constraint violations with user friendly errors
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	for message, err := range uniqueConstraints {
		if strings.Contains(db.Error.Error(), message) {
			db.Error = err
			return
		}
	}
}

// generalCallback handles errors we cannot provide a helpful message for.
//
// The error is logged and users get a general message.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in database/sql
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(
		MasterBudget{},
		MasterBudgetDepartment{},
		Budget{},
		BudgetAccount{},
		MonthlyDistribution{},
		MonthlyDistributionPercentage{},
		BudgetReallocation{},
	)
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
