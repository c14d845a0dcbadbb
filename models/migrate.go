package models

import (
	"fmt"
	"sort"

	"gorm.io/gorm"
)

// All lists every persisted model in dependency order
func All() []interface{} {
	return []interface{}{
		&User{},
		&BlogPost{},
		&BlogTag{},
		&Comment{},
	}
}

// Migrate creates or updates the tables for every model
func Migrate(db *gorm.DB) error {
	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	if err := migrateDB.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto-migrate models: %w", err)
	}
	return nil
}

// TableDrift describes the columns a table holds that its model does not declare
type TableDrift struct {
	Table   string   `json:"table"`
	Columns []string `json:"columns"`
}

/*
ColumnDrift compares the live schema against the models.

A table that does not exist yet is skipped: it will be created by Migrate.
Only tables with at least one undeclared column are reported.
*/
func ColumnDrift(db *gorm.DB) ([]TableDrift, error) {
	var report []TableDrift

	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		if !db.Migrator().HasTable(table) {
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(table)
		if err != nil {
			return nil, fmt.Errorf("read columns of %s: %w", table, err)
		}

		declared := make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			declared[name] = true
		}

		var extra []string
		for _, col := range columnTypes {
			if !declared[col.Name()] {
				extra = append(extra, col.Name())
			}
		}

		if len(extra) > 0 {
			sort.Strings(extra)
			report = append(report, TableDrift{Table: table, Columns: extra})
		}
	}

	return report, nil
}
