package delimfix

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	// Registers the "sqlite" database/sql driver backing the in-memory view.
	_ "modernc.org/sqlite"

	"github.com/delimfix/delimfix/domain/model"
)

// sqliteDriverName is the driver name modernc.org/sqlite registers.
const sqliteDriverName = "sqlite"

// openDatabase creates an in-memory SQLite database holding the table,
// with column types taken from inference. REAL columns are stored as
// converted floats so SQL arithmetic and comparisons work even though
// the source wrote them with a locale decimal mark.
func openDatabase(ctx context.Context, table *model.Table) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("delimfix: open in-memory database: %w", err)
	}

	if err := loadTable(ctx, db, table); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, errors.Join(err, fmt.Errorf("failed to close database: %w", closeErr))
		}
		return nil, err
	}
	return db, nil
}

// loadTable creates the schema and inserts all rows in one transaction.
func loadTable(ctx context.Context, db *sql.DB, table *model.Table) error {
	if _, err := db.ExecContext(ctx, buildCreateTableQuery(table)); err != nil {
		return fmt.Errorf("delimfix: create table %s: %w", table.Name(), err)
	}
	if len(table.Records()) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delimfix: begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, buildInsertQuery(table))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delimfix: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, record := range table.Records() {
		args, err := recordToArgs(table, record)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("delimfix: row %d of %s: %w", i, table.Name(), err)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("delimfix: insert row %d into %s: %w", i, table.Name(), err)
		}
	}
	return tx.Commit()
}

// buildCreateTableQuery constructs a CREATE TABLE query for the given table.
func buildCreateTableQuery(table *model.Table) string {
	columns := make([]string, 0, len(table.ColumnInfo()))
	for _, col := range table.ColumnInfo() {
		columns = append(columns, fmt.Sprintf(`[%s] %s`, col.Name, col.Type.String()))
	}
	return fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS [%s] (%s)`,
		table.Name(),
		strings.Join(columns, ", "),
	)
}

// buildInsertQuery constructs an INSERT query for the given table.
func buildInsertQuery(table *model.Table) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(table.Header())), ", ")
	return fmt.Sprintf(`INSERT INTO [%s] VALUES (%s)`, table.Name(), placeholders)
}

// recordToArgs converts a record's string fields into typed insert
// arguments matching the inferred column types. Empty fields become NULL.
func recordToArgs(table *model.Table, record model.Record) ([]any, error) {
	info := table.ColumnInfo()
	args := make([]any, len(record))
	for i, raw := range record {
		if strings.TrimSpace(raw) == "" {
			args[i] = nil
			continue
		}
		switch info[i].Type {
		case model.ColumnTypeInteger:
			v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", info[i].Name, err)
			}
			args[i] = v
		case model.ColumnTypeReal:
			v, err := table.NumberFormat().ParseFloat(raw)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", info[i].Name, err)
			}
			args[i] = v
		default:
			args[i] = raw
		}
	}
	return args, nil
}
