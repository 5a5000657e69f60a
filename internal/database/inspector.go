package database

import (
	"context"
	"database/sql"
	"fmt"
)

// DefaultSampleLimit is the row cap for table previews when the caller
// passes a non-positive limit.
const DefaultSampleLimit = 20

// Column describes one column of a table.
type Column struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

// Table describes one table or view in the catalog, with its columns and
// a best-effort row count (-1 when counting failed, e.g. a broken view).
type Table struct {
	Name     string
	Type     string // "table" or "view"
	Columns  []Column
	RowCount int64
}

// ListTables returns the tables and views in the database in name order,
// recomputed from the catalog on every call.
func (db *DB) ListTables(ctx context.Context) ([]Table, error) {
	if err := db.ready(); err != nil {
		return nil, err
	}

	rows, err := db.sqldb.QueryContext(ctx, `
		SELECT name, type
		FROM sqlite_master
		WHERE type IN ('table', 'view')
		  AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tables []Table
	for rows.Next() {
		var t Table
		if err := rows.Scan(&t.Name, &t.Type); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tables {
		cols, err := db.tableColumns(ctx, tables[i].Name)
		if err != nil {
			return nil, err
		}
		tables[i].Columns = cols
		tables[i].RowCount = db.rowCount(ctx, tables[i].Name)
	}

	return tables, nil
}

// Describe returns the descriptor of a single table or view.
func (db *DB) Describe(ctx context.Context, table string) (*Table, error) {
	if err := db.ready(); err != nil {
		return nil, err
	}
	objType, err := db.catalogType(ctx, table)
	if err != nil {
		return nil, err
	}
	cols, err := db.tableColumns(ctx, table)
	if err != nil {
		return nil, err
	}
	return &Table{
		Name:     table,
		Type:     objType,
		Columns:  cols,
		RowCount: db.rowCount(ctx, table),
	}, nil
}

// SampleRows returns up to limit rows of the table in natural storage
// order. The table name is validated against the current catalog first,
// which guards against stale UI state referencing a previous upload.
func (db *DB) SampleRows(ctx context.Context, table string, limit int) (*Result, error) {
	if err := db.ready(); err != nil {
		return nil, err
	}
	if _, err := db.catalogType(ctx, table); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultSampleLimit
	}

	rows, err := db.sqldb.QueryContext(ctx,
		fmt.Sprintf(`SELECT * FROM %s LIMIT ?`, quoteIdent(table)), limit)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	return collectRows(rows, limit)
}

// catalogType returns "table" or "view" for the named object, or
// ErrUnknownTable.
func (db *DB) catalogType(ctx context.Context, table string) (string, error) {
	var objType string
	err := db.sqldb.QueryRowContext(ctx, `
		SELECT type FROM sqlite_master
		WHERE name = ? AND type IN ('table', 'view')
	`, table).Scan(&objType)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if err != nil {
		return "", err
	}
	return objType, nil
}

// tableColumns reads column metadata via PRAGMA table_info. PRAGMA does
// not take bind parameters; the name is only ever interpolated quoted
// and after catalog validation.
func (db *DB) tableColumns(ctx context.Context, table string) ([]Column, error) {
	rows, err := db.sqldb.QueryContext(ctx,
		fmt.Sprintf(`PRAGMA table_info(%s)`, quoteIdent(table)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var cols []Column
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, Column{
			Name:       name,
			Type:       colType,
			NotNull:    notNull != 0,
			PrimaryKey: pk != 0,
		})
	}
	return cols, rows.Err()
}

// rowCount counts rows best-effort. Views over dropped tables and other
// count failures report -1 rather than failing the listing.
func (db *DB) rowCount(ctx context.Context, table string) int64 {
	var n int64
	err := db.sqldb.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT count(*) FROM %s`, quoteIdent(table))).Scan(&n)
	if err != nil {
		return -1
	}
	return n
}
