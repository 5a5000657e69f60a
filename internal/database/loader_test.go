package database

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFixtureFile creates a populated SQLite file and returns its path.
func newFixtureFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)

	stmts := []string{
		`CREATE TABLE sales (
			id INTEGER PRIMARY KEY,
			region TEXT NOT NULL,
			amount REAL,
			sold_on TEXT
		)`,
		`INSERT INTO sales (region, amount, sold_on) VALUES
			('north', 120.5, '2024-01-03'),
			('north', 80.0,  '2024-01-09'),
			('south', 200.0, '2024-01-04'),
			('south', NULL,  '2024-01-11'),
			('east',  45.25, '2024-01-05'),
			('east',  60.0,  '2024-01-12'),
			('west',  310.0, '2024-01-06'),
			('west',  15.75, '2024-01-13')`,
		`CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)`,
		`INSERT INTO notes (body) VALUES ('first'), ('second')`,
		`CREATE VIEW region_totals AS
			SELECT region, sum(amount) AS total FROM sales GROUP BY region`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	return path
}

// openFixture opens the fixture file directly, without the upload path.
func openFixture(t *testing.T) *DB {
	t.Helper()

	db, err := Open(context.Background(), newFixtureFile(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLoad(t *testing.T) {
	raw, err := os.ReadFile(newFixtureFile(t))
	require.NoError(t, err)

	db, err := Load(context.Background(), bytes.NewReader(raw), "fixture.db", LoadOptions{})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, "fixture.db", db.Name())

	tables, err := db.ListTables(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 3)
	assert.Equal(t, "notes", tables[0].Name)
	assert.Equal(t, "region_totals", tables[1].Name)
	assert.Equal(t, "sales", tables[2].Name)
}

func TestLoad_RemovesTempFileOnClose(t *testing.T) {
	raw, err := os.ReadFile(newFixtureFile(t))
	require.NoError(t, err)

	tmpDir := t.TempDir()
	db, err := Load(context.Background(), bytes.NewReader(raw), "fixture.db", LoadOptions{TempDir: tmpDir})
	require.NoError(t, err)

	path := db.Path()
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, db.Close())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "temp file should be removed on close")
}

func TestLoad_InvalidHeader(t *testing.T) {
	content := []byte("id,region,amount\n1,north,120.5\n")

	db, err := Load(context.Background(), bytes.NewReader(content), "sales.csv", LoadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFile)
	assert.Nil(t, db)
}

func TestLoad_ValidHeaderCorruptBody(t *testing.T) {
	// Correct magic bytes followed by garbage. The header check passes
	// but the catalog probe must reject it.
	content := append([]byte(sqliteMagic), bytes.Repeat([]byte{0xAB}, 4096)...)

	db, err := Load(context.Background(), bytes.NewReader(content), "fake.db", LoadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFile)
	assert.Nil(t, db)
}

func TestLoad_TooLarge(t *testing.T) {
	raw, err := os.ReadFile(newFixtureFile(t))
	require.NoError(t, err)

	db, err := Load(context.Background(), bytes.NewReader(raw), "fixture.db", LoadOptions{MaxBytes: 1024})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Nil(t, db)
}

func TestLoad_EmptyUpload(t *testing.T) {
	db, err := Load(context.Background(), bytes.NewReader(nil), "empty.db", LoadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFile)
	assert.Nil(t, db)
}

func TestOpen_MissingFile(t *testing.T) {
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.db"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
	assert.Nil(t, db)
}

func TestClose_Nil(t *testing.T) {
	var db *DB
	assert.NoError(t, db.Close())
}
