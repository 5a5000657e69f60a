package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTables(t *testing.T) {
	db := openFixture(t)

	tables, err := db.ListTables(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 3)

	byName := map[string]Table{}
	for _, tab := range tables {
		byName[tab.Name] = tab
	}

	sales, ok := byName["sales"]
	require.True(t, ok)
	assert.Equal(t, "table", sales.Type)
	assert.Equal(t, int64(8), sales.RowCount)
	require.Len(t, sales.Columns, 4)
	assert.Equal(t, "id", sales.Columns[0].Name)
	assert.True(t, sales.Columns[0].PrimaryKey)
	assert.Equal(t, "region", sales.Columns[1].Name)
	assert.True(t, sales.Columns[1].NotNull)
	assert.Equal(t, "TEXT", sales.Columns[1].Type)

	view, ok := byName["region_totals"]
	require.True(t, ok)
	assert.Equal(t, "view", view.Type)
}

func TestListTables_NoConnection(t *testing.T) {
	var db *DB
	_, err := db.ListTables(context.Background())
	assert.ErrorIs(t, err, ErrNoConnection)
}

func TestDescribe(t *testing.T) {
	db := openFixture(t)

	tab, err := db.Describe(context.Background(), "notes")
	require.NoError(t, err)
	assert.Equal(t, "notes", tab.Name)
	assert.Equal(t, int64(2), tab.RowCount)
	require.Len(t, tab.Columns, 2)
	assert.Equal(t, "body", tab.Columns[1].Name)
}

func TestDescribe_UnknownTable(t *testing.T) {
	db := openFixture(t)

	_, err := db.Describe(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestSampleRows(t *testing.T) {
	db := openFixture(t)

	res, err := db.SampleRows(context.Background(), "sales", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "region", "amount", "sold_on"}, res.Columns)
	assert.Len(t, res.Rows, 5)
}

func TestSampleRows_FewerRowsThanLimit(t *testing.T) {
	db := openFixture(t)

	res, err := db.SampleRows(context.Background(), "notes", 50)
	require.NoError(t, err)
	assert.Len(t, res.Rows, 2)
}

func TestSampleRows_DefaultLimit(t *testing.T) {
	db := openFixture(t)

	res, err := db.SampleRows(context.Background(), "sales", 0)
	require.NoError(t, err)
	assert.Len(t, res.Rows, 8)
}

func TestSampleRows_View(t *testing.T) {
	db := openFixture(t)

	res, err := db.SampleRows(context.Background(), "region_totals", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"region", "total"}, res.Columns)
	assert.Len(t, res.Rows, 4)
}

func TestSampleRows_UnknownTable(t *testing.T) {
	db := openFixture(t)

	_, err := db.SampleRows(context.Background(), "no_such_table", 5)
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestSampleRows_QuotedIdentifier(t *testing.T) {
	db := openFixture(t)

	// A hostile table name must be treated as a name, not as SQL.
	_, err := db.SampleRows(context.Background(), `sales"; DROP TABLE sales; --`, 5)
	assert.ErrorIs(t, err, ErrUnknownTable)

	tables, err := db.ListTables(context.Background())
	require.NoError(t, err)
	assert.Len(t, tables, 3)
}
