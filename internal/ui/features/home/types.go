// Package home provides the landing page with the schema browser.
package home

import (
	"strconv"

	"github.com/dbglance/dbglance/internal/database"
	"github.com/dbglance/dbglance/internal/ui/features/common"
)

// PageData feeds the home page template.
type PageData struct {
	common.Page
	Tables []TableRow
}

// TableRow is one row of the schema listing.
type TableRow struct {
	Name          string
	Type          string
	ColumnCount   int
	RowCountLabel string
}

// DetailData feeds the table detail fragment.
type DetailData struct {
	Error  string
	Table  *TableInfo
	Sample *common.ResultView
}

// TableInfo is the descriptor shown when a table is selected.
type TableInfo struct {
	Name          string
	Type          string
	Columns       []database.Column
	RowCountLabel string
}

func rowCountLabel(n int64) string {
	if n < 0 {
		return "?"
	}
	return strconv.FormatInt(n, 10)
}
