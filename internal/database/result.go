package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// Value is a single cell of a query result. It keeps SQL NULL distinct
// from the empty string so presenters can render nulls as a marker
// instead of ambiguous text.
type Value struct {
	raw any
}

// NewValue wraps a raw driver value.
func NewValue(raw any) Value {
	if b, ok := raw.([]byte); ok {
		// Copy out of the driver's scan buffer; it is reused between rows.
		raw = string(b)
	}
	return Value{raw: raw}
}

// IsNull reports whether the cell is SQL NULL.
func (v Value) IsNull() bool {
	return v.raw == nil
}

// String formats the cell for display. NULL formats as the empty string;
// use IsNull to distinguish it from an actual empty string.
func (v Value) String() string {
	switch x := v.raw.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Float coerces the cell to a float64. SQLite is dynamically typed, so a
// numeric value may arrive as an integer, a float, or numeric text.
// The second return is false when the cell is NULL or non-numeric.
func (v Value) Float() (float64, bool) {
	switch x := v.raw.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Result is the tabular output of one executed statement. Columns keep
// the projection order of the query that produced them.
type Result struct {
	Columns   []string
	Rows      [][]Value
	Truncated bool
	Elapsed   time.Duration
}

// Empty reports whether the result has no rows.
func (r *Result) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// ColumnIndex returns the position of the named column, or -1.
func (r *Result) ColumnIndex(name string) int {
	if r == nil {
		return -1
	}
	for i, c := range r.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns all values of the named column in row order.
func (r *Result) Column(name string) []Value {
	idx := r.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]Value, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row[idx]
	}
	return out
}

// collectRows drains rows into a Result, keeping at most maxRows rows.
// maxRows <= 0 means unlimited. A result that hit the cap with more rows
// pending is marked Truncated.
func collectRows(rows *sql.Rows, maxRows int) (*Result, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := &Result{Columns: cols}
	for rows.Next() {
		if maxRows > 0 && len(res.Rows) == maxRows {
			res.Truncated = true
			break
		}

		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make([]Value, len(cols))
		for i, val := range values {
			row[i] = NewValue(val)
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
