package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dbglance/dbglance/internal/database"
)

// renderResult writes a query result in the requested format.
func renderResult(w io.Writer, res *database.Result, format string) error {
	switch format {
	case "json":
		return renderJSON(w, res)
	case "csv":
		return renderCSV(w, res)
	case "md", "markdown":
		return renderMarkdown(w, res)
	default:
		return renderTable(w, res)
	}
}

func renderTable(w io.Writer, res *database.Result) error {
	if res.Empty() {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(res.Columns))
	for i, col := range res.Columns {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, r := range res.Rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = formatValue(v)
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows%s)\n", len(res.Rows), truncatedSuffix(res))
	return nil
}

func renderJSON(w io.Writer, res *database.Result) error {
	out := make([]map[string]any, 0, len(res.Rows))
	for _, r := range res.Rows {
		row := make(map[string]any, len(res.Columns))
		for i, col := range res.Columns {
			if r[i].IsNull() {
				row[col] = nil
			} else {
				row[col] = r[i].String()
			}
		}
		out = append(out, row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderCSV(w io.Writer, res *database.Result) error {
	_, _ = fmt.Fprintln(w, strings.Join(res.Columns, ","))
	for _, r := range res.Rows {
		values := make([]string, len(r))
		for i, v := range r {
			values[i] = escapeCSV(formatValue(v))
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func renderMarkdown(w io.Writer, res *database.Result) error {
	if res.Empty() {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(res.Columns, " | "))

	seps := make([]string, len(res.Columns))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, r := range res.Rows {
		values := make([]string, len(r))
		for i, v := range r {
			values[i] = strings.ReplaceAll(formatValue(v), "|", "\\|")
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
	_, _ = fmt.Fprintf(w, "(%d rows%s)\n", len(res.Rows), truncatedSuffix(res))
	return nil
}

// formatValue formats one cell for terminal output. NULL prints as a
// marker the way sqlite3's CLI does; the web presenter styles it
// instead.
func formatValue(v database.Value) string {
	if v.IsNull() {
		return "NULL"
	}
	return v.String()
}

func truncatedSuffix(res *database.Result) string {
	if res.Truncated {
		return ", truncated"
	}
	return ""
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
