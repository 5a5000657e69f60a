package commands

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/dbglance/dbglance/internal/database"
)

// InspectOptions holds options for the inspect command.
type InspectOptions struct {
	Sample int
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect FILE [TABLE]",
		Short: "Show the schema of a SQLite database file",
		Long: `List the tables and views in a SQLite file with their columns and
row counts. With a table name, show that table's columns and a row
sample instead.`,
		Example: `  # List all tables
  dbglance inspect sales.db

  # Show one table with a 10-row sample
  dbglance inspect sales.db orders --sample 10`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Sample, "sample", 0, "Rows to sample when showing a single table")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, opts *InspectOptions) error {
	ctx := cmd.Context()

	db, err := database.Open(ctx, args[0])
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if len(args) == 2 {
		return inspectTable(cmd, db, args[1], opts.Sample)
	}
	return inspectAll(cmd, db)
}

func inspectAll(cmd *cobra.Command, db *database.DB) error {
	tables, err := db.ListTables(cmd.Context())
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tables")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Type", "Columns", "Rows"})

	for _, tbl := range tables {
		t.AppendRow(table.Row{
			tbl.Name,
			tbl.Type,
			len(tbl.Columns),
			formatRowCount(tbl.RowCount),
		})
	}
	t.Render()
	return nil
}

func inspectTable(cmd *cobra.Command, db *database.DB, name string, sample int) error {
	ctx := cmd.Context()

	desc, err := db.Describe(ctx, name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s (%s, %s rows)\n", desc.Name, desc.Type, formatRowCount(desc.RowCount))

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Type", "Not Null", "PK"})
	for _, col := range desc.Columns {
		t.AppendRow(table.Row{col.Name, col.Type, col.NotNull, col.PrimaryKey})
	}
	t.Render()

	rows, err := db.SampleRows(ctx, name, sample)
	if err != nil {
		return err
	}
	if rows.Empty() {
		return nil
	}

	_, _ = fmt.Fprintln(out)
	return renderTable(out, rows)
}

func formatRowCount(n int64) string {
	if n < 0 {
		return "?"
	}
	return strconv.FormatInt(n, 10)
}
