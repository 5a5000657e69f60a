package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dbglance/dbglance/internal/database"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Format string
	Input  string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query FILE [SQL]",
		Short: "Run SQL against a SQLite database file",
		Long: `Execute SQL against a SQLite file and print the result.

When invoked without SQL on a terminal, enters interactive REPL mode
with table-name completion and dot-commands (.tables, .schema, .quit).`,
		Example: `  # One-shot query
  dbglance query sales.db "SELECT region, SUM(amount) FROM sales GROUP BY region"

  # Output as JSON
  dbglance query sales.db "SELECT * FROM sales" --format json

  # Read SQL from a file
  dbglance query sales.db --input report.sql

  # Interactive mode
  dbglance query sales.db`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryCmd(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json, csv, md")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	return cmd
}

func runQueryCmd(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	ctx := cmd.Context()
	cfg := getConfig()

	db, err := database.Open(ctx, args[0])
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	runOpts := database.RunOptions{
		Timeout: cfg.QueryTimeout,
		MaxRows: cfg.MaxRows,
	}

	// Determine SQL source
	var sqlQuery string
	switch {
	case len(args) > 1:
		sqlQuery = strings.Join(args[1:], " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlQuery = string(content)
	case !isTerminal(os.Stdin):
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	default:
		// No input, TTY detected - enter REPL mode
		return runQueryREPL(cmd, db, runOpts, opts)
	}

	return executeAndRender(cmd, db, runOpts, sqlQuery, opts.Format)
}

func executeAndRender(cmd *cobra.Command, db *database.DB, runOpts database.RunOptions, sqlQuery, format string) error {
	res, err := db.Run(cmd.Context(), sqlQuery, runOpts)
	if err != nil {
		// A write or DDL statement is a success with no rows to print.
		if errors.Is(err, database.ErrNoResult) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), err.Error())
			return nil
		}
		return err
	}
	return renderResult(cmd.OutOrStdout(), res, format)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
