package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/dbglance/dbglance/internal/database"
)

func runQueryREPL(cmd *cobra.Command, db *database.DB, runOpts database.RunOptions, opts *QueryOptions) error {
	ctx := cmd.Context()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "dbglance> ",
		AutoComplete:    newTableCompleter(ctx, db),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "dbglance query REPL (%s)\n", db.Name())
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	var buffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buffer.Reset()
			rl.SetPrompt("dbglance> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") && buffer.Len() == 0 {
			if line == ".quit" || line == ".exit" {
				break
			}
			handleDotCommand(cmd, db, line, opts.Format)
			continue
		}

		// Accumulate multi-line SQL until a terminating semicolon.
		buffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buffer.WriteString(" ")
			rl.SetPrompt("     ...> ")
			continue
		}

		sqlQuery := buffer.String()
		buffer.Reset()
		rl.SetPrompt("dbglance> ")

		if err := executeAndRender(cmd, db, runOpts, sqlQuery, opts.Format); err != nil {
			_, _ = fmt.Fprintf(out, "error: %v\n", err)
		}
	}

	return nil
}

func handleDotCommand(cmd *cobra.Command, db *database.DB, line, format string) {
	out := cmd.OutOrStdout()
	fields := strings.Fields(line)

	switch fields[0] {
	case ".help":
		_, _ = fmt.Fprintln(out, ".tables          list tables and views")
		_, _ = fmt.Fprintln(out, ".schema TABLE    show columns of TABLE")
		_, _ = fmt.Fprintln(out, ".sample TABLE    show a row sample of TABLE")
		_, _ = fmt.Fprintln(out, ".quit            exit")

	case ".tables":
		if err := inspectAll(cmd, db); err != nil {
			_, _ = fmt.Fprintf(out, "error: %v\n", err)
		}

	case ".schema", ".sample":
		if len(fields) < 2 {
			_, _ = fmt.Fprintf(out, "usage: %s TABLE\n", fields[0])
			return
		}
		sample := 0
		if fields[0] == ".schema" {
			sample = -1 // schema only, suppress the row sample
		}
		if err := replDescribe(cmd, db, fields[1], sample, format); err != nil {
			_, _ = fmt.Fprintf(out, "error: %v\n", err)
		}

	default:
		_, _ = fmt.Fprintf(out, "unknown command %s (try .help)\n", fields[0])
	}
}

func replDescribe(cmd *cobra.Command, db *database.DB, name string, sample int, format string) error {
	if sample < 0 {
		desc, err := db.Describe(cmd.Context(), name)
		if err != nil {
			return err
		}
		for _, col := range desc.Columns {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", col.Name, col.Type)
		}
		return nil
	}

	rows, err := db.SampleRows(cmd.Context(), name, sample)
	if err != nil {
		return err
	}
	return renderResult(cmd.OutOrStdout(), rows, format)
}

// newTableCompleter builds a readline completer over the current table
// names plus the dot-commands.
func newTableCompleter(ctx context.Context, db *database.DB) readline.AutoCompleter {
	var items []readline.PrefixCompleterInterface
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
	)

	tables, err := db.ListTables(ctx)
	if err == nil {
		tableItems := make([]readline.PrefixCompleterInterface, len(tables))
		for i, t := range tables {
			tableItems[i] = readline.PcItem(t.Name)
		}
		items = append(items,
			readline.PcItem(".tables"),
			readline.PcItem(".schema", tableItems...),
			readline.PcItem(".sample", tableItems...),
		)
		for _, t := range tables {
			items = append(items, readline.PcItem(t.Name))
		}
	}

	return readline.NewPrefixCompleter(items...)
}
