package database

import "errors"

// Sentinel errors returned by the loader, inspector, and executor.
// Callers match them with errors.Is; wrapped messages carry the detail.
var (
	// ErrInvalidFile indicates the uploaded bytes are not a SQLite database.
	ErrInvalidFile = errors.New("database: not a valid SQLite database file")

	// ErrFileTooLarge indicates the upload exceeds the configured size limit.
	ErrFileTooLarge = errors.New("database: file exceeds size limit")

	// ErrNoConnection indicates an operation was attempted without an open database.
	ErrNoConnection = errors.New("database: no open connection")

	// ErrUnknownTable indicates the named table is not in the current catalog.
	ErrUnknownTable = errors.New("database: unknown table")

	// ErrSyntax indicates the query text could not be parsed.
	ErrSyntax = errors.New("database: syntax error")

	// ErrExecution indicates the query parsed but failed to execute,
	// e.g. it references a nonexistent table or column.
	ErrExecution = errors.New("database: execution error")

	// ErrNoResult indicates the statement executed but produced no result
	// set (writes, DDL). Distinct from a query matching zero rows.
	ErrNoResult = errors.New("database: statement produced no result set")

	// ErrTimeout indicates query execution exceeded its deadline.
	ErrTimeout = errors.New("database: query timed out")
)
