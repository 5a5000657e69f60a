package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Execution defaults, overridable per call through RunOptions.
const (
	DefaultQueryTimeout = 10 * time.Second
	DefaultMaxRows      = 1000
)

// RunOptions bounds one query execution.
type RunOptions struct {
	// Timeout bounds execution wall time. Zero means DefaultQueryTimeout;
	// negative means no timeout beyond the caller's context.
	Timeout time.Duration

	// MaxRows caps how many rows are collected. Zero means DefaultMaxRows;
	// negative means unlimited. A capped result is marked Truncated.
	MaxRows int
}

func (o RunOptions) timeout() time.Duration {
	if o.Timeout == 0 {
		return DefaultQueryTimeout
	}
	return o.Timeout
}

func (o RunOptions) maxRows() int {
	if o.MaxRows == 0 {
		return DefaultMaxRows
	}
	return o.MaxRows
}

// Run executes one statement of user-supplied SQL verbatim. The query
// text is never interpolated into any other command; it goes to the
// driver as-is. Mutating statements are executed and persist in the open
// database for the rest of the session; without a RETURNING clause they
// return ErrNoResult so the caller can tell "no tabular output" apart
// from "zero matching rows".
func (db *DB) Run(ctx context.Context, queryText string, opts RunOptions) (*Result, error) {
	if err := db.ready(); err != nil {
		return nil, err
	}

	queryText = strings.TrimSpace(queryText)
	if queryText == "" {
		return nil, fmt.Errorf("%w: empty statement", ErrSyntax)
	}
	if containsMultipleStatements(queryText) {
		return nil, fmt.Errorf("%w: one statement per submission", ErrSyntax)
	}

	if t := opts.timeout(); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	start := time.Now()

	if !returnsRows(queryText) {
		res, err := db.sqldb.ExecContext(ctx, queryText)
		if err != nil {
			return nil, classifyError(err)
		}
		affected, _ := res.RowsAffected()
		return nil, fmt.Errorf("%w: statement executed, %d row(s) affected", ErrNoResult, affected)
	}

	rows, err := db.sqldb.QueryContext(ctx, queryText)
	if err != nil {
		return nil, classifyError(err)
	}
	defer func() { _ = rows.Close() }()

	result, err := collectRows(rows, opts.maxRows())
	if err != nil {
		return nil, classifyError(err)
	}
	result.Elapsed = time.Since(start)
	return result, nil
}

// returnsRows reports whether the statement yields a result set: either
// its leading keyword is a query form, or it is a mutation with a
// RETURNING clause.
func returnsRows(queryText string) bool {
	switch leadingKeyword(queryText) {
	case "SELECT", "WITH", "VALUES", "PRAGMA", "EXPLAIN":
		return true
	}
	return hasReturningClause(queryText)
}

// leadingKeyword returns the first SQL keyword, skipping whitespace and
// both comment forms.
func leadingKeyword(queryText string) string {
	s := queryText
	for {
		s = strings.TrimLeft(s, " \t\r\n")
		switch {
		case strings.HasPrefix(s, "--"):
			idx := strings.IndexByte(s, '\n')
			if idx < 0 {
				return ""
			}
			s = s[idx+1:]
		case strings.HasPrefix(s, "/*"):
			idx := strings.Index(s, "*/")
			if idx < 0 {
				return ""
			}
			s = s[idx+2:]
		default:
			end := 0
			for end < len(s) && isWordByte(s[end]) {
				end++
			}
			return strings.ToUpper(s[:end])
		}
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}

// containsMultipleStatements detects a second statement after the first
// terminating semicolon. Semicolons inside string literals, quoted
// identifiers, and comments are honored, and trailing comments after
// the semicolon do not count as a statement. This is a guard against
// accidental batching, not a full parser.
func containsMultipleStatements(queryText string) bool {
	for i := 0; i < len(queryText); i++ {
		c := queryText[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			i = skipQuoted(queryText, i, c)
		case c == '[':
			idx := strings.IndexByte(queryText[i+1:], ']')
			if idx < 0 {
				return false
			}
			i += idx + 1
		case c == '-' && i+1 < len(queryText) && queryText[i+1] == '-':
			idx := strings.IndexByte(queryText[i:], '\n')
			if idx < 0 {
				return false
			}
			i += idx
		case c == '/' && i+1 < len(queryText) && queryText[i+1] == '*':
			idx := strings.Index(queryText[i+2:], "*/")
			if idx < 0 {
				return false
			}
			i += idx + 3
		case c == ';':
			return !restIsTrivia(queryText[i+1:])
		}
	}
	return false
}

// hasReturningClause scans for a bare RETURNING keyword outside strings,
// quoted identifiers, and comments. SQLite mutations with RETURNING
// produce a result set and must go down the query path.
func hasReturningClause(queryText string) bool {
	for i := 0; i < len(queryText); i++ {
		c := queryText[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			i = skipQuoted(queryText, i, c)
		case c == '[':
			idx := strings.IndexByte(queryText[i+1:], ']')
			if idx < 0 {
				return false
			}
			i += idx + 1
		case c == '-' && i+1 < len(queryText) && queryText[i+1] == '-':
			idx := strings.IndexByte(queryText[i:], '\n')
			if idx < 0 {
				return false
			}
			i += idx
		case c == '/' && i+1 < len(queryText) && queryText[i+1] == '*':
			idx := strings.Index(queryText[i+2:], "*/")
			if idx < 0 {
				return false
			}
			i += idx + 3
		case isWordByte(c):
			end := i
			for end < len(queryText) && isWordByte(queryText[end]) {
				end++
			}
			if strings.EqualFold(queryText[i:end], "RETURNING") {
				return true
			}
			i = end - 1
		}
	}
	return false
}

// skipQuoted returns the index of the closing quote, treating a doubled
// quote as an escape the way SQLite does. Returns the end of the text
// when the literal is unterminated.
func skipQuoted(s string, start int, quote byte) int {
	for i := start + 1; i < len(s); i++ {
		if s[i] != quote {
			continue
		}
		if i+1 < len(s) && s[i+1] == quote {
			i++
			continue
		}
		return i
	}
	return len(s)
}

// restIsTrivia reports whether s holds only whitespace and comments.
func restIsTrivia(s string) bool {
	for {
		s = strings.TrimLeft(s, " \t\r\n")
		switch {
		case s == "":
			return true
		case strings.HasPrefix(s, "--"):
			idx := strings.IndexByte(s, '\n')
			if idx < 0 {
				return true
			}
			s = s[idx+1:]
		case strings.HasPrefix(s, "/*"):
			idx := strings.Index(s, "*/")
			if idx < 0 {
				return true
			}
			s = s[idx+2:]
		default:
			return false
		}
	}
}

// classifyError maps driver errors onto the package taxonomy.
func classifyError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		// A caller-cancelled query is not a timeout.
		return fmt.Errorf("query canceled: %w", err)
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "syntax error") || strings.Contains(msg, "incomplete input") {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return fmt.Errorf("%w: %v", ErrExecution, err)
}
