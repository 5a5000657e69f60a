package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTB captures Log calls so the logger's output can be checked.
type recordingTB struct {
	testing.TB
	entries []string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Log(args ...any) {
	r.entries = append(r.entries, fmt.Sprint(args...))
}

func TestNewTestLogger(t *testing.T) {
	rec := &recordingTB{TB: t}
	logger := NewTestLogger(rec)

	logger.Info("query finished", "rows", 3)
	logger.Debug("session created", "id", "abc")

	require.Len(t, rec.entries, 2, "debug level records must pass through")
	assert.Contains(t, rec.entries[0], "query finished")
	assert.Contains(t, rec.entries[0], "rows=3")
	assert.NotContains(t, rec.entries[0], "\n", "record newline is tb.Log's job")
	assert.Contains(t, rec.entries[1], "session created")
}
