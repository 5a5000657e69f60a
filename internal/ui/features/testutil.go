// Package features provides shared test utilities for UI feature tests.
package features

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/dbglance/dbglance/internal/database"
	"github.com/dbglance/dbglance/internal/session"
	"github.com/dbglance/dbglance/internal/testutil"
	"github.com/dbglance/dbglance/internal/ui/features/common"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Manager      *session.Manager
	SessionStore *sessions.CookieStore
	Deps         common.Deps

	t *testing.T
}

// SetupTestFixture creates a session manager, cookie store, and wired
// feature dependencies for handler tests.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	logger := testutil.NewTestLogger(t)
	manager := session.NewManager(time.Hour, logger)
	t.Cleanup(manager.Close)

	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
	store.Options.HttpOnly = true

	return &TestFixture{
		Manager:      manager,
		SessionStore: store,
		Deps: common.Deps{
			Manager:     manager,
			Sessions:    store,
			Logger:      logger,
			SampleLimit: 20,
		},
		t: t,
	}
}

// FixtureDB opens a small populated database backed by a temp file.
func (f *TestFixture) FixtureDB() *database.DB {
	f.t.Helper()
	return openFixtureDB(f.t, FixtureDBPath(f.t))
}

// FixtureDBPath creates the fixture database file and returns its path.
func FixtureDBPath(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.db")
	raw, err := sql.Open("sqlite", path)
	require.NoError(t, err)

	stmts := []string{
		`CREATE TABLE sales (id INTEGER PRIMARY KEY, region TEXT NOT NULL, amount REAL)`,
		`INSERT INTO sales (region, amount) VALUES
			('north', 120.5), ('south', 200.0), ('east', 45.25), ('west', NULL)`,
		`CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)`,
		`INSERT INTO notes (body) VALUES ('first')`,
	}
	for _, stmt := range stmts {
		_, err := raw.Exec(stmt)
		require.NoError(t, err)
	}
	require.NoError(t, raw.Close())
	return path
}

func openFixtureDB(t *testing.T, path string) *database.DB {
	t.Helper()

	db, err := database.Open(t.Context(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewRequest builds a request carrying a valid session cookie and
// returns it together with the server-side state it resolves to.
func (f *TestFixture) NewRequest(method, target string, body io.Reader) (*http.Request, *session.State) {
	f.t.Helper()

	st := f.Manager.Get("")

	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()

	sess, err := f.SessionStore.Get(req, common.CookieName)
	require.NoError(f.t, err)
	sess.Values["sid"] = st.ID
	require.NoError(f.t, sess.Save(req, rec))

	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req, st
}
