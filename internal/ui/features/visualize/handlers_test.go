package visualize

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbglance/dbglance/internal/database"
	"github.com/dbglance/dbglance/internal/session"
	"github.com/dbglance/dbglance/internal/ui/features"
)

func setupRouter(t *testing.T) (*chi.Mux, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	router := chi.NewMux()
	SetupRoutes(router, fixture.Deps)
	return router, fixture
}

func chartableResult() *database.Result {
	return &database.Result{
		Columns: []string{"region", "total"},
		Rows: [][]database.Value{
			{database.NewValue("north"), database.NewValue(200.5)},
			{database.NewValue("south"), database.NewValue(145.0)},
		},
	}
}

func withResult(fixture *features.TestFixture, st *session.State) {
	st.SetDB(fixture.FixtureDB())
	st.SetResult("SELECT region, sum(amount) AS total FROM sales GROUP BY region", chartableResult())
}

func TestVisualizePage_NoDatabaseRedirects(t *testing.T) {
	router, fixture := setupRouter(t)

	req, _ := fixture.NewRequest(http.MethodGet, "/visualize", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/upload", rec.Header().Get("Location"))
}

func TestVisualizePage_NoResult(t *testing.T) {
	router, fixture := setupRouter(t)

	req, st := fixture.NewRequest(http.MethodGet, "/visualize", nil)
	st.SetDB(fixture.FixtureDB())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "No query result to chart yet")
	assert.Contains(t, body, `href="/query"`)
}

func TestVisualizePage_WithResult(t *testing.T) {
	router, fixture := setupRouter(t)

	req, st := fixture.NewRequest(http.MethodGet, "/visualize", nil)
	withResult(fixture, st)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="kind"`)
	assert.Contains(t, body, `<option value="region"`)
	assert.Contains(t, body, `<option value="total"`)
	// Default selections validate, so the chart shows immediately.
	assert.Contains(t, body, "/visualize/chart?")
}

func TestBuildChart_Valid(t *testing.T) {
	router, fixture := setupRouter(t)

	form := url.Values{"kind": {"bar"}, "x": {"region"}, "y": {"total"}}
	req, st := fixture.NewRequest(http.MethodPost, "/visualize", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	withResult(fixture, st)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "/visualize/chart?kind=bar&amp;x=region&amp;y=total")

	kind, x, y := st.ChartSelections()
	assert.Equal(t, "bar", kind)
	assert.Equal(t, "region", x)
	assert.Equal(t, "total", y)
}

func TestBuildChart_TextMeasure(t *testing.T) {
	router, fixture := setupRouter(t)

	form := url.Values{"kind": {"bar"}, "x": {"total"}, "y": {"region"}}
	req, st := fixture.NewRequest(http.MethodPost, "/visualize", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	withResult(fixture, st)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "chart: incompatible axis type")
	assert.NotContains(t, body, "/visualize/chart?")
}

func TestBuildChart_UnknownKind(t *testing.T) {
	router, fixture := setupRouter(t)

	form := url.Values{"kind": {"donut"}, "x": {"region"}, "y": {"total"}}
	req, st := fixture.NewRequest(http.MethodPost, "/visualize", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	withResult(fixture, st)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported chart kind")
}

func TestChartFrame(t *testing.T) {
	router, fixture := setupRouter(t)

	req, st := fixture.NewRequest(http.MethodGet, "/visualize/chart?kind=bar&x=region&y=total", nil)
	withResult(fixture, st)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "echarts")
	assert.Contains(t, body, "total by region")
}

func TestChartFrame_NoResult(t *testing.T) {
	router, fixture := setupRouter(t)

	req, st := fixture.NewRequest(http.MethodGet, "/visualize/chart?kind=bar&x=region&y=total", nil)
	st.SetDB(fixture.FixtureDB())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "no rows to chart")
}

func TestChartFrame_StaleColumns(t *testing.T) {
	router, fixture := setupRouter(t)

	// The result changed since the chart link was built; the frame must
	// re-validate against the current result, not serve a stale chart.
	req, st := fixture.NewRequest(http.MethodGet, "/visualize/chart?kind=bar&x=region&y=gone", nil)
	withResult(fixture, st)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown column")
}
