package visualize

import (
	"net/http"
	"net/url"

	"github.com/dbglance/dbglance/internal/chart"
	"github.com/dbglance/dbglance/internal/session"
	"github.com/dbglance/dbglance/internal/ui/features/common"
	"github.com/dbglance/dbglance/internal/ui/templates"
)

// Handlers provides HTTP handlers for the visualization feature.
type Handlers struct {
	deps common.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps common.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// VisualizePage renders the chart builder form. Sessions without an open
// connection bounce to the upload view; sessions without a query result
// get a pointer to the query view instead of an empty form.
func (h *Handlers) VisualizePage(w http.ResponseWriter, r *http.Request) {
	st := h.deps.ResolveState(w, r)

	if st.DB() == nil {
		h.deps.RedirectWithFlash(w, r, "Upload a database before building charts.", "/upload")
		return
	}

	flashes := h.deps.TakeFlashes(w, r)
	data := h.pageData(st, flashes)

	if !data.NoResult && data.Kind != "" {
		// Re-validate the remembered selections so a stale chart is
		// never offered after the result underneath it changed.
		if _, err := h.build(st, data.Kind, data.X, data.Y); err == nil {
			data.ChartURL = chartURL(data.Kind, data.X, data.Y)
		}
	}

	h.render(w, data)
}

// BuildChart validates the submitted chart selections and, when they
// produce a valid chart, re-renders the page with the chart iframe.
func (h *Handlers) BuildChart(w http.ResponseWriter, r *http.Request) {
	st := h.deps.ResolveState(w, r)

	if st.DB() == nil {
		h.deps.RedirectWithFlash(w, r, "Upload a database before building charts.", "/upload")
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	kind := r.PostFormValue("kind")
	x := r.PostFormValue("x")
	y := r.PostFormValue("y")
	st.SetChartSelections(kind, x, y)

	data := h.pageData(st, nil)
	if data.NoResult {
		h.render(w, data)
		return
	}
	data.Kind, data.X, data.Y = kind, x, y

	if _, err := h.build(st, kind, x, y); err != nil {
		data.Error = err.Error()
		h.render(w, data)
		return
	}

	data.ChartURL = chartURL(kind, x, y)
	h.render(w, data)
}

// ChartFrame renders the chart itself for the result iframe. The chart is
// rebuilt from the session's current result on every request so it can
// never outlive the data it was drawn from.
func (h *Handlers) ChartFrame(w http.ResponseWriter, r *http.Request) {
	st := h.deps.ResolveState(w, r)

	q := r.URL.Query()
	spec, err := h.build(st, q.Get("kind"), q.Get("x"), q.Get("y"))
	if err != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = templates.Render(w, "chart_error", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := spec.Render(w); err != nil {
		h.deps.Logger.Error("chart render failed", "session", st.ID, "error", err)
	}
}

// build assembles a chart spec from the session's current query result.
func (h *Handlers) build(st *session.State, kindValue, x, y string) (*chart.Spec, error) {
	res := st.Result()
	if res == nil {
		return nil, chart.ErrEmptyResult
	}
	kind, err := chart.ParseKind(kindValue)
	if err != nil {
		return nil, err
	}
	return chart.Build(res, kind, chart.Selections{X: x, Y: y})
}

func (h *Handlers) pageData(st *session.State, flashes []string) PageData {
	data := PageData{
		Page: common.NewPage("Visualize", "visualize", st, flashes),
	}
	for _, k := range chart.Kinds() {
		data.Kinds = append(data.Kinds, string(k))
	}

	res := st.Result()
	if res == nil || res.Empty() {
		data.NoResult = true
		return data
	}
	data.Columns = res.Columns

	kind, x, y := st.ChartSelections()
	if kind == "" {
		kind = string(chart.KindBar)
	}
	if x == "" {
		x = res.Columns[0]
	}
	if y == "" {
		y = res.Columns[len(res.Columns)-1]
	}
	data.Kind, data.X, data.Y = kind, x, y
	return data
}

func (h *Handlers) render(w http.ResponseWriter, data PageData) {
	if err := templates.Render(w, "visualize", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func chartURL(kind, x, y string) string {
	v := url.Values{}
	v.Set("kind", kind)
	v.Set("x", x)
	v.Set("y", y)
	return "/visualize/chart?" + v.Encode()
}
