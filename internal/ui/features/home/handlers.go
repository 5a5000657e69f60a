package home

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dbglance/dbglance/internal/ui/features/common"
	"github.com/dbglance/dbglance/internal/ui/templates"
)

// Handlers provides HTTP handlers for the home feature.
type Handlers struct {
	deps common.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps common.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// HomePage renders the landing page with the schema listing.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	st := h.deps.ResolveState(w, r)
	flashes := h.deps.TakeFlashes(w, r)

	data := PageData{Page: common.NewPage("Home", "home", st, flashes)}

	if db := st.DB(); db != nil {
		tables, err := db.ListTables(r.Context())
		if err != nil {
			h.deps.Logger.Error("list tables failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		for _, t := range tables {
			data.Tables = append(data.Tables, TableRow{
				Name:          t.Name,
				Type:          t.Type,
				ColumnCount:   len(t.Columns),
				RowCountLabel: rowCountLabel(t.RowCount),
			})
		}
	}

	if err := templates.Render(w, "home", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// TableDetailSSE patches the table detail panel with the selected
// table's columns and a row sample.
func (h *Handlers) TableDetailSSE(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	st := h.deps.ResolveState(w, r)
	tableName := chi.URLParam(r, "name")

	var data DetailData

	db := st.DB()
	if db == nil {
		data.Error = "No database loaded."
		h.patchDetail(sse, data)
		return
	}

	desc, err := db.Describe(r.Context(), tableName)
	if err != nil {
		// Covers stale UI referencing a table from a previous upload.
		data.Error = err.Error()
		h.patchDetail(sse, data)
		return
	}

	data.Table = &TableInfo{
		Name:          desc.Name,
		Type:          desc.Type,
		Columns:       desc.Columns,
		RowCountLabel: rowCountLabel(desc.RowCount),
	}

	sample, err := db.SampleRows(r.Context(), tableName, h.deps.SampleLimit)
	if err != nil {
		data.Error = err.Error()
		data.Table = nil
	} else {
		data.Sample = common.NewResultView(sample)
	}

	h.patchDetail(sse, data)
}

func (h *Handlers) patchDetail(sse *datastar.ServerSentEventGenerator, data DetailData) {
	html, err := templates.RenderString("table_detail", data)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElements(html); err != nil {
		_ = sse.ConsoleError(err)
	}
}
