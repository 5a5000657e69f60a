package query

import (
	"errors"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dbglance/dbglance/internal/database"
	"github.com/dbglance/dbglance/internal/ui/features/common"
	"github.com/dbglance/dbglance/internal/ui/templates"
)

// Handlers provides HTTP handlers for the query feature.
type Handlers struct {
	deps common.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps common.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// QueryPage renders the query view, or bounces to the upload view when
// the session has no open connection.
func (h *Handlers) QueryPage(w http.ResponseWriter, r *http.Request) {
	st := h.deps.ResolveState(w, r)

	if st.DB() == nil {
		h.deps.RedirectWithFlash(w, r, "Upload a database before running queries.", "/upload")
		return
	}

	flashes := h.deps.TakeFlashes(w, r)
	data := PageData{
		Page:         common.NewPage("Run Query", "query", st, flashes),
		InitialQuery: st.LastQuery(),
		Results:      ResultsData{Result: common.NewResultView(st.Result())},
	}

	if err := templates.Render(w, "query", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// RunQuerySSE executes the submitted SQL and patches the results panel.
func (h *Handlers) RunQuerySSE(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body).
	var signals Signals
	readErr := datastar.ReadSignals(r, &signals)

	sse := datastar.NewSSE(w, r)
	st := h.deps.ResolveState(w, r)

	if readErr != nil {
		h.patchResults(sse, ResultsData{Error: "Failed to read query input: " + readErr.Error()})
		return
	}

	queryText := strings.TrimSpace(signals.SQL)
	if queryText == "" {
		h.patchResults(sse, ResultsData{Error: "Query cannot be empty."})
		return
	}

	db := st.DB()
	if db == nil {
		h.patchResults(sse, ResultsData{Error: "No database loaded. Upload one first."})
		return
	}

	res, err := db.Run(r.Context(), queryText, h.deps.Run)
	if err != nil {
		// A statement without tabular output still ran; everything else
		// leaves the previous result in place for the presenters.
		if errors.Is(err, database.ErrNoResult) {
			st.SetResult(queryText, nil)
			h.patchResults(sse, ResultsData{Notice: err.Error()})
			return
		}
		h.deps.Logger.Debug("query failed", "session", st.ID, "error", err)
		h.patchResults(sse, ResultsData{Error: queryErrorMessage(err)})
		return
	}

	st.SetResult(queryText, res)
	h.patchResults(sse, ResultsData{Result: common.NewResultView(res)})
}

func (h *Handlers) patchResults(sse *datastar.ServerSentEventGenerator, data ResultsData) {
	html, err := templates.RenderString("query_results", data)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElements(html); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// queryErrorMessage maps executor errors onto user-facing text.
func queryErrorMessage(err error) string {
	switch {
	case errors.Is(err, database.ErrTimeout):
		return "Query timed out. Narrow it down and try again."
	case errors.Is(err, database.ErrSyntax):
		return err.Error()
	case errors.Is(err, database.ErrExecution):
		return err.Error()
	default:
		return err.Error()
	}
}
