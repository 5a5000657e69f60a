// Package upload provides the database upload feature.
package upload

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dbglance/dbglance/internal/database"
	"github.com/dbglance/dbglance/internal/session"
	"github.com/dbglance/dbglance/internal/ui/features/common"
	"github.com/dbglance/dbglance/internal/ui/templates"
)

// PageData feeds the upload page template.
type PageData struct {
	common.Page
	Error       string
	MaxUploadMB int64
}

// Handlers provides HTTP handlers for the upload feature.
type Handlers struct {
	deps common.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps common.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// UploadPage renders the upload form.
func (h *Handlers) UploadPage(w http.ResponseWriter, r *http.Request) {
	st := h.deps.ResolveState(w, r)
	h.renderPage(w, r, st, "")
}

// Upload accepts a posted database file, loads it, and installs it as
// the session's active connection. Any previous connection and its
// temp file are released by the session state.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	st := h.deps.ResolveState(w, r)

	// Belt and braces with the loader's own cap: stop oversized bodies
	// at the transport before buffering the multipart form.
	maxBytes := h.deps.Load.MaxBytes
	if maxBytes == 0 {
		maxBytes = database.DefaultMaxUploadBytes
	}
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+(1<<20))
	}

	file, header, err := r.FormFile("database")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.renderPage(w, r, st, uploadErrorMessage(database.ErrFileTooLarge))
			return
		}
		h.renderPage(w, r, st, "Choose a database file to upload.")
		return
	}
	defer func() { _ = file.Close() }()

	db, err := database.Load(r.Context(), file, header.Filename, h.deps.Load)
	if err != nil {
		h.deps.Logger.Warn("upload rejected", "file", header.Filename, "error", err)
		h.renderPage(w, r, st, uploadErrorMessage(err))
		return
	}

	st.SetDB(db)
	h.deps.Logger.Info("database loaded", "session", st.ID, "file", header.Filename)

	h.deps.RedirectWithFlash(w, r, fmt.Sprintf("Loaded %s.", header.Filename), "/")
}

func (h *Handlers) renderPage(w http.ResponseWriter, r *http.Request, st *session.State, errMsg string) {
	flashes := h.deps.TakeFlashes(w, r)

	maxBytes := h.deps.Load.MaxBytes
	if maxBytes <= 0 {
		maxBytes = database.DefaultMaxUploadBytes
	}

	data := PageData{
		Page:        common.NewPage("Upload", "upload", st, flashes),
		Error:       errMsg,
		MaxUploadMB: maxBytes >> 20,
	}
	if err := templates.Render(w, "upload", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// uploadErrorMessage maps loader errors onto user-facing text.
func uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, database.ErrFileTooLarge):
		return "That file is too large to upload."
	case errors.Is(err, database.ErrInvalidFile):
		return "That file does not look like a SQLite database."
	default:
		return err.Error()
	}
}
