// Package common provides shared types and helpers for UI features.
package common

import (
	"log/slog"

	"github.com/gorilla/sessions"

	"github.com/dbglance/dbglance/internal/database"
	"github.com/dbglance/dbglance/internal/session"
)

// Deps carries the dependencies shared by every feature's handlers.
type Deps struct {
	Manager     *session.Manager
	Sessions    sessions.Store
	Logger      *slog.Logger
	Load        database.LoadOptions
	Run         database.RunOptions
	SampleLimit int
}

// Page is the data every full page template needs: title, which menu
// entry is active, connection status for the sidebar, and any flash
// messages.
type Page struct {
	Title     string
	Active    string
	Connected bool
	DBName    string
	Flashes   []string
}

// NewPage builds the shared page data from the session state.
func NewPage(title, active string, st *session.State, flashes []string) Page {
	db := st.DB()
	return Page{
		Title:     title,
		Active:    active,
		Connected: db != nil,
		DBName:    db.Name(),
		Flashes:   flashes,
	}
}

// Cell is one rendered table cell. Null cells get a styled marker in
// the template instead of text that could be confused with real data.
type Cell struct {
	Null bool
	Text string
}

// ResultView is the template-facing shape of a query result.
type ResultView struct {
	Columns   []string
	Rows      [][]Cell
	RowCount  int
	Truncated bool
	ElapsedMS int64
}

// NewResultView converts a query result for rendering, preserving
// column order.
func NewResultView(res *database.Result) *ResultView {
	if res == nil {
		return nil
	}
	view := &ResultView{
		Columns:   res.Columns,
		RowCount:  len(res.Rows),
		Truncated: res.Truncated,
		ElapsedMS: res.Elapsed.Milliseconds(),
	}
	view.Rows = make([][]Cell, len(res.Rows))
	for i, row := range res.Rows {
		cells := make([]Cell, len(row))
		for j, v := range row {
			cells[j] = Cell{Null: v.IsNull(), Text: v.String()}
		}
		view.Rows[i] = cells
	}
	return view
}
