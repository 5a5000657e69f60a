package visualize

import "github.com/dbglance/dbglance/internal/ui/features/common"

// PageData backs the visualization view.
type PageData struct {
	common.Page

	// NoResult is set when the session has no query result to chart.
	NoResult bool

	// Error carries a validation message from the last chart attempt.
	Error string

	// Kinds and Columns populate the form selects.
	Kinds   []string
	Columns []string

	// Kind, X and Y echo the current selections back into the form.
	Kind string
	X    string
	Y    string

	// ChartURL points the result iframe at the chart endpoint. Empty
	// until a valid chart has been built.
	ChartURL string
}
