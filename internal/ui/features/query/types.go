// Package query provides the ad-hoc SQL feature: a query box whose
// results are patched in over SSE.
package query

import "github.com/dbglance/dbglance/internal/ui/features/common"

// Signals are the datastar signals sent from the query page.
type Signals struct {
	SQL string `json:"sql"`
}

// ResultsData feeds the query results fragment. Exactly one of Error,
// Notice, or Result is set; a zero-row Result is a real result, not a
// notice.
type ResultsData struct {
	Error  string
	Notice string
	Result *common.ResultView
}

// PageData feeds the query page template.
type PageData struct {
	common.Page
	InitialQuery string
	Results      ResultsData
}
