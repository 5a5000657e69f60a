// Package chart maps tabular query results onto renderable charts.
// Building is pure validation plus column extraction; rendering lives in
// render.go. Specs are always rebuilt from the current result, never
// cached across query re-execution.
package chart

import (
	"errors"
	"fmt"

	"github.com/dbglance/dbglance/internal/database"
)

// Sentinel errors returned by Build.
var (
	// ErrEmptyResult indicates there is no result, or it has zero rows.
	ErrEmptyResult = errors.New("chart: no rows to chart")

	// ErrUnknownColumn indicates a selected column is not in the result.
	ErrUnknownColumn = errors.New("chart: unknown column")

	// ErrUnsupportedKind indicates the chart kind is not in the closed set.
	ErrUnsupportedKind = errors.New("chart: unsupported chart kind")

	// ErrIncompatibleAxis indicates a selected column's values do not fit
	// the axis, e.g. a text column as a numeric measure.
	ErrIncompatibleAxis = errors.New("chart: incompatible axis type")
)

// Kind is the closed set of supported chart kinds.
type Kind string

const (
	KindBar     Kind = "bar"
	KindLine    Kind = "line"
	KindScatter Kind = "scatter"
	KindPie     Kind = "pie"
)

// Kinds lists every supported kind, in menu order.
func Kinds() []Kind {
	return []Kind{KindBar, KindLine, KindScatter, KindPie}
}

// ParseKind validates a user-supplied kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindBar, KindLine, KindScatter, KindPie:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
}

// Selections names the result columns to map onto the chart. X is the
// category (or numeric X for scatter), Y the numeric measure.
type Selections struct {
	X string
	Y string
}

// Point is one plotted datum. Label is set for category axes, XValue for
// numeric ones.
type Point struct {
	Label  string
	XValue float64
	YValue float64
}

// Spec is a validated, renderable chart description derived from one
// query result.
type Spec struct {
	Kind   Kind
	Title  string
	XName  string
	YName  string
	Points []Point
}

// Build validates the selections against the result and extracts the
// plotted points. Rows where the measure (or a numeric X) is NULL are
// skipped; a non-null non-numeric value anywhere in a numeric column
// fails with ErrIncompatibleAxis rather than producing a silently
// malformed chart.
func Build(res *database.Result, kind Kind, sel Selections) (*Spec, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	if res.Empty() {
		return nil, ErrEmptyResult
	}

	xIdx := res.ColumnIndex(sel.X)
	if xIdx < 0 {
		return nil, fmt.Errorf("%w: %q is not in the current result", ErrUnknownColumn, sel.X)
	}
	yIdx := res.ColumnIndex(sel.Y)
	if yIdx < 0 {
		return nil, fmt.Errorf("%w: %q is not in the current result", ErrUnknownColumn, sel.Y)
	}

	numericX := kind == KindScatter

	spec := &Spec{
		Kind:  kind,
		Title: fmt.Sprintf("%s by %s", sel.Y, sel.X),
		XName: sel.X,
		YName: sel.Y,
	}

	for _, row := range res.Rows {
		xv, yv := row[xIdx], row[yIdx]

		if yv.IsNull() || (numericX && xv.IsNull()) {
			continue
		}

		y, ok := yv.Float()
		if !ok {
			return nil, fmt.Errorf("%w: column %q holds non-numeric value %q",
				ErrIncompatibleAxis, sel.Y, yv.String())
		}

		p := Point{YValue: y}
		if numericX {
			x, ok := xv.Float()
			if !ok {
				return nil, fmt.Errorf("%w: scatter needs a numeric x axis, column %q holds %q",
					ErrIncompatibleAxis, sel.X, xv.String())
			}
			p.XValue = x
		} else {
			p.Label = xv.String()
		}
		spec.Points = append(spec.Points, p)
	}

	if len(spec.Points) == 0 {
		return nil, fmt.Errorf("%w: every row had a NULL in the selected columns", ErrEmptyResult)
	}
	return spec, nil
}
