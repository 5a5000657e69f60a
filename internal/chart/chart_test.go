package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbglance/dbglance/internal/database"
)

// salesResult mirrors the shape of a grouped aggregate query.
func salesResult() *database.Result {
	return &database.Result{
		Columns: []string{"region", "total"},
		Rows: [][]database.Value{
			{database.NewValue("north"), database.NewValue(200.5)},
			{database.NewValue("south"), database.NewValue(int64(200))},
			{database.NewValue("east"), database.NewValue("105.25")},
			{database.NewValue("west"), database.NewValue(325.75)},
		},
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("sparkline")
	assert.ErrorIs(t, err, ErrUnsupportedKind)

	_, err = ParseKind("")
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestBuild_Bar(t *testing.T) {
	spec, err := Build(salesResult(), KindBar, Selections{X: "region", Y: "total"})
	require.NoError(t, err)

	assert.Equal(t, KindBar, spec.Kind)
	assert.Equal(t, "total by region", spec.Title)
	require.Len(t, spec.Points, 4)
	assert.Equal(t, "north", spec.Points[0].Label)
	assert.Equal(t, 200.5, spec.Points[0].YValue)

	// SQLite's dynamic typing: int64 and numeric text both coerce.
	assert.Equal(t, 200.0, spec.Points[1].YValue)
	assert.Equal(t, 105.25, spec.Points[2].YValue)
}

func TestBuild_Scatter(t *testing.T) {
	res := &database.Result{
		Columns: []string{"x", "y"},
		Rows: [][]database.Value{
			{database.NewValue(int64(1)), database.NewValue(2.0)},
			{database.NewValue(int64(3)), database.NewValue(4.5)},
		},
	}

	spec, err := Build(res, KindScatter, Selections{X: "x", Y: "y"})
	require.NoError(t, err)
	require.Len(t, spec.Points, 2)
	assert.Equal(t, 3.0, spec.Points[1].XValue)
	assert.Equal(t, 4.5, spec.Points[1].YValue)
}

func TestBuild_ScatterTextX(t *testing.T) {
	_, err := Build(salesResult(), KindScatter, Selections{X: "region", Y: "total"})
	assert.ErrorIs(t, err, ErrIncompatibleAxis)
}

func TestBuild_UnknownColumn(t *testing.T) {
	_, err := Build(salesResult(), KindBar, Selections{X: "region", Y: "revenue"})
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = Build(salesResult(), KindBar, Selections{X: "area", Y: "total"})
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestBuild_TextMeasure(t *testing.T) {
	_, err := Build(salesResult(), KindBar, Selections{X: "total", Y: "region"})
	assert.ErrorIs(t, err, ErrIncompatibleAxis)
}

func TestBuild_EmptyResult(t *testing.T) {
	empty := &database.Result{Columns: []string{"region", "total"}}

	_, err := Build(empty, KindBar, Selections{X: "region", Y: "total"})
	assert.ErrorIs(t, err, ErrEmptyResult)

	_, err = Build(nil, KindBar, Selections{X: "region", Y: "total"})
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestBuild_SkipsNullMeasures(t *testing.T) {
	res := &database.Result{
		Columns: []string{"region", "total"},
		Rows: [][]database.Value{
			{database.NewValue("north"), database.NewValue(nil)},
			{database.NewValue("south"), database.NewValue(100.0)},
		},
	}

	spec, err := Build(res, KindPie, Selections{X: "region", Y: "total"})
	require.NoError(t, err)
	require.Len(t, spec.Points, 1)
	assert.Equal(t, "south", spec.Points[0].Label)
}

func TestBuild_AllNullMeasures(t *testing.T) {
	res := &database.Result{
		Columns: []string{"region", "total"},
		Rows: [][]database.Value{
			{database.NewValue("north"), database.NewValue(nil)},
			{database.NewValue("south"), database.NewValue(nil)},
		},
	}

	_, err := Build(res, KindLine, Selections{X: "region", Y: "total"})
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestBuild_BadKind(t *testing.T) {
	_, err := Build(salesResult(), Kind("donut"), Selections{X: "region", Y: "total"})
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}
