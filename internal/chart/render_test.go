package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpec_Render(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			sel := Selections{X: "region", Y: "total"}
			res := salesResult()
			if kind == KindScatter {
				// Scatter needs a numeric x axis.
				res.Columns[0] = "total2"
				for i := range res.Rows {
					res.Rows[i][0] = res.Rows[i][1]
				}
				sel.X = "total2"
			}

			spec, err := Build(res, kind, sel)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, spec.Render(&buf))

			html := buf.String()
			assert.Contains(t, html, "echarts")
			assert.Contains(t, html, spec.Title)
		})
	}
}
