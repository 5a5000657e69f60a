package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartWidth  = "920px"
	chartHeight = "540px"
)

// Render writes the chart as a standalone HTML document. One renderer
// per kind; the switch is exhaustive over the closed Kind set.
func (s *Spec) Render(w io.Writer) error {
	switch s.Kind {
	case KindBar:
		return s.renderBar(w)
	case KindLine:
		return s.renderLine(w)
	case KindScatter:
		return s.renderScatter(w)
	case KindPie:
		return s.renderPie(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedKind, s.Kind)
	}
}

func (s *Spec) initOpts() charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: s.Title,
		Width:     chartWidth,
		Height:    chartHeight,
	})
}

func (s *Spec) renderBar(w io.Writer) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		s.initOpts(),
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: s.XName}),
		charts.WithYAxisOpts(opts.YAxis{Name: s.YName}),
	)

	labels := make([]string, len(s.Points))
	data := make([]opts.BarData, len(s.Points))
	for i, p := range s.Points {
		labels[i] = p.Label
		data[i] = opts.BarData{Value: p.YValue}
	}
	bar.SetXAxis(labels).AddSeries(s.YName, data)
	return bar.Render(w)
}

func (s *Spec) renderLine(w io.Writer) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		s.initOpts(),
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: s.XName}),
		charts.WithYAxisOpts(opts.YAxis{Name: s.YName}),
	)

	labels := make([]string, len(s.Points))
	data := make([]opts.LineData, len(s.Points))
	for i, p := range s.Points {
		labels[i] = p.Label
		data[i] = opts.LineData{Value: p.YValue}
	}
	line.SetXAxis(labels).AddSeries(s.YName, data)
	return line.Render(w)
}

func (s *Spec) renderScatter(w io.Writer) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		s.initOpts(),
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: s.XName, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: s.YName, Type: "value"}),
	)

	data := make([]opts.ScatterData, len(s.Points))
	for i, p := range s.Points {
		data[i] = opts.ScatterData{Value: []any{p.XValue, p.YValue}}
	}
	scatter.AddSeries(s.YName, data)
	return scatter.Render(w)
}

func (s *Spec) renderPie(w io.Writer) error {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		s.initOpts(),
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
	)

	data := make([]opts.PieData, len(s.Points))
	for i, p := range s.Points {
		data[i] = opts.PieData{Name: p.Label, Value: p.YValue}
	}
	pie.AddSeries(s.YName, data)
	return pie.Render(w)
}
