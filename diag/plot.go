package diag

import (
	"fmt"
	"strings"

	grob "github.com/MetalBlueberry/go-plotly/graph_objects"
	"github.com/MetalBlueberry/go-plotly/offline"
)

const minDim = 100.0

// Plot is a plotly figure with its layout.
type Plot struct {
	Fig *grob.Fig
	Lay *grob.Layout
}

type PlotOpt func(p *Plot) error

func NewPlot(opts ...PlotOpt) (*Plot, error) {
	fig := &grob.Fig{}
	lay := &grob.Layout{}
	fig.Layout = lay
	p := &Plot{Fig: fig, Lay: lay}
	for _, o := range opts {
		if e := o(p); e != nil {
			return nil, e
		}
	}

	return p, nil
}

func PlotWidth(w float64) PlotOpt {
	return func(p *Plot) error {
		if w < minDim {
			return fmt.Errorf("width must be at least %v", minDim)
		}

		p.Lay.Width = w
		return nil
	}
}

func PlotHeight(h float64) PlotOpt {
	return func(p *Plot) error {
		if h < minDim {
			return fmt.Errorf("height must be at least %v", minDim)
		}

		p.Lay.Height = h
		return nil
	}
}

func PlotTitle(title string) PlotOpt {
	return func(p *Plot) error { p.Lay.Title = &grob.LayoutTitle{Text: title}; return nil }
}

func PlotLegend(show bool) PlotOpt {
	return func(p *Plot) error {
		if show {
			p.Lay.Showlegend = grob.True
		} else {
			p.Lay.Showlegend = grob.False
		}

		return nil
	}
}

// PlotSubtitle adds a line below the x-axis title.
func PlotSubtitle(subTitle string) PlotOpt {
	return func(p *Plot) error {
		xAxis := xaxis(p)

		xLabel, _ := xAxis.Title.Text.(string)
		if xLabel != "" {
			xLabel += "<br>"
		}

		xAxis.Title.Text = xLabel + subTitle
		return nil
	}
}

func PlotXlabel(label string) PlotOpt {
	return func(p *Plot) error {
		xAxis := xaxis(p)

		subTitle := ""
		xLabel, _ := xAxis.Title.Text.(string)
		if ind := strings.Index(xLabel, "<br>"); ind >= 0 {
			subTitle = xLabel[ind:]
		}

		xAxis.Title.Text = label + subTitle
		return nil
	}
}

func PlotYlabel(label string) PlotOpt {
	return func(p *Plot) error {
		if p.Lay.Yaxis == nil {
			p.Lay.Yaxis = &grob.LayoutYaxis{}
		}

		if p.Lay.Yaxis.Title == nil {
			p.Lay.Yaxis.Title = &grob.LayoutYaxisTitle{}
		}

		p.Lay.Yaxis.Title.Text = label
		return nil
	}
}

// PlotXY adds a series. Lines connect the points in the order given.
func (p *Plot) PlotXY(x, y []float64, seriesName, color string, lines bool) error {
	if len(x) != len(y) {
		return fmt.Errorf("x has %d points, y has %d", len(x), len(y))
	}

	tr := &grob.Scatter{Name: seriesName, X: x, Y: y}
	if lines {
		tr.Mode = grob.ScatterModeLines
		tr.Line = &grob.ScatterLine{Color: color}
	} else {
		tr.Mode = grob.ScatterModeMarkers
		tr.Marker = &grob.ScatterMarker{Color: color}
	}

	p.Fig.AddTraces(tr)

	return nil
}

// Save writes the plot as a self-contained HTML file.
func (p *Plot) Save(fileName string) error {
	if !strings.HasSuffix(strings.ToLower(fileName), ".html") {
		return fmt.Errorf("plot file %s must end in .html", fileName)
	}

	offline.ToHtml(p.Fig, fileName)

	return nil
}

func xaxis(p *Plot) *grob.LayoutXaxis {
	if p.Lay.Xaxis == nil {
		p.Lay.Xaxis = &grob.LayoutXaxis{}
	}

	if p.Lay.Xaxis.Title == nil {
		p.Lay.Xaxis.Title = &grob.LayoutXaxisTitle{Text: ""}
	}

	return p.Lay.Xaxis
}
