// Package diag builds the regression diagnostic panels for one focal term of a fitted model.
package diag

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	d "github.com/invertedv/incomereg"
	"github.com/invertedv/incomereg/ols"
)

// Mode is how a series is drawn.
type Mode uint8

const (
	Markers Mode = iota
	Lines
)

const (
	colorPoints = "#1f77b4"
	colorFitted = "#d62728"
)

// Series is one set of points. Lines series are sorted by X.
type Series struct {
	Name  string
	Mode  Mode
	Color string
	X     []float64
	Y     []float64
}

// Panel is one diagnostic plot.
type Panel struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
}

// Figure is the four diagnostic panels for Focal.
type Figure struct {
	Focal    string
	Response string
	Panels   []Panel
}

// Diagnose builds the panels for focal, which must name a formula term of m that expands to a
// single design column (e.g. pop_type) or one of the dummies a term generates. The intercept is
// not a term. The result depends only on m.
func Diagnose(m *ols.Model, focal string) (*Figure, error) {
	name := focalColumn(m, focal)
	if name == "" {
		return nil, fmt.Errorf("%w: %s is not a term of %s", d.ErrUnknownTerm, focal, m.Formula)
	}

	coef, ok := m.Coefficient(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a term of %s", d.ErrUnknownTerm, focal, m.Formula)
	}

	if coef.Aliased {
		return nil, fmt.Errorf("%w: %s is aliased in %s", d.ErrUnknownTerm, focal, m.Formula)
	}

	x, _ := m.DesignColumn(name)

	var others [][]float64
	for _, nm := range m.DesignNames() {
		if nm == name {
			continue
		}

		c, _ := m.DesignColumn(nm)
		others = append(others, c)
	}

	var (
		ey, ex []float64
		e      error
	)
	if ey, e = ols.Residualize(m.Y, others...); e != nil {
		return nil, e
	}

	if ex, e = ols.Residualize(x, others...); e != nil {
		return nil, e
	}

	beta := coef.Estimate
	resp := m.Formula.ResponseLabel()
	n := len(x)

	component := make([]float64, n)
	partial := make([]float64, n)
	for ind := 0; ind < n; ind++ {
		component[ind] = beta * x[ind]
		partial[ind] = component[ind] + m.Resid[ind]
	}

	fig := &Figure{Focal: name, Response: resp}
	fig.Panels = []Panel{
		{
			Title:  "Y and Fitted vs. X",
			XLabel: name,
			YLabel: resp,
			Series: []Series{
				{Name: resp, Mode: Markers, Color: colorPoints, X: copyOf(x), Y: copyOf(m.Y)},
				{Name: "fitted", Mode: Markers, Color: colorFitted, X: copyOf(x), Y: copyOf(m.Fitted)},
			},
		},
		{
			Title:  "Residuals versus " + name,
			XLabel: name,
			YLabel: "residual",
			Series: []Series{
				{Name: "residuals", Mode: Markers, Color: colorPoints, X: copyOf(x), Y: copyOf(m.Resid)},
			},
		},
		{
			Title:  "Partial regression plot",
			XLabel: "e(" + name + " | X)",
			YLabel: "e(" + resp + " | X)",
			Series: []Series{
				{Name: "partial residuals", Mode: Markers, Color: colorPoints, X: ex, Y: ey},
				line("fit", ex, func(v float64) float64 { return beta * v }),
			},
		},
		{
			Title:  "CCPR plot",
			XLabel: name,
			YLabel: "residual + " + name + "*beta",
			Series: []Series{
				{Name: "component + residual", Mode: Markers, Color: colorPoints, X: copyOf(x), Y: partial},
				line("component", x, func(v float64) float64 { return beta * v }),
			},
		},
	}

	return fig, nil
}

// Plots returns a plotly figure per panel.
func (f *Figure) Plots() ([]*Plot, error) {
	var plots []*Plot
	for _, pnl := range f.Panels {
		var (
			p *Plot
			e error
		)
		if p, e = NewPlot(PlotTitle(pnl.Title), PlotXlabel(pnl.XLabel), PlotYlabel(pnl.YLabel),
			PlotSubtitle(fmt.Sprintf("focal %s, response %s", f.Focal, f.Response)),
			PlotLegend(true), PlotWidth(900), PlotHeight(600)); e != nil {
			return nil, e
		}

		for _, s := range pnl.Series {
			if e = p.PlotXY(s.X, s.Y, s.Name, s.Color, s.Mode == Lines); e != nil {
				return nil, e
			}
		}

		plots = append(plots, p)
	}

	return plots, nil
}

// SaveHTML writes one HTML file per panel into dir and returns the file names.
func (f *Figure) SaveHTML(dir, prefix string) ([]string, error) {
	var (
		plots []*Plot
		e     error
	)
	if plots, e = f.Plots(); e != nil {
		return nil, e
	}

	if e = os.MkdirAll(dir, 0o755); e != nil {
		return nil, e
	}

	var files []string
	for ind, p := range plots {
		fileName := filepath.Join(dir, fmt.Sprintf("%s_%d.html", prefix, ind+1))
		if e = p.Save(fileName); e != nil {
			return nil, e
		}

		files = append(files, fileName)
	}

	return files, nil
}

// focalColumn resolves focal through the formula terms of m. It returns "" if focal is neither a
// single-column term nor a column generated by one.
func focalColumn(m *ols.Model, focal string) string {
	for _, term := range m.Formula.Terms {
		cols := m.TermColumns(term)
		if term == focal && len(cols) == 1 {
			return cols[0]
		}

		if d.Position(focal, cols) >= 0 {
			return focal
		}
	}

	return ""
}

// line evaluates fn at the sorted values of x.
func line(name string, x []float64, fn func(float64) float64) Series {
	xs := copyOf(x)
	sort.SliceStable(xs, func(i, j int) bool { return xs[i] < xs[j] })

	ys := make([]float64, len(xs))
	for ind, v := range xs {
		ys[ind] = fn(v)
	}

	return Series{Name: name, Mode: Lines, Color: colorFitted, X: xs, Y: ys}
}

func copyOf(x []float64) []float64 {
	return append([]float64(nil), x...)
}
