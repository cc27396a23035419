package diag

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SavePNG renders each panel to a PNG in dir and returns the file names.
func (f *Figure) SavePNG(dir, prefix string) ([]string, error) {
	if e := os.MkdirAll(dir, 0o755); e != nil {
		return nil, e
	}

	var files []string
	for ind, pnl := range f.Panels {
		p := plot.New()
		p.Title.Text = pnl.Title
		p.X.Label.Text = pnl.XLabel
		p.Y.Label.Text = pnl.YLabel

		for _, s := range pnl.Series {
			xys := make(plotter.XYs, len(s.X))
			for i := range s.X {
				xys[i].X, xys[i].Y = s.X[i], s.Y[i]
			}

			clr, e := hexColor(s.Color)
			if e != nil {
				return nil, e
			}

			switch s.Mode {
			case Lines:
				l, e := plotter.NewLine(xys)
				if e != nil {
					return nil, e
				}

				l.LineStyle.Color = clr
				l.LineStyle.Width = vg.Points(1.5)
				p.Add(l)
				p.Legend.Add(s.Name, l)
			default:
				sc, e := plotter.NewScatter(xys)
				if e != nil {
					return nil, e
				}

				sc.GlyphStyle.Color = clr
				sc.GlyphStyle.Radius = vg.Points(2)
				p.Add(sc)
				p.Legend.Add(s.Name, sc)
			}
		}

		fileName := filepath.Join(dir, fmt.Sprintf("%s_%d.png", prefix, ind+1))
		if e := p.Save(9*vg.Inch, 6*vg.Inch, fileName); e != nil {
			return nil, e
		}

		files = append(files, fileName)
	}

	return files, nil
}

// hexColor parses #rrggbb.
func hexColor(s string) (color.Color, error) {
	var r, g, b uint8
	if n, e := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); e != nil || n != 3 {
		return nil, fmt.Errorf("bad color %q", s)
	}

	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
