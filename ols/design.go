package ols

import (
	"fmt"
	"math"

	d "github.com/invertedv/incomereg"
)

// Intercept is the name of the constant design column.
const Intercept = "Intercept"

// design is the model matrix by column.
type design struct {
	names []string
	cols  [][]float64

	// order is every coefficient name, estimable or not, in output order.
	order []string

	// aliased are dummies that are constant over the data and so not estimable alongside the
	// intercept. They are not in cols.
	aliased []string

	// vars maps each formula term to its design column names.
	vars map[string][]string
}

// response extracts the (transformed) response.
func response(f *Formula, table *d.DF) ([]float64, error) {
	var col *d.Col
	if col = table.Column(f.Response); col == nil {
		return nil, fmt.Errorf("%w: response %s not in table", d.ErrFormula, f.Response)
	}

	x, e := col.AsFloat()
	if e != nil {
		return nil, fmt.Errorf("%w: response %s: %v", d.ErrFormula, f.Response, e)
	}

	y := make([]float64, len(x))
	for ind, v := range x {
		if math.IsNaN(v) {
			return nil, fmt.Errorf("%w: response %s row %d is missing", d.ErrFormula, f.Response, ind+1)
		}

		if f.Transform != Log {
			y[ind] = v
			continue
		}

		if v <= 0 {
			return nil, fmt.Errorf("%w: log(%s) undefined at row %d, value %v", d.ErrDomain, f.Response, ind+1, v)
		}

		y[ind] = math.Log(v)
	}

	return y, nil
}

// buildDesign expands the terms. Categorical terms (string columns) come first as dummies for
// every level but the first, then continuous terms in formula order.
func buildDesign(f *Formula, table *d.DF) (*design, error) {
	n := table.RowCount()
	ds := &design{vars: make(map[string][]string)}

	one := make([]float64, n)
	for ind := range one {
		one[ind] = 1
	}

	ds.names = append(ds.names, Intercept)
	ds.cols = append(ds.cols, one)
	ds.order = append(ds.order, Intercept)

	var continuous []*d.Col
	for _, t := range f.Terms {
		var col *d.Col
		if col = table.Column(t); col == nil {
			return nil, fmt.Errorf("%w: term %s not in table", d.ErrFormula, t)
		}

		if col.DataType() == d.DTfloat {
			continuous = append(continuous, col)
			continue
		}

		x, _ := col.AsString()
		levels := col.Levels()
		for row, v := range x {
			if !d.Has(v, levels) {
				return nil, fmt.Errorf("%w: term %s row %d has level %q, levels are %v", d.ErrFormula, t, row+1, v, levels)
			}
		}

		if len(levels) == 0 {
			return nil, fmt.Errorf("%w: term %s has no levels", d.ErrFormula, t)
		}

		for _, lvl := range levels[1:] {
			name := fmt.Sprintf("%s[T.%s]", t, lvl)
			dummy := make([]float64, n)
			for row, v := range x {
				if v == lvl {
					dummy[row] = 1
				}
			}

			ds.vars[t] = append(ds.vars[t], name)
			ds.order = append(ds.order, name)
			if constant(dummy) {
				ds.aliased = append(ds.aliased, name)
				continue
			}

			ds.names = append(ds.names, name)
			ds.cols = append(ds.cols, dummy)
		}
	}

	for _, col := range continuous {
		x, _ := col.AsFloat()
		for row, v := range x {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("%w: term %s row %d is missing", d.ErrFormula, col.Name(), row+1)
			}
		}

		ds.vars[col.Name()] = []string{col.Name()}
		ds.order = append(ds.order, col.Name())
		ds.names = append(ds.names, col.Name())
		ds.cols = append(ds.cols, append([]float64(nil), x...))
	}

	return ds, nil
}

func constant(x []float64) bool {
	if len(x) == 0 {
		return true
	}

	for _, v := range x {
		if v != x[0] {
			return false
		}
	}

	return true
}
