package ols

import (
	d "github.com/invertedv/incomereg"
)

// Coefficient is one row of the coefficient table. Aliased coefficients could not be estimated
// and carry a zero estimate and NaN statistics.
type Coefficient struct {
	Term     string
	Estimate float64
	StdErr   float64
	T        float64
	P        float64
	Aliased  bool
}

// Model is a fitted OLS model. It is not modified after FitOLS returns.
type Model struct {
	Formula      *Formula
	Coefficients []Coefficient

	N       int
	DFModel int
	DFResid int

	RSquared    float64
	AdjRSquared float64
	FStat       float64
	FPValue     float64
	// Sigma is the residual standard error.
	Sigma float64

	// Y is the response on the fitted scale, i.e. after any log transform.
	Y      []float64
	Fitted []float64
	Resid  []float64

	design *design
}

// Coefficient returns the coefficient for term.
func (m *Model) Coefficient(term string) (Coefficient, bool) {
	for _, c := range m.Coefficients {
		if c.Term == term {
			return c, true
		}
	}

	return Coefficient{}, false
}

// DesignNames returns the names of the estimated design columns, Intercept first.
func (m *Model) DesignNames() []string {
	return append([]string(nil), m.design.names...)
}

// DesignColumn returns a copy of the design column name.
func (m *Model) DesignColumn(name string) ([]float64, bool) {
	j := d.Position(name, m.design.names)
	if j < 0 {
		return nil, false
	}

	return append([]float64(nil), m.design.cols[j]...), true
}

// TermColumns returns the design column names generated by formula term, including aliased ones.
func (m *Model) TermColumns(term string) []string {
	return append([]string(nil), m.design.vars[term]...)
}

// Aliased returns the dummies dropped because they were constant.
func (m *Model) Aliased() []string {
	return append([]string(nil), m.design.aliased...)
}
