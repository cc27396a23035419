package ols

import (
	"fmt"
	"math"

	d "github.com/invertedv/incomereg"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"k8s.io/klog/v2"
)

// rankTol is the smallest singular value, relative to the largest, for a design column to count
// toward the rank.
const rankTol = 1e-10

// FitOLS fits formula to table by ordinary least squares.
func FitOLS(formula string, table *d.DF) (*Model, error) {
	var (
		f *Formula
		e error
	)
	if f, e = ParseFormula(formula); e != nil {
		return nil, e
	}

	// the model frame holds copies, so later changes to table cannot reach the fit
	var frame *d.DF
	if frame, e = table.KeepColumns(append([]string{f.Response}, f.Terms...)...); e != nil {
		return nil, fmt.Errorf("%w: %s: %v", d.ErrFormula, f, e)
	}

	var y []float64
	if y, e = response(f, frame); e != nil {
		return nil, e
	}

	var ds *design
	if ds, e = buildDesign(f, frame); e != nil {
		return nil, e
	}

	var (
		beta []float64
		inv  *mat.SymDense
	)
	if beta, inv, e = lsq(ds.cols, y); e != nil {
		return nil, fmt.Errorf("%s: %w", f, e)
	}

	n, p := len(y), len(ds.cols)
	fitted := predict(ds.cols, beta)
	resid := make([]float64, n)
	ybar := stat.Mean(y, nil)

	var rss, tss float64
	for ind := range y {
		resid[ind] = y[ind] - fitted[ind]
		rss += resid[ind] * resid[ind]
		tss += (y[ind] - ybar) * (y[ind] - ybar)
	}

	m := &Model{
		Formula: f,
		N:       n,
		DFModel: p - 1,
		DFResid: n - p,
		Y:       y,
		Fitted:  fitted,
		Resid:   resid,
		design:  ds,
	}

	sigma2 := rss / float64(m.DFResid)
	m.Sigma = math.Sqrt(sigma2)
	m.RSquared, m.AdjRSquared = math.NaN(), math.NaN()
	if tss > 0 {
		m.RSquared = 1 - rss/tss
		m.AdjRSquared = 1 - (1-m.RSquared)*float64(n-1)/float64(m.DFResid)
	}

	m.FStat, m.FPValue = math.NaN(), math.NaN()
	if m.DFModel > 0 {
		m.FStat = ((tss - rss) / float64(m.DFModel)) / sigma2
		m.FPValue = distuv.F{D1: float64(m.DFModel), D2: float64(m.DFResid)}.Survival(m.FStat)
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(m.DFResid)}
	for _, name := range ds.order {
		if j := d.Position(name, ds.names); j >= 0 {
			se := math.Sqrt(sigma2 * inv.At(j, j))
			t := beta[j] / se
			m.Coefficients = append(m.Coefficients, Coefficient{
				Term:     name,
				Estimate: beta[j],
				StdErr:   se,
				T:        t,
				P:        2 * tDist.Survival(math.Abs(t)),
			})

			continue
		}

		m.Coefficients = append(m.Coefficients, Coefficient{
			Term:     name,
			StdErr:   math.NaN(),
			T:        math.NaN(),
			P:        math.NaN(),
			Aliased:  true,
			Estimate: 0,
		})
	}

	if len(ds.aliased) > 0 {
		klog.InfoS("constant dummy terms not estimable", "formula", f.String(), "terms", ds.aliased)
	}

	klog.V(1).InfoS("fitted model", "formula", f.String(), "n", n, "r2", m.RSquared, "f", m.FStat)

	return m, nil
}

// Residualize returns the residuals of the least squares fit of y on cols.
func Residualize(y []float64, cols ...[]float64) ([]float64, error) {
	if len(cols) == 0 {
		return append([]float64(nil), y...), nil
	}

	for _, c := range cols {
		if len(c) != len(y) {
			return nil, fmt.Errorf("length mismatch: y - %d, column - %d", len(y), len(c))
		}
	}

	beta, _, e := lsq(cols, y)
	if e != nil {
		return nil, e
	}

	fit := predict(cols, beta)
	resid := make([]float64, len(y))
	for ind := range y {
		resid[ind] = y[ind] - fit[ind]
	}

	return resid, nil
}

// lsq solves the normal equations (XᵀX)β = Xᵀy and also returns (XᵀX)⁻¹.
func lsq(cols [][]float64, y []float64) ([]float64, *mat.SymDense, error) {
	n, p := len(y), len(cols)
	if n <= p {
		return nil, nil, fmt.Errorf("%w: %d records for %d design columns", d.ErrRankDeficiency, n, p)
	}

	x := mat.NewDense(n, p, nil)
	for j, c := range cols {
		for i, v := range c {
			x.Set(i, j, v)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDNone); !ok {
		return nil, nil, fmt.Errorf("%w: SVD of design failed", d.ErrRankDeficiency)
	}

	sv := svd.Values(nil)
	rank := 0
	for _, s := range sv {
		if s > sv[0]*rankTol {
			rank++
		}
	}

	if rank < p {
		return nil, nil, fmt.Errorf("%w: design has rank %d with %d columns", d.ErrRankDeficiency, rank, p)
	}

	xtx := mat.NewSymDense(p, nil)
	xtx.SymOuterK(1, x.T())

	var ch mat.Cholesky
	if ok := ch.Factorize(xtx); !ok {
		return nil, nil, fmt.Errorf("%w: XᵀX is not positive definite", d.ErrRankDeficiency)
	}

	xty := mat.NewVecDense(p, nil)
	xty.MulVec(x.T(), mat.NewVecDense(n, append([]float64(nil), y...)))

	b := mat.NewVecDense(p, nil)
	if e := ch.SolveVecTo(b, xty); e != nil {
		return nil, nil, fmt.Errorf("%w: %v", d.ErrRankDeficiency, e)
	}

	inv := mat.NewSymDense(p, nil)
	if e := ch.InverseTo(inv); e != nil {
		return nil, nil, fmt.Errorf("%w: %v", d.ErrRankDeficiency, e)
	}

	beta := make([]float64, p)
	for j := range beta {
		beta[j] = b.AtVec(j)
	}

	return beta, inv, nil
}

func predict(cols [][]float64, beta []float64) []float64 {
	if len(cols) == 0 {
		return nil
	}

	out := make([]float64, len(cols[0]))
	for j, c := range cols {
		for i, v := range c {
			out[i] += beta[j] * v
		}
	}

	return out
}
