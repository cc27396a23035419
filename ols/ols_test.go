package ols

import (
	"math"
	"testing"

	d "github.com/invertedv/incomereg"
	"github.com/invertedv/incomereg/clean"
	ft "github.com/invertedv/incomereg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rawFormula = "median_income ~ pop_type + no_hs_diploma + hs_diploma + some_college"
	logFormula = "log(median_income) ~ pop_type + no_hs_diploma + hs_diploma + some_college"
)

func xyDF(x, y []float64) *d.DF {
	xc, _ := d.NewCol(x, d.DTfloat, d.ColName("x"))
	yc, _ := d.NewCol(y, d.DTfloat, d.ColName("y"))
	df, e := d.NewDF(xc, yc)
	if e != nil {
		panic(e)
	}

	return df
}

func TestParseFormula(t *testing.T) {
	f, e := ParseFormula(logFormula)
	require.Nil(t, e)
	assert.Equal(t, "median_income", f.Response)
	assert.Equal(t, Log, f.Transform)
	assert.Equal(t, []string{"pop_type", "no_hs_diploma", "hs_diploma", "some_college"}, f.Terms)
	assert.Equal(t, logFormula, f.String())

	f, e = ParseFormula(" y~x ")
	require.Nil(t, e)
	assert.Equal(t, Identity, f.Transform)
	assert.Equal(t, "y", f.ResponseLabel())

	for _, bad := range []string{"y x", "y ~ x ~ z", "~ x", "y ~", "y ~ x +", "y ~ x + x", "y ~ y", "exp(y) ~ x", "y ~ 2x"} {
		_, e = ParseFormula(bad)
		assert.ErrorIs(t, e, d.ErrFormula, bad)
	}
}

func TestSimpleRegression(t *testing.T) {
	df := xyDF([]float64{1, 2, 3, 4, 5}, []float64{2, 4, 5, 4, 5})
	m, e := FitOLS("y ~ x", df)
	require.Nil(t, e)

	b0, ok := m.Coefficient(Intercept)
	require.True(t, ok)
	b1, _ := m.Coefficient("x")

	assert.InDelta(t, 2.2, b0.Estimate, 1e-10)
	assert.InDelta(t, 0.6, b1.Estimate, 1e-10)
	assert.InDelta(t, math.Sqrt(0.08), b1.StdErr, 1e-10)
	assert.InDelta(t, 0.6/math.Sqrt(0.08), b1.T, 1e-9)
	assert.InDelta(t, 0.6, m.RSquared, 1e-10)
	assert.InDelta(t, 1-0.4*4.0/3.0, m.AdjRSquared, 1e-10)
	assert.InDelta(t, 4.5, m.FStat, 1e-9)
	// with one slope the F test and the t test agree
	assert.InDelta(t, b1.P, m.FPValue, 1e-9)
	assert.InDelta(t, 0.124, b1.P, 1e-3)
	assert.Equal(t, 1, m.DFModel)
	assert.Equal(t, 3, m.DFResid)

	assert.InDeltaSlice(t, []float64{2.8, 3.4, 4.0, 4.6, 5.2}, m.Fitted, 1e-10)
	assert.InDeltaSlice(t, []float64{-0.8, 0.6, 1.0, -0.6, -0.2}, m.Resid, 1e-10)
}

func TestCountyModel(t *testing.T) {
	tbl := ft.Table(ft.Counties(60))
	m, e := FitOLS(rawFormula, tbl)
	require.Nil(t, e)

	var terms []string
	for _, c := range m.Coefficients {
		terms = append(terms, c.Term)
	}
	assert.Equal(t, []string{Intercept, "pop_type[T.Urban]", clean.NoHS, clean.HS, clean.SomeCollege}, terms)
	assert.Equal(t, terms, m.DesignNames())
	assert.Equal(t, []string{"pop_type[T.Urban]"}, m.TermColumns(clean.PopType))

	// the disturbance is bounded by 1500, so the generating slopes come back closely
	urban, _ := m.Coefficient("pop_type[T.Urban]")
	noHS, _ := m.Coefficient(clean.NoHS)
	assert.InDelta(t, 4000, urban.Estimate, 800)
	assert.InDelta(t, -600, noHS.Estimate, 100)
	assert.Less(t, noHS.P, 0.001)
	assert.Greater(t, m.RSquared, 0.8)
	assert.Less(t, m.FPValue, 1e-6)

	for ind := range m.Y {
		assert.InDelta(t, m.Y[ind], m.Fitted[ind]+m.Resid[ind], 1e-8)
	}

	assert.Contains(t, m.DesignNames(), "pop_type[T.Urban]")
}

func TestInterceptShift(t *testing.T) {
	const offset = 12345.0
	tbl := ft.Table(ft.Counties(50))
	base, e := FitOLS(rawFormula, tbl)
	require.Nil(t, e)

	inc, _ := tbl.Column(clean.Income).AsFloat()
	shifted := make([]float64, len(inc))
	for ind, v := range inc {
		shifted[ind] = v + offset
	}

	col, _ := d.NewCol(shifted, d.DTfloat, d.ColName(clean.Income))
	tbl2 := tbl.Copy()
	require.Nil(t, tbl2.AppendColumn(col, true))

	moved, e := FitOLS(rawFormula, tbl2)
	require.Nil(t, e)

	for ind, c := range base.Coefficients {
		want := c.Estimate
		if c.Term == Intercept {
			want += offset
		}

		assert.InDelta(t, want, moved.Coefficients[ind].Estimate, 1e-6*math.Max(1, math.Abs(want)), c.Term)
		assert.InDelta(t, c.StdErr, moved.Coefficients[ind].StdErr, 1e-6*math.Max(1, c.StdErr), c.Term)
	}

	assert.InDeltaSlice(t, base.Resid, moved.Resid, 1e-6)
}

func TestLogDomain(t *testing.T) {
	tbl := ft.Table(ft.Counties(30))
	_, e := FitOLS(logFormula, tbl)
	assert.Nil(t, e)

	inc, _ := tbl.Column(clean.Income).AsFloat()
	bad := append([]float64(nil), inc...)
	bad[7] = 0
	col, _ := d.NewCol(bad, d.DTfloat, d.ColName(clean.Income))
	tbl2 := tbl.Copy()
	require.Nil(t, tbl2.AppendColumn(col, true))

	_, e = FitOLS(logFormula, tbl2)
	assert.ErrorIs(t, e, d.ErrDomain)

	// the raw response is fine with a zero income
	_, e = FitOLS(rawFormula, tbl2)
	assert.Nil(t, e)

	_, e = FitOLS("log(y) ~ x", xyDF([]float64{1, 2, 3}, []float64{1, -1, 2}))
	assert.ErrorIs(t, e, d.ErrDomain)
}

func TestRankDeficiency(t *testing.T) {
	tbl := ft.Table(ft.Counties(40))

	// the four shares sum to 100, collinear with the intercept
	_, e := FitOLS("median_income ~ pop_type + no_hs_diploma + hs_diploma + some_college + bachelors_plus", tbl)
	assert.ErrorIs(t, e, d.ErrRankDeficiency)

	// fewer records than terms
	_, e = FitOLS(rawFormula, tbl.Head(4))
	assert.ErrorIs(t, e, d.ErrRankDeficiency)

	// constant continuous term
	_, e = FitOLS("y ~ x", xyDF([]float64{3, 3, 3, 3}, []float64{1, 2, 3, 4}))
	assert.ErrorIs(t, e, d.ErrRankDeficiency)

	// empty table
	_, e = FitOLS(rawFormula, tbl.Head(0))
	assert.ErrorIs(t, e, d.ErrRankDeficiency)
}

func TestConstantCategory(t *testing.T) {
	counties := ft.Counties(40)
	for ind := range counties {
		counties[ind].Settlement = "City"
	}

	tbl := ft.Table(counties)
	m, e := FitOLS(logFormula, tbl)
	require.Nil(t, e)

	c, ok := m.Coefficient("pop_type[T.Urban]")
	require.True(t, ok)
	assert.True(t, c.Aliased)
	assert.Equal(t, 0.0, c.Estimate)
	assert.True(t, math.IsNaN(c.StdErr))
	assert.True(t, math.IsNaN(c.P))
	assert.Equal(t, []string{"pop_type[T.Urban]"}, m.Aliased())
	assert.NotContains(t, m.DesignNames(), "pop_type[T.Urban]")
	assert.Equal(t, 3, m.DFModel)

	_, ok = m.DesignColumn("pop_type[T.Urban]")
	assert.False(t, ok)
}

func TestFormulaColumns(t *testing.T) {
	tbl := ft.Table(ft.Counties(20))
	_, e := FitOLS("median_income ~ no_such", tbl)
	assert.ErrorIs(t, e, d.ErrFormula)

	_, e = FitOLS("no_such ~ hs_diploma", tbl)
	assert.ErrorIs(t, e, d.ErrFormula)

	_, e = FitOLS("pop_type ~ hs_diploma", tbl)
	assert.ErrorIs(t, e, d.ErrFormula)
}

func TestModelFrame(t *testing.T) {
	tbl := ft.Table(ft.Counties(30))
	m, e := FitOLS("median_income ~ pop_type + hs_diploma", tbl)
	require.Nil(t, e)
	y0 := m.Y[0]

	inc, _ := tbl.Column("median_income").AsFloat()
	inc[0] += 1e6
	assert.Equal(t, y0, m.Y[0])
}

func TestDeterministic(t *testing.T) {
	tbl := ft.Table(ft.Counties(45))
	a, e := FitOLS(logFormula, tbl)
	require.Nil(t, e)
	b, e := FitOLS(logFormula, tbl)
	require.Nil(t, e)
	assert.Equal(t, a.Coefficients, b.Coefficients)
	assert.Equal(t, a.Resid, b.Resid)
}

func TestResidualize(t *testing.T) {
	y := []float64{1, 2, 3, 6}
	one := []float64{1, 1, 1, 1}

	r, e := Residualize(y, one)
	require.Nil(t, e)
	assert.InDeltaSlice(t, []float64{-2, -1, 0, 3}, r, 1e-12)

	r, e = Residualize(y)
	require.Nil(t, e)
	assert.Equal(t, y, r)

	_, e = Residualize(y, []float64{1, 2})
	assert.NotNil(t, e)
}
