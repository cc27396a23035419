package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	d "github.com/invertedv/incomereg"
	"github.com/invertedv/incomereg/clean"
	"github.com/invertedv/incomereg/source"
	ft "github.com/invertedv/incomereg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sources(t *testing.T, counties []ft.County) (source.Source, source.Source) {
	eduPath, unempPath, e := ft.WriteSources(t.TempDir(), counties)
	require.Nil(t, e)

	edu, e := source.NewFiles(eduPath)
	require.Nil(t, e)
	unemp, e := source.NewFiles(unempPath)
	require.Nil(t, e)

	return edu, unemp
}

func TestRun(t *testing.T) {
	edu, unemp := sources(t, ft.Counties(60))
	res, e := Run(edu, unemp)
	require.Nil(t, e)

	assert.Equal(t, Shape{Rows: 60, Columns: 8}, res.Education)
	assert.Equal(t, Shape{Rows: 60, Columns: 4}, res.Unemployment)
	assert.Equal(t, 60, res.Counts.JoinedRows)
	assert.Equal(t, 60, res.Counts.CleanRows)
	assert.Equal(t, 0, res.Counts.Incomplete)
	assert.Equal(t, clean.Columns, res.Table.ColumnNames())

	assert.Equal(t, "median_income", res.Raw.Formula.ResponseLabel())
	assert.Equal(t, "log(median_income)", res.Log.Formula.ResponseLabel())
	assert.Equal(t, clean.HS, res.RawDiag.Focal)
	assert.Equal(t, clean.HS, res.LogDiag.Focal)
	assert.Greater(t, res.Raw.RSquared, 0.8)

	urban, ok := res.Log.Coefficient("pop_type[T.Urban]")
	require.True(t, ok)
	assert.Greater(t, urban.Estimate, 0.0)
}

func TestRunDeterministic(t *testing.T) {
	edu, unemp := sources(t, ft.Counties(40))
	a, e := Run(edu, unemp)
	require.Nil(t, e)
	b, e := Run(edu, unemp)
	require.Nil(t, e)

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Raw.Coefficients, b.Raw.Coefficients)
	assert.Equal(t, a.Log.Coefficients, b.Log.Coefficients)
	assert.Equal(t, a.LogDiag, b.LogDiag)
}

func TestRunOptions(t *testing.T) {
	edu, unemp := sources(t, ft.Counties(40))
	res, e := Run(edu, unemp, WithFocal(clean.PopType),
		WithFormulas("median_income ~ pop_type + no_hs_diploma", "log(median_income) ~ pop_type + no_hs_diploma"))
	require.Nil(t, e)
	assert.Equal(t, "pop_type[T.Urban]", res.RawDiag.Focal)
	assert.Len(t, res.Raw.Coefficients, 3)

	_, e = Run(edu, unemp, WithFormulas("median_income pop_type", LogFormula))
	assert.ErrorIs(t, e, d.ErrFormula)

	_, e = Run(edu, unemp, WithFocal(clean.Bachelors))
	assert.ErrorIs(t, e, d.ErrUnknownTerm)

	_, e = Run(edu, unemp, WithFocal(""))
	assert.ErrorIs(t, e, d.ErrUnknownTerm)
}

func TestRunErrors(t *testing.T) {
	edu, unemp := sources(t, ft.Counties(30))

	missing, e := source.NewFiles(filepath.Join(t.TempDir(), "none.csv"))
	require.Nil(t, e)
	_, e = Run(missing, unemp)
	assert.ErrorIs(t, e, d.ErrSourceRead)

	// unemployment as the education source has neither the key nor the labels
	_, e = Run(unemp, unemp)
	assert.ErrorIs(t, e, d.ErrJoin)

	counties := ft.Counties(30)
	counties[4].Settlement = "Metro"
	edu, unemp = sources(t, counties)
	_, e = Run(edu, unemp)
	assert.ErrorIs(t, e, d.ErrValidation)

	counties = ft.Counties(30)
	counties[2].Income = 0
	edu, unemp = sources(t, counties)
	_, e = Run(edu, unemp)
	assert.ErrorIs(t, e, d.ErrDomain)

	dir := t.TempDir()
	eduPath, unempPath, e := ft.WriteSources(dir, ft.Counties(30))
	require.Nil(t, e)
	require.Nil(t, os.WriteFile(unempPath, []byte("FIPS_Code,Median_Household_Income_2019,Unemployment_rate_2020\n01001,abc,3\n"), 0o644))
	edu, _ = source.NewFiles(eduPath)
	unemp, _ = source.NewFiles(unempPath)
	_, e = Run(edu, unemp)
	assert.ErrorIs(t, e, d.ErrParse)
}
