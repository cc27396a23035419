package testing

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	d "github.com/invertedv/incomereg"
	"github.com/invertedv/incomereg/clean"
	"github.com/invertedv/incomereg/pipeline"
	"github.com/invertedv/incomereg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThousands(t *testing.T) {
	assert.Equal(t, "55,000.00", thousands(55000))
	assert.Equal(t, "1,234,567.89", thousands(1234567.891))
	assert.Equal(t, "999.50", thousands(999.5))
}

// Loading and cleaning the written sources gives back Table.
func TestWriteSources(t *testing.T) {
	counties := Counties(25)
	eduPath, unempPath, e := WriteSources(t.TempDir(), counties)
	require.Nil(t, e)

	var edu, unemp, got *d.DF
	edu, e = mustFiles(eduPath).Load()
	require.Nil(t, e)
	unemp, e = mustFiles(unempPath).Load()
	require.Nil(t, e)

	got, e = clean.MergeAndClean(edu, unemp)
	require.Nil(t, e)
	require.Nil(t, clean.Validate(got))

	want := Table(counties)
	require.Equal(t, want.ColumnNames(), got.ColumnNames())
	approx := cmp.Comparer(func(x, y float64) bool { return math.Abs(x-y) < 0.006 })
	for _, name := range want.ColumnNames() {
		if name == clean.PopType {
			w, _ := want.Column(name).AsString()
			g, _ := got.Column(name).AsString()
			assert.Equal(t, w, g)
			continue
		}

		w, _ := want.Column(name).AsFloat()
		g, _ := got.Column(name).AsFloat()
		if diff := cmp.Diff(w, g, approx); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}
}

// The whole pipeline on the synthetic counties.
func TestEndToEnd(t *testing.T) {
	eduPath, unempPath, e := WriteSources(t.TempDir(), Counties(80))
	require.Nil(t, e)

	res, e := pipeline.Run(mustFiles(eduPath), mustFiles(unempPath))
	require.Nil(t, e)

	assert.Equal(t, 80, res.Table.RowCount())
	raw, _ := res.Raw.Coefficient("no_hs_diploma")
	assert.InDelta(t, -600, raw.Estimate, 100)

	// on the log scale a point of no_hs_diploma costs about 600/60000 of income
	lg, _ := res.Log.Coefficient("no_hs_diploma")
	assert.InDelta(t, -0.01, lg.Estimate, 0.005)
	assert.Less(t, lg.P, 0.001)
}

func mustFiles(fileName string) *source.Files {
	f, e := source.NewFiles(fileName)
	if e != nil {
		panic(e)
	}

	return f
}
