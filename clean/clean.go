// Package clean joins the education and unemployment tables and reduces them to the seven
// column analysis schema.
package clean

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	d "github.com/invertedv/incomereg"
	"k8s.io/klog/v2"
)

// Source labels.
const (
	EduKey   = "FIPS Code"
	UnempKey = "FIPS_Code"

	LabelNoHS        = "Percent of adults with less than a high school diploma, 2015-19"
	LabelHS          = "Percent of adults with a high school diploma only, 2015-19"
	LabelSomeCollege = "Percent of adults completing some college or associate's degree, 2015-19"
	LabelBachelors   = "Percent of adults with a bachelor's degree or higher, 2015-19"
	LabelPopType     = "City/Suburb/Town/Rural 2013"
	LabelIncome      = "Median_Household_Income_2019"
	LabelUnemp       = "Unemployment_rate_2020"
)

// Analysis schema.
const (
	NoHS        = "no_hs_diploma"
	HS          = "hs_diploma"
	SomeCollege = "some_college"
	Bachelors   = "bachelors_plus"
	PopType     = "pop_type"
	Income      = "median_income"
	Unemp       = "unemployment_rate"

	Urban = "Urban"
	Rural = "Rural"
)

// Columns is the analysis schema in output order.
var Columns = []string{NoHS, HS, SomeCollege, Bachelors, PopType, Income, Unemp}

type rename struct{ from, to string }

// renames maps source labels to the analysis schema.
var renames = []rename{
	{LabelNoHS, NoHS},
	{LabelHS, HS},
	{LabelSomeCollege, SomeCollege},
	{LabelBachelors, Bachelors},
	{LabelPopType, PopType},
	{LabelIncome, Income},
	{LabelUnemp, Unemp},
}

// settlement collapses the four settlement types to two. Values not listed pass through.
var settlement = map[string]string{
	"City":   Urban,
	"Suburb": Urban,
	"Town":   Urban,
	"Rural":  Rural,
}

// Counts are table shapes before and after cleaning.
type Counts struct {
	JoinedRows    int
	JoinedColumns int
	CleanRows     int
	CleanColumns  int
	Incomplete    int
}

// MergeAndClean joins the tables and returns the cleaned analysis table. Inputs are not modified.
func MergeAndClean(education, unemployment *d.DF) (*d.DF, error) {
	var (
		joined *d.DF
		e      error
	)
	if joined, e = Merge(education, unemployment); e != nil {
		return nil, e
	}

	clean, _, e := Clean(joined)

	return clean, e
}

// Clean types, renames, collapses and projects the joined table. Records missing any of the
// seven attributes are dropped and counted.
func Clean(joined *d.DF) (*d.DF, *Counts, error) {
	cnt := &Counts{JoinedRows: joined.RowCount(), JoinedColumns: joined.ColumnCount()}

	for _, r := range renames {
		if joined.Column(r.from) == nil {
			return nil, nil, fmt.Errorf("%w: column %q not found", d.ErrSchema, r.from)
		}
	}

	var superfluous []string
	for _, nm := range joined.ColumnNames() {
		if !slices.ContainsFunc(renames, func(r rename) bool { return r.from == nm }) {
			superfluous = append(superfluous, nm)
		}
	}

	work := joined.Copy()
	if e := work.DropColumns(superfluous...); e != nil {
		return nil, nil, e
	}

	klog.V(1).InfoS("dropped superfluous columns", "columns", superfluous)

	var cols []*d.Col
	for _, r := range renames {
		var (
			col *d.Col
			e   error
		)
		src := work.Column(r.from)
		switch r.to {
		case PopType:
			col, e = collapse(src)
		default:
			col, e = parseFloat(src, r.to == Income)
		}

		if e != nil {
			return nil, nil, e
		}

		if e = col.Rename(r.to); e != nil {
			return nil, nil, e
		}

		cols = append(cols, col)
	}

	var (
		projected *d.DF
		e         error
	)
	if projected, e = d.NewDF(cols...); e != nil {
		return nil, nil, e
	}

	var keep []int
	for row := 0; row < projected.RowCount(); row++ {
		complete := true
		for _, c := range cols {
			if c.Missing(row) {
				complete = false
				break
			}
		}

		if complete {
			keep = append(keep, row)
		}
	}

	if keep == nil {
		keep = []int{}
	}

	var out *d.DF
	if out, e = projected.Subset(keep); e != nil {
		return nil, nil, e
	}

	cnt.Incomplete = projected.RowCount() - out.RowCount()
	cnt.CleanRows, cnt.CleanColumns = out.RowCount(), out.ColumnCount()

	if cnt.Incomplete > 0 {
		klog.InfoS("dropped incomplete records", "records", cnt.Incomplete)
	}

	return out, cnt, nil
}

// parseFloat converts a string column to float. Blank cells are missing (NaN). Thousands
// separators are removed when stripCommas is set.
func parseFloat(src *d.Col, stripCommas bool) (*d.Col, error) {
	x, e := src.AsString()
	if e != nil {
		return nil, e
	}

	out := d.MakeVector(d.DTfloat, len(x))
	for ind, s := range x {
		if stripCommas {
			s = strings.ReplaceAll(s, ",", "")
		}

		if s = strings.TrimSpace(s); s == "" {
			out.SetFloat(math.NaN(), ind)
			continue
		}

		var v float64
		if v, e = strconv.ParseFloat(s, 64); e != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s row %d: %q is not numeric", d.ErrParse, src.Name(), ind+1, x[ind])
		}

		out.SetFloat(v, ind)
	}

	return d.NewCol(out, d.DTfloat, d.ColName(src.Name()))
}

// collapse maps City/Suburb/Town to Urban. Unrecognized values are passed through for
// Validate to reject.
func collapse(src *d.Col) (*d.Col, error) {
	x, e := src.AsString()
	if e != nil {
		return nil, e
	}

	out := d.MakeVector(d.DTstring, len(x))
	unknown := make(map[string]int)
	for ind, s := range x {
		if v, ok := settlement[s]; ok {
			out.SetString(v, ind)
			continue
		}

		if s != "" {
			unknown[s]++
		}

		out.SetString(s, ind)
	}

	for k, n := range unknown {
		klog.InfoS("unrecognized settlement type passed through", "value", k, "records", n)
	}

	return d.NewCol(out, d.DTstring, d.ColName(src.Name()), d.ColLevels(Rural, Urban))
}
