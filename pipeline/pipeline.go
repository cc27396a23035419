// Package pipeline runs the analysis end to end: load, merge, clean, validate, fit the raw model,
// diagnose it, fit the log model and diagnose that.
package pipeline

import (
	"fmt"

	"github.com/google/uuid"
	d "github.com/invertedv/incomereg"
	"github.com/invertedv/incomereg/clean"
	"github.com/invertedv/incomereg/diag"
	"github.com/invertedv/incomereg/ols"
	"github.com/invertedv/incomereg/source"
	"k8s.io/klog/v2"
)

const (
	RawFormula = "median_income ~ pop_type + no_hs_diploma + hs_diploma + some_college"
	LogFormula = "log(median_income) ~ pop_type + no_hs_diploma + hs_diploma + some_college"
	Focal      = clean.HS
)

// Shape is the size of a table.
type Shape struct {
	Rows    int
	Columns int
}

func (s Shape) String() string {
	return fmt.Sprintf("%d rows x %d columns", s.Rows, s.Columns)
}

// Result is everything a run produced. Nothing in it is modified after Run returns.
type Result struct {
	RunID uuid.UUID

	Education    Shape
	Unemployment Shape
	Counts       clean.Counts

	Table *d.DF

	Raw     *ols.Model
	RawDiag *diag.Figure
	Log     *ols.Model
	LogDiag *diag.Figure
}

type runner struct {
	raw   string
	log   string
	focal string
}

type Opt func(r *runner) error

// WithFormulas replaces the raw and log model formulas.
func WithFormulas(raw, log string) Opt {
	return func(r *runner) error {
		for _, f := range []string{raw, log} {
			if _, e := ols.ParseFormula(f); e != nil {
				return e
			}
		}

		r.raw, r.log = raw, log
		return nil
	}
}

// WithFocal sets the term the diagnostics are drawn for.
func WithFocal(term string) Opt {
	return func(r *runner) error {
		if term == "" {
			return fmt.Errorf("%w: empty focal term", d.ErrUnknownTerm)
		}

		r.focal = term
		return nil
	}
}

// Run executes every stage in order. The first failing stage's error is returned as is and no
// partial result is produced.
func Run(education, unemployment source.Source, opts ...Opt) (*Result, error) {
	r := &runner{raw: RawFormula, log: LogFormula, focal: Focal}
	for _, o := range opts {
		if e := o(r); e != nil {
			return nil, e
		}
	}

	res := &Result{RunID: uuid.New()}
	klog.InfoS("run started", "run", res.RunID, "education", education.Name(), "unemployment", unemployment.Name())

	var (
		edu, unemp, joined *d.DF
		cnt                *clean.Counts
		e                  error
	)
	if edu, e = education.Load(); e != nil {
		return nil, e
	}

	if unemp, e = unemployment.Load(); e != nil {
		return nil, e
	}

	res.Education = Shape{Rows: edu.RowCount(), Columns: edu.ColumnCount()}
	res.Unemployment = Shape{Rows: unemp.RowCount(), Columns: unemp.ColumnCount()}
	klog.V(2).InfoS("loaded", "education", res.Education, "unemployment", res.Unemployment)

	if joined, e = clean.Merge(edu, unemp); e != nil {
		return nil, e
	}

	if res.Table, cnt, e = clean.Clean(joined); e != nil {
		return nil, e
	}

	res.Counts = *cnt
	klog.InfoS("cleaned", "joined", cnt.JoinedRows, "clean", cnt.CleanRows, "incomplete", cnt.Incomplete)

	if e = clean.Validate(res.Table); e != nil {
		return nil, e
	}

	if res.Raw, res.RawDiag, e = fitAndDiagnose(r.raw, r.focal, res.Table); e != nil {
		return nil, e
	}

	if res.Log, res.LogDiag, e = fitAndDiagnose(r.log, r.focal, res.Table); e != nil {
		return nil, e
	}

	klog.InfoS("run finished", "run", res.RunID)

	return res, nil
}

func fitAndDiagnose(formula, focal string, table *d.DF) (*ols.Model, *diag.Figure, error) {
	var (
		m   *ols.Model
		fig *diag.Figure
		e   error
	)
	if m, e = ols.FitOLS(formula, table); e != nil {
		return nil, nil, e
	}

	if fig, e = diag.Diagnose(m, focal); e != nil {
		return nil, nil, e
	}

	klog.InfoS("fitted", "formula", formula, "r2", m.RSquared, "n", m.N)

	return m, fig, nil
}
