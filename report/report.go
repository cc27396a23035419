// Package report presents a pipeline result as eight numbered steps. Every step is computed once
// when the report is built and looked up on demand afterwards.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	d "github.com/invertedv/incomereg"
	"github.com/invertedv/incomereg/diag"
	"github.com/invertedv/incomereg/pipeline"
)

const headRows = 5

type Stage int

const (
	Import Stage = iota + 1
	Clean
	Head
	Regression
	Residuals
	Transform
	Final
	Interpret
)

var titles = map[Stage]string{
	Import:     "Import Data",
	Clean:      "Clean the Data",
	Head:       "View Dataframe Head",
	Regression: "Run Multiple Regression",
	Residuals:  "Check the Residuals",
	Transform:  "Perform Transformations to Fix Nonlinearity",
	Final:      "Final Multiple Regression Results",
	Interpret:  "View Interpretation",
}

func (s Stage) String() string {
	if t, ok := titles[s]; ok {
		return fmt.Sprintf("Step %d: %s", int(s), t)
	}

	return fmt.Sprintf("Step %d", int(s))
}

// Stages returns every stage in order.
func Stages() []Stage {
	var out []Stage
	for s := Import; s <= Interpret; s++ {
		out = append(out, s)
	}

	return out
}

// ParseStage converts "1".."8" to a Stage.
func ParseStage(s string) (Stage, error) {
	n, e := strconv.Atoi(strings.TrimSpace(s))
	if e != nil {
		return 0, fmt.Errorf("%w: %q", d.ErrUnknownStage, s)
	}

	st := Stage(n)
	if _, ok := titles[st]; !ok {
		return 0, fmt.Errorf("%w: %d", d.ErrUnknownStage, n)
	}

	return st, nil
}

// Section is the content of one step. Figure is nil for steps without plots.
type Section struct {
	Stage  Stage
	Title  string
	Text   string
	Figure *diag.Figure
}

type Report struct {
	result   *pipeline.Result
	sections map[Stage]Section
}

func New(res *pipeline.Result) (*Report, error) {
	if res == nil {
		return nil, fmt.Errorf("nil result")
	}

	r := &Report{result: res, sections: make(map[Stage]Section)}

	joined := pipeline.Shape{Rows: res.Counts.JoinedRows, Columns: res.Counts.JoinedColumns}
	r.add(Import, fmt.Sprintf("Education data and unemployment data loaded.\n"+
		"Education: %s\nUnemployment: %s\nTotal Observations: %d\nTotal Variables: %d\n",
		res.Education, res.Unemployment, joined.Rows, joined.Columns), nil)

	cleaned := fmt.Sprintf("Superfluous variables removed. Datatypes cleaned and commas removed.\n"+
		"Incomplete records dropped: %d\nTotal Observations: %d\nTotal Variables: %d\n",
		res.Counts.Incomplete, res.Counts.CleanRows, res.Counts.CleanColumns)
	for _, c := range res.Table.Columns() {
		cleaned += "\n" + c.String()
	}

	r.add(Clean, cleaned, nil)

	r.add(Head, res.Table.Head(headRows).String(), nil)

	r.add(Regression, fmt.Sprintf("Response Variable: %s\nExplanatory Variables: %s\n\n%s",
		res.Raw.Formula.ResponseLabel(), strings.Join(res.Raw.Formula.Terms, ", "), Summary(res.Raw)), nil)

	r.add(Residuals, fmt.Sprintf("Residual diagnostics for %s, response %s.\n%s",
		res.RawDiag.Focal, res.RawDiag.Response, panels(res.RawDiag)), res.RawDiag)

	r.add(Transform, fmt.Sprintf("New residuals plotted after using log transformation on response variable:\n%s",
		panels(res.LogDiag)), res.LogDiag)

	r.add(Final, Summary(res.Log), nil)
	r.add(Interpret, Interpretation(res.Log), nil)

	return r, nil
}

func (r *Report) add(s Stage, text string, fig *diag.Figure) {
	r.sections[s] = Section{Stage: s, Title: s.String(), Text: text, Figure: fig}
}

// Result returns the result the report was built from.
func (r *Report) Result() *pipeline.Result {
	return r.result
}

// Show returns the section for s.
func (r *Report) Show(s Stage) (Section, error) {
	sec, ok := r.sections[s]
	if !ok {
		return Section{}, fmt.Errorf("%w: %d", d.ErrUnknownStage, int(s))
	}

	return sec, nil
}

// Render writes the section for s to w.
func (r *Report) Render(w io.Writer, s Stage) error {
	sec, e := r.Show(s)
	if e != nil {
		return e
	}

	_, e = fmt.Fprintf(w, "%s\n\n%s\n", sec.Title, sec.Text)

	return e
}

func panels(f *diag.Figure) string {
	var b strings.Builder
	for ind, p := range f.Panels {
		fmt.Fprintf(&b, "  panel %d: %s (%s vs %s)\n", ind+1, p.Title, p.YLabel, p.XLabel)
	}

	return b.String()
}
